package lisp

import (
	"io"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// Runtime is the state shared by a root environment and all of its
// descendants.
type Runtime struct {
	Stack  *CallStack
	Reader Reader
	Logger *logrus.Logger
}

// StandardRuntime returns a new Runtime with an empty stack and a logger that
// discards its output.
func StandardRuntime() *Runtime {
	logger := logrus.New()
	logger.Out = io.Discard
	return &Runtime{
		Stack:  &CallStack{},
		Logger: logger,
	}
}

// LEnv is a lisp environment.  Bindings are kept in definition order.
type LEnv struct {
	ID      uint
	Parent  *LEnv
	Runtime *Runtime

	syms  []string
	vals  []*LVal
	index map[string]int
}

// NewEnv initializes and returns a new LEnv.  A child environment
// shares the Runtime of its parent.  A root environment gets a new
// StandardRuntime.
func NewEnv(parent *LEnv) *LEnv {
	var runtime *Runtime
	if parent != nil {
		runtime = parent.Runtime
	} else {
		runtime = StandardRuntime()
	}
	return &LEnv{
		ID:      getEnvID(),
		Parent:  parent,
		Runtime: runtime,
		index:   make(map[string]int),
	}
}

// InitializeUserEnv adds the default builtins to env and applies the given
// configuration.  InitializeUserEnv returns the first LError produced by a
// Config.
func InitializeUserEnv(env *LEnv, config ...Config) *LVal {
	for _, fn := range config {
		rc := fn(env)
		if rc.Type == LError {
			return rc
		}
	}
	env.AddBuiltins()
	return Nil()
}

// Len returns the number of bindings local to env.
func (env *LEnv) Len() int {
	return len(env.syms)
}

// Symbols returns the names bound locally in env, in definition order.
func (env *LEnv) Symbols() []string {
	syms := make([]string, len(env.syms))
	copy(syms, env.syms)
	return syms
}

// Get takes an LSymbol k and returns a copy of the LVal it is bound to in env
// or one of its ancestors.  Get returns an LError if k is not bound.
func (env *LEnv) Get(k *LVal) *LVal {
	if k.Type != LSymbol {
		return Errorf("Cannot look up value of type %v", k.Type)
	}
	for e := env; e != nil; e = e.Parent {
		i, ok := e.index[k.Str]
		if ok {
			return e.vals[i].Copy()
		}
	}
	return Errorf("Unbound Symbol '%s'", k.Str)
}

// Put takes an LSymbol k and binds a copy of v to it in env.  An existing
// binding for k in env is replaced.  Ancestors of env are never modified.
func (env *LEnv) Put(k, v *LVal) {
	if k.Type != LSymbol {
		return
	}
	if v == nil {
		panic("nil value")
	}
	i, ok := env.index[k.Str]
	if ok {
		env.vals[i] = v.Copy()
		return
	}
	env.index[k.Str] = len(env.syms)
	env.syms = append(env.syms, k.Str)
	env.vals = append(env.vals, v.Copy())
}

// GetGlobal takes LSymbol k and returns the value it is bound to in the root
// environment (global scope).
func (env *LEnv) GetGlobal(k *LVal) *LVal {
	return env.root().Get(k)
}

// PutGlobal takes an LSymbol k and binds it to v in root environment (global
// scope).
func (env *LEnv) PutGlobal(k, v *LVal) {
	env.root().Put(k, v)
}

func (env *LEnv) root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltins binds the given funs to their names in env.  When called with no
// arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		env.Put(Symbol(f.Name()), Fun(f.Name(), f.Eval))
	}
}

// Load reads expressions from r using the runtime Reader and evaluates them
// in order.  Load returns the value of the last expression or the first
// LError encountered.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return Errorf("no reader for the environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return Error(err)
	}
	ret := Nil()
	for _, expr := range exprs {
		ret = env.Eval(expr)
		if ret.Type == LError {
			return ret
		}
	}
	return ret
}

// LoadString parses source and evaluates its expressions like Load.
func (env *LEnv) LoadString(name, source string) *LVal {
	return env.Load(name, strings.NewReader(source))
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Numbers, errors, functions and Q-expressions evaluate to themselves.
func (env *LEnv) Eval(v *LVal) *LVal {
	switch v.Type {
	case LSymbol:
		return env.Get(v)
	case LSExpr:
		return env.EvalSExpr(v)
	case LNumber, LError, LFun, LQExpr:
		return v
	default:
		return Errorf("Cannot evaluate value of type %v", v.Type)
	}
}

// EvalSExpr evaluates the cells of s from left to right and applies the first
// to the rest.  Evaluation stops at the first cell that produces an LError.
func (env *LEnv) EvalSExpr(s *LVal) *LVal {
	if s.Type != LSExpr {
		return Errorf("not an s-expression")
	}
	if len(s.Cells) == 0 {
		return s
	}
	cells := make([]*LVal, len(s.Cells))
	for i := range s.Cells {
		cells[i] = env.Eval(s.Cells[i])
		if cells[i].Type == LError {
			return cells[i]
		}
	}
	if len(cells) == 1 {
		return cells[0]
	}
	f := cells[0]
	if f.Type != LFun {
		return Errorf("S-Expression starts with incorrect type. Got %v, Expected %v.",
			f.Type, LFun)
	}
	return env.Call(f, SExpr(cells[1:]...))
}

// Call invokes LFun fun with the list args.
func (env *LEnv) Call(fun *LVal, args *LVal) *LVal {
	if fun.Type != LFun {
		return Errorf("Cannot call value of type %v", fun.Type)
	}
	name := fun.Str
	if !fun.IsBuiltin() {
		name = "lambda"
	}
	log := env.Runtime.Logger
	stack := env.Runtime.Stack
	lerr := stack.Push(name, len(args.Cells))
	if lerr != nil {
		if log.IsLevelEnabled(logrus.DebugLevel) {
			var trace strings.Builder
			stack.DebugPrint(&trace)
			log.WithFields(logrus.Fields{
				"fun":   name,
				"top":   stack.Top().Name,
				"trace": trace.String(),
			}).Debug("stack overflow")
		}
		return lerr
	}
	defer stack.Pop()

	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.WithFields(logrus.Fields{
			"fun":   name,
			"nargs": len(args.Cells),
			"depth": stack.Height(),
		}).Debug("apply function")
	}

	if fun.IsBuiltin() {
		return fun.Builtin(env, args)
	}
	return env.callLambda(fun, args)
}

// callLambda evaluates the body of fun in a new environment whose parent is
// the environment fun was defined in.
func (env *LEnv) callLambda(fun *LVal, args *LVal) *LVal {
	if fun.Formals == nil || fun.Body == nil {
		return Errorf("Function has no formals or body.")
	}
	fixed, rest, lerr := splitFormals(fun.Formals)
	if lerr != nil {
		return lerr
	}
	given := len(args.Cells)
	if rest == nil && given != len(fixed) {
		return Errorf("Function passed incorrect number of arguments. Got %d, Expected %d.",
			given, len(fixed))
	}
	if rest != nil && given < len(fixed) {
		return Errorf("Function passed too few arguments. Got %d, Expected at least %d.",
			given, len(fixed))
	}

	parent := fun.Env
	if parent == nil {
		parent = env.root()
	}
	scope := NewEnv(parent)
	for i, sym := range fixed {
		scope.Put(sym, args.Cells[i])
	}
	if rest != nil {
		scope.Put(rest, QExpr(args.Cells[len(fixed):]...))
	}

	return scope.Eval(SExpr(fun.Body.Cells...))
}

// splitFormals returns the fixed formal arguments of a lambda and the symbol
// bound to any remaining arguments, which is nil when the lambda is not
// variadic.  Formals that are not symbols, or a ``&'' not followed by exactly
// one symbol, produce an LError.
func splitFormals(formals *LVal) (fixed []*LVal, rest *LVal, lerr *LVal) {
	for i, sym := range formals.Cells {
		if sym.Type != LSymbol {
			return nil, nil, Errorf("Cannot define non-symbol. Got %v, Expected %v.", sym.Type, LSymbol)
		}
		if sym.Str != VarArgSymbol {
			continue
		}
		if i != len(formals.Cells)-2 || formals.Cells[i+1].Type != LSymbol {
			return nil, nil, Errorf("Function format invalid. Symbol '%s' not followed by single symbol.",
				VarArgSymbol)
		}
		return formals.Cells[:i], formals.Cells[i+1], nil
	}
	return formals.Cells, nil, nil
}
