package lisp

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Eval(env *LEnv, args *LVal) *LVal
}

type langBuiltin struct {
	name string
	fun  LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) *LVal {
	return fun.fun(env, args)
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"list", builtinList},
	{"head", builtinHead},
	{"tail", builtinTail},
	{"init", builtinInit},
	{"eval", builtinEval},
	{"join", builtinJoin},
	{"cons", builtinCons},
	{"len", builtinLen},
	{"def", builtinDef},
	{"define", builtinDefine},
	{"=", builtinPut},
	{`\`, builtinLambda},
	{"if", builtinIf},
	{"+", builtinAdd},
	{"-", builtinSub},
	{"*", builtinMul},
	{"/", builtinDiv},
	{"%", builtinMod},
	{">", builtinGT},
	{"<", builtinLT},
	{">=", builtinGEq},
	{"<=", builtinLEq},
	{"==", builtinEq},
	{"!=", builtinNEq},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, fn LBuiltin) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, fn})
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins)+len(userBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	offset := len(langBuiltins)
	for i := range userBuiltins {
		ops[offset+i] = userBuiltins[i]
	}
	return ops
}

func checkNArgs(name string, args *LVal, n int) *LVal {
	if len(args.Cells) != n {
		return Errorf("Function '%s' passed incorrect number of arguments. Got %d, Expected %d.",
			name, len(args.Cells), n)
	}
	return nil
}

func checkMinArgs(name string, args *LVal, n int) *LVal {
	if len(args.Cells) < n {
		return Errorf("Function '%s' passed too few arguments. Got %d, Expected at least %d.",
			name, len(args.Cells), n)
	}
	return nil
}

func checkType(name string, args *LVal, i int, t LValType) *LVal {
	if args.Cells[i].Type != t {
		return Errorf("Function '%s' passed incorrect type for argument %d. Got %v, Expected %v.",
			name, i, args.Cells[i].Type, t)
	}
	return nil
}

func checkNotEmpty(name string, args *LVal, i int) *LVal {
	if len(args.Cells[i].Cells) == 0 {
		return Errorf("Function '%s' passed {} for argument %d.", name, i)
	}
	return nil
}

// checkList validates that args holds exactly one non-empty Q-expression.
func checkList(name string, args *LVal) *LVal {
	if lerr := checkNArgs(name, args, 1); lerr != nil {
		return lerr
	}
	if lerr := checkType(name, args, 0, LQExpr); lerr != nil {
		return lerr
	}
	return checkNotEmpty(name, args, 0)
}

func cellsCopy(cells []*LVal) []*LVal {
	if len(cells) == 0 {
		return nil
	}
	cp := make([]*LVal, len(cells))
	copy(cp, cells)
	return cp
}

func builtinList(env *LEnv, args *LVal) *LVal {
	return QExpr(cellsCopy(args.Cells)...)
}

func builtinHead(env *LEnv, args *LVal) *LVal {
	if lerr := checkList("head", args); lerr != nil {
		return lerr
	}
	return QExpr(args.Cells[0].Cells[0])
}

func builtinTail(env *LEnv, args *LVal) *LVal {
	if lerr := checkList("tail", args); lerr != nil {
		return lerr
	}
	return QExpr(cellsCopy(args.Cells[0].Cells[1:])...)
}

func builtinInit(env *LEnv, args *LVal) *LVal {
	if lerr := checkList("init", args); lerr != nil {
		return lerr
	}
	cells := args.Cells[0].Cells
	return QExpr(cellsCopy(cells[:len(cells)-1])...)
}

func builtinEval(env *LEnv, args *LVal) *LVal {
	if lerr := checkNArgs("eval", args, 1); lerr != nil {
		return lerr
	}
	if lerr := checkType("eval", args, 0, LQExpr); lerr != nil {
		return lerr
	}
	return env.Eval(SExpr(args.Cells[0].Cells...))
}

func builtinJoin(env *LEnv, args *LVal) *LVal {
	if lerr := checkMinArgs("join", args, 1); lerr != nil {
		return lerr
	}
	n := 0
	for i := range args.Cells {
		if lerr := checkType("join", args, i, LQExpr); lerr != nil {
			return lerr
		}
		n += len(args.Cells[i].Cells)
	}
	cells := make([]*LVal, 0, n)
	for _, q := range args.Cells {
		cells = append(cells, q.Cells...)
	}
	return QExpr(cells...)
}

func builtinCons(env *LEnv, args *LVal) *LVal {
	if lerr := checkNArgs("cons", args, 2); lerr != nil {
		return lerr
	}
	if lerr := checkType("cons", args, 1, LQExpr); lerr != nil {
		return lerr
	}
	tail := args.Cells[1].Cells
	cells := make([]*LVal, 0, len(tail)+1)
	cells = append(cells, args.Cells[0])
	cells = append(cells, tail...)
	return QExpr(cells...)
}

func builtinLen(env *LEnv, args *LVal) *LVal {
	if lerr := checkNArgs("len", args, 1); lerr != nil {
		return lerr
	}
	if lerr := checkType("len", args, 0, LQExpr); lerr != nil {
		return lerr
	}
	return Number(len(args.Cells[0].Cells))
}

func builtinDef(env *LEnv, args *LVal) *LVal {
	return builtinVar(env, args, "def")
}

func builtinDefine(env *LEnv, args *LVal) *LVal {
	return builtinVar(env, args, "define")
}

func builtinPut(env *LEnv, args *LVal) *LVal {
	return builtinVar(env, args, "=")
}

// builtinVar binds a list of symbols to the values that follow it.  The
// functions ``def'' and ``define'' bind in the global scope and ``='' binds in
// env.
func builtinVar(env *LEnv, args *LVal, name string) *LVal {
	if lerr := checkMinArgs(name, args, 1); lerr != nil {
		return lerr
	}
	if lerr := checkType(name, args, 0, LQExpr); lerr != nil {
		return lerr
	}
	syms := args.Cells[0]
	for _, sym := range syms.Cells {
		if sym.Type != LSymbol {
			return Errorf("Function '%s' cannot define non-symbol. Got %v, Expected %v.",
				name, sym.Type, LSymbol)
		}
	}
	vals := args.Cells[1:]
	if len(syms.Cells) != len(vals) {
		return Errorf("Function '%s' passed incorrect number of values to symbols. Got %d, Expected %d.",
			name, len(vals), len(syms.Cells))
	}
	for i, sym := range syms.Cells {
		if name != "=" {
			env.PutGlobal(sym, vals[i])
		} else {
			env.Put(sym, vals[i])
		}
	}

	log := env.Runtime.Logger
	if log.IsLevelEnabled(logrus.DebugLevel) {
		names := make([]string, len(syms.Cells))
		for i, sym := range syms.Cells {
			names[i] = sym.Str
		}
		log.WithFields(logrus.Fields{
			"fun":     name,
			"symbols": strings.Join(names, " "),
		}).Debug("define")
	}
	return Nil()
}

func builtinLambda(env *LEnv, args *LVal) *LVal {
	if lerr := checkNArgs(`\`, args, 2); lerr != nil {
		return lerr
	}
	if lerr := checkType(`\`, args, 0, LQExpr); lerr != nil {
		return lerr
	}
	if lerr := checkType(`\`, args, 1, LQExpr); lerr != nil {
		return lerr
	}
	formals := args.Cells[0]
	for i, sym := range formals.Cells {
		if sym.Type != LSymbol {
			return Errorf("Cannot define non-symbol. Got %v, Expected %v.", sym.Type, LSymbol)
		}
		if sym.Str == VarArgSymbol && i != len(formals.Cells)-2 {
			return Errorf("Function format invalid. Symbol '%s' not followed by single symbol.",
				VarArgSymbol)
		}
	}
	return Lambda(formals.Copy(), args.Cells[1].Copy(), env)
}

func builtinIf(env *LEnv, args *LVal) *LVal {
	if lerr := checkNArgs("if", args, 3); lerr != nil {
		return lerr
	}
	if lerr := checkType("if", args, 0, LNumber); lerr != nil {
		return lerr
	}
	if lerr := checkType("if", args, 1, LQExpr); lerr != nil {
		return lerr
	}
	if lerr := checkType("if", args, 2, LQExpr); lerr != nil {
		return lerr
	}
	branch := args.Cells[2]
	if args.Cells[0].Num != 0 {
		branch = args.Cells[1]
	}
	return env.Eval(SExpr(branch.Cells...))
}

// builtinOp folds op over args from left to right.  A single argument to
// ``-'' is negated.
func builtinOp(args *LVal, name string) *LVal {
	if lerr := checkMinArgs(name, args, 1); lerr != nil {
		return lerr
	}
	for i := range args.Cells {
		if lerr := checkType(name, args, i, LNumber); lerr != nil {
			return lerr
		}
	}
	x := args.Cells[0].Num
	if name == "-" && len(args.Cells) == 1 {
		return Number(-x)
	}
	for _, c := range args.Cells[1:] {
		y := c.Num
		switch name {
		case "+":
			x += y
		case "-":
			x -= y
		case "*":
			x *= y
		case "/":
			if y == 0 {
				return Errorf("Division By Zero.")
			}
			x /= y
		case "%":
			if y == 0 {
				return Errorf("Division By Zero.")
			}
			x %= y
		}
	}
	return Number(x)
}

func builtinAdd(env *LEnv, args *LVal) *LVal {
	return builtinOp(args, "+")
}

func builtinSub(env *LEnv, args *LVal) *LVal {
	return builtinOp(args, "-")
}

func builtinMul(env *LEnv, args *LVal) *LVal {
	return builtinOp(args, "*")
}

func builtinDiv(env *LEnv, args *LVal) *LVal {
	return builtinOp(args, "/")
}

func builtinMod(env *LEnv, args *LVal) *LVal {
	return builtinOp(args, "%")
}

func boolNumber(b bool) *LVal {
	if b {
		return Number(1)
	}
	return Number(0)
}

// builtinOrd compares exactly two numbers.
func builtinOrd(args *LVal, name string) *LVal {
	if lerr := checkNArgs(name, args, 2); lerr != nil {
		return lerr
	}
	if lerr := checkType(name, args, 0, LNumber); lerr != nil {
		return lerr
	}
	if lerr := checkType(name, args, 1, LNumber); lerr != nil {
		return lerr
	}
	a, b := args.Cells[0].Num, args.Cells[1].Num
	switch name {
	case ">":
		return boolNumber(a > b)
	case "<":
		return boolNumber(a < b)
	case ">=":
		return boolNumber(a >= b)
	default:
		return boolNumber(a <= b)
	}
}

func builtinGT(env *LEnv, args *LVal) *LVal {
	return builtinOrd(args, ">")
}

func builtinLT(env *LEnv, args *LVal) *LVal {
	return builtinOrd(args, "<")
}

func builtinGEq(env *LEnv, args *LVal) *LVal {
	return builtinOrd(args, ">=")
}

func builtinLEq(env *LEnv, args *LVal) *LVal {
	return builtinOrd(args, "<=")
}

func builtinEq(env *LEnv, args *LVal) *LVal {
	if lerr := checkNArgs("==", args, 2); lerr != nil {
		return lerr
	}
	return boolNumber(args.Cells[0].Equal(args.Cells[1]))
}

func builtinNEq(env *LEnv, args *LVal) *LVal {
	if lerr := checkNArgs("!=", args, 2); lerr != nil {
		return lerr
	}
	return boolNumber(!args.Cells[0].Equal(args.Cells[1]))
}
