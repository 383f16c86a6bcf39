package lisp

import (
	"bytes"
	"fmt"
	"strconv"
)

// LValType is the type of an LVal
type LValType uint

// Possible LValType values
const (
	LInvalid LValType = iota
	LNumber
	LError
	LSymbol
	LFun
	LSExpr
	LQExpr
	numLValTypes
)

var lvalTypeStrings = [numLValTypes]string{
	LInvalid: "INVALID",
	LNumber:  "Number",
	LError:   "Error",
	LSymbol:  "Symbol",
	LFun:     "Function",
	LSExpr:   "S-Expression",
	LQExpr:   "Q-Expression",
}

// String returns the display name of t used in error messages.
func (t LValType) String() string {
	if t >= numLValTypes {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// TypeName returns the display name for the type t.
func TypeName(t LValType) string {
	return t.String()
}

// LBuiltin is a function that implements a builtin lisp function.  The args
// value is always an LSExpr holding the evaluated arguments.
type LBuiltin func(env *LEnv, args *LVal) *LVal

// LVal is a lisp value
type LVal struct {
	Type LValType

	// Num holds the value of an LNumber.
	Num int

	// Str is the name of an LSymbol, the message of an LError or the name of
	// a builtin LFun.
	Str string

	// Cells holds the children of LSExpr and LQExpr values.
	Cells []*LVal

	// Variables needed for function values.  A builtin has a non-nil
	// Builtin.  A lambda has Formals, Body and the Env it was defined in.
	// Copies of a function share these fields.
	Builtin LBuiltin
	Env     *LEnv
	Formals *LVal
	Body    *LVal
}

// Number returns an LVal representing the number x.
func Number(x int) *LVal {
	return &LVal{
		Type: LNumber,
		Num:  x,
	}
}

// Symbol returns an LVal representing the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// SExpr returns an LVal representing an S-expression, a symbolic expression,
// with the given cells.
func SExpr(cells ...*LVal) *LVal {
	return &LVal{
		Type:  LSExpr,
		Cells: cells,
	}
}

// QExpr returns an LVal representing a Q-expression, a quoted expression,
// with the given cells.
func QExpr(cells ...*LVal) *LVal {
	return &LVal{
		Type:  LQExpr,
		Cells: cells,
	}
}

// Nil returns the empty S-expression, the value of expressions that produce
// nothing.
func Nil() *LVal {
	return SExpr()
}

// Fun returns an LVal representing the builtin function fn.  The name is
// used in diagnostics.
func Fun(name string, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LFun,
		Str:     name,
		Builtin: fn,
	}
}

// Lambda returns an anonymous function that binds formals to its arguments
// and evaluates body in a child of env.  Lambda does not validate formals,
// the ``\'' builtin does that.
func Lambda(formals *LVal, body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LFun,
		Env:     env,
		Formals: formals,
		Body:    body,
	}
}

// IsNil returns true if v is the empty S-expression.
func (v *LVal) IsNil() bool {
	return v.Type == LSExpr && len(v.Cells) == 0
}

// IsBuiltin returns true if v is a builtin function.
func (v *LVal) IsBuiltin() bool {
	return v.Type == LFun && v.Builtin != nil
}

// Len returns the number of cells in v.
func (v *LVal) Len() int {
	return len(v.Cells)
}

// Copy creates a deep copy of the receiver.  Function values are copied by
// reference: the copy shares Builtin, Env, Formals and Body with v.
func (v *LVal) Copy() *LVal {
	if v == nil {
		return nil
	}
	cp := &LVal{}
	*cp = *v // shallow copy of all fields
	switch v.Type {
	case LSExpr, LQExpr:
		cp.Cells = v.copyCells()
	case LNumber, LError, LSymbol, LFun:
	default:
		panic(fmt.Sprintf("copy of invalid value type: %d", v.Type))
	}
	return cp
}

func (v *LVal) copyCells() []*LVal {
	if len(v.Cells) == 0 {
		return nil
	}
	cells := make([]*LVal, len(v.Cells))
	for i := range cells {
		cells[i] = v.Cells[i].Copy()
	}
	return cells
}

// Equal returns true if v and other have the same type and structure.
// Builtins are equal when they have the same name.  Lambdas are equal when
// their formals and bodies are equal.
func (v *LVal) Equal(other *LVal) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LNumber:
		return v.Num == other.Num
	case LError, LSymbol:
		return v.Str == other.Str
	case LFun:
		if v.Builtin != nil || other.Builtin != nil {
			return v.Builtin != nil && other.Builtin != nil && v.Str == other.Str
		}
		return v.Formals.Equal(other.Formals) && v.Body.Equal(other.Body)
	case LSExpr, LQExpr:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v for display.
func (v *LVal) String() string {
	switch v.Type {
	case LNumber:
		return strconv.Itoa(v.Num)
	case LError:
		return "Error: " + v.Str
	case LSymbol:
		return v.Str
	case LFun:
		return "<function>"
	case LSExpr:
		return exprString(v, "(", ")")
	case LQExpr:
		return exprString(v, "{", "}")
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// Format returns the display string for v.
func Format(v *LVal) string {
	return v.String()
}

func exprString(v *LVal, left string, right string) string {
	if len(v.Cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range v.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
