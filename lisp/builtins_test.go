package lisp_test

import (
	"testing"

	"github.com/bmatsuo/somelisp/lisp"
	"github.com/bmatsuo/somelisp/lisptest"
)

func TestBuiltins(t *testing.T) {
	tests := lisptest.TestSuite{
		{"self evaluation", lisptest.TestSequence{
			{"5", "5"},
			{"-5", "-5"},
			{"()", "()"},
			{"{}", "{}"},
			{"{1 (+ 1 2) x}", "{1 (+ 1 2) x}"},
			{"+", "<function>"},
			{"(+)", "<function>"},
			{"1 2", "Error: S-Expression starts with incorrect type. Got Number, Expected Function."},
			{"x", "Error: Unbound Symbol 'x'"},
		}},
		{"arithmetic", lisptest.TestSequence{
			{"+ 1 2 3", "6"},
			{"(+ 1 2 3)", "6"},
			{"* 10 (+ 1 5)", "60"},
			{"- 5", "-5"},
			{"- 10 3 2", "5"},
			{"/ 10 3", "3"},
			{"% 7 3", "1"},
			{"+ 1 (* 7 5) 3", "39"},
			{"/ 1 0", "Error: Division By Zero."},
			{"% 1 0", "Error: Division By Zero."},
			{"+ 1 {2}", "Error: Function '+' passed incorrect type for argument 1. Got Q-Expression, Expected Number."},
		}},
		{"comparison", lisptest.TestSequence{
			{"> 2 1", "1"},
			{"< 2 1", "0"},
			{">= 2 2", "1"},
			{"<= 3 2", "0"},
			{"== {1 2} {1 2}", "1"},
			{"== {1 2} {1}", "0"},
			{"!= 1 2", "1"},
			{"== + +", "1"},
			{"> 1", "Error: Function '>' passed incorrect number of arguments. Got 1, Expected 2."},
		}},
		{"lists", lisptest.TestSequence{
			{"list 1 2 3", "{1 2 3}"},
			{"list", "<function>"},
			{"head {1 2 3}", "{1}"},
			{"tail {1 2 3}", "{2 3}"},
			{"init {1 2 3}", "{1 2}"},
			{"join {1} {2} {3}", "{1 2 3}"},
			{"join {1 2} {}", "{1 2}"},
			{"cons 1 {2 3}", "{1 2 3}"},
			{"len {1 2 3}", "3"},
			{"len {}", "0"},
			{"eval {+ 1 2}", "3"},
			{"eval (tail {tail tail {5 6 7}})", "{6 7}"},
			{"eval (head {(+ 1 2) (+ 10 20)})", "3"},
			{"head {}", "Error: Function 'head' passed {} for argument 0."},
			{"tail {}", "Error: Function 'tail' passed {} for argument 0."},
			{"head {1} {2}", "Error: Function 'head' passed incorrect number of arguments. Got 2, Expected 1."},
			{"head 1", "Error: Function 'head' passed incorrect type for argument 0. Got Number, Expected Q-Expression."},
			{"join {1} 2", "Error: Function 'join' passed incorrect type for argument 1. Got Number, Expected Q-Expression."},
			{"eval 1", "Error: Function 'eval' passed incorrect type for argument 0. Got Number, Expected Q-Expression."},
		}},
		{"def", lisptest.TestSequence{
			{"def {x y} 10 20", "()"},
			{"x", "10"},
			{"y", "20"},
			{"+ x y", "30"},
			{"def {x} (+ x 1)", "()"},
			{"x", "11"},
			{"def {x} 1 2", "Error: Function 'def' passed incorrect number of values to symbols. Got 2, Expected 1."},
			{"def {1} 2", "Error: Function 'def' cannot define non-symbol. Got Number, Expected Symbol."},
			{"def 1 2", "Error: Function 'def' passed incorrect type for argument 0. Got Number, Expected Q-Expression."},
			{"x", "11"},
			{"def {arglist} {a b}", "()"},
			{"def arglist 1 2", "()"},
			{"+ a b", "3"},
			{"define {z} 3", "()"},
			{"z", "3"},
			{"define {z} 1 2", "Error: Function 'define' passed incorrect number of values to symbols. Got 2, Expected 1."},
			{"define {1} 2", "Error: Function 'define' cannot define non-symbol. Got Number, Expected Symbol."},
			{"= {w} 4", "()"},
			{"w", "4"},
		}},
		{"lambda", lisptest.TestSequence{
			{`\ {x y} {+ x y}`, "<function>"},
			{`(\ {x y} {+ x y}) 10 20`, "30"},
			{`def {add} (\ {x y} {+ x y})`, "()"},
			{"add 1 2", "3"},
			{"add 1", "Error: Function passed incorrect number of arguments. Got 1, Expected 2."},
			{"add 1 2 3", "Error: Function passed incorrect number of arguments. Got 3, Expected 2."},
			{`\ {1} {x}`, "Error: Cannot define non-symbol. Got Number, Expected Symbol."},
			{`\ {x &} {x}`, "Error: Function format invalid. Symbol '&' not followed by single symbol."},
			{`\ {x} 1`, `Error: Function '\' passed incorrect type for argument 1. Got Number, Expected Q-Expression.`},
			{`def {rest} (\ {x & xs} {xs})`, "()"},
			{"rest 1 2 3", "{2 3}"},
			{"rest 1", "{}"},
		}},
		{"lambda scope", lisptest.TestSequence{
			{"def {x} 100", "()"},
			{`def {f} (\ {x} {* x 2})`, "()"},
			{"f 5", "10"},
			{"x", "100"},
			{`def {g} (\ {a} {= {b} a})`, "()"},
			{"g 1", "()"},
			{"b", "Error: Unbound Symbol 'b'"},
			{`def {h} (\ {a} {def {c} a})`, "()"},
			{"h 7", "()"},
			{"c", "7"},
			{`def {adder} (\ {n} {\ {m} {+ n m}})`, "()"},
			{"def {add5} (adder 5)", "()"},
			{"add5 10", "15"},
			{"n", "Error: Unbound Symbol 'n'"},
		}},
		{"conditionals", lisptest.TestSequence{
			{"if (> 2 1) {+ 1 1} {+ 2 2}", "2"},
			{"if 0 {1} {2}", "2"},
			{"if 1 {} {2}", "()"},
			{"if {1} {1} {2}", "Error: Function 'if' passed incorrect type for argument 0. Got Q-Expression, Expected Number."},
			{`def {fact} (\ {n} {if (== n 0) {1} {* n (fact (- n 1))}})`, "()"},
			{"fact 5", "120"},
		}},
		{"error propagation", lisptest.TestSequence{
			{"+ 1 (/ 1 0) (def {z} 1)", "Error: Division By Zero."},
			{"z", "Error: Unbound Symbol 'z'"},
			{"+ 1 (undefined)", "Error: Unbound Symbol 'undefined'"},
			{"list 1 (head {}) (/ 1 0)", "Error: Function 'head' passed {} for argument 0."},
			{"def {x} (/ 1 0)", "Error: Division By Zero."},
			{"x", "Error: Unbound Symbol 'x'"},
		}},
	}
	r := &lisptest.Runner{}
	r.RunTestSuite(t, tests)
}

func TestStackHeightLimit(t *testing.T) {
	tests := lisptest.TestSuite{
		{"unbounded recursion", lisptest.TestSequence{
			{`def {loop} (\ {n} {loop n})`, "()"},
			{"loop 1", "Error: Maximum stack height exceeded. Got 16 frames calling lambda."},
			{"+ 1 1", "2"},
		}},
	}
	r := &lisptest.Runner{Config: []lisp.Config{lisp.WithMaximumStackHeight(16)}}
	r.RunTestSuite(t, tests)
}
