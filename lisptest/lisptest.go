// Package lisptest runs tables of lisp expressions against fresh
// environments.
package lisptest

import (
	"testing"

	"github.com/bmatsuo/somelisp/ast"
	"github.com/bmatsuo/somelisp/lisp"
	"github.com/bmatsuo/somelisp/lisp/lisplib"
	"github.com/bmatsuo/somelisp/parser"
)

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.LEnv.  Each Expr is evaluated as a line of REPL
// input, so the outermost parentheses may be omitted.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// Runner is a test runner.
type Runner struct {
	// Prelude loads lisplib into each test environment.
	Prelude bool
	// Config is applied to each test environment.
	Config []lisp.Config
}

// NewEnv returns an initialized root environment.
func (r *Runner) NewEnv(t testing.TB) *lisp.LEnv {
	t.Helper()
	env := lisp.NewEnv(nil)
	config := append([]lisp.Config{lisp.WithReader(parser.NewReader())}, r.Config...)
	lerr := lisp.InitializeUserEnv(env, config...)
	if lerr.Type == lisp.LError {
		t.Fatalf("failed to initialize lisp environment: %v", lerr)
	}
	if r.Prelude {
		lerr = lisplib.LoadLibrary(env)
		if lerr.Type == lisp.LError {
			t.Fatalf("failed to load library: %v", lerr)
		}
	}
	return env
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		env := r.NewEnv(t)
		for j, expr := range test.TestSequence {
			root, err := parser.Parse([]byte(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			result := ast.Evaluate(env, root).String()
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}

// RunTestSuite runs tests with a default Runner that loads the prelude.
func RunTestSuite(t *testing.T, tests TestSuite) {
	r := &Runner{Prelude: true}
	r.RunTestSuite(t, tests)
}
