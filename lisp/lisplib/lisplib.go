// Package lisplib is used to conveniently load the standard library for the
// somelisp environment
package lisplib

import (
	_ "embed" // prelude source

	"github.com/bmatsuo/somelisp/lisp"
)

//go:embed prelude.lisp
var prelude string

// PreludeName is the source name reported for errors in the prelude.
const PreludeName = "prelude.lisp"

// LoadLibrary evaluates the prelude in env.  The environment runtime must
// have a Reader.
func LoadLibrary(env *lisp.LEnv) *lisp.LVal {
	e := env.LoadString(PreludeName, prelude)
	if e.Type == lisp.LError {
		return e
	}
	return lisp.Nil()
}
