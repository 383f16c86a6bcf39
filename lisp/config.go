package lisp

import "github.com/sirupsen/logrus"

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) *LVal

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the call stack height to exceed n.  Exceeding the
// height produces an LError.  A height of zero leaves the stack unbounded.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) *LVal {
		if n < 0 {
			return Errorf("negative maximum stack height: %d", n)
		}
		env.Runtime.Stack.MaxHeight = n
		return Nil()
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) *LVal {
		env.Runtime.Reader = r
		return Nil()
	}
}

// WithLogger returns a Config that makes environments write debugging output
// to logger instead of discarding it.
func WithLogger(logger *logrus.Logger) Config {
	return func(env *LEnv) *LVal {
		if logger == nil {
			return Errorf("nil logger")
		}
		env.Runtime.Logger = logger
		return Nil()
	}
}
