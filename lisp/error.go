package lisp

import (
	"fmt"
	"unicode/utf8"
)

// MaxErrorLen is the maximum length in bytes of an error message.  Longer
// messages are truncated.
const MaxErrorLen = 512

// ErrorVal implements the error interface so that lisp errors can be
// returned to Go callers.  The error message is stored in the Str field.
type ErrorVal LVal

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	return e.Str
}

// Errorf returns an LVal representing an error with a formatted message.
// The message is rendered immediately and truncated to MaxErrorLen.
func Errorf(format string, v ...interface{}) *LVal {
	return &LVal{
		Type: LError,
		Str:  truncateMessage(fmt.Sprintf(format, v...)),
	}
}

// Error returns an LVal representing err.
func Error(err error) *LVal {
	return Errorf("%s", err.Error())
}

// GoError returns an error that represents v.  If v is not LError then nil is
// returned.
func GoError(v *LVal) error {
	if v.Type != LError {
		return nil
	}
	return (*ErrorVal)(v)
}

func truncateMessage(msg string) string {
	if len(msg) <= MaxErrorLen {
		return msg
	}
	n := MaxErrorLen
	// back up to the start of the rune that straddles the limit
	for i := 0; i < utf8.UTFMax && n > 0 && !utf8.RuneStart(msg[n]); i++ {
		n--
	}
	return msg[:n]
}
