package lisp

import (
	"fmt"
	"io"
)

// CallStack is a function call stack.  The evaluator pushes a frame for every
// function application and pops it when the application returns.
type CallStack struct {
	Frames []CallFrame

	// MaxHeight is the maximum number of frames allowed on the stack.  When
	// MaxHeight is zero the stack height is bounded only by the Go runtime.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name  string
	NArgs int
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new stack frame onto s.  Push returns an LError if the push
// would exceed s.MaxHeight, otherwise it returns nil.
func (s *CallStack) Push(name string, nargs int) *LVal {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return Errorf("Maximum stack height exceeded. Got %d frames calling %s.",
			len(s.Frames), name)
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, NArgs: nargs})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		_n, err := fmt.Fprintf(w, "%sheight %d: %s (%d args)\n", indent, i, f.Name, f.NArgs)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
