package repl

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bmatsuo/somelisp/ast"
	"github.com/bmatsuo/somelisp/lisp"
	"github.com/bmatsuo/somelisp/parser"
	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"
)

// Session evaluates REPL input one line at a time.  Lines are buffered while
// they leave lists open.
type Session struct {
	Env *lisp.LEnv
	Out io.Writer
	Err io.Writer
	Log logrus.FieldLogger

	buf []byte
}

// NewSession returns a Session that evaluates input in env and writes
// results to out and syntax errors to errw.
func NewSession(env *lisp.LEnv, out io.Writer, errw io.Writer) *Session {
	return &Session{
		Env: env,
		Out: out,
		Err: errw,
		Log: env.Runtime.Logger,
	}
}

// Pending returns true if the session is holding an incomplete expression.
func (s *Session) Pending() bool {
	return len(s.buf) != 0
}

// Reset discards any buffered input.
func (s *Session) Reset() {
	s.buf = nil
}

// Feed reads one line of input.  When the buffered input forms complete
// expressions it is evaluated as a single S-expression and the rendered
// result is written to s.Out.  Feed returns the evaluated value, or nil if
// nothing was evaluated.
func (s *Session) Feed(line string) *lisp.LVal {
	if len(s.buf) != 0 {
		s.buf = append(s.buf, '\n')
	}
	s.buf = append(s.buf, line...)
	text := s.buf
	if parser.Incomplete(text) {
		return nil
	}
	s.buf = nil
	if len(bytes.TrimSpace(text)) == 0 {
		return nil
	}
	root, err := parser.Parse(text)
	if err != nil {
		s.Log.WithError(err).Debug("parse failed")
		fmt.Fprintln(s.Err, err)
		return nil
	}
	if len(root.Children) == 0 {
		// only comments on the line
		return nil
	}
	v := ast.Evaluate(s.Env, root)
	fmt.Fprintln(s.Out, v)
	return v
}

// Options configure Run.
type Options struct {
	Prompt      string
	HistoryFile string
	Stdout      io.Writer
	Stderr      io.Writer
}

// Run runs a simple repl evaluating input in env until EOF.
func Run(env *lisp.LEnv, opts Options) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          opts.Prompt,
		HistoryFile:     opts.HistoryFile,
		InterruptPrompt: "^C",
		Stdout:          opts.Stdout,
		Stderr:          opts.Stderr,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(opts.Prompt)) // prompt had better be ascii...

	session := NewSession(env, rl.Stdout(), rl.Stderr())
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			session.Reset()
			rl.SetPrompt(opts.Prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		session.Feed(line)
		if session.Pending() {
			rl.SetPrompt(contPrompt)
		} else {
			rl.SetPrompt(opts.Prompt)
		}
	}
}
