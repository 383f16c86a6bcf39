package cmd

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/bmatsuo/somelisp/ast"
	"github.com/bmatsuo/somelisp/lisp"
	"github.com/bmatsuo/somelisp/parser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] file ...",
	Short: "Run lisp code",
	Long: `Run lisp code supplied via the command line or a file.
Expressions given with -e are evaluated like REPL input.  Files are
evaluated one top-level expression at a time.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, env, err := setup(cmd)
		if err != nil {
			return err
		}
		return runSources(env, args, cmd.OutOrStdout())
	},
}

func runSources(env *lisp.LEnv, args []string, out io.Writer) error {
	for _, arg := range args {
		v, err := runSource(env, arg)
		if err != nil {
			return err
		}
		if err := lisp.GoError(v); err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		if runPrint {
			fmt.Fprintln(out, v)
		}
	}
	return nil
}

func runSource(env *lisp.LEnv, arg string) (*lisp.LVal, error) {
	if runExpression {
		root, err := parser.Parse([]byte(arg))
		if err != nil {
			return nil, err
		}
		return ast.Evaluate(env, root), nil
	}
	b, err := ioutil.ReadFile(arg)
	if err != nil {
		return nil, err
	}
	return env.Load(arg, bytes.NewReader(b)), nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
