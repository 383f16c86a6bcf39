package cmd

import (
	"os"

	"github.com/bmatsuo/somelisp/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive session.  Each line is evaluated as an
S-expression and its value printed.  Lines that leave lists open are
continued on the next line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, env, err := setup(cmd)
		if err != nil {
			return err
		}
		history := c.HistoryFile
		if history == "" {
			history = defaultHistoryFile()
		}
		return repl.Run(env, repl.Options{
			Prompt:      c.Prompt,
			HistoryFile: history,
			Stdout:      os.Stdout,
			Stderr:      os.Stderr,
		})
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
