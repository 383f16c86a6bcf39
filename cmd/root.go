package cmd

import (
	"fmt"
	"os"

	"github.com/bmatsuo/somelisp/lisp"
	"github.com/bmatsuo/somelisp/lisp/lisplib"
	"github.com/bmatsuo/somelisp/parser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootConfigFile string
	rootLogLevel   string
	rootNoPrelude  bool
	rootMaxStack   int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "somelisp",
	Short: "A small lisp interpreter",
	Long: `A small lisp interpreter with numbers, symbols, S-expressions and
Q-expressions.  Without a subcommand an interactive session is started.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return replCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigFile, "config", "",
		"YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rootNoPrelude, "no-prelude", false,
		"Do not load the standard prelude")
	rootCmd.PersistentFlags().IntVar(&rootMaxStack, "max-stack", -1,
		"Maximum call stack height (0 for unbounded)")
}

// loadConfig reads the configuration file and applies flags that were set
// on cmd.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	c, err := ReadConfigFile(rootConfigFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		c.LogLevel = rootLogLevel
	}
	if flags.Changed("no-prelude") {
		c.Prelude = !rootNoPrelude
	}
	if flags.Changed("max-stack") {
		c.MaxStackHeight = rootMaxStack
	}
	return c, nil
}

func newLogger(c *Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Level = level
	return logger, nil
}

// newEnv creates the root environment for a command.
func newEnv(c *Config, logger *logrus.Logger) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	lerr := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithLogger(logger),
		lisp.WithMaximumStackHeight(c.MaxStackHeight),
	)
	if err := lisp.GoError(lerr); err != nil {
		return nil, fmt.Errorf("initialize environment: %w", err)
	}
	if c.Prelude {
		lerr = lisplib.LoadLibrary(env)
		if err := lisp.GoError(lerr); err != nil {
			return nil, fmt.Errorf("load prelude: %w", err)
		}
		logger.Debug("prelude loaded")
	}
	return env, nil
}

// setup loads configuration and returns a ready environment.
func setup(cmd *cobra.Command) (*Config, *lisp.LEnv, error) {
	c, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(c)
	if err != nil {
		return nil, nil, err
	}
	env, err := newEnv(c, logger)
	if err != nil {
		return nil, nil, err
	}
	return c, env, nil
}
