// Package commands implements the CLI commands for depsub.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/depsub/internal/app"
	"go.trai.ch/depsub/internal/build"
)

// CLI represents the command line interface for depsub.
type CLI struct {
	app          *app.App
	rootCmd      *cobra.Command
	configureLog func(format string)
	getwd        func() (string, error)
}

// Option configures the CLI.
type Option func(*CLI)

// WithLogConfigurator installs a hook receiving the --log-format flag before
// any command runs.
func WithLogConfigurator(fn func(format string)) Option {
	return func(c *CLI) { c.configureLog = fn }
}

// WithWorkingDir fixes the directory the configuration search starts from.
func WithWorkingDir(dir string) Option {
	return func(c *CLI) {
		c.getwd = func() (string, error) { return dir, nil }
	}
}

// New creates a new CLI instance with the given app.
func New(a *app.App, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "depsub",
		Short:         "Build dependency snapshots and submit them to the GitHub dependency graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (default: search for depsub.yaml)")
	rootCmd.PersistentFlags().String("log-format", "auto", "Log format: auto, pretty or json")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write run metrics in Prometheus textfile format")
	rootCmd.PersistentFlags().IntP("concurrency", "j", 0, "Listings acquired in parallel (default: one per CPU)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
		getwd:   os.Getwd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.configureLog != nil {
			format, _ := cmd.Flags().GetString("log-format")
			c.configureLog(format)
		}
	}

	rootCmd.AddCommand(c.newSubmitCmd())
	rootCmd.AddCommand(c.newPrintCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
}

// detectOptions collects the flags shared by every detection command.
func (c *CLI) detectOptions(cmd *cobra.Command) (app.DetectOptions, error) {
	cwd, err := c.getwd()
	if err != nil {
		return app.DetectOptions{}, err
	}
	configPath, _ := cmd.Flags().GetString("config")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	opts := app.DetectOptions{
		Cwd:         cwd,
		ConfigPath:  configPath,
		MetricsFile: metricsFile,
		Concurrency: concurrency,
	}
	if f := cmd.Flags().Lookup("sha"); f != nil {
		opts.SHA = f.Value.String()
	}
	if f := cmd.Flags().Lookup("ref"); f != nil {
		opts.Ref = f.Value.String()
	}
	return opts, nil
}

func addCommitFlags(cmd *cobra.Command) {
	cmd.Flags().String("sha", "", "Commit sha to report instead of the one from the run environment")
	cmd.Flags().String("ref", "", "Git ref to report instead of the one from the run environment")
}
