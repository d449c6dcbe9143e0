// Package main is the entry point for the depsub dependency submission tool.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/depsub/cmd/depsub/commands"
	"go.trai.ch/depsub/internal/adapters/detector"
	"go.trai.ch/depsub/internal/adapters/logger"
	"go.trai.ch/depsub/internal/app"
	_ "go.trai.ch/depsub/internal/wiring"
)

func main() {
	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...commands.Option) int {
	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}

	// 2. Logging follows the --log-format flag once it is parsed
	l, _ := components.Logger.(*logger.Logger)
	if l != nil {
		l.SetOutput(stderr)
	}
	configureLog := func(format string) {
		if l != nil {
			l.SetFormat(detector.ResolveLogFormat(detector.DetectLogFormat(), format))
		}
	}

	// 3. Interface - CLI
	opts = append([]commands.Option{commands.WithLogConfigurator(configureLog)}, opts...)
	cli := commands.New(components.App, opts...)
	cli.SetArgs(args)
	cli.SetOutput(stdout)

	// 4. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
