package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// version is overridden at link time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, newCommandContext(), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs one invocation and returns the process exit status.
func execute(ctx context.Context, cc *commandContext, args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(cc)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	if !errors.Is(err, context.Canceled) {
		reportFailure(stderr, err, cc.colorize(stderr))
	}
	return exitCode(err, cc.started)
}

func reportFailure(w io.Writer, err error, colorize bool) {
	line := "Execution failed: " + err.Error()
	if colorize {
		line = ansiRed + line + ansiReset
	}
	fmt.Fprintln(w, line)
	if hint := failureHint(err); hint != "" {
		fmt.Fprintln(w, hint)
	}
}
