// Package testutil runs the catfilter command tree in-process for tests.
package testutil

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// ExecResult holds the result of a CLI command execution.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner is the CLI entry point: it executes args and returns the exit code.
type Runner func(args []string, stdin io.Reader, stdout, stderr io.Writer) int

// RunCLI executes run with the given arguments and an empty stdin.
func RunCLI(tb testing.TB, run Runner, args ...string) ExecResult {
	tb.Helper()
	return RunCLIWithStdin(tb, run, "", args...)
}

// RunCLIWithStdin executes run with stdin fed from the given string.
func RunCLIWithStdin(tb testing.TB, run Runner, stdin string, args ...string) ExecResult {
	tb.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)

	return ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: code,
	}
}
