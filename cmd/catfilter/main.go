package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ivoronin/catfilter/internal/config"
	"github.com/ivoronin/catfilter/internal/logging"
	"github.com/ivoronin/catfilter/internal/output"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app is the state shared by subcommands of one invocation.
// cfg and log are set by the root command before any subcommand runs.
type app struct {
	stdin      io.Reader
	stderr     io.Writer
	configPath string

	cfg *config.Config
	log *zap.SugaredLogger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "catfilter",
		Short: "Parse and evaluate product catalog filter expressions",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "Config file (default ./catfilter.yaml)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("log-output", "", "Log file (default stderr)")
	pf.Bool("unquote", false, "Strip matching quotes around string values")
	pf.StringSlice("fields", nil, "Accepted filter fields, others are dropped (default any)")

	root.AddCommand(newParseCmd(a))
	root.AddCommand(newEvalCmd(a))
	root.AddCommand(newSegmentCmd(a))
	root.AddCommand(newSQLCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return inputError(err)
	}

	logCfg := logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		Writer:      a.stderr,
	}
	if cfg.Log.Output != "" {
		logCfg.Writer = nil
		logCfg.OutputPaths = []string{cfg.Log.Output}
	}
	log, err := logging.New(logCfg)
	if err != nil {
		return inputError(fmt.Errorf("init logger: %w", err))
	}

	a.cfg, a.log = cfg, log
	if cfg.File != "" {
		log.Debugw("loaded config", "file", cfg.File)
	}
	return nil
}

// writeResult writes a formatted result to the command's stdout.
func writeResult(cmd *cobra.Command, f output.Formatter, jsonMode bool) error {
	result, err := output.FormatOutput(f, output.FormatFor(jsonMode))
	if err != nil {
		return err
	}
	if result != "" {
		fmt.Fprintln(cmd.OutOrStdout(), result)
	}
	return nil
}

// run executes the command tree and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stderr: stderr}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.log != nil {
		_ = a.log.Sync()
	}
	return exitCode(err, stderr)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
