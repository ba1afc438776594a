package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivoronin/catfilter/internal/filter"
	"github.com/ivoronin/catfilter/internal/output"
)

type parseOptions struct {
	json      bool
	file      string
	normalize bool
	query     bool
}

func newParseCmd(a *app) *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse [clause...]",
		Short: "Parse filter text into conditions",
		Long: `Parse filter text into field conditions. Clauses come from the arguments,
--file or stdin, one per line. Several clauses typed on one line are split apart.
Lines that do not parse are skipped and logged.`,
		Example: `  catfilter parse 'price >= 100' 'category = Books'
  echo 'on_sale = true price < 50' | catfilter parse -j
  catfilter parse -f filter.txt --query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "Output the segment API JSON form")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read filter text from file (- for stdin)")
	cmd.Flags().BoolVarP(&opts.normalize, "normalize", "n", false, "Output normalized filter text, one clause per line")
	cmd.Flags().BoolVarP(&opts.query, "query", "q", false, "Output the URL-encoded filters parameter value")
	cmd.MarkFlagsMutuallyExclusive("json", "normalize", "query")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, args []string, opts parseOptions) error {
	text, err := a.readFilter(args, opts.file)
	if err != nil {
		return err
	}

	set, err := a.parseFilter(text)
	if err != nil {
		return err
	}

	switch {
	case opts.normalize:
		fmt.Fprintln(cmd.OutOrStdout(), filter.Format(set))
		return nil
	case opts.query:
		param, err := filter.QueryParam(set)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), param)
		return nil
	}

	return writeResult(cmd, &output.FilterSetOutput{Set: set}, opts.json)
}
