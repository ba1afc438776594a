package main

import (
	"github.com/spf13/cobra"

	"github.com/ivoronin/catfilter/internal/output"
	"github.com/ivoronin/catfilter/internal/segment"
)

type sqlOptions struct {
	json bool
	file string
}

func newSQLCmd(a *app) *cobra.Command {
	var opts sqlOptions

	cmd := &cobra.Command{
		Use:   "sql [clause...]",
		Short: "Render a filter as a parameterized SQL query",
		Long: `Render the filter set as a PostgreSQL SELECT with one placeholder per
condition. Fields must be listed in --columns when it is set, and must be
plain identifiers otherwise.`,
		Example: `  catfilter sql 'price >= 100' 'category = Books'
  catfilter sql --table items --columns price,category -f filter.txt -j`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSQL(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "Output query and arguments as JSON")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read filter text from file (- for stdin)")
	cmd.Flags().String("table", "products", "Table to select from")
	cmd.Flags().StringSlice("columns", nil, "Columns filters may use (default any identifier)")
	return cmd
}

func (a *app) runSQL(cmd *cobra.Command, args []string, opts sqlOptions) error {
	text, err := a.readFilter(args, opts.file)
	if err != nil {
		return err
	}
	set, err := a.parseFilter(text)
	if err != nil {
		return err
	}

	query, qargs, err := segment.SQL(a.cfg.Segment.Table, set, a.cfg.Segment.Columns)
	if err != nil {
		return inputError(err)
	}

	return writeResult(cmd, &output.SQLOutput{Query: query, Args: qargs}, opts.json)
}
