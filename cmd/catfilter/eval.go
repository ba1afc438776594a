package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivoronin/catfilter/internal/catalog"
	"github.com/ivoronin/catfilter/internal/filter"
	"github.com/ivoronin/catfilter/internal/output"
)

type evalOptions struct {
	json    bool
	file    string
	records string
}

func newEvalCmd(a *app) *cobra.Command {
	var opts evalOptions

	cmd := &cobra.Command{
		Use:   "eval [clause...]",
		Short: "Select catalog records matching a filter",
		Long: `Evaluate a filter against product records and print the ones that match
every condition. Records are read from a JSON array, a {"success","data"}
response envelope or a YAML list. Exits with 1 when nothing matches.`,
		Example: `  catfilter eval -r products.json 'price >= 100' 'category = Books'
  catfilter eval -r products.yaml -f filter.txt -j
  curl -s https://shop.example/api/products | catfilter eval -r - 'on_sale = true'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEval(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "Output matching records as JSON")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read filter text from file (- for stdin)")
	cmd.Flags().StringVarP(&opts.records, "records", "r", "", "Records file, JSON or YAML (- for stdin)")
	cmd.Flags().StringSlice("output-columns", nil, "Columns shown in text output")
	_ = cmd.MarkFlagRequired("records")
	return cmd
}

func (a *app) runEval(cmd *cobra.Command, args []string, opts evalOptions) error {
	if opts.records == "-" && (opts.file == "-" || (opts.file == "" && len(args) == 0)) {
		return inputError(errors.New("records and filter cannot both come from stdin"))
	}

	records, err := a.loadRecords(opts.records)
	if err != nil {
		return err
	}

	text, err := a.readFilter(args, opts.file)
	if err != nil {
		return err
	}
	set, err := a.parseFilter(text)
	if err != nil {
		return err
	}

	matched := filter.FilterRecords(records, set)
	a.log.Infow("evaluated filter", "records", len(records), "matched", len(matched))

	list := &output.RecordList{Columns: a.cfg.Output.Columns, Records: matched}
	if err := writeResult(cmd, list, opts.json); err != nil {
		return err
	}

	if len(matched) == 0 {
		return errNoMatch
	}
	return nil
}

func (a *app) loadRecords(path string) ([]filter.Record, error) {
	var (
		records []filter.Record
		err     error
	)
	if path == "-" {
		records, err = catalog.Load(a.stdin, catalog.FormatJSON)
	} else {
		records, err = catalog.LoadFile(path)
	}
	if err != nil {
		return nil, inputError(fmt.Errorf("load records: %w", err))
	}
	a.log.Debugw("loaded records", "source", path, "count", len(records))
	return records, nil
}
