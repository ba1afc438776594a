package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ivoronin/catfilter/internal/output"
	"github.com/ivoronin/catfilter/internal/segment"
)

type segmentOptions struct {
	json bool
	file string
}

func newSegmentCmd(a *app) *cobra.Command {
	var opts segmentOptions

	cmd := &cobra.Command{
		Use:   "segment [clause...]",
		Short: "Build the segment request URL for a filter",
		Long: `Encode the filter set as JSON, escape it like encodeURIComponent and append
it as the filters parameter of the segment endpoint URL. Nothing is sent.`,
		Example: `  catfilter segment --base-url https://shop.example/api/segment 'price >= 100'
  CATFILTER_SEGMENT_BASE_URL=https://shop.example/api/segment catfilter segment -f filter.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSegment(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "Output URL and filters as JSON")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read filter text from file (- for stdin)")
	cmd.Flags().String("base-url", "", "Segment endpoint URL")
	return cmd
}

func (a *app) runSegment(cmd *cobra.Command, args []string, opts segmentOptions) error {
	if a.cfg.Segment.BaseURL == "" {
		return inputError(errors.New("segment base URL not set: use --base-url or segment.base_url"))
	}

	text, err := a.readFilter(args, opts.file)
	if err != nil {
		return err
	}
	set, err := a.parseFilter(text)
	if err != nil {
		return err
	}

	u, err := segment.URL(a.cfg.Segment.BaseURL, set)
	if err != nil {
		return inputError(err)
	}
	a.log.Debugw("built segment URL", "url", u)

	return writeResult(cmd, &output.SegmentOutput{URL: u, Set: set}, opts.json)
}
