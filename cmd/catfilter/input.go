package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ivoronin/catfilter/internal/filter"
)

// readFilter returns filter text from --file, the positional arguments or
// stdin, in that order. Each argument is one line of filter text.
func (a *app) readFilter(args []string, file string) (string, error) {
	if file != "" && len(args) > 0 {
		return "", inputError(errors.New("give filter clauses as arguments or --file, not both"))
	}

	switch {
	case file == "-":
		return a.readStdin()
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", inputError(fmt.Errorf("read filter: %w", err))
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, "\n"), nil
	default:
		return a.readStdin()
	}
}

func (a *app) readStdin() (string, error) {
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", inputError(fmt.Errorf("read stdin: %w", err))
	}
	return string(data), nil
}

// parseFilter parses text with the configured options, logs every dropped
// line and fails when nothing usable is left.
func (a *app) parseFilter(text string) (filter.Set, error) {
	opts := []filter.Option{filter.WithAllowedFields(a.cfg.Parser.Fields...)}
	if a.cfg.Parser.Unquote {
		opts = append(opts, filter.WithUnquote())
	}

	report := filter.ParseReport(text, opts...)
	for _, d := range report.Dropped {
		a.log.Warnw("dropped filter line", "line", d.Line, "text", d.Text, "reason", d.Reason)
	}

	if err := report.Set.Validate(); err != nil {
		return filter.Set{}, inputError(fmt.Errorf("%w: please enter at least one filter", err))
	}
	a.log.Debugw("parsed filter", "conditions", report.Set.Len(), "dropped", len(report.Dropped))
	return report.Set, nil
}
