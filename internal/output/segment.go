package output

import (
	"encoding/json"

	"github.com/ivoronin/catfilter/internal/filter"
)

// SegmentOutput implements Formatter for a segment request URL.
type SegmentOutput struct {
	URL string
	Set filter.Set
}

// FormatText prints the bare URL.
func (s *SegmentOutput) FormatText() string {
	return s.URL
}

// FormatJSON returns {"url": ..., "filters": {...}}.
func (s *SegmentOutput) FormatJSON() ([]byte, error) {
	return json.MarshalIndent(struct {
		URL     string     `json:"url"`
		Filters filter.Set `json:"filters"`
	}{URL: s.URL, Filters: s.Set}, "", "  ")
}
