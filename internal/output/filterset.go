package output

import (
	"encoding/json"

	"github.com/ivoronin/catfilter/internal/filter"
)

// FilterSetOutput implements Formatter for a parsed filter set.
// JSON output is exactly the wire form the segment API accepts.
type FilterSetOutput struct {
	Set filter.Set
}

// FormatText lists one condition per row ordered by field.
// Header: FIELD, OPERATOR, TYPE, VALUE
func (f *FilterSetOutput) FormatText() string {
	if f.Set.IsEmpty() {
		return ""
	}

	tw := NewTableWriter()
	tw.Header("field", "operator", "type", "value")
	for _, c := range f.Set.Conditions() {
		value := c.Value.String()
		if value == "" {
			value = `""`
		}
		tw.Row(c.Field, string(c.Operator), c.Value.Kind().String(), value)
	}
	return tw.String()
}

// FormatJSON returns {"field": {"type": ..., "value": ...}, ...}.
func (f *FilterSetOutput) FormatJSON() ([]byte, error) {
	return json.MarshalIndent(f.Set, "", "  ")
}
