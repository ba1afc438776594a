package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ivoronin/catfilter/internal/filter"
)

// RecordList implements Formatter for matched product records.
type RecordList struct {
	Columns []string
	Records []filter.Record
}

// FormatText renders the configured columns; absent or null values show "-".
func (l *RecordList) FormatText() string {
	if len(l.Records) == 0 || len(l.Columns) == 0 {
		return ""
	}

	tw := NewTableWriter()
	tw.Header(l.Columns...)
	for _, r := range l.Records {
		row := make([]string, len(l.Columns))
		for i, col := range l.Columns {
			row[i] = cell(r[col])
		}
		tw.Row(row...)
	}
	return tw.String()
}

// FormatJSON returns the full records as a JSON array.
func (l *RecordList) FormatJSON() ([]byte, error) {
	if len(l.Records) == 0 {
		return []byte("[]"), nil
	}
	return json.MarshalIndent(l.Records, "", "  ")
}

// cell renders a record value for a table column.
func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		if t == "" {
			return "-"
		}
		return t
	case []any:
		parts := make([]string, len(t))
		for i, p := range t {
			parts[i] = cell(p)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		data, err := json.Marshal(t)
		if err != nil {
			return "-"
		}
		return string(data)
	default:
		return fmt.Sprint(t)
	}
}
