package output

import (
	"bytes"
	"strings"
	"text/tabwriter"
)

// cellReplacer flattens characters that would break column alignment.
var cellReplacer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// TableWriter provides kubectl-style aligned column output using text/tabwriter.
type TableWriter struct {
	buf     bytes.Buffer
	w       *tabwriter.Writer
	hasData bool
}

// NewTableWriter creates a new TableWriter.
// Settings: minwidth=0, tabwidth=0, padding=3, padchar=' ', flags=0
func NewTableWriter() *TableWriter {
	t := &TableWriter{}
	t.w = tabwriter.NewWriter(&t.buf, 0, 0, 3, ' ', 0)
	return t
}

// Header writes the header row; column names are upper-cased.
func (t *TableWriter) Header(columns ...string) {
	upper := make([]string, len(columns))
	for i, c := range columns {
		upper[i] = strings.ToUpper(c)
	}
	t.write(upper)
}

// Row writes a data row with the given values.
func (t *TableWriter) Row(values ...string) {
	t.write(values)
}

func (t *TableWriter) write(cells []string) {
	t.hasData = true
	clean := make([]string, len(cells))
	for i, c := range cells {
		clean[i] = cellReplacer.Replace(c)
	}
	_, _ = t.w.Write([]byte(strings.Join(clean, "\t") + "\n"))
}

// String flushes the writer and returns the formatted output.
// Returns empty string if no data was written.
func (t *TableWriter) String() string {
	if !t.hasData {
		return ""
	}
	_ = t.w.Flush()
	return strings.TrimSuffix(t.buf.String(), "\n")
}
