package output

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SQLOutput implements Formatter for a rendered segment query.
type SQLOutput struct {
	Query string
	Args  []any
}

// FormatText prints the statement followed by one "$n = value" line per argument.
func (s *SQLOutput) FormatText() string {
	var b strings.Builder
	b.WriteString(s.Query)
	for i, a := range s.Args {
		fmt.Fprintf(&b, "\n-- $%d = %s", i+1, argString(a))
	}
	return b.String()
}

// FormatJSON returns {"sql": ..., "args": [...]}.
func (s *SQLOutput) FormatJSON() ([]byte, error) {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = argString(a)
	}
	return json.MarshalIndent(struct {
		SQL  string   `json:"sql"`
		Args []string `json:"args"`
	}{SQL: s.Query, Args: args}, "", "  ")
}

func argString(a any) string {
	if s, ok := a.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(a)
}
