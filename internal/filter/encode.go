package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// wireCondition is the per-field JSON shape the segment API consumes:
// {"price": {"type": "gte", "value": 100}}.
type wireCondition struct {
	Type  Operator `json:"type"`
	Value Value    `json:"value"`
}

// MarshalJSON encodes the set as an object keyed by field.
func (s Set) MarshalJSON() ([]byte, error) {
	wire := make(map[string]wireCondition, len(s.conds))
	for f, c := range s.conds {
		wire[f] = wireCondition{Type: c.Operator, Value: c.Value}
	}
	return marshalPlain(wire)
}

// marshalPlain is json.Marshal without HTML escaping, so "&", "<" and ">"
// stay literal the way JSON.stringify leaves them.
func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes the object produced by MarshalJSON.
func (s *Set) UnmarshalJSON(data []byte) error {
	var wire map[string]wireCondition
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	conds := make(map[string]Condition, len(wire))
	for f, w := range wire {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("empty field name")
		}
		if !w.Type.Valid() {
			return fmt.Errorf("field %s: unknown operator %q", f, w.Type)
		}
		conds[f] = Condition{Field: f, Operator: w.Type, Value: w.Value}
	}
	s.conds = conds
	return nil
}

// Format renders the set back into filter text, one clause per line,
// ordered by field. Parsing the result yields an equal set as long as
// string values do not themselves look like numbers.
func Format(s Set) string {
	lines := make([]string, 0, s.Len())
	for _, c := range s.Conditions() {
		lines = append(lines, fmt.Sprintf("%s %s %s", c.Field, c.Operator.Symbol(), c.Value))
	}
	return strings.Join(lines, "\n")
}

// uriComponentKeep undoes the escapes url.QueryEscape applies to characters
// that JavaScript's encodeURIComponent leaves alone.
var uriComponentKeep = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// QueryParam returns the JSON form of the set escaped like encodeURIComponent,
// ready to follow "filters=" in a segment request.
func QueryParam(s Set) (string, error) {
	data, err := marshalPlain(s)
	if err != nil {
		return "", err
	}
	return uriComponentKeep.Replace(url.QueryEscape(string(data))), nil
}
