package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tells which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "string"
}

// Value is the typed right-hand side of a condition: a number or a string.
// The zero value is the empty string.
type Value struct {
	kind Kind
	num  decimal.Decimal
	text string
}

// NumberValue returns a numeric Value.
func NumberValue(d decimal.Decimal) Value {
	return Value{kind: KindNumber, num: d}
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Number returns the numeric value and true, or false for strings.
func (v Value) Number() (decimal.Decimal, bool) {
	if v.kind != KindNumber {
		return decimal.Zero, false
	}
	return v.num, true
}

// Text returns the string value and true, or false for numbers.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// String renders the value the way it would be typed in filter text.
func (v Value) String() string {
	if v.kind == KindNumber {
		return v.num.String()
	}
	return v.text
}

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == KindNumber {
		return v.num.Equal(other.num)
	}
	return v.text == other.text
}

// base10Number matches a complete decimal literal: sign, digits, optional
// fraction and exponent. Hex, "Infinity" and embedded spaces are rejected.
var base10Number = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// maxAdjustedExponent bounds the magnitude of accepted numbers to the
// float64 range. Larger exponents expand to millions of digits when
// printed or compared.
const maxAdjustedExponent = 308

// parseNumber converts s to a decimal if s is entirely a base-10 number
// whose magnitude is within the float64 range.
func parseNumber(s string) (decimal.Decimal, bool) {
	if !base10Number.MatchString(s) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return decimal.Zero, false
	}

	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return decimal.Zero, true
	}
	digits := int64(len(coef.Text(10)))
	if coef.Sign() < 0 {
		digits--
	}
	adjusted := int64(d.Exponent()) + digits - 1
	if adjusted > maxAdjustedExponent || adjusted < -maxAdjustedExponent {
		return decimal.Zero, false
	}
	return d, true
}

// typedValue trims raw and stores it as a number when it parses as one.
func typedValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if d, ok := parseNumber(s); ok {
		return NumberValue(d)
	}
	return StringValue(s)
}

// MarshalJSON encodes numbers as JSON numbers and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber {
		return []byte(v.num.String()), nil
	}
	return marshalPlain(v.text)
}

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case json.Number:
		d, ok := parseNumber(t.String())
		if !ok {
			return fmt.Errorf("number %s out of range", t)
		}
		*v = NumberValue(d)
	case string:
		*v = StringValue(t)
	default:
		return fmt.Errorf("value must be a number or string, got %s", string(data))
	}
	return nil
}
