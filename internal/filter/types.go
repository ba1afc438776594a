// Package filter provides catalog filter expression parsing and matching.
package filter

import (
	"errors"
	"sort"
)

// ErrNoConditions is reported when filter text yields no usable condition.
var ErrNoConditions = errors.New("no usable filter conditions")

// Operator is the comparison kind of a condition.
// Values are the names the segment API expects in the "type" field.
type Operator string

const (
	OpEqual        Operator = "equals"
	OpNotEqual     Operator = "notEquals"
	OpGreater      Operator = "gt"
	OpLess         Operator = "lt"
	OpGreaterEqual Operator = "gte"
	OpLessEqual    Operator = "lte"
)

// operatorSymbols maps raw comparison tokens to operators.
// Any other run of comparison characters means OpEqual.
var operatorSymbols = map[string]Operator{
	">":  OpGreater,
	"<":  OpLess,
	">=": OpGreaterEqual,
	"<=": OpLessEqual,
	"!=": OpNotEqual,
	"=":  OpEqual,
}

// ParseOperator maps a raw token such as ">=" to its operator.
func ParseOperator(tok string) Operator {
	if op, ok := operatorSymbols[tok]; ok {
		return op
	}
	return OpEqual
}

// Symbol returns the canonical raw token for the operator.
func (o Operator) Symbol() string {
	switch o {
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	case OpGreaterEqual:
		return ">="
	case OpLessEqual:
		return "<="
	case OpNotEqual:
		return "!="
	default:
		return "="
	}
}

// Valid reports whether o is one of the known operators.
func (o Operator) Valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return true
	}
	return false
}

// Condition is a single field/operator/value triple from one input line.
type Condition struct {
	Field    string
	Operator Operator
	Value    Value
}

// Equal reports whether two conditions have the same field, operator and value.
func (c Condition) Equal(other Condition) bool {
	return c.Field == other.Field && c.Operator == other.Operator && c.Value.Equal(other.Value)
}

// Set maps field names to conditions. The zero value is an empty set.
// A Set is never modified after construction.
type Set struct {
	conds map[string]Condition
}

// NewSet builds a set from conditions. Later conditions replace earlier
// ones with the same field; conditions with an empty field are ignored.
func NewSet(conds ...Condition) Set {
	m := make(map[string]Condition, len(conds))
	for _, c := range conds {
		if c.Field == "" {
			continue
		}
		m[c.Field] = c
	}
	return Set{conds: m}
}

// Len returns the number of conditions.
func (s Set) Len() int { return len(s.conds) }

// IsEmpty reports whether the set has no conditions.
func (s Set) IsEmpty() bool { return len(s.conds) == 0 }

// Get returns the condition for field.
func (s Set) Get(field string) (Condition, bool) {
	c, ok := s.conds[field]
	return c, ok
}

// Fields returns the field names in ascending order.
func (s Set) Fields() []string {
	fields := make([]string, 0, len(s.conds))
	for f := range s.conds {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Conditions returns the conditions ordered by field.
func (s Set) Conditions() []Condition {
	out := make([]Condition, 0, len(s.conds))
	for _, f := range s.Fields() {
		out = append(out, s.conds[f])
	}
	return out
}

// Validate returns ErrNoConditions for an empty set.
func (s Set) Validate() error {
	if s.IsEmpty() {
		return ErrNoConditions
	}
	return nil
}

// Equal reports whether both sets hold equal conditions for the same fields.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for f, c := range s.conds {
		oc, ok := other.conds[f]
		if !ok || !c.Equal(oc) {
			return false
		}
	}
	return true
}

// DroppedLine describes an input line that produced no condition.
type DroppedLine struct {
	Line   int // 1-based, counted after clause splitting
	Text   string
	Reason string
}

// Report is the detailed result of parsing filter text.
type Report struct {
	Set     Set
	Dropped []DroppedLine
}
