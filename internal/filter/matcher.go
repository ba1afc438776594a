package filter

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Record is a flat product record keyed by field name.
type Record map[string]any

// operatorStrategy decides whether a record value satisfies a condition value.
type operatorStrategy interface {
	Match(got any, want Value) bool
}

// operatorStrategies maps operators to their comparison strategies.
var operatorStrategies = map[Operator]operatorStrategy{
	OpEqual:        equalStrategy{},
	OpNotEqual:     notEqualStrategy{},
	OpGreater:      orderedStrategy(func(cmp int) bool { return cmp > 0 }),
	OpLess:         orderedStrategy(func(cmp int) bool { return cmp < 0 }),
	OpGreaterEqual: orderedStrategy(func(cmp int) bool { return cmp >= 0 }),
	OpLessEqual:    orderedStrategy(func(cmp int) bool { return cmp <= 0 }),
}

// Strategy implementations

type equalStrategy struct{}

func (equalStrategy) Match(got any, want Value) bool { return strictEqual(got, want) }

type notEqualStrategy struct{}

func (notEqualStrategy) Match(got any, want Value) bool { return !strictEqual(got, want) }

// orderedStrategy coerces both sides to numbers and checks the result of
// record.Cmp(condition). Anything that is not a number fails the condition.
type orderedStrategy func(cmp int) bool

func (s orderedStrategy) Match(got any, want Value) bool {
	a, ok := coerceNumber(got)
	if !ok {
		return false
	}
	b, ok := want.Number()
	if !ok {
		if b, ok = parseNumber(strings.TrimSpace(want.String())); !ok {
			return false
		}
	}
	return s(a.Cmp(b))
}

// Match reports whether rec satisfies every condition in the set.
// An empty set matches every record.
func (s Set) Match(rec Record) bool {
	for _, c := range s.conds {
		if !matchCondition(c, rec) {
			return false
		}
	}
	return true
}

// matchCondition evaluates one condition. A field missing from the record
// fails the condition whatever the operator.
func matchCondition(c Condition, rec Record) bool {
	got, ok := rec[c.Field]
	if !ok {
		return false
	}

	strategy, ok := operatorStrategies[c.Operator]
	if !ok {
		return false // Unknown operator
	}
	return strategy.Match(got, c.Value)
}

// strictEqual compares without cross-type coercion: numbers only equal
// numbers, strings only equal identical strings.
func strictEqual(got any, want Value) bool {
	if n, ok := want.Number(); ok {
		g, ok := numberOf(got)
		return ok && g.Equal(n)
	}
	s, ok := got.(string)
	return ok && s == want.String()
}

// numberOf converts Go numeric types, json.Number and decimals.
// Strings are not numbers here.
func numberOf(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case json.Number:
		return parseNumber(t.String())
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int8:
		return decimal.NewFromInt(int64(t)), true
	case int16:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case uint:
		return uintNumber(uint64(t)), true
	case uint8:
		return uintNumber(uint64(t)), true
	case uint16:
		return uintNumber(uint64(t)), true
	case uint32:
		return uintNumber(uint64(t)), true
	case uint64:
		return uintNumber(t), true
	case float32:
		return floatNumber(float64(t))
	case float64:
		return floatNumber(t)
	}
	return decimal.Zero, false
}

// coerceNumber is numberOf plus numeric strings.
func coerceNumber(v any) (decimal.Decimal, bool) {
	if s, ok := v.(string); ok {
		return parseNumber(strings.TrimSpace(s))
	}
	return numberOf(v)
}

func uintNumber(u uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func floatNumber(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// FilterRecords returns the records that match the set, in input order.
func FilterRecords(records []Record, s Set) []Record {
	result := make([]Record, 0, len(records))
	for _, r := range records {
		if s.Match(r) {
			result = append(result, r)
		}
	}
	return result
}
