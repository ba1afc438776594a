package filter

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// AST types for Participle grammar

// lineExpr is one filter clause: field, operator, then the rest of the line.
// The right-hand side may contain further operator characters, so it is
// collected token by token and joined back together.
type lineExpr struct {
	Field string   `parser:"@Text"`
	Op    string   `parser:"@Op"`
	Rest  []string `parser:"( @Text | @Op )*"`
}

// Text tokens keep their whitespace so that joining the right-hand side
// reproduces the input exactly.
var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Op", Pattern: `[><=!]+`},
	{Name: "Text", Pattern: `[^><=!]+`},
})

var lineParser = participle.MustBuild[lineExpr](
	participle.Lexer(lineLexer),
)

// Option tunes parsing.
type Option func(*parseConfig)

type parseConfig struct {
	unquote bool
	allowed map[string]bool // nil accepts every field
}

// WithUnquote strips one pair of matching surrounding quotes from string
// values, so `title = "Dune"` yields Dune instead of "Dune".
func WithUnquote() Option {
	return func(c *parseConfig) { c.unquote = true }
}

// WithAllowedFields drops lines whose field is not one of fields.
// An empty list leaves every field allowed.
func WithAllowedFields(fields ...string) Option {
	return func(c *parseConfig) {
		if len(fields) == 0 {
			c.allowed = nil
			return
		}
		c.allowed = make(map[string]bool, len(fields))
		for _, f := range fields {
			c.allowed[strings.TrimSpace(f)] = true
		}
	}
}

// Parse converts filter text (one "field op value" clause per line) into a Set.
// Malformed lines are skipped; an input without usable lines gives an empty Set.
func Parse(text string, opts ...Option) Set {
	return ParseReport(text, opts...).Set
}

// ParseReport is Parse that also lists the lines it skipped and why.
func ParseReport(text string, opts ...Option) Report {
	var cfg parseConfig
	for _, o := range opts {
		o(&cfg)
	}

	conds := make(map[string]Condition)
	var dropped []DroppedLine

	for i, raw := range strings.Split(SplitClauses(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		c, err := parseLine(line)
		if err != nil {
			dropped = append(dropped, DroppedLine{Line: i + 1, Text: line, Reason: err.Error()})
			continue
		}
		if cfg.allowed != nil && !cfg.allowed[c.Field] {
			dropped = append(dropped, DroppedLine{Line: i + 1, Text: line, Reason: fmt.Sprintf("unknown field %q", c.Field)})
			continue
		}
		if cfg.unquote {
			c.Value = unquote(c.Value)
		}

		// Last clause for a field wins
		conds[c.Field] = c
	}

	return Report{Set: Set{conds: conds}, Dropped: dropped}
}

// parseLine parses a single trimmed, non-empty line.
func parseLine(line string) (Condition, error) {
	ast, err := lineParser.ParseString("", line)
	if err != nil {
		return Condition{}, fmt.Errorf("malformed clause: %w", err)
	}

	field := strings.TrimSpace(ast.Field)
	if field == "" {
		return Condition{}, fmt.Errorf("missing field name")
	}

	return Condition{
		Field:    field,
		Operator: ParseOperator(ast.Op),
		Value:    typedValue(strings.Join(ast.Rest, "")),
	}, nil
}

// unquote removes one pair of matching single or double quotes around a
// string value. Numbers and unbalanced quotes are left alone.
func unquote(v Value) Value {
	s, ok := v.Text()
	if !ok || len(s) < 2 {
		return v
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '"' && first != '\'') {
		return v
	}
	return StringValue(s[1 : len(s)-1])
}
