// Package segment turns filter sets into segment queries: the request URL
// the catalog front end sends, and the SQL a segment service would run.
package segment

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/ivoronin/catfilter/internal/filter"
)

var (
	// ErrEmptyFilter is returned when a segment is requested without conditions.
	ErrEmptyFilter = errors.New("segment needs at least one filter condition")
	// ErrInvalidColumn is returned for fields that cannot be used as SQL columns.
	ErrInvalidColumn = errors.New("invalid filter column")
)

// FiltersParam is the query parameter carrying the encoded filter set.
const FiltersParam = "filters"

// URL appends filters=<encoded set> to base, keeping its other parameters.
func URL(base string, s filter.Set) (string, error) {
	if s.IsEmpty() {
		return "", ErrEmptyFilter
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid segment URL %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid segment URL %q: scheme and host required", base)
	}

	param, err := filter.QueryParam(s)
	if err != nil {
		return "", err
	}

	// The filter value is already escaped; drop any previous filters value
	// and append ours verbatim so the encodeURIComponent form survives.
	q := u.Query()
	q.Del(FiltersParam)
	raw := q.Encode()
	if raw != "" {
		raw += "&"
	}
	u.RawQuery = raw + FiltersParam + "=" + param
	return u.String(), nil
}

// identifier is what an unlisted field must look like to be used as a column.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQL renders the set as a PostgreSQL SELECT over table, one predicate per
// condition in field order. When columns is non-empty only those fields are
// accepted; otherwise every field must be a plain identifier.
func SQL(table string, s filter.Set, columns []string) (string, []any, error) {
	if s.IsEmpty() {
		return "", nil, ErrEmptyFilter
	}
	if !identifier.MatchString(table) {
		return "", nil, fmt.Errorf("invalid table name %q", table)
	}

	validCols := make(map[string]bool, len(columns))
	for _, col := range columns {
		validCols[col] = true
	}

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("*").
		From(table)

	for _, c := range s.Conditions() {
		if len(validCols) > 0 && !validCols[c.Field] {
			return "", nil, fmt.Errorf("%w: %s", ErrInvalidColumn, c.Field)
		}
		if !identifier.MatchString(c.Field) {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidColumn, c.Field)
		}

		pred, err := predicate(c)
		if err != nil {
			return "", nil, err
		}
		q = q.Where(pred)
	}

	return q.ToSql()
}

// predicate maps one condition to its squirrel expression.
func predicate(c filter.Condition) (squirrel.Sqlizer, error) {
	val := sqlValue(c.Value)

	switch c.Operator {
	case filter.OpEqual:
		return squirrel.Eq{c.Field: val}, nil
	case filter.OpNotEqual:
		return squirrel.NotEq{c.Field: val}, nil
	case filter.OpGreater:
		return squirrel.Gt{c.Field: val}, nil
	case filter.OpLess:
		return squirrel.Lt{c.Field: val}, nil
	case filter.OpGreaterEqual:
		return squirrel.GtOrEq{c.Field: val}, nil
	case filter.OpLessEqual:
		return squirrel.LtOrEq{c.Field: val}, nil
	default:
		return nil, fmt.Errorf("field %s: unsupported operator %q", c.Field, c.Operator)
	}
}

// sqlValue unwraps the tagged value into a plain driver argument: int64
// for integral numbers that fit, the exact decimal text as json.Number for
// other numbers, string otherwise.
func sqlValue(v filter.Value) any {
	d, ok := v.Number()
	if !ok {
		return v.String()
	}
	if d.IsInteger() {
		if i := d.IntPart(); decimal.NewFromInt(i).Equal(d) {
			return i
		}
	}
	return json.Number(d.String())
}
