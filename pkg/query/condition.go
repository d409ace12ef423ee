package query

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Record exposes column values of a single row to in-memory evaluation.
// The second return value is false when the column is unknown or unset.
type Record interface {
	Text(column string) (string, bool)
	Decimal(column string) (decimal.Decimal, bool)
}

// Condition is one WHERE clause term. It renders to SQL using '?' bind
// variables (callers rebind for their driver) and can evaluate itself
// against a Record for stores without a query engine.
type Condition interface {
	SQL() (string, []interface{})
	Match(r Record) bool
}

// eqCondition implements exact equality (column = value).
type eqCondition struct {
	column string
	value  string
}

// Eq creates an equality condition.
// Example: Eq("kind", "ead") generates "kind = ?"
func Eq(column, value string) Condition {
	return &eqCondition{column: column, value: value}
}

func (c *eqCondition) SQL() (string, []interface{}) {
	return c.column + " = ?", []interface{}{c.value}
}

func (c *eqCondition) Match(r Record) bool {
	v, ok := r.Text(c.column)
	return ok && v == c.value
}

// containsFoldCondition implements an unanchored, case-insensitive substring match.
type containsFoldCondition struct {
	column string
	text   string
}

// ContainsFold creates a case-insensitive "contains" condition.
// Example: ContainsFold("course_name", "med") generates "LOWER(course_name) LIKE ? ESCAPE '\'"
// with the argument "%med%". LIKE wildcards in text are matched literally.
// The SQL form relies on a Unicode-aware LOWER; Match uses full case folding,
// so the two can disagree on special cases such as "ß".
func ContainsFold(column, text string) Condition {
	return &containsFoldCondition{column: column, text: text}
}

func (c *containsFoldCondition) SQL() (string, []interface{}) {
	pattern := "%" + escapeLike(strings.ToLower(c.text)) + "%"
	return "LOWER(" + c.column + `) LIKE ? ESCAPE '\'`, []interface{}{pattern}
}

func (c *containsFoldCondition) Match(r Record) bool {
	v, ok := r.Text(c.column)
	if !ok {
		return false
	}
	// Casers are stateful and must not be shared across goroutines.
	folder := cases.Fold()
	return strings.Contains(folder.String(v), folder.String(c.text))
}

// rangeCondition implements inclusive bounds; a nil bound is open.
type rangeCondition struct {
	column string
	lower  *decimal.Decimal
	upper  *decimal.Decimal
}

// Between creates an inclusive range condition (lower <= column <= upper).
func Between(column string, lower, upper decimal.Decimal) Condition {
	return &rangeCondition{column: column, lower: &lower, upper: &upper}
}

// AtLeast creates an open-ended lower bound (column >= lower).
func AtLeast(column string, lower decimal.Decimal) Condition {
	return &rangeCondition{column: column, lower: &lower}
}

// AtMost creates an open-ended upper bound (column <= upper).
func AtMost(column string, upper decimal.Decimal) Condition {
	return &rangeCondition{column: column, upper: &upper}
}

func (c *rangeCondition) SQL() (string, []interface{}) {
	switch {
	case c.lower != nil && c.upper != nil:
		return c.column + " BETWEEN ? AND ?", []interface{}{*c.lower, *c.upper}
	case c.lower != nil:
		return c.column + " >= ?", []interface{}{*c.lower}
	case c.upper != nil:
		return c.column + " <= ?", []interface{}{*c.upper}
	default:
		return "1=1", nil
	}
}

func (c *rangeCondition) Match(r Record) bool {
	v, ok := r.Decimal(c.column)
	if !ok {
		return false
	}
	if c.lower != nil && v.LessThan(*c.lower) {
		return false
	}
	if c.upper != nil && v.GreaterThan(*c.upper) {
		return false
	}
	return true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
