package query

import (
	"fmt"
	"strings"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// String returns the SQL keyword for the direction.
func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

type orderTerm struct {
	column    string
	direction Direction
}

// Builder constructs SELECT statements with '?' bind variables. Every
// method returns a copy, so a base builder can be shared between the
// count and the page query.
type Builder struct {
	table      string
	selectCols []string
	where      Predicate
	orderBy    []orderTerm
	limitVal   int
	offsetVal  int
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{table: table}
}

// Select appends columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	nb := b.clone()
	nb.selectCols = append(nb.selectCols, columns...)
	return nb
}

// Where sets the filter predicate.
func (b *Builder) Where(p Predicate) *Builder {
	nb := b.clone()
	nb.where = p
	return nb
}

// OrderBy appends a sort term. Terms apply in call order.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	nb := b.clone()
	nb.orderBy = append(nb.orderBy, orderTerm{column: column, direction: direction})
	return nb
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int) *Builder {
	nb := b.clone()
	nb.limitVal = limit
	return nb
}

// Offset sets the number of rows to skip.
func (b *Builder) Offset(offset int) *Builder {
	nb := b.clone()
	nb.offsetVal = offset
	return nb
}

// Count returns a builder producing COUNT(*) over the same table and predicate.
func (b *Builder) Count() *Builder {
	nb := b.clone()
	nb.selectCols = []string{"COUNT(*)"}
	nb.orderBy = nil
	nb.limitVal = 0
	nb.offsetVal = 0
	return nb
}

// Build returns the SQL text and its positional arguments.
func (b *Builder) Build() (string, []interface{}) {
	var sql strings.Builder
	var args []interface{}

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if where, whereArgs := b.where.SQL(); where != "" {
		sql.WriteString(" WHERE ")
		sql.WriteString(where)
		args = append(args, whereArgs...)
	}

	if len(b.orderBy) > 0 {
		terms := make([]string, 0, len(b.orderBy))
		for _, t := range b.orderBy {
			terms = append(terms, t.column+" "+t.direction.String())
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(terms, ", "))
	}

	if b.limitVal > 0 {
		sql.WriteString(" LIMIT ?")
		args = append(args, b.limitVal)
	}

	if b.offsetVal > 0 {
		sql.WriteString(" OFFSET ?")
		args = append(args, b.offsetVal)
	}

	return sql.String(), args
}

func (b *Builder) clone() *Builder {
	nb := &Builder{
		table:      b.table,
		selectCols: make([]string, len(b.selectCols)),
		where:      b.where,
		orderBy:    make([]orderTerm, len(b.orderBy)),
		limitVal:   b.limitVal,
		offsetVal:  b.offsetVal,
	}
	copy(nb.selectCols, b.selectCols)
	copy(nb.orderBy, b.orderBy)
	return nb
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	sql, args := b.Build()
	return fmt.Sprintf("SQL: %s\nArgs: %v", sql, args)
}
