package query

import "strings"

// Predicate is an opaque conjunction of conditions. The zero value matches
// every record.
type Predicate struct {
	conditions []Condition
}

// And combines conditions conjunctively. Nil conditions are skipped.
func And(conditions ...Condition) Predicate {
	p := Predicate{conditions: make([]Condition, 0, len(conditions))}
	for _, c := range conditions {
		if c != nil {
			p.conditions = append(p.conditions, c)
		}
	}
	return p
}

// Empty reports whether the predicate imposes no constraint.
func (p Predicate) Empty() bool {
	return len(p.conditions) == 0
}

// Len returns the number of conjoined conditions.
func (p Predicate) Len() int {
	return len(p.conditions)
}

// SQL renders the conjunction without the WHERE keyword. An empty
// predicate renders as an empty string.
func (p Predicate) SQL() (string, []interface{}) {
	if p.Empty() {
		return "", nil
	}
	parts := make([]string, 0, len(p.conditions))
	var args []interface{}
	for _, c := range p.conditions {
		fragment, condArgs := c.SQL()
		parts = append(parts, fragment)
		args = append(args, condArgs...)
	}
	return strings.Join(parts, " AND "), args
}

// Match evaluates every condition against r.
func (p Predicate) Match(r Record) bool {
	for _, c := range p.conditions {
		if !c.Match(r) {
			return false
		}
	}
	return true
}

// String returns the SQL fragment for logging.
func (p Predicate) String() string {
	sql, _ := p.SQL()
	if sql == "" {
		return "TRUE"
	}
	return sql
}
