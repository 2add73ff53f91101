package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// binder collects positional arguments and hands out $n placeholders in order.
type binder struct {
	args []any
}

func (b *binder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// Condition renders one predicate of a WHERE clause.
type Condition func(b *binder) string

func Eq(column string, value any) Condition {
	return func(b *binder) string {
		return column + " = " + b.bind(value)
	}
}

func IsNull(column string) Condition {
	return func(*binder) string {
		return column + " IS NULL"
	}
}

func where(sb *strings.Builder, b *binder, conditions []Condition) {
	for i, cond := range conditions {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(cond(b))
	}
}

type SelectBuilder struct {
	columns    []string
	table      string
	conditions []Condition
	orderBy    []string
	limit      int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.conditions = append(s.conditions, conditions...)
	return s
}

func (s *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, terms...)
	return s
}

func (s *SelectBuilder) Limit(limit int) *SelectBuilder {
	s.limit = limit
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(s.columns) == 0:
		return "", nil, fmt.Errorf("select: no columns")
	case strings.TrimSpace(s.table) == "":
		return "", nil, fmt.Errorf("select: no table")
	}

	var (
		sb strings.Builder
		b  binder
	)
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(s.columns, ", "), s.table)
	where(&sb, &b, s.conditions)
	if len(s.orderBy) > 0 {
		sb.WriteString(" ORDER BY " + strings.Join(s.orderBy, ", "))
	}
	if s.limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(s.limit))
	}
	return sb.String(), b.args, nil
}

type assignment struct {
	column string
	value  any
	raw    bool
}

type UpdateBuilder struct {
	table       string
	assignments []assignment
	conditions  []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.assignments = append(u.assignments, assignment{column: column, value: value})
	return u
}

// SetExpr assigns a raw SQL expression such as NOW() or NULL.
func (u *UpdateBuilder) SetExpr(column, expr string) *UpdateBuilder {
	u.assignments = append(u.assignments, assignment{column: column, value: expr, raw: true})
	return u
}

func (u *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	u.conditions = append(u.conditions, conditions...)
	return u
}

func (u *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(u.table) == "":
		return "", nil, fmt.Errorf("update: no table")
	case len(u.assignments) == 0:
		return "", nil, fmt.Errorf("update %s: nothing to set", u.table)
	case len(u.conditions) == 0:
		return "", nil, fmt.Errorf("update %s: refusing to update without a condition", u.table)
	}

	var (
		sb strings.Builder
		b  binder
	)
	sb.WriteString("UPDATE " + u.table + " SET ")
	for i, a := range u.assignments {
		if i > 0 {
			sb.WriteString(", ")
		}
		if a.raw {
			sb.WriteString(a.column + " = " + a.value.(string))
			continue
		}
		sb.WriteString(a.column + " = " + b.bind(a.value))
	}
	where(&sb, &b, u.conditions)
	return sb.String(), b.args, nil
}
