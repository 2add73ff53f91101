package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

type InsertBuilder struct {
	table      string
	columns    []string
	values     []any
	conflictOn []string
}

// InsertModel builds a single-row INSERT from the db-tagged fields of model.
func InsertModel(table string, model any) *InsertBuilder {
	columns, values := dbFields(model)
	return &InsertBuilder{table: table, columns: columns, values: values}
}

// OnConflictDoNothing skips rows that collide on the given unique columns.
func (i *InsertBuilder) OnConflictDoNothing(columns ...string) *InsertBuilder {
	i.conflictOn = columns
	return i
}

func (i *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(i.table) == "":
		return "", nil, fmt.Errorf("insert: no table")
	case len(i.columns) == 0:
		return "", nil, fmt.Errorf("insert %s: model has no db columns", i.table)
	}

	var b binder
	placeholders := make([]string, len(i.values))
	for idx, v := range i.values {
		placeholders[idx] = b.bind(v)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		i.table, strings.Join(i.columns, ", "), strings.Join(placeholders, ", "))
	if len(i.conflictOn) > 0 {
		query += " ON CONFLICT (" + strings.Join(i.conflictOn, ", ") + ") DO NOTHING"
	}
	return query, b.args, nil
}

func dbFields(model any) ([]string, []any) {
	v := reflect.Indirect(reflect.ValueOf(model))
	if v.Kind() != reflect.Struct {
		return nil, nil
	}

	t := v.Type()
	var (
		columns []string
		values  []any
	)
	for idx := range t.NumField() {
		field := t.Field(idx)
		if !field.IsExported() {
			continue
		}
		column, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		column = strings.TrimSpace(column)
		if column == "" || column == "-" {
			continue
		}
		columns = append(columns, column)
		values = append(values, v.Field(idx).Interface())
	}
	return columns, values
}
