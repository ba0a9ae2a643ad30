package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// reservedColumns are quoted when derived from struct tags.
var reservedColumns = map[string]struct{}{
	"order": {},
	"group": {},
	"user":  {},
	"limit": {},
}

type modelField struct {
	index  int
	column string
}

var modelFieldCache sync.Map // reflect.Type -> []modelField

// InsertModel builds a single-row INSERT from the db tags of model.
// Fields tagged `db:"col,readonly"` are skipped.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := ModelColumns(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// InsertModels builds a multi-row INSERT. Every model shares the column list
// of the first one.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models: no rows")
	}

	builder := InsertInto(table).Suffix(suffix)
	for i, model := range models {
		cols, vals, err := ModelColumns(model)
		if err != nil {
			return "", nil, fmt.Errorf("insert models row %d: %w", i, err)
		}
		if i == 0 {
			builder = builder.Columns(cols...)
		}
		builder = builder.Values(vals...)
	}
	return builder.ToSQL()
}

// ModelColumns returns the writable columns of a tagged struct with their
// values in field order.
func ModelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	fields := fieldsFor(value.Type())
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", value.Type())
	}

	cols := make([]string, 0, len(fields))
	vals := make([]any, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, f.column)
		vals = append(vals, value.Field(f.index).Interface())
	}
	return cols, vals, nil
}

func fieldsFor(typ reflect.Type) []modelField {
	if cached, ok := modelFieldCache.Load(typ); ok {
		return cached.([]modelField)
	}

	fields := make([]modelField, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, readonly := parseDBTag(field.Tag.Get("db"))
		if name == "" || readonly {
			continue
		}
		fields = append(fields, modelField{index: i, column: quoteColumn(name)})
	}

	modelFieldCache.Store(typ, fields)
	return fields
}

func parseDBTag(tag string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(tag), ",")
	name := strings.TrimSpace(parts[0])
	if name == "-" {
		return "", false
	}
	readonly := false
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "readonly" {
			readonly = true
		}
	}
	return name, readonly
}

func quoteColumn(name string) string {
	if _, ok := reservedColumns[strings.ToLower(name)]; ok {
		return `"` + name + `"`
	}
	return name
}
