package utils

import (
	"fmt"
	"reflect"
)

var ColumnTag = "db"

// StructTagValues returns the column names declared on input's exported
// fields, in field order.
func StructTagValues(input any) []string {
	fields := taggedFields(input)

	result := make([]string, 0, len(fields))
	for _, f := range fields {
		result = append(result, f.column)
	}

	return result
}

// StructToMap maps column names to the field values of input. It is used with
// squirrel's SetMap for inserts.
func StructToMap(input any) map[string]any {
	fields := taggedFields(input)

	result := make(map[string]any, len(fields))
	for _, f := range fields {
		result[f.column] = f.value
	}

	return result
}

type taggedField struct {
	column string
	value  any
}

func taggedFields(input any) []taggedField {
	itemValue := reflect.ValueOf(input)
	if itemValue.Kind() == reflect.Pointer {
		itemValue = itemValue.Elem()
	}

	if itemValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	itemType := itemValue.Type()

	result := make([]taggedField, 0, itemValue.NumField())
	for i := range itemValue.NumField() {
		field := itemType.Field(i)
		if !field.IsExported() {
			continue
		}

		tagValue := field.Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result = append(result, taggedField{column: tagValue, value: itemValue.Field(i).Interface()})
	}

	return result
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)

}
