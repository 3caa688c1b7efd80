package model

import "strings"

// typeMatcher binds a semantic type to the declared type names it covers.
// Matchers are consulted in order and the first match wins, so the order is
// part of the contract.
type typeMatcher struct {
	fieldType FieldType
	declared  map[string]struct{}
}

var typeMatchers = []typeMatcher{
	{TypeInteger, declaredSet(
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"byte", "rune", "integer", "long", "short", "big.Int",
	)},
	{TypeFloat, declaredSet(
		"float32", "float64", "float", "double", "decimal", "big.Float",
	)},
	{TypeString, declaredSet("string")},
	{TypeDate, declaredSet(
		"time.Time", "date", "datetime", "timestamp", "sql.NullTime",
	)},
	{TypeBoolean, declaredSet("bool", "boolean")},
}

func declaredSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// DetectType resolves a declared type name to a semantic field type. The
// second return value is false when no matcher covers the declared type; a
// non-annotated property of such a type is not a model field.
func DetectType(declared string) (FieldType, bool) {
	name := strings.TrimSpace(declared)
	name = strings.TrimPrefix(name, "*")
	for _, matcher := range typeMatchers {
		if _, ok := matcher.declared[name]; ok {
			return matcher.fieldType, true
		}
	}
	return TypeAuto, false
}

// ParseFieldType maps an explicit semantic type string from metadata to a
// FieldType. The empty string reports false, leaving the caller to fall back
// to auto-detection.
func ParseFieldType(raw string) (FieldType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return TypeAuto, false
	case "auto":
		return TypeAuto, true
	case "string":
		return TypeString, true
	case "int", "integer":
		return TypeInteger, true
	case "float":
		return TypeFloat, true
	case "number":
		return TypeNumber, true
	case "bool", "boolean":
		return TypeBoolean, true
	case "date":
		return TypeDate, true
	}
	return TypeAuto, false
}

// nullableType reports whether allowNull applies to the given type.
func nullableType(t FieldType) bool {
	switch t {
	case TypeInteger, TypeFloat, TypeNumber, TypeString, TypeBoolean:
		return true
	}
	return false
}
