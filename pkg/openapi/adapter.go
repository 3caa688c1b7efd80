package openapi

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-extmodel/pkg/descriptor"
)

// modelExtensionKey carries type-level model settings on a component
// schema.
const modelExtensionKey = "x-model"

// Classes converts the component schemas of an OpenAPI 3 document into
// class descriptors. Component names sort lexicographically so the output
// order is stable regardless of document map order.
func Classes(ctx context.Context, data []byte) ([]descriptor.Class, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, fmt.Errorf("openapi: document declares no component schemas")
	}

	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	classes := make([]descriptor.Class, 0, len(names))
	for _, name := range names {
		ref := spec.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		if !isObjectSchema(ref.Value) {
			continue
		}
		classes = append(classes, classFromSchema(name, ref.Value))
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("openapi: no object schemas to convert")
	}
	return classes, nil
}

// LoadFile reads an OpenAPI document from disk and converts its component
// schemas.
func LoadFile(ctx context.Context, path string) ([]descriptor.Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return Classes(ctx, data)
}

func isObjectSchema(schema *openapi3.Schema) bool {
	if len(schema.Properties) > 0 {
		return true
	}
	return schemaType(schema) == "object"
}

func classFromSchema(name string, schema *openapi3.Schema) descriptor.Class {
	class := descriptor.Class{
		Name:  name,
		Model: modelMetaFromExtensions(schema.Extensions),
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, item := range schema.Required {
		required[item] = struct{}{}
	}

	propNames := make([]string, 0, len(schema.Properties))
	for propName := range schema.Properties {
		propNames = append(propNames, propName)
	}
	sort.Strings(propNames)

	for _, propName := range propNames {
		ref := schema.Properties[propName]
		if ref == nil {
			continue
		}
		_, isRequired := required[propName]
		class.Properties = append(class.Properties, propertyFromSchema(propName, ref, isRequired))
	}
	return class
}

func propertyFromSchema(name string, ref *openapi3.SchemaRef, required bool) descriptor.Property {
	prop := descriptor.Property{
		Name:   name,
		Kind:   descriptor.KindField,
		Public: true,
	}

	schema := ref.Value
	if target := refTarget(ref.Ref); target != "" && (schema == nil || isObjectSchema(schema)) {
		prop.Type = target
		prop.Association = &descriptor.AssociationMeta{
			Kind:  "belongsTo",
			Model: target,
		}
		return prop
	}
	if schema == nil {
		prop.Type = "string"
		return prop
	}

	switch schemaType(schema) {
	case "array":
		if schema.Items != nil {
			if target := refTarget(schema.Items.Ref); target != "" {
				prop.Type = "[]" + target
				prop.Association = &descriptor.AssociationMeta{
					Kind:  "hasMany",
					Model: target,
				}
				return prop
			}
		}
		prop.Type = "[]string"
		return prop
	case "integer":
		prop.Type = "int64"
	case "number":
		prop.Type = "float64"
	case "boolean":
		prop.Type = "bool"
	default:
		if schema.Format == "date" || schema.Format == "date-time" {
			prop.Type = "time.Time"
		} else {
			prop.Type = "string"
		}
	}

	prop.Field = fieldMetaFromSchema(schema)
	prop.Validations = validationsFromSchema(schema, required)
	if len(prop.Validations) == 0 {
		prop.Validations = nil
	}
	return prop
}

func fieldMetaFromSchema(schema *openapi3.Schema) *descriptor.FieldMeta {
	meta := &descriptor.FieldMeta{}
	touched := false

	if schema.Nullable {
		meta.AllowNull = true
		touched = true
	}
	if schema.Default != nil {
		meta.DefaultValue = fmt.Sprintf("%v", schema.Default)
		touched = true
	}
	if !touched {
		return nil
	}
	return meta
}

func validationsFromSchema(schema *openapi3.Schema, required bool) []descriptor.ValidationMeta {
	var out []descriptor.ValidationMeta

	if required {
		out = append(out, descriptor.ValidationMeta{Kind: "presence"})
	}
	if schema.Format == "email" {
		out = append(out, descriptor.ValidationMeta{Kind: "email"})
	}
	if schema.MinLength != 0 || schema.MaxLength != nil {
		v := descriptor.ValidationMeta{Kind: "length"}
		if schema.MinLength != 0 {
			min := float64(schema.MinLength)
			v.Min = &min
		}
		if schema.MaxLength != nil {
			max := float64(*schema.MaxLength)
			v.Max = &max
		}
		out = append(out, v)
	}
	if schema.Min != nil || schema.Max != nil {
		v := descriptor.ValidationMeta{Kind: "range", Min: schema.Min, Max: schema.Max}
		out = append(out, v)
	}
	if schema.Pattern != "" {
		out = append(out, descriptor.ValidationMeta{
			Kind:    "format",
			Matcher: "/" + schema.Pattern + "/",
		})
	}
	if len(schema.Enum) > 0 {
		list := make([]string, 0, len(schema.Enum))
		for _, entry := range schema.Enum {
			if s, ok := entry.(string); ok {
				list = append(list, s)
			}
		}
		if len(list) == len(schema.Enum) {
			out = append(out, descriptor.ValidationMeta{Kind: "inclusion", List: list})
		}
	}
	return out
}

func modelMetaFromExtensions(ext map[string]any) *descriptor.ModelMeta {
	if len(ext) == 0 {
		return nil
	}
	rawMeta, ok := ext[modelExtensionKey]
	if !ok {
		return nil
	}
	values, ok := rawMeta.(map[string]any)
	if !ok || len(values) == 0 {
		return nil
	}

	meta := &descriptor.ModelMeta{
		Name:             extString(values, "name"),
		Extend:           extString(values, "extend"),
		IDProperty:       extString(values, "idProperty"),
		VersionProperty:  extString(values, "versionProperty"),
		ClientIDProperty: extString(values, "clientIdProperty"),
		Identifier:       extString(values, "identifier"),
		CreateMethod:     extString(values, "createMethod"),
		ReadMethod:       extString(values, "readMethod"),
		UpdateMethod:     extString(values, "updateMethod"),
		DestroyMethod:    extString(values, "destroyMethod"),
		Writer:           extString(values, "writer"),
		Reader:           extString(values, "reader"),
		MessageProperty:  extString(values, "messageProperty"),
		SuccessProperty:  extString(values, "successProperty"),
		TotalProperty:    extString(values, "totalProperty"),
		RootProperty:     extString(values, "rootProperty"),
		Paging:           extBool(values, "paging"),
		WriteAllFields:   extBool(values, "writeAllFields"),
	}
	return meta
}

func extString(values map[string]any, key string) string {
	if v, ok := values[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func extBool(values map[string]any, key string) bool {
	v, ok := values[key].(bool)
	return ok && v
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func refTarget(ref string) string {
	if ref == "" {
		return ""
	}
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}
