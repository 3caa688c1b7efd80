package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-extmodel/pkg/descriptor"
)

func boolp(b bool) *bool { return &b }

func floatp(f float64) *float64 { return &f }

func build(t *testing.T, class descriptor.Class, opts Options) *Model {
	t.Helper()
	m, err := NewBuilder(opts).Build(class)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return m
}

func TestBuildDerivesAccessorNames(t *testing.T) {
	class := descriptor.Class{
		Name:      "Profile",
		Interface: true,
		Properties: []descriptor.Property{
			{Name: "getAge", Type: "int", Kind: descriptor.KindAccessor},
			{Name: "isActive", Type: "bool", Kind: descriptor.KindAccessor},
			{Name: "getFullName", Type: "string", Kind: descriptor.KindAccessor},
			{Name: "touch", Kind: descriptor.KindAccessor, Void: true},
		},
	}

	m := build(t, class, Options{})

	want := []*Field{
		{Name: "age", Type: TypeInteger},
		{Name: "fullName", Type: TypeString},
		{Name: "active", Type: TypeBoolean},
	}
	if diff := cmp.Diff(want, m.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSkipsUnmatchedTypes(t *testing.T) {
	class := descriptor.Class{
		Name: "Account",
		Properties: []descriptor.Property{
			{Name: "settings", Type: "map[string]string", Kind: descriptor.KindField, Public: true},
			{Name: "name", Type: "string", Kind: descriptor.KindField, Public: true},
		},
	}

	m := build(t, class, Options{})

	want := []*Field{{Name: "name", Type: TypeString}}
	if diff := cmp.Diff(want, m.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFieldPrecedence(t *testing.T) {
	// Subclass members come first in the descriptor, so first-wins keeps
	// the subclass declaration.
	class := descriptor.Class{
		Name: "Employee",
		Properties: []descriptor.Property{
			{Name: "salary", Type: "float64", Kind: descriptor.KindField, Public: true},
			{Name: "salary", Type: "string", Kind: descriptor.KindField, Public: true},
		},
	}

	m := build(t, class, Options{})

	want := []*Field{{Name: "salary", Type: TypeFloat}}
	if diff := cmp.Diff(want, m.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTypeLevelFieldsComeFirst(t *testing.T) {
	class := descriptor.Class{
		Name: "Order",
		Fields: []descriptor.FieldMeta{
			{Value: "total", Type: "float"},
		},
		Properties: []descriptor.Property{
			{Name: "status", Type: "string", Kind: descriptor.KindField, Public: true},
			{Name: "total", Type: "int", Kind: descriptor.KindField, Public: true},
		},
	}

	m := build(t, class, Options{})

	want := []*Field{
		{Name: "total", Type: TypeFloat},
		{Name: "status", Type: TypeString},
	}
	if diff := cmp.Diff(want, m.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildExplicitFieldMetadata(t *testing.T) {
	class := descriptor.Class{
		Name: "Invoice",
		Properties: []descriptor.Property{
			{
				Name: "dueDate", Type: "time.Time", Kind: descriptor.KindField, Public: true,
				Field: &descriptor.FieldMeta{DateFormat: "c"},
			},
			{
				Name: "amount", Type: "float64", Kind: descriptor.KindField, Public: true,
				Field: &descriptor.FieldMeta{DefaultValue: "1.5", AllowNull: true},
			},
			{
				Name: "note", Type: "string", Kind: descriptor.KindField, Public: true,
				Field: &descriptor.FieldMeta{
					AllowBlank: boolp(false),
					Persist:    boolp(false),
					Mapping:    "meta.note",
				},
			},
		},
	}

	m := build(t, class, Options{})

	want := []*Field{
		{Name: "dueDate", Type: TypeDate, DateFormat: "c"},
		{
			Name:         "amount",
			Type:         TypeFloat,
			DefaultValue: &DefaultValue{Kind: DefaultFloat, Float: 1.5},
			AllowNull:    boolp(true),
		},
		{
			Name:       "note",
			Type:       TypeString,
			AllowBlank: boolp(false),
			Persist:    boolp(false),
			Mapping:    "meta.note",
		},
	}
	if diff := cmp.Diff(want, m.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDefaultValueParsing(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		meta     descriptor.FieldMeta
		want     *DefaultValue
	}{
		{"bool", "bool", descriptor.FieldMeta{DefaultValue: "true"}, &DefaultValue{Kind: DefaultBool, Bool: true}},
		{"int", "int64", descriptor.FieldMeta{DefaultValue: "42"}, &DefaultValue{Kind: DefaultInt, Int: 42}},
		{"float", "float64", descriptor.FieldMeta{DefaultValue: "2.25"}, &DefaultValue{Kind: DefaultFloat, Float: 2.25}},
		{"string", "string", descriptor.FieldMeta{DefaultValue: "n/a"}, &DefaultValue{Kind: DefaultString, Str: "n/a"}},
		{"undefined", "string", descriptor.FieldMeta{DefaultValue: "undefined"}, &DefaultValue{Kind: DefaultUndefined}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := tt.meta
			class := descriptor.Class{
				Name: "Sample",
				Properties: []descriptor.Property{
					{Name: "value", Type: tt.declared, Kind: descriptor.KindField, Public: true, Field: &meta},
				},
			}
			m := build(t, class, Options{})
			got := m.Field("value").DefaultValue
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("default value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildDefaultValueParseFailure(t *testing.T) {
	class := descriptor.Class{
		Name: "Sample",
		Properties: []descriptor.Property{
			{
				Name: "count", Type: "int", Kind: descriptor.KindField, Public: true,
				Field: &descriptor.FieldMeta{DefaultValue: "many"},
			},
		},
	}

	_, err := NewBuilder(Options{}).Build(class)
	if err == nil {
		t.Fatal("expected error for unparseable default")
	}
	if !strings.Contains(err.Error(), `field "count"`) {
		t.Fatalf("error should name the field, got: %v", err)
	}
}

func TestBuildRejectsUnknownExplicitType(t *testing.T) {
	class := descriptor.Class{
		Name: "Sample",
		Properties: []descriptor.Property{
			{
				Name: "blob", Kind: descriptor.KindField, Public: true,
				Field: &descriptor.FieldMeta{Type: "binary"},
			},
		},
	}

	_, err := NewBuilder(Options{}).Build(class)
	if err == nil {
		t.Fatal("expected error for unknown explicit type")
	}
}

func TestBuildAllowNullOnlyForNullableTypes(t *testing.T) {
	class := descriptor.Class{
		Name: "Event",
		Properties: []descriptor.Property{
			{
				Name: "start", Type: "time.Time", Kind: descriptor.KindField, Public: true,
				Field: &descriptor.FieldMeta{AllowNull: true},
			},
			{
				Name: "seats", Type: "int", Kind: descriptor.KindField, Public: true,
				Field: &descriptor.FieldMeta{AllowNull: true},
			},
		},
	}

	m := build(t, class, Options{})

	if m.Field("start").AllowNull != nil {
		t.Fatal("allowNull should not apply to date fields")
	}
	if m.Field("seats").AllowNull == nil || !*m.Field("seats").AllowNull {
		t.Fatal("allowNull should apply to integer fields")
	}
}

func TestBuildEmptyReferenceCollapses(t *testing.T) {
	class := descriptor.Class{
		Name: "Item",
		Properties: []descriptor.Property{
			{
				Name: "parentId", Type: "int", Kind: descriptor.KindField, Public: true,
				Field: &descriptor.FieldMeta{Reference: &descriptor.ReferenceMeta{}},
			},
		},
	}

	m := build(t, class, Options{})
	if m.Field("parentId").Reference != nil {
		t.Fatal("empty reference should collapse to nil")
	}
}

func TestBuildModelMetaAndMarkers(t *testing.T) {
	class := descriptor.Class{
		Name: "User",
		Model: &descriptor.ModelMeta{
			Name:   "App.model.User",
			Extend: "App.model.Base",
		},
		Properties: []descriptor.Property{
			{Name: "userId", Type: "int64", Kind: descriptor.KindField, Public: true, ID: true},
			{Name: "clientKey", Type: "string", Kind: descriptor.KindField, Public: true,
				ClientID: &descriptor.ClientIDMeta{ConfigureWriter: true}},
			{Name: "revision", Type: "int", Kind: descriptor.KindField, Public: true, Version: true},
		},
	}

	m := build(t, class, Options{})

	if m.Name != "App.model.User" {
		t.Fatalf("name = %q", m.Name)
	}
	if m.Extend != "App.model.Base" {
		t.Fatalf("extend = %q", m.Extend)
	}
	if m.IDProperty != "userId" {
		t.Fatalf("idProperty = %q", m.IDProperty)
	}
	if m.ClientIDProperty != "clientKey" || !m.ClientIDPropertyAddToWriter {
		t.Fatalf("clientIdProperty = %q (writer %v)", m.ClientIDProperty, m.ClientIDPropertyAddToWriter)
	}
	if m.VersionProperty != "revision" {
		t.Fatalf("versionProperty = %q", m.VersionProperty)
	}
}

func TestBuildMarkersSurviveFieldShadowing(t *testing.T) {
	// The type-level declaration claims the field name first; the member
	// loses the registration race but its markers must still apply.
	class := descriptor.Class{
		Name: "Account",
		Fields: []descriptor.FieldMeta{
			{Value: "userId", Type: "int"},
		},
		Properties: []descriptor.Property{
			{Name: "userId", Type: "int64", Kind: descriptor.KindField, Public: true, ID: true},
			{Name: "rev", Type: "int", Kind: descriptor.KindField, Public: true},
			{Name: "rev", Type: "int", Kind: descriptor.KindField, Public: true, Version: true},
		},
	}

	m := build(t, class, Options{})

	if m.IDProperty != "userId" {
		t.Fatalf("idProperty = %q, want userId", m.IDProperty)
	}
	if m.VersionProperty != "rev" {
		t.Fatalf("versionProperty = %q, want rev", m.VersionProperty)
	}

	want := []*Field{
		{Name: "userId", Type: TypeInteger},
		{Name: "rev", Type: TypeInteger},
	}
	if diff := cmp.Diff(want, m.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAssociationSurvivesFieldShadowing(t *testing.T) {
	class := descriptor.Class{
		Name: "Account",
		Properties: []descriptor.Property{
			{Name: "owner", Type: "string", Kind: descriptor.KindField, Public: true},
			{
				Name: "owner", Type: "User", Kind: descriptor.KindField, Public: true,
				Association: &descriptor.AssociationMeta{Kind: "belongsTo"},
			},
		},
	}

	m := build(t, class, Options{})

	want := []Association{{Kind: AssociationBelongsTo, Model: "User"}}
	if diff := cmp.Diff(want, m.Associations()); diff != "" {
		t.Fatalf("associations mismatch (-want +got):\n%s", diff)
	}
	if got := m.Field("owner").Type; got != TypeString {
		t.Fatalf("first registration should keep its type, got %v", got)
	}
}

func TestBuildIDPropertyDefaultsToID(t *testing.T) {
	m := build(t, descriptor.Class{Name: "Plain"}, Options{})
	if m.IDProperty != "id" {
		t.Fatalf("idProperty = %q, want id", m.IDProperty)
	}
}

func TestBuildAutodetectDisabled(t *testing.T) {
	class := descriptor.Class{
		Name:  "Raw",
		Model: &descriptor.ModelMeta{AutodetectTypes: boolp(false)},
		Properties: []descriptor.Property{
			{Name: "anything", Type: "map[string]string", Kind: descriptor.KindField, Public: true},
		},
	}

	m := build(t, class, Options{})

	want := []*Field{{Name: "anything", Type: TypeAuto}}
	if diff := cmp.Diff(want, m.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAssociations(t *testing.T) {
	class := descriptor.Class{
		Name: "Customer",
		Properties: []descriptor.Property{
			{
				Name: "orders", Type: "[]Order", Kind: descriptor.KindField, Public: true,
				Association: &descriptor.AssociationMeta{Kind: "hasMany", AutoLoad: true},
			},
			{
				Name: "address", Type: "*Address", Kind: descriptor.KindField, Public: true,
				Association: &descriptor.AssociationMeta{Kind: "belongsTo", ForeignKey: "addressId"},
			},
			{
				Name: "legacy", Type: "Legacy", Kind: descriptor.KindField, Public: true,
				Association: &descriptor.AssociationMeta{Kind: "linkedTo"},
			},
		},
	}

	m := build(t, class, Options{})

	want := []Association{
		{Kind: AssociationHasMany, Model: "Order", AutoLoad: true},
		{Kind: AssociationBelongsTo, Model: "Address", ForeignKey: "addressId"},
	}
	if diff := cmp.Diff(want, m.Associations()); diff != "" {
		t.Fatalf("associations mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildValidationModes(t *testing.T) {
	class := descriptor.Class{
		Name: "Contact",
		Properties: []descriptor.Property{
			{
				Name: "email", Type: "string", Kind: descriptor.KindField, Public: true,
				Field: &descriptor.FieldMeta{},
				Validations: []descriptor.ValidationMeta{
					{Kind: "presence"},
					{Kind: "email"},
					{Kind: "creditCardNumber"},
				},
			},
		},
	}

	tests := []struct {
		name string
		mode IncludeValidation
		want []Validation
	}{
		{"none", IncludeValidationNone, nil},
		{"builtin", IncludeValidationBuiltin, []Validation{
			{Kind: ValidationPresence, Field: "email"},
			{Kind: ValidationEmail, Field: "email"},
		}},
		{"all", IncludeValidationAll, []Validation{
			{Kind: ValidationPresence, Field: "email"},
			{Kind: ValidationEmail, Field: "email"},
			{Kind: "creditCardNumber", Field: "email"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build(t, class, Options{IncludeValidation: tt.mode})
			if diff := cmp.Diff(tt.want, m.Validations()); diff != "" {
				t.Fatalf("validations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildValidationParameterRequirements(t *testing.T) {
	class := descriptor.Class{
		Name: "Doc",
		Validations: []descriptor.ValidationMeta{
			{Kind: "length", PropertyName: "title"},
			{Kind: "length", PropertyName: "body", Min: floatp(1)},
			{Kind: "format", PropertyName: "slug"},
			{Kind: "format", PropertyName: "code", Matcher: "/^[a-z]+$/"},
			{Kind: "inclusion", PropertyName: "state"},
			{Kind: "inclusion", PropertyName: "kind", List: []string{"a", "b"}},
		},
	}

	m := build(t, class, Options{IncludeValidation: IncludeValidationBuiltin})

	want := []Validation{
		{Kind: ValidationLength, Field: "body", Min: floatp(1)},
		{Kind: ValidationFormat, Field: "code", Matcher: "/^[a-z]+$/"},
		{Kind: ValidationInclusion, Field: "kind", List: []string{"a", "b"}},
	}
	if diff := cmp.Diff(want, m.Validations()); diff != "" {
		t.Fatalf("validations mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildValidationCollapse(t *testing.T) {
	class := descriptor.Class{
		Name: "Doc",
		Validations: []descriptor.ValidationMeta{
			{Kind: "length", PropertyName: "title", Min: floatp(1)},
			{Kind: "length", PropertyName: "title", Min: floatp(5)},
		},
	}

	m := build(t, class, Options{IncludeValidation: IncludeValidationBuiltin})

	want := []Validation{{Kind: ValidationLength, Field: "title", Min: floatp(1)}}
	if diff := cmp.Diff(want, m.Validations()); diff != "" {
		t.Fatalf("validations mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDataOptionsCanonicalization(t *testing.T) {
	tests := []struct {
		name       string
		associated bool
		changes    bool
		critical   bool
		persist    bool
		want       DataOptions
	}{
		{"all defaults collapse", false, false, false, true, DataOptions{}},
		{"associated only", true, false, false, true, DataOptions{Associated: boolp(true), Persist: boolp(true)}},
		{"changes drops persist", false, true, false, true, DataOptions{Changes: boolp(true)}},
		{"critical needs changes", false, false, true, true, DataOptions{Persist: boolp(true)}},
		{"changes keeps critical", false, true, true, true, DataOptions{Changes: boolp(true), Critical: boolp(true)}},
		{"persist off", false, false, false, false, DataOptions{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDataOptions(tt.associated, tt.changes, tt.critical, tt.persist)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
