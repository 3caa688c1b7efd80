package model

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/goliatone/go-extmodel/pkg/descriptor"
)

// Options configure model assembly.
type Options struct {
	// IncludeValidation controls which validation declarations are kept.
	IncludeValidation IncludeValidation
}

// Builder assembles canonical models from class descriptors.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder with the supplied options.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Build normalizes one class descriptor into a canonical Model. Type-level
// declarations are merged first, then member-level ones, so member data can
// override type data for the same name. Field names de-duplicate with
// first-wins semantics; properties of method-style sources aggregate in
// name-lexicographic order.
func (b *Builder) Build(class descriptor.Class) (*Model, error) {
	m := NewModel(strings.TrimSpace(class.Name))
	if m.Name == "" {
		return nil, errors.New("model: class descriptor is missing a name")
	}

	b.applyModelMeta(m, class.Model)

	for i := range class.Fields {
		meta := class.Fields[i]
		name := strings.TrimSpace(meta.Value)
		if name == "" {
			continue
		}
		field, err := b.newExplicitField(m, name, "", &meta)
		if err != nil {
			return nil, err
		}
		m.AddField(field)
	}

	for i := range class.Associations {
		if assoc, ok := newAssociation(class.Associations[i], ""); ok {
			m.AddAssociation(assoc)
		}
	}

	for i := range class.Validations {
		meta := class.Validations[i]
		if v, ok := b.newValidation(meta, meta.PropertyName); ok {
			m.AddValidation(v)
		}
	}

	for _, prop := range orderProperties(class) {
		if err := b.normalizeProperty(m, prop); err != nil {
			return nil, err
		}
	}

	if m.IDProperty == "" {
		m.IDProperty = "id"
	}
	return m, nil
}

// orderProperties reproduces the aggregation order of the discovery layer:
// fields keep declaration order, method-discovered properties sort
// lexicographically by raw name. For method-style (interface) sources every
// property is an accessor and the whole list sorts.
func orderProperties(class descriptor.Class) []descriptor.Property {
	if class.Interface {
		sorted := append([]descriptor.Property(nil), class.Properties...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})
		return sorted
	}

	out := make([]descriptor.Property, 0, len(class.Properties))
	var accessors []descriptor.Property
	for _, prop := range class.Properties {
		if prop.Kind == descriptor.KindAccessor {
			// Only annotated accessors are properties of a class source;
			// plain getters merely witness readability of their field.
			if (prop.Field != nil || prop.Association != nil) && !prop.Ignored {
				accessors = append(accessors, prop)
			}
			continue
		}
		if !includeField(prop) {
			continue
		}
		out = append(out, prop)
	}
	sort.SliceStable(accessors, func(i, j int) bool {
		return accessors[i].Name < accessors[j].Name
	})
	return append(out, accessors...)
}

func includeField(prop descriptor.Property) bool {
	if prop.Field != nil || prop.Association != nil {
		return true
	}
	return (prop.Public || prop.HasAccessor) && !prop.Ignored
}

func (b *Builder) applyModelMeta(m *Model, meta *descriptor.ModelMeta) {
	if meta == nil {
		return
	}

	if name := strings.TrimSpace(meta.Name); name != "" {
		m.Name = name
	}
	m.autodetect = meta.Autodetect()

	if extend := strings.TrimSpace(meta.Extend); extend != "" {
		m.Extend = extend
	}
	m.IDProperty = strings.TrimSpace(meta.IDProperty)
	m.VersionProperty = strings.TrimSpace(meta.VersionProperty)
	m.Paging = meta.Paging
	m.DisablePagingParameters = meta.DisablePagingParameters
	m.CreateMethod = strings.TrimSpace(meta.CreateMethod)
	m.ReadMethod = strings.TrimSpace(meta.ReadMethod)
	m.UpdateMethod = strings.TrimSpace(meta.UpdateMethod)
	m.DestroyMethod = strings.TrimSpace(meta.DestroyMethod)
	m.MessageProperty = strings.TrimSpace(meta.MessageProperty)
	m.Writer = strings.TrimSpace(meta.Writer)
	m.Reader = strings.TrimSpace(meta.Reader)
	m.SuccessProperty = strings.TrimSpace(meta.SuccessProperty)
	m.TotalProperty = strings.TrimSpace(meta.TotalProperty)
	m.RootProperty = strings.TrimSpace(meta.RootProperty)
	m.WriteAllFields = meta.WriteAllFields
	m.Identifier = strings.TrimSpace(meta.Identifier)
	m.AllDataOptions = dataOptions(meta.AllDataOptions)
	m.PartialDataOptions = dataOptions(meta.PartialDataOptions)

	if clientID := strings.TrimSpace(meta.ClientIDProperty); clientID != "" {
		m.ClientIDProperty = clientID
		m.ClientIDPropertyAddToWriter = true
	}

	if len(meta.HasMany) > 0 && strings.TrimSpace(meta.HasMany[0]) != "" {
		m.HasMany = append([]string(nil), meta.HasMany...)
	}
}

func dataOptions(meta *descriptor.DataOptionsMeta) DataOptions {
	if meta == nil {
		return DataOptions{}
	}
	return NewDataOptions(meta.Associated, meta.Changes, meta.Critical, meta.PersistOrDefault())
}

// normalizeProperty turns one discovered member into a canonical field and
// registers any id/clientId/version and association markers on the model.
func (b *Builder) normalizeProperty(m *Model, prop descriptor.Property) error {
	if prop.Kind == descriptor.KindAccessor && prop.Void {
		return nil
	}

	name := deriveName(prop)
	if name == "" {
		return nil
	}

	detected, matched := b.detect(m, prop.Type)

	// Only the field registration is first-wins; the markers and the
	// association below apply even when the name is already taken.
	var field *Field
	if prop.Field != nil {
		if override := strings.TrimSpace(prop.Field.Value); override != "" {
			name = override
		}
		if !m.HasField(name) {
			var err error
			field, err = b.newExplicitField(m, name, prop.Type, prop.Field)
			if err != nil {
				return err
			}
			m.AddField(field)
		}
	} else if matched && !m.HasField(name) {
		field = &Field{Name: name, Type: detected}
		m.AddField(field)
	}

	if prop.ID {
		m.IDProperty = name
	}
	if prop.ClientID != nil {
		m.ClientIDProperty = name
		m.ClientIDPropertyAddToWriter = prop.ClientID.ConfigureWriter
	}
	if prop.Version {
		m.VersionProperty = name
	}

	if prop.Association != nil {
		if assoc, ok := newAssociation(*prop.Association, prop.Type); ok {
			m.AddAssociation(assoc)
		}
	}

	if field != nil {
		for i := range prop.Validations {
			meta := prop.Validations[i]
			target := strings.TrimSpace(meta.PropertyName)
			if target == "" {
				target = name
			}
			if v, ok := b.newValidation(meta, target); ok {
				m.AddValidation(v)
			}
		}
	}
	return nil
}

func (b *Builder) detect(m *Model, declared string) (FieldType, bool) {
	if !m.autodetect {
		return TypeAuto, true
	}
	return DetectType(declared)
}

// newExplicitField builds a field from explicit metadata. declared may be
// empty for type-level declarations, which never auto-detect.
func (b *Builder) newExplicitField(m *Model, name, declared string, meta *descriptor.FieldMeta) (*Field, error) {
	field := &Field{Name: name}

	if custom := strings.TrimSpace(meta.CustomType); custom != "" {
		field.Type = FieldType(custom)
	} else if explicit, ok := ParseFieldType(meta.Type); ok {
		field.Type = explicit
	} else if strings.TrimSpace(meta.Type) != "" {
		return nil, errors.Errorf("model: field %q: unknown type %q", name, meta.Type)
	} else if declared != "" {
		detected, _ := b.detect(m, declared)
		field.Type = detected
	} else {
		field.Type = TypeAuto
	}

	if err := applyFieldMeta(field, meta); err != nil {
		return nil, err
	}
	return field, nil
}

// applyFieldMeta applies the defaulting and validation rules for the
// optional field attributes.
func applyFieldMeta(field *Field, meta *descriptor.FieldMeta) error {
	if format := strings.TrimSpace(meta.DateFormat); format != "" && field.Type == TypeDate {
		field.DateFormat = format
	}

	if raw := strings.TrimSpace(meta.DefaultValue); raw != "" {
		value, err := parseDefaultValue(raw, field.Type)
		if err != nil {
			return errors.Wrapf(err, "model: field %q: parse default value", field.Name)
		}
		field.DefaultValue = value
	}

	if meta.AllowNull && nullableType(field.Type) {
		field.AllowNull = boolPtr(true)
	}
	if !meta.AllowBlankOrDefault() {
		field.AllowBlank = boolPtr(false)
	}
	if meta.Unique {
		field.Unique = boolPtr(true)
	}
	if !meta.PersistOrDefault() {
		field.Persist = boolPtr(false)
	}
	if meta.Critical {
		field.Critical = boolPtr(true)
	}

	field.Mapping = strings.TrimSpace(meta.Mapping)
	field.Convert = strings.TrimSpace(meta.Convert)
	field.Calculate = strings.TrimSpace(meta.Calculate)

	if len(meta.Depends) > 0 {
		field.Depends = append([]string(nil), meta.Depends...)
	} else {
		field.Depends = nil
	}

	if meta.Reference != nil {
		ref := &Reference{
			Type:        strings.TrimSpace(meta.Reference.Type),
			Association: strings.TrimSpace(meta.Reference.Association),
			Child:       strings.TrimSpace(meta.Reference.Child),
			Parent:      strings.TrimSpace(meta.Reference.Parent),
			Role:        strings.TrimSpace(meta.Reference.Role),
			Inverse:     strings.TrimSpace(meta.Reference.Inverse),
		}
		if !ref.Empty() {
			field.Reference = ref
		}
	}
	return nil
}

// parseDefaultValue converts the raw default per the target semantic type.
// The undefined sentinel always wins; custom and auto types fall back to the
// string representation.
func parseDefaultValue(raw string, t FieldType) (*DefaultValue, error) {
	if raw == descriptor.UndefinedDefaultValue {
		return &DefaultValue{Kind: DefaultUndefined}, nil
	}

	switch t {
	case TypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		return &DefaultValue{Kind: DefaultBool, Bool: b}, nil
	case TypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return &DefaultValue{Kind: DefaultInt, Int: n}, nil
	case TypeFloat, TypeNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		return &DefaultValue{Kind: DefaultFloat, Float: f}, nil
	default:
		return &DefaultValue{Kind: DefaultString, Str: raw}, nil
	}
}

// newAssociation validates an association declaration. Unknown kinds are
// ignored, matching the discovery layer's lenient behavior. declared is the
// member's declared type, used as the target model fallback.
func newAssociation(meta descriptor.AssociationMeta, declared string) (Association, bool) {
	kind := strings.TrimSpace(meta.Kind)
	switch kind {
	case AssociationBelongsTo, AssociationHasMany, AssociationHasOne:
	default:
		return Association{}, false
	}

	target := strings.TrimSpace(meta.Model)
	if target == "" {
		target = targetFromDeclared(declared)
	}
	if target == "" {
		return Association{}, false
	}

	assoc := Association{
		Kind:           kind,
		Model:          target,
		AssociationKey: strings.TrimSpace(meta.AssociationKey),
		ForeignKey:     strings.TrimSpace(meta.ForeignKey),
		PrimaryKey:     strings.TrimSpace(meta.PrimaryKey),
	}
	switch kind {
	case AssociationHasMany:
		assoc.AutoLoad = meta.AutoLoad
		assoc.Name = strings.TrimSpace(meta.Name)
	case AssociationBelongsTo, AssociationHasOne:
		assoc.GetterName = strings.TrimSpace(meta.GetterName)
		assoc.SetterName = strings.TrimSpace(meta.SetterName)
		assoc.InstanceName = strings.TrimSpace(meta.InstanceName)
	}
	return assoc, true
}

// targetFromDeclared strips collection and pointer markers from a declared
// type so "[]Order" and "*Order" both resolve to "Order".
func targetFromDeclared(declared string) string {
	name := strings.TrimSpace(declared)
	name = strings.TrimPrefix(name, "[]")
	name = strings.TrimPrefix(name, "*")
	return name
}

// newValidation builds a validation from metadata, honoring the configured
// inclusion mode and dropping declarations missing their kind-specific
// parameters.
func (b *Builder) newValidation(meta descriptor.ValidationMeta, fieldName string) (Validation, bool) {
	kind := strings.TrimSpace(meta.Kind)
	fieldName = strings.TrimSpace(fieldName)
	if kind == "" || fieldName == "" {
		return Validation{}, false
	}
	if !b.opts.IncludeValidation.Accepts(kind) {
		return Validation{}, false
	}

	v := Validation{Kind: kind, Field: fieldName}
	switch kind {
	case ValidationLength, ValidationRange:
		if meta.Min == nil && meta.Max == nil {
			return Validation{}, false
		}
		v.Min = meta.Min
		v.Max = meta.Max
	case ValidationFormat:
		matcher := strings.TrimSpace(meta.Matcher)
		if matcher == "" {
			return Validation{}, false
		}
		v.Matcher = matcher
	case ValidationInclusion, ValidationExclusion:
		if len(meta.List) == 0 {
			return Validation{}, false
		}
		v.List = append([]string(nil), meta.List...)
	case ValidationPresence, ValidationEmail:
	default:
		// Custom kinds keep whatever parameters were declared.
		v.Min = meta.Min
		v.Max = meta.Max
		v.Matcher = strings.TrimSpace(meta.Matcher)
		if len(meta.List) > 0 {
			v.List = append([]string(nil), meta.List...)
		}
	}
	return v, true
}

// deriveName resolves the property name from the member name: accessor
// prefixes get/is are stripped and the remainder uncapitalized.
func deriveName(prop descriptor.Property) string {
	name := strings.TrimSpace(prop.Name)
	if prop.Kind != descriptor.KindAccessor {
		return name
	}
	if strings.HasPrefix(name, "get") && len(name) > 3 {
		return uncapitalize(name[3:])
	}
	if strings.HasPrefix(name, "is") && len(name) > 2 {
		return uncapitalize(name[2:])
	}
	return name
}

func uncapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
