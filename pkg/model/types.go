package model

// FieldType is the semantic type of a model field. Beyond the enumerated
// values a FieldType may hold a custom type string supplied by the caller,
// which bypasses auto-detection and is emitted verbatim.
type FieldType string

const (
	TypeAuto    FieldType = "auto"
	TypeString  FieldType = "string"
	TypeInteger FieldType = "int"
	TypeFloat   FieldType = "float"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeDate    FieldType = "date"
)

// Identifier strategies with dedicated framework support. Any other string
// is treated as a custom strategy and emitted verbatim.
const (
	IdentifierDefault    = "default"
	IdentifierSequential = "sequential"
	IdentifierUUID       = "uuid"
	IdentifierNegative   = "negative"
)

// DefaultKind discriminates the typed default value representations.
type DefaultKind int

const (
	// DefaultUndefined renders as the bare token `undefined`.
	DefaultUndefined DefaultKind = iota
	DefaultBool
	DefaultInt
	DefaultFloat
	DefaultString
)

// DefaultValue is a typed field default. Exactly one representation is
// meaningful, selected by Kind.
type DefaultValue struct {
	Kind  DefaultKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

// Reference describes the target of a field reference. When only Type is
// set the reference renders as a bare type string instead of an object.
type Reference struct {
	Type        string
	Association string
	Child       string
	Parent      string
	Role        string
	Inverse     string
}

// TypeOnly reports whether the reference carries nothing but a type.
func (r *Reference) TypeOnly() bool {
	return r.Association == "" && r.Child == "" && r.Parent == "" &&
		r.Role == "" && r.Inverse == ""
}

// Empty reports whether the reference carries no properties at all.
func (r *Reference) Empty() bool {
	return r.Type == "" && r.TypeOnly()
}

// Field is the canonical descriptor of one model field. Pointer booleans
// distinguish "unset" from an explicit value; unset attributes are omitted
// from the output, which is what makes bare-name rendering possible.
type Field struct {
	Name string
	Type FieldType

	DateFormat   string
	DefaultValue *DefaultValue

	AllowNull  *bool
	AllowBlank *bool
	Unique     *bool
	Persist    *bool
	Critical   *bool

	Mapping   string
	Convert   string
	Calculate string
	Depends   []string

	Reference *Reference
}

// Association is a directional relation from the owning model to a target
// model.
type Association struct {
	// Kind is one of AssociationBelongsTo, AssociationHasMany,
	// AssociationHasOne.
	Kind  string
	Model string

	AssociationKey string
	ForeignKey     string
	PrimaryKey     string

	// hasMany only.
	AutoLoad bool
	Name     string

	// belongsTo / hasOne only.
	GetterName   string
	SetterName   string
	InstanceName string
}

const (
	AssociationBelongsTo = "belongsTo"
	AssociationHasMany   = "hasMany"
	AssociationHasOne    = "hasOne"
)

// Validation is one validation rule bound to a field. Kind-specific
// parameters that do not apply are left at their zero values.
type Validation struct {
	Kind  string
	Field string

	Min *float64
	Max *float64

	// List feeds inclusion and exclusion validations.
	List []string

	// Matcher is the JS expression of a format validation, rendered raw.
	Matcher string
}

// Builtin validation kinds.
const (
	ValidationEmail     = "email"
	ValidationExclusion = "exclusion"
	ValidationFormat    = "format"
	ValidationInclusion = "inclusion"
	ValidationLength    = "length"
	ValidationPresence  = "presence"
	ValidationRange     = "range"
)

// BuiltinValidation reports whether kind is one of the fixed vocabulary.
func BuiltinValidation(kind string) bool {
	switch kind {
	case ValidationEmail, ValidationExclusion, ValidationFormat,
		ValidationInclusion, ValidationLength, ValidationPresence,
		ValidationRange:
		return true
	}
	return false
}

// Model is the canonical, dialect-independent representation of one data
// class. It is assembled once per generation run and not shared between
// runs.
type Model struct {
	Name   string
	Extend string

	IDProperty                  string
	VersionProperty             string
	ClientIDProperty            string
	ClientIDPropertyAddToWriter bool

	Paging                  bool
	DisablePagingParameters bool

	CreateMethod  string
	ReadMethod    string
	UpdateMethod  string
	DestroyMethod string

	Writer          string
	Reader          string
	MessageProperty string
	SuccessProperty string
	TotalProperty   string
	RootProperty    string

	Identifier     string
	WriteAllFields bool

	AllDataOptions     DataOptions
	PartialDataOptions DataOptions

	HasMany []string

	autodetect bool

	fieldOrder   []string
	fields       map[string]*Field
	associations []Association
	validations  []Validation
}

// NewModel creates an empty model with the given name, extending the
// framework base model by default.
func NewModel(name string) *Model {
	return &Model{
		Name:       name,
		Extend:     "Ext.data.Model",
		autodetect: true,
		fields:     make(map[string]*Field),
	}
}

// AddField registers a field. Registration order is preserved and a field
// name already present wins: later registrations of the same name are
// ignored, which is what gives subclass fields precedence over superclass
// fields.
func (m *Model) AddField(f *Field) bool {
	if f == nil || f.Name == "" {
		return false
	}
	if _, exists := m.fields[f.Name]; exists {
		return false
	}
	m.fields[f.Name] = f
	m.fieldOrder = append(m.fieldOrder, f.Name)
	return true
}

// HasField reports whether a field with the given name is registered.
func (m *Model) HasField(name string) bool {
	_, ok := m.fields[name]
	return ok
}

// Field returns the registered field with the given name, or nil.
func (m *Model) Field(name string) *Field {
	return m.fields[name]
}

// Fields returns the fields in registration order.
func (m *Model) Fields() []*Field {
	out := make([]*Field, 0, len(m.fieldOrder))
	for _, name := range m.fieldOrder {
		out = append(out, m.fields[name])
	}
	return out
}

// AddAssociation appends an association.
func (m *Model) AddAssociation(a Association) {
	m.associations = append(m.associations, a)
}

// Associations returns the associations in registration order.
func (m *Model) Associations() []Association {
	return m.associations
}

// AddValidation appends a validation. Two validations of the same kind on
// the same field collapse to one: the first registration wins.
func (m *Model) AddValidation(v Validation) bool {
	for _, existing := range m.validations {
		if existing.Kind == v.Kind && existing.Field == v.Field {
			return false
		}
	}
	m.validations = append(m.validations, v)
	return true
}

// Validations returns the validations in registration order.
func (m *Model) Validations() []Validation {
	return m.validations
}
