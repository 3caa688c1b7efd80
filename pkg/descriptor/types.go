package descriptor

// Class is the pre-extracted description of one data class. Discovery
// front-ends (the OpenAPI adapter, the YAML loader, or any caller-supplied
// introspection layer) produce Class values; the model builder never inspects
// live types, only these descriptors.
type Class struct {
	// Name is the simple class name, used as the model name unless the
	// type-level metadata overrides it.
	Name string `yaml:"name"`

	// Interface marks method-style sources. Their properties are aggregated
	// in name-lexicographic order instead of declaration order.
	Interface bool `yaml:"interface,omitempty"`

	// Model carries the type-level settings. Nil means the class carries no
	// type-level metadata at all.
	Model *ModelMeta `yaml:"model,omitempty"`

	// Fields, Associations and Validations declared on the type itself. They
	// are merged before any member-level declarations.
	Fields       []FieldMeta       `yaml:"fields,omitempty"`
	Associations []AssociationMeta `yaml:"associations,omitempty"`
	Validations  []ValidationMeta  `yaml:"validations,omitempty"`

	// Properties in declaration order, subclass members before superclass
	// members so that first-wins de-duplication yields subclass precedence.
	Properties []Property `yaml:"properties,omitempty"`
}

// PropertyKind distinguishes plain fields from accessor methods.
type PropertyKind string

const (
	KindField    PropertyKind = "field"
	KindAccessor PropertyKind = "accessor"
)

// Property describes one discovered member of a class.
type Property struct {
	// Name is the raw member name. For accessors this is the method name
	// (getAge, isActive, ...); the normalizer derives the property name.
	Name string `yaml:"name"`

	// Type is the declared type of the field or the accessor return type,
	// e.g. "string", "int64", "float64", "bool", "time.Time". A leading "*"
	// marks an optional/pointer declaration and is ignored for matching.
	Type string `yaml:"type,omitempty"`

	Kind PropertyKind `yaml:"kind,omitempty"`

	// Void marks accessors without a return value. They are never properties.
	Void bool `yaml:"void,omitempty"`

	// Public reports whether the member is publicly readable. Non-annotated
	// members are only picked up when Public or HasAccessor holds.
	Public      bool `yaml:"public,omitempty"`
	HasAccessor bool `yaml:"hasAccessor,omitempty"`

	// Ignored corresponds to a serialization-ignore marker on the member.
	Ignored bool `yaml:"ignored,omitempty"`

	// Field holds the explicit field metadata, when present.
	Field *FieldMeta `yaml:"field,omitempty"`

	// ID, ClientID and Version mark the identity, client-identity and
	// version properties of the owning model.
	ID       bool          `yaml:"id,omitempty"`
	ClientID *ClientIDMeta `yaml:"clientId,omitempty"`
	Version  bool          `yaml:"version,omitempty"`

	Association *AssociationMeta `yaml:"association,omitempty"`
	Validations []ValidationMeta `yaml:"validations,omitempty"`
}

// ModelMeta mirrors the type-level model settings.
type ModelMeta struct {
	// Name optionally overrides the model name. It may be qualified
	// ("App.model.User"); the last segment names the output artifact.
	Name string `yaml:"name,omitempty"`

	Extend          string `yaml:"extend,omitempty"`
	IDProperty      string `yaml:"idProperty,omitempty"`
	VersionProperty string `yaml:"versionProperty,omitempty"`

	// ClientIDProperty, when set, also configures the writer.
	ClientIDProperty string `yaml:"clientIdProperty,omitempty"`

	Paging                  bool `yaml:"paging,omitempty"`
	DisablePagingParameters bool `yaml:"disablePagingParameters,omitempty"`

	CreateMethod  string `yaml:"createMethod,omitempty"`
	ReadMethod    string `yaml:"readMethod,omitempty"`
	UpdateMethod  string `yaml:"updateMethod,omitempty"`
	DestroyMethod string `yaml:"destroyMethod,omitempty"`

	Writer          string `yaml:"writer,omitempty"`
	Reader          string `yaml:"reader,omitempty"`
	MessageProperty string `yaml:"messageProperty,omitempty"`
	SuccessProperty string `yaml:"successProperty,omitempty"`
	TotalProperty   string `yaml:"totalProperty,omitempty"`
	RootProperty    string `yaml:"rootProperty,omitempty"`

	// Identifier selects the id generation strategy: "sequential", "uuid",
	// "negative", or a custom strategy string.
	Identifier string `yaml:"identifier,omitempty"`

	WriteAllFields bool `yaml:"writeAllFields,omitempty"`

	AllDataOptions     *DataOptionsMeta `yaml:"allDataOptions,omitempty"`
	PartialDataOptions *DataOptionsMeta `yaml:"partialDataOptions,omitempty"`

	HasMany []string `yaml:"hasMany,omitempty"`

	// AutodetectTypes defaults to true; nil means unset.
	AutodetectTypes *bool `yaml:"autodetectTypes,omitempty"`
}

// Autodetect resolves the AutodetectTypes default.
func (m *ModelMeta) Autodetect() bool {
	if m == nil || m.AutodetectTypes == nil {
		return true
	}
	return *m.AutodetectTypes
}

// DataOptionsMeta carries the four writer option booleans. Persist defaults
// to true when unset.
type DataOptionsMeta struct {
	Associated bool  `yaml:"associated,omitempty"`
	Changes    bool  `yaml:"changes,omitempty"`
	Critical   bool  `yaml:"critical,omitempty"`
	Persist    *bool `yaml:"persist,omitempty"`
}

// PersistOrDefault resolves the Persist default.
func (d *DataOptionsMeta) PersistOrDefault() bool {
	if d == nil || d.Persist == nil {
		return true
	}
	return *d.Persist
}

// UndefinedDefaultValue is the sentinel marking an explicitly undefined
// default value; it renders as the bare token `undefined`.
const UndefinedDefaultValue = "undefined"

// FieldMeta mirrors an explicit field declaration.
type FieldMeta struct {
	// Value overrides the derived property name. Required for type-level
	// declarations, optional on members.
	Value string `yaml:"value,omitempty"`

	// Type forces one of the semantic types ("string", "int", "float",
	// "number", "boolean", "date", "auto"). CustomType bypasses the semantic
	// enumeration entirely and is used verbatim.
	Type       string `yaml:"type,omitempty"`
	CustomType string `yaml:"customType,omitempty"`

	DateFormat string `yaml:"dateFormat,omitempty"`

	// DefaultValue is parsed per the target semantic type; the literal
	// UndefinedDefaultValue marks an explicitly undefined default.
	DefaultValue string `yaml:"defaultValue,omitempty"`

	AllowNull  bool  `yaml:"allowNull,omitempty"`
	AllowBlank *bool `yaml:"allowBlank,omitempty"`
	Unique     bool  `yaml:"unique,omitempty"`
	Persist    *bool `yaml:"persist,omitempty"`
	Critical   bool  `yaml:"critical,omitempty"`

	Mapping   string   `yaml:"mapping,omitempty"`
	Convert   string   `yaml:"convert,omitempty"`
	Calculate string   `yaml:"calculate,omitempty"`
	Depends   []string `yaml:"depends,omitempty"`

	Reference *ReferenceMeta `yaml:"reference,omitempty"`
}

// PersistOrDefault resolves the Persist default (true).
func (f *FieldMeta) PersistOrDefault() bool {
	if f == nil || f.Persist == nil {
		return true
	}
	return *f.Persist
}

// AllowBlankOrDefault resolves the AllowBlank default (true).
func (f *FieldMeta) AllowBlankOrDefault() bool {
	if f == nil || f.AllowBlank == nil {
		return true
	}
	return *f.AllowBlank
}

// ReferenceMeta mirrors a field reference declaration.
type ReferenceMeta struct {
	Type        string `yaml:"type,omitempty"`
	Association string `yaml:"association,omitempty"`
	Child       string `yaml:"child,omitempty"`
	Parent      string `yaml:"parent,omitempty"`
	Role        string `yaml:"role,omitempty"`
	Inverse     string `yaml:"inverse,omitempty"`
}

// AssociationMeta mirrors an association declaration.
type AssociationMeta struct {
	// Kind is one of "belongsTo", "hasMany", "hasOne".
	Kind string `yaml:"kind"`

	// Model names the target model. When empty the declared member type is
	// used.
	Model string `yaml:"model,omitempty"`

	PropertyName   string `yaml:"propertyName,omitempty"`
	AssociationKey string `yaml:"associationKey,omitempty"`
	ForeignKey     string `yaml:"foreignKey,omitempty"`
	PrimaryKey     string `yaml:"primaryKey,omitempty"`

	// hasMany only.
	AutoLoad bool   `yaml:"autoLoad,omitempty"`
	Name     string `yaml:"name,omitempty"`

	// belongsTo / hasOne only.
	GetterName   string `yaml:"getterName,omitempty"`
	SetterName   string `yaml:"setterName,omitempty"`
	InstanceName string `yaml:"instanceName,omitempty"`
}

// ClientIDMeta marks the client-id property.
type ClientIDMeta struct {
	// ConfigureWriter controls whether the writer includes the client id.
	ConfigureWriter bool `yaml:"configureWriter,omitempty"`
}

// ValidationMeta mirrors a validation declaration.
type ValidationMeta struct {
	// Kind is one of the builtin kinds (email, exclusion, format, inclusion,
	// length, presence, range) or a custom kind string.
	Kind string `yaml:"kind"`

	// PropertyName names the validated field. Member-level declarations may
	// leave it empty to target the owning member.
	PropertyName string `yaml:"propertyName,omitempty"`

	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`

	// List feeds inclusion/exclusion validations.
	List []string `yaml:"list,omitempty"`

	// Matcher is a JS regular expression literal for format validations.
	Matcher string `yaml:"matcher,omitempty"`
}
