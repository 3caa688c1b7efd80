package generator

import (
	"github.com/goliatone/go-extmodel/pkg/model"
)

// fieldValue renders one field entry: the bare name when every other
// attribute sits at its dialect default, a structured object otherwise.
// Attributes a dialect does not understand are ignored entirely when making
// that call, so a field carrying only ExtJS5-specific extras still renders
// as a bare name in the other dialects.
func fieldValue(f *model.Field, d Dialect, rules dialectRules, validators []model.Validation) any {
	if hasOnlyName(f, d, rules, validators) {
		return f.Name
	}

	doc := newDocument()
	doc.set("name", f.Name)

	if t := resolvedType(f.Type, d); t != model.TypeAuto {
		doc.set("type", string(t))
	}
	if f.DateFormat != "" {
		doc.set("dateFormat", f.DateFormat)
	}
	if f.DefaultValue != nil {
		doc.set("defaultValue", defaultValue(f.DefaultValue))
	}
	if f.AllowNull != nil {
		doc.set(rules.allowNullKey, *f.AllowNull)
	}
	if f.AllowBlank != nil {
		doc.set("allowBlank", *f.AllowBlank)
	}
	if rules.fieldExtras && f.Unique != nil {
		doc.set("unique", *f.Unique)
	}
	if f.Persist != nil {
		doc.set("persist", *f.Persist)
	}
	if rules.fieldExtras && f.Critical != nil {
		doc.set("critical", *f.Critical)
	}
	if f.Mapping != "" {
		doc.set("mapping", f.Mapping)
	}
	if f.Convert != "" {
		doc.set("convert", raw(f.Convert))
	}
	if rules.fieldExtras {
		if f.Calculate != "" {
			doc.set("calculate", raw(f.Calculate))
		}
		if len(f.Depends) > 0 {
			doc.set("depends", stringList(f.Depends))
		}
		if f.Reference != nil {
			doc.set("reference", referenceValue(f.Reference))
		}
	}
	if rules.inlineValidators && len(validators) > 0 {
		entries := make([]any, 0, len(validators))
		for i := range validators {
			entries = append(entries, validationValue(validators[i], false))
		}
		doc.set("validators", entries)
	}
	return doc
}

// hasOnlyName reports whether the field renders as a bare name string. The
// auto and string types are the implicit field types, so they do not force
// a structured object on their own.
func hasOnlyName(f *model.Field, d Dialect, rules dialectRules, validators []model.Validation) bool {
	if f.DateFormat != "" || f.DefaultValue != nil || f.AllowNull != nil ||
		f.AllowBlank != nil || f.Persist != nil || f.Mapping != "" || f.Convert != "" {
		return false
	}
	if rules.fieldExtras {
		if f.Unique != nil || f.Critical != nil || f.Calculate != "" ||
			len(f.Depends) > 0 || f.Reference != nil {
			return false
		}
	}
	if rules.inlineValidators && len(validators) > 0 {
		return false
	}
	t := resolvedType(f.Type, d)
	return t == model.TypeAuto || t == model.TypeString
}

func defaultValue(v *model.DefaultValue) any {
	switch v.Kind {
	case model.DefaultUndefined:
		return raw("undefined")
	case model.DefaultBool:
		return v.Bool
	case model.DefaultInt:
		return v.Int
	case model.DefaultFloat:
		return v.Float
	default:
		return v.Str
	}
}

func referenceValue(r *model.Reference) any {
	if r.TypeOnly() {
		return r.Type
	}
	doc := newDocument()
	if r.Type != "" {
		doc.set("type", r.Type)
	}
	if r.Association != "" {
		doc.set("association", r.Association)
	}
	if r.Child != "" {
		doc.set("child", r.Child)
	}
	if r.Parent != "" {
		doc.set("parent", r.Parent)
	}
	if r.Role != "" {
		doc.set("role", r.Role)
	}
	if r.Inverse != "" {
		doc.set("inverse", r.Inverse)
	}
	return doc
}

// validationValue renders one validation. The standalone validations list
// includes the field key; inline per-field validators omit it since the
// owning field is implied.
func validationValue(v model.Validation, includeField bool) *document {
	doc := newDocument()
	doc.set("type", v.Kind)
	if includeField {
		doc.set("field", v.Field)
	}
	if v.Min != nil {
		doc.set("min", *v.Min)
	}
	if v.Max != nil {
		doc.set("max", *v.Max)
	}
	if v.Matcher != "" {
		doc.set("matcher", raw(v.Matcher))
	}
	if len(v.List) > 0 {
		doc.set("list", stringList(v.List))
	}
	return doc
}

func associationValue(a model.Association) *document {
	doc := newDocument()
	doc.set("type", a.Kind)
	doc.set("model", a.Model)
	if a.AssociationKey != "" {
		doc.set("associationKey", a.AssociationKey)
	}
	if a.ForeignKey != "" {
		doc.set("foreignKey", a.ForeignKey)
	}
	if a.PrimaryKey != "" {
		doc.set("primaryKey", a.PrimaryKey)
	}
	if a.AutoLoad {
		doc.set("autoLoad", true)
	}
	if a.Name != "" {
		doc.set("name", a.Name)
	}
	if a.GetterName != "" {
		doc.set("getterName", a.GetterName)
	}
	if a.SetterName != "" {
		doc.set("setterName", a.SetterName)
	}
	if a.InstanceName != "" {
		doc.set("instanceName", a.InstanceName)
	}
	return doc
}
