package generator

import (
	"sort"

	"github.com/goliatone/go-extmodel/pkg/model"
)

// validatorClasses is the fixed validation kind → framework class table.
// Unknown kinds contribute nothing.
var validatorClasses = map[string]string{
	model.ValidationEmail:     "Ext.data.validator.Email",
	model.ValidationExclusion: "Ext.data.validator.Exclusion",
	model.ValidationFormat:    "Ext.data.validator.Format",
	model.ValidationInclusion: "Ext.data.validator.Inclusion",
	model.ValidationLength:    "Ext.data.validator.Length",
	model.ValidationPresence:  "Ext.data.validator.Presence",
	model.ValidationRange:     "Ext.data.validator.Range",
}

// identifierClasses maps identifier strategies to the framework classes
// implementing them. The default and custom strategies need no import.
var identifierClasses = map[string]string{
	model.IdentifierSequential: "Ext.data.identifier.Sequential",
	model.IdentifierUUID:       "Ext.data.identifier.Uuid",
	model.IdentifierNegative:   "Ext.data.identifier.Negative",
}

// resolveValidators groups the model's validations by field for inline
// rendering and collects the framework classes those validations imply.
// Only validations naming an existing field participate; per-field order is
// discovery order. The class list comes back sorted and de-duplicated, so
// resolving twice yields identical results.
func resolveValidators(m *model.Model) (map[string][]model.Validation, []string) {
	validators := make(map[string][]model.Validation)
	classes := make(map[string]struct{})

	for _, field := range m.Fields() {
		for _, validation := range m.Validations() {
			if validation.Field != field.Name {
				continue
			}
			if class, ok := validatorClasses[validation.Kind]; ok {
				classes[class] = struct{}{}
			}
			validators[field.Name] = append(validators[field.Name], validation)
		}
	}

	return validators, sortedSet(classes)
}

func sortedSet(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for entry := range set {
		out = append(out, entry)
	}
	sort.Strings(out)
	return out
}
