package model

import (
	"fmt"
	"strings"
)

// IncludeValidation controls which validation declarations make it into the
// canonical model.
type IncludeValidation int

const (
	// IncludeValidationNone drops all validations.
	IncludeValidationNone IncludeValidation = iota
	// IncludeValidationBuiltin keeps only the fixed builtin vocabulary.
	IncludeValidationBuiltin
	// IncludeValidationAll keeps every declared validation, including custom
	// kinds.
	IncludeValidationAll
)

// ParseIncludeValidation maps a configuration string to an
// IncludeValidation value.
func ParseIncludeValidation(raw string) (IncludeValidation, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "none":
		return IncludeValidationNone, nil
	case "builtin":
		return IncludeValidationBuiltin, nil
	case "all":
		return IncludeValidationAll, nil
	}
	return IncludeValidationNone, fmt.Errorf("model: unknown include-validation mode %q", raw)
}

func (v IncludeValidation) String() string {
	switch v {
	case IncludeValidationBuiltin:
		return "builtin"
	case IncludeValidationAll:
		return "all"
	default:
		return "none"
	}
}

// Accepts reports whether a validation of the given kind is kept.
func (v IncludeValidation) Accepts(kind string) bool {
	switch v {
	case IncludeValidationAll:
		return true
	case IncludeValidationBuiltin:
		return BuiltinValidation(kind)
	default:
		return false
	}
}

// DataOptions is the canonical form of a writer option bundle. Pointer
// booleans carry only the options that survive canonicalization; the
// all-default combination (persist on, everything else off) carries none.
type DataOptions struct {
	Associated *bool
	Changes    *bool
	Critical   *bool
	Persist    *bool
}

// NewDataOptions canonicalizes the four raw booleans:
//   - the all-default combination collapses to the empty bundle,
//   - critical is only preserved when changes is also set,
//   - persist is only preserved when changes is not set.
func NewDataOptions(associated, changes, critical, persist bool) DataOptions {
	var opts DataOptions
	if persist && !associated && !changes && !critical {
		return opts
	}

	if associated {
		opts.Associated = boolPtr(true)
	}
	if changes {
		opts.Changes = boolPtr(true)
		if critical {
			opts.Critical = boolPtr(true)
		}
	} else if persist {
		opts.Persist = boolPtr(true)
	}
	return opts
}

// Empty reports whether no option survived canonicalization.
func (d DataOptions) Empty() bool {
	return d.Associated == nil && d.Changes == nil && d.Critical == nil && d.Persist == nil
}

func boolPtr(b bool) *bool {
	return &b
}
