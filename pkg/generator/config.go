package generator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-extmodel/pkg/model"
)

// Dialect selects one of the supported output grammars.
type Dialect int

const (
	DialectExtJS4 Dialect = iota
	DialectExtJS5
	DialectTouch2
)

// ParseDialect maps a configuration string to a Dialect.
func ParseDialect(raw string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "extjs4":
		return DialectExtJS4, nil
	case "extjs5":
		return DialectExtJS5, nil
	case "touch2":
		return DialectTouch2, nil
	}
	return DialectExtJS4, fmt.Errorf("generator: unknown dialect %q", raw)
}

func (d Dialect) String() string {
	switch d {
	case DialectExtJS5:
		return "extjs5"
	case DialectTouch2:
		return "touch2"
	default:
		return "extjs4"
	}
}

// LineEnding selects the line break normalization applied to the final text.
type LineEnding int

const (
	// LineEndingSystem uses the host platform's native line ending.
	LineEndingSystem LineEnding = iota
	LineEndingCRLF
	LineEndingLF
)

// ParseLineEnding maps a configuration string to a LineEnding.
func ParseLineEnding(raw string) (LineEnding, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "system":
		return LineEndingSystem, nil
	case "crlf":
		return LineEndingCRLF, nil
	case "lf":
		return LineEndingLF, nil
	}
	return LineEndingSystem, fmt.Errorf("generator: unknown line ending %q", raw)
}

// Config is the full output configuration surface. The zero value selects
// the ExtJS4 dialect with compact output, double quotes, unquoted API
// references and platform line endings.
type Config struct {
	Dialect Dialect

	// Debug pretty-prints the definition with two-space indentation.
	Debug bool

	// IncludeValidation is consumed by the model builder; it travels with
	// the output configuration so callers configure one surface.
	IncludeValidation model.IncludeValidation

	// UseSingleQuotes replaces every double quote in the final text with a
	// single quote.
	UseSingleQuotes bool

	// SurroundAPIWithQuotes quotes proxy API method references. By default
	// they render unquoted since they are JS expressions.
	SurroundAPIWithQuotes bool

	LineEnding LineEnding
}

// dialectRules is the decision table driving every dialect-specific choice
// in the serializer. Keeping the variance here, instead of scattered
// conditionals, makes the finite rule set enumerable.
type dialectRules struct {
	// nestedConfig places the config keys under a "config" key instead of
	// the top level.
	nestedConfig bool

	// supportsRequires emits the explicit class import list.
	supportsRequires bool

	// identifierKey names the identifier strategy key.
	identifierKey string

	// supportsVersionProperty gates the versionProperty key.
	supportsVersionProperty bool

	// clientIDDefault is the implicit client-id property name; the key is
	// suppressed when the model's value matches it.
	clientIDDefault string

	// inlineValidators folds validations into per-field validators instead
	// of the standalone validations list.
	inlineValidators bool

	// allowNullKey names the nullability key.
	allowNullKey string

	// readerRootKey names the reader root key.
	readerRootKey string

	// fieldExtras gates the field attributes only one dialect understands
	// (unique, critical, calculate, depends, reference).
	fieldExtras bool
}

var dialectTable = map[Dialect]dialectRules{
	DialectExtJS4: {
		identifierKey: "idgen",
		allowNullKey:  "useNull",
		readerRootKey: "root",
	},
	DialectExtJS5: {
		supportsRequires:        true,
		identifierKey:           "identifier",
		supportsVersionProperty: true,
		inlineValidators:        true,
		allowNullKey:            "allowNull",
		readerRootKey:           "rootProperty",
		fieldExtras:             true,
	},
	DialectTouch2: {
		nestedConfig:    true,
		identifierKey:   "identifier",
		clientIDDefault: "clientId",
		allowNullKey:    "useNull",
		readerRootKey:   "root",
	},
}

// resolvedType maps a semantic type to its dialect spelling: ExtJS5 spells
// FLOAT as number while the other two spell NUMBER as float. Custom types
// pass through untouched.
func resolvedType(t model.FieldType, d Dialect) model.FieldType {
	if d == DialectExtJS5 {
		if t == model.TypeFloat {
			return model.TypeNumber
		}
		return t
	}
	if t == model.TypeNumber {
		return model.TypeFloat
	}
	return t
}
