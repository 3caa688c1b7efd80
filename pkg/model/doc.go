// Package model holds the canonical, dialect-independent representation of
// a data class and the builder that assembles it from descriptors. The
// builder performs all normalization (accessor naming, type detection,
// typed defaults, marker registration); serialization concerns live in the
// generator package.
package model
