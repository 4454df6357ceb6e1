// Package ir defines the normalized description of an enum handed to the
// enumext generator by an external frontend, together with the ambient
// configuration and the diagnostic facts the generator reports back.
//
// Descriptors are plain values: the resolvers in the naming and metadata
// packages never mutate their input and return enriched copies instead.
package ir

import "fmt"

// Source represents source code location information.
type Source struct {
	File   string `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty" toml:"column,omitempty"`
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// String formats the location as file:line:column, omitting unknown parts.
func (s Source) String() string {
	switch {
	case s.IsZero():
		return ""
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
}

// Severity classifies a diagnostic. The generator never escalates on its own;
// the frontend decides whether an error-severity fact fails the build.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic codes reported by the generator.
const (
	// CodeNamingCollision: two or more enums resolve to the same extension type.
	CodeNamingCollision = "naming_collision"

	// CodeMetadataSourceMismatch: a member carries a metadata attribute from a
	// family the effective metadata source ignores.
	CodeMetadataSourceMismatch = "metadata_source_mismatch"

	// CodeExtensionMembersUnsupported: extension member aliases were requested but
	// the extension type lives outside the enum's package.
	CodeExtensionMembersUnsupported = "extension_members_unsupported"
)

// Diagnostic is a fact surfaced to the frontend. It is data, not an error:
// generation continues after every diagnostic.
type Diagnostic struct {
	// Code is a machine-readable diagnostic identifier.
	Code string

	// Severity is the default severity of the fact.
	Severity Severity

	// Message is a human-readable description.
	Message string

	// TypeName is the fully qualified enum that triggered the diagnostic.
	TypeName string

	// Source is the location that triggered the diagnostic, if known.
	Source *Source
}

// String renders the diagnostic in "location: severity: code: message" form.
func (d Diagnostic) String() string {
	loc := ""
	if d.Source != nil && !d.Source.IsZero() {
		loc = d.Source.String() + ": "
	}
	return fmt.Sprintf("%s%s: %s: %s", loc, d.Severity, d.Code, d.Message)
}
