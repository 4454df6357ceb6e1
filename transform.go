package enumext

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transform is a serialization transform applied to the string form of an
// enum member.
type Transform int

const (
	TransformNone           Transform = iota // Leave names untouched
	TransformLowerInvariant                  // Lower-case, culture invariant
	TransformUpperInvariant                  // Upper-case, culture invariant
)

// String returns the string representation of the transform.
func (t Transform) String() string {
	switch t {
	case TransformNone:
		return "None"
	case TransformLowerInvariant:
		return "LowerInvariant"
	case TransformUpperInvariant:
		return "UpperInvariant"
	default:
		return "Unknown"
	}
}

// Apply returns s with the transform applied.
// The invariant casers use the undetermined language tag, so the result does not
// depend on the process locale.
func (t Transform) Apply(s string) string {
	switch t {
	case TransformLowerInvariant:
		return cases.Lower(language.Und).String(s)
	case TransformUpperInvariant:
		return cases.Upper(language.Und).String(s)
	default:
		return s
	}
}

// ParseTransform parses a transform name. Matching is case-insensitive and
// accepts the short forms "lower" and "upper". The empty string is TransformNone.
func ParseTransform(s string) (Transform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TransformNone, nil
	case "lowerinvariant", "lower":
		return TransformLowerInvariant, nil
	case "upperinvariant", "upper":
		return TransformUpperInvariant, nil
	default:
		return TransformNone, fmt.Errorf("unknown transform %q (expected None, LowerInvariant or UpperInvariant)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Transform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Transform) UnmarshalText(text []byte) error {
	v, err := ParseTransform(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
