package ir

import (
	"fmt"
	"strings"
)

// MetadataSource selects the attribute family that supplies serialized member
// names. The zero value means "use the ambient default".
type MetadataSource int

const (
	MetadataSourceUnset MetadataSource = iota
	MetadataSourceNone
	MetadataSourceDisplay
	MetadataSourceDescription
	MetadataSourceEnumMember
)

// String returns the string representation of the metadata source.
func (s MetadataSource) String() string {
	switch s {
	case MetadataSourceUnset:
		return "Unset"
	case MetadataSourceNone:
		return "None"
	case MetadataSourceDisplay:
		return "DisplayAttribute"
	case MetadataSourceDescription:
		return "DescriptionAttribute"
	case MetadataSourceEnumMember:
		return "EnumMemberAttribute"
	default:
		return "Unknown"
	}
}

// IsValid reports whether s is a known source (including Unset).
func (s MetadataSource) IsValid() bool {
	return s >= MetadataSourceUnset && s <= MetadataSourceEnumMember
}

// Family returns the attribute family consulted by the source.
// ok is false for None and Unset, which consult no attributes.
func (s MetadataSource) Family() (family AttributeFamily, ok bool) {
	switch s {
	case MetadataSourceDisplay:
		return FamilyDisplay, true
	case MetadataSourceDescription:
		return FamilyDescription, true
	case MetadataSourceEnumMember:
		return FamilyEnumMember, true
	default:
		return 0, false
	}
}

// Or returns s, or fallback when s is unset.
func (s MetadataSource) Or(fallback MetadataSource) MetadataSource {
	if s == MetadataSourceUnset {
		return fallback
	}
	return s
}

// ParseMetadataSource parses a metadata source name. Matching is
// case-insensitive and the "Attribute" suffix is optional.
func ParseMetadataSource(s string) (MetadataSource, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "attribute")
	switch name {
	case "", "unset":
		return MetadataSourceUnset, nil
	case "none":
		return MetadataSourceNone, nil
	case "display":
		return MetadataSourceDisplay, nil
	case "description":
		return MetadataSourceDescription, nil
	case "enummember":
		return MetadataSourceEnumMember, nil
	default:
		return MetadataSourceUnset, fmt.Errorf("unknown metadata source %q (expected None, DisplayAttribute, DescriptionAttribute or EnumMemberAttribute)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s MetadataSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *MetadataSource) UnmarshalText(text []byte) error {
	v, err := ParseMetadataSource(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// AttributeFamily identifies a kind of metadata attribute attached to a member.
type AttributeFamily int

const (
	FamilyDisplay     AttributeFamily = iota + 1 // Display(Name = "...")
	FamilyDescription                            // Description("...")
	FamilyEnumMember                             // EnumMember(Value = "...")
)

// String returns the string representation of the attribute family.
func (f AttributeFamily) String() string {
	switch f {
	case FamilyDisplay:
		return "DisplayAttribute"
	case FamilyDescription:
		return "DescriptionAttribute"
	case FamilyEnumMember:
		return "EnumMemberAttribute"
	default:
		return "Unknown"
	}
}

// IsValid reports whether f is a known family.
func (f AttributeFamily) IsValid() bool {
	return f >= FamilyDisplay && f <= FamilyEnumMember
}

// ParseAttributeFamily parses a family name; the "Attribute" suffix is optional.
func ParseAttributeFamily(s string) (AttributeFamily, error) {
	src, err := ParseMetadataSource(s)
	if err != nil {
		return 0, fmt.Errorf("unknown attribute family %q", s)
	}
	f, ok := src.Family()
	if !ok {
		return 0, fmt.Errorf("unknown attribute family %q", s)
	}
	return f, nil
}

// MarshalText implements encoding.TextMarshaler.
func (f AttributeFamily) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *AttributeFamily) UnmarshalText(text []byte) error {
	v, err := ParseAttributeFamily(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
