package ir

import (
	"unicode"
	"unicode/utf8"
)

// DefaultConfiguration holds the ambient per-run defaults consulted by the
// resolvers when a descriptor leaves a setting unset. It is read-only for the
// duration of a run.
type DefaultConfiguration struct {
	// MetadataSource is the attribute family used when the enum sets none.
	MetadataSource MetadataSource `json:"metadataSource,omitempty" yaml:"metadataSource,omitempty" toml:"metadataSource,omitempty" validate:"metasource"`

	// ForceExtensionMembers also emits ToStringFast, IsDefined and HasFlagFast
	// as methods on the enum type itself.
	ForceExtensionMembers bool `json:"forceExtensionMembers,omitempty" yaml:"forceExtensionMembers,omitempty" toml:"forceExtensionMembers,omitempty"`

	// ForceInternalAccessModifier makes generated types unexported unless an
	// enum overrides it.
	ForceInternalAccessModifier bool `json:"forceInternalAccessModifier,omitempty" yaml:"forceInternalAccessModifier,omitempty" toml:"forceInternalAccessModifier,omitempty"`
}

// DefaultMetadataSource is used when neither the enum nor the configuration
// selects a metadata source.
const DefaultMetadataSource = MetadataSourceEnumMember

// EffectiveMetadataSource resolves the metadata source for d under c.
// The result is never MetadataSourceUnset.
func (c DefaultConfiguration) EffectiveMetadataSource(d *EnumDescriptor) MetadataSource {
	return d.MetadataSource.Or(c.MetadataSource).Or(DefaultMetadataSource)
}

// ExtensionClassIdentity locates the generated extension type.
type ExtensionClassIdentity struct {
	// Namespace is the import path of the package holding the generated type.
	Namespace string

	// ClassName is the resolved type name before accessibility is applied.
	ClassName string

	// IsInternal makes the generated type unexported.
	IsInternal bool
}

// TypeName returns the Go identifier of the generated type: ClassName with
// its first letter lower-cased when internal and upper-cased otherwise.
func (id ExtensionClassIdentity) TypeName() string {
	r, size := utf8.DecodeRuneInString(id.ClassName)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return id.ClassName
	}
	if id.IsInternal {
		r = unicode.ToLower(r)
	} else {
		r = unicode.ToUpper(r)
	}
	return string(r) + id.ClassName[size:]
}

// Key identifies the identity for collision grouping.
func (id ExtensionClassIdentity) Key() string {
	return id.Namespace + "." + id.ClassName
}
