package enumext

// ParseOptions configures the generated TryParseWithOptions and
// ParseWithOptions methods.
//
// The zero value matches member identifiers case-sensitively and falls back to
// parsing the input as a numeral of the underlying type.
type ParseOptions struct {
	// IgnoreCase matches names with strings.EqualFold instead of ==.
	IgnoreCase bool

	// UseMetadataAttributes also matches the resolved display names after the
	// member identifiers have been tried.
	UseMetadataAttributes bool

	// DisableNumberParsing turns off the numeral fallback. When the fallback is
	// enabled, any in-range numeral parses, even one that is not a declared member.
	DisableNumberParsing bool
}

// SerializationOptions configures the generated ToStringFastWithOptions method.
type SerializationOptions struct {
	// IgnoreMetadataAttributes stringifies to the member identifier instead of
	// the resolved display name.
	IgnoreMetadataAttributes bool

	// Transform is applied to the selected name.
	Transform Transform
}
