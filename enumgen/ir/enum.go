package ir

import (
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/broady/enumext"
)

// EnumDescriptor is the flattened description of one enum selected for
// extension generation. Frontends build one per enum; the generator treats it
// as an immutable value.
type EnumDescriptor struct {
	// Name is the simple type identifier, e.g. "Color".
	Name string `validate:"required,goident,notpredeclared"`

	// Namespace is the import path of the declaring package. Empty means the
	// enum lives in an unnamed (main) package.
	Namespace string `validate:"omitempty,importpath"`

	// PackageName is the declared package name. Derived from Namespace when empty.
	PackageName string `validate:"omitempty,goident"`

	// FullyQualifiedName is the reference used in diagnostics and parse errors.
	// Derived from Namespace and Name when empty.
	FullyQualifiedName string

	// Underlying is the integer kind backing the enum.
	Underlying UnderlyingKind `validate:"underlying"`

	// IsPublic reports whether the enum type is exported.
	IsPublic bool

	// HasFlags marks a bit-flag enum; HasFlagFast is only generated for these.
	HasFlags bool

	// MetadataSource overrides the ambient metadata source when set.
	MetadataSource MetadataSource `validate:"metasource"`

	// ForceInternalExtensions overrides the ambient accessibility policy when non-nil.
	ForceInternalExtensions *bool

	// ExtensionNamespace overrides the import path of the generated type.
	ExtensionNamespace string `validate:"omitempty,importpath"`

	// ExtensionClassName overrides the generated type name.
	ExtensionClassName string `validate:"omitempty,goident"`

	// Transform is applied to display names by the generated ToStringFast.
	Transform enumext.Transform `validate:"transform"`

	// Members in declaration order.
	Members []Member `validate:"dive"`

	// Source location of the type declaration.
	Source Source
}

// Member is one declared enum constant.
type Member struct {
	// Name is the constant identifier.
	Name string `validate:"required,goident"`

	// Value is the constant, see Constant for the encoding.
	Value Constant

	// DisplayName is the resolved serialized name. Filled by the metadata resolver.
	DisplayName string

	// IsDisplayNameTheFirstPresence is true for the first declared member with
	// this Value. Filled by the metadata resolver.
	IsDisplayNameTheFirstPresence bool

	// Attributes are the metadata attributes attached to the member, in
	// declaration order.
	Attributes []Attribute `validate:"dive"`

	// Source location of the constant.
	Source Source
}

// Attribute is a metadata attribute attached to a member.
type Attribute struct {
	// Family identifies the attribute kind.
	Family AttributeFamily `validate:"family"`

	// Value is the configured string: Display name, description text, or
	// EnumMember value.
	Value string
}

// Attribute returns the first attribute of the given family, if any.
func (m Member) Attribute(family AttributeFamily) (Attribute, bool) {
	for _, a := range m.Attributes {
		if a.Family == family {
			return a, true
		}
	}
	return Attribute{}, false
}

// QualifiedName returns FullyQualifiedName, or derives it from Namespace and Name.
func (d *EnumDescriptor) QualifiedName() string {
	switch {
	case d.FullyQualifiedName != "":
		return d.FullyQualifiedName
	case d.Namespace == "":
		return d.Name
	default:
		return d.Namespace + "." + d.Name
	}
}

// Package returns PackageName, or derives it from Namespace.
func (d *EnumDescriptor) Package() string {
	if d.PackageName != "" {
		return d.PackageName
	}
	if d.Namespace == "" {
		return "main"
	}
	return PackageNameOf(d.Namespace)
}

// Clone returns a deep copy of d.
func (d *EnumDescriptor) Clone() *EnumDescriptor {
	if d == nil {
		return nil
	}
	c := *d
	if d.ForceInternalExtensions != nil {
		v := *d.ForceInternalExtensions
		c.ForceInternalExtensions = &v
	}
	if d.Members != nil {
		c.Members = make([]Member, len(d.Members))
		for i, m := range d.Members {
			m.Attributes = slices.Clone(m.Attributes)
			c.Members[i] = m
		}
	}
	return &c
}

// Equal reports whether d and o describe the same enum.
// A nil Members slice equals an empty one.
func (d *EnumDescriptor) Equal(o *EnumDescriptor) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Name != o.Name ||
		d.Namespace != o.Namespace ||
		d.PackageName != o.PackageName ||
		d.FullyQualifiedName != o.FullyQualifiedName ||
		d.Underlying != o.Underlying ||
		d.IsPublic != o.IsPublic ||
		d.HasFlags != o.HasFlags ||
		d.MetadataSource != o.MetadataSource ||
		d.ExtensionNamespace != o.ExtensionNamespace ||
		d.ExtensionClassName != o.ExtensionClassName ||
		d.Transform != o.Transform ||
		d.Source != o.Source {
		return false
	}
	if (d.ForceInternalExtensions == nil) != (o.ForceInternalExtensions == nil) {
		return false
	}
	if d.ForceInternalExtensions != nil && *d.ForceInternalExtensions != *o.ForceInternalExtensions {
		return false
	}
	return slices.EqualFunc(d.Members, o.Members, func(a, b Member) bool {
		return a.Name == b.Name &&
			a.Value == b.Value &&
			a.DisplayName == b.DisplayName &&
			a.IsDisplayNameTheFirstPresence == b.IsDisplayNameTheFirstPresence &&
			a.Source == b.Source &&
			slices.Equal(a.Attributes, b.Attributes)
	})
}

var (
	majorVersionElem = regexp.MustCompile(`^v[0-9]+$`)
	majorVersionDot  = regexp.MustCompile(`\.v[0-9]+$`)
	nonIdentRune     = regexp.MustCompile(`[^A-Za-z0-9_]`)
)

// PackageNameOf guesses the package name of an import path the way goimports
// does: the last element, skipping a /vN major version suffix, dropping a
// gopkg.in style .vN suffix and a "go-" prefix.
func PackageNameOf(importPath string) string {
	importPath = strings.TrimSuffix(importPath, "/")
	base := path.Base(importPath)
	if majorVersionElem.MatchString(base) {
		if dir := path.Dir(importPath); dir != "." && dir != "/" {
			base = path.Base(dir)
		}
	}
	base = majorVersionDot.ReplaceAllString(base, "")
	base = strings.TrimPrefix(base, "go-")
	base = nonIdentRune.ReplaceAllString(base, "_")
	if base == "" || base == "." || (base[0] >= '0' && base[0] <= '9') {
		base = "_" + base
	}
	return base
}
