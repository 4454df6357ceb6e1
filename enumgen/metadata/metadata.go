// Package metadata resolves the serialized display name of every enum member
// from the attribute family selected by the effective metadata source.
package metadata

import (
	"fmt"

	"github.com/broady/enumext/enumgen/ir"
)

// Advisory reports a member attribute that the effective metadata source
// ignores. Resolution falls back to the member name; the advisory only
// tells the frontend about it.
type Advisory struct {
	// Enum is the fully qualified enum name.
	Enum string

	// Member is the member carrying the ignored attribute.
	Member string

	// Family is the attribute family found on the member.
	Family ir.AttributeFamily

	// Effective is the metadata source in force for the enum.
	Effective ir.MetadataSource

	// Source is the member location, if known.
	Source ir.Source
}

// Diagnostic converts the advisory to a warning diagnostic.
func (a Advisory) Diagnostic() ir.Diagnostic {
	d := ir.Diagnostic{
		Code:     ir.CodeMetadataSourceMismatch,
		Severity: ir.SeverityWarning,
		Message: fmt.Sprintf("%s.%s has a %s but the metadata source is %s; the attribute is ignored",
			a.Enum, a.Member, a.Family, a.Effective),
		TypeName: a.Enum,
	}
	if !a.Source.IsZero() {
		src := a.Source
		d.Source = &src
	}
	return d
}

// DisplayName returns the serialized name of m under source: the value of the
// first attribute of the source's family when present and non-empty, else the
// member name. MetadataSourceNone always yields the member name.
func DisplayName(m ir.Member, source ir.MetadataSource) string {
	family, ok := source.Family()
	if !ok {
		return m.Name
	}
	if a, found := m.Attribute(family); found && a.Value != "" {
		return a.Value
	}
	return m.Name
}

// Resolve returns a copy of d with DisplayName and IsDisplayNameTheFirstPresence
// filled for every member, along with advisories for attributes the effective
// source does not consult. d is not modified.
func Resolve(d *ir.EnumDescriptor, cfg ir.DefaultConfiguration) (*ir.EnumDescriptor, []Advisory) {
	out := d.Clone()
	source := cfg.EffectiveMetadataSource(d)
	family, hasFamily := source.Family()
	qualified := d.QualifiedName()

	var advisories []Advisory
	seen := make(map[ir.Constant]bool, len(out.Members))
	for i := range out.Members {
		m := &out.Members[i]
		m.DisplayName = DisplayName(*m, source)
		m.IsDisplayNameTheFirstPresence = !seen[m.Value]
		seen[m.Value] = true

		var reported [4]bool
		for _, a := range m.Attributes {
			if hasFamily && a.Family == family {
				continue
			}
			if a.Family.IsValid() && reported[a.Family] {
				continue
			}
			if a.Family.IsValid() {
				reported[a.Family] = true
			}
			advisories = append(advisories, Advisory{
				Enum:      qualified,
				Member:    m.Name,
				Family:    a.Family,
				Effective: source,
				Source:    m.Source,
			})
		}
	}
	return out, advisories
}
