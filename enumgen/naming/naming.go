// Package naming resolves where the generated extension type lives and what it
// is called, and finds enums whose extension types would collide.
package naming

import (
	"fmt"
	"strings"

	"github.com/broady/enumext/enumgen/ir"
)

// ClassNameSuffix is appended to the enum name when no class name override is set.
const ClassNameSuffix = "Extensions"

// Resolve computes the extension class identity of d under cfg.
// It is a pure function of its inputs.
func Resolve(d *ir.EnumDescriptor, cfg ir.DefaultConfiguration) ir.ExtensionClassIdentity {
	namespace := d.Namespace
	if d.ExtensionNamespace != "" {
		namespace = d.ExtensionNamespace
	}

	className := d.ExtensionClassName
	if className == "" {
		className = d.Name + ClassNameSuffix
	}

	isInternal := cfg.ForceInternalAccessModifier
	switch {
	case !d.IsPublic:
		isInternal = true
	case d.ForceInternalExtensions != nil:
		isInternal = *d.ForceInternalExtensions
	}

	return ir.ExtensionClassIdentity{
		Namespace:  namespace,
		ClassName:  className,
		IsInternal: isInternal,
	}
}

// Resolved pairs a descriptor with its resolved identity.
type Resolved struct {
	Enum     *ir.EnumDescriptor
	Identity ir.ExtensionClassIdentity
}

// CollisionMember is one enum taking part in a collision.
type CollisionMember struct {
	// Name is the fully qualified enum name.
	Name string

	// Source is the enum's declaration site, if known.
	Source ir.Source
}

// CollisionGroup lists enums that resolve to the same extension type.
type CollisionGroup struct {
	Namespace string
	ClassName string

	// TypeName is the Go type the first member emits. Members may differ in
	// ClassName and still collide on it.
	TypeName string

	Enums []CollisionMember
}

// Diagnostic renders the group as an error-severity diagnostic anchored at the
// second enum, the first one to collide.
func (g CollisionGroup) Diagnostic() ir.Diagnostic {
	names := make([]string, len(g.Enums))
	for i, e := range g.Enums {
		names[i] = e.Name
	}
	ns := g.Namespace
	if ns == "" {
		ns = "<main>"
	}
	typeName := g.TypeName
	if typeName == "" {
		typeName = g.ClassName
	}
	d := ir.Diagnostic{
		Code:     ir.CodeNamingCollision,
		Severity: ir.SeverityError,
		Message:  fmt.Sprintf("enums %s all generate extension type %s in %s", strings.Join(names, ", "), typeName, ns),
	}
	if len(g.Enums) > 1 {
		d.TypeName = g.Enums[1].Name
		if src := g.Enums[1].Source; !src.IsZero() {
			d.Source = &src
		}
	}
	return d
}

// DetectCollisions groups the resolved enums that share a namespace and either
// their class name or the Go type name it produces, and returns every group
// with two or more members. Groups are ordered by their first member and
// members keep the input order.
func DetectCollisions(resolved []Resolved) []CollisionGroup {
	type key struct{ namespace, name string }

	// parent links each enum to an earlier enum it collides with.
	parent := make([]int, len(resolved))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		switch {
		case ra < rb:
			parent[rb] = ra
		case rb < ra:
			parent[ra] = rb
		}
	}

	byClass := make(map[key]int)
	byType := make(map[key]int)
	for i, r := range resolved {
		ck := key{r.Identity.Namespace, r.Identity.ClassName}
		if j, ok := byClass[ck]; ok {
			union(i, j)
		} else {
			byClass[ck] = i
		}
		tk := key{r.Identity.Namespace, r.Identity.TypeName()}
		if j, ok := byType[tk]; ok {
			union(i, j)
		} else {
			byType[tk] = i
		}
	}

	index := make(map[int]int)
	var groups []CollisionGroup
	for i, r := range resolved {
		root := find(i)
		gi, ok := index[root]
		if !ok {
			gi = len(groups)
			index[root] = gi
			groups = append(groups, CollisionGroup{
				Namespace: r.Identity.Namespace,
				ClassName: r.Identity.ClassName,
				TypeName:  r.Identity.TypeName(),
			})
		}
		groups[gi].Enums = append(groups[gi].Enums, CollisionMember{
			Name:   r.Enum.QualifiedName(),
			Source: r.Enum.Source,
		})
	}

	collisions := groups[:0]
	for _, g := range groups {
		if len(g.Enums) >= 2 {
			collisions = append(collisions, g)
		}
	}
	if len(collisions) == 0 {
		return nil
	}
	return collisions
}
