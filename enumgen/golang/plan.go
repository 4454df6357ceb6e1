package golang

import "github.com/broady/enumext/enumgen/ir"

// plan is the template data for one generated file. All decisions about
// ordering and de-duplication are made here so the template stays a plain
// rendering of the plan.
type plan struct {
	Frontmatter []string
	Package     string
	StdImports  []importSpec
	Imports     []importSpec

	// Ident holds the names the file declares or imports.
	Ident idents

	TypeName      string // generated type identifier
	EnumType      string // enum type as referenced from the generated file
	Underlying    string // Go integer type name
	Unsigned      bool
	BitSize       int
	QualifiedName string

	// Members lists every member in declaration order.
	Members []memberEntry

	// StringCases maps each distinct value to its first-declared member.
	StringCases []stringCase

	// DistinctValues are the literals of StringCases, for IsDefined.
	DistinctValues []string

	// DistinctNames are member identifiers without repeats, for IsDefinedName.
	DistinctNames []string

	NameExact    []parseCase
	NameFold     []parseCase
	DisplayExact []parseCase
	DisplayFold  []parseCase

	HasFlags         bool
	ExtensionMembers bool
}

// idents are the import names and local identifiers used by the template.
// Each defaults to its usual spelling and is renamed only when it would clash
// with the enum type, the generated type or another entry.
type idents struct {
	Strconv string
	Strings string
	Enumext string

	Recv       string
	Value      string
	Name       string
	Opts       string
	Flag       string
	N          string
	Err        string
	OK         string
	IgnoreCase string
	V          string
}

type importSpec struct {
	Name string // empty when the default package name is used
	Path string
}

type memberEntry struct {
	Name    string
	Literal string
}

type stringCase struct {
	Literal string
	Member  string // raw member identifier
	Display string // raw display name
	Output  string // display name with the enum's transform applied
}

type parseCase struct {
	Text    string
	Literal string
}

// newPlan builds the template data for d. The enum is expected to have passed
// through the metadata resolver; members with no display name fall back to
// their identifier.
func newPlan(d *ir.EnumDescriptor, id ir.ExtensionClassIdentity, opts Options) (*plan, []ir.Diagnostic) {
	var diags []ir.Diagnostic
	kind := d.Underlying

	p := &plan{
		Frontmatter:   frontmatterLines(opts.Frontmatter),
		TypeName:      id.TypeName(),
		EnumType:      d.Name,
		Underlying:    kind.String(),
		Unsigned:      !kind.Signed(),
		BitSize:       kind.BitSize(),
		QualifiedName: d.QualifiedName(),
		HasFlags:      d.HasFlags,
	}

	samePackage := id.Namespace == d.Namespace
	switch {
	case samePackage:
		p.Package = d.Package()
	case id.Namespace == "":
		p.Package = "main"
	default:
		p.Package = ir.PackageNameOf(id.Namespace)
	}

	s := newScope(p.TypeName)
	if samePackage {
		s[d.Name] = true
	}
	p.Ident.Strconv = s.fresh("strconv")
	p.Ident.Strings = s.fresh("strings")
	p.Ident.Enumext = s.fresh("enumext")

	p.StdImports = append(p.StdImports, aliased("strconv", p.Ident.Strconv))
	if len(d.Members) > 0 {
		p.StdImports = append(p.StdImports, aliased("strings", p.Ident.Strings))
	}
	p.Imports = append(p.Imports, aliased(RuntimeImportPath, p.Ident.Enumext))

	if !samePackage {
		name := s.importName(d.Package())
		spec := importSpec{Path: d.Namespace}
		if name != ir.PackageNameOf(d.Namespace) {
			spec.Name = name
		}
		p.Imports = append(p.Imports, spec)
		p.EnumType = name + "." + d.Name
	}

	p.Ident.Recv = s.fresh("e")
	p.Ident.Value = s.fresh("value")
	p.Ident.Name = s.fresh("name")
	p.Ident.Opts = s.fresh("opts")
	p.Ident.Flag = s.fresh("flag")
	p.Ident.N = s.fresh("n")
	p.Ident.Err = s.fresh("err")
	p.Ident.OK = s.fresh("ok")
	p.Ident.IgnoreCase = s.fresh("ignoreCase")
	p.Ident.V = s.fresh("v")

	if opts.ExtensionMembers {
		if samePackage {
			p.ExtensionMembers = true
		} else {
			diags = append(diags, ir.Diagnostic{
				Code:     ir.CodeExtensionMembersUnsupported,
				Severity: ir.SeverityWarning,
				Message:  "extension members for " + d.QualifiedName() + " require the extension type to live in package " + d.Namespace + ", not " + id.Namespace,
				TypeName: d.QualifiedName(),
			})
		}
	}

	seenValue := make(map[ir.Constant]bool, len(d.Members))
	seenName := make(map[string]bool, len(d.Members))
	seenDisplay := make(map[string]bool, len(d.Members))
	for _, m := range d.Members {
		lit := m.Value.Format(kind)
		display := m.DisplayName
		if display == "" {
			display = m.Name
		}

		p.Members = append(p.Members, memberEntry{Name: m.Name, Literal: lit})

		if !seenValue[m.Value] {
			seenValue[m.Value] = true
			p.StringCases = append(p.StringCases, stringCase{
				Literal: lit,
				Member:  m.Name,
				Display: display,
				Output:  d.Transform.Apply(display),
			})
			p.DistinctValues = append(p.DistinctValues, lit)
		}

		p.NameFold = append(p.NameFold, parseCase{Text: m.Name, Literal: lit})
		if !seenName[m.Name] {
			seenName[m.Name] = true
			p.NameExact = append(p.NameExact, parseCase{Text: m.Name, Literal: lit})
			p.DistinctNames = append(p.DistinctNames, m.Name)
		}

		p.DisplayFold = append(p.DisplayFold, parseCase{Text: display, Literal: lit})
		if !seenDisplay[display] {
			seenDisplay[display] = true
			p.DisplayExact = append(p.DisplayExact, parseCase{Text: display, Literal: lit})
		}
	}

	return p, diags
}

// aliased imports path under name, spelling the name out only when it differs
// from the package's own.
func aliased(path, name string) importSpec {
	if name == ir.PackageNameOf(path) {
		return importSpec{Path: path}
	}
	return importSpec{Name: name, Path: path}
}
