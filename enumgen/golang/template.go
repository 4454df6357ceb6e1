package golang

import (
	"strconv"
	"text/template"
)

var fileTemplate = template.Must(template.New("enumext").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(fileTemplateText))

const fileTemplateText = Header + `
{{- range .Frontmatter}}
// {{.}}
{{- end}}

package {{.Package}}{{$id := .Ident}}

import (
{{- range .StdImports}}
	{{if .Name}}{{.Name}} {{end}}{{quote .Path}}
{{- end}}
{{range .Imports}}
	{{if .Name}}{{.Name}} {{end}}{{quote .Path}}
{{- end}}
)

// {{.TypeName}} converts, parses and enumerates {{.EnumType}} values without
// reflection. The zero value is ready to use.
type {{.TypeName}} struct{}

// Len returns the number of declared {{.EnumType}} members.
func ({{.TypeName}}) Len() int {
	return {{len .Members}}
}

// ToStringFast returns the display name of {{$id.Value}}. When several members share
// a value the first declared one is used. Undeclared values are formatted as
// decimal integers.
func ({{.TypeName}}) ToStringFast({{$id.Value}} {{.EnumType}}) string {
{{- if .StringCases}}
	switch {{$id.Value}} {
{{- range .StringCases}}
	case {{.Literal}}:
		return {{quote .Output}}
{{- end}}
	}
{{- end}}
	return {{template "format" .}}
}

// ToStringFastWithOptions is like ToStringFast but selects between member and
// display names and applies the transform from {{$id.Opts}}.
func ({{$id.Recv}} {{.TypeName}}) ToStringFastWithOptions({{$id.Value}} {{.EnumType}}, {{$id.Opts}} {{$id.Enumext}}.SerializationOptions) string {
	{{$id.Name}}, {{$id.OK}} := {{$id.Recv}}.displayName({{$id.Value}})
	if {{$id.Opts}}.IgnoreMetadataAttributes {
		{{$id.Name}}, {{$id.OK}} = {{$id.Recv}}.memberName({{$id.Value}})
	}
	if !{{$id.OK}} {
		return {{template "format" .}}
	}
	return {{$id.Opts}}.Transform.Apply({{$id.Name}})
}

func ({{.TypeName}}) memberName({{$id.Value}} {{.EnumType}}) (string, bool) {
{{- if .StringCases}}
	switch {{$id.Value}} {
{{- range .StringCases}}
	case {{.Literal}}:
		return {{quote .Member}}, true
{{- end}}
	}
{{- end}}
	return "", false
}

func ({{.TypeName}}) displayName({{$id.Value}} {{.EnumType}}) (string, bool) {
{{- if .StringCases}}
	switch {{$id.Value}} {
{{- range .StringCases}}
	case {{.Literal}}:
		return {{quote .Display}}, true
{{- end}}
	}
{{- end}}
	return "", false
}
{{- if .HasFlags}}

// HasFlagFast reports whether {{$id.Value}} has any bit of {{$id.Flag}} set. The zero flag is
// always present.
func ({{.TypeName}}) HasFlagFast({{$id.Value}}, {{$id.Flag}} {{.EnumType}}) bool {
	return {{$id.Flag}} == 0 || {{$id.Value}}&{{$id.Flag}} != 0
}
{{- end}}

// IsDefined reports whether {{$id.Value}} equals a declared member.
func ({{.TypeName}}) IsDefined({{$id.Value}} {{.EnumType}}) bool {
{{- if .DistinctValues}}
	switch {{$id.Value}} {
	case {{range $i, $v := .DistinctValues}}{{if $i}}, {{end}}{{$v}}{{end}}:
		return true
	}
{{- end}}
	return false
}

// IsDefinedName reports whether {{$id.Name}} is exactly the identifier of a declared
// member. Display names are not considered.
func ({{.TypeName}}) IsDefinedName({{$id.Name}} string) bool {
{{- if .DistinctNames}}
	switch {{$id.Name}} {
	case {{range $i, $v := .DistinctNames}}{{if $i}}, {{end}}{{quote $v}}{{end}}:
		return true
	}
{{- end}}
	return false
}

// TryParse parses a member identifier or a base 10 number.
func ({{$id.Recv}} {{.TypeName}}) TryParse({{$id.Name}} string, {{$id.IgnoreCase}} bool) ({{.EnumType}}, bool) {
	return {{$id.Recv}}.TryParseWithOptions({{$id.Name}}, {{$id.Enumext}}.ParseOptions{IgnoreCase: {{$id.IgnoreCase}}})
}

// TryParseWithOptions matches {{$id.Name}} against member identifiers, then display
// names when {{$id.Opts}}.UseMetadataAttributes is set, then parses it as a base 10
// number unless {{$id.Opts}}.DisableNumberParsing is set. Among matching members the
// first declared wins. Numbers need not be declared members.
func ({{.TypeName}}) TryParseWithOptions({{$id.Name}} string, {{$id.Opts}} {{$id.Enumext}}.ParseOptions) ({{.EnumType}}, bool) {
{{- if .Members}}
	if {{$id.Opts}}.IgnoreCase {
		switch {
{{- range .NameFold}}
		case {{$id.Strings}}.EqualFold({{$id.Name}}, {{quote .Text}}):
			return {{.Literal}}, true
{{- end}}
		}
	} else {
		switch {{$id.Name}} {
{{- range .NameExact}}
		case {{quote .Text}}:
			return {{.Literal}}, true
{{- end}}
		}
	}
	if {{$id.Opts}}.UseMetadataAttributes {
		if {{$id.Opts}}.IgnoreCase {
			switch {
{{- range .DisplayFold}}
			case {{$id.Strings}}.EqualFold({{$id.Name}}, {{quote .Text}}):
				return {{.Literal}}, true
{{- end}}
			}
		} else {
			switch {{$id.Name}} {
{{- range .DisplayExact}}
			case {{quote .Text}}:
				return {{.Literal}}, true
{{- end}}
			}
		}
	}
{{- end}}
	if !{{$id.Opts}}.DisableNumberParsing {
{{- if .Unsigned}}
		if {{$id.N}}, {{$id.Err}} := {{$id.Strconv}}.ParseUint({{$id.Name}}, 10, {{.BitSize}}); {{$id.Err}} == nil {
{{- else}}
		if {{$id.N}}, {{$id.Err}} := {{$id.Strconv}}.ParseInt({{$id.Name}}, 10, {{.BitSize}}); {{$id.Err}} == nil {
{{- end}}
			return {{.EnumType}}({{$id.N}}), true
		}
	}
	return 0, false
}

// Parse is like TryParse but returns an *enumext.ParseError when {{$id.Name}} does
// not match.
func ({{$id.Recv}} {{.TypeName}}) Parse({{$id.Name}} string, {{$id.IgnoreCase}} bool) ({{.EnumType}}, error) {
	return {{$id.Recv}}.ParseWithOptions({{$id.Name}}, {{$id.Enumext}}.ParseOptions{IgnoreCase: {{$id.IgnoreCase}}})
}

// ParseWithOptions is like TryParseWithOptions but returns an
// *enumext.ParseError when {{$id.Name}} does not match.
func ({{$id.Recv}} {{.TypeName}}) ParseWithOptions({{$id.Name}} string, {{$id.Opts}} {{$id.Enumext}}.ParseOptions) ({{.EnumType}}, error) {
	if {{$id.Value}}, {{$id.OK}} := {{$id.Recv}}.TryParseWithOptions({{$id.Name}}, {{$id.Opts}}); {{$id.OK}} {
		return {{$id.Value}}, nil
	}
	return 0, {{$id.Enumext}}.NewParseError({{quote .QualifiedName}}, {{$id.Name}})
}

// GetNames returns the identifiers of all members in declaration order.
func ({{.TypeName}}) GetNames() []string {
	return []string{
{{- range .Members}}
		{{quote .Name}},
{{- end}}
	}
}

// GetValues returns the values of all members in declaration order.
func ({{.TypeName}}) GetValues() []{{.EnumType}} {
	return []{{.EnumType}}{
{{- range .Members}}
		{{.Literal}},
{{- end}}
	}
}

// GetValuesAsUnderlyingType returns the values of all members as {{.Underlying}}
// in declaration order.
func ({{.TypeName}}) GetValuesAsUnderlyingType() []{{.Underlying}} {
	return []{{.Underlying}}{
{{- range .Members}}
		{{.Literal}},
{{- end}}
	}
}
{{- if .ExtensionMembers}}

// ToStringFast returns the display name of {{$id.V}}. See {{.TypeName}}.ToStringFast.
func ({{$id.V}} {{.EnumType}}) ToStringFast() string {
	return {{.TypeName}}{}.ToStringFast({{$id.V}})
}

// IsDefined reports whether {{$id.V}} equals a declared member.
func ({{$id.V}} {{.EnumType}}) IsDefined() bool {
	return {{.TypeName}}{}.IsDefined({{$id.V}})
}
{{- if .HasFlags}}

// HasFlagFast reports whether {{$id.V}} has any bit of {{$id.Flag}} set.
func ({{$id.V}} {{.EnumType}}) HasFlagFast({{$id.Flag}} {{.EnumType}}) bool {
	return {{.TypeName}}{}.HasFlagFast({{$id.V}}, {{$id.Flag}})
}
{{- end}}
{{- end}}
{{define "format"}}
{{- if .Unsigned}}{{.Ident.Strconv}}.FormatUint(uint64({{.Ident.Value}}), 10){{else}}{{.Ident.Strconv}}.FormatInt(int64({{.Ident.Value}}), 10){{end}}
{{- end}}`
