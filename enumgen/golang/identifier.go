package golang

import (
	"go/token"
	"path"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// fixedImports are the package names every generated file may import.
var fixedImports = map[string]bool{
	"strconv": true,
	"strings": true,
	"enumext": true,
}

// predeclared identifiers that should not be shadowed by an import name.
var predeclared = map[string]bool{
	"any": true, "append": true, "bool": true, "byte": true, "cap": true,
	"clear": true, "close": true, "comparable": true, "complex": true,
	"complex128": true, "complex64": true, "copy": true, "delete": true,
	"error": true, "false": true, "float32": true, "float64": true,
	"imag": true, "int": true, "int16": true, "int32": true, "int64": true,
	"int8": true, "iota": true, "len": true, "make": true, "max": true,
	"min": true, "new": true, "nil": true, "panic": true, "print": true,
	"println": true, "real": true, "recover": true, "rune": true,
	"string": true, "true": true, "uint": true, "uint16": true,
	"uint32": true, "uint64": true, "uint8": true, "uintptr": true,
}

// defaultLocals are the preferred names of the receivers, parameters and
// variables declared by the template.
var defaultLocals = []string{"e", "value", "name", "opts", "flag", "n", "err", "ok", "ignoreCase", "v"}

// scope tracks the identifiers visible in a generated file so that the names
// the template introduces never shadow the enum type, the generated type or an
// import.
type scope map[string]bool

func newScope(names ...string) scope {
	s := make(scope, len(names)+16)
	for _, n := range names {
		s[n] = true
	}
	return s
}

func (s scope) taken(name string) bool {
	return name == "_" || s[name] || predeclared[name] || token.IsKeyword(name)
}

// fresh returns base, or base followed by the smallest number from 2 that is
// not taken, and marks the result as taken.
func (s scope) fresh(base string) string {
	name := base
	for i := 2; s.taken(name); i++ {
		name = base + strconv.Itoa(i)
	}
	s[name] = true
	return name
}

// importName picks the local name under which the enum's package is imported
// and marks it as taken. Besides the names already in s it avoids the runtime
// imports and the default template locals, so those keep their usual spelling.
func (s scope) importName(pkg string) string {
	avoid := func(name string) bool {
		if s.taken(name) || fixedImports[name] {
			return true
		}
		for _, l := range defaultLocals {
			if name == l {
				return true
			}
		}
		return false
	}
	name := pkg
	if avoid(name) {
		name = pkg + "enum"
		for i := 2; avoid(name); i++ {
			name = pkg + "enum" + strconv.Itoa(i)
		}
	}
	s[name] = true
	return name
}

// snakeCase converts a Go identifier to snake_case, keeping acronyms together:
// "HTTPStatusExtensions" becomes "http_status_extensions".
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// unitKey builds the file key of an extension type.
func unitKey(namespace, className, stripPrefix string) string {
	dir := namespace
	if stripPrefix != "" {
		dir = strings.TrimPrefix(dir, stripPrefix)
	}
	dir = strings.Trim(dir, "/")
	file := snakeCase(className) + FileSuffix
	if dir == "" {
		return file
	}
	return path.Join(dir, file)
}

// frontmatterLines splits frontmatter into comment lines.
func frontmatterLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		l = strings.TrimRight(l, "\r")
		l = strings.TrimPrefix(l, "//")
		l = strings.TrimPrefix(l, " ")
		if !utf8.ValidString(l) {
			l = strings.ToValidUTF8(l, "�")
		}
		lines[i] = l
	}
	return lines
}
