// Package golang renders enum extension types as Go source.
//
// Every generated file declares one zero-size struct type whose methods convert,
// parse, test and enumerate the values of one enum without reflection:
//
//	var ext colors.ColorExtensions
//	s := ext.ToStringFast(colors.Red)
//	c, ok := ext.TryParse("red", true)
//
// Output is a pure function of the descriptor, the identity and the options.
package golang

import "github.com/broady/enumext/enumgen/ir"

// Header is the first line of every generated file.
const Header = "// Code generated by enumext. DO NOT EDIT."

// FileSuffix is appended to the snake-cased class name to form the file name.
const FileSuffix = ".enumext.go"

// RuntimeImportPath is the import path of the package used by generated code.
const RuntimeImportPath = "github.com/broady/enumext"

// Options configures the emitter.
type Options struct {
	// StripPackagePrefix removes this prefix from the namespace when building
	// unit keys. Example: "example.com/app/" makes the key of a type in
	// "example.com/app/colors" start with "colors/".
	StripPackagePrefix string

	// Frontmatter is added as comment lines below the generated-code header.
	Frontmatter string

	// ExtensionMembers also emits ToStringFast, IsDefined and HasFlagFast as
	// methods on the enum type. Only possible when the extension type shares the
	// enum's package; otherwise a diagnostic is reported instead.
	ExtensionMembers bool
}

// GeneratedUnit is the rendered source of one extension type.
type GeneratedUnit struct {
	// Key is a stable slash-separated file path for the unit.
	Key string

	// Source is gofmt-formatted Go source.
	Source []byte

	// Enum is the fully qualified name of the source enum.
	Enum string

	// Identity is the extension type the unit declares.
	Identity ir.ExtensionClassIdentity

	// Diagnostics are non-fatal facts found while emitting.
	Diagnostics []ir.Diagnostic
}
