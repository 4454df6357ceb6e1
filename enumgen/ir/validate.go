package ir

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/broady/enumext"
	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/module"
)

// ValidationError describes a structural problem in a descriptor or configuration.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	}))
	must(v.RegisterValidation("notpredeclared", func(fl validator.FieldLevel) bool {
		return !isPredeclared(fl.Field().String())
	}))
	must(v.RegisterValidation("importpath", func(fl validator.FieldLevel) bool {
		return module.CheckImportPath(fl.Field().String()) == nil
	}))
	must(v.RegisterValidation("underlying", func(fl validator.FieldLevel) bool {
		k, ok := fl.Field().Interface().(UnderlyingKind)
		return ok && k.IsValid()
	}))
	must(v.RegisterValidation("metasource", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(MetadataSource)
		return ok && s.IsValid()
	}))
	must(v.RegisterValidation("family", func(fl validator.FieldLevel) bool {
		f, ok := fl.Field().Interface().(AttributeFamily)
		return ok && f.IsValid()
	}))
	must(v.RegisterValidation("transform", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(enumext.Transform)
		return ok && t >= enumext.TransformNone && t <= enumext.TransformUpperInvariant
	}))
	v.RegisterStructValidation(validateDescriptor, EnumDescriptor{})
	return v
}

// validateDescriptor checks cross-field constraints: member constants must fit
// the enum's kind, the generated type name must be usable whichever
// accessibility it ends up with, and an extension type placed in another
// package must be able to import and name the enum.
func validateDescriptor(sl validator.StructLevel) {
	d := sl.Current().Interface().(EnumDescriptor)
	if d.ExtensionClassName != "" && token.IsIdentifier(d.ExtensionClassName) {
		if isPredeclared(lowerFirst(d.ExtensionClassName)) {
			sl.ReportError(d.ExtensionClassName, "ExtensionClassName", "ExtensionClassName", "notpredeclared", "")
		}
		samePackage := d.ExtensionNamespace == "" || d.ExtensionNamespace == d.Namespace
		if samePackage && lowerFirst(d.ExtensionClassName) == lowerFirst(d.Name) {
			sl.ReportError(d.ExtensionClassName, "ExtensionClassName", "ExtensionClassName", "distinct", d.Name)
		}
	}
	if d.ExtensionNamespace != "" && d.ExtensionNamespace != d.Namespace {
		if d.Namespace == "" {
			sl.ReportError(d.ExtensionNamespace, "ExtensionNamespace", "ExtensionNamespace", "importable", "")
		} else if d.Name != "" && !token.IsExported(d.Name) {
			sl.ReportError(d.ExtensionNamespace, "ExtensionNamespace", "ExtensionNamespace", "exported", "")
		}
	}
	if !d.Underlying.IsValid() {
		return
	}
	for i, m := range d.Members {
		if !m.Value.Fits(d.Underlying) {
			field := fmt.Sprintf("Members[%d].Value", i)
			sl.ReportError(m.Value, field, field, "range", d.Underlying.String())
		}
	}
}

// isPredeclared reports whether name is a predeclared Go identifier such as
// int, string or len. Generated code relies on them keeping their meaning.
func isPredeclared(name string) bool {
	return types.Universe.Lookup(name) != nil
}

// lowerFirst lower-cases the first letter of s.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Validate checks the descriptor for structural issues.
// Returns all validation errors found (not just the first).
// Member name uniqueness is the frontend's responsibility and is not checked.
func (d *EnumDescriptor) Validate() []error {
	if d == nil {
		return []error{&ValidationError{Code: "nil_descriptor", Message: "nil enum descriptor"}}
	}
	label := d.Name
	if label == "" {
		label = "<unnamed>"
	}
	return validationErrors("enum "+label, validate.Struct(d))
}

// Validate checks the configuration for unknown enum values.
func (c DefaultConfiguration) Validate() []error {
	return validationErrors("configuration", validate.Struct(c))
}

func validationErrors(subject string, err error) []error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []error{&ValidationError{Code: "invalid", Message: subject + ": " + err.Error()}}
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.StructNamespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		errs = append(errs, &ValidationError{
			Code:    "invalid_" + fe.Tag(),
			Field:   field,
			Message: subject + ": " + field + " " + formatFieldError(fe),
		})
	}
	return errs
}

// formatFieldError converts a validator.FieldError to a human-readable message.
func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "goident":
		return fmt.Sprintf("%q is not a valid Go identifier", fe.Value())
	case "importpath":
		return fmt.Sprintf("%q is not a valid import path", fe.Value())
	case "underlying":
		return fmt.Sprintf("must be an integer kind, got %v", fe.Value())
	case "metasource":
		return fmt.Sprintf("unknown metadata source %v", fe.Value())
	case "family":
		return fmt.Sprintf("unknown attribute family %v", fe.Value())
	case "transform":
		return fmt.Sprintf("unknown transform %v", fe.Value())
	case "notpredeclared":
		return fmt.Sprintf("%q shadows a predeclared identifier", fe.Value())
	case "distinct":
		return fmt.Sprintf("%q names the enum type %s in the same package", fe.Value(), fe.Param())
	case "importable":
		return "requires the enum to live in an importable package"
	case "exported":
		return "requires an exported enum type"
	case "range":
		return fmt.Sprintf("constant out of range for %s", fe.Param())
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
