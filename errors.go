package enumext

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel matched by every *ParseError.
//
//	if _, err := ColorExtensions{}.Parse(s, false); errors.Is(err, enumext.ErrParse) {
//	    // handle unknown input
//	}
var ErrParse = errors.New("enumext: requested value was not found")

// ParseError is returned by generated Parse methods when no member name,
// display name, or numeral matched the input.
type ParseError struct {
	// Type is the fully qualified name of the enum type, e.g.
	// "example.com/app/colors.Color".
	Type string

	// Input is the string that failed to parse.
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("enumext: requested value %q was not found in %s", e.Input, e.Type)
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a ParseError for the given enum type and input.
func NewParseError(typeName, input string) *ParseError {
	return &ParseError{
		Type:  typeName,
		Input: input,
	}
}
