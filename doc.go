// Package enumext is the runtime support package for code generated by the
// enumext generator (see package github.com/broady/enumext/enumgen).
//
// Generated extension types import this package for their option structs and
// their parse error:
//
//	c, err := ColorExtensions{}.ParseWithOptions("red", enumext.ParseOptions{
//	    IgnoreCase:            true,
//	    UseMetadataAttributes: true,
//	})
//	if errors.Is(err, enumext.ErrParse) {
//	    // not a member name, display name or numeral
//	}
package enumext
