package enumext

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewParseError(t *testing.T) {
	err := NewParseError("example.com/app/colors.Color", "Purple")
	if err.Type != "example.com/app/colors.Color" {
		t.Errorf("expected type example.com/app/colors.Color, got %s", err.Type)
	}
	if err.Input != "Purple" {
		t.Errorf("expected input Purple, got %s", err.Input)
	}
}

func TestParseErrorError(t *testing.T) {
	err := NewParseError("colors.Color", "Purple")
	expected := `enumext: requested value "Purple" was not found in colors.Color`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestParseErrorIs(t *testing.T) {
	var err error = NewParseError("colors.Color", "x")
	if !errors.Is(err, ErrParse) {
		t.Error("expected errors.Is(err, ErrParse) to be true")
	}

	wrapped := fmt.Errorf("load palette: %w", err)
	if !errors.Is(wrapped, ErrParse) {
		t.Error("expected wrapped error to match ErrParse")
	}

	var pe *ParseError
	if !errors.As(wrapped, &pe) {
		t.Fatal("expected errors.As to find *ParseError")
	}
	if pe.Input != "x" {
		t.Errorf("expected input x, got %s", pe.Input)
	}

	if errors.Is(errors.New("other"), ErrParse) {
		t.Error("unrelated error should not match ErrParse")
	}
}
