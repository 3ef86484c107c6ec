package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"config error", "E101", "Invalid sticky offset", CategoryConfig},
		{"protocol error", "E202", "Unknown trigger edge", CategoryProtocol},
		{"cli error", "E300", "Invalid argument", CategoryCLI},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("E103").Wrap(fmt.Errorf("time: invalid duration \"x\""))
	want := `E103: Invalid duration: time: invalid duration "x"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	plain := Newf(CategoryCLI, "bad %s", "flag")
	if plain.Error() != "bad flag" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "bad flag")
	}
}

func TestIsAndAs(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := fmt.Errorf("loading: %w", New("E104").Wrap(cause))

	if !stderrors.Is(err, New("E104")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(err, New("E105")) {
		t.Error("errors.Is should not match a different code")
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}

	var se *StickyError
	if !stderrors.As(err, &se) || se.Code != "E104" {
		t.Errorf("errors.As = %v, want E104", se)
	}
	if Code(err) != "E104" {
		t.Errorf("Code() = %q, want E104", Code(err))
	}
	if Code(cause) != "" {
		t.Errorf("Code() of plain error = %q, want empty", Code(cause))
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E200") != nil {
		t.Error("FromError(nil) should be nil")
	}

	existing := New("E202")
	if got := FromError(fmt.Errorf("wrapped: %w", existing), "E200"); got != existing {
		t.Errorf("FromError should return the StickyError in the chain, got %v", got)
	}

	plain := fmt.Errorf("boom")
	got := FromError(plain, "E200")
	if got.Code != "E200" || got.Wrapped != plain {
		t.Errorf("FromError = %+v, want E200 wrapping boom", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E101").
		WithDetailf("top offset %v is not a number", "NaN").
		WithSuggestion("Use 0").
		Wrap(fmt.Errorf("cause")).
		Format()

	for _, want := range []string{
		"ERROR E101: Invalid sticky offset",
		"top offset NaN is not a number",
		"Cause: cause",
		"Hint: Use 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("wrapText = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if wrapText("   ", 10) != nil {
		t.Error("wrapText of blank text should be nil")
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("E100"); !ok {
		t.Error("E100 should be registered")
	}
	if _, ok := Lookup("E001"); ok {
		t.Error("E001 should not be registered")
	}
}
