package glsl

import (
	"strings"
	"testing"
)

func TestSourceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SourceError
		expected string
	}{
		{
			name: "with position",
			err: &SourceError{
				Message: "unexpected token",
				Span: Span{
					Start: Position{Line: 5, Column: 10},
				},
			},
			expected: "5:10: unexpected token",
		},
		{
			name: "without position",
			err: &SourceError{
				Message: "generic error",
				Span:    Span{},
			},
			expected: "generic error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSourceError_FormatWithContext(t *testing.T) {
	source := `#version 300 es
precision mediump float;
invariant in vec4 v_varying;
void main() {}`

	err := &SourceError{
		Message: "invariant qualifier cannot be applied to an input",
		Span: Span{
			Start: Position{Line: 3, Column: 1},
		},
		Source: source,
	}

	formatted := err.FormatWithContext()

	if !strings.Contains(formatted, "invariant qualifier cannot be applied to an input") {
		t.Error("formatted error should contain message")
	}
	if !strings.Contains(formatted, "line 3:1") {
		t.Error("formatted error should contain line:column")
	}
	if !strings.Contains(formatted, "invariant in vec4 v_varying;") {
		t.Error("formatted error should contain source line")
	}
	if !strings.Contains(formatted, "^") {
		t.Error("formatted error should contain caret pointer")
	}
}

func TestSourceError_FormatWithContext_NoSource(t *testing.T) {
	err := &SourceError{
		Message: "error without source",
		Span: Span{
			Start: Position{Line: 2, Column: 3},
		},
	}

	if got := err.FormatWithContext(); got != err.Error() {
		t.Errorf("FormatWithContext() without source = %q, want %q", got, err.Error())
	}
}

func TestSourceErrors_Error(t *testing.T) {
	var el SourceErrors
	if el.Error() != "no errors" {
		t.Errorf("empty list Error() = %q", el.Error())
	}

	el.AddError("first problem", Span{Start: Position{Line: 1, Column: 1}}, "")
	if got := el.Error(); got != "1:1: first problem" {
		t.Errorf("single error = %q", got)
	}

	el.AddError("second problem", Span{Start: Position{Line: 2, Column: 1}}, "")
	got := el.Error()
	if !strings.Contains(got, "first problem") || !strings.Contains(got, "1 more") {
		t.Errorf("multiple errors = %q", got)
	}
}

func TestSourceErrors_HasErrors(t *testing.T) {
	var el SourceErrors
	if el.HasErrors() {
		t.Error("empty list should have no errors")
	}
	el.Add(NewSourceError("boom", Span{}, ""))
	if !el.HasErrors() {
		t.Error("non-empty list should have errors")
	}
}

func TestSourceErrors_FormatAll(t *testing.T) {
	var el SourceErrors
	el.AddError("first", Span{}, "")
	el.AddError("second", Span{}, "")

	formatted := el.FormatAll()
	if !strings.Contains(formatted, "first") || !strings.Contains(formatted, "second") {
		t.Errorf("FormatAll() missing entries: %q", formatted)
	}
}
