package shader

import (
	"strings"
	"testing"

	"github.com/gogpu/glslconf/glsl"
)

// compileOK compiles source and fails the test on any diagnostic.
func compileOK(t *testing.T, source string, stage Stage) *Shader {
	t.Helper()
	sh, err := Compile(source, stage)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return sh
}

func TestCompileClassifiesGlobals(t *testing.T) {
	source := `#version 300 es
uniform mat4 u_mvp;
in vec4 a_position;
in vec3 a_normal;
out vec4 v_color;
void main() {
    v_color = u_mvp * a_position;
    gl_Position = v_color;
}
`
	sh := compileOK(t, source, StageVertex)

	if len(sh.Inputs) != 2 {
		t.Errorf("expected 2 inputs, got %d", len(sh.Inputs))
	}
	if len(sh.Outputs) != 1 {
		t.Errorf("expected 1 output, got %d", len(sh.Outputs))
	}
	if len(sh.Uniforms) != 1 {
		t.Errorf("expected 1 uniform, got %d", len(sh.Uniforms))
	}
	if !sh.HasMain {
		t.Error("expected HasMain")
	}
	if sh.Version.Number != 300 {
		t.Errorf("expected version 300, got %v", sh.Version)
	}

	if u := sh.Uniform("u_mvp"); u == nil || u.Type.Name != "mat4" {
		t.Errorf("uniform u_mvp missing or mistyped: %+v", u)
	}
	if in := sh.Input("a_position"); in == nil || in.Type.Name != "vec4" {
		t.Errorf("input a_position missing or mistyped: %+v", in)
	}
	if sh.Input("nonexistent") != nil {
		t.Error("lookup of unknown input should return nil")
	}
}

func TestCompileVaryingClassification(t *testing.T) {
	// ES 1.00 varyings are outputs in the vertex stage and inputs in
	// the fragment stage.
	vsSource := "varying vec4 v_color;\nvoid main() { v_color = vec4(1.0); }\n"
	fsSource := "precision mediump float;\nvarying vec4 v_color;\nvoid main() { gl_FragColor = v_color; }\n"

	vs := compileOK(t, vsSource, StageVertex)
	if vs.Output("v_color") == nil {
		t.Error("vertex varying should be an output")
	}

	fs := compileOK(t, fsSource, StageFragment)
	if fs.Input("v_color") == nil {
		t.Error("fragment varying should be an input")
	}
}

func TestCompileStaticUse(t *testing.T) {
	source := `#version 300 es
precision mediump float;
in vec4 v_used;
in vec4 v_unused;
out vec4 o_color;
void main() {
    o_color = v_used;
}
`
	sh := compileOK(t, source, StageFragment)

	if in := sh.Input("v_used"); in == nil || !in.StaticUse {
		t.Error("v_used should be marked statically used")
	}
	if in := sh.Input("v_unused"); in == nil || in.StaticUse {
		t.Error("v_unused should not be marked statically used")
	}
}

func TestCompileConstantFolding(t *testing.T) {
	source := `#version 300 es
const int SIZE = 2 * 2;
uniform float u_weights[SIZE];
void main() {
    gl_Position = vec4(u_weights[0]);
}
`
	sh := compileOK(t, source, StageVertex)

	v, ok := sh.Constants["SIZE"]
	if !ok {
		t.Fatal("constant SIZE not folded")
	}
	if v.IntVal() != 4 {
		t.Errorf("expected SIZE = 4, got %d", v.IntVal())
	}

	u := sh.Uniform("u_weights")
	if u == nil {
		t.Fatal("uniform u_weights missing")
	}
	if !u.Type.Array || u.Type.ArraySize != 4 {
		t.Errorf("expected float[4], got %s", u.Type)
	}
}

func TestCompileLayoutLocation(t *testing.T) {
	source := `#version 300 es
layout(location = 2) in vec4 a_position;
in vec3 a_normal;
void main() {
    gl_Position = a_position;
}
`
	sh := compileOK(t, source, StageVertex)

	if in := sh.Input("a_position"); in == nil || in.Location != 2 {
		t.Errorf("expected location 2, got %+v", in)
	}
	if in := sh.Input("a_normal"); in == nil || in.Location != -1 {
		t.Errorf("expected location -1 for unqualified input, got %+v", in)
	}
}

func TestCompileInvariantRedeclaration(t *testing.T) {
	source := `varying vec4 v_color;
invariant v_color;
void main() {
    v_color = vec4(1.0);
    gl_Position = v_color;
}
`
	sh := compileOK(t, source, StageVertex)

	out := sh.Output("v_color")
	if out == nil || !out.Invariant {
		t.Error("invariant re-declaration should mark the varying invariant")
	}
}

func TestCompileBuiltinInvariant(t *testing.T) {
	source := `#version 300 es
invariant gl_Position;
in vec4 a_position;
void main() {
    gl_Position = a_position;
}
`
	sh := compileOK(t, source, StageVertex)

	if len(sh.BuiltinInvariants) != 1 || sh.BuiltinInvariants[0] != "gl_Position" {
		t.Errorf("expected gl_Position in BuiltinInvariants, got %v", sh.BuiltinInvariants)
	}
}

func TestCompileInvariantAllPragma(t *testing.T) {
	source := `#version 300 es
#pragma STDGL invariant(all)
in vec4 a_position;
void main() {
    gl_Position = a_position;
}
`
	sh := compileOK(t, source, StageVertex)

	if !sh.InvariantAll {
		t.Error("expected InvariantAll from the pragma")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		stage   Stage
		wantErr string
	}{
		{
			name:    "redefinition",
			source:  "uniform vec4 u_a;\nuniform vec4 u_a;\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "redefinition",
		},
		{
			name:    "invariant on undeclared name",
			source:  "invariant v_missing;\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "undeclared",
		},
		{
			name:    "non-constant array size",
			source:  "#version 300 es\nuniform float u_w[n];\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "constant expression",
		},
		{
			name:    "zero array size",
			source:  "#version 300 es\nuniform float u_w[0];\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "greater than zero",
		},
		{
			name:    "function redefinition",
			source:  "void main() {}\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "redefinition of function",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source, tt.stage)
			if err == nil {
				t.Fatal("expected compile error, got nil")
			}
			ce, ok := err.(*CompileError)
			if !ok {
				t.Fatalf("expected *CompileError, got %T", err)
			}
			if ce.Stage != tt.stage {
				t.Errorf("expected stage %v, got %v", tt.stage, ce.Stage)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestCompileErrorCarriesDiagnostics(t *testing.T) {
	source := "#version 300 es\ninvariant in vec4 v_varying;\nvoid main() {}\n"
	_, err := Compile(source, StageFragment)
	if err == nil {
		t.Fatal("expected compile error")
	}
	ce := err.(*CompileError)
	if !ce.Diagnostics.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	formatted := ce.FormatAll()
	if !strings.Contains(formatted, "invariant in vec4 v_varying;") {
		t.Errorf("formatted diagnostics should show the offending line:\n%s", formatted)
	}
}

func TestParseStage(t *testing.T) {
	tests := []struct {
		input string
		want  Stage
	}{
		{"vertex", StageVertex},
		{"vert", StageVertex},
		{"vs", StageVertex},
		{"fragment", StageFragment},
		{"frag", StageFragment},
		{"fs", StageFragment},
	}
	for _, tt := range tests {
		got, err := ParseStage(tt.input)
		if err != nil {
			t.Errorf("ParseStage(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStage(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseStage("geometry"); err == nil {
		t.Error("expected error for unknown stage")
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Type{Name: "vec4"}, "vec4"},
		{Type{Name: "float", Array: true, ArraySize: 4}, "float[4]"},
		{Type{Name: "int", Array: true}, "int[]"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTypeEqual(t *testing.T) {
	a := Type{Name: "vec4"}
	if !a.Equal(Type{Name: "vec4"}) {
		t.Error("identical types should be equal")
	}
	if a.Equal(Type{Name: "vec3"}) {
		t.Error("different names should not be equal")
	}
	if a.Equal(Type{Name: "vec4", Array: true, ArraySize: 2}) {
		t.Error("scalar and array should not be equal")
	}
}

func TestVariablePrecisionRecorded(t *testing.T) {
	source := "uniform highp mat4 u_mvp;\nvoid main() { gl_Position = u_mvp[0]; }\n"
	sh := compileOK(t, source, StageVertex)
	u := sh.Uniform("u_mvp")
	if u == nil || u.Precision != glsl.PrecisionHigh {
		t.Errorf("expected highp uniform, got %+v", u)
	}
}
