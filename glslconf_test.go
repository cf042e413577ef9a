package glslconf

import (
	"strings"
	"testing"

	"github.com/gogpu/glslconf/shader"
)

const testVertexShader = `#version 300 es
in vec4 a_position;
invariant out vec4 v_color;
void main() {
    v_color = a_position;
    gl_Position = a_position;
}
`

const testFragmentShader = `#version 300 es
precision mediump float;
in vec4 v_color;
out vec4 o_color;
void main() {
    o_color = v_color;
}
`

const testBadFragmentShader = `#version 300 es
#pragma STDGL invariant(all)
precision mediump float;
in vec4 v_color;
out vec4 o_color;
void main() {
    o_color = v_color;
}
`

func TestCompile(t *testing.T) {
	sh, err := Compile(testVertexShader, shader.StageVertex)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if sh.Stage != shader.StageVertex {
		t.Errorf("expected vertex stage, got %v", sh.Stage)
	}
	if out := sh.Output("v_color"); out == nil || !out.Invariant {
		t.Error("expected invariant output v_color")
	}
}

func TestCompileFailure(t *testing.T) {
	_, err := Compile(testBadFragmentShader, shader.StageFragment)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !IsCompileError(err) {
		t.Errorf("expected a compile error, got %T", err)
	}
	if IsLinkError(err) {
		t.Error("compile failure must not be a link error")
	}
}

func TestLink(t *testing.T) {
	if err := Link(testVertexShader, testFragmentShader); err != nil {
		t.Errorf("expected program to link: %v", err)
	}
}

func TestLinkCompileFailure(t *testing.T) {
	err := Link(testVertexShader, testBadFragmentShader)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsCompileError(err) {
		t.Errorf("expected wrapped compile error, got %T", err)
	}
	if !strings.Contains(err.Error(), "fragment shader") {
		t.Errorf("error should name the failing stage: %v", err)
	}
}

func TestLinkInterfaceFailure(t *testing.T) {
	vsNoVarying := `#version 300 es
in vec4 a_position;
void main() {
    gl_Position = a_position;
}
`
	err := Link(vsNoVarying, testFragmentShader)
	if err == nil {
		t.Fatal("expected link error")
	}
	if !IsLinkError(err) {
		t.Errorf("expected a link error, got %T", err)
	}
	if IsCompileError(err) {
		t.Error("link failure must not be a compile error")
	}
}

func TestParse(t *testing.T) {
	unit, err := Parse(testBadFragmentShader)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if unit.Version.Number != 300 {
		t.Errorf("expected version 300, got %v", unit.Version)
	}
	// Parse performs no semantic checking, so the illegal pragma is
	// simply recorded.
	if !unit.InvariantAll {
		t.Error("expected InvariantAll on the parsed unit")
	}
	if len(unit.Decls) == 0 {
		t.Error("expected declarations")
	}
}
