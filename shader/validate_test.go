package shader

import (
	"strings"
	"testing"
)

func TestValidateInvariance(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		stage   Stage
		wantErr string // empty means the shader must compile
	}{
		{
			name: "es3 vertex invariant output",
			source: `#version 300 es
in vec4 a_position;
invariant out vec4 v_varying;
void main() {
    v_varying = a_position;
    gl_Position = a_position;
}
`,
			stage: StageVertex,
		},
		{
			name: "es3 fragment invariant input",
			source: `#version 300 es
precision mediump float;
invariant in vec4 v_varying;
out vec4 my_FragColor;
void main() {
    my_FragColor = v_varying;
}
`,
			stage:   StageFragment,
			wantErr: "only vertex shader outputs can be declared invariant",
		},
		{
			name: "es3 fragment invariant output",
			source: `#version 300 es
precision mediump float;
in vec4 v_varying;
invariant out vec4 my_FragColor;
void main() {
    my_FragColor = v_varying;
}
`,
			stage:   StageFragment,
			wantErr: "fragment shader outputs cannot be declared invariant",
		},
		{
			name: "es3 vertex invariant input",
			source: `#version 300 es
invariant in vec4 a_position;
void main() {
    gl_Position = a_position;
}
`,
			stage:   StageVertex,
			wantErr: "only vertex shader outputs can be declared invariant",
		},
		{
			name:    "invariant uniform",
			source:  "#version 300 es\ninvariant uniform vec4 u_color;\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "uniform",
		},
		{
			name: "es1 fragment invariant varying",
			source: `precision mediump float;
invariant varying vec4 v_color;
void main() {
    gl_FragColor = v_color;
}
`,
			stage: StageFragment,
		},
		{
			name: "es1 vertex invariant attribute",
			source: `invariant attribute vec4 a_position;
void main() {
    gl_Position = a_position;
}
`,
			stage:   StageVertex,
			wantErr: "invariant qualifier cannot be applied",
		},
		{
			name: "es3 fragment invariant gl_FragDepth",
			source: `#version 300 es
precision mediump float;
invariant gl_FragDepth;
out vec4 my_FragColor;
void main() {
    my_FragColor = vec4(1.0);
}
`,
			stage:   StageFragment,
			wantErr: "not allowed in GLSL ES 3.00 fragment shaders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source, tt.stage)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected shader to compile, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected compile error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateInvariantAllPragma(t *testing.T) {
	pragmaShader := func(version string) string {
		return version + `#pragma STDGL invariant(all)
precision mediump float;
void main() {}
`
	}

	// ES 3.00 fragment shaders reject the pragma.
	_, err := Compile(pragmaShader("#version 300 es\n"), StageFragment)
	if err == nil {
		t.Fatal("expected es3 fragment shader with invariant(all) to fail")
	}
	if !strings.Contains(err.Error(), "invariant(all)") {
		t.Errorf("unexpected error: %v", err)
	}

	// The same pragma is fine in an es3 vertex shader.
	if _, err := Compile(pragmaShader("#version 300 es\n"), StageVertex); err != nil {
		t.Errorf("es3 vertex shader with invariant(all) should compile: %v", err)
	}

	// And in es1 shaders of both stages.
	if _, err := Compile(pragmaShader(""), StageFragment); err != nil {
		t.Errorf("es1 fragment shader with invariant(all) should compile: %v", err)
	}
	if _, err := Compile(pragmaShader(""), StageVertex); err != nil {
		t.Errorf("es1 vertex shader with invariant(all) should compile: %v", err)
	}
}

func TestValidateDefaultPrecision(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		stage   Stage
		wantErr string
	}{
		{
			name:    "fragment float without default",
			source:  "#version 300 es\nin vec4 v_color;\nvoid main() {}\n",
			stage:   StageFragment,
			wantErr: "no default precision defined for type float",
		},
		{
			name:   "fragment float with default",
			source: "#version 300 es\nprecision mediump float;\nin vec4 v_color;\nvoid main() {}\n",
			stage:  StageFragment,
		},
		{
			name:   "fragment float with explicit qualifier",
			source: "#version 300 es\nin highp vec4 v_color;\nvoid main() {}\n",
			stage:  StageFragment,
		},
		{
			name:   "vertex float defaults to highp",
			source: "#version 300 es\nin vec4 a_position;\nvoid main() {}\n",
			stage:  StageVertex,
		},
		{
			name:   "fragment int defaults to mediump",
			source: "#version 300 es\nflat in ivec2 v_id;\nvoid main() {}\n",
			stage:  StageFragment,
		},
		{
			name:    "fragment local float without default",
			source:  "#version 300 es\nvoid main() { float x = 1.0; }\n",
			stage:   StageFragment,
			wantErr: "no default precision",
		},
		{
			name:    "precision statement on bad type",
			source:  "precision mediump vec4;\nvoid main() {}\n",
			stage:   StageFragment,
			wantErr: "precision statement not allowed",
		},
		{
			name:   "sampler precision redeclaration",
			source: "precision mediump float;\nprecision lowp sampler2D;\nvoid main() {}\n",
			stage:  StageFragment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source, tt.stage)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected shader to compile, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected compile error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateStorageQualifiers(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		stage   Stage
		wantErr string
	}{
		{
			name:    "attribute in es3",
			source:  "#version 300 es\nattribute vec4 a_position;\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "'attribute' is not available in GLSL ES 3.00",
		},
		{
			name:    "varying in es3",
			source:  "#version 300 es\nout vec4 v_ok;\nvarying vec4 v_color;\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "'varying' is not available in GLSL ES 3.00",
		},
		{
			name:    "in on es1 global",
			source:  "in vec4 a_position;\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "requires #version 300 es",
		},
		{
			name:    "attribute in fragment shader",
			source:  "precision mediump float;\nattribute vec4 a_position;\nvoid main() {}\n",
			stage:   StageFragment,
			wantErr: "'attribute' is not allowed in fragment shaders",
		},
		{
			name:    "layout in es1",
			source:  "precision mediump float;\nlayout(location = 0) attribute vec4 a_position;\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "layout qualifiers require #version 300 es",
		},
		{
			name:    "initialized input",
			source:  "#version 300 es\nin vec4 a_position = vec4(0.0);\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "cannot have an initializer",
		},
		{
			name:    "initialized uniform",
			source:  "#version 300 es\nuniform float u_t = 1.0;\nvoid main() {}\n",
			stage:   StageVertex,
			wantErr: "cannot have an initializer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source, tt.stage)
			if err == nil {
				t.Fatal("expected compile error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateMainSignature(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{
			name:    "main returns int",
			source:  "int main() { return 0; }\n",
			wantErr: "main function must return void",
		},
		{
			name:    "main takes arguments",
			source:  "void main(int argc) {}\n",
			wantErr: "main function cannot take arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source, StageVertex)
			if err == nil {
				t.Fatal("expected compile error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
