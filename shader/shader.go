// Package shader defines the semantic shader model for glslconf.
package shader

import (
	"fmt"

	"github.com/gogpu/glslconf/glsl"
)

// Stage identifies a pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

// String returns the lowercase stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// ParseStage parses a stage name.
func ParseStage(name string) (Stage, error) {
	switch name {
	case "vertex", "vert", "vs":
		return StageVertex, nil
	case "fragment", "frag", "fs":
		return StageFragment, nil
	default:
		return 0, fmt.Errorf("unknown shader stage %q", name)
	}
}

// Type is a resolved variable type.
type Type struct {
	// Name is the GLSL type name ("vec4", "float", or a struct name).
	Name      string
	Array     bool
	ArraySize int // 0 for unsized arrays
}

// Equal reports whether two types match for interface purposes.
func (t Type) Equal(o Type) bool {
	return t.Name == o.Name && t.Array == o.Array && t.ArraySize == o.ArraySize
}

// String returns the type in GLSL notation.
func (t Type) String() string {
	if !t.Array {
		return t.Name
	}
	if t.ArraySize == 0 {
		return t.Name + "[]"
	}
	return fmt.Sprintf("%s[%d]", t.Name, t.ArraySize)
}

// IsFloat reports whether the type is float-based and therefore subject to
// default precision rules.
func (t Type) IsFloat() bool {
	switch t.Name {
	case "float", "vec2", "vec3", "vec4",
		"mat2", "mat3", "mat4",
		"mat2x2", "mat2x3", "mat2x4",
		"mat3x2", "mat3x3", "mat3x4",
		"mat4x2", "mat4x3", "mat4x4":
		return true
	}
	return false
}

// IsInt reports whether the type is integer-based.
func (t Type) IsInt() bool {
	switch t.Name {
	case "int", "uint", "ivec2", "ivec3", "ivec4", "uvec2", "uvec3", "uvec4":
		return true
	}
	return false
}

// Variable is a pipeline-visible global: an input, output, or uniform.
type Variable struct {
	Name          string
	Type          Type
	Storage       glsl.StorageQualifier // as written in the source
	Precision     glsl.PrecisionQualifier
	Interpolation glsl.InterpolationQualifier
	Centroid      bool
	Invariant     bool
	Location      int // -1 when no layout(location=N) is present

	// StaticUse is set when any function body references the variable.
	StaticUse bool

	Span glsl.Span
}

// Shader is the semantic model of a compiled shader.
type Shader struct {
	Stage   Stage
	Version glsl.Version

	// InvariantAll records #pragma STDGL invariant(all).
	InvariantAll bool
	Pragmas      []glsl.Pragma
	Extensions   []glsl.Extension

	Inputs   []*Variable
	Outputs  []*Variable
	Uniforms []*Variable

	// Constants holds folded global const values, keyed by name.
	Constants map[string]glsl.ConstValue

	// BuiltinInvariants lists built-in outputs re-declared invariant,
	// e.g. "gl_Position".
	BuiltinInvariants []string

	// HasMain is set when a main function with a body was declared.
	HasMain bool

	// Source is the original shader text, kept for error context.
	Source string

	// unit keeps the AST for validation passes that need declaration
	// order, precision statements, and local declarations.
	unit *glsl.TranslationUnit
}

// Input returns the named input variable, or nil.
func (s *Shader) Input(name string) *Variable {
	return findVariable(s.Inputs, name)
}

// Output returns the named output variable, or nil.
func (s *Shader) Output(name string) *Variable {
	return findVariable(s.Outputs, name)
}

// Uniform returns the named uniform variable, or nil.
func (s *Shader) Uniform(name string) *Variable {
	return findVariable(s.Uniforms, name)
}

func findVariable(vars []*Variable, name string) *Variable {
	for _, v := range vars {
		if v.Name == name {
			return v
		}
	}
	return nil
}
