// Package glslconf provides a Pure Go GLSL ES conformance checker.
//
// glslconf compiles GLSL ES 1.00 and 3.00 shader source without a GPU and
// checks the compile- and link-time rules around shader interfaces, with
// full support for the invariant qualifier and the
// #pragma STDGL invariant(all) directive.
//
// The package provides a simple, high-level API as well as lower-level
// access to the individual stages.
//
// Example usage:
//
//	source := `#version 300 es
//	precision mediump float;
//	invariant out vec4 v_color;
//	void main() {
//	    v_color = vec4(1.0);
//	    gl_Position = v_color;
//	}
//	`
//	sh, err := glslconf.Compile(source, shader.StageVertex)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// To check a whole program, use Link:
//
//	err := glslconf.Link(vertexSource, fragmentSource)
//
// For declarative conformance suites, use the conformance package:
//
//	report := conformance.RunInvariance()
package glslconf

import (
	"errors"
	"fmt"

	"github.com/gogpu/glslconf/glsl"
	"github.com/gogpu/glslconf/shader"
)

// Compile compiles GLSL ES source for the given stage.
//
// The checking pipeline is:
//  1. Preprocess (directives, macros, #pragma STDGL invariant(all))
//  2. Lex and parse to AST
//  3. Lower AST to the semantic shader model
//  4. Validate stage and version rules
//
// On failure the returned error is a *shader.CompileError carrying every
// diagnostic with source positions.
func Compile(source string, stage shader.Stage) (*shader.Shader, error) {
	return shader.Compile(source, stage)
}

// Link compiles a vertex and a fragment shader and checks that they form a
// valid program.
//
// The returned error is a *shader.CompileError when either shader fails to
// compile, or a *shader.LinkError when both compile but their interfaces
// do not match.
func Link(vertexSource, fragmentSource string) error {
	vs, err := shader.Compile(vertexSource, shader.StageVertex)
	if err != nil {
		return fmt.Errorf("vertex shader: %w", err)
	}
	fs, err := shader.Compile(fragmentSource, shader.StageFragment)
	if err != nil {
		return fmt.Errorf("fragment shader: %w", err)
	}
	return shader.Link(vs, fs)
}

// Parse parses GLSL ES source to an AST without semantic checking.
//
// Preprocessing runs first; the resulting translation unit carries the
// declared version and pragmas.
func Parse(source string) (*glsl.TranslationUnit, error) {
	pre, err := glsl.Preprocess(source)
	if err != nil {
		return nil, fmt.Errorf("preprocessing error: %w", err)
	}

	lexer := glsl.NewLexer(pre.Source)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("tokenization error: %w", err)
	}

	parser := glsl.NewParser(tokens)
	unit, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	unit.Version = pre.Version
	unit.InvariantAll = pre.InvariantAll
	unit.Pragmas = pre.Pragmas
	unit.Extensions = pre.Extensions
	return unit, nil
}

// IsCompileError reports whether err is a shader compile failure.
func IsCompileError(err error) bool {
	var ce *shader.CompileError
	return errors.As(err, &ce)
}

// IsLinkError reports whether err is a program link failure.
func IsLinkError(err error) bool {
	var le *shader.LinkError
	return errors.As(err, &le)
}
