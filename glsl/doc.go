// Package glsl provides GLSL ES parsing.
//
// GLSL ES is the shading language of OpenGL ES and WebGL. This package
// implements the frontend used by the conformance checker: preprocessing,
// lexing, and parsing of ES 1.00 and ES 3.00 shaders.
//
// # Components
//
//   - Preprocessor: line continuations, comments, #version, #pragma
//     (including STDGL invariant(all)), #extension, #define/#undef,
//     #if/#ifdef conditionals, #error
//   - Lexer: tokenizes preprocessed GLSL source code into tokens
//   - Parser: parses tokens into an AST (Abstract Syntax Tree)
//   - Folder: evaluates constant expressions (array sizes, const
//     initializers) in shader precision
//
// # Usage
//
// To parse a GLSL shader:
//
//	source := `#version 300 es
//	precision mediump float;
//	out vec4 color;
//	void main() {
//	    color = vec4(1.0);
//	}
//	`
//
//	pre, err := glsl.Preprocess(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lexer := glsl.NewLexer(pre.Source)
//	tokens, err := lexer.Tokenize()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	parser := glsl.NewParser(tokens)
//	unit, err := parser.Parse()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	unit.Version = pre.Version
//	unit.InvariantAll = pre.InvariantAll
//
// # GLSL ES Specifications
//
// This implementation follows the OpenGL ES Shading Language
// specifications, versions 1.00 and 3.00:
// https://registry.khronos.org/OpenGL/specs/es/
package glsl
