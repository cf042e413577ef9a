// Package shader defines the semantic shader model for glslconf.
//
// The model is built from the glsl package's AST and is designed to be:
//   - Version-aware: ES 1.00 and ES 3.00 carry different invariance and
//     storage qualifier rules
//   - Complete for linking: inputs, outputs, and uniforms carry the full
//     qualification needed for cross-stage interface matching
//   - Driver-free: compilation and linking are checked without a GPU
//
// # Structure
//
// A Shader contains:
//   - Inputs/Outputs/Uniforms: the pipeline-visible globals with their
//     types, precision, interpolation, and invariance
//   - Constants: folded module-scope const values
//   - InvariantAll: whether #pragma STDGL invariant(all) was declared
//
// # Pipeline
//
// The checking pipeline is:
//
//	Source → Preprocess → Lex → Parse → Lower → Validate [→ Link]
//
// Compile runs everything up to Validate and reports a *CompileError on
// failure. Link takes two successfully compiled shaders and reports a
// *LinkError when they do not form a valid program.
package shader
