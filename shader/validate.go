package shader

import (
	"strings"

	"github.com/gogpu/glslconf/glsl"
)

// Validator checks stage and version rules over a lowered shader.
type Validator struct {
	sh    *Shader
	diags glsl.SourceErrors

	// Default precisions by type class ("float", "int"), updated in
	// declaration order by precision statements.
	defaults map[string]glsl.PrecisionQualifier
}

// Validate checks the shader against the GLSL ES rules for its declared
// version. Returns every diagnostic found; an empty list means the shader
// compiles.
func Validate(sh *Shader) glsl.SourceErrors {
	v := &Validator{
		sh:       sh,
		defaults: defaultPrecisions(sh.Stage),
	}

	v.validatePragmas()
	v.validateDeclarations()
	v.validateInvariance()

	return v.diags
}

// defaultPrecisions returns the implicit default precision per type class,
// per GLSL ES 1.00 §4.5.3 and ES 3.00 §4.5.4. Fragment shaders have no
// default for float.
func defaultPrecisions(stage Stage) map[string]glsl.PrecisionQualifier {
	if stage == StageVertex {
		return map[string]glsl.PrecisionQualifier{
			"float": glsl.PrecisionHigh,
			"int":   glsl.PrecisionHigh,
		}
	}
	return map[string]glsl.PrecisionQualifier{
		"int": glsl.PrecisionMedium,
	}
}

func (v *Validator) errorAt(span glsl.Span, format string, args ...interface{}) {
	v.diags.Add(glsl.NewSourceErrorf(span, v.sh.Source, format, args...))
}

// validatePragmas rejects the global invariance pragma where the version
// forbids it. In ES 3.00 only vertex shader outputs can be invariant, so
// #pragma STDGL invariant(all) cannot appear in a fragment shader.
func (v *Validator) validatePragmas() {
	if !v.sh.InvariantAll {
		return
	}
	if v.sh.Version.Number >= 300 && v.sh.Stage == StageFragment {
		v.errorAt(v.invariantAllSpan(),
			"#pragma STDGL invariant(all) cannot be used in a fragment shader in GLSL ES 3.00")
	}
}

func (v *Validator) invariantAllSpan() glsl.Span {
	for _, pragma := range v.sh.Pragmas {
		if strings.HasPrefix(pragma.Text, "STDGL") && strings.Contains(pragma.Text, "invariant") {
			return pragma.Span
		}
	}
	return glsl.Span{}
}

// validateDeclarations walks the translation unit in declaration order,
// tracking default precision statements and checking each declaration.
func (v *Validator) validateDeclarations() {
	if v.sh.unit == nil {
		return
	}
	for _, decl := range v.sh.unit.Decls {
		switch d := decl.(type) {
		case *glsl.PrecisionDecl:
			v.precisionStatement(d)
		case *glsl.VariableDecl:
			v.globalVariable(d)
		case *glsl.FunctionDecl:
			v.functionDecl(d)
		}
	}
}

func (v *Validator) precisionStatement(d *glsl.PrecisionDecl) {
	t := Type{Name: d.Type.Name}
	switch {
	case t.Name == "float" || t.Name == "int":
		v.defaults[t.Name] = d.Precision
	case strings.HasPrefix(t.Name, "sampler") || strings.HasPrefix(t.Name, "isampler") ||
		strings.HasPrefix(t.Name, "usampler"):
		// Samplers default to lowp and may be re-declared.
	default:
		v.errorAt(d.Span, "precision statement not allowed for type %s", t.Name)
	}
}

func (v *Validator) globalVariable(d *glsl.VariableDecl) {
	v.storageRules(d)
	v.precisionRequired(d.Quals.Precision, d.Type, d.Span)

	if d.Init != nil && (d.Quals.Storage == glsl.StorageIn || d.Quals.Storage == glsl.StorageOut ||
		d.Quals.Storage == glsl.StorageAttribute || d.Quals.Storage == glsl.StorageVarying ||
		d.Quals.Storage == glsl.StorageUniform) {
		v.errorAt(d.Span, "%s variable %s cannot have an initializer", d.Quals.Storage, d.Name)
	}
}

// storageRules checks storage qualifier availability per version and stage.
func (v *Validator) storageRules(d *glsl.VariableDecl) {
	es3 := v.sh.Version.Number >= 300
	switch d.Quals.Storage {
	case glsl.StorageAttribute:
		if es3 {
			v.errorAt(d.Quals.StorageSpan, "'attribute' is not available in GLSL ES 3.00; use 'in'")
		} else if v.sh.Stage == StageFragment {
			v.errorAt(d.Quals.StorageSpan, "'attribute' is not allowed in fragment shaders")
		}
	case glsl.StorageVarying:
		if es3 {
			v.errorAt(d.Quals.StorageSpan, "'varying' is not available in GLSL ES 3.00; use 'in' or 'out'")
		}
	case glsl.StorageIn, glsl.StorageOut:
		if !es3 {
			v.errorAt(d.Quals.StorageSpan, "'%s' on a global requires #version 300 es", d.Quals.Storage)
		}
	}

	if len(d.Quals.Layout) > 0 && !es3 {
		v.errorAt(d.Span, "layout qualifiers require #version 300 es")
	}
}

// precisionRequired checks that a float-typed declaration has a precision,
// explicit or defaulted. This is the rule that makes
// `precision mediump float;` mandatory in fragment shaders.
func (v *Validator) precisionRequired(explicit glsl.PrecisionQualifier, spec glsl.TypeSpec, span glsl.Span) {
	if explicit != glsl.PrecisionNone {
		return
	}
	t := Type{Name: spec.Name}
	switch {
	case t.IsFloat():
		if _, ok := v.defaults["float"]; !ok {
			v.errorAt(span, "no default precision defined for type float; declare 'precision mediump float;' or qualify the declaration")
		}
	case t.IsInt():
		if _, ok := v.defaults["int"]; !ok {
			v.errorAt(span, "no default precision defined for type int")
		}
	}
}

func (v *Validator) functionDecl(d *glsl.FunctionDecl) {
	if d.Name == "main" {
		if d.ReturnType.Name != "void" {
			v.errorAt(d.Span, "main function must return void")
		}
		if len(d.Params) > 0 {
			v.errorAt(d.Span, "main function cannot take arguments")
		}
	}

	if d.ReturnType.Name != "void" {
		v.precisionRequired(d.ReturnPrecision, d.ReturnType, d.Span)
	}
	for _, param := range d.Params {
		v.precisionRequired(param.Quals.Precision, param.Type, param.Span)
	}
	if d.Body != nil {
		v.blockPrecision(d.Body)
	}
}

// blockPrecision applies the precision requirement to local declarations.
func (v *Validator) blockPrecision(stmt glsl.Stmt) {
	switch s := stmt.(type) {
	case *glsl.BlockStmt:
		for _, inner := range s.Stmts {
			v.blockPrecision(inner)
		}
	case *glsl.DeclStmt:
		for _, d := range s.Decls {
			v.precisionRequired(d.Quals.Precision, d.Type, d.Span)
		}
	case *glsl.IfStmt:
		v.blockPrecision(s.Then)
		if s.Else != nil {
			v.blockPrecision(s.Else)
		}
	case *glsl.ForStmt:
		if s.Init != nil {
			v.blockPrecision(s.Init)
		}
		v.blockPrecision(s.Body)
	case *glsl.WhileStmt:
		v.blockPrecision(s.Body)
	case *glsl.SwitchStmt:
		for _, c := range s.Cases {
			for _, inner := range c.Stmts {
				v.blockPrecision(inner)
			}
		}
	}
}

// validateInvariance enforces where the invariant qualifier may appear.
//
// ES 3.00 restricts invariance to vertex shader outputs (§4.6.1): an
// invariant input, an invariant fragment-shader variable of any kind, or
// the global pragma in a fragment shader are all compile errors. ES 1.00
// allows invariant varyings on both sides of the interface.
func (v *Validator) validateInvariance() {
	es3 := v.sh.Version.Number >= 300

	for _, in := range v.sh.Inputs {
		if !in.Invariant {
			continue
		}
		switch {
		case es3:
			v.errorAt(in.Span, "invariant qualifier cannot be applied to %q: only vertex shader outputs can be declared invariant in GLSL ES 3.00", in.Name)
		case v.sh.Stage == StageVertex:
			v.errorAt(in.Span, "invariant qualifier cannot be applied to the %s %q", in.Storage, in.Name)
		default:
			// ES 1.00 fragment varyings may be invariant.
			if in.Storage != glsl.StorageVarying {
				v.errorAt(in.Span, "invariant qualifier cannot be applied to the %s %q", in.Storage, in.Name)
			}
		}
	}

	for _, out := range v.sh.Outputs {
		if !out.Invariant {
			continue
		}
		if es3 && v.sh.Stage == StageFragment {
			v.errorAt(out.Span, "fragment shader outputs cannot be declared invariant in GLSL ES 3.00")
		}
	}

	for _, u := range v.sh.Uniforms {
		if u.Invariant {
			v.errorAt(u.Span, "invariant qualifier cannot be applied to the uniform %q", u.Name)
		}
	}

	if es3 && v.sh.Stage == StageFragment {
		for _, name := range v.sh.BuiltinInvariants {
			v.errorAt(glsl.Span{}, "invariant declaration of %q is not allowed in GLSL ES 3.00 fragment shaders", name)
		}
	}
}
