package shader

import (
	"github.com/gogpu/glslconf/glsl"
)

// Compile runs the full pipeline over source: preprocess, lex, parse,
// lower, validate. On failure the returned error is a *CompileError
// carrying every diagnostic.
func Compile(source string, stage Stage) (*Shader, error) {
	pre, err := glsl.Preprocess(source)
	if err != nil {
		diags, ok := err.(glsl.SourceErrors)
		if !ok {
			diags = glsl.SourceErrors{glsl.NewSourceError(err.Error(), glsl.Span{}, source)}
		}
		return nil, &CompileError{Stage: stage, Diagnostics: diags}
	}

	lexer := glsl.NewLexer(pre.Source)
	tokens, lexErr := lexer.Tokenize()
	if lexErr != nil {
		return nil, &CompileError{Stage: stage, Diagnostics: glsl.SourceErrors{
			glsl.NewSourceError(lexErr.Error(), glsl.Span{}, source),
		}}
	}

	var diags glsl.SourceErrors
	for _, tok := range tokens {
		if tok.Kind == glsl.TokenError {
			diags.AddError("unexpected character "+tok.Lexeme,
				glsl.Span{Start: glsl.Position{Line: tok.Line, Column: tok.Column}}, source)
		}
	}
	if diags.HasErrors() {
		return nil, &CompileError{Stage: stage, Diagnostics: diags}
	}

	parser := glsl.NewParser(tokens)
	unit, parseErr := parser.Parse()
	if parseErr != nil {
		for _, pe := range parser.Errors() {
			diags.AddError(pe.Message,
				glsl.Span{Start: glsl.Position{Line: pe.Token.Line, Column: pe.Token.Column}}, source)
		}
		return nil, &CompileError{Stage: stage, Diagnostics: diags}
	}
	unit.Version = pre.Version
	unit.InvariantAll = pre.InvariantAll
	unit.Pragmas = pre.Pragmas
	unit.Extensions = pre.Extensions

	sh, lowerDiags := Lower(unit, stage, source)
	if lowerDiags.HasErrors() {
		return nil, &CompileError{Stage: stage, Diagnostics: lowerDiags}
	}

	if vDiags := Validate(sh); vDiags.HasErrors() {
		return nil, &CompileError{Stage: stage, Diagnostics: vDiags}
	}

	return sh, nil
}

// lowerer builds a Shader from the AST.
type lowerer struct {
	sh     *Shader
	unit   *glsl.TranslationUnit
	source string
	diags  glsl.SourceErrors
	folder glsl.Folder

	globals map[string]*Variable
	funcs   map[string]bool
}

// Lower converts a parsed translation unit into the semantic shader model.
// Lowering resolves array sizes, applies invariant re-declarations, and
// computes static use; stage legality rules are left to Validate.
func Lower(unit *glsl.TranslationUnit, stage Stage, source string) (*Shader, glsl.SourceErrors) {
	lw := &lowerer{
		sh: &Shader{
			Stage:        stage,
			Version:      unit.Version,
			InvariantAll: unit.InvariantAll,
			Pragmas:      unit.Pragmas,
			Extensions:   unit.Extensions,
			Constants:    make(map[string]glsl.ConstValue),
			Source:       source,
		},
		unit:    unit,
		source:  source,
		globals: make(map[string]*Variable),
		funcs:   make(map[string]bool),
	}
	lw.folder.Consts = lw.sh.Constants

	for _, decl := range unit.Decls {
		switch d := decl.(type) {
		case *glsl.VariableDecl:
			lw.variable(d)
		case *glsl.InvariantDecl:
			lw.invariantDecl(d)
		case *glsl.FunctionDecl:
			lw.function(d)
		case *glsl.PrecisionDecl, *glsl.StructDecl:
			// Consumed by the validator via the unit.
		}
	}

	lw.markStaticUse()
	lw.sh.unit = unit
	return lw.sh, lw.diags
}

func (lw *lowerer) errorAt(span glsl.Span, message string) {
	lw.diags.AddError(message, span, lw.source)
}

func (lw *lowerer) variable(d *glsl.VariableDecl) {
	if _, exists := lw.globals[d.Name]; exists {
		lw.errorAt(d.Span, "redefinition of "+d.Name)
		return
	}

	v := &Variable{
		Name:          d.Name,
		Type:          lw.resolveType(d.Type),
		Storage:       d.Quals.Storage,
		Precision:     d.Quals.Precision,
		Interpolation: d.Quals.Interpolation,
		Centroid:      d.Quals.Centroid,
		Invariant:     d.Quals.Invariant,
		Location:      -1,
		Span:          d.Span,
	}
	for _, item := range d.Quals.Layout {
		if item.Name != "location" || item.Value == nil {
			continue
		}
		if loc, ok := lw.folder.Fold(item.Value); ok {
			v.Location = int(loc.IntVal())
		}
	}
	lw.globals[d.Name] = v

	switch d.Quals.Storage {
	case glsl.StorageUniform:
		lw.sh.Uniforms = append(lw.sh.Uniforms, v)
	case glsl.StorageAttribute:
		lw.sh.Inputs = append(lw.sh.Inputs, v)
	case glsl.StorageVarying:
		if lw.sh.Stage == StageVertex {
			lw.sh.Outputs = append(lw.sh.Outputs, v)
		} else {
			lw.sh.Inputs = append(lw.sh.Inputs, v)
		}
	case glsl.StorageIn:
		lw.sh.Inputs = append(lw.sh.Inputs, v)
	case glsl.StorageOut:
		lw.sh.Outputs = append(lw.sh.Outputs, v)
	case glsl.StorageConst:
		if d.Init != nil {
			if value, ok := lw.folder.Fold(d.Init); ok {
				lw.sh.Constants[d.Name] = value
			}
		}
	}
}

func (lw *lowerer) resolveType(spec glsl.TypeSpec) Type {
	t := Type{Name: spec.Name, Array: spec.Array}
	if spec.Array && spec.ArraySize != nil {
		size, ok := lw.folder.Fold(spec.ArraySize)
		if !ok {
			lw.errorAt(spec.Span, "array size must be a constant expression")
			return t
		}
		n := size.IntVal()
		if n <= 0 {
			lw.errorAt(spec.Span, "array size must be greater than zero")
			return t
		}
		t.ArraySize = int(n)
	}
	return t
}

func (lw *lowerer) invariantDecl(d *glsl.InvariantDecl) {
	for _, name := range d.Names {
		if isBuiltinOutput(lw.sh.Stage, name) {
			lw.sh.BuiltinInvariants = append(lw.sh.BuiltinInvariants, name)
			continue
		}
		v, ok := lw.globals[name]
		if !ok {
			lw.errorAt(d.Span, "invariant declaration of undeclared variable "+name)
			continue
		}
		v.Invariant = true
		// Re-declaring a non-output invariant is caught by Validate.
	}
}

// isBuiltinOutput reports whether name is a built-in output that may be
// re-declared invariant in the given stage.
func isBuiltinOutput(stage Stage, name string) bool {
	switch stage {
	case StageVertex:
		return name == "gl_Position" || name == "gl_PointSize"
	case StageFragment:
		return name == "gl_FragDepth"
	}
	return false
}

func (lw *lowerer) function(d *glsl.FunctionDecl) {
	if d.Body == nil {
		return // prototype
	}
	if lw.funcs[d.Name] {
		lw.errorAt(d.Span, "redefinition of function "+d.Name)
		return
	}
	lw.funcs[d.Name] = true
	if d.Name == "main" {
		lw.sh.HasMain = true
	}
}

// markStaticUse walks every function body and marks referenced globals.
func (lw *lowerer) markStaticUse() {
	used := make(map[string]bool)
	for _, decl := range lw.unit.Decls {
		fn, ok := decl.(*glsl.FunctionDecl)
		if !ok || fn.Body == nil {
			continue
		}
		walkStmt(fn.Body, used)
	}
	for name, v := range lw.globals {
		if used[name] {
			v.StaticUse = true
		}
	}
}

func walkStmt(stmt glsl.Stmt, used map[string]bool) {
	switch s := stmt.(type) {
	case *glsl.BlockStmt:
		for _, inner := range s.Stmts {
			walkStmt(inner, used)
		}
	case *glsl.ExprStmt:
		walkExpr(s.Expr, used)
	case *glsl.DeclStmt:
		for _, d := range s.Decls {
			if d.Init != nil {
				walkExpr(d.Init, used)
			}
			if d.Type.ArraySize != nil {
				walkExpr(d.Type.ArraySize, used)
			}
		}
	case *glsl.IfStmt:
		walkExpr(s.Cond, used)
		walkStmt(s.Then, used)
		if s.Else != nil {
			walkStmt(s.Else, used)
		}
	case *glsl.ForStmt:
		if s.Init != nil {
			walkStmt(s.Init, used)
		}
		if s.Cond != nil {
			walkExpr(s.Cond, used)
		}
		if s.Post != nil {
			walkExpr(s.Post, used)
		}
		walkStmt(s.Body, used)
	case *glsl.WhileStmt:
		walkExpr(s.Cond, used)
		walkStmt(s.Body, used)
	case *glsl.SwitchStmt:
		walkExpr(s.Value, used)
		for _, c := range s.Cases {
			if c.Value != nil {
				walkExpr(c.Value, used)
			}
			for _, inner := range c.Stmts {
				walkStmt(inner, used)
			}
		}
	case *glsl.ReturnStmt:
		if s.Value != nil {
			walkExpr(s.Value, used)
		}
	}
}

func walkExpr(expr glsl.Expr, used map[string]bool) {
	switch e := expr.(type) {
	case *glsl.Ident:
		used[e.Name] = true
	case *glsl.UnaryExpr:
		walkExpr(e.Expr, used)
	case *glsl.PostfixExpr:
		walkExpr(e.Expr, used)
	case *glsl.BinaryExpr:
		walkExpr(e.Left, used)
		walkExpr(e.Right, used)
	case *glsl.AssignExpr:
		walkExpr(e.Target, used)
		walkExpr(e.Value, used)
	case *glsl.TernaryExpr:
		walkExpr(e.Cond, used)
		walkExpr(e.Then, used)
		walkExpr(e.Else, used)
	case *glsl.CallExpr:
		for _, arg := range e.Args {
			walkExpr(arg, used)
		}
	case *glsl.IndexExpr:
		walkExpr(e.Base, used)
		walkExpr(e.Index, used)
	case *glsl.MemberExpr:
		walkExpr(e.Base, used)
	case *glsl.SequenceExpr:
		for _, inner := range e.Exprs {
			walkExpr(inner, used)
		}
	}
}
