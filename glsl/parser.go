package glsl

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses GLSL tokens into an AST.
type Parser struct {
	tokens  []Token
	current int
	errors  []ParseError
}

// ParseError represents a parsing error.
type ParseError struct {
	Message string
	Token   Token
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Token.Line, e.Token.Column, e.Message)
}

// NewParser creates a new parser for the given tokens.
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
	}
}

// Parse parses the tokens and returns a TranslationUnit AST.
//
// Preprocessor results (version, pragmas) are not filled in here; callers
// compose them from the Preprocessor output.
func (p *Parser) Parse() (*TranslationUnit, error) {
	unit := &TranslationUnit{}

	for !p.isAtEnd() {
		decls, err := p.externalDeclaration()
		if err != nil {
			p.errors = append(p.errors, *err)
			p.synchronize()
			continue
		}
		unit.Decls = append(unit.Decls, decls...)
	}

	if len(p.errors) > 0 {
		return unit, fmt.Errorf("parsing failed with %d error(s): %w", len(p.errors), p.errors[0])
	}

	return unit, nil
}

// Errors returns all parse errors accumulated so far.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// externalDeclaration parses one top-level declaration. A declaration
// statement with several declarators yields several decls.
func (p *Parser) externalDeclaration() ([]Decl, *ParseError) {
	switch {
	case p.check(TokenPrecision):
		d, err := p.precisionDecl()
		if err != nil {
			return nil, err
		}
		return []Decl{d}, nil

	case p.check(TokenInvariant) && p.checkAt(1, TokenIdent) &&
		(p.checkAt(2, TokenSemicolon) || p.checkAt(2, TokenComma)):
		d, err := p.invariantDecl()
		if err != nil {
			return nil, err
		}
		return []Decl{d}, nil

	case p.check(TokenSemicolon):
		p.advance()
		return nil, nil

	case p.check(TokenEOF):
		return nil, nil

	case p.check(TokenReserved):
		tok := p.peek()
		return nil, &ParseError{
			Message: fmt.Sprintf("%q is a reserved keyword", tok.Lexeme),
			Token:   tok,
		}
	}

	quals, err := p.qualifiers()
	if err != nil {
		return nil, err
	}

	if p.check(TokenStruct) {
		return p.structDecl(quals)
	}

	typeSpec, err := p.typeSpec()
	if err != nil {
		return nil, err
	}

	// `in vec4 ...;` vs `vec4 f(...) {...}`: a '(' after the first
	// identifier makes this a function.
	if p.check(TokenIdent) && p.checkAt(1, TokenLeftParen) {
		if quals.Storage != StorageNone || quals.Invariant {
			return nil, &ParseError{
				Message: "storage qualifiers are not allowed on functions",
				Token:   p.peek(),
			}
		}
		d, ferr := p.functionDecl(typeSpec, quals.Precision)
		if ferr != nil {
			return nil, ferr
		}
		return []Decl{d}, nil
	}

	vars, verr := p.declaratorList(quals, typeSpec)
	if verr != nil {
		return nil, verr
	}
	decls := make([]Decl, len(vars))
	for i, v := range vars {
		decls[i] = v
	}
	return decls, nil
}

// qualifiers parses the (possibly empty) qualifier sequence before a type.
func (p *Parser) qualifiers() (Qualifiers, *ParseError) {
	var q Qualifiers
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenInvariant:
			q.Invariant = true
			q.InvariantSpan = tokenSpan(tok)
			p.advance()
		case TokenCentroid:
			q.Centroid = true
			p.advance()
		case TokenSmooth:
			q.Interpolation = InterpolationSmooth
			p.advance()
		case TokenFlat:
			q.Interpolation = InterpolationFlat
			p.advance()
		case TokenConst, TokenIn, TokenOut, TokenUniform, TokenAttribute, TokenVarying:
			if q.Storage != StorageNone {
				return q, &ParseError{
					Message: fmt.Sprintf("duplicate storage qualifier %q", tok.Lexeme),
					Token:   tok,
				}
			}
			q.Storage = storageFromToken(tok.Kind)
			q.StorageSpan = tokenSpan(tok)
			p.advance()
		case TokenHighp, TokenMediump, TokenLowp:
			q.Precision = precisionFromToken(tok.Kind)
			p.advance()
		case TokenLayout:
			items, err := p.layoutList()
			if err != nil {
				return q, err
			}
			q.Layout = append(q.Layout, items...)
		default:
			return q, nil
		}
	}
}

func storageFromToken(kind TokenKind) StorageQualifier {
	switch kind {
	case TokenConst:
		return StorageConst
	case TokenIn:
		return StorageIn
	case TokenOut:
		return StorageOut
	case TokenUniform:
		return StorageUniform
	case TokenAttribute:
		return StorageAttribute
	case TokenVarying:
		return StorageVarying
	}
	return StorageNone
}

func precisionFromToken(kind TokenKind) PrecisionQualifier {
	switch kind {
	case TokenHighp:
		return PrecisionHigh
	case TokenMediump:
		return PrecisionMedium
	case TokenLowp:
		return PrecisionLow
	}
	return PrecisionNone
}

// layoutList parses layout(name, name = expr, ...).
func (p *Parser) layoutList() ([]LayoutItem, *ParseError) {
	p.advance() // consume 'layout'
	if err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}

	var items []LayoutItem
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		tok := p.peek()
		if tok.Kind != TokenIdent {
			return nil, &ParseError{Message: "expected layout qualifier name", Token: tok}
		}
		p.advance()
		item := LayoutItem{Name: tok.Lexeme, Span: tokenSpan(tok)}
		if p.match(TokenEqual) {
			value, err := p.assignmentExpression()
			if err != nil {
				return nil, err
			}
			item.Value = value
		}
		items = append(items, item)
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}
	return items, nil
}

// typeSpec parses a type (keyword or struct name) with an optional array
// suffix on the type itself (ES 3.00 `float[3]` form).
func (p *Parser) typeSpec() (TypeSpec, *ParseError) {
	tok := p.peek()
	if tok.Kind != TokenIdent && !isTypeKeyword(tok.Kind) {
		return TypeSpec{}, &ParseError{
			Message: fmt.Sprintf("expected type, got %q", tok.Lexeme),
			Token:   tok,
		}
	}
	p.advance()

	spec := TypeSpec{
		Name: tok.Lexeme,
		Kind: tok.Kind,
		Span: tokenSpan(tok),
	}
	if p.check(TokenLeftBracket) {
		if err := p.arraySuffix(&spec); err != nil {
			return spec, err
		}
	}
	return spec, nil
}

func (p *Parser) arraySuffix(spec *TypeSpec) *ParseError {
	p.advance() // consume '['
	spec.Array = true
	if !p.check(TokenRightBracket) {
		size, err := p.conditionalExpression()
		if err != nil {
			return err
		}
		spec.ArraySize = size
	}
	return p.expectErr(TokenRightBracket)
}

// precisionDecl parses `precision mediump float;`.
func (p *Parser) precisionDecl() (*PrecisionDecl, *ParseError) {
	start := p.peek()
	p.advance() // consume 'precision'

	prec := precisionFromToken(p.peek().Kind)
	if prec == PrecisionNone {
		return nil, &ParseError{
			Message: "expected precision qualifier (lowp, mediump, highp)",
			Token:   p.peek(),
		}
	}
	p.advance()

	typeSpec, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}

	return &PrecisionDecl{
		Precision: prec,
		Type:      typeSpec,
		Span:      tokenSpan(start),
	}, nil
}

// invariantDecl parses `invariant name, name;`.
func (p *Parser) invariantDecl() (*InvariantDecl, *ParseError) {
	start := p.peek()
	p.advance() // consume 'invariant'

	var names []string
	for {
		tok := p.peek()
		if tok.Kind != TokenIdent {
			return nil, &ParseError{Message: "expected variable name after invariant", Token: tok}
		}
		p.advance()
		names = append(names, tok.Lexeme)
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}

	return &InvariantDecl{Names: names, Span: tokenSpan(start)}, nil
}

// structDecl parses a struct declaration with an optional declarator:
//
//	struct Light { vec3 pos; };
//	struct Light { vec3 pos; } u_light;
func (p *Parser) structDecl(quals Qualifiers) ([]Decl, *ParseError) {
	start := p.peek()
	p.advance() // consume 'struct'

	if !p.check(TokenIdent) {
		return nil, &ParseError{Message: "expected struct name", Token: p.peek()}
	}
	name := p.advance()

	if err := p.expectErr(TokenLeftBrace); err != nil {
		return nil, err
	}

	members := make([]*StructMember, 0, 4)
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		prec := precisionFromToken(p.peek().Kind)
		if prec != PrecisionNone {
			p.advance()
		}
		memberType, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		for {
			tok := p.peek()
			if tok.Kind != TokenIdent {
				return nil, &ParseError{Message: "expected member name", Token: tok}
			}
			p.advance()
			member := &StructMember{
				Type:      memberType,
				Precision: prec,
				Name:      tok.Lexeme,
				Span:      tokenSpan(tok),
			}
			if p.check(TokenLeftBracket) {
				if err := p.arraySuffix(&member.Type); err != nil {
					return nil, err
				}
			}
			members = append(members, member)
			if !p.match(TokenComma) {
				break
			}
		}
		if err := p.expectErr(TokenSemicolon); err != nil {
			return nil, err
		}
	}
	if err := p.expectErr(TokenRightBrace); err != nil {
		return nil, err
	}

	decls := []Decl{&StructDecl{
		Name:    name.Lexeme,
		Members: members,
		Span:    tokenSpan(start),
	}}

	// Optional declarator using the struct as its type.
	if !p.check(TokenSemicolon) {
		spec := TypeSpec{Name: name.Lexeme, Kind: TokenIdent, Span: tokenSpan(name)}
		vars, err := p.declaratorList(quals, spec)
		if err != nil {
			return nil, err
		}
		for _, v := range vars {
			decls = append(decls, v)
		}
		return decls, nil
	}
	p.advance() // consume ';'
	return decls, nil
}

// declaratorList parses `name [N] [= init] (, ...)* ;` after qualifiers and
// type have been consumed.
func (p *Parser) declaratorList(quals Qualifiers, typeSpec TypeSpec) ([]*VariableDecl, *ParseError) {
	var vars []*VariableDecl
	for {
		tok := p.peek()
		if tok.Kind != TokenIdent {
			return nil, &ParseError{
				Message: fmt.Sprintf("expected variable name, got %q", tok.Lexeme),
				Token:   tok,
			}
		}
		p.advance()

		declType := typeSpec
		if p.check(TokenLeftBracket) {
			if declType.Array {
				return nil, &ParseError{Message: "arrays of arrays are not supported", Token: p.peek()}
			}
			if err := p.arraySuffix(&declType); err != nil {
				return nil, err
			}
		}

		decl := &VariableDecl{
			Quals: quals,
			Type:  declType,
			Name:  tok.Lexeme,
			Span:  tokenSpan(tok),
		}
		if p.match(TokenEqual) {
			init, err := p.assignmentExpression()
			if err != nil {
				return nil, err
			}
			decl.Init = init
		}
		vars = append(vars, decl)

		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}
	return vars, nil
}

// functionDecl parses a function prototype or definition; the return type
// has been consumed.
func (p *Parser) functionDecl(returnType TypeSpec, prec PrecisionQualifier) (*FunctionDecl, *ParseError) {
	name := p.advance()
	if err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}

	params := make([]*Parameter, 0, 4)
	// `void f(void)` and `void f()` both declare no parameters.
	if p.check(TokenVoid) && p.checkAt(1, TokenRightParen) {
		p.advance()
	}
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		param, err := p.parameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}

	decl := &FunctionDecl{
		ReturnType:      returnType,
		ReturnPrecision: prec,
		Name:            name.Lexeme,
		Params:          params,
		Span:            tokenSpan(name),
	}

	if p.match(TokenSemicolon) {
		return decl, nil // prototype
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}
	decl.Body = body
	return decl, nil
}

// parameter parses one function parameter.
func (p *Parser) parameter() (*Parameter, *ParseError) {
	quals, err := p.parameterQualifiers()
	if err != nil {
		return nil, err
	}
	paramType, err := p.typeSpec()
	if err != nil {
		return nil, err
	}

	param := &Parameter{Quals: quals, Type: paramType, Span: paramType.Span}
	if p.check(TokenIdent) {
		tok := p.advance()
		param.Name = tok.Lexeme
		if p.check(TokenLeftBracket) {
			if err := p.arraySuffix(&param.Type); err != nil {
				return nil, err
			}
		}
	}
	return param, nil
}

// parameterQualifiers parses const/in/out/inout plus precision on a
// parameter.
func (p *Parser) parameterQualifiers() (Qualifiers, *ParseError) {
	var q Qualifiers
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenConst:
			q.Storage = StorageConst
			p.advance()
		case TokenIn:
			q.Storage = StorageIn
			p.advance()
		case TokenOut:
			q.Storage = StorageOut
			p.advance()
		case TokenInOut:
			// Tracked as in+out elsewhere; parameters keep the lexeme
			// distinction irrelevant for conformance checking.
			q.Storage = StorageIn
			p.advance()
		case TokenHighp, TokenMediump, TokenLowp:
			q.Precision = precisionFromToken(tok.Kind)
			p.advance()
		default:
			return q, nil
		}
	}
}

// Statements

func (p *Parser) block() (*BlockStmt, *ParseError) {
	start := p.peek()
	if err := p.expectErr(TokenLeftBrace); err != nil {
		return nil, err
	}

	block := &BlockStmt{Span: tokenSpan(start)}
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	if err := p.expectErr(TokenRightBrace); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) statement() (Stmt, *ParseError) {
	tok := p.peek()
	switch tok.Kind {
	case TokenLeftBrace:
		return p.block()
	case TokenIf:
		return p.ifStatement()
	case TokenFor:
		return p.forStatement()
	case TokenWhile:
		return p.whileStatement()
	case TokenDo:
		return p.doWhileStatement()
	case TokenSwitch:
		return p.switchStatement()
	case TokenReturn:
		p.advance()
		stmt := &ReturnStmt{Span: tokenSpan(tok)}
		if !p.check(TokenSemicolon) {
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			stmt.Value = value
		}
		if err := p.expectErr(TokenSemicolon); err != nil {
			return nil, err
		}
		return stmt, nil
	case TokenBreak, TokenContinue, TokenDiscard:
		p.advance()
		if err := p.expectErr(TokenSemicolon); err != nil {
			return nil, err
		}
		return &BranchStmt{Kind: tok.Kind, Span: tokenSpan(tok)}, nil
	case TokenSemicolon:
		p.advance()
		return nil, nil
	case TokenReserved:
		return nil, &ParseError{
			Message: fmt.Sprintf("%q is a reserved keyword", tok.Lexeme),
			Token:   tok,
		}
	}

	if p.startsDeclaration() {
		return p.declStatement()
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, Span: expr.Pos()}, nil
}

// startsDeclaration reports whether the next tokens begin a local variable
// declaration rather than an expression.
func (p *Parser) startsDeclaration() bool {
	switch p.peek().Kind {
	case TokenConst, TokenHighp, TokenMediump, TokenLowp, TokenStruct:
		return true
	}
	if isTypeKeyword(p.peek().Kind) {
		// `float x = ...` declares; `float(x)` constructs.
		return !p.checkAt(1, TokenLeftParen)
	}
	// `MyStruct s;` begins with two identifiers.
	return p.check(TokenIdent) && p.checkAt(1, TokenIdent)
}

func (p *Parser) declStatement() (Stmt, *ParseError) {
	start := p.peek()
	quals, err := p.qualifiers()
	if err != nil {
		return nil, err
	}
	typeSpec, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	vars, err := p.declaratorList(quals, typeSpec)
	if err != nil {
		return nil, err
	}
	return &DeclStmt{Decls: vars, Span: tokenSpan(start)}, nil
}

func (p *Parser) ifStatement() (Stmt, *ParseError) {
	start := p.peek()
	p.advance() // consume 'if'
	if err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond, Then: then, Span: tokenSpan(start)}
	if p.match(TokenElse) {
		els, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmt.Else = els
	}
	return stmt, nil
}

func (p *Parser) forStatement() (Stmt, *ParseError) {
	start := p.peek()
	p.advance() // consume 'for'
	if err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}

	stmt := &ForStmt{Span: tokenSpan(start)}
	if !p.check(TokenSemicolon) {
		init, err := p.statement() // declaration or expression statement
		if err != nil {
			return nil, err
		}
		stmt.Init = init
	} else {
		p.advance()
	}

	if !p.check(TokenSemicolon) {
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}

	if !p.check(TokenRightParen) {
		post, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Post = post
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) whileStatement() (Stmt, *ParseError) {
	start := p.peek()
	p.advance() // consume 'while'
	if err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, Span: tokenSpan(start)}, nil
}

func (p *Parser) doWhileStatement() (Stmt, *ParseError) {
	start := p.peek()
	p.advance() // consume 'do'
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenWhile); err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenSemicolon); err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, DoWhile: true, Span: tokenSpan(start)}, nil
}

func (p *Parser) switchStatement() (Stmt, *ParseError) {
	start := p.peek()
	p.advance() // consume 'switch'
	if err := p.expectErr(TokenLeftParen); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenLeftBrace); err != nil {
		return nil, err
	}

	stmt := &SwitchStmt{Value: value, Span: tokenSpan(start)}
	var current *SwitchCase
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		tok := p.peek()
		switch tok.Kind {
		case TokenCase:
			p.advance()
			label, err := p.expression()
			if err != nil {
				return nil, err
			}
			if err := p.expectErr(TokenColon); err != nil {
				return nil, err
			}
			current = &SwitchCase{Value: label, Span: tokenSpan(tok)}
			stmt.Cases = append(stmt.Cases, current)
		case TokenDefault:
			p.advance()
			if err := p.expectErr(TokenColon); err != nil {
				return nil, err
			}
			current = &SwitchCase{Span: tokenSpan(tok)}
			stmt.Cases = append(stmt.Cases, current)
		default:
			if current == nil {
				return nil, &ParseError{Message: "statement before first case label", Token: tok}
			}
			s, err := p.statement()
			if err != nil {
				return nil, err
			}
			if s != nil {
				current.Stmts = append(current.Stmts, s)
			}
		}
	}
	if err := p.expectErr(TokenRightBrace); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Expressions, in GLSL precedence order.

func (p *Parser) expression() (Expr, *ParseError) {
	expr, err := p.assignmentExpression()
	if err != nil {
		return nil, err
	}
	if !p.check(TokenComma) {
		return expr, nil
	}

	seq := &SequenceExpr{Exprs: []Expr{expr}, Span: expr.Pos()}
	for p.match(TokenComma) {
		next, err := p.assignmentExpression()
		if err != nil {
			return nil, err
		}
		seq.Exprs = append(seq.Exprs, next)
	}
	return seq, nil
}

func (p *Parser) assignmentExpression() (Expr, *ParseError) {
	left, err := p.conditionalExpression()
	if err != nil {
		return nil, err
	}

	op := p.peek()
	if !isAssignOp(op.Kind) {
		return left, nil
	}
	p.advance()

	value, err := p.assignmentExpression()
	if err != nil {
		return nil, err
	}
	return &AssignExpr{
		Op:     op.Kind,
		Target: left,
		Value:  value,
		Span:   left.Pos(),
	}, nil
}

func (p *Parser) conditionalExpression() (Expr, *ParseError) {
	cond, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if !p.match(TokenQuestion) {
		return cond, nil
	}
	then, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expectErr(TokenColon); err != nil {
		return nil, err
	}
	els, err := p.assignmentExpression()
	if err != nil {
		return nil, err
	}
	return &TernaryExpr{Cond: cond, Then: then, Else: els, Span: cond.Pos()}, nil
}

func (p *Parser) logicalOr() (Expr, *ParseError) {
	return p.binaryLevel(p.logicalXor, TokenPipePipe)
}

func (p *Parser) logicalXor() (Expr, *ParseError) {
	return p.binaryLevel(p.logicalAnd, TokenCaretCaret)
}

func (p *Parser) logicalAnd() (Expr, *ParseError) {
	return p.binaryLevel(p.bitwiseOr, TokenAmpAmp)
}

func (p *Parser) bitwiseOr() (Expr, *ParseError) {
	return p.binaryLevel(p.bitwiseXor, TokenPipe)
}

func (p *Parser) bitwiseXor() (Expr, *ParseError) {
	return p.binaryLevel(p.bitwiseAnd, TokenCaret)
}

func (p *Parser) bitwiseAnd() (Expr, *ParseError) {
	return p.binaryLevel(p.equality, TokenAmpersand)
}

func (p *Parser) equality() (Expr, *ParseError) {
	return p.binaryLevel(p.relational, TokenEqualEqual, TokenBangEqual)
}

func (p *Parser) relational() (Expr, *ParseError) {
	return p.binaryLevel(p.shift, TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual)
}

func (p *Parser) shift() (Expr, *ParseError) {
	return p.binaryLevel(p.additive, TokenLessLess, TokenGreaterGreater)
}

func (p *Parser) additive() (Expr, *ParseError) {
	return p.binaryLevel(p.multiplicative, TokenPlus, TokenMinus)
}

func (p *Parser) multiplicative() (Expr, *ParseError) {
	return p.binaryLevel(p.unary, TokenStar, TokenSlash, TokenPercent)
}

func (p *Parser) binaryLevel(next func() (Expr, *ParseError), ops ...TokenKind) (Expr, *ParseError) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		matched := false
		for _, kind := range ops {
			if op.Kind == kind {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op.Kind, Left: left, Right: right, Span: left.Pos()}
	}
}

func (p *Parser) unary() (Expr, *ParseError) {
	tok := p.peek()
	switch tok.Kind {
	case TokenPlus, TokenMinus, TokenBang, TokenTilde:
		p.advance()
		expr, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: tok.Kind, Expr: expr, Span: tokenSpan(tok)}, nil
	case TokenPlusPlus, TokenMinusMinus:
		p.advance()
		expr, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: tok.Kind, Expr: expr, Span: tokenSpan(tok)}, nil
	}
	return p.postfix()
}

func (p *Parser) postfix() (Expr, *ParseError) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenLeftBracket:
			p.advance()
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if err := p.expectErr(TokenRightBracket); err != nil {
				return nil, err
			}
			expr = &IndexExpr{Base: expr, Index: index, Span: expr.Pos()}
		case TokenDot:
			p.advance()
			member := p.peek()
			if member.Kind != TokenIdent {
				return nil, &ParseError{Message: "expected member name after '.'", Token: member}
			}
			p.advance()
			expr = &MemberExpr{Base: expr, Member: member.Lexeme, Span: expr.Pos()}
		case TokenPlusPlus, TokenMinusMinus:
			p.advance()
			expr = &PostfixExpr{Op: tok.Kind, Expr: expr, Span: expr.Pos()}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) primary() (Expr, *ParseError) {
	tok := p.peek()

	switch {
	case tok.Kind == TokenIntLiteral || tok.Kind == TokenUintLiteral:
		p.advance()
		lexeme := strings.TrimRight(tok.Lexeme, "uU")
		value, err := strconv.ParseInt(lexeme, 0, 64)
		if err != nil {
			return nil, &ParseError{
				Message: fmt.Sprintf("invalid integer literal %q", tok.Lexeme),
				Token:   tok,
			}
		}
		return &IntLiteral{
			Value:    value,
			Unsigned: tok.Kind == TokenUintLiteral,
			Span:     tokenSpan(tok),
		}, nil

	case tok.Kind == TokenFloatLiteral:
		p.advance()
		lexeme := strings.TrimRight(tok.Lexeme, "fF")
		value, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return nil, &ParseError{
				Message: fmt.Sprintf("invalid float literal %q", tok.Lexeme),
				Token:   tok,
			}
		}
		return &FloatLiteral{Value: value, Span: tokenSpan(tok)}, nil

	case tok.Kind == TokenBoolLiteral:
		p.advance()
		return &BoolLiteral{Value: tok.Lexeme == "true", Span: tokenSpan(tok)}, nil

	case tok.Kind == TokenLeftParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expectErr(TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil

	case tok.Kind == TokenIdent || isTypeKeyword(tok.Kind):
		p.advance()
		if p.check(TokenLeftParen) {
			return p.callArguments(tok)
		}
		if isTypeKeyword(tok.Kind) {
			return nil, &ParseError{
				Message: fmt.Sprintf("expected '(' after type %q", tok.Lexeme),
				Token:   p.peek(),
			}
		}
		return &Ident{Name: tok.Lexeme, Span: tokenSpan(tok)}, nil

	default:
		return nil, &ParseError{
			Message: fmt.Sprintf("unexpected token %q in expression", tok.Lexeme),
			Token:   tok,
		}
	}
}

// callArguments parses the argument list of a call or constructor whose
// callee token has been consumed.
func (p *Parser) callArguments(callee Token) (Expr, *ParseError) {
	p.advance() // consume '('

	call := &CallExpr{
		Callee: callee.Lexeme,
		Kind:   callee.Kind,
		Span:   tokenSpan(callee),
	}
	// `f(void)` is an empty argument list.
	if p.check(TokenVoid) && p.checkAt(1, TokenRightParen) {
		p.advance()
	}
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		arg, err := p.assignmentExpression()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expectErr(TokenRightParen); err != nil {
		return nil, err
	}
	return call, nil
}

// Helper methods

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) check(kind TokenKind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) checkAt(offset int, kind TokenKind) bool {
	if p.current+offset >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+offset].Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectErr(kind TokenKind) *ParseError {
	if p.check(kind) {
		p.advance()
		return nil
	}
	return &ParseError{
		Message: fmt.Sprintf("expected %s, got %q", kind, p.peek().Lexeme),
		Token:   p.peek(),
	}
}

func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == TokenSemicolon {
			return
		}
		switch p.peek().Kind {
		case TokenPrecision, TokenInvariant, TokenUniform, TokenIn, TokenOut,
			TokenAttribute, TokenVarying, TokenStruct, TokenVoid:
			return
		}
		p.advance()
	}
}

func isTypeKeyword(kind TokenKind) bool {
	return kind >= TokenVoid && kind <= TokenUSampler2DArray
}

func isAssignOp(kind TokenKind) bool {
	switch kind {
	case TokenEqual, TokenPlusEqual, TokenMinusEqual, TokenStarEqual,
		TokenSlashEqual, TokenPercentEqual, TokenAmpEqual, TokenPipeEqual,
		TokenCaretEqual, TokenLessLessEqual, TokenGreaterGreaterEqual:
		return true
	}
	return false
}
