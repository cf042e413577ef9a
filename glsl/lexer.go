package glsl

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes preprocessed GLSL ES source code.
//
// The lexer expects preprocessor directives to have been consumed already;
// a stray '#' produces a TokenError token.
type Lexer struct {
	source string
	pos    int
	line   int
	column int
	start  int
	tokens []Token
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source string) *Lexer {
	// Estimate ~1 token per 6 characters of source.
	estTokens := len(source) / 6
	if estTokens < 16 {
		estTokens = 16
	}
	return &Lexer{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, estTokens),
	}
}

// Tokenize returns all tokens from the source.
func (l *Lexer) Tokenize() ([]Token, error) {
	for !l.isAtEnd() {
		l.start = l.pos
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}

	l.tokens = append(l.tokens, Token{
		Kind:   TokenEOF,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, nil
}

func (l *Lexer) scanToken() error {
	r := l.advance()

	switch r {
	// Single-character tokens
	case '(':
		l.addToken(TokenLeftParen)
	case ')':
		l.addToken(TokenRightParen)
	case '{':
		l.addToken(TokenLeftBrace)
	case '}':
		l.addToken(TokenRightBrace)
	case '[':
		l.addToken(TokenLeftBracket)
	case ']':
		l.addToken(TokenRightBracket)
	case ',':
		l.addToken(TokenComma)
	case ':':
		l.addToken(TokenColon)
	case ';':
		l.addToken(TokenSemicolon)
	case '?':
		l.addToken(TokenQuestion)
	case '~':
		l.addToken(TokenTilde)
	case '.':
		if isDigit(l.peek()) {
			l.floatFraction()
		} else {
			l.addToken(TokenDot)
		}
	case '%':
		if l.match('=') {
			l.addToken(TokenPercentEqual)
		} else {
			l.addToken(TokenPercent)
		}
	case '^':
		if l.match('^') {
			l.addToken(TokenCaretCaret)
		} else if l.match('=') {
			l.addToken(TokenCaretEqual)
		} else {
			l.addToken(TokenCaret)
		}

	// Operators that could be one or two characters
	case '+':
		if l.match('+') {
			l.addToken(TokenPlusPlus)
		} else if l.match('=') {
			l.addToken(TokenPlusEqual)
		} else {
			l.addToken(TokenPlus)
		}
	case '-':
		if l.match('-') {
			l.addToken(TokenMinusMinus)
		} else if l.match('=') {
			l.addToken(TokenMinusEqual)
		} else {
			l.addToken(TokenMinus)
		}
	case '*':
		if l.match('=') {
			l.addToken(TokenStarEqual)
		} else {
			l.addToken(TokenStar)
		}
	case '/':
		if l.match('/') {
			// Line comment
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		} else if l.match('*') {
			// Block comment
			l.blockComment()
		} else if l.match('=') {
			l.addToken(TokenSlashEqual)
		} else {
			l.addToken(TokenSlash)
		}
	case '=':
		if l.match('=') {
			l.addToken(TokenEqualEqual)
		} else {
			l.addToken(TokenEqual)
		}
	case '!':
		if l.match('=') {
			l.addToken(TokenBangEqual)
		} else {
			l.addToken(TokenBang)
		}
	case '<':
		if l.match('<') {
			if l.match('=') {
				l.addToken(TokenLessLessEqual)
			} else {
				l.addToken(TokenLessLess)
			}
		} else if l.match('=') {
			l.addToken(TokenLessEqual)
		} else {
			l.addToken(TokenLess)
		}
	case '>':
		if l.match('>') {
			if l.match('=') {
				l.addToken(TokenGreaterGreaterEqual)
			} else {
				l.addToken(TokenGreaterGreater)
			}
		} else if l.match('=') {
			l.addToken(TokenGreaterEqual)
		} else {
			l.addToken(TokenGreater)
		}
	case '&':
		if l.match('&') {
			l.addToken(TokenAmpAmp)
		} else if l.match('=') {
			l.addToken(TokenAmpEqual)
		} else {
			l.addToken(TokenAmpersand)
		}
	case '|':
		if l.match('|') {
			l.addToken(TokenPipePipe)
		} else if l.match('=') {
			l.addToken(TokenPipeEqual)
		} else {
			l.addToken(TokenPipe)
		}

	// Whitespace
	case ' ', '\r', '\t':
		// Ignore whitespace
	case '\n':
		l.line++
		l.column = 1

	default:
		if isDigit(r) {
			l.number()
		} else if isAlpha(r) || r == '_' {
			l.identifier()
		} else {
			l.addToken(TokenError)
		}
	}

	return nil
}

func (l *Lexer) blockComment() {
	// GLSL block comments do not nest.
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.peek() == '\n' {
			l.line++
			l.column = 0
		}
		l.advance()
	}
}

func (l *Lexer) number() {
	// Hex prefix
	if l.source[l.start] == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.advance()
		for isHexDigit(l.peek()) {
			l.advance()
		}
		l.intSuffix()
		return
	}

	for isDigit(l.peek()) {
		l.advance()
	}

	// Fractional part. GLSL allows "1." as a float literal.
	nextAfterDot := l.peekNext()
	if l.peek() == '.' && !isAlpha(nextAfterDot) && nextAfterDot != '_' {
		l.advance() // consume '.'
		for isDigit(l.peek()) {
			l.advance()
		}
		l.exponent()
		l.floatSuffix()
		l.addToken(TokenFloatLiteral)
		return
	}

	// Exponent without decimal point: 1e4 is a float
	if l.peek() == 'e' || l.peek() == 'E' {
		l.exponent()
		l.floatSuffix()
		l.addToken(TokenFloatLiteral)
		return
	}

	// Leading zero with no hex/float part is octal; digits already consumed.
	l.intSuffix()
}

// floatFraction scans a float literal that started with '.'.
func (l *Lexer) floatFraction() {
	for isDigit(l.peek()) {
		l.advance()
	}
	l.exponent()
	l.floatSuffix()
	l.addToken(TokenFloatLiteral)
}

func (l *Lexer) exponent() {
	if l.peek() == 'e' || l.peek() == 'E' {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}
}

func (l *Lexer) floatSuffix() {
	// 'f' and 'F' suffixes are ES 3.00; lF/Fl double suffixes are desktop
	// GLSL and rejected later by the parser as reserved.
	if l.peek() == 'f' || l.peek() == 'F' {
		l.advance()
	}
}

func (l *Lexer) intSuffix() {
	if l.peek() == 'u' || l.peek() == 'U' {
		l.advance()
		l.addToken(TokenUintLiteral)
		return
	}
	l.addToken(TokenIntLiteral)
}

func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	text := l.source[l.start:l.pos]
	kind := lookupKeyword(text)
	l.addToken(kind)
}

var keywords = map[string]TokenKind{
	"const":     TokenConst,
	"uniform":   TokenUniform,
	"in":        TokenIn,
	"out":       TokenOut,
	"inout":     TokenInOut,
	"attribute": TokenAttribute,
	"varying":   TokenVarying,
	"invariant": TokenInvariant,
	"centroid":  TokenCentroid,
	"flat":      TokenFlat,
	"smooth":    TokenSmooth,
	"layout":    TokenLayout,
	"precision": TokenPrecision,
	"highp":     TokenHighp,
	"mediump":   TokenMediump,
	"lowp":      TokenLowp,
	"struct":    TokenStruct,

	"break":    TokenBreak,
	"case":     TokenCase,
	"continue": TokenContinue,
	"default":  TokenDefault,
	"discard":  TokenDiscard,
	"do":       TokenDo,
	"else":     TokenElse,
	"for":      TokenFor,
	"if":       TokenIf,
	"return":   TokenReturn,
	"switch":   TokenSwitch,
	"while":    TokenWhile,

	// Types
	"void":  TokenVoid,
	"float": TokenFloat,
	"int":   TokenInt,
	"uint":  TokenUint,
	"bool":  TokenBool,
	"vec2":  TokenVec2,
	"vec3":  TokenVec3,
	"vec4":  TokenVec4,
	"ivec2": TokenIVec2,
	"ivec3": TokenIVec3,
	"ivec4": TokenIVec4,
	"uvec2": TokenUVec2,
	"uvec3": TokenUVec3,
	"uvec4": TokenUVec4,
	"bvec2": TokenBVec2,
	"bvec3": TokenBVec3,
	"bvec4": TokenBVec4,

	"mat2":   TokenMat2,
	"mat3":   TokenMat3,
	"mat4":   TokenMat4,
	"mat2x2": TokenMat2x2,
	"mat2x3": TokenMat2x3,
	"mat2x4": TokenMat2x4,
	"mat3x2": TokenMat3x2,
	"mat3x3": TokenMat3x3,
	"mat3x4": TokenMat3x4,
	"mat4x2": TokenMat4x2,
	"mat4x3": TokenMat4x3,
	"mat4x4": TokenMat4x4,

	"sampler2D":            TokenSampler2D,
	"sampler3D":            TokenSampler3D,
	"samplerCube":          TokenSamplerCube,
	"sampler2DShadow":      TokenSampler2DShadow,
	"samplerCubeShadow":    TokenSamplerCubeShadow,
	"sampler2DArray":       TokenSampler2DArray,
	"sampler2DArrayShadow": TokenSampler2DArrayShadow,
	"isampler2D":           TokenISampler2D,
	"isampler3D":           TokenISampler3D,
	"isamplerCube":         TokenISamplerCube,
	"isampler2DArray":      TokenISampler2DArray,
	"usampler2D":           TokenUSampler2D,
	"usampler3D":           TokenUSampler3D,
	"usamplerCube":         TokenUSamplerCube,
	"usampler2DArray":      TokenUSampler2DArray,
}

// reservedWords are keywords reserved for future use by GLSL ES 3.00 §3.6.
// Using one anywhere in a shader is a compile error.
var reservedWords = map[string]struct{}{
	"asm": {}, "class": {}, "union": {}, "enum": {}, "typedef": {},
	"template": {}, "this": {}, "packed": {}, "goto": {}, "inline": {},
	"noinline": {}, "volatile": {}, "public": {}, "static": {}, "extern": {},
	"external": {}, "interface": {}, "long": {}, "short": {}, "double": {},
	"half": {}, "fixed": {}, "unsigned": {}, "superp": {}, "input": {},
	"output": {}, "hvec2": {}, "hvec3": {}, "hvec4": {}, "dvec2": {},
	"dvec3": {}, "dvec4": {}, "fvec2": {}, "fvec3": {}, "fvec4": {},
	"sampler1D": {}, "sampler1DShadow": {}, "sampler2DRect": {},
	"sampler2DRectShadow": {}, "sampler3DRect": {}, "sizeof": {},
	"cast": {}, "namespace": {}, "using": {}, "common": {}, "partition": {},
	"active": {}, "filter": {}, "resource": {}, "subroutine": {},
	"patch": {}, "sample": {}, "coherent": {}, "restrict": {},
	"readonly": {}, "writeonly": {}, "precise": {}, "noperspective": {},
}

func lookupKeyword(text string) TokenKind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	if _, ok := reservedWords[text]; ok {
		return TokenReserved
	}
	if text == "true" || text == "false" {
		return TokenBoolLiteral
	}
	return TokenIdent
}

func (l *Lexer) addToken(kind TokenKind) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Lexeme: l.source[l.start:l.pos],
		Line:   l.line,
		Column: l.column - (l.pos - l.start),
	})
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	l.column++
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() {
		return false
	}
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if r != expected {
		return false
	}
	l.pos += size
	l.column++
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isAlpha(r rune) bool {
	return unicode.IsLetter(r)
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
