// Package glsl provides GLSL ES parsing.
package glsl

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenUintLiteral
	TokenFloatLiteral
	TokenBoolLiteral

	// Operators
	TokenPlus                // +
	TokenMinus               // -
	TokenStar                // *
	TokenSlash               // /
	TokenPercent             // %
	TokenAmpersand           // &
	TokenPipe                // |
	TokenCaret               // ^
	TokenTilde               // ~
	TokenBang                // !
	TokenEqual               // =
	TokenLess                // <
	TokenGreater             // >
	TokenDot                 // .
	TokenComma               // ,
	TokenColon               // :
	TokenSemicolon           // ;
	TokenQuestion            // ?
	TokenPlusPlus            // ++
	TokenMinusMinus          // --
	TokenEqualEqual          // ==
	TokenBangEqual           // !=
	TokenLessEqual           // <=
	TokenGreaterEqual        // >=
	TokenAmpAmp              // &&
	TokenPipePipe            // ||
	TokenCaretCaret          // ^^
	TokenLessLess            // <<
	TokenGreaterGreater      // >>
	TokenPlusEqual           // +=
	TokenMinusEqual          // -=
	TokenStarEqual           // *=
	TokenSlashEqual          // /=
	TokenPercentEqual        // %=
	TokenAmpEqual            // &=
	TokenPipeEqual           // |=
	TokenCaretEqual          // ^=
	TokenLessLessEqual       // <<=
	TokenGreaterGreaterEqual // >>=

	// Delimiters
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftBracket  // [
	TokenRightBracket // ]

	// Storage and parameter qualifiers
	TokenConst
	TokenUniform
	TokenIn
	TokenOut
	TokenInOut
	TokenAttribute // ES 1.00 only; reserved in ES 3.00
	TokenVarying   // ES 1.00 only; reserved in ES 3.00

	// Invariance and interpolation qualifiers
	TokenInvariant
	TokenCentroid
	TokenFlat
	TokenSmooth
	TokenLayout

	// Precision qualifiers
	TokenPrecision
	TokenHighp
	TokenMediump
	TokenLowp

	// Control flow keywords
	TokenBreak
	TokenCase
	TokenContinue
	TokenDefault
	TokenDiscard
	TokenDo
	TokenElse
	TokenFor
	TokenIf
	TokenReturn
	TokenSwitch
	TokenWhile

	TokenStruct

	// Reserved for future use; using one is a compile error
	TokenReserved

	// Type keywords
	TokenVoid
	TokenFloat
	TokenInt
	TokenUint
	TokenBool
	TokenVec2
	TokenVec3
	TokenVec4
	TokenIVec2
	TokenIVec3
	TokenIVec4
	TokenUVec2
	TokenUVec3
	TokenUVec4
	TokenBVec2
	TokenBVec3
	TokenBVec4
	TokenMat2
	TokenMat3
	TokenMat4
	TokenMat2x2
	TokenMat2x3
	TokenMat2x4
	TokenMat3x2
	TokenMat3x3
	TokenMat3x4
	TokenMat4x2
	TokenMat4x3
	TokenMat4x4
	TokenSampler2D
	TokenSampler3D
	TokenSamplerCube
	TokenSampler2DShadow
	TokenSamplerCubeShadow
	TokenSampler2DArray
	TokenSampler2DArrayShadow
	TokenISampler2D
	TokenISampler3D
	TokenISamplerCube
	TokenISampler2DArray
	TokenUSampler2D
	TokenUSampler3D
	TokenUSamplerCube
	TokenUSampler2DArray
)

// String returns the string representation of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "Error"
	case TokenIdent:
		return "Ident"
	case TokenIntLiteral:
		return "IntLiteral"
	case TokenUintLiteral:
		return "UintLiteral"
	case TokenFloatLiteral:
		return "FloatLiteral"
	case TokenBoolLiteral:
		return "BoolLiteral"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenQuestion:
		return "?"
	case TokenSemicolon:
		return ";"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	case TokenLeftBrace:
		return "{"
	case TokenRightBrace:
		return "}"
	case TokenLeftBracket:
		return "["
	case TokenRightBracket:
		return "]"
	case TokenConst:
		return "const"
	case TokenUniform:
		return "uniform"
	case TokenIn:
		return "in"
	case TokenOut:
		return "out"
	case TokenInOut:
		return "inout"
	case TokenAttribute:
		return "attribute"
	case TokenVarying:
		return "varying"
	case TokenInvariant:
		return "invariant"
	case TokenCentroid:
		return "centroid"
	case TokenFlat:
		return "flat"
	case TokenSmooth:
		return "smooth"
	case TokenLayout:
		return "layout"
	case TokenPrecision:
		return "precision"
	case TokenHighp:
		return "highp"
	case TokenMediump:
		return "mediump"
	case TokenLowp:
		return "lowp"
	case TokenStruct:
		return "struct"
	case TokenIf:
		return "if"
	case TokenElse:
		return "else"
	case TokenFor:
		return "for"
	case TokenWhile:
		return "while"
	case TokenDo:
		return "do"
	case TokenReturn:
		return "return"
	case TokenDiscard:
		return "discard"
	case TokenVoid:
		return "void"
	case TokenFloat:
		return "float"
	case TokenInt:
		return "int"
	case TokenUint:
		return "uint"
	case TokenBool:
		return "bool"
	case TokenReserved:
		return "Reserved"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Line   int
	Column int
}

// Span represents a source code location span.
type Span struct {
	Start Position
	End   Position
}

// Position represents a position in source code.
type Position struct {
	Line   int
	Column int
	Offset int
}

func tokenSpan(tok Token) Span {
	return Span{Start: Position{Line: tok.Line, Column: tok.Column}}
}
