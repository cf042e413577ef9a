package glsl

import (
	"testing"
)

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"+ - * /", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenEOF}},
		{"( ) { }", []TokenKind{TokenLeftParen, TokenRightParen, TokenLeftBrace, TokenRightBrace, TokenEOF}},
		{"[ ] , .", []TokenKind{TokenLeftBracket, TokenRightBracket, TokenComma, TokenDot, TokenEOF}},
		{": ; ?", []TokenKind{TokenColon, TokenSemicolon, TokenQuestion, TokenEOF}},
	}

	for _, tt := range tests {
		lexer := NewLexer(tt.input)
		tokens, err := lexer.Tokenize()
		if err != nil {
			t.Errorf("Unexpected error: %v", err)
			continue
		}

		if len(tokens) != len(tt.expected) {
			t.Errorf("Expected %d tokens, got %d", len(tt.expected), len(tokens))
			continue
		}

		for i, tok := range tokens {
			if tok.Kind != tt.expected[i] {
				t.Errorf("Token %d: expected %v, got %v", i, tt.expected[i], tok.Kind)
			}
		}
	}
}

func TestLexerOperators(t *testing.T) {
	input := "== != <= >= && || ^^ << >> ++ -- <<= >>="
	expected := []TokenKind{
		TokenEqualEqual, TokenBangEqual, TokenLessEqual, TokenGreaterEqual,
		TokenAmpAmp, TokenPipePipe, TokenCaretCaret, TokenLessLess,
		TokenGreaterGreater, TokenPlusPlus, TokenMinusMinus,
		TokenLessLessEqual, TokenGreaterGreaterEqual, TokenEOF,
	}

	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v", i, expected[i], tok.Kind)
		}
	}
}

func TestLexerKeywords(t *testing.T) {
	input := "in out uniform const attribute varying invariant precision highp mediump lowp"
	expected := []TokenKind{
		TokenIn, TokenOut, TokenUniform, TokenConst, TokenAttribute,
		TokenVarying, TokenInvariant, TokenPrecision, TokenHighp,
		TokenMediump, TokenLowp, TokenEOF,
	}

	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v", i, expected[i], tok.Kind)
		}
	}
}

func TestLexerTypes(t *testing.T) {
	input := "void float int uint bool vec2 vec3 vec4 ivec4 uvec4 bvec4 mat4 sampler2D"
	expected := []TokenKind{
		TokenVoid, TokenFloat, TokenInt, TokenUint, TokenBool,
		TokenVec2, TokenVec3, TokenVec4, TokenIVec4, TokenUVec4,
		TokenBVec4, TokenMat4, TokenSampler2D, TokenEOF,
	}

	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v", i, expected[i], tok.Kind)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input  string
		kind   TokenKind
		lexeme string
	}{
		{"123", TokenIntLiteral, "123"},
		{"0x1F", TokenIntLiteral, "0x1F"},
		{"0755", TokenIntLiteral, "0755"},
		{"42u", TokenUintLiteral, "42u"},
		{"42U", TokenUintLiteral, "42U"},
		{"1.5", TokenFloatLiteral, "1.5"},
		{"1.", TokenFloatLiteral, "1."},
		{".5", TokenFloatLiteral, ".5"},
		{"1e10", TokenFloatLiteral, "1e10"},
		{"1.5e-3", TokenFloatLiteral, "1.5e-3"},
		{"3.14f", TokenFloatLiteral, "3.14f"},
	}

	for _, tt := range tests {
		lexer := NewLexer(tt.input)
		tokens, err := lexer.Tokenize()
		if err != nil {
			t.Errorf("Input %q: unexpected error: %v", tt.input, err)
			continue
		}

		if len(tokens) != 2 { // number + EOF
			t.Errorf("Input %q: expected 2 tokens, got %d", tt.input, len(tokens))
			continue
		}

		if tokens[0].Kind != tt.kind {
			t.Errorf("Input %q: expected kind %v, got %v", tt.input, tt.kind, tokens[0].Kind)
		}

		if tokens[0].Lexeme != tt.lexeme {
			t.Errorf("Input %q: expected lexeme %q, got %q", tt.input, tt.lexeme, tokens[0].Lexeme)
		}
	}
}

func TestLexerBoolLiterals(t *testing.T) {
	lexer := NewLexer("true false")
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(tokens) != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(tokens))
	}
	for i := 0; i < 2; i++ {
		if tokens[i].Kind != TokenBoolLiteral {
			t.Errorf("Token %d: expected BoolLiteral, got %v", i, tokens[i].Kind)
		}
	}
}

func TestLexerReservedWords(t *testing.T) {
	// Reserved words from the future-use list must surface as a
	// distinct kind so the parser can reject them.
	for _, word := range []string{"double", "goto", "typedef", "sampler1D", "half"} {
		lexer := NewLexer(word)
		tokens, err := lexer.Tokenize()
		if err != nil {
			t.Fatalf("Input %q: unexpected error: %v", word, err)
		}
		if tokens[0].Kind != TokenReserved {
			t.Errorf("Input %q: expected Reserved, got %v", word, tokens[0].Kind)
		}
	}
}

func TestLexerIdentifiers(t *testing.T) {
	input := "foo _bar baz123 gl_Position a_position v_varying"
	expected := []string{"foo", "_bar", "baz123", "gl_Position", "a_position", "v_varying"}

	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(tokens) != len(expected)+1 { // identifiers + EOF
		t.Fatalf("Expected %d tokens, got %d", len(expected)+1, len(tokens))
	}

	for i, name := range expected {
		if tokens[i].Kind != TokenIdent {
			t.Errorf("Token %d: expected Ident, got %v", i, tokens[i].Kind)
		}
		if tokens[i].Lexeme != name {
			t.Errorf("Token %d: expected %q, got %q", i, name, tokens[i].Lexeme)
		}
	}
}

func TestLexerComments(t *testing.T) {
	input := `foo // this is a comment
bar /* block comment */ baz
qux`

	expected := []string{"foo", "bar", "baz", "qux"}

	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	identTokens := make([]Token, 0)
	for _, tok := range tokens {
		if tok.Kind == TokenIdent {
			identTokens = append(identTokens, tok)
		}
	}

	if len(identTokens) != len(expected) {
		t.Fatalf("Expected %d identifiers, got %d", len(expected), len(identTokens))
	}

	for i, name := range expected {
		if identTokens[i].Lexeme != name {
			t.Errorf("Identifier %d: expected %q, got %q", i, name, identTokens[i].Lexeme)
		}
	}
}

func TestLexerBlockCommentsDoNotNest(t *testing.T) {
	// GLSL block comments end at the first "*/".
	lexer := NewLexer("foo /* a /* b */ bar")
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var idents []string
	for _, tok := range tokens {
		if tok.Kind == TokenIdent {
			idents = append(idents, tok.Lexeme)
		}
	}
	if len(idents) != 2 || idents[0] != "foo" || idents[1] != "bar" {
		t.Errorf("Expected identifiers [foo bar], got %v", idents)
	}
}

func TestLexerPositions(t *testing.T) {
	input := "in vec4\na_position;"

	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// in(1:1) vec4(1:4) a_position(2:1) ;(2:11)
	positions := []struct{ line, column int }{
		{1, 1}, {1, 4}, {2, 1}, {2, 11},
	}
	for i, pos := range positions {
		if tokens[i].Line != pos.line || tokens[i].Column != pos.column {
			t.Errorf("Token %d (%q): expected %d:%d, got %d:%d",
				i, tokens[i].Lexeme, pos.line, pos.column, tokens[i].Line, tokens[i].Column)
		}
	}
}

func TestLexerShaderBody(t *testing.T) {
	input := `precision mediump float;
in vec4 v_varying;
void main() {
    gl_FragColor = v_varying * 2.0;
}`

	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(tokens) < 10 {
		t.Errorf("Expected more tokens for shader, got %d", len(tokens))
	}

	expectedStart := []TokenKind{
		TokenPrecision, TokenMediump, TokenFloat, TokenSemicolon,
		TokenIn, TokenVec4, TokenIdent, TokenSemicolon,
	}

	for i, expected := range expectedStart {
		if tokens[i].Kind != expected {
			t.Errorf("Token %d: expected %v, got %v (lexeme: %q)",
				i, expected, tokens[i].Kind, tokens[i].Lexeme)
		}
	}
}

func TestLexerStrayHash(t *testing.T) {
	// Directives are consumed before lexing; a leftover '#' is an error
	// token, not a lexer failure.
	lexer := NewLexer("int x; # junk")
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	found := false
	for _, tok := range tokens {
		if tok.Kind == TokenError {
			found = true
		}
	}
	if !found {
		t.Error("Expected an error token for stray '#'")
	}
}
