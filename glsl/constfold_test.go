package glsl

import (
	"testing"

	"github.com/chewxy/math32"
)

// foldSource parses source as a single expression and folds it.
func foldSource(t *testing.T, source string, consts map[string]ConstValue) (ConstValue, bool) {
	t.Helper()
	lexer := NewLexer(source)
	tokens, err := lexer.Tokenize()
	if err != nil {
		t.Fatalf("Lexer error: %v", err)
	}
	parser := NewParser(tokens)
	expr, perr := parser.conditionalExpression()
	if perr != nil {
		t.Fatalf("Parse error: %v", perr)
	}
	folder := &Folder{Consts: consts}
	return folder.Fold(expr)
}

func TestFoldIntExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 / 4", 2},
		{"10 % 3", 1},
		{"-3", -3},
		{"1 << 4", 16},
		{"0xFF & 0x0F", 15},
		{"8 >> 2", 2},
		{"~0 + 1", 0},
		{"int(2.7)", 2},
	}

	for _, tt := range tests {
		v, ok := foldSource(t, tt.input, nil)
		if !ok {
			t.Errorf("Input %q: fold failed", tt.input)
			continue
		}
		if v.Kind != ConstInt {
			t.Errorf("Input %q: expected int, got kind %v", tt.input, v.Kind)
			continue
		}
		if v.Int != tt.want {
			t.Errorf("Input %q: expected %d, got %d", tt.input, tt.want, v.Int)
		}
	}
}

func TestFoldFloatExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  float32
	}{
		{"1.0 / 2.0", 0.5},
		{"2.0 * 3", 6},
		{"float(5)", 5},
		{"sqrt(16.0)", 4},
		{"pow(2.0, 10.0)", 1024},
		{"floor(2.7)", 2},
		{"ceil(2.1)", 3},
		{"abs(-3.5)", 3.5},
		{"sign(-2.0)", -1},
		{"min(3.0, 1.0)", 1},
		{"max(3.0, 1.0)", 3},
		{"clamp(5.0, 0.0, 1.0)", 1},
		{"mix(0.0, 10.0, 0.25)", 2.5},
		{"step(0.5, 0.25)", 0},
		{"fract(2.75)", 0.75},
		{"exp2(3.0)", 8},
		{"mod(7.0, 3.0)", 1},
		{"radians(180.0)", 180 * (math32.Pi / 180)},
	}

	for _, tt := range tests {
		v, ok := foldSource(t, tt.input, nil)
		if !ok {
			t.Errorf("Input %q: fold failed", tt.input)
			continue
		}
		if v.Kind != ConstFloat {
			t.Errorf("Input %q: expected float, got kind %v", tt.input, v.Kind)
			continue
		}
		if v.Flt != tt.want {
			t.Errorf("Input %q: expected %v, got %v", tt.input, tt.want, v.Flt)
		}
	}
}

func TestFoldBoolExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"!true", false},
		{"true && false", false},
		{"true || false", true},
		{"true ^^ true", false},
		{"1 < 2", true},
		{"2.0 >= 3.0", false},
		{"1 == 1", true},
		{"1.5 != 1.5", false},
	}

	for _, tt := range tests {
		v, ok := foldSource(t, tt.input, nil)
		if !ok {
			t.Errorf("Input %q: fold failed", tt.input)
			continue
		}
		if v.Kind != ConstBool {
			t.Errorf("Input %q: expected bool, got kind %v", tt.input, v.Kind)
			continue
		}
		if v.Bool != tt.want {
			t.Errorf("Input %q: expected %v, got %v", tt.input, tt.want, v.Bool)
		}
	}
}

func TestFoldTernary(t *testing.T) {
	v, ok := foldSource(t, "true ? 1 : 2", nil)
	if !ok || v.Int != 1 {
		t.Errorf("Expected 1, got %v (ok=%v)", v.Int, ok)
	}
	v, ok = foldSource(t, "1 > 2 ? 1 : 2", nil)
	if !ok || v.Int != 2 {
		t.Errorf("Expected 2, got %v (ok=%v)", v.Int, ok)
	}
}

func TestFoldNamedConstants(t *testing.T) {
	consts := map[string]ConstValue{
		"N": {Kind: ConstInt, Int: 4},
	}
	v, ok := foldSource(t, "N * 2", consts)
	if !ok {
		t.Fatal("fold failed")
	}
	if v.Int != 8 {
		t.Errorf("Expected 8, got %d", v.Int)
	}
}

func TestFoldUnsignedKind(t *testing.T) {
	v, ok := foldSource(t, "3u + 1", nil)
	if !ok {
		t.Fatal("fold failed")
	}
	if v.Kind != ConstUint {
		t.Errorf("Expected uint result, got kind %v", v.Kind)
	}
	if v.Int != 4 {
		t.Errorf("Expected 4, got %d", v.Int)
	}
}

func TestFoldFailures(t *testing.T) {
	inputs := []string{
		"1 / 0",
		"1.0 / 0.0",
		"7 % 0",
		"u_time + 1.0", // not a constant
		"!1",           // logical not on an int
		"texture(s, uv)",
	}

	for _, input := range inputs {
		if _, ok := foldSource(t, input, nil); ok {
			t.Errorf("Input %q: expected fold to fail", input)
		}
	}
}

func TestFoldSinglePrecision(t *testing.T) {
	// Folding runs in float32. The float64 result of the same expression
	// differs in the low bits, so a float64 pipeline would diverge here.
	v, ok := foldSource(t, "0.1 + 0.2", nil)
	if !ok {
		t.Fatal("fold failed")
	}
	want := float32(0.1) + float32(0.2)
	if v.Flt != want {
		t.Errorf("Expected %v, got %v", want, v.Flt)
	}
}
