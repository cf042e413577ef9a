package glsl

import (
	"github.com/chewxy/math32"
)

// ConstKind discriminates folded constant values.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstUint
	ConstFloat
	ConstBool
)

// ConstValue is a scalar value computed at compile time.
//
// Float values are carried as float32: GLSL ES evaluates constant
// expressions in single precision, and folding through float64 can produce
// different bits for expressions like pow(2.0, 10.0) - 1.0.
type ConstValue struct {
	Kind ConstKind
	Int  int64
	Flt  float32
	Bool bool
}

// IntVal returns the value as an integer, truncating floats.
func (v ConstValue) IntVal() int64 {
	switch v.Kind {
	case ConstFloat:
		return int64(v.Flt)
	case ConstBool:
		if v.Bool {
			return 1
		}
		return 0
	default:
		return v.Int
	}
}

// FloatVal returns the value as a float32.
func (v ConstValue) FloatVal() float32 {
	switch v.Kind {
	case ConstFloat:
		return v.Flt
	case ConstBool:
		if v.Bool {
			return 1
		}
		return 0
	default:
		return float32(v.Int)
	}
}

// Folder evaluates constant expressions. Named constants resolve through
// Consts; everything else fails the fold.
type Folder struct {
	Consts map[string]ConstValue
}

// Fold evaluates expr to a scalar constant. The second result is false
// when the expression is not a foldable scalar constant expression.
func (f *Folder) Fold(expr Expr) (ConstValue, bool) {
	switch e := expr.(type) {
	case *IntLiteral:
		kind := ConstInt
		if e.Unsigned {
			kind = ConstUint
		}
		return ConstValue{Kind: kind, Int: e.Value}, true

	case *FloatLiteral:
		return ConstValue{Kind: ConstFloat, Flt: float32(e.Value)}, true

	case *BoolLiteral:
		return ConstValue{Kind: ConstBool, Bool: e.Value}, true

	case *Ident:
		if f.Consts == nil {
			return ConstValue{}, false
		}
		v, ok := f.Consts[e.Name]
		return v, ok

	case *UnaryExpr:
		return f.foldUnary(e)

	case *BinaryExpr:
		return f.foldBinary(e)

	case *TernaryExpr:
		cond, ok := f.Fold(e.Cond)
		if !ok || cond.Kind != ConstBool {
			return ConstValue{}, false
		}
		if cond.Bool {
			return f.Fold(e.Then)
		}
		return f.Fold(e.Else)

	case *CallExpr:
		return f.foldCall(e)

	default:
		return ConstValue{}, false
	}
}

func (f *Folder) foldUnary(e *UnaryExpr) (ConstValue, bool) {
	v, ok := f.Fold(e.Expr)
	if !ok {
		return ConstValue{}, false
	}
	switch e.Op {
	case TokenPlus:
		return v, true
	case TokenMinus:
		if v.Kind == ConstFloat {
			return ConstValue{Kind: ConstFloat, Flt: -v.Flt}, true
		}
		return ConstValue{Kind: v.Kind, Int: -v.Int}, true
	case TokenBang:
		if v.Kind != ConstBool {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstBool, Bool: !v.Bool}, true
	case TokenTilde:
		if v.Kind != ConstInt && v.Kind != ConstUint {
			return ConstValue{}, false
		}
		return ConstValue{Kind: v.Kind, Int: ^v.Int}, true
	}
	return ConstValue{}, false
}

//nolint:gocyclo // one case per operator
func (f *Folder) foldBinary(e *BinaryExpr) (ConstValue, bool) {
	lhs, ok := f.Fold(e.Left)
	if !ok {
		return ConstValue{}, false
	}
	rhs, ok := f.Fold(e.Right)
	if !ok {
		return ConstValue{}, false
	}

	// Logical operators work on bools only.
	switch e.Op {
	case TokenAmpAmp, TokenPipePipe, TokenCaretCaret:
		if lhs.Kind != ConstBool || rhs.Kind != ConstBool {
			return ConstValue{}, false
		}
		switch e.Op {
		case TokenAmpAmp:
			return ConstValue{Kind: ConstBool, Bool: lhs.Bool && rhs.Bool}, true
		case TokenPipePipe:
			return ConstValue{Kind: ConstBool, Bool: lhs.Bool || rhs.Bool}, true
		default:
			return ConstValue{Kind: ConstBool, Bool: lhs.Bool != rhs.Bool}, true
		}
	}

	// Implicit int→float promotion when either side is float.
	if lhs.Kind == ConstFloat || rhs.Kind == ConstFloat {
		a, b := lhs.FloatVal(), rhs.FloatVal()
		switch e.Op {
		case TokenPlus:
			return ConstValue{Kind: ConstFloat, Flt: a + b}, true
		case TokenMinus:
			return ConstValue{Kind: ConstFloat, Flt: a - b}, true
		case TokenStar:
			return ConstValue{Kind: ConstFloat, Flt: a * b}, true
		case TokenSlash:
			if b == 0 {
				return ConstValue{}, false
			}
			return ConstValue{Kind: ConstFloat, Flt: a / b}, true
		case TokenEqualEqual:
			return ConstValue{Kind: ConstBool, Bool: a == b}, true
		case TokenBangEqual:
			return ConstValue{Kind: ConstBool, Bool: a != b}, true
		case TokenLess:
			return ConstValue{Kind: ConstBool, Bool: a < b}, true
		case TokenLessEqual:
			return ConstValue{Kind: ConstBool, Bool: a <= b}, true
		case TokenGreater:
			return ConstValue{Kind: ConstBool, Bool: a > b}, true
		case TokenGreaterEqual:
			return ConstValue{Kind: ConstBool, Bool: a >= b}, true
		default:
			return ConstValue{}, false
		}
	}

	if lhs.Kind == ConstBool || rhs.Kind == ConstBool {
		switch e.Op {
		case TokenEqualEqual:
			return ConstValue{Kind: ConstBool, Bool: lhs.Bool == rhs.Bool}, true
		case TokenBangEqual:
			return ConstValue{Kind: ConstBool, Bool: lhs.Bool != rhs.Bool}, true
		}
		return ConstValue{}, false
	}

	kind := lhs.Kind
	if rhs.Kind == ConstUint {
		kind = ConstUint
	}
	a, b := lhs.Int, rhs.Int
	switch e.Op {
	case TokenPlus:
		return ConstValue{Kind: kind, Int: a + b}, true
	case TokenMinus:
		return ConstValue{Kind: kind, Int: a - b}, true
	case TokenStar:
		return ConstValue{Kind: kind, Int: a * b}, true
	case TokenSlash:
		if b == 0 {
			return ConstValue{}, false
		}
		return ConstValue{Kind: kind, Int: a / b}, true
	case TokenPercent:
		if b == 0 {
			return ConstValue{}, false
		}
		return ConstValue{Kind: kind, Int: a % b}, true
	case TokenAmpersand:
		return ConstValue{Kind: kind, Int: a & b}, true
	case TokenPipe:
		return ConstValue{Kind: kind, Int: a | b}, true
	case TokenCaret:
		return ConstValue{Kind: kind, Int: a ^ b}, true
	case TokenLessLess:
		if b < 0 || b > 63 {
			return ConstValue{}, false
		}
		return ConstValue{Kind: kind, Int: a << uint(b)}, true
	case TokenGreaterGreater:
		if b < 0 || b > 63 {
			return ConstValue{}, false
		}
		return ConstValue{Kind: kind, Int: a >> uint(b)}, true
	case TokenEqualEqual:
		return ConstValue{Kind: ConstBool, Bool: a == b}, true
	case TokenBangEqual:
		return ConstValue{Kind: ConstBool, Bool: a != b}, true
	case TokenLess:
		return ConstValue{Kind: ConstBool, Bool: a < b}, true
	case TokenLessEqual:
		return ConstValue{Kind: ConstBool, Bool: a <= b}, true
	case TokenGreater:
		return ConstValue{Kind: ConstBool, Bool: a > b}, true
	case TokenGreaterEqual:
		return ConstValue{Kind: ConstBool, Bool: a >= b}, true
	}
	return ConstValue{}, false
}

// foldCall evaluates builtin functions over scalar constant arguments.
func (f *Folder) foldCall(e *CallExpr) (ConstValue, bool) {
	// Scalar type constructors convert.
	switch e.Kind {
	case TokenFloat, TokenInt, TokenUint, TokenBool:
		if len(e.Args) != 1 {
			return ConstValue{}, false
		}
		v, ok := f.Fold(e.Args[0])
		if !ok {
			return ConstValue{}, false
		}
		switch e.Kind {
		case TokenFloat:
			return ConstValue{Kind: ConstFloat, Flt: v.FloatVal()}, true
		case TokenInt:
			return ConstValue{Kind: ConstInt, Int: v.IntVal()}, true
		case TokenUint:
			return ConstValue{Kind: ConstUint, Int: v.IntVal()}, true
		default:
			return ConstValue{Kind: ConstBool, Bool: v.IntVal() != 0 || (v.Kind == ConstFloat && v.Flt != 0)}, true
		}
	}

	args := make([]float32, len(e.Args))
	for i, arg := range e.Args {
		v, ok := f.Fold(arg)
		if !ok {
			return ConstValue{}, false
		}
		args[i] = v.FloatVal()
	}

	fv, ok := foldBuiltin(e.Callee, args)
	if !ok {
		return ConstValue{}, false
	}
	return ConstValue{Kind: ConstFloat, Flt: fv}, true
}

// foldBuiltin evaluates angle, exponential, and common builtin functions
// over float32 scalars.
func foldBuiltin(name string, args []float32) (float32, bool) {
	unary := map[string]func(float32) float32{
		"radians":     func(x float32) float32 { return x * (math32.Pi / 180) },
		"degrees":     func(x float32) float32 { return x * (180 / math32.Pi) },
		"sin":         math32.Sin,
		"cos":         math32.Cos,
		"tan":         math32.Tan,
		"asin":        math32.Asin,
		"acos":        math32.Acos,
		"exp":         math32.Exp,
		"log":         math32.Log,
		"exp2":        math32.Exp2,
		"log2":        math32.Log2,
		"sqrt":        math32.Sqrt,
		"inversesqrt": func(x float32) float32 { return 1 / math32.Sqrt(x) },
		"abs":         math32.Abs,
		"sign":        signf,
		"floor":       math32.Floor,
		"ceil":        math32.Ceil,
		"fract":       func(x float32) float32 { return x - math32.Floor(x) },
	}
	if fn, ok := unary[name]; ok && len(args) == 1 {
		return fn(args[0]), true
	}

	switch name {
	case "atan":
		switch len(args) {
		case 1:
			return math32.Atan(args[0]), true
		case 2:
			return math32.Atan2(args[0], args[1]), true
		}
	case "pow":
		if len(args) == 2 {
			return math32.Pow(args[0], args[1]), true
		}
	case "mod":
		if len(args) == 2 && args[1] != 0 {
			return args[0] - args[1]*math32.Floor(args[0]/args[1]), true
		}
	case "min":
		if len(args) == 2 {
			return math32.Min(args[0], args[1]), true
		}
	case "max":
		if len(args) == 2 {
			return math32.Max(args[0], args[1]), true
		}
	case "clamp":
		if len(args) == 3 {
			return math32.Min(math32.Max(args[0], args[1]), args[2]), true
		}
	case "mix":
		if len(args) == 3 {
			return args[0]*(1-args[2]) + args[1]*args[2], true
		}
	case "step":
		if len(args) == 2 {
			if args[1] < args[0] {
				return 0, true
			}
			return 1, true
		}
	}
	return 0, false
}

func signf(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
