package glsl

import (
	"strconv"
	"strings"
)

// evalCondition evaluates a #if/#elif controlling expression.
//
// The expression is evaluated over integers: defined(X) is replaced first,
// then remaining macros are expanded, then the result is parsed with the
// usual C preprocessor operator set. Undefined identifiers evaluate to 0.
func (pp *Preprocessor) evalCondition(text string, line int) (int64, *SourceError) {
	text = pp.replaceDefined(text)
	text = pp.expand(text, nil)

	lexer := NewLexer(text)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return 0, NewSourceErrorf(Span{Start: Position{Line: line, Column: 1}}, pp.source,
			"invalid #if expression: %v", err)
	}

	ev := &ppEval{tokens: tokens, line: line, source: pp.source}
	v := ev.ternary()
	if ev.err != nil {
		return 0, ev.err
	}
	if ev.peek().Kind != TokenEOF {
		return 0, NewSourceErrorf(Span{Start: Position{Line: line, Column: 1}}, pp.source,
			"unexpected %q in #if expression", ev.peek().Lexeme)
	}
	return v, nil
}

// replaceDefined rewrites defined(NAME) and defined NAME to 1 or 0.
func (pp *Preprocessor) replaceDefined(text string) string {
	var sb strings.Builder
	i := 0
	for i < len(text) {
		idx := strings.Index(text[i:], "defined")
		if idx < 0 {
			sb.WriteString(text[i:])
			break
		}
		idx += i

		// Must be a whole word.
		before := idx == 0 || !(isAlphaNumeric(rune(text[idx-1])) || text[idx-1] == '_')
		afterIdx := idx + len("defined")
		after := afterIdx >= len(text) || !(isAlphaNumeric(rune(text[afterIdx])) || text[afterIdx] == '_')
		if !before || !after {
			sb.WriteString(text[i:afterIdx])
			i = afterIdx
			continue
		}

		sb.WriteString(text[i:idx])
		j := afterIdx
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}
		paren := j < len(text) && text[j] == '('
		if paren {
			j++
			for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
		}
		nameStart := j
		for j < len(text) && (isAlphaNumeric(rune(text[j])) || text[j] == '_') {
			j++
		}
		name := text[nameStart:j]
		if paren {
			for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			if j < len(text) && text[j] == ')' {
				j++
			}
		}
		if _, ok := pp.macros[name]; ok {
			sb.WriteString("1")
		} else {
			sb.WriteString("0")
		}
		i = j
	}
	return sb.String()
}

// ppEval is a tiny precedence-climbing evaluator for preprocessor
// expressions.
type ppEval struct {
	tokens []Token
	pos    int
	line   int
	source string
	err    *SourceError
}

func (ev *ppEval) peek() Token {
	return ev.tokens[ev.pos]
}

func (ev *ppEval) advance() Token {
	tok := ev.tokens[ev.pos]
	if tok.Kind != TokenEOF {
		ev.pos++
	}
	return tok
}

func (ev *ppEval) fail(format string, args ...interface{}) int64 {
	if ev.err == nil {
		ev.err = NewSourceErrorf(Span{Start: Position{Line: ev.line, Column: 1}}, ev.source, format, args...)
	}
	return 0
}

func (ev *ppEval) ternary() int64 {
	cond := ev.logicalOr()
	if ev.peek().Kind != TokenQuestion {
		return cond
	}
	ev.advance()
	a := ev.ternary()
	if ev.peek().Kind != TokenColon {
		return ev.fail("expected ':' in #if expression")
	}
	ev.advance()
	b := ev.ternary()
	if cond != 0 {
		return a
	}
	return b
}

func (ev *ppEval) logicalOr() int64 {
	v := ev.logicalAnd()
	for ev.peek().Kind == TokenPipePipe {
		ev.advance()
		rhs := ev.logicalAnd()
		v = boolToInt(v != 0 || rhs != 0)
	}
	return v
}

func (ev *ppEval) logicalAnd() int64 {
	v := ev.bitwise()
	for ev.peek().Kind == TokenAmpAmp {
		ev.advance()
		rhs := ev.bitwise()
		v = boolToInt(v != 0 && rhs != 0)
	}
	return v
}

func (ev *ppEval) bitwise() int64 {
	v := ev.equality()
	for {
		switch ev.peek().Kind {
		case TokenAmpersand:
			ev.advance()
			v &= ev.equality()
		case TokenPipe:
			ev.advance()
			v |= ev.equality()
		case TokenCaret:
			ev.advance()
			v ^= ev.equality()
		default:
			return v
		}
	}
}

func (ev *ppEval) equality() int64 {
	v := ev.relational()
	for {
		switch ev.peek().Kind {
		case TokenEqualEqual:
			ev.advance()
			v = boolToInt(v == ev.relational())
		case TokenBangEqual:
			ev.advance()
			v = boolToInt(v != ev.relational())
		default:
			return v
		}
	}
}

func (ev *ppEval) relational() int64 {
	v := ev.shift()
	for {
		switch ev.peek().Kind {
		case TokenLess:
			ev.advance()
			v = boolToInt(v < ev.shift())
		case TokenLessEqual:
			ev.advance()
			v = boolToInt(v <= ev.shift())
		case TokenGreater:
			ev.advance()
			v = boolToInt(v > ev.shift())
		case TokenGreaterEqual:
			ev.advance()
			v = boolToInt(v >= ev.shift())
		default:
			return v
		}
	}
}

func (ev *ppEval) shift() int64 {
	v := ev.additive()
	for {
		switch ev.peek().Kind {
		case TokenLessLess:
			ev.advance()
			v <<= uint(ev.additive())
		case TokenGreaterGreater:
			ev.advance()
			v >>= uint(ev.additive())
		default:
			return v
		}
	}
}

func (ev *ppEval) additive() int64 {
	v := ev.multiplicative()
	for {
		switch ev.peek().Kind {
		case TokenPlus:
			ev.advance()
			v += ev.multiplicative()
		case TokenMinus:
			ev.advance()
			v -= ev.multiplicative()
		default:
			return v
		}
	}
}

func (ev *ppEval) multiplicative() int64 {
	v := ev.unary()
	for {
		switch ev.peek().Kind {
		case TokenStar:
			ev.advance()
			v *= ev.unary()
		case TokenSlash:
			ev.advance()
			rhs := ev.unary()
			if rhs == 0 {
				return ev.fail("division by zero in #if expression")
			}
			v /= rhs
		case TokenPercent:
			ev.advance()
			rhs := ev.unary()
			if rhs == 0 {
				return ev.fail("division by zero in #if expression")
			}
			v %= rhs
		default:
			return v
		}
	}
}

func (ev *ppEval) unary() int64 {
	switch ev.peek().Kind {
	case TokenMinus:
		ev.advance()
		return -ev.unary()
	case TokenPlus:
		ev.advance()
		return ev.unary()
	case TokenBang:
		ev.advance()
		return boolToInt(ev.unary() == 0)
	case TokenTilde:
		ev.advance()
		return ^ev.unary()
	}
	return ev.primary()
}

func (ev *ppEval) primary() int64 {
	tok := ev.advance()
	switch tok.Kind {
	case TokenIntLiteral, TokenUintLiteral:
		v, err := strconv.ParseInt(strings.TrimRight(tok.Lexeme, "uU"), 0, 64)
		if err != nil {
			return ev.fail("invalid integer %q in #if expression", tok.Lexeme)
		}
		return v
	case TokenLeftParen:
		v := ev.ternary()
		if ev.peek().Kind != TokenRightParen {
			return ev.fail("expected ')' in #if expression")
		}
		ev.advance()
		return v
	case TokenIdent, TokenReserved:
		// Undefined identifiers evaluate to 0.
		return 0
	default:
		return ev.fail("unexpected %q in #if expression", tok.Lexeme)
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
