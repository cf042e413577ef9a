package glsl

import (
	"fmt"
	"strconv"
	"strings"
)

// Version identifies the shading language version declared by a shader.
type Version struct {
	Number int  // 100 or 300
	ES     bool // true for "#version 300 es"
}

// String returns the version as it appears in a #version directive.
func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("%d es", v.Number)
	}
	return strconv.Itoa(v.Number)
}

// Pragma is a #pragma directive encountered during preprocessing.
type Pragma struct {
	Text string // directive body, e.g. "STDGL invariant(all)"
	Span Span
}

// Extension is a #extension directive.
type Extension struct {
	Name     string
	Behavior string // require, enable, warn, disable
	Span     Span
}

// Output is the result of preprocessing a shader.
type Output struct {
	// Source is the preprocessed text. Directive lines are replaced by
	// blank lines so token positions match the original source.
	Source string

	// Version is the declared shading language version.
	// A shader with no #version directive targets 100.
	Version Version

	// InvariantAll is set when "#pragma STDGL invariant(all)" was seen.
	InvariantAll bool

	Pragmas    []Pragma
	Extensions []Extension
}

type macro struct {
	params []string // nil for object-like macros
	body   string
}

// Preprocessor handles the GLSL preprocessing stage: line continuations,
// comments, #version, #pragma, #extension, #define/#undef, conditionals,
// and #error.
type Preprocessor struct {
	source string
	out    *Output
	macros map[string]macro
	conds  []ppCond
	errors SourceErrors

	sawVersion bool
	sawCode    bool // a non-directive token has been emitted
}

type ppCond struct {
	parentActive bool
	active       bool
	taken        bool // a branch of this #if chain has been active
	seenElse     bool
}

// NewPreprocessor creates a preprocessor for the given source.
func NewPreprocessor(source string) *Preprocessor {
	return &Preprocessor{
		source: source,
		out:    &Output{Version: Version{Number: 100, ES: true}},
		macros: map[string]macro{
			"GL_ES": {body: "1"},
		},
	}
}

// Preprocess runs the full preprocessing stage over source.
func Preprocess(source string) (*Output, error) {
	pp := NewPreprocessor(source)
	return pp.Run()
}

// Run executes preprocessing and returns the output, or the accumulated
// directive errors.
func (pp *Preprocessor) Run() (*Output, error) {
	stripped := stripComments(spliceLines(pp.source))
	lines := strings.Split(stripped, "\n")

	var sb strings.Builder
	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			pp.directive(trimmed[1:], lineNum)
			sb.WriteString("\n")
			continue
		}

		if !pp.active() {
			sb.WriteString("\n")
			continue
		}

		if trimmed != "" {
			pp.sawCode = true
		}
		pp.macros["__LINE__"] = macro{body: strconv.Itoa(lineNum)}
		sb.WriteString(pp.expand(line, nil))
		sb.WriteString("\n")
	}

	if len(pp.conds) > 0 {
		pp.errorAt(len(lines), "unterminated #if: missing #endif")
	}

	if pp.errors.HasErrors() {
		return nil, pp.errors
	}
	pp.out.Source = sb.String()
	return pp.out, nil
}

// active reports whether the current conditional branch emits code.
func (pp *Preprocessor) active() bool {
	for _, c := range pp.conds {
		if !c.active || !c.parentActive {
			return false
		}
	}
	return true
}

func (pp *Preprocessor) errorAt(line int, format string, args ...interface{}) {
	pp.errors.Add(NewSourceErrorf(Span{Start: Position{Line: line, Column: 1}}, pp.source, format, args...))
}

func (pp *Preprocessor) directive(body string, line int) {
	fields := strings.Fields(body)
	name := ""
	if len(fields) > 0 {
		name = fields[0]
	}
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(body), name))

	// Conditional directives are processed even inside inactive branches.
	switch name {
	case "ifdef", "ifndef", "if":
		pp.pushCond(name, rest, line)
		return
	case "elif":
		pp.elifCond(rest, line)
		return
	case "else":
		pp.elseCond(line)
		return
	case "endif":
		if len(pp.conds) == 0 {
			pp.errorAt(line, "#endif without matching #if")
			return
		}
		pp.conds = pp.conds[:len(pp.conds)-1]
		return
	}

	if !pp.active() {
		return
	}

	switch name {
	case "":
		// A lone '#' is a null directive.
	case "version":
		pp.version(rest, line)
	case "pragma":
		pp.pragma(rest, line)
	case "extension":
		pp.extension(rest, line)
	case "define":
		pp.define(rest, line)
	case "undef":
		if rest == "" {
			pp.errorAt(line, "#undef requires a macro name")
			return
		}
		delete(pp.macros, strings.Fields(rest)[0])
	case "error":
		pp.errorAt(line, "#error: %s", rest)
	case "line":
		// Accepted and ignored; reported positions stay physical.
	default:
		pp.errorAt(line, "unrecognized preprocessor directive #%s", name)
	}
}

func (pp *Preprocessor) version(rest string, line int) {
	if pp.sawVersion {
		pp.errorAt(line, "duplicate #version directive")
		return
	}
	if pp.sawCode || len(pp.out.Pragmas) > 0 || len(pp.out.Extensions) > 0 {
		pp.errorAt(line, "#version must appear before anything else in the shader")
		return
	}
	pp.sawVersion = true

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		pp.errorAt(line, "#version requires a version number")
		return
	}
	num, err := strconv.Atoi(fields[0])
	if err != nil {
		pp.errorAt(line, "invalid version number %q", fields[0])
		return
	}

	switch {
	case num == 100 && len(fields) == 1:
		pp.out.Version = Version{Number: 100, ES: true}
	case num == 300 && len(fields) == 2 && fields[1] == "es":
		pp.out.Version = Version{Number: 300, ES: true}
	case num == 300:
		pp.errorAt(line, `#version 300 requires the "es" profile: use "#version 300 es"`)
		return
	default:
		pp.errorAt(line, "unsupported shading language version %q", rest)
		return
	}
	pp.macros["__VERSION__"] = macro{body: strconv.Itoa(num)}
}

func (pp *Preprocessor) pragma(rest string, line int) {
	span := Span{Start: Position{Line: line, Column: 1}}
	pp.out.Pragmas = append(pp.out.Pragmas, Pragma{Text: rest, Span: span})

	fields := strings.Fields(rest)
	if len(fields) == 0 || fields[0] != "STDGL" {
		// Unknown pragmas are ignored.
		return
	}

	arg := strings.Join(fields[1:], "")
	if arg != "invariant(all)" {
		// Other STDGL pragmas are reserved; ignore them like any
		// unrecognized pragma.
		return
	}
	if pp.sawCode {
		pp.errorAt(line, "#pragma STDGL invariant(all) must appear before any declarations")
		return
	}
	pp.out.InvariantAll = true
}

func (pp *Preprocessor) extension(rest string, line int) {
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		pp.errorAt(line, "#extension requires \"name : behavior\"")
		return
	}
	name := strings.TrimSpace(parts[0])
	behavior := strings.TrimSpace(parts[1])
	switch behavior {
	case "require", "enable", "warn", "disable":
	default:
		pp.errorAt(line, "unknown #extension behavior %q", behavior)
		return
	}
	if behavior == "require" && name != "all" {
		pp.errorAt(line, "extension %q is not supported", name)
		return
	}
	pp.out.Extensions = append(pp.out.Extensions, Extension{
		Name:     name,
		Behavior: behavior,
		Span:     Span{Start: Position{Line: line, Column: 1}},
	})
}

func (pp *Preprocessor) define(rest string, line int) {
	if rest == "" {
		pp.errorAt(line, "#define requires a macro name")
		return
	}

	// Split off the macro name; '(' immediately after it starts a
	// parameter list.
	i := 0
	for i < len(rest) && (isAlphaNumeric(rune(rest[i])) || rest[i] == '_') {
		i++
	}
	name := rest[:i]
	if name == "" {
		pp.errorAt(line, "invalid macro name in #define")
		return
	}
	if strings.HasPrefix(name, "GL_") || strings.HasPrefix(name, "__") {
		pp.errorAt(line, "macro name %q is reserved", name)
		return
	}

	if i < len(rest) && rest[i] == '(' {
		end := strings.IndexByte(rest[i:], ')')
		if end < 0 {
			pp.errorAt(line, "unterminated macro parameter list")
			return
		}
		var params []string
		list := strings.TrimSpace(rest[i+1 : i+end])
		if list != "" {
			for _, p := range strings.Split(list, ",") {
				params = append(params, strings.TrimSpace(p))
			}
		}
		if params == nil {
			params = []string{}
		}
		pp.macros[name] = macro{params: params, body: strings.TrimSpace(rest[i+end+1:])}
		return
	}

	pp.macros[name] = macro{body: strings.TrimSpace(rest[i:])}
}

func (pp *Preprocessor) pushCond(kind, rest string, line int) {
	parentActive := pp.active()
	var active bool
	switch kind {
	case "ifdef", "ifndef":
		if rest == "" {
			pp.errorAt(line, "#%s requires a macro name", kind)
		}
		name := ""
		if fields := strings.Fields(rest); len(fields) > 0 {
			name = fields[0]
		}
		_, defined := pp.macros[name]
		active = defined == (kind == "ifdef")
	case "if":
		v, err := pp.evalCondition(rest, line)
		if err != nil {
			pp.errors.Add(err)
		}
		active = v != 0
	}
	pp.conds = append(pp.conds, ppCond{
		parentActive: parentActive,
		active:       active,
		taken:        active,
	})
}

func (pp *Preprocessor) elifCond(rest string, line int) {
	if len(pp.conds) == 0 {
		pp.errorAt(line, "#elif without matching #if")
		return
	}
	c := &pp.conds[len(pp.conds)-1]
	if c.seenElse {
		pp.errorAt(line, "#elif after #else")
		return
	}
	if c.taken {
		c.active = false
		return
	}
	v, err := pp.evalCondition(rest, line)
	if err != nil {
		pp.errors.Add(err)
	}
	c.active = v != 0
	c.taken = c.active
}

func (pp *Preprocessor) elseCond(line int) {
	if len(pp.conds) == 0 {
		pp.errorAt(line, "#else without matching #if")
		return
	}
	c := &pp.conds[len(pp.conds)-1]
	if c.seenElse {
		pp.errorAt(line, "duplicate #else")
		return
	}
	c.seenElse = true
	c.active = !c.taken
	c.taken = true
}

// expand performs macro substitution over a text line. inUse guards
// against recursive expansion.
func (pp *Preprocessor) expand(line string, inUse map[string]bool) string {
	var sb strings.Builder
	i := 0
	for i < len(line) {
		c := line[i]
		if !isAlpha(rune(c)) && c != '_' {
			sb.WriteByte(c)
			i++
			continue
		}

		start := i
		for i < len(line) && (isAlphaNumeric(rune(line[i])) || line[i] == '_') {
			i++
		}
		word := line[start:i]

		m, ok := pp.macros[word]
		if !ok || inUse[word] {
			sb.WriteString(word)
			continue
		}

		if m.params == nil {
			sb.WriteString(pp.withGuard(word, m.body, inUse))
			continue
		}

		// Function-like macro: require an argument list.
		j := i
		for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
			j++
		}
		if j >= len(line) || line[j] != '(' {
			sb.WriteString(word)
			continue
		}
		args, next, ok := splitMacroArgs(line, j)
		if !ok || len(args) != len(m.params) {
			sb.WriteString(word)
			continue
		}
		body := m.body
		for k, param := range m.params {
			body = substituteParam(body, param, args[k])
		}
		sb.WriteString(pp.withGuard(word, body, inUse))
		i = next
	}
	return sb.String()
}

func (pp *Preprocessor) withGuard(name, body string, inUse map[string]bool) string {
	if inUse == nil {
		inUse = make(map[string]bool)
	}
	inUse[name] = true
	s := pp.expand(body, inUse)
	delete(inUse, name)
	return s
}

// splitMacroArgs parses a parenthesized, comma-separated argument list
// starting at the '(' at line[open]. Returns the arguments, the index past
// the closing ')', and whether the list was well formed.
func splitMacroArgs(line string, open int) ([]string, int, bool) {
	depth := 0
	var args []string
	argStart := open + 1
	for i := open; i < len(line); i++ {
		switch line[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				arg := strings.TrimSpace(line[argStart:i])
				if arg != "" || len(args) > 0 {
					args = append(args, arg)
				}
				return args, i + 1, true
			}
		case ',':
			if depth == 1 {
				args = append(args, strings.TrimSpace(line[argStart:i]))
				argStart = i + 1
			}
		}
	}
	return nil, open, false
}

// substituteParam replaces whole-word occurrences of param in body.
func substituteParam(body, param, arg string) string {
	var sb strings.Builder
	i := 0
	for i < len(body) {
		c := body[i]
		if !isAlpha(rune(c)) && c != '_' {
			sb.WriteByte(c)
			i++
			continue
		}
		start := i
		for i < len(body) && (isAlphaNumeric(rune(body[i])) || body[i] == '_') {
			i++
		}
		word := body[start:i]
		if word == param {
			sb.WriteString(arg)
		} else {
			sb.WriteString(word)
		}
	}
	return sb.String()
}

// spliceLines removes backslash-newline continuations while keeping the
// physical line count so error positions stay stable.
func spliceLines(source string) string {
	if !strings.Contains(source, "\\") {
		return source
	}
	var sb strings.Builder
	pending := 0
	i := 0
	for i < len(source) {
		if source[i] == '\\' && i+1 < len(source) && source[i+1] == '\n' {
			pending++
			i += 2
			continue
		}
		if source[i] == '\\' && i+2 < len(source) && source[i+1] == '\r' && source[i+2] == '\n' {
			pending++
			i += 3
			continue
		}
		if source[i] == '\n' {
			sb.WriteByte('\n')
			for ; pending > 0; pending-- {
				sb.WriteByte('\n')
			}
			i++
			continue
		}
		sb.WriteByte(source[i])
		i++
	}
	for ; pending > 0; pending-- {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripComments blanks out comments before directive parsing. Newlines
// inside block comments are preserved.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	i := 0
	for i < len(source) {
		if source[i] == '/' && i+1 < len(source) {
			switch source[i+1] {
			case '/':
				for i < len(source) && source[i] != '\n' {
					i++
				}
				continue
			case '*':
				i += 2
				// A comment is replaced by a single space.
				sb.WriteByte(' ')
				for i < len(source) {
					if source[i] == '*' && i+1 < len(source) && source[i+1] == '/' {
						i += 2
						break
					}
					if source[i] == '\n' {
						sb.WriteByte('\n')
					}
					i++
				}
				continue
			}
		}
		sb.WriteByte(source[i])
		i++
	}
	return sb.String()
}
