package shader

import (
	"fmt"

	"github.com/gogpu/glslconf/glsl"
)

// CompileError reports that a shader failed to compile. It carries every
// diagnostic produced by the frontend and the validator.
type CompileError struct {
	Stage       Stage
	Diagnostics glsl.SourceErrors
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, e.Diagnostics.Error())
}

// FormatAll returns all diagnostics formatted with source context.
func (e *CompileError) FormatAll() string {
	return e.Diagnostics.FormatAll()
}

// LinkError reports that two individually valid shaders failed to link.
type LinkError struct {
	Problems []string
}

// Error implements the error interface.
func (e *LinkError) Error() string {
	if len(e.Problems) == 0 {
		return "link failed"
	}
	if len(e.Problems) == 1 {
		return "link failed: " + e.Problems[0]
	}
	return fmt.Sprintf("link failed: %s (and %d more problems)", e.Problems[0], len(e.Problems)-1)
}

func (e *LinkError) add(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}
