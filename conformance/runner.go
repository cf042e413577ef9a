package conformance

import (
	"fmt"

	"github.com/gogpu/glslconf/shader"
)

// Case pairs a vertex and fragment shader with the expected compile and
// link outcomes. Cases are declarative records; the Runner consumes them.
type Case struct {
	VertexShader   string // registry id
	FragmentShader string // registry id

	ExpectVertexCompile   bool
	ExpectFragmentCompile bool
	ExpectLink            bool

	Message string
}

// Runner executes conformance cases against a shader source registry.
//
// Each case is an independent, synchronous compile+link attempt: compile
// failures are caught and compared against expectations, never propagated.
type Runner struct {
	registry *Registry
}

// NewRunner creates a runner over the given registry.
func NewRunner(registry *Registry) *Runner {
	return &Runner{registry: registry}
}

// RunTests runs every case and returns the report. expectedSubtests is the
// number of cases the fixture intends to run; a mismatch with the executed
// count is recorded as a setup problem so missing or extra cases surface
// as a harness defect rather than silent passes.
func (r *Runner) RunTests(cases []Case, expectedSubtests int) *Report {
	report := &Report{}

	for _, c := range cases {
		report.Results = append(report.Results, r.runCase(c))
	}

	if len(cases) != expectedSubtests {
		report.SetupProblems = append(report.SetupProblems,
			fmt.Sprintf("expected %d subtests, ran %d", expectedSubtests, len(cases)))
	}

	return report
}

func (r *Runner) runCase(c Case) Result {
	result := Result{Message: c.Message}

	vsSource, err := r.resolveStage(c.VertexShader, shader.StageVertex)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	fsSource, err := r.resolveStage(c.FragmentShader, shader.StageFragment)
	if err != nil {
		result.Detail = err.Error()
		return result
	}

	vs, vsErr := shader.Compile(vsSource.Text, shader.StageVertex)
	if ok := vsErr == nil; ok != c.ExpectVertexCompile {
		result.Detail = compileMismatch("vertex", c.ExpectVertexCompile, vsErr)
		return result
	}

	fs, fsErr := shader.Compile(fsSource.Text, shader.StageFragment)
	if ok := fsErr == nil; ok != c.ExpectFragmentCompile {
		result.Detail = compileMismatch("fragment", c.ExpectFragmentCompile, fsErr)
		return result
	}

	// Linking is attempted only when both compiles matched expectations.
	// A program with a failed shader attached can never link.
	linked := false
	var linkErr error
	if vs != nil && fs != nil {
		linkErr = shader.Link(vs, fs)
		linked = linkErr == nil
	}

	if linked != c.ExpectLink {
		if c.ExpectLink {
			detail := "expected program to link, but linking failed"
			if linkErr != nil {
				detail = fmt.Sprintf("expected program to link: %v", linkErr)
			}
			result.Detail = detail
		} else {
			result.Detail = "expected linking to fail, but the program linked"
		}
		return result
	}

	result.Passed = true
	return result
}

// resolveStage resolves a registry id and checks the registered stage.
func (r *Runner) resolveStage(id string, want shader.Stage) (ShaderSource, error) {
	src, err := r.registry.Resolve(id)
	if err != nil {
		return ShaderSource{}, err
	}
	if src.Stage != want {
		return ShaderSource{}, fmt.Errorf("shader source %q is a %s shader, expected %s", id, src.Stage, want)
	}
	return src, nil
}

func compileMismatch(stage string, expected bool, err error) string {
	if expected {
		return fmt.Sprintf("expected %s shader to compile: %v", stage, err)
	}
	return fmt.Sprintf("expected %s shader compilation to fail, but it compiled", stage)
}
