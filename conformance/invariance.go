package conformance

import (
	"github.com/gogpu/glslconf/shader"
)

// InvarianceSubtests is the number of cases the invariance suite runs.
const InvarianceSubtests = 2

// The invariance suite probes GLSL ES 3.00 §4.6.1: only vertex shader
// outputs can be declared invariant. Both failing fragment shaders pair
// with a valid vertex shader that declares an invariant varying.

const vertexShaderInvariant = `#version 300 es
precision mediump float;
in vec4 a_position;
invariant out vec4 v_varying;
void main() {
    v_varying = a_position;
    gl_Position = a_position;
}
`

// The global pragma is legal on the vertex side; registered so the
// asymmetry the failing cases probe is visible in the fixture.
const vertexShaderGlobalInvariant = `#version 300 es
#pragma STDGL invariant(all)
precision mediump float;
in vec4 a_position;
out vec4 v_varying;
void main() {
    v_varying = a_position;
    gl_Position = a_position;
}
`

const fragmentShaderGlobalInvariant = `#version 300 es
#pragma STDGL invariant(all)
precision mediump float;
in vec4 v_varying;
out vec4 my_FragColor;
void main() {
    my_FragColor = v_varying;
}
`

const fragmentShaderInputInvariant = `#version 300 es
precision mediump float;
invariant in vec4 v_varying;
out vec4 my_FragColor;
void main() {
    my_FragColor = v_varying;
}
`

// InvarianceSuite returns the registry and cases of the invariance suite.
func InvarianceSuite() (*Registry, []Case) {
	registry := NewRegistry()
	// Registration of fixed sources cannot collide.
	_ = registry.Register("vertexShaderInvariant", shader.StageVertex, vertexShaderInvariant)
	_ = registry.Register("vertexShaderGlobalInvariant", shader.StageVertex, vertexShaderGlobalInvariant)
	_ = registry.Register("fragmentShaderGlobalInvariant", shader.StageFragment, fragmentShaderGlobalInvariant)
	_ = registry.Register("fragmentShaderInputInvariant", shader.StageFragment, fragmentShaderInputInvariant)

	cases := []Case{
		{
			VertexShader:          "vertexShaderInvariant",
			FragmentShader:        "fragmentShaderGlobalInvariant",
			ExpectVertexCompile:   true,
			ExpectFragmentCompile: false,
			ExpectLink:            false,
			Message:               "vertex shader with invariant varying and fragment shader with invariant(all) pragma must fail",
		},
		{
			VertexShader:          "vertexShaderInvariant",
			FragmentShader:        "fragmentShaderInputInvariant",
			ExpectVertexCompile:   true,
			ExpectFragmentCompile: false,
			ExpectLink:            false,
			Message:               "vertex shader with invariant varying and fragment shader with invariant in variable must fail",
		},
	}

	return registry, cases
}

// RunInvariance runs the invariance suite and returns its report.
func RunInvariance() *Report {
	registry, cases := InvarianceSuite()
	return NewRunner(registry).RunTests(cases, InvarianceSubtests)
}
