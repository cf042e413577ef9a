package shader

import (
	"github.com/gogpu/glslconf/glsl"
)

// Link checks whether a compiled vertex/fragment pair forms a valid
// program. Returns nil on success or a *LinkError describing every
// interface mismatch found.
//
// The checks mirror the GLES program link rules this project is concerned
// with: matching versions, a main in each stage, and a consistent varying
// interface. Invariance matching applies to ES 1.00, where both sides of
// the interface declare the varying.
func Link(vertex, fragment *Shader) error {
	le := &LinkError{}

	if vertex.Stage != StageVertex {
		le.add("first shader is a %s shader, expected vertex", vertex.Stage)
	}
	if fragment.Stage != StageFragment {
		le.add("second shader is a %s shader, expected fragment", fragment.Stage)
	}
	if len(le.Problems) > 0 {
		return le
	}

	if vertex.Version != fragment.Version {
		le.add("version mismatch: vertex shader is %s, fragment shader is %s",
			vertex.Version, fragment.Version)
	}

	if !vertex.HasMain {
		le.add("vertex shader has no main function")
	}
	if !fragment.HasMain {
		le.add("fragment shader has no main function")
	}

	linkVaryings(vertex, fragment, le)
	linkUniforms(vertex, fragment, le)

	if len(le.Problems) > 0 {
		return le
	}
	return nil
}

// linkVaryings matches every fragment shader input against the vertex
// shader outputs.
func linkVaryings(vertex, fragment *Shader, le *LinkError) {
	es1 := fragment.Version.Number < 300

	for _, in := range fragment.Inputs {
		out := vertex.Output(in.Name)
		if out == nil {
			// An unmatched varying only fails the link when the
			// fragment shader statically uses it.
			if in.StaticUse {
				le.add("varying %q is used in the fragment shader but not declared in the vertex shader", in.Name)
			}
			continue
		}

		if !out.Type.Equal(in.Type) {
			le.add("varying %q has type %s in the vertex shader but %s in the fragment shader",
				in.Name, out.Type, in.Type)
		}
		if out.Interpolation != in.Interpolation {
			le.add("varying %q has mismatched interpolation qualifiers (%s vs %s)",
				in.Name, qualName(out.Interpolation), qualName(in.Interpolation))
		}
		if out.Centroid != in.Centroid {
			le.add("varying %q has mismatched centroid qualification", in.Name)
		}

		// ES 1.00 declares the varying in both stages, and requires the
		// invariance of the two declarations to agree. The vertex-side
		// global pragma counts as declaring every varying invariant.
		if es1 {
			vsInvariant := out.Invariant || vertex.InvariantAll
			fsInvariant := in.Invariant || fragment.InvariantAll
			if vsInvariant != fsInvariant {
				le.add("varying %q has mismatched invariance between the vertex and fragment shaders", in.Name)
			}
		}
	}
}

// linkUniforms checks that uniforms shared by both stages agree on type.
func linkUniforms(vertex, fragment *Shader, le *LinkError) {
	for _, u := range fragment.Uniforms {
		vu := vertex.Uniform(u.Name)
		if vu == nil {
			continue
		}
		if !vu.Type.Equal(u.Type) {
			le.add("uniform %q has type %s in the vertex shader but %s in the fragment shader",
				u.Name, vu.Type, u.Type)
		}
		if vu.Precision != glsl.PrecisionNone && u.Precision != glsl.PrecisionNone &&
			vu.Precision != u.Precision {
			le.add("uniform %q has mismatched precision between the vertex and fragment shaders", u.Name)
		}
	}
}

func qualName(q glsl.InterpolationQualifier) string {
	if q == glsl.InterpolationNone {
		return "smooth"
	}
	return q.String()
}
