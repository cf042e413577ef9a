// Command glslconf checks GLSL ES shaders for compile and link conformance.
//
// Usage:
//
//	glslconf [options] [<input>]
//
// Examples:
//
//	glslconf -stage vertex shader.vert      # Compile one shader
//	glslconf -vert a.vert -frag a.frag      # Compile and link a pair
//	glslconf -suite invariance              # Run a builtin suite
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/glslconf"
	"github.com/gogpu/glslconf/conformance"
	"github.com/gogpu/glslconf/shader"
)

var (
	stage   = flag.String("stage", "", "shader stage (vertex or fragment); inferred from extension when empty")
	vert    = flag.String("vert", "", "vertex shader file for link checking")
	frag    = flag.String("frag", "", "fragment shader file for link checking")
	suite   = flag.String("suite", "", "run a builtin conformance suite (invariance)")
	version = flag.Bool("version", false, "print version")
)

const glslconfVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("glslconf version %s\n", glslconfVersion)
		return
	}

	switch {
	case *suite != "":
		runSuite(*suite)
	case *vert != "" || *frag != "":
		runLink(*vert, *frag)
	default:
		runCompile(flag.Args())
	}
}

func runSuite(name string) {
	if name != "invariance" {
		fmt.Fprintf(os.Stderr, "Error: unknown suite %q\n", name)
		os.Exit(1)
	}
	report := conformance.RunInvariance()
	fmt.Print(report)
	if !report.Passed() {
		os.Exit(1)
	}
}

func runLink(vertPath, fragPath string) {
	if vertPath == "" || fragPath == "" {
		fmt.Fprintln(os.Stderr, "Error: link checking requires both -vert and -frag")
		os.Exit(1)
	}
	vertSource := readInput(vertPath)
	fragSource := readInput(fragPath)

	if err := glslconf.Link(vertSource, fragSource); err != nil {
		reportError(err)
		os.Exit(1)
	}
	fmt.Printf("%s + %s: program links\n", vertPath, fragPath)
}

func runCompile(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}
	inputPath := args[0]
	source := readInput(inputPath)

	st, err := stageFor(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := glslconf.Compile(source, st); err != nil {
		reportError(err)
		os.Exit(1)
	}
	fmt.Printf("%s: %s shader compiles\n", inputPath, st)
}

// stageFor picks the stage from the -stage flag or the file extension.
func stageFor(path string) (shader.Stage, error) {
	if *stage != "" {
		return shader.ParseStage(*stage)
	}
	switch {
	case strings.HasSuffix(path, ".vert"), strings.HasSuffix(path, ".vs"):
		return shader.StageVertex, nil
	case strings.HasSuffix(path, ".frag"), strings.HasSuffix(path, ".fs"):
		return shader.StageFragment, nil
	}
	return 0, fmt.Errorf("cannot infer stage from %q; pass -stage", path)
}

func readInput(path string) string {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	return string(source)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: glslconf [options] [<input>]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  glslconf -stage vertex shader.vert   Compile one shader\n")
	fmt.Fprintf(os.Stderr, "  glslconf -vert a.vert -frag a.frag   Compile and link a pair\n")
	fmt.Fprintf(os.Stderr, "  glslconf -suite invariance           Run a builtin suite\n")
}

// reportError prints compile diagnostics with source context when
// available.
func reportError(err error) {
	var ce *shader.CompileError
	if errors.As(err, &ce) {
		fmt.Fprintln(os.Stderr, ce.FormatAll())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
