package conformance

import (
	"fmt"
	"strings"
)

// Result is the outcome of a single conformance case.
type Result struct {
	Message string
	Passed  bool
	Detail  string // populated when the case failed
}

// Report collects the outcomes of a conformance run.
type Report struct {
	Results []Result

	// SetupProblems records fixture defects: unresolved shader ids or a
	// subtest count mismatch. A report with setup problems never passes.
	SetupProblems []string
}

// Passed reports whether every case passed and no setup problems occurred.
func (r *Report) Passed() bool {
	if len(r.SetupProblems) > 0 {
		return false
	}
	for _, result := range r.Results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// PassCount returns the number of passing cases.
func (r *Report) PassCount() int {
	n := 0
	for _, result := range r.Results {
		if result.Passed {
			n++
		}
	}
	return n
}

// FailCount returns the number of failing cases.
func (r *Report) FailCount() int {
	return len(r.Results) - r.PassCount()
}

// String formats the report with one line per case.
func (r *Report) String() string {
	var sb strings.Builder
	for _, result := range r.Results {
		if result.Passed {
			fmt.Fprintf(&sb, "PASS: %s\n", result.Message)
			continue
		}
		fmt.Fprintf(&sb, "FAIL: %s\n", result.Message)
		if result.Detail != "" {
			fmt.Fprintf(&sb, "      %s\n", result.Detail)
		}
	}
	for _, problem := range r.SetupProblems {
		fmt.Fprintf(&sb, "SETUP: %s\n", problem)
	}
	fmt.Fprintf(&sb, "%d passed, %d failed\n", r.PassCount(), r.FailCount())
	return sb.String()
}
