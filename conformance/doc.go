// Package conformance runs declarative compile/link conformance cases.
//
// A fixture registers shader sources with a Registry, pairs them into
// Cases with expected compile and link outcomes, and hands them to a
// Runner. The runner compiles each shader, compares the outcome against
// the expectation, attempts linking only when both compiles matched, and
// records one pass/fail Result per case.
//
// Compile and link failures are part of the data, not errors: a case
// expecting a compile failure passes when compilation fails. Cases run
// independently and synchronously; re-running a fixture with the same
// sources yields the same report.
//
// The invariance suite is built in:
//
//	report := conformance.RunInvariance()
//	if !report.Passed() {
//	    fmt.Print(report)
//	}
package conformance
