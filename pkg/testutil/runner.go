package testutil

// FakeRunner implements link.CommandRunner by recording commands and
// returning configured results.
type FakeRunner struct {
	// Calls records each invocation as the command name followed by
	// its arguments.
	Calls [][]string

	Output string
	Err    error
}

// Run records the call and returns the configured output and error.
func (r *FakeRunner) Run(name string, args ...string) (string, error) {
	call := append([]string{name}, args...)
	r.Calls = append(r.Calls, call)
	return r.Output, r.Err
}
