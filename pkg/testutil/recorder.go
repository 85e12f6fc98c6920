package testutil

import (
	"strings"
)

// Recorder implements the front-end callback contract by recording
// every call, so tests can assert on the log stream and the progress
// sequence.
type Recorder struct {
	Lines    []string
	Progress []int
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Log records a log line.
func (r *Recorder) Log(msg string) {
	r.Lines = append(r.Lines, msg)
}

// Report records a progress value.
func (r *Recorder) Report(percent int) {
	r.Progress = append(r.Progress, percent)
}

// Output returns the accumulated log stream as one string.
func (r *Recorder) Output() string {
	return strings.Join(r.Lines, "")
}

// Contains reports whether any recorded line contains substr.
func (r *Recorder) Contains(substr string) bool {
	return strings.Contains(r.Output(), substr)
}
