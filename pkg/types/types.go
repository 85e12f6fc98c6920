// Package types defines the shared types and interfaces used across
// sectorlink: the filesystem abstraction, the front-end callback
// contract, and the per-run value types.
package types

import (
	"fmt"
	"io/fs"
)

// FS abstracts the filesystem operations the linking engine performs,
// so tests can substitute fault-injecting implementations.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	RemoveAll(path string) error
	Link(oldname, newname string) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
}

// LogFunc receives human-readable progress lines from the engine.
// Front ends render them however they like; implementations must not
// panic back into the engine.
type LogFunc func(msg string)

// Printf formats a line and delivers it to the callback. A nil
// callback discards the line, so engine code never has to guard.
func (f LogFunc) Printf(format string, args ...interface{}) {
	if f == nil {
		return
	}
	f(fmt.Sprintf(format, args...))
}

// ProgressFunc receives -1 for indeterminate progress and 0-100 for
// percent complete.
type ProgressFunc func(percent int)

// Report delivers a progress value to the callback, tolerating nil.
func (f ProgressFunc) Report(percent int) {
	if f != nil {
		f(percent)
	}
}

// RunRequest is the immutable input to one orchestrator run.
type RunRequest struct {
	// AuroraPath is the install root, the sectorfile folder itself,
	// or the Aurora executable.
	AuroraPath string
	// RepoPath is the repository root or the SectorFile-MAIN folder.
	RepoPath string
	Force    bool
	DryRun   bool
	Debug    bool
}

// Mechanism identifies which link mechanism produced a destination
// entry.
type Mechanism string

const (
	MechanismHardlink   Mechanism = "hardlink"
	MechanismSymlink    Mechanism = "symlink"
	MechanismPrivileged Mechanism = "privileged-link"
	MechanismJunction   Mechanism = "junction"
	MechanismCopy       Mechanism = "copy-fallback"
)

// LinkOutcome records one link attempt. Outcomes are logged and
// counted, never stored.
type LinkOutcome struct {
	TargetPath string
	SourcePath string
	Mechanism  Mechanism
	Succeeded  bool
	Message    string
}
