package testutil

import (
	"io/fs"

	"github.com/atcpilot/sectorlink/pkg/types"
)

// FaultFS wraps a types.FS and fails selected operations, so tests can
// drive the fallback branches that never trigger on a healthy
// filesystem.
type FaultFS struct {
	Inner types.FS

	// Errors returned instead of delegating. Nil means delegate.
	LinkErr    error
	SymlinkErr error
	RemoveErr  error
	WriteErr   error
	ReadErr    error
}

// NewFaultFS wraps inner with no faults configured.
func NewFaultFS(inner types.FS) *FaultFS {
	return &FaultFS{Inner: inner}
}

func (f *FaultFS) Stat(name string) (fs.FileInfo, error)  { return f.Inner.Stat(name) }
func (f *FaultFS) Lstat(name string) (fs.FileInfo, error) { return f.Inner.Lstat(name) }

func (f *FaultFS) ReadDir(name string) ([]fs.DirEntry, error) { return f.Inner.ReadDir(name) }

func (f *FaultFS) ReadFile(name string) ([]byte, error) {
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	return f.Inner.ReadFile(name)
}

func (f *FaultFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if f.WriteErr != nil {
		return f.WriteErr
	}
	return f.Inner.WriteFile(name, data, perm)
}

func (f *FaultFS) MkdirAll(path string, perm fs.FileMode) error {
	return f.Inner.MkdirAll(path, perm)
}

func (f *FaultFS) Remove(name string) error {
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	return f.Inner.Remove(name)
}

func (f *FaultFS) RemoveAll(path string) error { return f.Inner.RemoveAll(path) }

func (f *FaultFS) Link(oldname, newname string) error {
	if f.LinkErr != nil {
		return f.LinkErr
	}
	return f.Inner.Link(oldname, newname)
}

func (f *FaultFS) Symlink(oldname, newname string) error {
	if f.SymlinkErr != nil {
		return f.SymlinkErr
	}
	return f.Inner.Symlink(oldname, newname)
}

func (f *FaultFS) Readlink(name string) (string, error) { return f.Inner.Readlink(name) }
