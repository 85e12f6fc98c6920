// Package link implements the filesystem link primitives: per-file
// link creation with layered mechanism fallback, junction-style
// directory links, and the last-resort content copy.
//
// Mechanism order for files is fixed: hard link, then symlink, then a
// process-spawned privileged hard link. Copy is deliberately not part
// of the chain; callers decide whether to fall back to it.
package link

import (
	"runtime"

	"github.com/atcpilot/sectorlink/pkg/errors"
	"github.com/atcpilot/sectorlink/pkg/logging"
	"github.com/atcpilot/sectorlink/pkg/types"
)

// Linker creates filesystem links through an injected filesystem and
// command runner.
type Linker struct {
	fs     types.FS
	runner CommandRunner
}

// New creates a Linker.
func New(fs types.FS, runner CommandRunner) *Linker {
	return &Linker{fs: fs, runner: runner}
}

// CreateFileLink links src to dst, trying hard link, symlink, and a
// privileged external hard link in that order. A pre-existing dst is
// removed first; failure to remove it is reported through log but does
// not stop the attempt. Returns the mechanism that succeeded, or an
// error when all three failed.
func (l *Linker) CreateFileLink(src, dst string, log types.LogFunc) (types.Mechanism, error) {
	logger := logging.GetLogger("link")

	if _, err := l.fs.Lstat(dst); err == nil {
		if err := l.fs.Remove(dst); err != nil {
			log.Printf("Warning: couldn't remove existing %s\n", dst)
			logger.Warn().Err(err).Str("path", dst).Msg("Failed to remove existing destination")
		}
	}

	if err := l.fs.Link(src, dst); err == nil {
		log.Printf("Hard link: %s -> %s\n", dst, src)
		return types.MechanismHardlink, nil
	} else {
		logger.Debug().Err(err).Str("dst", dst).Msg("Hard link failed")
	}

	if err := l.fs.Symlink(src, dst); err == nil {
		log.Printf("Symlink: %s -> %s\n", dst, src)
		return types.MechanismSymlink, nil
	} else {
		logger.Debug().Err(err).Str("dst", dst).Msg("Symlink failed")
	}

	name, args := privilegedLinkCommand(src, dst)
	if out, err := l.runner.Run(name, args...); err == nil {
		log.Printf("Privileged link: %s -> %s\n", dst, src)
		return types.MechanismPrivileged, nil
	} else {
		logger.Debug().Err(err).Str("output", out).Str("dst", dst).Msg("Privileged link failed")
	}

	return "", errors.Newf(errors.ErrLinkCreate, "all link mechanisms failed for %s -> %s", dst, src)
}

// CreateDirectoryLink makes linkPath an alias of targetPath with
// junction semantics. It returns the combined stdout/stderr of the
// underlying OS command regardless of outcome. A pre-existing
// linkPath is the caller's problem.
func (l *Linker) CreateDirectoryLink(linkPath, targetPath string) (bool, string) {
	name, args := junctionCommand(linkPath, targetPath)
	out, err := l.runner.Run(name, args...)
	if err != nil && out == "" {
		out = err.Error()
	}
	return err == nil, out
}

// CopyFile duplicates src at dst, preserving the source file mode.
// The one mechanism that breaks the shared-storage goal; callers log
// it distinctly.
func (l *Linker) CopyFile(src, dst string) error {
	info, err := l.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", src)
	}
	data, err := l.fs.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}
	if err := l.fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to write %s", dst)
	}
	return nil
}

// privilegedLinkCommand returns the external command that creates a
// hard link when the direct syscall is unavailable to this process.
func privilegedLinkCommand(src, dst string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/c", "mklink", "/H", dst, src}
	}
	return "ln", []string{src, dst}
}

// junctionCommand returns the external command that creates a
// directory link. Windows junctions need no elevated privileges,
// unlike directory symlinks.
func junctionCommand(linkPath, targetPath string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/c", "mklink", "/J", linkPath, targetPath}
	}
	return "ln", []string{"-s", targetPath, linkPath}
}
