// Package discover locates the sectorfile data folder under an
// installation root.
//
// The heuristic tolerates the layouts seen in the wild: an install
// root that is itself the sectorfile folder, a conventionally named
// subfolder, or a folder buried deeper that carries the marker
// subdirectory or recognized data files.
package discover

import (
	"path/filepath"

	"github.com/atcpilot/sectorlink/pkg/config"
	"github.com/atcpilot/sectorlink/pkg/errors"
	"github.com/atcpilot/sectorlink/pkg/logging"
	"github.com/atcpilot/sectorlink/pkg/types"
)

// Finder applies the sectorfile folder heuristic.
type Finder struct {
	fs  types.FS
	cfg *config.Config
}

// New creates a Finder.
func New(fs types.FS, cfg *config.Config) *Finder {
	return &Finder{fs: fs, cfg: cfg}
}

// FindSectorfileDir returns the sectorfile folder under root.
//
// Strategies are tried in order, first match wins:
//  1. root itself, when it holds the marker subdirectory or any
//     recognized data file anywhere beneath it.
//  2. a conventionally named child of root, with the same content
//     check; when acceptEmptyNamed is set, an existing named child is
//     accepted on name alone.
//  3. a depth-first lexicographic walk of root, stopping at the first
//     directory with an immediate marker child or an immediate
//     recognized data file.
//
// Fails with a NOT_FOUND error when nothing matches.
func (f *Finder) FindSectorfileDir(root string, acceptEmptyNamed bool, log types.LogFunc) (string, error) {
	logger := logging.GetLogger("discover")

	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	if f.isDir(root) && f.qualifies(root) {
		logger.Debug().Str("path", root).Msg("Install root is itself a sectorfile folder")
		return root, nil
	}

	for _, name := range f.cfg.Discovery.FolderNames {
		cand := filepath.Join(root, name)
		if !f.isDir(cand) {
			continue
		}
		if f.qualifies(cand) {
			return cand, nil
		}
		if acceptEmptyNamed {
			log.Printf("Accepting folder by name: %s\n", cand)
			return cand, nil
		}
	}

	// Last resort: walk the whole tree. Depth-first in the
	// lexicographic order ReadDir yields, so the result is
	// deterministic across platforms.
	if found, ok := f.walk(root); ok {
		return found, nil
	}

	return "", errors.Newf(errors.ErrNotFound, "sectorfile folder not found under %s", root)
}

// qualifies reports whether dir holds the marker subdirectory as an
// immediate child or a recognized data file anywhere beneath it.
func (f *Finder) qualifies(dir string) bool {
	if f.isDir(filepath.Join(dir, f.cfg.Discovery.MarkerDir)) {
		return true
	}
	return f.containsRecognizedFile(dir)
}

// containsRecognizedFile searches the whole subtree of dir for a file
// with a recognized extension. Unreadable directories are skipped.
func (f *Finder) containsRecognizedFile(dir string) bool {
	entries, err := f.fs.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			if f.containsRecognizedFile(filepath.Join(dir, e.Name())) {
				return true
			}
			continue
		}
		if f.cfg.RecognizesExtension(e.Name()) {
			return true
		}
	}
	return false
}

// walk descends dir depth-first and returns the first directory that
// directly holds the marker subdirectory or a recognized data file.
func (f *Finder) walk(dir string) (string, bool) {
	entries, err := f.fs.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() {
			if e.Name() == f.cfg.Discovery.MarkerDir {
				return dir, true
			}
			continue
		}
		if f.cfg.RecognizesExtension(e.Name()) {
			return dir, true
		}
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if found, ok := f.walk(filepath.Join(dir, e.Name())); ok {
			return found, true
		}
	}
	return "", false
}

func (f *Finder) isDir(path string) bool {
	info, err := f.fs.Stat(path)
	return err == nil && info.IsDir()
}
