// Package linker applies the link primitives to the sectorfile
// layout: the shared-directory aliases under the target marker
// directory, and the top-level reference-data files.
package linker

import (
	"path/filepath"

	"github.com/atcpilot/sectorlink/pkg/config"
	"github.com/atcpilot/sectorlink/pkg/errors"
	"github.com/atcpilot/sectorlink/pkg/link"
	"github.com/atcpilot/sectorlink/pkg/logging"
	"github.com/atcpilot/sectorlink/pkg/types"
)

// Policy drives link creation for one run.
type Policy struct {
	fs    types.FS
	links *link.Linker
	cfg   *config.Config
}

// New creates a Policy.
func New(fs types.FS, links *link.Linker, cfg *config.Config) *Policy {
	return &Policy{fs: fs, links: links, cfg: cfg}
}

// CreateSharedDirectoryLinks creates the configured directory-link
// aliases under targetParent, each pointing at srcShared. Returns the
// paths of the aliases that were created.
//
// A pre-existing alias fails that alias with ALREADY_EXISTS unless
// force is set; either way the remaining aliases are still attempted.
// With force, a plain directory is removed as a tree and a link as a
// single entry; removal failures are warnings only.
func (p *Policy) CreateSharedDirectoryLinks(srcShared, targetParent string, force bool, log types.LogFunc) []string {
	logger := logging.GetLogger("linker")

	if err := p.fs.MkdirAll(targetParent, 0755); err != nil {
		logger.Error().Err(err).Str("path", targetParent).Msg("Failed to create target parent directory")
	}

	var created []string
	for _, name := range p.cfg.Link.Aliases {
		linkPath := filepath.Join(targetParent, name)

		if info, err := p.fs.Lstat(linkPath); err == nil {
			if !force {
				err := errors.Newf(errors.ErrAlreadyExists, "%s exists", linkPath)
				log.Printf("ERROR: %v\n", err)
				logger.Debug().Str("path", linkPath).Msg("Alias exists and force is off, skipping")
				continue
			}
			// Lstat does not follow links, so IsDir means a plain
			// directory that needs a tree removal.
			if err := p.removeExisting(linkPath, info.IsDir()); err != nil {
				log.Printf("Warning: couldn't remove existing %s: %v\n", linkPath, err)
			}
		}

		ok, out := p.links.CreateDirectoryLink(linkPath, srcShared)
		if ok {
			log.Printf("Directory junction created: %s -> %s\n", linkPath, srcShared)
			created = append(created, linkPath)
		} else {
			log.Printf("ERROR creating junction %s -> %s: %s\n", linkPath, srcShared, out)
		}
	}
	return created
}

// removeExisting removes a pre-existing alias path. Plain directories
// need a tree removal; links are single entries.
func (p *Policy) removeExisting(path string, plainDir bool) error {
	if plainDir {
		return p.fs.RemoveAll(path)
	}
	return p.fs.Remove(path)
}

// LinkTopLevelFilesOnce links the immediate recognized-extension files
// of srcMain into targetDir. Returns the number of files that reached
// the link or copy stage.
//
// Existing destinations are skipped without force and removed with it.
// When every link mechanism fails for a file, the file is copied and
// the copy is logged distinctly so operators can spot the lost
// sharing.
func (p *Policy) LinkTopLevelFilesOnce(srcMain, targetDir string, force bool, log types.LogFunc) (int, error) {
	logger := logging.GetLogger("linker")

	entries, err := p.fs.ReadDir(srcMain)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", srcMain)
	}

	count := 0
	for _, e := range entries {
		if e.IsDir() || !p.cfg.RecognizesExtension(e.Name()) {
			continue
		}
		srcPath := filepath.Join(srcMain, e.Name())
		dst := filepath.Join(targetDir, e.Name())

		if _, err := p.fs.Lstat(dst); err == nil {
			if !force {
				log.Printf("Skipping existing %s\n", dst)
				continue
			}
			if err := p.fs.Remove(dst); err != nil {
				log.Printf("Warning: couldn't remove %s: %v\n", dst, err)
			}
		}

		if _, err := p.links.CreateFileLink(srcPath, dst, log); err != nil {
			logger.Debug().Err(err).Str("src", srcPath).Msg("All link mechanisms failed, copying")
			if err := p.links.CopyFile(srcPath, dst); err != nil {
				log.Printf("ERROR copying %s -> %s: %v\n", srcPath, dst, err)
			} else {
				log.Printf("Copied (fallback): %s\n", dst)
			}
		}
		count++
	}
	return count, nil
}
