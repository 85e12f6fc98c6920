// Package installer is the run orchestrator: it resolves the two
// user-supplied paths, sequences discovery, validation, and linking,
// and maps outcomes to the integer result codes front ends report.
package installer

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/atcpilot/sectorlink/pkg/config"
	"github.com/atcpilot/sectorlink/pkg/discover"
	"github.com/atcpilot/sectorlink/pkg/filesystem"
	"github.com/atcpilot/sectorlink/pkg/link"
	"github.com/atcpilot/sectorlink/pkg/linker"
	"github.com/atcpilot/sectorlink/pkg/logging"
	"github.com/atcpilot/sectorlink/pkg/types"
)

// Result codes returned by Run. Front ends use them as process exit
// codes.
const (
	CodeSuccess             = 0
	CodeRepoNotFound        = 2
	CodeSharedSourceMissing = 3
	CodeUnhandled           = 10
)

// Installer performs one linking run at a time. It holds no per-run
// state; a single value can serve successive runs, but never two
// concurrent runs against overlapping targets.
type Installer struct {
	fs     types.FS
	cfg    *config.Config
	finder *discover.Finder
	policy *linker.Policy
}

// New creates an Installer on the given filesystem and command runner.
func New(fs types.FS, runner link.CommandRunner, cfg *config.Config) *Installer {
	links := link.New(fs, runner)
	return &Installer{
		fs:     fs,
		cfg:    cfg,
		finder: discover.New(fs, cfg),
		policy: linker.New(fs, links, cfg),
	}
}

// Run executes one linking run against the real filesystem with the
// built-in conventions. Convenience for front ends.
func Run(req types.RunRequest, progress types.ProgressFunc, log types.LogFunc) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Unhandled error: %v\n", err)
		return CodeUnhandled
	}
	return New(filesystem.NewOS(), link.NewRunner(), cfg).Run(req, progress, log)
}

// Run resolves the request's paths, discovers the sectorfile folder,
// validates the repository structure, and creates the directory
// aliases and file links. Every outcome produces a log line before
// the result code is returned.
func (i *Installer) Run(req types.RunRequest, progress types.ProgressFunc, log types.LogFunc) (code int) {
	logger := logging.GetLogger("installer")

	// Anything the stages below don't handle explicitly maps to the
	// generic failure code, never a crash of the front end.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Unhandled error: %v\n", r)
			logger.Error().Interface("panic", r).Msg("Run panicked")
			code = CodeUnhandled
		}
	}()

	if req.Debug && zerolog.GlobalLevel() > zerolog.DebugLevel {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	root := req.AuroraPath
	if strings.HasSuffix(strings.ToLower(root), ".exe") {
		root = filepath.Dir(root)
	}

	log.Printf("Detecting Sectorfile folder under: %s\n", root)
	sectorfileDir, err := i.finder.FindSectorfileDir(root, true, log)
	if err != nil {
		// Discovery failure is indistinguishable from an internal
		// fault by code; the log line carries the detail.
		log.Printf("Unhandled error: %v\n", err)
		return CodeUnhandled
	}
	log.Printf("Sectorfile root: %s\n", sectorfileDir)

	srcMain, ok := i.resolveMainFolder(req.RepoPath)
	if !ok {
		log.Printf("ERROR: repository %s not found at %s\n", i.cfg.Repo.MainDir, req.RepoPath)
		return CodeRepoNotFound
	}

	srcShared := filepath.Join(srcMain, i.cfg.SharedRelPath())
	if !i.isDir(srcShared) {
		log.Printf("ERROR: expected source %s at %s\n", i.cfg.Repo.SharedRel, srcShared)
		return CodeSharedSourceMissing
	}

	targetInclude := filepath.Join(sectorfileDir, i.cfg.Discovery.MarkerDir)
	log.Printf("Target %s dir: %s\n", i.cfg.Discovery.MarkerDir, targetInclude)

	if req.DryRun {
		log.Printf("DRY RUN: no changes will be made.\n")
		log.Printf("Would create junctions at %s -> %s\n",
			i.aliasList(targetInclude), srcShared)
		log.Printf("Would link %s from %s into %s\n",
			strings.Join(i.cfg.Discovery.Extensions, "/"), srcMain, sectorfileDir)
		return CodeSuccess
	}

	if err := i.fs.MkdirAll(targetInclude, 0755); err != nil {
		log.Printf("Unhandled error: %v\n", err)
		return CodeUnhandled
	}

	progress.Report(-1)
	i.policy.CreateSharedDirectoryLinks(srcShared, targetInclude, req.Force, log)
	linked, err := i.policy.LinkTopLevelFilesOnce(srcMain, sectorfileDir, req.Force, log)
	if err != nil {
		log.Printf("Unhandled error: %v\n", err)
		return CodeUnhandled
	}
	log.Printf("Linked or copied %d top-level %s files.\n",
		linked, strings.Join(i.cfg.Discovery.Extensions, "/"))
	progress.Report(100)
	log.Printf("Done.\n")
	return CodeSuccess
}

// resolveMainFolder accepts the repo path itself when it carries the
// marker subdirectory, else the conventional main subfolder beneath
// it.
func (i *Installer) resolveMainFolder(repo string) (string, bool) {
	if i.isDir(repo) && i.isDir(filepath.Join(repo, i.cfg.Discovery.MarkerDir)) {
		return repo, true
	}
	cand := filepath.Join(repo, i.cfg.Repo.MainDir)
	if i.isDir(cand) {
		return cand, true
	}
	return "", false
}

// aliasList renders the alias paths for the dry-run preview.
func (i *Installer) aliasList(targetInclude string) string {
	paths := make([]string, 0, len(i.cfg.Link.Aliases))
	for _, name := range i.cfg.Link.Aliases {
		paths = append(paths, filepath.Join(targetInclude, name))
	}
	return strings.Join(paths, " and ")
}

func (i *Installer) isDir(path string) bool {
	info, err := i.fs.Stat(path)
	return err == nil && info.IsDir()
}
