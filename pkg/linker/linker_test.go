package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atcpilot/sectorlink/pkg/config"
	"github.com/atcpilot/sectorlink/pkg/filesystem"
	"github.com/atcpilot/sectorlink/pkg/link"
	"github.com/atcpilot/sectorlink/pkg/testutil"
	"github.com/atcpilot/sectorlink/pkg/types"
)

func newPolicy(fs types.FS, runner link.CommandRunner) *Policy {
	return New(fs, link.New(fs, runner), config.Default())
}

func TestCreateSharedDirectoryLinks(t *testing.T) {
	t.Run("creates both aliases", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "COnew-src")
		target := filepath.Join(dir, "Include")

		p := newPolicy(filesystem.NewOS(), link.NewRunner())
		rec := testutil.NewRecorder()

		created := p.CreateSharedDirectoryLinks(src, target, false, rec.Log)
		assert.Equal(t, []string{
			filepath.Join(target, "COnew"),
			filepath.Join(target, "COnew_2"),
		}, created)
		assert.True(t, rec.Contains("Directory junction created:"))
	})

	t.Run("creates target parent recursively", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "COnew-src")
		target := filepath.Join(dir, "deep", "nested", "Include")

		p := newPolicy(filesystem.NewOS(), link.NewRunner())

		created := p.CreateSharedDirectoryLinks(src, target, false, nil)
		assert.Len(t, created, 2)
	})

	t.Run("existing alias without force fails that alias only", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "COnew-src")
		target := testutil.CreateDir(t, dir, "Include")
		testutil.CreateDir(t, target, "COnew")

		p := newPolicy(filesystem.NewOS(), link.NewRunner())
		rec := testutil.NewRecorder()

		created := p.CreateSharedDirectoryLinks(src, target, false, rec.Log)
		assert.Equal(t, []string{filepath.Join(target, "COnew_2")}, created)
		assert.True(t, rec.Contains("exists"))
	})

	t.Run("existing plain directory replaced with force", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "COnew-src")
		testutil.CreateFile(t, src, "data.txt", "shared")
		target := testutil.CreateDir(t, dir, "Include")
		stale := testutil.CreateDir(t, target, "COnew")
		testutil.CreateFile(t, stale, "old.txt", "stale")

		p := newPolicy(filesystem.NewOS(), link.NewRunner())

		created := p.CreateSharedDirectoryLinks(src, target, true, nil)
		assert.Len(t, created, 2)

		// The alias now resolves into the source tree.
		data, err := os.ReadFile(filepath.Join(target, "COnew", "data.txt"))
		require.NoError(t, err)
		assert.Equal(t, "shared", string(data))
	})

	t.Run("existing link replaced with force", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "COnew-src")
		other := testutil.CreateDir(t, dir, "elsewhere")
		target := testutil.CreateDir(t, dir, "Include")
		testutil.CreateSymlink(t, other, filepath.Join(target, "COnew"))

		p := newPolicy(filesystem.NewOS(), link.NewRunner())

		created := p.CreateSharedDirectoryLinks(src, target, true, nil)
		assert.Len(t, created, 2)

		resolved, err := os.Readlink(filepath.Join(target, "COnew"))
		require.NoError(t, err)
		assert.Equal(t, src, resolved)
	})

	t.Run("junction failure logs and continues", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "COnew-src")
		target := filepath.Join(dir, "Include")

		runner := &testutil.FakeRunner{Output: "Access is denied.", Err: fmt.Errorf("exit status 1")}
		p := newPolicy(filesystem.NewOS(), runner)
		rec := testutil.NewRecorder()

		created := p.CreateSharedDirectoryLinks(src, target, false, rec.Log)
		assert.Empty(t, created)
		// Both aliases were still attempted.
		assert.Len(t, runner.Calls, 2)
		assert.True(t, rec.Contains("ERROR creating junction"))
		assert.True(t, rec.Contains("Access is denied."))
	})
}

func TestLinkTopLevelFilesOnce(t *testing.T) {
	t.Run("links recognized extensions only", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "main")
		testutil.CreateFile(t, src, "EKDK.isc", "sector")
		testutil.CreateFile(t, src, "colors.clr", "colors")
		testutil.CreateFile(t, src, "readme.txt", "ignore me")
		testutil.CreateDir(t, src, "Include")
		target := testutil.CreateDir(t, dir, "SectorFiles")

		p := newPolicy(filesystem.NewOS(), link.NewRunner())
		rec := testutil.NewRecorder()

		count, err := p.LinkTopLevelFilesOnce(src, target, false, rec.Log)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		assert.FileExists(t, filepath.Join(target, "EKDK.isc"))
		assert.FileExists(t, filepath.Join(target, "colors.clr"))
		assert.NoFileExists(t, filepath.Join(target, "readme.txt"))
	})

	t.Run("uppercase extensions are recognized", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "main")
		testutil.CreateFile(t, src, "EKDK.ISC", "sector")
		target := testutil.CreateDir(t, dir, "SectorFiles")

		p := newPolicy(filesystem.NewOS(), link.NewRunner())

		count, err := p.LinkTopLevelFilesOnce(src, target, false, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("does not recurse into subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "main")
		testutil.CreateFile(t, src, filepath.Join("nested", "deep.isc"), "sector")
		target := testutil.CreateDir(t, dir, "SectorFiles")

		p := newPolicy(filesystem.NewOS(), link.NewRunner())

		count, err := p.LinkTopLevelFilesOnce(src, target, false, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("existing destination skipped without force", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "main")
		testutil.CreateFile(t, src, "EKDK.isc", "new")
		target := testutil.CreateDir(t, dir, "SectorFiles")
		testutil.CreateFile(t, target, "EKDK.isc", "old")

		p := newPolicy(filesystem.NewOS(), link.NewRunner())
		rec := testutil.NewRecorder()

		count, err := p.LinkTopLevelFilesOnce(src, target, false, rec.Log)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.True(t, rec.Contains("Skipping existing"))

		data, err := os.ReadFile(filepath.Join(target, "EKDK.isc"))
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))
	})

	t.Run("existing destination replaced with force", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "main")
		testutil.CreateFile(t, src, "EKDK.isc", "new")
		target := testutil.CreateDir(t, dir, "SectorFiles")
		testutil.CreateFile(t, target, "EKDK.isc", "old")

		p := newPolicy(filesystem.NewOS(), link.NewRunner())

		count, err := p.LinkTopLevelFilesOnce(src, target, true, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		data, err := os.ReadFile(filepath.Join(target, "EKDK.isc"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("copy fallback when all link mechanisms fail", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "main")
		testutil.CreateFile(t, src, "EKDK.isc", "sector")
		target := testutil.CreateDir(t, dir, "SectorFiles")

		fs := testutil.NewFaultFS(filesystem.NewOS())
		fs.LinkErr = fmt.Errorf("operation not permitted")
		fs.SymlinkErr = fmt.Errorf("operation not permitted")
		runner := &testutil.FakeRunner{Err: fmt.Errorf("exit status 1")}

		p := newPolicy(fs, runner)
		rec := testutil.NewRecorder()

		count, err := p.LinkTopLevelFilesOnce(src, target, false, rec.Log)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.True(t, rec.Contains("Copied (fallback):"))

		data, err := os.ReadFile(filepath.Join(target, "EKDK.isc"))
		require.NoError(t, err)
		assert.Equal(t, "sector", string(data))
	})

	t.Run("failed copy still counts the file", func(t *testing.T) {
		dir := t.TempDir()
		src := testutil.CreateDir(t, dir, "main")
		testutil.CreateFile(t, src, "EKDK.isc", "sector")
		target := testutil.CreateDir(t, dir, "SectorFiles")

		fs := testutil.NewFaultFS(filesystem.NewOS())
		fs.LinkErr = fmt.Errorf("operation not permitted")
		fs.SymlinkErr = fmt.Errorf("operation not permitted")
		fs.WriteErr = fmt.Errorf("disk full")
		runner := &testutil.FakeRunner{Err: fmt.Errorf("exit status 1")}

		p := newPolicy(fs, runner)
		rec := testutil.NewRecorder()

		count, err := p.LinkTopLevelFilesOnce(src, target, false, rec.Log)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.True(t, rec.Contains("ERROR copying"))
		assert.NoFileExists(t, filepath.Join(target, "EKDK.isc"))
	})

	t.Run("unreadable source fails", func(t *testing.T) {
		dir := t.TempDir()
		p := newPolicy(filesystem.NewOS(), link.NewRunner())

		_, err := p.LinkTopLevelFilesOnce(filepath.Join(dir, "missing"), dir, false, nil)
		require.Error(t, err)
	})
}
