package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"SectorFiles", "Sectorfile", "SectorFile", "SectorFile-MAIN"}, cfg.Discovery.FolderNames)
	assert.Equal(t, []string{".isc", ".clr"}, cfg.Discovery.Extensions)
	assert.Equal(t, "Include", cfg.Discovery.MarkerDir)
	assert.Equal(t, "SectorFile-MAIN", cfg.Repo.MainDir)
	assert.Equal(t, "Include/COnew", cfg.Repo.SharedRel)
	assert.Equal(t, []string{"COnew", "COnew_2"}, cfg.Link.Aliases)
}

func TestSharedRelPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("Include", "COnew"), cfg.SharedRelPath())
}

func TestRecognizesExtension(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name string
		file string
		want bool
	}{
		{"lowercase isc", "EKDK.isc", true},
		{"uppercase ISC", "EKDK.ISC", true},
		{"mixed case clr", "colors.Clr", true},
		{"text file", "readme.txt", false},
		{"no extension", "README", false},
		{"extension only suffix", "data.isc.bak", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.RecognizesExtension(tt.file))
		})
	}
}

func TestLoad_UserOverride(t *testing.T) {
	dir := t.TempDir()
	override := `
[discovery]
folder_names = ["CustomSectorFiles"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sectorlink.toml"), []byte(override), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := Load()
	require.NoError(t, err)

	// Overridden section replaced, the rest keeps defaults.
	assert.Equal(t, []string{"CustomSectorFiles"}, cfg.Discovery.FolderNames)
	assert.Equal(t, []string{".isc", ".clr"}, cfg.Discovery.Extensions)
	assert.Equal(t, []string{"COnew", "COnew_2"}, cfg.Link.Aliases)
}

func TestLoad_NoOverrideUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
