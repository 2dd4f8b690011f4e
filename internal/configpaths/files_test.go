package configpaths_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/padmap/internal/configpaths"
)

func TestDefaultConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("xdg layout")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := configpaths.DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "padmap"), dir)
	assert.Equal(t, filepath.Join(xdg, "padmap", "store"), configpaths.DefaultStoreDir())
}

func TestConfigCandidatePaths(t *testing.T) {
	tests := []struct {
		user     string
		wantJSON bool
		wantYAML bool
		wantTOML bool
	}{
		{user: "my.yml", wantYAML: true},
		{user: "my.toml", wantTOML: true},
		{user: "my.json", wantJSON: true},
		{user: "my.conf", wantJSON: true},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			j, y, tm := configpaths.ConfigCandidatePaths(tt.user)
			assert.Equal(t, tt.wantJSON, j[0] == tt.user)
			assert.Equal(t, tt.wantYAML, y[0] == tt.user)
			assert.Equal(t, tt.wantTOML, tm[0] == tt.user)
		})
	}

	wd, err := os.Getwd()
	require.NoError(t, err)
	j, _, _ := configpaths.ConfigCandidatePaths("")
	assert.Equal(t, filepath.Join(wd, "padmap.json"), j[0])
}

func TestEnsureDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "c.json")
	require.NoError(t, configpaths.EnsureDir(p))
	st, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, "yaml", configpaths.FormatExt("yml"))
	assert.Equal(t, "toml", configpaths.FormatExt("toml"))
	assert.Equal(t, "json", configpaths.FormatExt(""))
}
