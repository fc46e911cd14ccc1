package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateScenarioPath(t *testing.T) {
	path := GenerateScenarioPath("scenarios")

	assert.True(t, strings.HasPrefix(filepath.Base(path), "scenario_"), path)
	assert.Equal(t, "scenarios", filepath.Dir(path))
	assert.Equal(t, ".yaml", filepath.Ext(path))

	t.Logf("Generated path: %s", path)
}

func TestFindLatestScenario(t *testing.T) {
	testDir := t.TempDir()

	files := []string{
		filepath.Join(testDir, "scenario_2026-02-12_10-00-00.yaml"),
		filepath.Join(testDir, "scenario_2026-02-13_01-00-00.yaml"),
		filepath.Join(testDir, "scenario_2026-02-11_15-30-00.yaml"),
	}

	for i, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("test"), 0644))
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(f, modTime, modTime))
	}

	latest, err := FindLatestScenario(testDir)
	require.NoError(t, err)
	t.Logf("Latest scenario: %s", latest)

	// Should be the last file (most recent mod time)
	assert.Equal(t, files[len(files)-1], latest)

	_, err = FindLatestScenario(filepath.Join(testDir, "missing"))
	assert.Error(t, err)
}
