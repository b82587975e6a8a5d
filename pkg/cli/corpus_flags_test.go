//go:build !integration

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/corpus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	addCorpusFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--automations", "a.yaml",
		"--dashboards", "ui/*.yaml",
		"--dashboards", "more/*.yaml",
		"-c", "custom.yaml",
		"--fail-fast",
	}))

	cfg, configFile := corpusFlags(cmd)
	assert.Equal(t, "a.yaml", cfg.AutomationsFile)
	assert.Empty(t, cfg.ScriptsFile, "unset flags stay empty so they do not override")
	assert.Equal(t, []string{"ui/*.yaml", "more/*.yaml"}, cfg.DashboardGlobs)
	assert.True(t, cfg.FailFast)
	assert.Empty(t, cfg.Root)
	assert.Equal(t, "custom.yaml", configFile)
}

func TestResolveCorpusConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		root := t.TempDir()
		cfg, err := resolveCorpusConfig(root, emptyOverrides(), "")
		require.NoError(t, err)
		assert.Equal(t, root, cfg.Root)
		assert.Equal(t, constants.DefaultAutomationsFile, cfg.AutomationsFile)
		assert.Equal(t, constants.DefaultDashboardGlobs, cfg.DashboardGlobs)
	})

	t.Run("config file in root then flags", func(t *testing.T) {
		root := writeCorpus(t, map[string]string{
			constants.DefaultConfigFileName: "scripts: conf/scripts.yaml\nautomations: conf/automations.yaml\nfail_fast: true\n",
		})
		overrides := emptyOverrides()
		overrides.AutomationsFile = "flag.yaml"

		cfg, err := resolveCorpusConfig(root, overrides, "")
		require.NoError(t, err)
		assert.Equal(t, "conf/scripts.yaml", cfg.ScriptsFile, "config file overrides defaults")
		assert.Equal(t, "flag.yaml", cfg.AutomationsFile, "flags override the config file")
		assert.True(t, cfg.FailFast)
	})

	t.Run("explicit config file", func(t *testing.T) {
		root := t.TempDir()
		configFile := filepath.Join(t.TempDir(), "other.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("helpers_dir: conf/helpers\n"), 0o644))

		cfg, err := resolveCorpusConfig(root, emptyOverrides(), configFile)
		require.NoError(t, err)
		assert.Equal(t, "conf/helpers", cfg.HelpersDir)
	})

	t.Run("relative root is made absolute", func(t *testing.T) {
		cfg, err := resolveCorpusConfig(testCorpusRoot, emptyOverrides(), "")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(cfg.Root))
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		root := writeCorpus(t, map[string]string{
			constants.DefaultConfigFileName: "automation: typo.yaml\n",
		})
		_, err := resolveCorpusConfig(root, emptyOverrides(), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config file")
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		_, err := resolveCorpusConfig(t.TempDir(), emptyOverrides(), filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func emptyOverrides() corpus.Config {
	return corpus.Config{}
}
