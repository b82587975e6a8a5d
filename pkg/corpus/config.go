package corpus

import (
	"fmt"
	"slices"

	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/fileutil"
)

// Config locates the documents of one corpus. Relative paths are resolved
// against Root. The yaml tags match the hacheck config file.
type Config struct {
	Root               string   `yaml:"-"`
	AutomationsFile    string   `yaml:"automations,omitempty"`
	ScriptsFile        string   `yaml:"scripts,omitempty"`
	HelpersDir         string   `yaml:"helpers_dir,omitempty"`
	EntityRegistryFile string   `yaml:"entity_registry,omitempty"`
	DashboardGlobs     []string `yaml:"dashboards,omitempty"`
	FailFast           bool     `yaml:"fail_fast,omitempty"`
}

// DefaultConfig returns the standard layout rooted at root.
func DefaultConfig(root string) Config {
	return Config{
		Root:               root,
		AutomationsFile:    constants.DefaultAutomationsFile,
		ScriptsFile:        constants.DefaultScriptsFile,
		HelpersDir:         constants.DefaultHelpersDir,
		EntityRegistryFile: constants.DefaultEntityRegistryFile,
		DashboardGlobs:     slices.Clone(constants.DefaultDashboardGlobs),
	}
}

// Normalize fills unset fields with defaults and cleans Root, which must be
// absolute.
func (c Config) Normalize() (Config, error) {
	root, err := fileutil.ValidateAbsolutePath(c.Root)
	if err != nil {
		return c, fmt.Errorf("invalid corpus root: %w", err)
	}

	out := DefaultConfig(root)
	out.FailFast = c.FailFast
	if c.AutomationsFile != "" {
		out.AutomationsFile = c.AutomationsFile
	}
	if c.ScriptsFile != "" {
		out.ScriptsFile = c.ScriptsFile
	}
	if c.HelpersDir != "" {
		out.HelpersDir = c.HelpersDir
	}
	if c.EntityRegistryFile != "" {
		out.EntityRegistryFile = c.EntityRegistryFile
	}
	if len(c.DashboardGlobs) > 0 {
		out.DashboardGlobs = slices.Clone(c.DashboardGlobs)
	}
	return out, nil
}

// Merge returns c with every non-zero field of override applied on top.
// Root is taken from c.
func (c Config) Merge(override Config) Config {
	out := c
	if override.AutomationsFile != "" {
		out.AutomationsFile = override.AutomationsFile
	}
	if override.ScriptsFile != "" {
		out.ScriptsFile = override.ScriptsFile
	}
	if override.HelpersDir != "" {
		out.HelpersDir = override.HelpersDir
	}
	if override.EntityRegistryFile != "" {
		out.EntityRegistryFile = override.EntityRegistryFile
	}
	if len(override.DashboardGlobs) > 0 {
		out.DashboardGlobs = slices.Clone(override.DashboardGlobs)
	}
	out.FailFast = out.FailFast || override.FailFast
	return out
}
