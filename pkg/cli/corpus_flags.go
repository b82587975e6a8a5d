package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/corpus"
	"github.com/hacheck/hacheck/pkg/fileutil"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/spf13/cobra"
)

var corpusFlagsLog = logger.New("cli:corpus_flags")

// addCorpusFlags registers the flags that locate corpus documents.
func addCorpusFlags(cmd *cobra.Command) {
	cmd.Flags().String("automations", "", "Automations document relative to the corpus root (default: "+constants.DefaultAutomationsFile+")")
	cmd.Flags().String("scripts", "", "Scripts document relative to the corpus root (default: "+constants.DefaultScriptsFile+")")
	cmd.Flags().String("helpers-dir", "", "Directory holding <domain>.yaml helper registries (default: "+constants.DefaultHelpersDir+")")
	cmd.Flags().String("entity-registry", "", "Entity registry document (default: "+constants.DefaultEntityRegistryFile+")")
	cmd.Flags().StringSlice("dashboards", nil, "Glob of dashboard documents, repeatable; \"*\" matches within one directory and \"**\" is rejected (default: dashboards/*.yaml, .storage/lovelace*)")
	cmd.Flags().StringP("config", "c", "", "YAML file with corpus settings (default: <root>/"+constants.DefaultConfigFileName+" when present)")
	cmd.Flags().Bool("fail-fast", false, "Stop at the first unreadable document instead of listing all of them")
}

// corpusFlags reads the flags registered by addCorpusFlags. Root is left empty.
func corpusFlags(cmd *cobra.Command) (corpus.Config, string) {
	automations, _ := cmd.Flags().GetString("automations")
	scripts, _ := cmd.Flags().GetString("scripts")
	helpersDir, _ := cmd.Flags().GetString("helpers-dir")
	registry, _ := cmd.Flags().GetString("entity-registry")
	dashboards, _ := cmd.Flags().GetStringSlice("dashboards")
	configFile, _ := cmd.Flags().GetString("config")
	failFast, _ := cmd.Flags().GetBool("fail-fast")

	return corpus.Config{
		AutomationsFile:    automations,
		ScriptsFile:        scripts,
		HelpersDir:         helpersDir,
		EntityRegistryFile: registry,
		DashboardGlobs:     dashboards,
		FailFast:           failFast,
	}, configFile
}

// loadConfigFile decodes a hacheck config file. Unknown keys are rejected.
func loadConfigFile(path string) (corpus.Config, error) {
	var cfg corpus.Config
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.UnmarshalWithOptions(content, &cfg, yaml.DisallowUnknownField()); err != nil {
		return cfg, fmt.Errorf("invalid config file %s:\n%s", path, yaml.FormatError(err, false, true))
	}
	corpusFlagsLog.Printf("Loaded config file %s", path)
	return cfg, nil
}

// resolveCorpusConfig builds the configuration for one root: defaults, then
// the config file (explicit, or <root>/.hacheck.yaml when present), then
// flags.
func resolveCorpusConfig(root string, flags corpus.Config, configFile string) (corpus.Config, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return corpus.Config{}, fmt.Errorf("failed to resolve corpus root %s: %w", root, err)
	}
	cfg := corpus.DefaultConfig(abs)

	if configFile == "" {
		if candidate := filepath.Join(abs, constants.DefaultConfigFileName); fileutil.FileExists(candidate) {
			configFile = candidate
		}
	}
	if configFile != "" {
		fileCfg, err := loadConfigFile(configFile)
		if err != nil {
			return corpus.Config{}, err
		}
		cfg = cfg.Merge(fileCfg)
	}

	cfg = cfg.Merge(flags)
	corpusFlagsLog.Printf("Resolved corpus config for %s: %+v", root, cfg)
	return cfg, nil
}
