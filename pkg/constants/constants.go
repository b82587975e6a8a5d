// Package constants holds names and defaults shared across hacheck.
package constants

import (
	"path/filepath"
	"slices"
)

// CommandPrefix is the executable name used in help examples.
type CommandPrefix string

// CLIName is the name users type to invoke the tool.
const CLIName CommandPrefix = "hacheck"

// Version is overridden at build time with -ldflags "-X ...constants.Version=v1.2.3".
var Version = "dev"

// Default corpus layout, relative to the corpus root.
const (
	DefaultAutomationsFile    = "automations.yaml"
	DefaultScriptsFile        = "scripts.yaml"
	DefaultHelpersDir         = "helpers"
	DefaultEntityRegistryFile = ".storage/core.entity_registry"
	DefaultConfigFileName     = ".hacheck.yaml"
)

// DefaultDashboardGlobs lists where dashboard documents are looked for.
var DefaultDashboardGlobs = []string{
	"dashboards/*.yaml",
	".storage/lovelace*",
}

// Domains that carry special meaning to the checker.
const (
	ScriptDomain = "script"
)

// HelperDomains is the fixed set of user-defined helper domains, in the
// order their registries are loaded and reported.
var HelperDomains = []string{
	"input_boolean",
	"input_button",
	"input_datetime",
	"input_number",
	"input_select",
	"input_text",
	"counter",
	"timer",
	"schedule",
}

// IsHelperDomain reports whether domain is one of HelperDomains.
func IsHelperDomain(domain string) bool {
	return slices.Contains(HelperDomains, domain)
}

// ScriptServices are services of the script domain. "script.turn_on" is a
// service call, not an invocation of a script named turn_on.
var ScriptServices = []string{"turn_on", "turn_off", "toggle", "reload"}

// SupportedEntityRegistryMajor is the storage format major version the
// entity registry loader understands, in semver form.
const SupportedEntityRegistryMajor = "v1"

// HelperRegistryPath returns the default helper registry file for domain.
func HelperRegistryPath(helpersDir, domain string) string {
	return filepath.Join(helpersDir, domain+".yaml")
}
