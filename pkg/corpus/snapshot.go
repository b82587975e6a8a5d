package corpus

import "github.com/hacheck/hacheck/pkg/parser"

// Snapshot is the parsed, typed content of one corpus. It is built once by
// Load and treated as read-only afterwards.
type Snapshot struct {
	// Root is the absolute corpus root the snapshot was loaded from.
	Root string
	// Files lists every document that was read, relative to Root, in load order.
	Files []string

	Automations       []Automation
	Scripts           []ScriptDefinition
	ScriptInvocations []ScriptInvocation
	Helpers           []HelperDefinition
	HelperReferences  []HelperReference
	Registry          []RegistryEntry
	// RegistryVersion is the canonical semver of the registry storage format,
	// empty when the registry was a bare list.
	RegistryVersion     string
	DashboardReferences []EntityReference
}

// Automation is one rule of the automations document.
type Automation struct {
	ID       string
	Alias    string
	Location parser.Location
}

// ScriptDefinition is one entry of the scripts document.
type ScriptDefinition struct {
	ID       string
	Location parser.Location
}

// ScriptInvocation is a reference to a script found in an automation or a
// script. Direct is set for "service: script.<id>" calls.
type ScriptInvocation struct {
	ScriptID string
	Location parser.Location
	Direct   bool
}

// HelperDefinition is one record of a helper registry document.
type HelperDefinition struct {
	Domain   string
	ID       string
	Name     string
	Category string
	Location parser.Location
}

// EntityID returns the helper's defined "domain.id".
func (h HelperDefinition) EntityID() string {
	return h.Domain + "." + h.ID
}

// HelperReference is a "domain.object_id" in a helper domain found in an
// automation or a script.
type HelperReference struct {
	EntityID string
	Domain   string
	ObjectID string
	Location parser.Location
}

// RegistryEntry maps a stable unique id to the live entity id.
type RegistryEntry struct {
	EntityID     string
	UniqueID     string
	Platform     string
	OriginalName string
	Name         string
	Location     parser.Location
}

// EntityReference is an entity named by a dashboard.
type EntityReference struct {
	EntityID string
	Location parser.Location
}

// Stats summarises a snapshot for display.
type Stats struct {
	Root              string `console:"header:Corpus"`
	Documents         int    `console:"header:Documents"`
	Automations       int    `console:"header:Automations"`
	Scripts           int    `console:"header:Scripts"`
	ScriptInvocations int    `console:"header:Script Calls"`
	Helpers           int    `console:"header:Helpers"`
	HelperReferences  int    `console:"header:Helper References"`
	RegistryEntries   int    `console:"header:Registry Entries"`
	RegistryVersion   string `console:"header:Registry Version,omitempty"`
	DashboardEntities int    `console:"header:Dashboard Entities"`
}

// Stats returns the snapshot counts.
func (s *Snapshot) Stats() Stats {
	return Stats{
		Root:              s.Root,
		Documents:         len(s.Files),
		Automations:       len(s.Automations),
		Scripts:           len(s.Scripts),
		ScriptInvocations: len(s.ScriptInvocations),
		Helpers:           len(s.Helpers),
		HelperReferences:  len(s.HelperReferences),
		RegistryEntries:   len(s.Registry),
		RegistryVersion:   s.RegistryVersion,
		DashboardEntities: len(s.DashboardReferences),
	}
}
