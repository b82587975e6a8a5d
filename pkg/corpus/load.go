// Package corpus loads a Home Assistant configuration directory into an
// immutable Snapshot of typed definition and reference sets.
//
// Automations, scripts and the entity registry are required. Helper
// registries (one file per helper domain) and dashboards are optional. Any
// document that cannot be read, parsed or matched against its expected
// structure makes the whole corpus unreadable; no partial snapshot is ever
// returned.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/fileutil"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/hacheck/hacheck/pkg/parser"
	"github.com/hacheck/hacheck/pkg/timeutil"
	"golang.org/x/mod/semver"
)

var loadLog = logger.New("corpus:load")

type loader struct {
	cfg       Config
	collector *ErrorCollector
	snap      *Snapshot
	scripts   *parser.ReferenceScanner
	helpers   *parser.ReferenceScanner
}

// Load reads the corpus described by cfg. On failure the error matches
// ErrCorpusUnreadable and carries one *UnreadableError per bad document
// (see UnreadableDocuments), unless cfg itself is invalid.
func Load(cfg Config) (*Snapshot, error) {
	start := time.Now()
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, err
	}
	loadLog.Printf("Loading corpus: root=%s, fail_fast=%v", cfg.Root, cfg.FailFast)

	l := &loader{
		cfg:       cfg,
		collector: NewErrorCollector(cfg.FailFast),
		snap:      &Snapshot{Root: cfg.Root},
		scripts:   parser.NewReferenceScanner(constants.ScriptDomain),
		helpers:   parser.NewReferenceScanner(constants.HelperDomains...),
	}

	steps := []func() error{
		l.loadAutomations,
		l.loadScripts,
		l.loadHelpers,
		l.loadRegistry,
		l.loadDashboards,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			loadLog.Printf("Stopping after first unreadable document: %v", err)
			break
		}
	}

	if l.collector.HasErrors() {
		loadLog.Printf("Corpus unreadable: %d document errors", l.collector.Count())
		return nil, l.collector.Error()
	}

	loadLog.Printf("Loaded %d documents in %s", len(l.snap.Files), timeutil.FormatDuration(time.Since(start)))
	return l.snap, nil
}

// readDocument reads, parses and structure-checks one document. A missing
// optional document yields (nil, nil).
func (l *loader) readDocument(path string, kind parser.DocumentKind, required bool) (*parser.Document, error) {
	abs := fileutil.ResolveUnder(l.cfg.Root, path)
	name := fileutil.RelativeSlash(l.cfg.Root, abs)

	content, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if !required {
				loadLog.Printf("Optional document %s not present", name)
				return nil, nil
			}
			return nil, unreadable(name, "required %s document %s is missing", kind, name)
		}
		return nil, unreadable(name, "cannot read %s: %w", name, err)
	}

	doc, err := parser.ParseDocument(name, content)
	if err != nil {
		return nil, &UnreadableError{Path: name, Err: err}
	}
	if err := parser.ValidateDocument(kind, doc); err != nil {
		return nil, &UnreadableError{Path: name, Err: err}
	}

	l.snap.Files = append(l.snap.Files, name)
	return doc, nil
}

func (l *loader) scanReferences(doc *parser.Document) {
	for _, ref := range l.scripts.Scan(doc) {
		l.snap.ScriptInvocations = append(l.snap.ScriptInvocations, ScriptInvocation{
			ScriptID: ref.ObjectID,
			Location: ref.Location,
			Direct:   ref.Direct,
		})
	}
	for _, ref := range l.helpers.Scan(doc) {
		l.snap.HelperReferences = append(l.snap.HelperReferences, HelperReference{
			EntityID: ref.EntityID(),
			Domain:   ref.Domain,
			ObjectID: ref.ObjectID,
			Location: ref.Location,
		})
	}
}

func (l *loader) loadAutomations() error {
	doc, err := l.readDocument(l.cfg.AutomationsFile, parser.AutomationsDocument, true)
	if err != nil {
		return l.collector.Add(err)
	}

	for _, item := range doc.Root.Items {
		l.snap.Automations = append(l.snap.Automations, Automation{
			ID:       item.Get("id").Text(),
			Alias:    item.Get("alias").Text(),
			Location: doc.Loc(item),
		})
	}
	l.scanReferences(doc)
	loadLog.Printf("Loaded %d automations from %s", len(l.snap.Automations), doc.File)
	return nil
}

func (l *loader) loadScripts() error {
	doc, err := l.readDocument(l.cfg.ScriptsFile, parser.ScriptsDocument, true)
	if err != nil {
		return l.collector.Add(err)
	}

	seen := make(map[string]parser.Location)
	for _, p := range doc.Root.Pairs {
		loc := parser.Location{File: doc.File, Line: p.KeyLine, Column: p.KeyColumn}
		if first, dup := seen[p.Key]; dup {
			return l.collector.Add(unreadable(doc.File, "%s: script %q is already defined at %s", loc, p.Key, first))
		}
		seen[p.Key] = loc
		l.snap.Scripts = append(l.snap.Scripts, ScriptDefinition{ID: p.Key, Location: loc})
	}
	l.scanReferences(doc)
	loadLog.Printf("Loaded %d scripts from %s", len(l.snap.Scripts), doc.File)
	return nil
}

func (l *loader) loadHelpers() error {
	for _, domain := range constants.HelperDomains {
		doc, err := l.readDocument(constants.HelperRegistryPath(l.cfg.HelpersDir, domain), parser.HelpersDocument, false)
		if err != nil {
			if err := l.collector.Add(err); err != nil {
				return err
			}
			continue
		}
		if doc == nil {
			continue
		}

		records := doc.Root
		if records.Kind == parser.MappingNode {
			records = records.Get("data").Get("items")
		}
		if records == nil {
			continue
		}
		for _, item := range records.Items {
			id := item.Get("id")
			l.snap.Helpers = append(l.snap.Helpers, HelperDefinition{
				Domain:   domain,
				ID:       id.Text(),
				Name:     item.Get("name").Text(),
				Category: strings.TrimSpace(item.Get("category").Text()),
				Location: doc.Loc(id),
			})
		}
		loadLog.Printf("Loaded %d %s helpers from %s", len(records.Items), domain, doc.File)
	}
	return nil
}

func (l *loader) loadRegistry() error {
	doc, err := l.readDocument(l.cfg.EntityRegistryFile, parser.EntityRegistryDocument, true)
	if err != nil {
		return l.collector.Add(err)
	}

	entries := doc.Root
	if entries.Kind == parser.MappingNode {
		version, err := registryVersion(doc)
		if err != nil {
			return l.collector.Add(err)
		}
		l.snap.RegistryVersion = version
		entries = entries.Get("data").Get("entities")
		if entries == nil {
			return nil
		}
	}

	for _, item := range entries.Items {
		entityID := item.Get("entity_id")
		l.snap.Registry = append(l.snap.Registry, RegistryEntry{
			EntityID:     entityID.Text(),
			UniqueID:     item.Get("unique_id").Text(),
			Platform:     item.Get("platform").Text(),
			OriginalName: item.Get("original_name").Text(),
			Name:         item.Get("name").Text(),
			Location:     doc.Loc(entityID),
		})
	}
	loadLog.Printf("Loaded %d registry entries from %s (version %q)", len(l.snap.Registry), doc.File, l.snap.RegistryVersion)
	return nil
}

// registryVersion reads the storage envelope version and rejects major
// versions the loader does not understand.
func registryVersion(doc *parser.Document) (string, error) {
	versionNode := doc.Root.Get("version")
	version := fmt.Sprintf("v%s", versionNode.Text())
	if minor := doc.Root.Get("minor_version"); minor != nil && minor.Text() != "" {
		version += "." + minor.Text()
	}
	if !semver.IsValid(version) {
		return "", unreadable(doc.File, "%s: invalid entity registry version %q", doc.Loc(versionNode), version)
	}
	if major := semver.Major(version); major != constants.SupportedEntityRegistryMajor {
		return "", unreadable(doc.File, "%s: unsupported entity registry version %s (supported: %s)",
			doc.Loc(versionNode), major, constants.SupportedEntityRegistryMajor)
	}
	return semver.Canonical(version), nil
}

func (l *loader) loadDashboards() error {
	files, err := fileutil.GlobFiles(l.cfg.Root, l.cfg.DashboardGlobs)
	if err != nil {
		return l.collector.Add(unreadable("", "cannot list dashboards: %w", err))
	}

	for _, file := range files {
		doc, err := l.readDocument(file, parser.DashboardDocument, true)
		if err != nil {
			if err := l.collector.Add(err); err != nil {
				return err
			}
			continue
		}
		refs := parser.DashboardReferences(doc)
		for _, ref := range refs {
			l.snap.DashboardReferences = append(l.snap.DashboardReferences, EntityReference{
				EntityID: ref.EntityID(),
				Location: ref.Location,
			})
		}
		loadLog.Printf("Loaded %d entity references from dashboard %s", len(refs), doc.File)
	}
	return nil
}
