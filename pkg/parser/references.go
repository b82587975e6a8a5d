package parser

import (
	"regexp"
	"slices"
	"strings"

	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/logger"
)

var referencesLog = logger.New("parser:references")

// Reference is one occurrence of a "domain.object_id" entity reference.
type Reference struct {
	Domain   string
	ObjectID string
	Location Location
	// Direct is set when the reference is a service call of the form
	// "script.<id>" rather than an entity id.
	Direct bool
}

// EntityID returns "domain.object_id".
func (r Reference) EntityID() string {
	return r.Domain + "." + r.ObjectID
}

var entityIDPattern = regexp.MustCompile(`^([a-z0-9_]+)\.([a-z0-9_]+)$`)

// SplitEntityID splits "domain.object_id". ok is false when s is not a
// well-formed entity id.
func SplitEntityID(s string) (domain, objectID string, ok bool) {
	m := entityIDPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// serviceKeys hold service names (input_boolean.turn_on), not entity ids.
var serviceKeys = []string{"service", "action"}

// proseKeys hold human-readable text that may mention ids in passing. Their
// values are only scanned when they are templates.
var proseKeys = []string{"alias", "description", "name", "icon", "message", "title", "subtitle"}

// entityIDKeys hold entity ids, alone or as a list.
var entityIDKeys = []string{"entity_id"}

// isTemplate reports whether text contains a Jinja expression or statement.
func isTemplate(text string) bool {
	return strings.Contains(text, "{{") || strings.Contains(text, "{%")
}

// ReferenceScanner finds references to a fixed set of domains inside string
// scalars, including Jinja templates such as "{{ is_state('input_boolean.x', 'on') }}".
type ReferenceScanner struct {
	domains []string
	pattern *regexp.Regexp
}

// NewReferenceScanner builds a scanner for domains.
func NewReferenceScanner(domains ...string) *ReferenceScanner {
	quoted := make([]string, 0, len(domains))
	for _, d := range domains {
		quoted = append(quoted, regexp.QuoteMeta(d))
	}
	// The leading group stands in for a word boundary that also rejects "_"
	// so "my_input_boolean.x" is not read as "input_boolean.x".
	pattern := regexp.MustCompile(`(?:^|[^a-z0-9_])(` + strings.Join(quoted, "|") + `)\.([a-z0-9_]+)`)
	return &ReferenceScanner{domains: domains, pattern: pattern}
}

// ScanText returns every (domain, object_id) in text with the byte offset of
// the domain.
func (s *ReferenceScanner) ScanText(text string) []TextMatch {
	var matches []TextMatch
	for _, idx := range s.pattern.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, TextMatch{
			Domain:   text[idx[2]:idx[3]],
			ObjectID: text[idx[4]:idx[5]],
			Offset:   idx[2],
		})
	}
	return matches
}

// TextMatch is one reference found by ScanText.
type TextMatch struct {
	Domain   string
	ObjectID string
	Offset   int
}

// Scan walks doc and returns every reference in the scanner's domains, in
// document order. Values of service keys are recorded as Direct references
// when they call a script by name; other service names are skipped. Script
// ids count only under entity_id keys or inside templates, so free text such
// as a notification body never invokes a script.
func (s *ReferenceScanner) Scan(doc *Document) []Reference {
	var refs []Reference
	s.walk(doc, doc.Root, "", &refs)
	referencesLog.Printf("Found %d references to %v in %s", len(refs), s.domains, doc.File)
	return refs
}

func (s *ReferenceScanner) walk(doc *Document, n *Node, key string, refs *[]Reference) {
	if n == nil {
		return
	}
	switch n.Kind {
	case MappingNode:
		for _, p := range n.Pairs {
			s.walk(doc, p.Value, p.Key, refs)
		}
	case SequenceNode:
		for _, item := range n.Items {
			s.walk(doc, item, key, refs)
		}
	case ScalarNode:
		if !n.IsString() || n.Tag != "" {
			return
		}
		if slices.Contains(serviceKeys, key) {
			s.scanService(doc, n, refs)
			return
		}
		template := isTemplate(n.Value)
		if !template && slices.Contains(proseKeys, key) {
			return
		}
		for _, m := range s.ScanText(n.Value) {
			if m.Domain == constants.ScriptDomain {
				if slices.Contains(constants.ScriptServices, m.ObjectID) {
					continue
				}
				if !template && !slices.Contains(entityIDKeys, key) {
					continue
				}
			}
			*refs = append(*refs, Reference{
				Domain:   m.Domain,
				ObjectID: m.ObjectID,
				Location: scalarLocation(doc, n, m),
			})
		}
	}
}

func (s *ReferenceScanner) scanService(doc *Document, n *Node, refs *[]Reference) {
	domain, object, ok := SplitEntityID(n.Value)
	if !ok || domain != constants.ScriptDomain || !slices.Contains(s.domains, domain) {
		return
	}
	if slices.Contains(constants.ScriptServices, object) {
		return
	}
	*refs = append(*refs, Reference{
		Domain:   domain,
		ObjectID: object,
		Location: doc.Loc(n),
		Direct:   true,
	})
}

// scalarLocation places a match inside a (possibly multi-line) scalar. Block
// scalars start on the line after their indicator and are counted by their
// decoded newlines. Flow scalars fold line breaks into spaces, so their line
// comes from the source text of the token. A match below the scalar's first
// line is reported without a column.
func scalarLocation(doc *Document, n *Node, m TextMatch) Location {
	loc := doc.Loc(n)
	if loc.Line == 0 {
		return loc
	}
	var lines int
	if n.Block {
		lines = strings.Count(n.Value[:m.Offset], "\n") + 1
	} else {
		lines = sourceLines(n, m)
	}
	if lines > 0 {
		loc.Line += lines
		loc.Column = 0
	}
	return loc
}

// sourceLines counts the source line breaks before match m in a flow scalar.
// Entity ids hold no whitespace or escapes, so the k-th occurrence of the id
// in the decoded value is the k-th occurrence in the source.
func sourceLines(n *Node, m TextMatch) int {
	if !strings.Contains(n.Raw, "\n") {
		return 0
	}
	id := m.Domain + "." + m.ObjectID
	k := strings.Count(n.Value[:m.Offset], id)
	raw := n.Raw
	pos := 0
	for i := 0; ; i++ {
		idx := strings.Index(raw[pos:], id)
		if idx < 0 {
			return 0
		}
		if i == k {
			return strings.Count(raw[:pos+idx], "\n")
		}
		pos += idx + len(id)
	}
}

// dashboardEntityKeys are the card options that name entities.
var dashboardEntityKeys = []string{"entity", "entity_id", "entities", "camera_image"}

// DashboardReferences returns every entity named by a dashboard document at
// any depth: scalar values and list items under dashboardEntityKeys that look
// like entity ids. Mappings inside "entities" lists are walked like any other.
func DashboardReferences(doc *Document) []Reference {
	var refs []Reference
	var walk func(n *Node, key string)
	walk = func(n *Node, key string) {
		if n == nil {
			return
		}
		switch n.Kind {
		case MappingNode:
			for _, p := range n.Pairs {
				walk(p.Value, p.Key)
			}
		case SequenceNode:
			for _, item := range n.Items {
				walk(item, key)
			}
		case ScalarNode:
			if !slices.Contains(dashboardEntityKeys, key) || !n.IsString() {
				return
			}
			for part := range strings.SplitSeq(n.Value, ",") {
				if domain, object, ok := SplitEntityID(part); ok {
					refs = append(refs, Reference{Domain: domain, ObjectID: object, Location: doc.Loc(n)})
				}
			}
		}
	}
	walk(doc.Root, "")
	referencesLog.Printf("Found %d dashboard entity references in %s", len(refs), doc.File)
	return refs
}
