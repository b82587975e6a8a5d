package parser

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

var schemaValidationLog = logger.New("parser:schema_validation")

//go:embed schemas/*.json
var schemaFS embed.FS

// DocumentKind names the expected structure of a corpus document.
type DocumentKind string

const (
	AutomationsDocument    DocumentKind = "automations"
	ScriptsDocument        DocumentKind = "scripts"
	HelpersDocument        DocumentKind = "helpers"
	EntityRegistryDocument DocumentKind = "entity_registry"
	DashboardDocument      DocumentKind = "dashboard"
)

// DocumentKinds lists every kind with an embedded schema.
var DocumentKinds = []DocumentKind{
	AutomationsDocument,
	ScriptsDocument,
	HelpersDocument,
	EntityRegistryDocument,
	DashboardDocument,
}

var (
	compileOnce     sync.Once
	compiledSchemas map[DocumentKind]*jsonschema.Schema
	compileErr      error
)

func compileSchemas() (map[DocumentKind]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		schemaValidationLog.Print("Compiling embedded document schemas")
		c := jsonschema.NewCompiler()
		compiled := make(map[DocumentKind]*jsonschema.Schema, len(DocumentKinds))
		for _, kind := range DocumentKinds {
			name := "schemas/" + string(kind) + ".json"
			raw, err := schemaFS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("failed to read embedded schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("failed to decode embedded schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("failed to add schema %s: %w", name, err)
				return
			}
			sch, err := c.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("failed to compile schema %s: %w", name, err)
				return
			}
			compiled[kind] = sch
		}
		compiledSchemas = compiled
	})
	return compiledSchemas, compileErr
}

// ValidateDocument checks doc against the schema for kind. The returned error
// names the line of the offending value when it can be located.
func ValidateDocument(kind DocumentKind, doc *Document) error {
	schemas, err := compileSchemas()
	if err != nil {
		return err
	}
	sch, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("no schema for document kind %q", kind)
	}

	// Round-trip through JSON so numbers reach the validator as json.Number.
	raw, err := json.Marshal(doc.Root.Interface())
	if err != nil {
		return fmt.Errorf("%s: cannot encode document for validation: %w", doc.File, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: cannot decode document for validation: %w", doc.File, err)
	}

	if err := sch.Validate(inst); err != nil {
		schemaValidationLog.Printf("Schema validation failed for %s (%s): %v", doc.File, kind, err)
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			loc := doc.Loc(lookupPath(doc.Root, deepestInstanceLocation(ve)))
			return fmt.Errorf("%s: document does not match the %s structure: %w", loc, kind, err)
		}
		return fmt.Errorf("%s: document does not match the %s structure: %w", doc.File, kind, err)
	}
	return nil
}

// deepestInstanceLocation returns the longest instance location in the cause
// tree, which is the most specific failing value.
func deepestInstanceLocation(ve *jsonschema.ValidationError) []string {
	best := ve.InstanceLocation
	for _, cause := range ve.Causes {
		if loc := deepestInstanceLocation(cause); len(loc) > len(best) {
			best = loc
		}
	}
	return best
}

// lookupPath resolves a JSON-pointer style token list against the node tree,
// stopping at the deepest node that exists.
func lookupPath(root *Node, tokens []string) *Node {
	cur := root
	for _, tok := range tokens {
		var next *Node
		switch cur.Kind {
		case MappingNode:
			next = cur.Get(tok)
		case SequenceNode:
			if i, err := strconv.Atoi(tok); err == nil && i >= 0 && i < len(cur.Items) {
				next = cur.Items[i]
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
	return cur
}
