// Package parser turns corpus documents into position-carrying node trees,
// checks their structure against embedded JSON schemas and extracts entity
// references from them.
package parser

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
	yamlparser "github.com/goccy/go-yaml/parser"
	"github.com/hacheck/hacheck/pkg/logger"
)

var documentLog = logger.New("parser:document")

// Document is one parsed corpus file.
type Document struct {
	// File is the path relative to the corpus root, forward slashes.
	File string
	Root *Node
}

// Loc returns the location of n inside the document.
func (d *Document) Loc(n *Node) Location {
	if n == nil {
		return Location{File: d.File}
	}
	return Location{File: d.File, Line: n.Line, Column: n.Column}
}

// ParseDocument parses YAML (or JSON) content. Only the first YAML document of
// a multi-document stream is used; an empty file yields a null root.
func ParseDocument(file string, content []byte) (*Document, error) {
	documentLog.Printf("Parsing %s (%d bytes)", file, len(content))

	if len(bytes.TrimSpace(content)) == 0 {
		return &Document{File: file, Root: &Node{Kind: NullNode}}, nil
	}

	f, err := yamlparser.ParseBytes(content, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML in %s:\n%s", file, yaml.FormatError(err, false, true))
	}
	if f == nil || len(f.Docs) == 0 {
		return &Document{File: file, Root: &Node{Kind: NullNode}}, nil
	}
	if len(f.Docs) > 1 {
		documentLog.Printf("%s has %d YAML documents, using the first", file, len(f.Docs))
	}

	return &Document{File: file, Root: newConverter().convert(f.Docs[0])}, nil
}
