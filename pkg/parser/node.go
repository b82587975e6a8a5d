package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
)

// NodeKind classifies a Node.
type NodeKind int

const (
	NullNode NodeKind = iota
	ScalarNode
	MappingNode
	SequenceNode
)

// ScalarType is the YAML type a scalar resolved to.
type ScalarType int

const (
	StringScalar ScalarType = iota
	IntScalar
	FloatScalar
	BoolScalar
)

// Node is a position-carrying view of a YAML document. It is built once from
// the goccy/go-yaml AST and never modified afterwards.
type Node struct {
	Kind  NodeKind
	Type  ScalarType
	Value string
	// Raw is the source text of a flow string scalar, line breaks included.
	Raw    string
	Tag    string
	Block  bool
	Pairs  []*Pair
	Items  []*Node
	Line   int
	Column int

	typed any
}

// Pair is one key/value entry of a mapping node.
type Pair struct {
	Key       string
	KeyLine   int
	KeyColumn int
	Value     *Node
}

// Get returns the value stored under key in a mapping node, or nil.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != MappingNode {
		return nil
	}
	for _, p := range n.Pairs {
		if p.Key == key {
			return p.Value
		}
	}
	return nil
}

// IsString reports whether n is a string scalar.
func (n *Node) IsString() bool {
	return n != nil && n.Kind == ScalarNode && n.Type == StringScalar
}

// Text returns the scalar text of n, or "" for non-scalars.
func (n *Node) Text() string {
	if n == nil || n.Kind != ScalarNode {
		return ""
	}
	return n.Value
}

// Interface converts the subtree into plain Go values
// (map[string]any, []any, string, int64, uint64, float64, bool, nil).
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case MappingNode:
		m := make(map[string]any, len(n.Pairs))
		for _, p := range n.Pairs {
			m[p.Key] = p.Value.Interface()
		}
		return m
	case SequenceNode:
		s := make([]any, 0, len(n.Items))
		for _, item := range n.Items {
			s = append(s, item.Interface())
		}
		return s
	case ScalarNode:
		if n.typed != nil {
			return n.typed
		}
		return n.Value
	default:
		return nil
	}
}

// converter turns goccy AST nodes into Nodes, resolving aliases against the
// anchors seen so far in the same document.
type converter struct {
	anchors map[string]*Node
}

func newConverter() *converter {
	return &converter{anchors: make(map[string]*Node)}
}

func (c *converter) convert(n ast.Node) *Node {
	if n == nil {
		return &Node{Kind: NullNode}
	}
	line, col := position(n)

	switch v := n.(type) {
	case *ast.DocumentNode:
		return c.convert(v.Body)
	case *ast.MappingNode:
		out := &Node{Kind: MappingNode, Line: line, Column: col}
		for _, mv := range v.Values {
			out.Pairs = append(out.Pairs, c.convertPairs(mv)...)
		}
		return out
	case *ast.MappingValueNode:
		out := &Node{Kind: MappingNode, Line: line, Column: col}
		out.Pairs = c.convertPairs(v)
		if len(out.Pairs) > 0 {
			out.Line, out.Column = out.Pairs[0].KeyLine, out.Pairs[0].KeyColumn
		}
		return out
	case *ast.SequenceNode:
		out := &Node{Kind: SequenceNode, Line: line, Column: col}
		for _, item := range v.Values {
			out.Items = append(out.Items, c.convert(item))
		}
		return out
	case *ast.AnchorNode:
		target := c.convert(v.Value)
		if v.Name != nil {
			c.anchors[v.Name.GetToken().Value] = target
		}
		return target
	case *ast.AliasNode:
		name := ""
		if v.Value != nil {
			name = v.Value.GetToken().Value
		}
		if target, ok := c.anchors[name]; ok {
			return relocate(target, line, col)
		}
		return &Node{Kind: ScalarNode, Value: "*" + name, Line: line, Column: col}
	case *ast.TagNode:
		tag := v.Start.Value
		inner := c.convert(v.Value)
		switch tag {
		case "!!str", "!!int", "!!float", "!!bool", "!!null", "!!map", "!!seq":
			return inner
		}
		// Local tags such as !secret, !include and !input keep their
		// argument as an opaque string.
		return &Node{Kind: ScalarNode, Type: StringScalar, Value: strings.TrimSpace(tag + " " + inner.Value), Tag: tag, Line: line, Column: col}
	case *ast.StringNode:
		raw := ""
		if tk := v.GetToken(); tk != nil {
			raw = strings.TrimLeft(tk.Origin, " \t\r\n")
		}
		return &Node{Kind: ScalarNode, Type: StringScalar, Value: v.Value, Raw: raw, Line: line, Column: col}
	case *ast.LiteralNode:
		text := ""
		if v.Value != nil {
			text = v.Value.Value
		}
		return &Node{Kind: ScalarNode, Type: StringScalar, Value: text, Block: true, Line: line, Column: col}
	case *ast.IntegerNode:
		return &Node{Kind: ScalarNode, Type: IntScalar, Value: v.GetToken().Value, typed: v.Value, Line: line, Column: col}
	case *ast.FloatNode:
		return &Node{Kind: ScalarNode, Type: FloatScalar, Value: v.GetToken().Value, typed: v.Value, Line: line, Column: col}
	case *ast.BoolNode:
		return &Node{Kind: ScalarNode, Type: BoolScalar, Value: strconv.FormatBool(v.Value), typed: v.Value, Line: line, Column: col}
	case *ast.NullNode:
		return &Node{Kind: NullNode, Line: line, Column: col}
	case *ast.CommentGroupNode:
		return &Node{Kind: NullNode, Line: line, Column: col}
	default:
		return &Node{Kind: ScalarNode, Type: StringScalar, Value: n.GetToken().Value, Line: line, Column: col}
	}
}

// relocate copies the anchored subtree n with every position set to the
// alias that reached it, so each alias occurrence is located where it is
// written rather than at its anchor.
func relocate(n *Node, line, col int) *Node {
	out := *n
	out.Line, out.Column = line, col
	out.Raw, out.Block = "", false
	out.Pairs, out.Items = nil, nil
	for _, p := range n.Pairs {
		out.Pairs = append(out.Pairs, &Pair{Key: p.Key, KeyLine: line, KeyColumn: col, Value: relocate(p.Value, line, col)})
	}
	for _, item := range n.Items {
		out.Items = append(out.Items, relocate(item, line, col))
	}
	return &out
}

func (c *converter) convertPairs(mv *ast.MappingValueNode) []*Pair {
	if _, ok := mv.Key.(*ast.MergeKeyNode); ok {
		// "<<: *anchor" splices the anchored mapping's pairs in place.
		merged := c.convert(mv.Value)
		var pairs []*Pair
		switch merged.Kind {
		case MappingNode:
			pairs = append(pairs, merged.Pairs...)
		case SequenceNode:
			for _, item := range merged.Items {
				pairs = append(pairs, item.Pairs...)
			}
		}
		return pairs
	}

	keyLine, keyCol := position(mv.Key)
	return []*Pair{{
		Key:       keyText(mv.Key),
		KeyLine:   keyLine,
		KeyColumn: keyCol,
		Value:     c.convert(mv.Value),
	}}
}

func keyText(k ast.MapKeyNode) string {
	switch v := k.(type) {
	case *ast.StringNode:
		return v.Value
	case *ast.MappingKeyNode:
		if v.Value != nil {
			return v.Value.GetToken().Value
		}
		return ""
	case nil:
		return ""
	default:
		return v.GetToken().Value
	}
}

func position(n ast.Node) (int, int) {
	if n == nil {
		return 0, 0
	}
	tk := n.GetToken()
	if tk == nil || tk.Position == nil {
		return 0, 0
	}
	return tk.Position.Line, tk.Position.Column
}

// Location identifies a position inside a corpus document. File is relative
// to the corpus root with forward slashes; Line and Column are 1-based and
// zero when unknown.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// String formats the location as file:line:column, omitting unknown parts.
func (l Location) String() string {
	switch {
	case l.Line == 0:
		return l.File
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
}

// Compare orders locations by file, line, then column.
func (l Location) Compare(o Location) int {
	if c := strings.Compare(l.File, o.File); c != 0 {
		return c
	}
	if l.Line != o.Line {
		if l.Line < o.Line {
			return -1
		}
		return 1
	}
	if l.Column != o.Column {
		if l.Column < o.Column {
			return -1
		}
		return 1
	}
	return 0
}
