package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"gopkg.in/yaml.v3"
)

// Document is a parsed source file: the tree plus what is needed to turn
// line/column positions into byte offsets and source snippets.
type Document struct {
	Filename string
	Source   []byte
	Root     *Node

	lineStarts []int
	// nodes counts converted nodes, aliases included, against nodeBudget
	nodes      int
	nodeBudget int
}

// minNodeBudget and nodesPerByte bound how far aliases may expand a
// document: at most max(minNodeBudget, nodesPerByte*len(src)) nodes.
const (
	minNodeBudget = 10_000
	nodesPerByte  = 100
)

var yamlErrorLinePattern = regexp.MustCompile(`line (\d+)`)

// Parse reads YAML (or JSON) source into a position-annotated tree. Dates are
// not resolved: `2020-01-01` stays the string the user wrote.
func Parse(filename string, src []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(src, &root); err != nil {
		return nil, &ParseError{
			Filename: filename,
			Line:     lineFromYAMLError(err),
			Message:  "the document is not valid YAML",
			Cause:    err,
		}
	}

	doc := &Document{
		Filename:   filename,
		Source:     src,
		lineStarts: lineStarts(src),
		nodeBudget: max(minNodeBudget, nodesPerByte*len(src)),
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, &ParseError{Filename: filename, Message: "the document is empty"}
	}

	tree, err := doc.convert(root.Content[0])
	if err != nil {
		return nil, err
	}
	if tree.Kind == NullNode {
		return nil, &ParseError{Filename: filename, Message: "the document is empty"}
	}
	if tree.Kind != MapNode {
		return nil, &ParseError{
			Filename: filename,
			Line:     tree.Range.Start.Line,
			Message:  fmt.Sprintf("the document root must be a mapping, found a %s", tree.Kind),
		}
	}

	doc.Root = tree
	return doc, nil
}

// Range covers the whole source text.
func (d *Document) Range() hcl.Range {
	start := hcl.Pos{Line: 1, Column: 1, Byte: 0}
	if len(d.lineStarts) == 0 {
		return hcl.Range{Filename: d.Filename, Start: start, End: start}
	}
	lastLine := len(d.lineStarts)
	lastStart := d.lineStarts[lastLine-1]
	end := hcl.Pos{
		Line:   lastLine,
		Column: utf8.RuneCountInString(strings.TrimRight(string(d.Source[lastStart:]), "\r\n")) + 1,
		Byte:   len(d.Source),
	}
	return hcl.Range{Filename: d.Filename, Start: start, End: end}
}

func (d *Document) convert(n *yaml.Node) (*Node, error) {
	d.nodes++
	if d.nodes > d.nodeBudget {
		return nil, &ParseError{
			Filename: d.Filename,
			Line:     n.Line,
			Message:  fmt.Sprintf("the document expands to more than %d values; aliases are nested too deeply", d.nodeBudget),
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &Node{Kind: NullNode, Range: d.point(n.Line, n.Column)}, nil
		}
		return d.convert(n.Content[0])

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, &ParseError{Filename: d.Filename, Line: n.Line, Message: "dangling alias"}
		}
		out, err := d.convert(n.Alias)
		if err != nil {
			return nil, err
		}
		// The alias is reported where it is used, not where its anchor lives.
		out.Range = d.point(n.Line, n.Column)
		out.Range.End = d.pos(n.Line, n.Column+utf8.RuneCountInString(n.Value)+1)
		return out, nil

	case yaml.ScalarNode:
		if n.ShortTag() == TagNull {
			return &Node{Kind: NullNode, Tag: TagNull, Value: n.Value, Range: d.scalarRange(n)}, nil
		}
		return &Node{Kind: ScalarNode, Tag: n.ShortTag(), Value: n.Value, Range: d.scalarRange(n)}, nil

	case yaml.SequenceNode:
		out := &Node{Kind: ListNode, Items: make([]*Node, 0, len(n.Content))}
		for _, item := range n.Content {
			child, err := d.convert(item)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, child)
		}
		out.Range = d.containerRange(n, out)
		return out, nil

	case yaml.MappingNode:
		out := &Node{Kind: MapNode, Fields: make([]*Field, 0, len(n.Content)/2)}
		var merged []*Field
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, &ParseError{
					Filename: d.Filename,
					Line:     keyNode.Line,
					Message:  "mapping keys must be plain values",
				}
			}
			value, err := d.convert(valueNode)
			if err != nil {
				return nil, err
			}
			if keyNode.ShortTag() == "!!merge" {
				merged = append(merged, mergeSources(value)...)
				continue
			}
			out.Fields = append(out.Fields, &Field{
				Key:      keyNode.Value,
				KeyRange: d.scalarRange(keyNode),
				Value:    value,
			})
		}
		for _, f := range merged {
			if out.Lookup(f.Key) == nil {
				out.Fields = append(out.Fields, f)
			}
		}
		out.Range = d.containerRange(n, out)
		return out, nil
	}

	return nil, &ParseError{Filename: d.Filename, Line: n.Line, Message: "unsupported node"}
}

func mergeSources(value *Node) []*Field {
	switch value.Kind {
	case MapNode:
		return value.Fields
	case ListNode:
		var fields []*Field
		for _, item := range value.Items {
			if item.Kind == MapNode {
				fields = append(fields, item.Fields...)
			}
		}
		return fields
	}
	return nil
}

func (d *Document) containerRange(n *yaml.Node, out *Node) hcl.Range {
	rng := d.point(n.Line, n.Column)
	var last hcl.Range
	switch {
	case len(out.Items) > 0:
		last = out.Items[len(out.Items)-1].Range
	case len(out.Fields) > 0:
		last = out.Fields[len(out.Fields)-1].Range()
	default:
		// `{}` or `[]`
		rng.End = d.pos(n.Line, n.Column+2)
		return rng
	}
	rng.End = last.End
	return rng
}

func (d *Document) scalarRange(n *yaml.Node) hcl.Range {
	rng := d.point(n.Line, n.Column)
	if n.Line < 1 || n.Line > len(d.lineStarts) {
		return rng
	}
	lineText := d.line(n.Line)
	lineEnd := d.pos(n.Line, utf8.RuneCountInString(strings.TrimRight(lineText, " \t\r"))+1)

	switch {
	case n.Style&yaml.DoubleQuotedStyle != 0, n.Style&yaml.SingleQuotedStyle != 0:
		if width, ok := quotedWidth(lineText, n.Column, n.Style&yaml.DoubleQuotedStyle != 0); ok {
			rng.End = d.pos(n.Line, n.Column+width)
		} else {
			rng.End = lineEnd
		}
	case n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0, strings.Contains(n.Value, "\n"):
		rng.End = lineEnd
	case n.Value == "" && n.ShortTag() == TagNull:
		// implicit null: nothing was written
	default:
		rng.End = d.pos(n.Line, n.Column+utf8.RuneCountInString(n.Value))
	}
	if rng.End.Byte < rng.Start.Byte {
		rng.End = rng.Start
	}
	return rng
}

// quotedWidth measures a quoted scalar starting at column col (1-based) of
// line, including both quotes.
func quotedWidth(line string, col int, double bool) (int, bool) {
	runes := []rune(line)
	if col < 1 || col > len(runes) {
		return 0, false
	}
	quote := '\''
	if double {
		quote = '"'
	}
	for i := col; i < len(runes); i++ {
		switch {
		case double && runes[i] == '\\':
			i++
		case runes[i] == quote:
			if !double && i+1 < len(runes) && runes[i+1] == '\'' {
				i++
				continue
			}
			return i - col + 2, true
		}
	}
	return 0, false
}

func (d *Document) point(line, col int) hcl.Range {
	p := d.pos(line, col)
	return hcl.Range{Filename: d.Filename, Start: p, End: p}
}

func (d *Document) pos(line, col int) hcl.Pos {
	if line < 1 || line > len(d.lineStarts) {
		return hcl.Pos{Line: line, Column: col}
	}
	start := d.lineStarts[line-1]
	offset := start
	for i := 1; i < col && offset < len(d.Source); i++ {
		r, size := utf8.DecodeRune(d.Source[offset:])
		if r == '\n' {
			break
		}
		offset += size
	}
	return hcl.Pos{Line: line, Column: col, Byte: offset}
}

func (d *Document) line(line int) string {
	start := d.lineStarts[line-1]
	end := len(d.Source)
	if line < len(d.lineStarts) {
		end = d.lineStarts[line] - 1
	}
	if end < start {
		end = start
	}
	return string(d.Source[start:end])
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineFromYAMLError(err error) int {
	m := yamlErrorLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}
