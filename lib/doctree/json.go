// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package doctree

import (
	"encoding/json"
	"fmt"
)

// The wire format is the Pandoc JSON AST: every node is an object with
// a "t" constructor tag and, when the constructor takes arguments, a
// "c" payload. Single-argument constructors store the argument
// directly in "c"; multi-argument constructors store a positional
// array. Field order is "t" then "c", which the encoder guarantees by
// marshaling through the structs below.

type taggedNode struct {
	T string `json:"t"`
	C any    `json:"c"`
}

type tagOnly struct {
	T string `json:"t"`
}

type docJSON struct {
	PandocAPIVersion []int          `json:"pandoc-api-version"`
	Meta             map[string]any `json:"meta"`
	Blocks           []any          `json:"blocks"`
}

// Parse decodes a full document from Pandoc JSON.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalJSON encodes the document in the Pandoc wire format.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := docJSON{
		PandocAPIVersion: d.PandocAPIVersion,
		Meta:             d.Meta,
		Blocks:           encodeBlocks(d.Blocks),
	}
	if out.PandocAPIVersion == nil {
		out.PandocAPIVersion = []int{1, 23, 1}
	}
	if out.Meta == nil {
		out.Meta = map[string]any{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the document from the Pandoc wire format.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		PandocAPIVersion []int             `json:"pandoc-api-version"`
		Meta             map[string]any    `json:"meta"`
		Blocks           []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	blocks, err := decodeBlocks(raw.Blocks, "blocks")
	if err != nil {
		return err
	}
	d.PandocAPIVersion = raw.PandocAPIVersion
	d.Meta = raw.Meta
	d.Blocks = blocks
	return nil
}

// MarshalBlock encodes a single block node.
func MarshalBlock(b Block) ([]byte, error) {
	return json.Marshal(encodeBlock(b))
}

// UnmarshalBlock decodes a single block node.
func UnmarshalBlock(data []byte) (Block, error) {
	return decodeBlock(json.RawMessage(data), "block")
}

// Encoding.

func encodeBlocks(blocks []Block) []any {
	out := make([]any, len(blocks))
	for i, b := range blocks {
		out[i] = encodeBlock(b)
	}
	return out
}

func encodeInlines(inlines []Inline) []any {
	out := make([]any, len(inlines))
	for i, in := range inlines {
		out[i] = encodeInline(in)
	}
	return out
}

func encodeBlockLists(lists [][]Block) []any {
	out := make([]any, len(lists))
	for i, l := range lists {
		out[i] = encodeBlocks(l)
	}
	return out
}

func encodeInlineLists(lists [][]Inline) []any {
	out := make([]any, len(lists))
	for i, l := range lists {
		out[i] = encodeInlines(l)
	}
	return out
}

func encodeAttr(a Attr) []any {
	classes := make([]any, len(a.Classes))
	for i, c := range a.Classes {
		classes[i] = c
	}
	pairs := make([]any, len(a.KeyVals))
	for i, kv := range a.KeyVals {
		pairs[i] = []any{kv.Key, kv.Value}
	}
	return []any{a.Identifier, classes, pairs}
}

func encodeCaption(c Caption) []any {
	var short any
	if c.Short != nil {
		short = encodeInlines(c.Short)
	}
	return []any{short, encodeBlocks(c.Blocks)}
}

func encodeColSpec(cs ColSpec) []any {
	var width any
	if cs.Width.Default {
		width = tagOnly{T: "ColWidthDefault"}
	} else {
		width = taggedNode{T: "ColWidth", C: cs.Width.Width}
	}
	return []any{tagOnly{T: string(cs.Align)}, width}
}

func encodeRows(rows []Row) []any {
	out := make([]any, len(rows))
	for i := range rows {
		out[i] = encodeRow(&rows[i])
	}
	return out
}

func encodeRow(r *Row) any {
	cells := make([]any, len(r.Cells))
	for i := range r.Cells {
		cells[i] = encodeCell(&r.Cells[i])
	}
	return taggedNode{T: "Row", C: []any{encodeAttr(r.Attr), cells}}
}

func encodeCell(c *Cell) any {
	return taggedNode{T: "Cell", C: []any{
		encodeAttr(c.Attr),
		tagOnly{T: string(c.Align)},
		c.RowSpan,
		c.ColSpan,
		encodeBlocks(c.Blocks),
	}}
}

func encodeCitation(c Citation) any {
	return struct {
		ID      string  `json:"citationId"`
		Prefix  []any   `json:"citationPrefix"`
		Suffix  []any   `json:"citationSuffix"`
		Mode    tagOnly `json:"citationMode"`
		NoteNum int     `json:"citationNoteNum"`
		Hash    int     `json:"citationHash"`
	}{
		ID:      c.ID,
		Prefix:  encodeInlines(c.Prefix),
		Suffix:  encodeInlines(c.Suffix),
		Mode:    tagOnly{T: c.Mode},
		NoteNum: c.NoteNum,
		Hash:    c.Hash,
	}
}

func encodeBlock(b Block) any {
	switch n := b.(type) {
	case *Plain:
		return taggedNode{T: "Plain", C: encodeInlines(n.Inlines)}
	case *Para:
		return taggedNode{T: "Para", C: encodeInlines(n.Inlines)}
	case *LineBlock:
		return taggedNode{T: "LineBlock", C: encodeInlineLists(n.Lines)}
	case *CodeBlock:
		return taggedNode{T: "CodeBlock", C: []any{encodeAttr(n.Attr), n.Text}}
	case *RawBlock:
		return taggedNode{T: "RawBlock", C: []any{n.Format, n.Text}}
	case *BlockQuote:
		return taggedNode{T: "BlockQuote", C: encodeBlocks(n.Blocks)}
	case *OrderedList:
		listAttrs := []any{n.Attrs.Start, tagOnly{T: n.Attrs.Style}, tagOnly{T: n.Attrs.Delim}}
		return taggedNode{T: "OrderedList", C: []any{listAttrs, encodeBlockLists(n.Items)}}
	case *BulletList:
		return taggedNode{T: "BulletList", C: encodeBlockLists(n.Items)}
	case *DefinitionList:
		items := make([]any, len(n.Items))
		for i, item := range n.Items {
			items[i] = []any{encodeInlines(item.Term), encodeBlockLists(item.Definitions)}
		}
		return taggedNode{T: "DefinitionList", C: items}
	case *Header:
		return taggedNode{T: "Header", C: []any{n.Level, encodeAttr(n.Attr), encodeInlines(n.Inlines)}}
	case *HorizontalRule:
		return tagOnly{T: "HorizontalRule"}
	case *Table:
		colSpecs := make([]any, len(n.ColSpecs))
		for i, cs := range n.ColSpecs {
			colSpecs[i] = encodeColSpec(cs)
		}
		bodies := make([]any, len(n.Bodies))
		for i := range n.Bodies {
			body := &n.Bodies[i]
			bodies[i] = taggedNode{T: "TableBody", C: []any{
				encodeAttr(body.Attr),
				body.RowHeadColumns,
				encodeRows(body.HeadRows),
				encodeRows(body.Rows),
			}}
		}
		return taggedNode{T: "Table", C: []any{
			encodeAttr(n.Attr),
			encodeCaption(n.Caption),
			colSpecs,
			taggedNode{T: "TableHead", C: []any{encodeAttr(n.Head.Attr), encodeRows(n.Head.Rows)}},
			bodies,
			taggedNode{T: "TableFoot", C: []any{encodeAttr(n.Foot.Attr), encodeRows(n.Foot.Rows)}},
		}}
	case *Figure:
		return taggedNode{T: "Figure", C: []any{encodeAttr(n.Attr), encodeCaption(n.Caption), encodeBlocks(n.Blocks)}}
	case *Div:
		return taggedNode{T: "Div", C: []any{encodeAttr(n.Attr), encodeBlocks(n.Blocks)}}
	default:
		panic(fmt.Sprintf("doctree: unhandled block type %T", b))
	}
}

func encodeInline(in Inline) any {
	switch n := in.(type) {
	case *Str:
		return taggedNode{T: "Str", C: n.Text}
	case *Emph:
		return taggedNode{T: "Emph", C: encodeInlines(n.Inlines)}
	case *Underline:
		return taggedNode{T: "Underline", C: encodeInlines(n.Inlines)}
	case *Strong:
		return taggedNode{T: "Strong", C: encodeInlines(n.Inlines)}
	case *Strikeout:
		return taggedNode{T: "Strikeout", C: encodeInlines(n.Inlines)}
	case *Superscript:
		return taggedNode{T: "Superscript", C: encodeInlines(n.Inlines)}
	case *Subscript:
		return taggedNode{T: "Subscript", C: encodeInlines(n.Inlines)}
	case *SmallCaps:
		return taggedNode{T: "SmallCaps", C: encodeInlines(n.Inlines)}
	case *Quoted:
		return taggedNode{T: "Quoted", C: []any{tagOnly{T: n.QuoteType}, encodeInlines(n.Inlines)}}
	case *Cite:
		citations := make([]any, len(n.Citations))
		for i, c := range n.Citations {
			citations[i] = encodeCitation(c)
		}
		return taggedNode{T: "Cite", C: []any{citations, encodeInlines(n.Inlines)}}
	case *Code:
		return taggedNode{T: "Code", C: []any{encodeAttr(n.Attr), n.Text}}
	case *Space:
		return tagOnly{T: "Space"}
	case *SoftBreak:
		return tagOnly{T: "SoftBreak"}
	case *LineBreak:
		return tagOnly{T: "LineBreak"}
	case *Math:
		return taggedNode{T: "Math", C: []any{tagOnly{T: n.MathType}, n.Text}}
	case *RawInline:
		return taggedNode{T: "RawInline", C: []any{n.Format, n.Text}}
	case *Link:
		return taggedNode{T: "Link", C: []any{encodeAttr(n.Attr), encodeInlines(n.Inlines), []any{n.Target.URL, n.Target.Title}}}
	case *Image:
		return taggedNode{T: "Image", C: []any{encodeAttr(n.Attr), encodeInlines(n.Inlines), []any{n.Target.URL, n.Target.Title}}}
	case *Note:
		return taggedNode{T: "Note", C: encodeBlocks(n.Blocks)}
	case *Span:
		return taggedNode{T: "Span", C: []any{encodeAttr(n.Attr), encodeInlines(n.Inlines)}}
	default:
		panic(fmt.Sprintf("doctree: unhandled inline type %T", in))
	}
}

// Decoding.

type rawNode struct {
	T string          `json:"t"`
	C json.RawMessage `json:"c"`
}

func decodeBlocks(raws []json.RawMessage, path string) ([]Block, error) {
	out := make([]Block, len(raws))
	for i, raw := range raws {
		b, err := decodeBlock(raw, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func decodeBlockList(raw json.RawMessage, path string) ([]Block, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decodeBlocks(raws, path)
}

func decodeInlines(raws []json.RawMessage, path string) ([]Inline, error) {
	out := make([]Inline, len(raws))
	for i, raw := range raws {
		in, err := decodeInline(raw, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = in
	}
	return out, nil
}

func decodeInlineList(raw json.RawMessage, path string) ([]Inline, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decodeInlines(raws, path)
}

func decodeArgs(c json.RawMessage, want int, path string) ([]json.RawMessage, error) {
	var args []json.RawMessage
	if err := json.Unmarshal(c, &args); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(args) != want {
		return nil, fmt.Errorf("%s: want %d constructor arguments, got %d", path, want, len(args))
	}
	return args, nil
}

func decodeAttr(raw json.RawMessage, path string) (Attr, error) {
	var parts struct {
		ID      string
		Classes []string
		Pairs   [][2]string
	}
	args, err := decodeArgs(raw, 3, path)
	if err != nil {
		return Attr{}, err
	}
	if err := json.Unmarshal(args[0], &parts.ID); err != nil {
		return Attr{}, fmt.Errorf("%s: identifier: %w", path, err)
	}
	if err := json.Unmarshal(args[1], &parts.Classes); err != nil {
		return Attr{}, fmt.Errorf("%s: classes: %w", path, err)
	}
	if err := json.Unmarshal(args[2], &parts.Pairs); err != nil {
		return Attr{}, fmt.Errorf("%s: key-values: %w", path, err)
	}
	attr := Attr{Identifier: parts.ID, Classes: parts.Classes}
	for _, p := range parts.Pairs {
		attr.KeyVals = append(attr.KeyVals, AttrPair{Key: p[0], Value: p[1]})
	}
	return attr, nil
}

func decodeCaption(raw json.RawMessage, path string) (Caption, error) {
	args, err := decodeArgs(raw, 2, path)
	if err != nil {
		return Caption{}, err
	}
	var caption Caption
	if string(args[0]) != "null" {
		short, err := decodeInlineList(args[0], path+".short")
		if err != nil {
			return Caption{}, err
		}
		caption.Short = short
	}
	blocks, err := decodeBlockList(args[1], path+".blocks")
	if err != nil {
		return Caption{}, err
	}
	caption.Blocks = blocks
	return caption, nil
}

func decodeTag(raw json.RawMessage, path string) (string, error) {
	var node tagOnly
	if err := json.Unmarshal(raw, &node); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return node.T, nil
}

func decodeColSpecs(raw json.RawMessage, path string) ([]ColSpec, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out := make([]ColSpec, len(raws))
	for i, r := range raws {
		p := fmt.Sprintf("%s[%d]", path, i)
		args, err := decodeArgs(r, 2, p)
		if err != nil {
			return nil, err
		}
		align, err := decodeTag(args[0], p)
		if err != nil {
			return nil, err
		}
		var width rawNode
		if err := json.Unmarshal(args[1], &width); err != nil {
			return nil, fmt.Errorf("%s: width: %w", p, err)
		}
		cs := ColSpec{Align: Alignment(align)}
		if width.T == "ColWidth" {
			if err := json.Unmarshal(width.C, &cs.Width.Width); err != nil {
				return nil, fmt.Errorf("%s: width: %w", p, err)
			}
		} else {
			cs.Width.Default = true
		}
		out[i] = cs
	}
	return out, nil
}

func decodeRows(raw json.RawMessage, path string) ([]Row, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out := make([]Row, len(raws))
	for i, r := range raws {
		p := fmt.Sprintf("%s[%d]", path, i)
		var node rawNode
		if err := json.Unmarshal(r, &node); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if node.T != "Row" {
			return nil, fmt.Errorf("%s: want Row, got %q", p, node.T)
		}
		args, err := decodeArgs(node.C, 2, p)
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(args[0], p+".attr")
		if err != nil {
			return nil, err
		}
		cells, err := decodeCells(args[1], p+".cells")
		if err != nil {
			return nil, err
		}
		out[i] = Row{Attr: attr, Cells: cells}
	}
	return out, nil
}

func decodeCells(raw json.RawMessage, path string) ([]Cell, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out := make([]Cell, len(raws))
	for i, r := range raws {
		p := fmt.Sprintf("%s[%d]", path, i)
		var node rawNode
		if err := json.Unmarshal(r, &node); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if node.T != "Cell" {
			return nil, fmt.Errorf("%s: want Cell, got %q", p, node.T)
		}
		args, err := decodeArgs(node.C, 5, p)
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(args[0], p+".attr")
		if err != nil {
			return nil, err
		}
		align, err := decodeTag(args[1], p+".align")
		if err != nil {
			return nil, err
		}
		var rowSpan, colSpan int
		if err := json.Unmarshal(args[2], &rowSpan); err != nil {
			return nil, fmt.Errorf("%s: rowspan: %w", p, err)
		}
		if err := json.Unmarshal(args[3], &colSpan); err != nil {
			return nil, fmt.Errorf("%s: colspan: %w", p, err)
		}
		blocks, err := decodeBlockList(args[4], p+".blocks")
		if err != nil {
			return nil, err
		}
		out[i] = Cell{Attr: attr, Align: Alignment(align), RowSpan: rowSpan, ColSpan: colSpan, Blocks: blocks}
	}
	return out, nil
}

func decodeTablePart(raw json.RawMessage, wantTag, path string) (Attr, []Row, error) {
	var node rawNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return Attr{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	if node.T != wantTag {
		return Attr{}, nil, fmt.Errorf("%s: want %s, got %q", path, wantTag, node.T)
	}
	args, err := decodeArgs(node.C, 2, path)
	if err != nil {
		return Attr{}, nil, err
	}
	attr, err := decodeAttr(args[0], path+".attr")
	if err != nil {
		return Attr{}, nil, err
	}
	rows, err := decodeRows(args[1], path+".rows")
	if err != nil {
		return Attr{}, nil, err
	}
	return attr, rows, nil
}

func decodeCitations(raw json.RawMessage, path string) ([]Citation, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out := make([]Citation, len(raws))
	for i, r := range raws {
		p := fmt.Sprintf("%s[%d]", path, i)
		var c struct {
			ID      string            `json:"citationId"`
			Prefix  []json.RawMessage `json:"citationPrefix"`
			Suffix  []json.RawMessage `json:"citationSuffix"`
			Mode    tagOnly           `json:"citationMode"`
			NoteNum int               `json:"citationNoteNum"`
			Hash    int               `json:"citationHash"`
		}
		if err := json.Unmarshal(r, &c); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		prefix, err := decodeInlines(c.Prefix, p+".prefix")
		if err != nil {
			return nil, err
		}
		suffix, err := decodeInlines(c.Suffix, p+".suffix")
		if err != nil {
			return nil, err
		}
		out[i] = Citation{ID: c.ID, Prefix: prefix, Suffix: suffix, Mode: c.Mode.T, NoteNum: c.NoteNum, Hash: c.Hash}
	}
	return out, nil
}

func decodeBlock(raw json.RawMessage, path string) (Block, error) {
	var node rawNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	switch node.T {
	case "Plain":
		inlines, err := decodeInlineList(node.C, path+".c")
		if err != nil {
			return nil, err
		}
		return &Plain{Inlines: inlines}, nil
	case "Para":
		inlines, err := decodeInlineList(node.C, path+".c")
		if err != nil {
			return nil, err
		}
		return &Para{Inlines: inlines}, nil
	case "LineBlock":
		var raws []json.RawMessage
		if err := json.Unmarshal(node.C, &raws); err != nil {
			return nil, fmt.Errorf("%s.c: %w", path, err)
		}
		lines := make([][]Inline, len(raws))
		for i, r := range raws {
			line, err := decodeInlineList(r, fmt.Sprintf("%s.c[%d]", path, i))
			if err != nil {
				return nil, err
			}
			lines[i] = line
		}
		return &LineBlock{Lines: lines}, nil
	case "CodeBlock":
		args, err := decodeArgs(node.C, 2, path+".c")
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(args[0], path+".c.attr")
		if err != nil {
			return nil, err
		}
		var text string
		if err := json.Unmarshal(args[1], &text); err != nil {
			return nil, fmt.Errorf("%s.c.text: %w", path, err)
		}
		return &CodeBlock{Attr: attr, Text: text}, nil
	case "RawBlock":
		args, err := decodeArgs(node.C, 2, path+".c")
		if err != nil {
			return nil, err
		}
		var format, text string
		if err := json.Unmarshal(args[0], &format); err != nil {
			return nil, fmt.Errorf("%s.c.format: %w", path, err)
		}
		if err := json.Unmarshal(args[1], &text); err != nil {
			return nil, fmt.Errorf("%s.c.text: %w", path, err)
		}
		return &RawBlock{Format: format, Text: text}, nil
	case "BlockQuote":
		blocks, err := decodeBlockList(node.C, path+".c")
		if err != nil {
			return nil, err
		}
		return &BlockQuote{Blocks: blocks}, nil
	case "OrderedList":
		args, err := decodeArgs(node.C, 2, path+".c")
		if err != nil {
			return nil, err
		}
		listArgs, err := decodeArgs(args[0], 3, path+".c.attrs")
		if err != nil {
			return nil, err
		}
		var attrs ListAttributes
		if err := json.Unmarshal(listArgs[0], &attrs.Start); err != nil {
			return nil, fmt.Errorf("%s.c.attrs.start: %w", path, err)
		}
		if attrs.Style, err = decodeTag(listArgs[1], path+".c.attrs.style"); err != nil {
			return nil, err
		}
		if attrs.Delim, err = decodeTag(listArgs[2], path+".c.attrs.delim"); err != nil {
			return nil, err
		}
		items, err := decodeBlockListList(args[1], path+".c.items")
		if err != nil {
			return nil, err
		}
		return &OrderedList{Attrs: attrs, Items: items}, nil
	case "BulletList":
		items, err := decodeBlockListList(node.C, path+".c")
		if err != nil {
			return nil, err
		}
		return &BulletList{Items: items}, nil
	case "DefinitionList":
		var raws []json.RawMessage
		if err := json.Unmarshal(node.C, &raws); err != nil {
			return nil, fmt.Errorf("%s.c: %w", path, err)
		}
		items := make([]Definition, len(raws))
		for i, r := range raws {
			p := fmt.Sprintf("%s.c[%d]", path, i)
			args, err := decodeArgs(r, 2, p)
			if err != nil {
				return nil, err
			}
			term, err := decodeInlineList(args[0], p+".term")
			if err != nil {
				return nil, err
			}
			defs, err := decodeBlockListList(args[1], p+".definitions")
			if err != nil {
				return nil, err
			}
			items[i] = Definition{Term: term, Definitions: defs}
		}
		return &DefinitionList{Items: items}, nil
	case "Header":
		args, err := decodeArgs(node.C, 3, path+".c")
		if err != nil {
			return nil, err
		}
		var level int
		if err := json.Unmarshal(args[0], &level); err != nil {
			return nil, fmt.Errorf("%s.c.level: %w", path, err)
		}
		attr, err := decodeAttr(args[1], path+".c.attr")
		if err != nil {
			return nil, err
		}
		inlines, err := decodeInlineList(args[2], path+".c.inlines")
		if err != nil {
			return nil, err
		}
		return &Header{Level: level, Attr: attr, Inlines: inlines}, nil
	case "HorizontalRule":
		return &HorizontalRule{}, nil
	case "Table":
		args, err := decodeArgs(node.C, 6, path+".c")
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(args[0], path+".c.attr")
		if err != nil {
			return nil, err
		}
		caption, err := decodeCaption(args[1], path+".c.caption")
		if err != nil {
			return nil, err
		}
		colSpecs, err := decodeColSpecs(args[2], path+".c.colspecs")
		if err != nil {
			return nil, err
		}
		headAttr, headRows, err := decodeTablePart(args[3], "TableHead", path+".c.head")
		if err != nil {
			return nil, err
		}
		var bodyRaws []json.RawMessage
		if err := json.Unmarshal(args[4], &bodyRaws); err != nil {
			return nil, fmt.Errorf("%s.c.bodies: %w", path, err)
		}
		bodies := make([]TableBody, len(bodyRaws))
		for i, r := range bodyRaws {
			p := fmt.Sprintf("%s.c.bodies[%d]", path, i)
			var bodyNode rawNode
			if err := json.Unmarshal(r, &bodyNode); err != nil {
				return nil, fmt.Errorf("%s: %w", p, err)
			}
			if bodyNode.T != "TableBody" {
				return nil, fmt.Errorf("%s: want TableBody, got %q", p, bodyNode.T)
			}
			bodyArgs, err := decodeArgs(bodyNode.C, 4, p)
			if err != nil {
				return nil, err
			}
			bodyAttr, err := decodeAttr(bodyArgs[0], p+".attr")
			if err != nil {
				return nil, err
			}
			var rowHeadColumns int
			if err := json.Unmarshal(bodyArgs[1], &rowHeadColumns); err != nil {
				return nil, fmt.Errorf("%s.rowheadcolumns: %w", p, err)
			}
			headRows, err := decodeRows(bodyArgs[2], p+".headrows")
			if err != nil {
				return nil, err
			}
			rows, err := decodeRows(bodyArgs[3], p+".rows")
			if err != nil {
				return nil, err
			}
			bodies[i] = TableBody{Attr: bodyAttr, RowHeadColumns: rowHeadColumns, HeadRows: headRows, Rows: rows}
		}
		footAttr, footRows, err := decodeTablePart(args[5], "TableFoot", path+".c.foot")
		if err != nil {
			return nil, err
		}
		return &Table{
			Attr:     attr,
			Caption:  caption,
			ColSpecs: colSpecs,
			Head:     TableHead{Attr: headAttr, Rows: headRows},
			Bodies:   bodies,
			Foot:     TableFoot{Attr: footAttr, Rows: footRows},
		}, nil
	case "Figure":
		args, err := decodeArgs(node.C, 3, path+".c")
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(args[0], path+".c.attr")
		if err != nil {
			return nil, err
		}
		caption, err := decodeCaption(args[1], path+".c.caption")
		if err != nil {
			return nil, err
		}
		blocks, err := decodeBlockList(args[2], path+".c.blocks")
		if err != nil {
			return nil, err
		}
		return &Figure{Attr: attr, Caption: caption, Blocks: blocks}, nil
	case "Div":
		args, err := decodeArgs(node.C, 2, path+".c")
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(args[0], path+".c.attr")
		if err != nil {
			return nil, err
		}
		blocks, err := decodeBlockList(args[1], path+".c.blocks")
		if err != nil {
			return nil, err
		}
		return &Div{Attr: attr, Blocks: blocks}, nil
	default:
		return nil, fmt.Errorf("%s: unknown block type %q", path, node.T)
	}
}

func decodeBlockListList(raw json.RawMessage, path string) ([][]Block, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out := make([][]Block, len(raws))
	for i, r := range raws {
		blocks, err := decodeBlockList(r, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = blocks
	}
	return out, nil
}

func decodeInline(raw json.RawMessage, path string) (Inline, error) {
	var node rawNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	wrapped := func(build func([]Inline) Inline) (Inline, error) {
		inlines, err := decodeInlineList(node.C, path+".c")
		if err != nil {
			return nil, err
		}
		return build(inlines), nil
	}
	switch node.T {
	case "Str":
		var text string
		if err := json.Unmarshal(node.C, &text); err != nil {
			return nil, fmt.Errorf("%s.c: %w", path, err)
		}
		return &Str{Text: text}, nil
	case "Emph":
		return wrapped(func(in []Inline) Inline { return &Emph{Inlines: in} })
	case "Underline":
		return wrapped(func(in []Inline) Inline { return &Underline{Inlines: in} })
	case "Strong":
		return wrapped(func(in []Inline) Inline { return &Strong{Inlines: in} })
	case "Strikeout":
		return wrapped(func(in []Inline) Inline { return &Strikeout{Inlines: in} })
	case "Superscript":
		return wrapped(func(in []Inline) Inline { return &Superscript{Inlines: in} })
	case "Subscript":
		return wrapped(func(in []Inline) Inline { return &Subscript{Inlines: in} })
	case "SmallCaps":
		return wrapped(func(in []Inline) Inline { return &SmallCaps{Inlines: in} })
	case "Quoted":
		args, err := decodeArgs(node.C, 2, path+".c")
		if err != nil {
			return nil, err
		}
		quoteType, err := decodeTag(args[0], path+".c.quotetype")
		if err != nil {
			return nil, err
		}
		inlines, err := decodeInlineList(args[1], path+".c.inlines")
		if err != nil {
			return nil, err
		}
		return &Quoted{QuoteType: quoteType, Inlines: inlines}, nil
	case "Cite":
		args, err := decodeArgs(node.C, 2, path+".c")
		if err != nil {
			return nil, err
		}
		citations, err := decodeCitations(args[0], path+".c.citations")
		if err != nil {
			return nil, err
		}
		inlines, err := decodeInlineList(args[1], path+".c.inlines")
		if err != nil {
			return nil, err
		}
		return &Cite{Citations: citations, Inlines: inlines}, nil
	case "Code":
		args, err := decodeArgs(node.C, 2, path+".c")
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(args[0], path+".c.attr")
		if err != nil {
			return nil, err
		}
		var text string
		if err := json.Unmarshal(args[1], &text); err != nil {
			return nil, fmt.Errorf("%s.c.text: %w", path, err)
		}
		return &Code{Attr: attr, Text: text}, nil
	case "Space":
		return &Space{}, nil
	case "SoftBreak":
		return &SoftBreak{}, nil
	case "LineBreak":
		return &LineBreak{}, nil
	case "Math":
		args, err := decodeArgs(node.C, 2, path+".c")
		if err != nil {
			return nil, err
		}
		mathType, err := decodeTag(args[0], path+".c.mathtype")
		if err != nil {
			return nil, err
		}
		var text string
		if err := json.Unmarshal(args[1], &text); err != nil {
			return nil, fmt.Errorf("%s.c.text: %w", path, err)
		}
		return &Math{MathType: mathType, Text: text}, nil
	case "RawInline":
		args, err := decodeArgs(node.C, 2, path+".c")
		if err != nil {
			return nil, err
		}
		var format, text string
		if err := json.Unmarshal(args[0], &format); err != nil {
			return nil, fmt.Errorf("%s.c.format: %w", path, err)
		}
		if err := json.Unmarshal(args[1], &text); err != nil {
			return nil, fmt.Errorf("%s.c.text: %w", path, err)
		}
		return &RawInline{Format: format, Text: text}, nil
	case "Link", "Image":
		args, err := decodeArgs(node.C, 3, path+".c")
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(args[0], path+".c.attr")
		if err != nil {
			return nil, err
		}
		inlines, err := decodeInlineList(args[1], path+".c.inlines")
		if err != nil {
			return nil, err
		}
		var target [2]string
		if err := json.Unmarshal(args[2], &target); err != nil {
			return nil, fmt.Errorf("%s.c.target: %w", path, err)
		}
		if node.T == "Link" {
			return &Link{Attr: attr, Inlines: inlines, Target: Target{URL: target[0], Title: target[1]}}, nil
		}
		return &Image{Attr: attr, Inlines: inlines, Target: Target{URL: target[0], Title: target[1]}}, nil
	case "Note":
		blocks, err := decodeBlockList(node.C, path+".c")
		if err != nil {
			return nil, err
		}
		return &Note{Blocks: blocks}, nil
	case "Span":
		args, err := decodeArgs(node.C, 2, path+".c")
		if err != nil {
			return nil, err
		}
		attr, err := decodeAttr(args[0], path+".c.attr")
		if err != nil {
			return nil, err
		}
		inlines, err := decodeInlineList(args[1], path+".c.inlines")
		if err != nil {
			return nil, err
		}
		return &Span{Attr: attr, Inlines: inlines}, nil
	default:
		return nil, fmt.Errorf("%s: unknown inline type %q", path, node.T)
	}
}
