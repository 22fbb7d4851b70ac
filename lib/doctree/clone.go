// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package doctree

import "fmt"

// Clone returns a deep copy of the document. Every pipeline stage
// clones its input so that stages never alias each other's trees.
func (d *Document) Clone() *Document {
	out := &Document{
		PandocAPIVersion: append([]int(nil), d.PandocAPIVersion...),
		Blocks:           CloneBlocks(d.Blocks),
	}
	if d.Meta != nil {
		out.Meta = cloneAny(d.Meta).(map[string]any)
	}
	return out
}

// CloneBlocks deep copies a block slice.
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = CloneBlock(b)
	}
	return out
}

// CloneInlines deep copies an inline slice.
func CloneInlines(inlines []Inline) []Inline {
	if inlines == nil {
		return nil
	}
	out := make([]Inline, len(inlines))
	for i, in := range inlines {
		out[i] = CloneInline(in)
	}
	return out
}

func cloneBlockLists(lists [][]Block) [][]Block {
	if lists == nil {
		return nil
	}
	out := make([][]Block, len(lists))
	for i, l := range lists {
		out[i] = CloneBlocks(l)
	}
	return out
}

func cloneInlineLists(lists [][]Inline) [][]Inline {
	if lists == nil {
		return nil
	}
	out := make([][]Inline, len(lists))
	for i, l := range lists {
		out[i] = CloneInlines(l)
	}
	return out
}

// CloneAttr deep copies an attribute triple.
func CloneAttr(a Attr) Attr {
	return Attr{
		Identifier: a.Identifier,
		Classes:    append([]string(nil), a.Classes...),
		KeyVals:    append([]AttrPair(nil), a.KeyVals...),
	}
}

func cloneCaption(c Caption) Caption {
	return Caption{Short: CloneInlines(c.Short), Blocks: CloneBlocks(c.Blocks)}
}

func cloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i := range rows {
		cells := make([]Cell, len(rows[i].Cells))
		for j := range rows[i].Cells {
			c := rows[i].Cells[j]
			cells[j] = Cell{
				Attr:    CloneAttr(c.Attr),
				Align:   c.Align,
				RowSpan: c.RowSpan,
				ColSpan: c.ColSpan,
				Blocks:  CloneBlocks(c.Blocks),
			}
		}
		out[i] = Row{Attr: CloneAttr(rows[i].Attr), Cells: cells}
	}
	return out
}

// CloneBlock deep copies one block.
func CloneBlock(b Block) Block {
	switch n := b.(type) {
	case *Plain:
		return &Plain{Inlines: CloneInlines(n.Inlines)}
	case *Para:
		return &Para{Inlines: CloneInlines(n.Inlines)}
	case *LineBlock:
		return &LineBlock{Lines: cloneInlineLists(n.Lines)}
	case *CodeBlock:
		return &CodeBlock{Attr: CloneAttr(n.Attr), Text: n.Text}
	case *RawBlock:
		return &RawBlock{Format: n.Format, Text: n.Text}
	case *BlockQuote:
		return &BlockQuote{Blocks: CloneBlocks(n.Blocks)}
	case *OrderedList:
		return &OrderedList{Attrs: n.Attrs, Items: cloneBlockLists(n.Items)}
	case *BulletList:
		return &BulletList{Items: cloneBlockLists(n.Items)}
	case *DefinitionList:
		items := make([]Definition, len(n.Items))
		for i, item := range n.Items {
			items[i] = Definition{
				Term:        CloneInlines(item.Term),
				Definitions: cloneBlockLists(item.Definitions),
			}
		}
		return &DefinitionList{Items: items}
	case *Header:
		return &Header{Level: n.Level, Attr: CloneAttr(n.Attr), Inlines: CloneInlines(n.Inlines)}
	case *HorizontalRule:
		return &HorizontalRule{}
	case *Table:
		bodies := make([]TableBody, len(n.Bodies))
		for i, body := range n.Bodies {
			bodies[i] = TableBody{
				Attr:           CloneAttr(body.Attr),
				RowHeadColumns: body.RowHeadColumns,
				HeadRows:       cloneRows(body.HeadRows),
				Rows:           cloneRows(body.Rows),
			}
		}
		return &Table{
			Attr:     CloneAttr(n.Attr),
			Caption:  cloneCaption(n.Caption),
			ColSpecs: append([]ColSpec(nil), n.ColSpecs...),
			Head:     TableHead{Attr: CloneAttr(n.Head.Attr), Rows: cloneRows(n.Head.Rows)},
			Bodies:   bodies,
			Foot:     TableFoot{Attr: CloneAttr(n.Foot.Attr), Rows: cloneRows(n.Foot.Rows)},
		}
	case *Figure:
		return &Figure{Attr: CloneAttr(n.Attr), Caption: cloneCaption(n.Caption), Blocks: CloneBlocks(n.Blocks)}
	case *Div:
		return &Div{Attr: CloneAttr(n.Attr), Blocks: CloneBlocks(n.Blocks)}
	default:
		panic(fmt.Sprintf("doctree: unhandled block type %T", b))
	}
}

// CloneInline deep copies one inline.
func CloneInline(in Inline) Inline {
	switch n := in.(type) {
	case *Str:
		return &Str{Text: n.Text}
	case *Emph:
		return &Emph{Inlines: CloneInlines(n.Inlines)}
	case *Underline:
		return &Underline{Inlines: CloneInlines(n.Inlines)}
	case *Strong:
		return &Strong{Inlines: CloneInlines(n.Inlines)}
	case *Strikeout:
		return &Strikeout{Inlines: CloneInlines(n.Inlines)}
	case *Superscript:
		return &Superscript{Inlines: CloneInlines(n.Inlines)}
	case *Subscript:
		return &Subscript{Inlines: CloneInlines(n.Inlines)}
	case *SmallCaps:
		return &SmallCaps{Inlines: CloneInlines(n.Inlines)}
	case *Quoted:
		return &Quoted{QuoteType: n.QuoteType, Inlines: CloneInlines(n.Inlines)}
	case *Cite:
		citations := make([]Citation, len(n.Citations))
		for i, c := range n.Citations {
			citations[i] = Citation{
				ID:      c.ID,
				Prefix:  CloneInlines(c.Prefix),
				Suffix:  CloneInlines(c.Suffix),
				Mode:    c.Mode,
				NoteNum: c.NoteNum,
				Hash:    c.Hash,
			}
		}
		return &Cite{Citations: citations, Inlines: CloneInlines(n.Inlines)}
	case *Code:
		return &Code{Attr: CloneAttr(n.Attr), Text: n.Text}
	case *Space:
		return &Space{}
	case *SoftBreak:
		return &SoftBreak{}
	case *LineBreak:
		return &LineBreak{}
	case *Math:
		return &Math{MathType: n.MathType, Text: n.Text}
	case *RawInline:
		return &RawInline{Format: n.Format, Text: n.Text}
	case *Link:
		return &Link{Attr: CloneAttr(n.Attr), Inlines: CloneInlines(n.Inlines), Target: n.Target}
	case *Image:
		return &Image{Attr: CloneAttr(n.Attr), Inlines: CloneInlines(n.Inlines), Target: n.Target}
	case *Note:
		return &Note{Blocks: CloneBlocks(n.Blocks)}
	case *Span:
		return &Span{Attr: CloneAttr(n.Attr), Inlines: CloneInlines(n.Inlines)}
	default:
		panic(fmt.Sprintf("doctree: unhandled inline type %T", in))
	}
}

// cloneAny deep copies decoded JSON values (maps, slices, scalars).
// Used for document metadata, which the pipeline carries opaquely.
func cloneAny(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = cloneAny(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = cloneAny(val)
		}
		return out
	default:
		return v
	}
}
