// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package doctree

// Node is implemented by every tagged tree node: all blocks, all
// inlines, and the tagged table parts (TableHead, TableBody, TableFoot,
// Row, Cell).
type Node interface {
	// Tag returns the Pandoc constructor name ("Para", "Str", ...).
	Tag() string
}

// Block is a block-level node.
type Block interface {
	Node
	block()
}

// Inline is an inline-level node.
type Inline interface {
	Node
	inline()
}

// Document is a whole document: the Pandoc API version it was produced
// against, the metadata map (kept opaque), and the top-level blocks.
type Document struct {
	PandocAPIVersion []int
	Meta             map[string]any
	Blocks           []Block
}

// AttrPair is one key-value attribute. Pair order is preserved through
// parse, clone, and serialize.
type AttrPair struct {
	Key   string
	Value string
}

// Attr is the Pandoc attribute triple: identifier, classes, key-value
// pairs.
type Attr struct {
	Identifier string
	Classes    []string
	KeyVals    []AttrPair
}

// Get returns the value for key and whether it is present.
func (a *Attr) Get(key string) (string, bool) {
	for _, kv := range a.KeyVals {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key, or appends the pair if absent.
func (a *Attr) Set(key, value string) {
	for i, kv := range a.KeyVals {
		if kv.Key == key {
			a.KeyVals[i].Value = value
			return
		}
	}
	a.KeyVals = append(a.KeyVals, AttrPair{Key: key, Value: value})
}

// Delete removes the pair for key, reporting whether it was present.
func (a *Attr) Delete(key string) bool {
	for i, kv := range a.KeyVals {
		if kv.Key == key {
			a.KeyVals = append(a.KeyVals[:i], a.KeyVals[i+1:]...)
			return true
		}
	}
	return false
}

// Keys returns the attribute keys in pair order.
func (a *Attr) Keys() []string {
	keys := make([]string, len(a.KeyVals))
	for i, kv := range a.KeyVals {
		keys[i] = kv.Key
	}
	return keys
}

// HasClass reports whether the class list contains name.
func (a *Attr) HasClass(name string) bool {
	for _, c := range a.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// Target is a link or image destination: URL plus title.
type Target struct {
	URL   string
	Title string
}

// ListAttributes describes an ordered list: start number, number style,
// and delimiter (both as Pandoc constructor names).
type ListAttributes struct {
	Start int
	Style string
	Delim string
}

// Citation is one citation inside a Cite inline.
type Citation struct {
	ID      string
	Prefix  []Inline
	Suffix  []Inline
	Mode    string
	NoteNum int
	Hash    int
}

// Definition is one definition-list item: a term and its definitions.
type Definition struct {
	Term        []Inline
	Definitions [][]Block
}

// Alignment is a Pandoc column/cell alignment constructor name.
type Alignment string

// Alignment values.
const (
	AlignLeft    Alignment = "AlignLeft"
	AlignRight   Alignment = "AlignRight"
	AlignCenter  Alignment = "AlignCenter"
	AlignDefault Alignment = "AlignDefault"
)

// ColWidth is a column width: either an explicit fraction of the page
// width or the default.
type ColWidth struct {
	Width   float64
	Default bool
}

// ColSpec pairs an alignment with a column width.
type ColSpec struct {
	Align Alignment
	Width ColWidth
}

// Caption is a table or figure caption: optional short form plus the
// caption blocks. A nil Short serializes as JSON null.
type Caption struct {
	Short  []Inline
	Blocks []Block
}

// Block nodes.

// Plain is a sequence of inlines without paragraph semantics.
type Plain struct {
	Inlines []Inline
}

// Para is a paragraph.
type Para struct {
	Inlines []Inline
}

// LineBlock is a sequence of lines, each a sequence of inlines.
type LineBlock struct {
	Lines [][]Inline
}

// CodeBlock is a verbatim block with attributes.
type CodeBlock struct {
	Attr Attr
	Text string
}

// RawBlock is raw content in a named format. Forbidden in strict
// documents.
type RawBlock struct {
	Format string
	Text   string
}

// BlockQuote is a quoted sequence of blocks.
type BlockQuote struct {
	Blocks []Block
}

// OrderedList is a numbered list.
type OrderedList struct {
	Attrs ListAttributes
	Items [][]Block
}

// BulletList is an unnumbered list.
type BulletList struct {
	Items [][]Block
}

// DefinitionList is a list of terms with definitions.
type DefinitionList struct {
	Items []Definition
}

// Header is a section heading.
type Header struct {
	Level   int
	Attr    Attr
	Inlines []Inline
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// Table is a full table: caption, column specs, head, one or more
// bodies, and foot.
type Table struct {
	Attr     Attr
	Caption  Caption
	ColSpecs []ColSpec
	Head     TableHead
	Bodies   []TableBody
	Foot     TableFoot
}

// Figure is a captioned figure containing blocks.
type Figure struct {
	Attr    Attr
	Caption Caption
	Blocks  []Block
}

// Div is a generic block container with attributes. Divs with a
// non-empty identifier are the semantic wrappers of the pipeline.
type Div struct {
	Attr   Attr
	Blocks []Block
}

// Table parts. These are tagged nodes in the wire format.

// TableHead is the table header section.
type TableHead struct {
	Attr Attr
	Rows []Row
}

// TableBody is one table body section. HeadRows are the intermediate
// header rows of the body, Rows the data rows.
type TableBody struct {
	Attr           Attr
	RowHeadColumns int
	HeadRows       []Row
	Rows           []Row
}

// TableFoot is the table footer section.
type TableFoot struct {
	Attr Attr
	Rows []Row
}

// Row is one table row.
type Row struct {
	Attr  Attr
	Cells []Cell
}

// Cell is one table cell.
type Cell struct {
	Attr    Attr
	Align   Alignment
	RowSpan int
	ColSpan int
	Blocks  []Block
}

// Inline nodes.

// Str is a text fragment.
type Str struct {
	Text string
}

// Emph is emphasized inlines.
type Emph struct {
	Inlines []Inline
}

// Underline is underlined inlines.
type Underline struct {
	Inlines []Inline
}

// Strong is strongly emphasized inlines.
type Strong struct {
	Inlines []Inline
}

// Strikeout is struck-out inlines.
type Strikeout struct {
	Inlines []Inline
}

// Superscript is superscripted inlines.
type Superscript struct {
	Inlines []Inline
}

// Subscript is subscripted inlines.
type Subscript struct {
	Inlines []Inline
}

// SmallCaps is small-caps inlines.
type SmallCaps struct {
	Inlines []Inline
}

// Quoted is quoted inlines with a quote type ("SingleQuote" or
// "DoubleQuote").
type Quoted struct {
	QuoteType string
	Inlines   []Inline
}

// Cite is a citation with its rendered inlines.
type Cite struct {
	Citations []Citation
	Inlines   []Inline
}

// Code is inline verbatim text with attributes.
type Code struct {
	Attr Attr
	Text string
}

// Space is an inter-word space.
type Space struct{}

// SoftBreak is a soft line break.
type SoftBreak struct{}

// LineBreak is a hard line break.
type LineBreak struct{}

// Math is TeX math, inline or display ("InlineMath" / "DisplayMath").
type Math struct {
	MathType string
	Text     string
}

// RawInline is raw inline content in a named format. Forbidden in
// strict documents.
type RawInline struct {
	Format string
	Text   string
}

// Link is a hyperlink.
type Link struct {
	Attr    Attr
	Inlines []Inline
	Target  Target
}

// Image is an image reference. The inlines are the alt text.
type Image struct {
	Attr    Attr
	Inlines []Inline
	Target  Target
}

// Note is a footnote containing blocks.
type Note struct {
	Blocks []Block
}

// Span is a generic inline container with attributes.
type Span struct {
	Attr    Attr
	Inlines []Inline
}

// Tag implementations.

func (*Plain) Tag() string          { return "Plain" }
func (*Para) Tag() string           { return "Para" }
func (*LineBlock) Tag() string      { return "LineBlock" }
func (*CodeBlock) Tag() string      { return "CodeBlock" }
func (*RawBlock) Tag() string       { return "RawBlock" }
func (*BlockQuote) Tag() string     { return "BlockQuote" }
func (*OrderedList) Tag() string    { return "OrderedList" }
func (*BulletList) Tag() string     { return "BulletList" }
func (*DefinitionList) Tag() string { return "DefinitionList" }
func (*Header) Tag() string         { return "Header" }
func (*HorizontalRule) Tag() string { return "HorizontalRule" }
func (*Table) Tag() string          { return "Table" }
func (*Figure) Tag() string         { return "Figure" }
func (*Div) Tag() string            { return "Div" }

func (*TableHead) Tag() string { return "TableHead" }
func (*TableBody) Tag() string { return "TableBody" }
func (*TableFoot) Tag() string { return "TableFoot" }
func (*Row) Tag() string       { return "Row" }
func (*Cell) Tag() string      { return "Cell" }

func (*Str) Tag() string         { return "Str" }
func (*Emph) Tag() string        { return "Emph" }
func (*Underline) Tag() string   { return "Underline" }
func (*Strong) Tag() string      { return "Strong" }
func (*Strikeout) Tag() string   { return "Strikeout" }
func (*Superscript) Tag() string { return "Superscript" }
func (*Subscript) Tag() string   { return "Subscript" }
func (*SmallCaps) Tag() string   { return "SmallCaps" }
func (*Quoted) Tag() string      { return "Quoted" }
func (*Cite) Tag() string        { return "Cite" }
func (*Code) Tag() string        { return "Code" }
func (*Space) Tag() string       { return "Space" }
func (*SoftBreak) Tag() string   { return "SoftBreak" }
func (*LineBreak) Tag() string   { return "LineBreak" }
func (*Math) Tag() string        { return "Math" }
func (*RawInline) Tag() string   { return "RawInline" }
func (*Link) Tag() string        { return "Link" }
func (*Image) Tag() string       { return "Image" }
func (*Note) Tag() string        { return "Note" }
func (*Span) Tag() string        { return "Span" }

// Marker methods closing the sums.

func (*Plain) block()          {}
func (*Para) block()           {}
func (*LineBlock) block()      {}
func (*CodeBlock) block()      {}
func (*RawBlock) block()       {}
func (*BlockQuote) block()     {}
func (*OrderedList) block()    {}
func (*BulletList) block()     {}
func (*DefinitionList) block() {}
func (*Header) block()         {}
func (*HorizontalRule) block() {}
func (*Table) block()          {}
func (*Figure) block()         {}
func (*Div) block()            {}

func (*Str) inline()         {}
func (*Emph) inline()        {}
func (*Underline) inline()   {}
func (*Strong) inline()      {}
func (*Strikeout) inline()   {}
func (*Superscript) inline() {}
func (*Subscript) inline()   {}
func (*SmallCaps) inline()   {}
func (*Quoted) inline()      {}
func (*Cite) inline()        {}
func (*Code) inline()        {}
func (*Space) inline()       {}
func (*SoftBreak) inline()   {}
func (*LineBreak) inline()   {}
func (*Math) inline()        {}
func (*RawInline) inline()   {}
func (*Link) inline()        {}
func (*Image) inline()       {}
func (*Note) inline()        {}
func (*Span) inline()        {}
