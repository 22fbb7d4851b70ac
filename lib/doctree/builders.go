// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package doctree

import "strings"

// Builders for emitted nodes. Emitters construct tables, figures, and
// stub paragraphs exclusively through these so the wire shape stays in
// one place.

// TextInlines splits text on whitespace and joins the words with Space
// nodes, the way Pandoc represents plain prose.
func TextInlines(text string) []Inline {
	words := strings.Fields(text)
	inlines := make([]Inline, 0, 2*len(words))
	for i, w := range words {
		if i > 0 {
			inlines = append(inlines, &Space{})
		}
		inlines = append(inlines, &Str{Text: w})
	}
	return inlines
}

// TextPara builds a paragraph from plain text.
func TextPara(text string) *Para {
	return &Para{Inlines: TextInlines(text)}
}

// TextPlain builds a Plain block from plain text.
func TextPlain(text string) *Plain {
	return &Plain{Inlines: TextInlines(text)}
}

// TextCell builds a default 1x1 cell holding plain text.
func TextCell(text string) Cell {
	return Cell{
		Align:   AlignDefault,
		RowSpan: 1,
		ColSpan: 1,
		Blocks:  []Block{TextPlain(text)},
	}
}

// MakeRow builds a row from cells.
func MakeRow(cells ...Cell) Row {
	return Row{Cells: cells}
}

// CaptionFromText builds a caption whose body is a single Plain block.
// Empty text yields an empty caption.
func CaptionFromText(text string) Caption {
	if text == "" {
		return Caption{}
	}
	return Caption{Blocks: []Block{TextPlain(text)}}
}

// BuildTable assembles a table with one header row and one body. The
// identifier goes on the table attr; aligns must match the header
// width, and every data row must be exactly as wide as the header.
func BuildTable(identifier string, caption Caption, aligns []Alignment, header []string, rows [][]string) *Table {
	colSpecs := make([]ColSpec, len(aligns))
	for i, a := range aligns {
		colSpecs[i] = ColSpec{Align: a, Width: ColWidth{Default: true}}
	}
	headerCells := make([]Cell, len(header))
	for i, h := range header {
		headerCells[i] = TextCell(h)
	}
	bodyRows := make([]Row, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, text := range row {
			cells[j] = TextCell(text)
		}
		bodyRows[i] = MakeRow(cells...)
	}
	return &Table{
		Attr:     Attr{Identifier: identifier},
		Caption:  caption,
		ColSpecs: colSpecs,
		Head:     TableHead{Rows: []Row{MakeRow(headerCells...)}},
		Bodies:   []TableBody{{Rows: bodyRows}},
	}
}

// MakeHeader builds a section heading with an identifier anchor.
func MakeHeader(level int, identifier, text string) *Header {
	return &Header{
		Level:   level,
		Attr:    Attr{Identifier: identifier},
		Inlines: TextInlines(text),
	}
}
