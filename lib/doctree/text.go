// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package doctree

import "strings"

// FlattenText renders an inline sequence as plain text: Str contents
// concatenated, Space and SoftBreak as single spaces, LineBreak as a
// newline, containers flattened recursively. Verbatim and raw inline
// content is included as-is.
func FlattenText(inlines []Inline) string {
	var sb strings.Builder
	flattenInto(&sb, inlines)
	return sb.String()
}

func flattenInto(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch n := in.(type) {
		case *Str:
			sb.WriteString(n.Text)
		case *Space, *SoftBreak:
			sb.WriteString(" ")
		case *LineBreak:
			sb.WriteString("\n")
		case *Code:
			sb.WriteString(n.Text)
		case *Math:
			sb.WriteString(n.Text)
		case *RawInline:
			sb.WriteString(n.Text)
		case *Emph:
			flattenInto(sb, n.Inlines)
		case *Underline:
			flattenInto(sb, n.Inlines)
		case *Strong:
			flattenInto(sb, n.Inlines)
		case *Strikeout:
			flattenInto(sb, n.Inlines)
		case *Superscript:
			flattenInto(sb, n.Inlines)
		case *Subscript:
			flattenInto(sb, n.Inlines)
		case *SmallCaps:
			flattenInto(sb, n.Inlines)
		case *Quoted:
			flattenInto(sb, n.Inlines)
		case *Cite:
			flattenInto(sb, n.Inlines)
		case *Link:
			flattenInto(sb, n.Inlines)
		case *Image:
			flattenInto(sb, n.Inlines)
		case *Span:
			flattenInto(sb, n.Inlines)
		case *Note:
			// Footnote content does not contribute to the running text.
		}
	}
}

// CodeBlockLines counts the lines of a code block.
func CodeBlockLines(cb *CodeBlock) int {
	return strings.Count(cb.Text, "\n") + 1
}

// EstimateBlockChars gives a rough character weight for presentation
// threshold decisions. Tables count as a flat placeholder weight since
// their rendered size depends on the writer.
func EstimateBlockChars(b Block) int {
	const tableWeight = 100
	switch n := b.(type) {
	case *Plain:
		return len(FlattenText(n.Inlines))
	case *Para:
		return len(FlattenText(n.Inlines))
	case *Header:
		return len(FlattenText(n.Inlines))
	case *CodeBlock:
		return len(n.Text)
	case *RawBlock:
		return len(n.Text)
	case *BlockQuote:
		return estimateBlocksChars(n.Blocks)
	case *Div:
		return estimateBlocksChars(n.Blocks)
	case *Figure:
		return estimateBlocksChars(n.Blocks)
	case *BulletList:
		total := 0
		for _, item := range n.Items {
			total += estimateBlocksChars(item)
		}
		return total
	case *OrderedList:
		total := 0
		for _, item := range n.Items {
			total += estimateBlocksChars(item)
		}
		return total
	case *Table:
		return tableWeight
	default:
		return 0
	}
}

func estimateBlocksChars(blocks []Block) int {
	total := 0
	for _, b := range blocks {
		total += EstimateBlockChars(b)
	}
	return total
}

// EstimateBlocksChars sums EstimateBlockChars over a block list.
func EstimateBlocksChars(blocks []Block) int {
	return estimateBlocksChars(blocks)
}
