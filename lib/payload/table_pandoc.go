// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"encoding/json"
	"fmt"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

// NativeTableOptions controls safety checks for table.pandoc.json@v1
// payloads. The zero value is the strict production posture: no raw
// content, no nested tables or figures, images allowed.
type NativeTableOptions struct {
	// AllowRaw permits RawBlock/RawInline nodes inside cells.
	AllowRaw bool
	// AllowNestedTables permits Table nodes inside cells.
	AllowNestedTables bool
	// AllowFigures permits Figure nodes inside cells.
	AllowFigures bool
	// ForbidImages rejects Image nodes inside cells.
	ForbidImages bool
	// Limits bound table geometry and text sizes.
	Limits Limits
}

// ParseNativeTable decodes a native table payload. The payload must be
// a JSON object tagged "Table".
func ParseNativeTable(data []byte, semanticID string) (*doctree.Table, error) {
	fail := func(code, msg string) error {
		return &doctree.ValidationError{
			Code:       code,
			Message:    msg,
			SemanticID: semanticID,
			Spec:       SpecTablePandoc,
		}
	}
	var probe struct {
		T *string `json:"t"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fail("VAL_PANDOC_NOT_OBJECT", "payload is not a JSON object: "+err.Error())
	}
	if probe.T == nil {
		return nil, fail("VAL_PANDOC_NOT_OBJECT", "payload object has no constructor tag")
	}
	if *probe.T != "Table" {
		return nil, fail("VAL_PANDOC_NOT_TABLE", fmt.Sprintf("payload is a %q node, want Table", *probe.T))
	}
	block, err := doctree.UnmarshalBlock(data)
	if err != nil {
		return nil, fail("VAL_PANDOC_TABLE_STRUCTURE", err.Error())
	}
	table, ok := block.(*doctree.Table)
	if !ok {
		return nil, fail("VAL_PANDOC_NOT_TABLE", fmt.Sprintf("payload decoded to %T, want Table", block))
	}
	return table, nil
}

// ValidateNativeTable checks geometry, safety, and size limits of a
// native table. Div nodes are rejected unconditionally: a Div inside a
// payload could smuggle wrapper semantics into the resolved document.
func ValidateNativeTable(table *doctree.Table, semanticID string, opts NativeTableOptions) error {
	limits := opts.Limits.Normalize()
	fail := func(code, path, msg string) error {
		return &doctree.ValidationError{
			Code:       code,
			Message:    msg,
			SemanticID: semanticID,
			Spec:       SpecTablePandoc,
			Path:       path,
		}
	}

	numCols := len(table.ColSpecs)
	if numCols == 0 {
		return fail("VAL_PANDOC_NO_COLUMNS", "c[2]", "table declares no columns")
	}
	if numCols > limits.MaxTableCols {
		return fail("VAL_PANDOC_EXCEEDS_MAX_COLS", "c[2]",
			fmt.Sprintf("%d columns exceeds limit %d", numCols, limits.MaxTableCols))
	}

	type rowGroup struct {
		rows []doctree.Row
		path string
	}
	groups := []rowGroup{{table.Head.Rows, "c[3].c[1]"}}
	for i := range table.Bodies {
		groups = append(groups,
			rowGroup{table.Bodies[i].HeadRows, fmt.Sprintf("c[4][%d].c[2]", i)},
			rowGroup{table.Bodies[i].Rows, fmt.Sprintf("c[4][%d].c[3]", i)},
		)
	}
	groups = append(groups, rowGroup{table.Foot.Rows, "c[5].c[1]"})

	totalRows := 0
	for _, g := range groups {
		totalRows += len(g.rows)
	}
	if totalRows > limits.MaxTableRows {
		return fail("VAL_PANDOC_EXCEEDS_MAX_ROWS", "",
			fmt.Sprintf("%d rows exceeds limit %d", totalRows, limits.MaxTableRows))
	}
	if cells := totalRows * numCols; cells > limits.MaxTableCells {
		return fail("VAL_PANDOC_EXCEEDS_MAX_CELLS", "",
			fmt.Sprintf("%d cells exceeds limit %d", cells, limits.MaxTableCells))
	}

	for _, g := range groups {
		for i := range g.rows {
			rowPath := fmt.Sprintf("%s[%d]", g.path, i)
			colPosition := 0
			for j := range g.rows[i].Cells {
				cell := &g.rows[i].Cells[j]
				cellPath := fmt.Sprintf("%s.c[1][%d]", rowPath, j)
				if cell.RowSpan < 1 {
					return fail("VAL_PANDOC_ROWSPAN_INVALID", cellPath,
						fmt.Sprintf("rowspan %d must be at least 1", cell.RowSpan))
				}
				if cell.ColSpan < 1 {
					return fail("VAL_PANDOC_COLSPAN_INVALID", cellPath,
						fmt.Sprintf("colspan %d must be at least 1", cell.ColSpan))
				}
				colPosition += cell.ColSpan
				if colPosition > numCols {
					return fail("VAL_PANDOC_COLSPAN_OVERFLOW", cellPath,
						fmt.Sprintf("cells span %d columns, table has %d", colPosition, numCols))
				}
			}
		}
	}

	walker := doctree.Walker{
		SemanticID: semanticID,
		Visit: func(n doctree.Node, ctx doctree.VisitContext) error {
			switch node := n.(type) {
			case *doctree.Div:
				return fail("VAL_PANDOC_TYPE_FORBIDDEN", ctx.Path, "Div nodes are never allowed in table payloads")
			case *doctree.Table:
				if node != table && !opts.AllowNestedTables {
					return fail("VAL_PANDOC_TYPE_FORBIDDEN", ctx.Path, "nested tables are not allowed")
				}
			case *doctree.Figure:
				if !opts.AllowFigures {
					return fail("VAL_PANDOC_TYPE_FORBIDDEN", ctx.Path, "figures are not allowed in cells")
				}
			case *doctree.Image:
				if opts.ForbidImages {
					return fail("VAL_PANDOC_TYPE_FORBIDDEN", ctx.Path, "images are not allowed in cells")
				}
			case *doctree.RawBlock:
				if !opts.AllowRaw {
					return fail("VAL_PANDOC_RAW_FORBIDDEN", ctx.Path,
						fmt.Sprintf("raw %s block in table payload", node.Format))
				}
			case *doctree.RawInline:
				if !opts.AllowRaw {
					return fail("VAL_PANDOC_RAW_FORBIDDEN", ctx.Path,
						fmt.Sprintf("raw %s inline in table payload", node.Format))
				}
			case *doctree.CodeBlock:
				if len(node.Text) > limits.MaxTextLen {
					return fail("VAL_PANDOC_TEXT_TOO_LONG", ctx.Path,
						fmt.Sprintf("code block exceeds %d bytes", limits.MaxTextLen))
				}
			case *doctree.Str:
				if len(node.Text) > limits.MaxTextLen {
					return fail("VAL_PANDOC_TEXT_TOO_LONG", ctx.Path,
						fmt.Sprintf("text run exceeds %d bytes", limits.MaxTextLen))
				}
			}
			return nil
		},
	}
	return walker.WalkBlocks([]doctree.Block{table}, "payload")
}
