// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"strconv"
	"strings"

	"github.com/litepub-foundation/litepub/lib/doctree"
	"github.com/litepub-foundation/litepub/lib/payload"
	"github.com/litepub-foundation/litepub/lib/registry"
)

// FormatNumber renders a payload number the way emitted documents show
// it: integers without a decimal point, floats with 15 significant
// digits.
func FormatNumber(n payload.Number) string {
	if n.IsInt {
		return strconv.FormatInt(n.Int, 10)
	}
	return strconv.FormatFloat(n.Float, 'g', 15, 64)
}

// FormatCellValue renders a simple-table cell: null as empty, booleans
// as true/false, numbers via FormatNumber, strings verbatim.
func FormatCellValue(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return x
	default:
		if n, ok := payload.AsNumber(v); ok {
			return FormatNumber(n)
		}
		return ""
	}
}

// metricDisplay renders the metric's display string. A format template
// may reference {value} and {unit}; without a template the unit, if
// any, is appended after a space.
func metricDisplay(m *payload.Metric) string {
	value := FormatNumber(m.Value)
	if m.Format != "" {
		s := strings.ReplaceAll(m.Format, "{value}", value)
		s = strings.ReplaceAll(s, "{unit}", m.Unit)
		return strings.TrimSpace(s)
	}
	if m.Unit != "" {
		return value + " " + m.Unit
	}
	return value
}

// EmitMetric renders a metric as a two-column, one-row table.
func EmitMetric(m *payload.Metric, semanticID string) *doctree.Table {
	return doctree.BuildTable(
		semanticID,
		doctree.Caption{},
		[]doctree.Alignment{doctree.AlignLeft, doctree.AlignRight},
		[]string{"Metric", "Value"},
		[][]string{{m.Label, metricDisplay(m)}},
	)
}

// EmitSimpleTable renders a simple table payload as a generic table.
// Headers use the column label (falling back to the key) with the unit
// in parentheses.
func EmitSimpleTable(t *payload.SimpleTable, semanticID string) *doctree.Table {
	headers := make([]string, len(t.Columns))
	aligns := make([]doctree.Alignment, len(t.Columns))
	for i, col := range t.Columns {
		label := col.Label
		if label == "" {
			label = col.Key
		}
		if col.Unit != "" {
			label += " (" + col.Unit + ")"
		}
		headers[i] = label
		aligns[i] = doctree.AlignDefault
	}
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			cells[j] = FormatCellValue(row[col.Key])
		}
		rows[i] = cells
	}
	return doctree.BuildTable(semanticID, doctree.CaptionFromText(t.Caption), aligns, headers, rows)
}

// EmitNativeTable stamps the semantic id onto a validated native
// table; the payload is otherwise passed through unchanged.
func EmitNativeTable(table *doctree.Table, semanticID string) *doctree.Table {
	table.Attr.Identifier = semanticID
	return table
}

// EmitFigure renders a figure entry as a Figure block holding a single
// image. Caption and alt text come from the sidecar when present; the
// image URL is the registry URI, left relative for the writer to
// resolve.
func EmitFigure(entry *registry.Entry, meta *payload.FigureMeta, semanticID string) *doctree.Figure {
	caption := doctree.Caption{}
	alt := ""
	if meta != nil {
		if meta.Caption != "" {
			caption = doctree.CaptionFromText(meta.Caption)
		}
		alt = meta.Alt
		if alt == "" {
			alt = meta.Caption
		}
	}
	image := &doctree.Image{
		Inlines: doctree.TextInlines(alt),
		Target:  doctree.Target{URL: entry.URI},
	}
	return &doctree.Figure{
		Attr:    doctree.Attr{Identifier: semanticID, Classes: []string{"figure"}},
		Caption: caption,
		Blocks:  []doctree.Block{&doctree.Para{Inlines: []doctree.Inline{image}}},
	}
}
