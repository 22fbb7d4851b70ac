// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"encoding/json"
	"testing"

	"github.com/litepub-foundation/litepub/lib/doctree"
	"github.com/litepub-foundation/litepub/lib/payload"
	"github.com/litepub-foundation/litepub/lib/registry"
)

func cellText(t *testing.T, table *doctree.Table, row, col int) string {
	t.Helper()
	cell := table.Bodies[0].Rows[row].Cells[col]
	if len(cell.Blocks) == 0 {
		return ""
	}
	plain, ok := cell.Blocks[0].(*doctree.Plain)
	if !ok {
		t.Fatalf("cell block is %T, want *Plain", cell.Blocks[0])
	}
	return doctree.FlattenText(plain.Inlines)
}

func headerText(t *testing.T, table *doctree.Table, col int) string {
	t.Helper()
	cell := table.Head.Rows[0].Cells[col]
	plain := cell.Blocks[0].(*doctree.Plain)
	return doctree.FlattenText(plain.Inlines)
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    payload.Number
		want string
	}{
		{"int", payload.Number{IsInt: true, Int: 120000}, "120000"},
		{"negative int", payload.Number{IsInt: true, Int: -3}, "-3"},
		{"float 15 significant digits", payload.Number{Float: 3.14159265358979}, "3.14159265358979"},
		{"short float", payload.Number{Float: 0.93}, "0.93"},
		{"integral float stays float-formatted", payload.Number{Float: 2}, "2"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatNumber(tc.n); got != tc.want {
				t.Errorf("FormatNumber = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEmitMetric(t *testing.T) {
	t.Parallel()

	table := EmitMetric(&payload.Metric{
		Label: "AUC",
		Value: payload.Number{Float: 3.14159265358979},
	}, "m1")

	if table.Attr.Identifier != "m1" {
		t.Errorf("identifier = %q", table.Attr.Identifier)
	}
	if len(table.ColSpecs) != 2 ||
		table.ColSpecs[0].Align != doctree.AlignLeft ||
		table.ColSpecs[1].Align != doctree.AlignRight {
		t.Errorf("colspecs = %+v", table.ColSpecs)
	}
	if got := headerText(t, table, 0); got != "Metric" {
		t.Errorf("header[0] = %q", got)
	}
	if got := headerText(t, table, 1); got != "Value" {
		t.Errorf("header[1] = %q", got)
	}
	if got := cellText(t, table, 0, 0); got != "AUC" {
		t.Errorf("label cell = %q", got)
	}
	if got := cellText(t, table, 0, 1); got != "3.14159265358979" {
		t.Errorf("value cell = %q", got)
	}
	if table.Caption.Short != nil || len(table.Caption.Blocks) != 0 {
		t.Errorf("metric tables carry no caption, got %+v", table.Caption)
	}
}

func TestEmitMetricDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		metric payload.Metric
		want   string
	}{
		{"bare value", payload.Metric{Label: "x", Value: payload.Number{Float: 0.93}}, "0.93"},
		{"unit appended", payload.Metric{Label: "x", Value: payload.Number{IsInt: true, Int: 42}, Unit: "ms"}, "42 ms"},
		{
			"format template",
			payload.Metric{Label: "x", Value: payload.Number{Float: 0.93}, Unit: "pts", Format: "{value} ({unit})"},
			"0.93 (pts)",
		},
		{
			"format without unit trims",
			payload.Metric{Label: "x", Value: payload.Number{Float: 0.93}, Format: "{value} {unit}"},
			"0.93",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			table := EmitMetric(&tc.metric, "m")
			if got := cellText(t, table, 0, 1); got != tc.want {
				t.Errorf("display = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEmitSimpleTable(t *testing.T) {
	t.Parallel()

	table := EmitSimpleTable(&payload.SimpleTable{
		Columns: []payload.Column{
			{Key: "model", Label: "Model", DType: payload.DTypeString},
			{Key: "n", Label: "Samples", Unit: "rows", DType: payload.DTypeInt},
			{Key: "passed", DType: payload.DTypeBool},
		},
		Rows: []map[string]any{
			{"model": "baseline", "n": nil, "passed": true},
			{"model": "candidate", "n": json.Number("250"), "passed": false},
		},
		Caption: "Comparison",
	}, "t1")

	if got := headerText(t, table, 1); got != "Samples (rows)" {
		t.Errorf("unit header = %q", got)
	}
	if got := headerText(t, table, 2); got != "passed" {
		t.Errorf("label fallback header = %q", got)
	}
	if got := cellText(t, table, 0, 1); got != "" {
		t.Errorf("null cell = %q, want empty", got)
	}
	if got := cellText(t, table, 0, 2); got != "true" {
		t.Errorf("bool cell = %q", got)
	}
	if got := cellText(t, table, 1, 2); got != "false" {
		t.Errorf("bool cell = %q", got)
	}
	if got := cellText(t, table, 1, 1); got != "250" {
		t.Errorf("int cell = %q", got)
	}
	if doctree.FlattenText(table.Caption.Blocks[0].(*doctree.Plain).Inlines) != "Comparison" {
		t.Error("caption lost")
	}
}

func TestEmitFigure(t *testing.T) {
	t.Parallel()

	entry := &registry.Entry{ID: "fig-roc", URI: "figs/roc.png"}
	fig := EmitFigure(entry, &payload.FigureMeta{Caption: "ROC curve", Alt: "ROC for candidate"}, "fig-roc")

	if fig.Attr.Identifier != "fig-roc" || !fig.Attr.HasClass("figure") {
		t.Errorf("figure attr = %+v", fig.Attr)
	}
	para, ok := fig.Blocks[0].(*doctree.Para)
	if !ok {
		t.Fatalf("figure content is %T", fig.Blocks[0])
	}
	img, ok := para.Inlines[0].(*doctree.Image)
	if !ok {
		t.Fatalf("figure inline is %T", para.Inlines[0])
	}
	if img.Target.URL != "figs/roc.png" || img.Target.Title != "" {
		t.Errorf("image target = %+v", img.Target)
	}
	if doctree.FlattenText(img.Inlines) != "ROC for candidate" {
		t.Errorf("alt = %q", doctree.FlattenText(img.Inlines))
	}
	if doctree.FlattenText(fig.Caption.Blocks[0].(*doctree.Plain).Inlines) != "ROC curve" {
		t.Error("caption lost")
	}
}

func TestEmitFigureWithoutSidecar(t *testing.T) {
	t.Parallel()

	fig := EmitFigure(&registry.Entry{ID: "f", URI: "f.png"}, nil, "f")
	if len(fig.Caption.Blocks) != 0 {
		t.Errorf("caption = %+v, want empty", fig.Caption)
	}
	img := fig.Blocks[0].(*doctree.Para).Inlines[0].(*doctree.Image)
	if len(img.Inlines) != 0 {
		t.Errorf("alt = %v, want empty", img.Inlines)
	}
}
