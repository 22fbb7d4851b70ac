// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"testing"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

func nativeTable() *doctree.Table {
	return doctree.BuildTable("", doctree.CaptionFromText("native"),
		[]doctree.Alignment{doctree.AlignLeft, doctree.AlignRight},
		[]string{"metric", "value"},
		[][]string{{"auc", "0.93"}, {"f1", "0.88"}},
	)
}

func TestParseNativeTable(t *testing.T) {
	t.Parallel()

	data, err := doctree.MarshalBlock(nativeTable())
	if err != nil {
		t.Fatalf("MarshalBlock: %v", err)
	}
	table, err := ParseNativeTable(data, "t1")
	if err != nil {
		t.Fatalf("ParseNativeTable: %v", err)
	}
	if len(table.ColSpecs) != 2 {
		t.Errorf("colspecs = %d, want 2", len(table.ColSpecs))
	}
}

func TestParseNativeTableRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		code  string
	}{
		{"not an object", `[1, 2]`, "VAL_PANDOC_NOT_OBJECT"},
		{"untagged object", `{"rows": []}`, "VAL_PANDOC_NOT_OBJECT"},
		{"wrong tag", `{"t": "Para", "c": []}`, "VAL_PANDOC_NOT_TABLE"},
		{"broken structure", `{"t": "Table", "c": [1, 2]}`, "VAL_PANDOC_TABLE_STRUCTURE"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseNativeTable([]byte(tc.input), "t")
			wantCode(t, err, tc.code)
		})
	}
}

func TestValidateNativeTable(t *testing.T) {
	t.Parallel()

	if err := ValidateNativeTable(nativeTable(), "t1", NativeTableOptions{}); err != nil {
		t.Fatalf("ValidateNativeTable: %v", err)
	}
}

func TestValidateNativeTableGeometry(t *testing.T) {
	t.Parallel()

	t.Run("no columns", func(t *testing.T) {
		t.Parallel()
		table := nativeTable()
		table.ColSpecs = nil
		wantCode(t, ValidateNativeTable(table, "t", NativeTableOptions{}), "VAL_PANDOC_NO_COLUMNS")
	})
	t.Run("zero rowspan", func(t *testing.T) {
		t.Parallel()
		table := nativeTable()
		table.Bodies[0].Rows[0].Cells[0].RowSpan = 0
		wantCode(t, ValidateNativeTable(table, "t", NativeTableOptions{}), "VAL_PANDOC_ROWSPAN_INVALID")
	})
	t.Run("zero colspan", func(t *testing.T) {
		t.Parallel()
		table := nativeTable()
		table.Bodies[0].Rows[0].Cells[0].ColSpan = 0
		wantCode(t, ValidateNativeTable(table, "t", NativeTableOptions{}), "VAL_PANDOC_COLSPAN_INVALID")
	})
	t.Run("colspan overflow", func(t *testing.T) {
		t.Parallel()
		table := nativeTable()
		table.Bodies[0].Rows[0].Cells[1].ColSpan = 2
		wantCode(t, ValidateNativeTable(table, "t", NativeTableOptions{}), "VAL_PANDOC_COLSPAN_OVERFLOW")
	})
	t.Run("row limit", func(t *testing.T) {
		t.Parallel()
		table := nativeTable()
		opts := NativeTableOptions{Limits: Limits{MaxTableRows: 2}}
		// Two body rows plus the header row exceed the limit.
		wantCode(t, ValidateNativeTable(table, "t", opts), "VAL_PANDOC_EXCEEDS_MAX_ROWS")
	})
}

func TestValidateNativeTableSafety(t *testing.T) {
	t.Parallel()

	cellBlocks := func(table *doctree.Table) *[]doctree.Block {
		return &table.Bodies[0].Rows[0].Cells[0].Blocks
	}

	t.Run("div forbidden even with raw allowed", func(t *testing.T) {
		t.Parallel()
		table := nativeTable()
		*cellBlocks(table) = []doctree.Block{&doctree.Div{Blocks: []doctree.Block{doctree.TextPara("x")}}}
		err := ValidateNativeTable(table, "t", NativeTableOptions{AllowRaw: true})
		wantCode(t, err, "VAL_PANDOC_TYPE_FORBIDDEN")
	})
	t.Run("raw inline nested in list", func(t *testing.T) {
		t.Parallel()
		table := nativeTable()
		*cellBlocks(table) = []doctree.Block{&doctree.BulletList{Items: [][]doctree.Block{{
			&doctree.Plain{Inlines: []doctree.Inline{&doctree.RawInline{Format: "html", Text: "<script>"}}},
		}}}}
		wantCode(t, ValidateNativeTable(table, "t", NativeTableOptions{}), "VAL_PANDOC_RAW_FORBIDDEN")
		if err := ValidateNativeTable(table, "t", NativeTableOptions{AllowRaw: true}); err != nil {
			t.Errorf("AllowRaw did not permit the raw inline: %v", err)
		}
	})
	t.Run("nested table flag", func(t *testing.T) {
		t.Parallel()
		table := nativeTable()
		inner := doctree.BuildTable("", doctree.Caption{}, []doctree.Alignment{doctree.AlignDefault}, []string{"k"}, nil)
		*cellBlocks(table) = []doctree.Block{inner}
		wantCode(t, ValidateNativeTable(table, "t", NativeTableOptions{}), "VAL_PANDOC_TYPE_FORBIDDEN")
		if err := ValidateNativeTable(table, "t", NativeTableOptions{AllowNestedTables: true}); err != nil {
			t.Errorf("AllowNestedTables did not permit the inner table: %v", err)
		}
	})
	t.Run("images default allowed", func(t *testing.T) {
		t.Parallel()
		table := nativeTable()
		img := &doctree.Plain{Inlines: []doctree.Inline{&doctree.Image{Target: doctree.Target{URL: "x.png"}}}}
		*cellBlocks(table) = []doctree.Block{img}
		if err := ValidateNativeTable(table, "t", NativeTableOptions{}); err != nil {
			t.Errorf("images should be allowed by default: %v", err)
		}
		wantCode(t, ValidateNativeTable(table, "t", NativeTableOptions{ForbidImages: true}), "VAL_PANDOC_TYPE_FORBIDDEN")
	})
	t.Run("figure flag", func(t *testing.T) {
		t.Parallel()
		table := nativeTable()
		*cellBlocks(table) = []doctree.Block{&doctree.Figure{Blocks: []doctree.Block{doctree.TextPara("f")}}}
		wantCode(t, ValidateNativeTable(table, "t", NativeTableOptions{}), "VAL_PANDOC_TYPE_FORBIDDEN")
		if err := ValidateNativeTable(table, "t", NativeTableOptions{AllowFigures: true}); err != nil {
			t.Errorf("AllowFigures did not permit the figure: %v", err)
		}
	})
}
