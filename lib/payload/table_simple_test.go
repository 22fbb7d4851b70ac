// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"encoding/json"
	"math"
	"testing"
)

func simpleTableRaw() map[string]any {
	return map[string]any{
		"columns": []any{
			map[string]any{"key": "model", "label": "Model", "dtype": "string"},
			map[string]any{"key": "auc", "label": "AUC", "dtype": "float"},
			map[string]any{"key": "n", "label": "Samples", "unit": "rows", "dtype": "int"},
			map[string]any{"key": "passed", "dtype": "bool"},
		},
		"rows": []any{
			map[string]any{"model": "baseline", "auc": json.Number("0.91"), "n": json.Number("1000"), "passed": true},
			map[string]any{"model": "candidate", "auc": json.Number("0.93"), "n": json.Number("1000"), "passed": false},
		},
		"caption": "Model comparison",
	}
}

func TestValidateSimpleTable(t *testing.T) {
	t.Parallel()

	table, err := ValidateSimpleTable(simpleTableRaw(), "t1", Limits{}, true)
	if err != nil {
		t.Fatalf("ValidateSimpleTable: %v", err)
	}
	if len(table.Columns) != 4 || len(table.Rows) != 2 {
		t.Fatalf("table = %d columns, %d rows", len(table.Columns), len(table.Rows))
	}
	if table.Caption != "Model comparison" {
		t.Errorf("caption = %q", table.Caption)
	}
	if table.Columns[2].Unit != "rows" {
		t.Errorf("unit = %q", table.Columns[2].Unit)
	}
}

func TestValidateSimpleTableNullCells(t *testing.T) {
	t.Parallel()

	raw := simpleTableRaw()
	raw["rows"] = []any{
		map[string]any{"model": nil, "auc": nil, "n": nil, "passed": nil},
	}
	if _, err := ValidateSimpleTable(raw, "t1", Limits{}, true); err != nil {
		t.Errorf("null cells must be legal for every dtype: %v", err)
	}
}

func TestValidateSimpleTableOptionalDType(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"columns": []any{
			map[string]any{"key": "model"},
			map[string]any{"key": "score", "dtype": "string"},
		},
		"rows": []any{
			map[string]any{"model": "baseline", "score": "0.91"},
			map[string]any{"model": json.Number("7"), "score": "0.93"},
			map[string]any{"model": true, "score": nil},
		},
	}
	table, err := ValidateSimpleTable(raw, "t1", Limits{}, true)
	if err != nil {
		t.Fatalf("untyped column rejected scalar cells: %v", err)
	}
	if table.Columns[0].DType != "" || table.Columns[1].DType != DTypeString {
		t.Errorf("dtypes = %q, %q", table.Columns[0].DType, table.Columns[1].DType)
	}

	// Untyped columns still require scalar-or-null cells.
	raw["rows"] = []any{map[string]any{"model": []any{"nested"}, "score": "x"}}
	_, err = ValidateSimpleTable(raw, "t1", Limits{}, true)
	wantCode(t, err, "VAL_TABLE_CELL_TYPE")
}

func TestValidateSimpleTableRowPolicies(t *testing.T) {
	t.Parallel()

	incomplete := simpleTableRaw()
	incomplete["rows"] = []any{map[string]any{"model": "baseline"}}

	if _, err := ValidateSimpleTable(incomplete, "t1", Limits{}, true); err == nil {
		t.Error("strict policy accepted an incomplete row")
	} else {
		wantCode(t, err, "VAL_TABLE_ROW_MISSING_KEYS")
	}
	if _, err := ValidateSimpleTable(incomplete, "t1", Limits{}, false); err != nil {
		t.Errorf("permissive policy rejected an incomplete row: %v", err)
	}
}

func TestValidateSimpleTableRejects(t *testing.T) {
	t.Parallel()

	withColumns := func(cols ...any) map[string]any {
		return map[string]any{"columns": cols, "rows": []any{}}
	}
	withRow := func(row map[string]any) map[string]any {
		raw := simpleTableRaw()
		raw["rows"] = []any{row}
		return raw
	}

	tests := []struct {
		name string
		raw  map[string]any
		code string
	}{
		{
			"invalid column key",
			withColumns(map[string]any{"key": "123invalid", "dtype": "string"}),
			"VAL_TABLE_COLUMN_KEY_INVALID",
		},
		{
			"duplicate column key",
			withColumns(
				map[string]any{"key": "x", "dtype": "string"},
				map[string]any{"key": "x", "dtype": "int"},
			),
			"VAL_TABLE_COLUMN_KEY_DUPLICATE",
		},
		{
			"unknown dtype",
			withColumns(map[string]any{"key": "x", "dtype": "decimal"}),
			"VAL_TABLE_COLUMN_DTYPE_INVALID",
		},
		{
			"no columns",
			map[string]any{"columns": []any{}, "rows": []any{}},
			"VAL_TABLE_NO_COLUMNS",
		},
		{
			"extra row keys",
			withRow(map[string]any{"model": "m", "auc": json.Number("0.5"), "n": json.Number("1"), "passed": true, "surprise": "x"}),
			"VAL_TABLE_ROW_EXTRA_KEYS",
		},
		{
			"string in float column",
			withRow(map[string]any{"model": "m", "auc": "high", "n": json.Number("1"), "passed": true}),
			"VAL_TABLE_DTYPE_MISMATCH",
		},
		{
			"float in int column",
			withRow(map[string]any{"model": "m", "auc": json.Number("0.5"), "n": json.Number("1.5"), "passed": true}),
			"VAL_TABLE_DTYPE_MISMATCH",
		},
		{
			"bool in int column",
			withRow(map[string]any{"model": "m", "auc": json.Number("0.5"), "n": true, "passed": true}),
			"VAL_TABLE_DTYPE_BOOL_AS_INT",
		},
		{
			"bool in float column",
			withRow(map[string]any{"model": "m", "auc": false, "n": json.Number("1"), "passed": true}),
			"VAL_TABLE_DTYPE_BOOL_AS_FLOAT",
		},
		{
			"nonfinite float cell",
			withRow(map[string]any{"model": "m", "auc": math.Inf(-1), "n": json.Number("1"), "passed": true}),
			"VAL_TABLE_DTYPE_FLOAT_NONFINITE",
		},
		{
			"number in bool column",
			withRow(map[string]any{"model": "m", "auc": json.Number("0.5"), "n": json.Number("1"), "passed": json.Number("1")}),
			"VAL_TABLE_DTYPE_MISMATCH",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ValidateSimpleTable(tc.raw, "t", Limits{}, true)
			wantCode(t, err, tc.code)
		})
	}
}

func TestValidateSimpleTableLimits(t *testing.T) {
	t.Parallel()

	raw := simpleTableRaw()
	rows := make([]any, 4)
	for i := range rows {
		rows[i] = map[string]any{"model": "m", "auc": json.Number("0.5"), "n": json.Number("1"), "passed": true}
	}
	raw["rows"] = rows

	_, err := ValidateSimpleTable(raw, "t", Limits{MaxTableRows: 3}, true)
	wantCode(t, err, "VAL_TABLE_EXCEEDS_MAX_ROWS")

	_, err = ValidateSimpleTable(raw, "t", Limits{MaxTableCells: 10}, true)
	wantCode(t, err, "VAL_TABLE_EXCEEDS_MAX_CELLS")

	_, err = ValidateSimpleTable(raw, "t", Limits{MaxTableCols: 2}, true)
	wantCode(t, err, "VAL_TABLE_EXCEEDS_MAX_COLS")
}
