// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

// Column describes one column of a simple table payload.
type Column struct {
	Key   string
	Label string
	Unit  string
	DType string
}

// Column dtypes. A column may also declare no dtype at all, in which
// case cells are only held to scalar-or-null.
const (
	DTypeInt    = "int"
	DTypeFloat  = "float"
	DTypeString = "string"
	DTypeBool   = "bool"
)

// SimpleTable is a validated table.simple.json@v1 payload: named,
// typed columns over rows of key-value records.
type SimpleTable struct {
	Columns []Column
	Rows    []map[string]any
	Caption string
}

// columnKey is the identifier rule for column keys.
var columnKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateSimpleTable checks a decoded simple-table payload. When
// strictRowKeys is set, every row must provide every column key;
// otherwise missing keys read as null. Extra keys are rejected under
// either policy.
func ValidateSimpleTable(raw map[string]any, semanticID string, limits Limits, strictRowKeys bool) (*SimpleTable, error) {
	limits = limits.Normalize()
	fail := func(code, path, msg string) error {
		return &doctree.ValidationError{
			Code:       code,
			Message:    msg,
			SemanticID: semanticID,
			Spec:       SpecTableSimple,
			Path:       path,
		}
	}

	columnsRaw, ok := raw["columns"]
	if !ok {
		return nil, fail("VAL_TABLE_COLUMNS_TYPE", "columns", "columns is required")
	}
	columnsList, ok := columnsRaw.([]any)
	if !ok {
		return nil, fail("VAL_TABLE_COLUMNS_TYPE", "columns", fmt.Sprintf("columns must be a list, got %T", columnsRaw))
	}
	if len(columnsList) == 0 {
		return nil, fail("VAL_TABLE_NO_COLUMNS", "columns", "at least one column is required")
	}
	if len(columnsList) > limits.MaxTableCols {
		return nil, fail("VAL_TABLE_EXCEEDS_MAX_COLS", "columns",
			fmt.Sprintf("%d columns exceeds limit %d", len(columnsList), limits.MaxTableCols))
	}

	var table SimpleTable
	seen := make(map[string]bool, len(columnsList))
	for i, colRaw := range columnsList {
		path := fmt.Sprintf("columns[%d]", i)
		colMap, ok := colRaw.(map[string]any)
		if !ok {
			return nil, fail("VAL_TABLE_COLUMN_TYPE", path, fmt.Sprintf("column must be an object, got %T", colRaw))
		}
		key, _ := colMap["key"].(string)
		if !columnKey.MatchString(key) {
			return nil, fail("VAL_TABLE_COLUMN_KEY_INVALID", path+".key",
				fmt.Sprintf("column key %q is not a valid identifier", key))
		}
		if seen[key] {
			return nil, fail("VAL_TABLE_COLUMN_KEY_DUPLICATE", path+".key",
				fmt.Sprintf("column key %q appears more than once", key))
		}
		seen[key] = true

		col := Column{Key: key}
		if labelRaw, ok := colMap["label"]; ok && labelRaw != nil {
			label, ok := labelRaw.(string)
			if !ok {
				return nil, fail("VAL_TABLE_COLUMN_LABEL_TYPE", path+".label",
					fmt.Sprintf("label must be a string, got %T", labelRaw))
			}
			col.Label = label
		}
		if unitRaw, ok := colMap["unit"]; ok && unitRaw != nil {
			unit, ok := unitRaw.(string)
			if !ok {
				return nil, fail("VAL_TABLE_COLUMN_UNIT_TYPE", path+".unit",
					fmt.Sprintf("unit must be a string, got %T", unitRaw))
			}
			col.Unit = unit
		}
		if dtypeRaw, ok := colMap["dtype"]; ok && dtypeRaw != nil {
			dtype, _ := dtypeRaw.(string)
			switch dtype {
			case DTypeString, DTypeInt, DTypeFloat, DTypeBool:
				col.DType = dtype
			default:
				return nil, fail("VAL_TABLE_COLUMN_DTYPE_INVALID", path+".dtype",
					fmt.Sprintf("dtype %v is not one of string, int, float, bool", dtypeRaw))
			}
		}
		table.Columns = append(table.Columns, col)
	}

	rowsRaw, ok := raw["rows"]
	if !ok {
		return nil, fail("VAL_TABLE_ROWS_TYPE", "rows", "rows is required")
	}
	rowsList, ok := rowsRaw.([]any)
	if !ok {
		return nil, fail("VAL_TABLE_ROWS_TYPE", "rows", fmt.Sprintf("rows must be a list, got %T", rowsRaw))
	}

	// Size limits are enforced before any per-row work so oversized
	// payloads fail in constant time.
	if len(rowsList) > limits.MaxTableRows {
		return nil, fail("VAL_TABLE_EXCEEDS_MAX_ROWS", "rows",
			fmt.Sprintf("%d rows exceeds limit %d", len(rowsList), limits.MaxTableRows))
	}
	if cells := len(rowsList) * len(table.Columns); cells > limits.MaxTableCells {
		return nil, fail("VAL_TABLE_EXCEEDS_MAX_CELLS", "rows",
			fmt.Sprintf("%d cells exceeds limit %d", cells, limits.MaxTableCells))
	}

	for i, rowRaw := range rowsList {
		path := fmt.Sprintf("rows[%d]", i)
		rowMap, ok := rowRaw.(map[string]any)
		if !ok {
			return nil, fail("VAL_TABLE_ROW_TYPE", path, fmt.Sprintf("row must be an object, got %T", rowRaw))
		}

		var extra []string
		for key := range rowMap {
			if !seen[key] {
				extra = append(extra, key)
			}
		}
		if len(extra) > 0 {
			sort.Strings(extra)
			return nil, fail("VAL_TABLE_ROW_EXTRA_KEYS", path,
				fmt.Sprintf("row has keys not declared as columns: %s", strings.Join(extra, ", ")))
		}
		if strictRowKeys {
			var missing []string
			for _, col := range table.Columns {
				if _, ok := rowMap[col.Key]; !ok {
					missing = append(missing, col.Key)
				}
			}
			if len(missing) > 0 {
				return nil, fail("VAL_TABLE_ROW_MISSING_KEYS", path,
					fmt.Sprintf("row is missing column keys: %s", strings.Join(missing, ", ")))
			}
		}

		for _, col := range table.Columns {
			value, ok := rowMap[col.Key]
			if !ok || value == nil {
				// Null cells are always legal regardless of dtype.
				continue
			}
			cellPath := path + "." + col.Key
			if err := checkCellDType(value, col.DType, cellPath, semanticID, limits); err != nil {
				return nil, err
			}
		}
		table.Rows = append(table.Rows, rowMap)
	}

	if captionRaw, ok := raw["caption"]; ok && captionRaw != nil {
		caption, ok := captionRaw.(string)
		if !ok {
			return nil, fail("VAL_TABLE_CAPTION_TYPE", "caption",
				fmt.Sprintf("caption must be a string, got %T", captionRaw))
		}
		table.Caption = caption
	}

	return &table, nil
}

func checkCellDType(value any, dtype, path, semanticID string, limits Limits) error {
	fail := func(code, msg string) error {
		return &doctree.ValidationError{
			Code:       code,
			Message:    msg,
			SemanticID: semanticID,
			Spec:       SpecTableSimple,
			Path:       path,
		}
	}
	_, isBool := value.(bool)
	switch dtype {
	case "":
		// No declared dtype: cells need only be scalar.
		if _, isStr := value.(string); isStr || isBool {
			return nil
		}
		if _, isNum := AsNumber(value); !isNum {
			return fail("VAL_TABLE_CELL_TYPE", fmt.Sprintf("cell must be string, number, boolean, or null, got %T", value))
		}
	case DTypeBool:
		if !isBool {
			return fail("VAL_TABLE_DTYPE_MISMATCH", fmt.Sprintf("want bool, got %T", value))
		}
	case DTypeInt:
		if isBool {
			return fail("VAL_TABLE_DTYPE_BOOL_AS_INT", "boolean in an int column; booleans are not numbers")
		}
		num, ok := AsNumber(value)
		if !ok || !num.IsInt {
			return fail("VAL_TABLE_DTYPE_MISMATCH", fmt.Sprintf("want int, got %v", value))
		}
	case DTypeFloat:
		if isBool {
			return fail("VAL_TABLE_DTYPE_BOOL_AS_FLOAT", "boolean in a float column; booleans are not numbers")
		}
		num, ok := AsNumber(value)
		if !ok {
			return fail("VAL_TABLE_DTYPE_MISMATCH", fmt.Sprintf("want float, got %T", value))
		}
		if !num.finite() {
			return fail("VAL_TABLE_DTYPE_FLOAT_NONFINITE", "float cell must be finite")
		}
	case DTypeString:
		s, ok := value.(string)
		if !ok {
			return fail("VAL_TABLE_DTYPE_MISMATCH", fmt.Sprintf("want string, got %T", value))
		}
		if len(s) > limits.MaxTextLen {
			return fail("VAL_TABLE_TEXT_TOO_LONG", fmt.Sprintf("cell exceeds %d bytes", limits.MaxTextLen))
		}
	}
	return nil
}
