// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	var verr *doctree.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want *ValidationError", err)
	}
	if verr.Code != code {
		t.Errorf("code = %q, want %q", verr.Code, code)
	}
}

func TestValidateMetric(t *testing.T) {
	t.Parallel()

	m, err := ValidateMetric(map[string]any{
		"label": "AUC",
		"value": json.Number("0.9321"),
		"unit":  "",
		"notes": []any{"bootstrap n=1000"},
	}, "m1", Limits{})
	if err != nil {
		t.Fatalf("ValidateMetric: %v", err)
	}
	if m.Label != "AUC" || m.Value.IsInt || m.Value.Float != 0.9321 {
		t.Errorf("metric = %+v", m)
	}
	if len(m.Notes) != 1 {
		t.Errorf("notes = %v", m.Notes)
	}
}

func TestValidateMetricIntegerValue(t *testing.T) {
	t.Parallel()

	m, err := ValidateMetric(map[string]any{
		"label": "rows processed",
		"value": json.Number("120000"),
	}, "m2", Limits{})
	if err != nil {
		t.Fatalf("ValidateMetric: %v", err)
	}
	if !m.Value.IsInt || m.Value.Int != 120000 {
		t.Errorf("value = %+v, want int 120000", m.Value)
	}
}

func TestValidateMetricRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  map[string]any
		code string
	}{
		{"bool true value", map[string]any{"label": "ok", "value": true}, "VAL_METRIC_VALUE_BOOL"},
		{"bool false value", map[string]any{"label": "ok", "value": false}, "VAL_METRIC_VALUE_BOOL"},
		{"string value", map[string]any{"label": "ok", "value": "12"}, "VAL_METRIC_VALUE_TYPE"},
		{"missing value", map[string]any{"label": "ok"}, "VAL_METRIC_VALUE_TYPE"},
		{"nan value", map[string]any{"label": "ok", "value": math.NaN()}, "VAL_METRIC_VALUE_NONFINITE"},
		{"inf value", map[string]any{"label": "ok", "value": math.Inf(1)}, "VAL_METRIC_VALUE_NONFINITE"},
		{"empty label", map[string]any{"label": "", "value": json.Number("1")}, "VAL_METRIC_LABEL_EMPTY"},
		{"whitespace label", map[string]any{"label": "   ", "value": json.Number("1")}, "VAL_METRIC_LABEL_EMPTY"},
		{"non-string label", map[string]any{"label": json.Number("5"), "value": json.Number("1")}, "VAL_METRIC_LABEL_TYPE"},
		{"non-string unit", map[string]any{"label": "x", "value": json.Number("1"), "unit": json.Number("2")}, "VAL_METRIC_UNIT_TYPE"},
		{"non-list notes", map[string]any{"label": "x", "value": json.Number("1"), "notes": "note"}, "VAL_METRIC_NOTES_TYPE"},
		{"non-string note item", map[string]any{"label": "x", "value": json.Number("1"), "notes": []any{json.Number("7")}}, "VAL_METRIC_NOTES_ITEM_TYPE"},
		{"non-object meta", map[string]any{"label": "x", "value": json.Number("1"), "meta": []any{}}, "VAL_METRIC_META_TYPE"},
		{"unknown format token", map[string]any{"label": "x", "value": json.Number("1"), "format": "{pct} of total"}, "VAL_METRIC_FORMAT_INVALID_TOKEN"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ValidateMetric(tc.raw, "m", Limits{})
			wantCode(t, err, tc.code)
		})
	}
}

func TestValidateMetricFormatTokens(t *testing.T) {
	t.Parallel()

	// Tokens with conversion suffixes do not match the simple-token
	// rule and are left for the renderer.
	valid := []string{"{value}", "{value} {unit}", "{value:.2f}", "no tokens at all"}
	for _, format := range valid {
		if _, err := ValidateMetric(map[string]any{
			"label": "x", "value": json.Number("1"), "format": format,
		}, "m", Limits{}); err != nil {
			t.Errorf("format %q rejected: %v", format, err)
		}
	}
}
