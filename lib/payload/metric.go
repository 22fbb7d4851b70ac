// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

// Metric is a validated metric.json@v1 payload.
type Metric struct {
	Label  string
	Value  Number
	Unit   string
	Format string
	Notes  []string
	Meta   map[string]any
}

// formatToken matches simple {name} tokens in a metric format
// template. Tokens with conversion suffixes like {value:.2f} do not
// match and pass through to the renderer untouched.
var formatToken = regexp.MustCompile(`\{(\w+)\}`)

// ValidateMetric checks a decoded metric payload and returns the
// typed form. All failures carry stable VAL_METRIC_* codes.
func ValidateMetric(raw map[string]any, semanticID string, limits Limits) (*Metric, error) {
	limits = limits.Normalize()
	fail := func(code, msg string) error {
		return &doctree.ValidationError{
			Code:       code,
			Message:    msg,
			SemanticID: semanticID,
			Spec:       SpecMetric,
		}
	}

	var m Metric

	labelRaw, ok := raw["label"]
	if !ok {
		return nil, fail("VAL_METRIC_LABEL_TYPE", "label is required")
	}
	label, ok := labelRaw.(string)
	if !ok {
		return nil, fail("VAL_METRIC_LABEL_TYPE", fmt.Sprintf("label must be a string, got %T", labelRaw))
	}
	if strings.TrimSpace(label) == "" {
		return nil, fail("VAL_METRIC_LABEL_EMPTY", "label must not be empty")
	}
	if len(label) > limits.MaxTextLen {
		return nil, fail("VAL_METRIC_TEXT_TOO_LONG", fmt.Sprintf("label exceeds %d bytes", limits.MaxTextLen))
	}
	m.Label = label

	valueRaw, ok := raw["value"]
	if !ok {
		return nil, fail("VAL_METRIC_VALUE_TYPE", "value is required")
	}
	if _, isBool := valueRaw.(bool); isBool {
		return nil, fail("VAL_METRIC_VALUE_BOOL", "value is a boolean; booleans are not numbers")
	}
	value, ok := AsNumber(valueRaw)
	if !ok {
		return nil, fail("VAL_METRIC_VALUE_TYPE", fmt.Sprintf("value must be a number, got %T", valueRaw))
	}
	if !value.finite() {
		return nil, fail("VAL_METRIC_VALUE_NONFINITE", "value must be finite")
	}
	m.Value = value

	if unitRaw, ok := raw["unit"]; ok && unitRaw != nil {
		unit, ok := unitRaw.(string)
		if !ok {
			return nil, fail("VAL_METRIC_UNIT_TYPE", fmt.Sprintf("unit must be a string, got %T", unitRaw))
		}
		if len(unit) > limits.MaxTextLen {
			return nil, fail("VAL_METRIC_TEXT_TOO_LONG", fmt.Sprintf("unit exceeds %d bytes", limits.MaxTextLen))
		}
		m.Unit = unit
	}

	if formatRaw, ok := raw["format"]; ok && formatRaw != nil {
		format, ok := formatRaw.(string)
		if !ok {
			return nil, fail("VAL_METRIC_FORMAT_TYPE", fmt.Sprintf("format must be a string, got %T", formatRaw))
		}
		if len(format) > limits.MaxTextLen {
			return nil, fail("VAL_METRIC_TEXT_TOO_LONG", fmt.Sprintf("format exceeds %d bytes", limits.MaxTextLen))
		}
		for _, match := range formatToken.FindAllStringSubmatch(format, -1) {
			if tok := match[1]; tok != "value" && tok != "unit" {
				return nil, fail("VAL_METRIC_FORMAT_INVALID_TOKEN",
					fmt.Sprintf("format token {%s} is not allowed; only {value} and {unit}", tok))
			}
		}
		m.Format = format
	}

	if notesRaw, ok := raw["notes"]; ok && notesRaw != nil {
		notes, ok := notesRaw.([]any)
		if !ok {
			return nil, fail("VAL_METRIC_NOTES_TYPE", fmt.Sprintf("notes must be a list, got %T", notesRaw))
		}
		for i, item := range notes {
			note, ok := item.(string)
			if !ok {
				return nil, fail("VAL_METRIC_NOTES_ITEM_TYPE", fmt.Sprintf("notes[%d] must be a string, got %T", i, item))
			}
			m.Notes = append(m.Notes, note)
		}
	}

	if metaRaw, ok := raw["meta"]; ok && metaRaw != nil {
		meta, ok := metaRaw.(map[string]any)
		if !ok {
			return nil, fail("VAL_METRIC_META_TYPE", fmt.Sprintf("meta must be an object, got %T", metaRaw))
		}
		m.Meta = meta
	}

	return &m, nil
}
