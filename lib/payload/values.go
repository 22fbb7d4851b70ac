// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"encoding/json"
	"math"
	"strings"
)

// Payload specs the pipeline understands. The tag is stored verbatim
// in the registry; anything else is rejected with a PayloadError.
const (
	SpecMetric       = "metric.json@v1"
	SpecTableSimple  = "table.simple.json@v1"
	SpecTablePandoc  = "table.pandoc.json@v1"
	SpecFigureBinary = "figure.binary@v1"
	SpecFigureMeta   = "figure.meta.json@v1"
)

// Number is a validated numeric payload value that remembers whether
// the source was integral. Emitters format integers without a decimal
// point and floats with 15 significant digits, so the distinction must
// survive validation.
type Number struct {
	IsInt bool
	Int   int64
	Float float64
}

// Float64 returns the value as a float regardless of kind.
func (n Number) Float64() float64 {
	if n.IsInt {
		return float64(n.Int)
	}
	return n.Float
}

// AsNumber classifies a decoded JSON value as a number. Booleans are
// deliberately not numbers; callers check for bool first and report
// the dedicated code. The decoder runs with UseNumber, so JSON
// numerics arrive as json.Number; in-memory payloads may carry Go
// numeric types directly.
func AsNumber(v any) (Number, bool) {
	switch x := v.(type) {
	case json.Number:
		s := x.String()
		if !strings.ContainsAny(s, ".eE") {
			if i, err := x.Int64(); err == nil {
				return Number{IsInt: true, Int: i}, true
			}
		}
		f, err := x.Float64()
		if err != nil {
			return Number{}, false
		}
		return Number{Float: f}, true
	case int:
		return Number{IsInt: true, Int: int64(x)}, true
	case int64:
		return Number{IsInt: true, Int: x}, true
	case float64:
		return Number{Float: x}, true
	default:
		return Number{}, false
	}
}

// finite reports whether the number is neither NaN nor infinite.
func (n Number) finite() bool {
	if n.IsInt {
		return true
	}
	return !math.IsNaN(n.Float) && !math.IsInf(n.Float, 0)
}

// decodeJSONObject parses data into a generic map, preserving numeric
// fidelity via json.Number.
func decodeJSONObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
