// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"fmt"
	"os"

	"github.com/litepub-foundation/litepub/lib/doctree"
	"github.com/litepub-foundation/litepub/lib/registry"
)

// Loaders bind a registry entry to its payload file: assert the spec
// tag, verify the digest when asked, then parse and validate. Digest
// verification always precedes parsing; a corrupt file is reported as
// corruption, not as a validation failure of garbage content.

func wrongSpec(entry *registry.Entry, want string) error {
	return &PayloadError{
		SemanticID: entry.ID,
		Spec:       entry.Spec,
		Message:    fmt.Sprintf("spec is %q, loader handles %q", entry.Spec, want),
	}
}

func readPayload(path string, entry *registry.Entry, verify bool) ([]byte, error) {
	if verify {
		if err := VerifyFile(path, entry.SHA256, entry.ID); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PayloadError{
			SemanticID: entry.ID,
			Spec:       entry.Spec,
			Path:       path,
			Message:    "payload not readable",
			Err:        err,
		}
	}
	return data, nil
}

func decodePayloadObject(data []byte, path string, entry *registry.Entry) (map[string]any, error) {
	raw, err := decodeJSONObject(data)
	if err != nil {
		return nil, &PayloadError{
			SemanticID: entry.ID,
			Spec:       entry.Spec,
			Path:       path,
			Message:    "payload is not a JSON object",
			Err:        err,
		}
	}
	return raw, nil
}

// LoadMetric loads and validates a metric.json@v1 payload.
func LoadMetric(path string, entry *registry.Entry, verify bool, limits Limits) (*Metric, error) {
	if entry.Spec != SpecMetric {
		return nil, wrongSpec(entry, SpecMetric)
	}
	data, err := readPayload(path, entry, verify)
	if err != nil {
		return nil, err
	}
	raw, err := decodePayloadObject(data, path, entry)
	if err != nil {
		return nil, err
	}
	return ValidateMetric(raw, entry.ID, limits)
}

// LoadSimpleTable loads and validates a table.simple.json@v1 payload.
func LoadSimpleTable(path string, entry *registry.Entry, verify bool, limits Limits, strictRowKeys bool) (*SimpleTable, error) {
	if entry.Spec != SpecTableSimple {
		return nil, wrongSpec(entry, SpecTableSimple)
	}
	data, err := readPayload(path, entry, verify)
	if err != nil {
		return nil, err
	}
	raw, err := decodePayloadObject(data, path, entry)
	if err != nil {
		return nil, err
	}
	return ValidateSimpleTable(raw, entry.ID, limits, strictRowKeys)
}

// LoadNativeTable loads and validates a table.pandoc.json@v1 payload.
func LoadNativeTable(path string, entry *registry.Entry, verify bool, opts NativeTableOptions) (*doctree.Table, error) {
	if entry.Spec != SpecTablePandoc {
		return nil, wrongSpec(entry, SpecTablePandoc)
	}
	data, err := readPayload(path, entry, verify)
	if err != nil {
		return nil, err
	}
	table, err := ParseNativeTable(data, entry.ID)
	if err != nil {
		return nil, err
	}
	if err := ValidateNativeTable(table, entry.ID, opts); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadFigure checks a figure.binary@v1 payload on disk.
func LoadFigure(path string, entry *registry.Entry, verify bool, limits Limits) (*FigureBinary, error) {
	if entry.Spec != SpecFigureBinary {
		return nil, wrongSpec(entry, SpecFigureBinary)
	}
	return LoadFigureBinary(path, entry.Format, entry.ID, verify, entry.SHA256, limits)
}

// LoadFigureMeta loads and validates a figure's metadata sidecar.
// Entries without a sidecar yield (nil, nil).
func LoadFigureMeta(path string, entry *registry.Entry, verify bool) (*FigureMeta, error) {
	if entry.MetaURI == "" {
		return nil, nil
	}
	if entry.MetaSpec != SpecFigureMeta {
		return nil, &PayloadError{
			SemanticID: entry.ID,
			Spec:       entry.MetaSpec,
			Message:    fmt.Sprintf("meta spec is %q, want %q", entry.MetaSpec, SpecFigureMeta),
		}
	}
	if verify {
		if err := VerifyFile(path, entry.MetaSHA256, entry.ID); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &PayloadError{
			SemanticID: entry.ID,
			Spec:       SpecFigureMeta,
			Path:       path,
			Message:    "sidecar not readable",
			Err:        err,
		}
	}
	raw, err := decodeJSONObject(data)
	if err != nil {
		return nil, &PayloadError{
			SemanticID: entry.ID,
			Spec:       SpecFigureMeta,
			Path:       path,
			Message:    "sidecar is not a JSON object",
			Err:        err,
		}
	}
	return ValidateFigureMeta(raw, entry.ID)
}
