// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/litepub-foundation/litepub/lib/build"
	"github.com/litepub-foundation/litepub/lib/doctree"
	"github.com/litepub-foundation/litepub/lib/filter"
	"github.com/litepub-foundation/litepub/lib/registry"
	"github.com/litepub-foundation/litepub/lib/resolve"
)

func sampleBundle(t *testing.T) *Bundle {
	t.Helper()
	doc := &doctree.Document{Blocks: []doctree.Block{
		doctree.MakeHeader(1, "intro", "Results"),
		doctree.TextPara("All metrics passed."),
	}}
	res := &build.Result{
		Doc: doc,
		Resolution: &resolve.Report{Entries: []resolve.ReportEntry{
			{SemanticID: "m1", Action: "resolved", Verified: true},
		}},
		Filter: &filter.Report{Entries: []filter.Entry{
			{SemanticID: "i1", Action: "removed", ReasonCode: "VIS_REMOVED_INTERNAL_ONLY"},
		}},
		Provenance: build.Provenance{
			Run:          registry.Run{RunID: "run-7", TestID: "t-1"},
			BuildTarget:  "external",
			RenderTarget: "pdf",
			Strict:       true,
		},
	}
	b, err := FromResult(res)
	if err != nil {
		t.Fatalf("FromResult: %v", err)
	}
	return b
}

func TestBundleRoundtrip(t *testing.T) {
	t.Parallel()

	original := sampleBundle(t)
	var buf bytes.Buffer
	if err := Write(&buf, original); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", got, original)
	}

	doc, err := got.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Errorf("decoded tree blocks = %d", len(doc.Blocks))
	}
}

func TestBundleFileRoundtrip(t *testing.T) {
	t.Parallel()

	original := sampleBundle(t)
	path := filepath.Join(t.TempDir(), "build.lpub")
	if err := WriteFile(path, original); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Provenance.Run.RunID != "run-7" {
		t.Errorf("provenance = %+v", got.Provenance)
	}
}

func TestBundleDeterministic(t *testing.T) {
	t.Parallel()

	b := sampleBundle(t)
	var first, second bytes.Buffer
	if err := Write(&first, b); err != nil {
		t.Fatal(err)
	}
	if err := Write(&second, b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two writes of the same bundle differ")
	}
}

func TestReadRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("lp")},
		{"wrong magic", []byte("nope\x01rest")},
		{"unknown version", []byte("lpub\x09rest")},
		{"corrupt payload", []byte("lpub\x01not-zstd")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Read(bytes.NewReader(tc.data)); err == nil {
				t.Error("Read accepted malformed input")
			}
		})
	}
}
