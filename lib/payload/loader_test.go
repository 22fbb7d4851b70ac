// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"errors"
	"strings"
	"testing"

	"github.com/litepub-foundation/litepub/lib/registry"
	"github.com/litepub-foundation/litepub/lib/testutil"
)

func metricEntry(id, digest string) *registry.Entry {
	return &registry.Entry{
		ID:           id,
		ArtifactType: registry.TypeMetric,
		Format:       "json",
		Spec:         SpecMetric,
		URI:          id + ".json",
		SHA256:       digest,
		Origin:       registry.Origin{Producer: "stats"},
	}
}

func TestComputeSHA256(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := []byte(`{"label": "AUC", "value": 0.93}`)
	path := testutil.WriteFile(t, dir, "m.json", content)

	digest, err := ComputeSHA256(path)
	if err != nil {
		t.Fatalf("ComputeSHA256: %v", err)
	}
	if digest != testutil.Digest(content) {
		t.Errorf("digest = %s, want %s", digest, testutil.Digest(content))
	}
	if !strings.HasPrefix(digest, "sha256:") {
		t.Errorf("digest %q lacks prefix", digest)
	}
}

func TestVerifyFileMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := []byte(`{"label": "AUC", "value": 0.93}`)
	path := testutil.WriteFile(t, dir, "m.json", content)

	// Registry promises the digest of slightly different bytes.
	flipped := append([]byte(nil), content...)
	flipped[0] ^= 1
	expected := testutil.Digest(flipped)

	err := VerifyFile(path, expected, "m1")
	var herr *HashMismatchError
	if !errors.As(err, &herr) {
		t.Fatalf("got %v, want *HashMismatchError", err)
	}
	if herr.Expected != expected {
		t.Errorf("expected = %s, want %s", herr.Expected, expected)
	}
	if herr.Actual != testutil.Digest(content) {
		t.Errorf("actual = %s, want %s", herr.Actual, testutil.Digest(content))
	}
	if herr.SemanticID != "m1" {
		t.Errorf("semantic id = %q", herr.SemanticID)
	}
}

func TestLoadMetricVerified(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := []byte(`{"label": "AUC", "value": 0.93, "unit": "", "format": "{value}"}`)
	path := testutil.WriteFile(t, dir, "m1.json", content)
	entry := metricEntry("m1", testutil.Digest(content))

	m, err := LoadMetric(path, entry, true, Limits{})
	if err != nil {
		t.Fatalf("LoadMetric: %v", err)
	}
	if m.Label != "AUC" || m.Value.Float64() != 0.93 {
		t.Errorf("metric = %+v", m)
	}
}

func TestLoadMetricCorruptFailsBeforeParse(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// The content is not even JSON; with a digest mismatch the error
	// must be corruption, not a parse failure.
	path := testutil.WriteFile(t, dir, "m1.json", []byte("garbage"))
	entry := metricEntry("m1", testutil.Digest([]byte("original")))

	_, err := LoadMetric(path, entry, true, Limits{})
	var herr *HashMismatchError
	if !errors.As(err, &herr) {
		t.Fatalf("got %v, want *HashMismatchError", err)
	}
}

func TestLoadMetricUnverifiedSkipsDigest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := []byte(`{"label": "AUC", "value": 1}`)
	path := testutil.WriteFile(t, dir, "m1.json", content)
	entry := metricEntry("m1", "sha256:not-the-real-digest")

	if _, err := LoadMetric(path, entry, false, Limits{}); err != nil {
		t.Errorf("unverified load failed: %v", err)
	}
}

func TestLoadMetricWrongSpec(t *testing.T) {
	t.Parallel()

	entry := metricEntry("m1", "sha256:0")
	entry.Spec = SpecTableSimple
	_, err := LoadMetric("ignored", entry, false, Limits{})
	var perr *PayloadError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *PayloadError", err)
	}
}

func TestLoadSimpleTableFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := []byte(`{
		"columns": [{"key": "k", "dtype": "string"}],
		"rows": [{"k": "v"}]
	}`)
	path := testutil.WriteFile(t, dir, "t1.json", content)
	entry := &registry.Entry{
		ID: "t1", ArtifactType: registry.TypeTable, Spec: SpecTableSimple,
		URI: "t1.json", SHA256: testutil.Digest(content),
		Origin: registry.Origin{Producer: "stats"},
	}

	table, err := LoadSimpleTable(path, entry, true, Limits{}, true)
	if err != nil {
		t.Fatalf("LoadSimpleTable: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Errorf("rows = %d", len(table.Rows))
	}
}

func TestLoadFigureMetaMissingURI(t *testing.T) {
	t.Parallel()

	entry := &registry.Entry{ID: "f1", Spec: SpecFigureBinary}
	meta, err := LoadFigureMeta("ignored", entry, true)
	if meta != nil || err != nil {
		t.Errorf("got %+v, %v, want nil, nil", meta, err)
	}
}

func TestLoadFigureMetaWrongSpec(t *testing.T) {
	t.Parallel()

	entry := &registry.Entry{
		ID: "f1", Spec: SpecFigureBinary,
		MetaURI: "f1.meta.json", MetaSHA256: "sha256:0", MetaSpec: "figure.meta.json@v2",
	}
	_, err := LoadFigureMeta("ignored", entry, false)
	var perr *PayloadError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *PayloadError", err)
	}
}
