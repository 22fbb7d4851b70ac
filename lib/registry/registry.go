// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry loads and validates AARC artifact registries: the
// content-addressed catalog that binds semantic ids to artifact
// payloads, digests, and run provenance. Registry files are JSON with
// optional comments and trailing commas (JSONC), since they are
// routinely annotated by hand during review.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// Version is the registry format tag. Anything else is rejected; the
// format has no cross-version compatibility story.
const Version = "aarc-1.1"

// Artifact types an entry may declare.
const (
	TypeTable  = "table"
	TypeMetric = "metric"
	TypeFigure = "figure"
)

// RegistryError reports a malformed registry file.
type RegistryError struct {
	// Path is the registry file.
	Path string
	// Field names the offending field, when field-specific.
	Field string
	// ID names the offending entry, when entry-specific.
	ID string
	// Message describes the problem.
	Message string
}

func (e *RegistryError) Error() string {
	var sb strings.Builder
	sb.WriteString("registry")
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	sb.WriteString(": ")
	if e.ID != "" {
		fmt.Fprintf(&sb, "entry %q: ", e.ID)
	}
	if e.Field != "" {
		fmt.Fprintf(&sb, "field %q: ", e.Field)
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// Pipeline identifies the producing pipeline.
type Pipeline struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Code records the code state of the producing run.
type Code struct {
	Commit string `json:"commit"`
	Dirty  bool   `json:"dirty"`
}

// Inputs fingerprints the inputs of the producing run.
type Inputs struct {
	DatasetFingerprint string `json:"dataset_fingerprint"`
	ConfigFingerprint  string `json:"config_fingerprint"`
}

// Run is the provenance block: which run produced every artifact in
// the snapshot.
type Run struct {
	RunID    string   `json:"run_id"`
	TestID   string   `json:"test_id"`
	Pipeline Pipeline `json:"pipeline"`
	Code     Code     `json:"code"`
	Inputs   Inputs   `json:"inputs"`
}

// Origin says which producer emitted an artifact.
type Origin struct {
	Producer string `json:"producer"`
	Step     string `json:"step,omitempty"`
}

// Entry is one artifact: a semantic id bound to a payload location,
// its digest, and an optional metadata sidecar. Related and Meta are
// carried opaquely; the pipeline never interprets them.
type Entry struct {
	ID           string         `json:"id"`
	ArtifactType string         `json:"artifact_type"`
	Format       string         `json:"format"`
	Spec         string         `json:"spec"`
	URI          string         `json:"uri"`
	SHA256       string         `json:"sha256"`
	Origin       Origin         `json:"origin"`
	MetaURI      string         `json:"meta_uri,omitempty"`
	MetaSHA256   string         `json:"meta_sha256,omitempty"`
	MetaSpec     string         `json:"meta_spec,omitempty"`
	Related      any            `json:"related,omitempty"`
	Meta         map[string]any `json:"meta,omitempty"`
}

// Snapshot is a loaded, validated registry.
type Snapshot struct {
	Version      string  `json:"registry_version"`
	GeneratedAt  string  `json:"generated_at"`
	Run          Run     `json:"run"`
	ArtifactRoot string  `json:"artifact_root,omitempty"`
	Entries      []Entry `json:"entries"`

	// dir is the directory of the registry file; relative artifact
	// roots resolve against it.
	dir  string
	byID map[string]*Entry
}

// Load reads and validates a registry file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return Decode(data, path, filepath.Dir(path))
}

// Decode validates registry bytes. path is used for error reporting
// only; dir anchors relative artifact roots.
func Decode(data []byte, path, dir string) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(jsonc.ToJSON(data), &snap); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	snap.dir = dir
	if err := snap.validate(path); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Snapshot) validate(path string) error {
	fail := func(field, id, msg string) error {
		return &RegistryError{Path: path, Field: field, ID: id, Message: msg}
	}
	if s.Version != Version {
		return fail("registry_version", "", fmt.Sprintf("unsupported version %q, want %q", s.Version, Version))
	}
	if s.GeneratedAt == "" {
		return fail("generated_at", "", "missing")
	}
	switch {
	case s.Run.RunID == "":
		return fail("run.run_id", "", "missing")
	case s.Run.TestID == "":
		return fail("run.test_id", "", "missing")
	case s.Run.Pipeline.Name == "":
		return fail("run.pipeline.name", "", "missing")
	case s.Run.Pipeline.Version == "":
		return fail("run.pipeline.version", "", "missing")
	case s.Run.Code.Commit == "":
		return fail("run.code.commit", "", "missing")
	case s.Run.Inputs.DatasetFingerprint == "":
		return fail("run.inputs.dataset_fingerprint", "", "missing")
	case s.Run.Inputs.ConfigFingerprint == "":
		return fail("run.inputs.config_fingerprint", "", "missing")
	}
	s.byID = make(map[string]*Entry, len(s.Entries))
	for i := range s.Entries {
		e := &s.Entries[i]
		if e.ID == "" {
			return fail("id", "", fmt.Sprintf("entry %d has no id", i))
		}
		if _, dup := s.byID[e.ID]; dup {
			return fail("id", e.ID, "duplicate entry id")
		}
		switch e.ArtifactType {
		case TypeTable, TypeMetric, TypeFigure:
		default:
			return fail("artifact_type", e.ID, fmt.Sprintf("unknown artifact type %q", e.ArtifactType))
		}
		if e.Spec == "" {
			return fail("spec", e.ID, "missing")
		}
		if e.URI == "" {
			return fail("uri", e.ID, "missing")
		}
		if !strings.HasPrefix(e.SHA256, "sha256:") {
			return fail("sha256", e.ID, fmt.Sprintf("digest %q must have a sha256: prefix", e.SHA256))
		}
		if e.Origin.Producer == "" {
			return fail("origin.producer", e.ID, "missing")
		}
		if e.MetaURI != "" && !strings.HasPrefix(e.MetaSHA256, "sha256:") {
			return fail("meta_sha256", e.ID, "meta_uri without a sha256: meta digest")
		}
		s.byID[e.ID] = e
	}
	return nil
}

// Get returns the entry for id.
func (s *Snapshot) Get(id string) (*Entry, bool) {
	e, ok := s.byID[id]
	return e, ok
}

// Has reports whether id is registered.
func (s *Snapshot) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// IDs returns the semantic ids in file order.
func (s *Snapshot) IDs() []string {
	ids := make([]string, len(s.Entries))
	for i := range s.Entries {
		ids[i] = s.Entries[i].ID
	}
	return ids
}

// ResolveURI maps an entry URI to a filesystem path. URIs starting
// with "/" or containing a scheme are taken as-is; everything else is
// relative to the artifact root, which is itself relative to the
// registry file's directory unless absolute.
func (s *Snapshot) ResolveURI(uri string) string {
	if strings.HasPrefix(uri, "/") || strings.Contains(uri, "://") {
		return uri
	}
	root := s.ArtifactRoot
	if !filepath.IsAbs(root) {
		root = filepath.Join(s.dir, root)
	}
	return filepath.Join(root, uri)
}

// PayloadPath returns the filesystem path of the entry's payload.
func (s *Snapshot) PayloadPath(e *Entry) string {
	return s.ResolveURI(e.URI)
}

// MetaPath returns the filesystem path of the entry's metadata
// sidecar, if it has one.
func (s *Snapshot) MetaPath(e *Entry) (string, bool) {
	if e.MetaURI == "" {
		return "", false
	}
	return s.ResolveURI(e.MetaURI), true
}
