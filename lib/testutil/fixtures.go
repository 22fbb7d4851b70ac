// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Litepub packages.
package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content under dir, creating parent directories, and
// returns the full path. Fails the test on error.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating fixture directory: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// WriteJSON marshals v and writes it under dir.
func WriteJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling fixture %s: %v", name, err)
	}
	return WriteFile(t, dir, name, data)
}

// Digest returns the "sha256:<hex>" digest of content, the form
// registries carry.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return "sha256:" + hex.EncodeToString(sum[:])
}
