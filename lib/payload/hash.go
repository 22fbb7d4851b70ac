// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// hashChunkSize is the streaming read size for digest computation.
const hashChunkSize = 1 << 20

// ComputeSHA256 streams the file at path and returns its digest in
// the registry form "sha256:<hex>".
func ComputeSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hashing: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyFile checks the file's digest against expected, returning a
// HashMismatchError on disagreement. Verification always happens
// before the payload is parsed.
func VerifyFile(path, expected, semanticID string) error {
	actual, err := ComputeSHA256(path)
	if err != nil {
		return err
	}
	if actual != expected {
		return &HashMismatchError{
			SemanticID: semanticID,
			Path:       path,
			Expected:   expected,
			Actual:     actual,
		}
	}
	return nil
}
