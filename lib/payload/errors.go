// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// Package payload loads and validates artifact payloads: metric
// documents, simple and native tables, figure binaries, and figure
// metadata sidecars. Every loader verifies the registry digest before
// parsing a byte, and every validator reports stable error codes.
package payload

import "fmt"

// PayloadError reports a payload that could not be loaded or is not
// of the expected shape for its spec.
type PayloadError struct {
	// SemanticID is the registry id the payload belongs to.
	SemanticID string
	// Spec is the payload spec tag.
	Spec string
	// Path is the payload file.
	Path string
	// Message describes the problem.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *PayloadError) Error() string {
	msg := fmt.Sprintf("payload %s (%s): %s", e.SemanticID, e.Spec, e.Message)
	if e.Path != "" {
		msg += " [" + e.Path + "]"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PayloadError) Unwrap() error { return e.Err }

// HashMismatchError means the bytes on disk do not match the digest
// the registry promised. The pipeline treats this as corruption and
// never falls back to the unverified content.
type HashMismatchError struct {
	// SemanticID is the registry id whose payload failed verification.
	SemanticID string
	// Path is the file that was hashed.
	Path string
	// Expected is the digest from the registry.
	Expected string
	// Actual is the digest of the bytes on disk.
	Actual string
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("hash mismatch for %s at %s: registry says %s, file is %s",
		e.SemanticID, e.Path, e.Expected, e.Actual)
}
