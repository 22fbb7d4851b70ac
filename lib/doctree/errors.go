// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package doctree

import "strings"

// ValidationError is a structural or payload validation failure with a
// stable machine-readable code. Codes are part of the public contract:
// callers and tests match on Code, never on Message.
type ValidationError struct {
	// Code is the stable error code, e.g. "VAL_METRIC_VALUE_BOOL".
	Code string
	// Message is the human-readable description.
	Message string
	// SemanticID is the wrapper or registry id the payload belongs to,
	// when known.
	SemanticID string
	// Spec is the payload spec tag, when known.
	Spec string
	// Path locates the offending node inside the tree or payload.
	Path string
	// Hint optionally suggests a fix.
	Hint string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(e.Code)
	sb.WriteString("] ")
	sb.WriteString(e.Message)
	if e.SemanticID != "" {
		sb.WriteString(" (id=")
		sb.WriteString(e.SemanticID)
		sb.WriteString(")")
	}
	if e.Path != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.Path)
	}
	if e.Hint != "" {
		sb.WriteString("; hint: ")
		sb.WriteString(e.Hint)
	}
	return sb.String()
}
