// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolve replaces computed-content placeholders in a document
// tree with validated artifact payloads from a registry snapshot. The
// resolver plans first (scan wrappers, match registry entries, check
// kinds) and applies second (load, validate, emit, splice), so a
// failing document never gets partially rewritten output by accident:
// any failure surfaces before the caller sees a tree.
package resolve

import "github.com/litepub-foundation/litepub/lib/payload"

// Build targets, ordered from most to least permissive.
const (
	TargetInternal = "internal"
	TargetExternal = "external"
	TargetDossier  = "dossier"
)

// Config controls a resolution run.
type Config struct {
	// Target is the build target the document is being resolved for.
	Target string
	// Strict enables digest verification and makes unknown wrapper ids
	// fatal. Draft (non-strict) runs skip unknown ids but still fail
	// on kind mismatches.
	Strict bool
	// AllowRawPandoc permits raw nodes inside native table payloads.
	// Never enabled by default.
	AllowRawPandoc bool
	// StrictRowKeys selects the strict row-completeness policy for
	// simple tables. There is no default policy; callers choose.
	StrictRowKeys bool
	// Limits bound payload sizes. Zero fields use the defaults.
	Limits payload.Limits
}

// DefaultConfig returns the production posture: internal target,
// strict resolution.
func DefaultConfig() Config {
	return Config{
		Target: TargetInternal,
		Strict: true,
		Limits: payload.DefaultLimits(),
	}
}

// StrictTarget reports whether the target always requires strict
// resolution regardless of the Strict flag. Draft resolution is an
// internal-only affordance.
func (c Config) StrictTarget() bool {
	return c.Target == TargetExternal || c.Target == TargetDossier
}

// effectiveStrict is the unknown-id policy: strict if asked for or if
// the target demands it.
func (c Config) effectiveStrict() bool {
	return c.Strict || c.StrictTarget()
}
