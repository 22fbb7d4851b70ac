// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctree defines the canonical document tree: a closed set of
// block and inline node types mirroring the Pandoc JSON AST, plus the
// JSON codec, deep copy, the exhaustive walker, and helpers for the
// semantic wrapper convention (Div blocks carrying id/role/kind and
// visibility metadata).
//
// The node set is closed on purpose. Every consumer that dispatches on
// node type does so with a type switch over the concrete variants, and
// the walker panics on an unknown type so that adding a variant without
// updating the dispatch sites fails loudly in tests rather than
// silently skipping subtrees.
package doctree
