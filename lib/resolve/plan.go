// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"fmt"

	"github.com/litepub-foundation/litepub/lib/doctree"
	"github.com/litepub-foundation/litepub/lib/registry"
)

// PlanItem is one scheduled replacement: a computed wrapper bound to
// its registry entry and the exact placeholder position to splice.
type PlanItem struct {
	SemanticID string
	Entry      *registry.Entry
	Kind       string
	Token      string
	// BlockIndex is the wrapper's index in the document's top-level
	// blocks.
	BlockIndex int
	// PlaceholderIndex is the placeholder paragraph's index among the
	// wrapper's direct children.
	PlaceholderIndex int
}

// Plan is the full resolution schedule, in document order.
type Plan struct {
	Items []PlanItem
	// Skipped lists wrapper ids without registry entries that draft
	// resolution chose to leave in place.
	Skipped []string
}

// BuildPlan scans the document's top-level computed wrappers and binds
// each to its registry entry. Placeholder arity violations and kind
// mismatches are fatal under every configuration; unknown ids are
// fatal only under strict resolution.
func BuildPlan(doc *doctree.Document, snap *registry.Snapshot, cfg Config) (*Plan, error) {
	var plan Plan
	for blockIndex, block := range doc.Blocks {
		wrapper, ok := doctree.AsWrapper(block)
		if !ok || wrapper.Role() != doctree.RoleComputed {
			continue
		}
		id := wrapper.Attr.Identifier

		placeholderIndex := -1
		token := ""
		count := 0
		for i, inner := range wrapper.Blocks {
			para, ok := inner.(*doctree.Para)
			if !ok {
				continue
			}
			if tok, ok := PlaceholderToken(para); ok {
				count++
				placeholderIndex = i
				token = tok
			}
		}
		switch {
		case count == 0:
			return nil, &PlaceholderError{
				SemanticID: id,
				Count:      0,
				Message:    "computed wrapper contains no placeholder paragraph",
			}
		case count > 1:
			return nil, &PlaceholderError{
				SemanticID: id,
				Count:      count,
				Message:    fmt.Sprintf("computed wrapper contains %d placeholder paragraphs, want exactly one", count),
			}
		}

		entry, found := snap.Get(id)
		if !found {
			if cfg.effectiveStrict() {
				return nil, &registry.RegistryError{
					ID:      id,
					Message: "no registry entry for computed wrapper",
				}
			}
			plan.Skipped = append(plan.Skipped, id)
			continue
		}

		// Kind compatibility is checked against both the wrapper's
		// declared kind and its placeholder token, and is fatal even
		// in draft resolution.
		artifactKind := artifactTypeKind[entry.ArtifactType]
		if declared := wrapper.Kind(); declared != "" && declared != artifactKind {
			return nil, &KindMismatchError{
				SemanticID:   id,
				WrapperKind:  declared,
				ArtifactKind: artifactKind,
			}
		}
		if tokenKind[token] != artifactKind {
			return nil, &KindMismatchError{
				SemanticID:   id,
				WrapperKind:  tokenKind[token],
				ArtifactKind: artifactKind,
			}
		}

		plan.Items = append(plan.Items, PlanItem{
			SemanticID:       id,
			Entry:            entry,
			Kind:             artifactKind,
			Token:            token,
			BlockIndex:       blockIndex,
			PlaceholderIndex: placeholderIndex,
		})
	}
	return &plan, nil
}
