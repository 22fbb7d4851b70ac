// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"strings"

	"github.com/litepub-foundation/litepub/lib/doctree"
	"github.com/litepub-foundation/litepub/lib/registry"
)

// Placeholder tokens. A computed wrapper contains exactly one
// paragraph consisting of exactly one of these.
const (
	TokenMetric = "[[COMPUTED:METRIC]]"
	TokenTable  = "[[COMPUTED:TABLE]]"
	TokenFigure = "[[COMPUTED:FIGURE]]"
)

// Artifact kinds as carried in wrapper kind attributes.
const (
	KindMetric = "metric"
	KindTable  = "table"
	KindFigure = "figure"
)

// tokenKind maps placeholder tokens to the kind they stand for.
var tokenKind = map[string]string{
	TokenMetric: KindMetric,
	TokenTable:  KindTable,
	TokenFigure: KindFigure,
}

// artifactTypeKind maps registry artifact types to wrapper kinds. The
// vocabularies coincide today, but the mapping is the contract point:
// a future artifact type with a different kind name changes only this.
var artifactTypeKind = map[string]string{
	registry.TypeMetric: KindMetric,
	registry.TypeTable:  KindTable,
	registry.TypeFigure: KindFigure,
}

// PlaceholderToken reports whether the paragraph is a placeholder: its
// inlines are exclusively Str, Space, and SoftBreak nodes whose
// flattened, trimmed text equals one of the tokens. A paragraph
// mentioning a token amid other content is prose, not a placeholder.
func PlaceholderToken(para *doctree.Para) (string, bool) {
	var sb strings.Builder
	for _, in := range para.Inlines {
		switch n := in.(type) {
		case *doctree.Str:
			sb.WriteString(n.Text)
		case *doctree.Space, *doctree.SoftBreak:
			sb.WriteString(" ")
		default:
			return "", false
		}
	}
	text := strings.TrimSpace(sb.String())
	if _, ok := tokenKind[text]; !ok {
		return "", false
	}
	return text, true
}
