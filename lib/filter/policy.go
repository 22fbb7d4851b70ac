// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"
	"sort"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

// Policy removes wrappers carrying any policy tag the build target
// forbids. The reason code names the lexicographically smallest
// matching tag; every match is recorded in the entry details.
func Policy(doc *doctree.Document, cfg Config, ctx BuildContext) (*doctree.Document, *Report, error) {
	out := doc.Clone()
	report := &Report{}
	forbidden := cfg.forbiddenFor(ctx.BuildTarget)
	if forbidden == nil {
		return out, report, nil
	}

	out.Blocks = removeWrappers(out.Blocks, "blocks", func(w *doctree.Div, path string) bool {
		var matching []string
		seen := make(map[string]bool)
		for _, tag := range w.Policies() {
			if forbidden[tag] && !seen[tag] {
				matching = append(matching, tag)
				seen[tag] = true
			}
		}
		if len(matching) == 0 {
			return false
		}
		sort.Strings(matching)
		report.add(Entry{
			SemanticID: w.Attr.Identifier,
			Action:     ActionRemoved,
			ReasonCode: ReasonPolicyTagPrefix + matching[0],
			Message:    fmt.Sprintf("wrapper %q removed: forbidden policy tag(s)", w.Attr.Identifier),
			Path:       path,
			Details: map[string]any{
				"matching_policies": matching,
				"target":            ctx.BuildTarget,
			},
		})
		return true
	})
	return out, report, nil
}
