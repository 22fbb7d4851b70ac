// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

// Visibility removes wrappers whose visibility level is below the
// build target's minimum. Internal builds keep everything; external
// builds drop internal-only content; dossier builds keep only dossier
// content. Removal takes the whole subtree, nested wrappers included.
func Visibility(doc *doctree.Document, cfg Config, ctx BuildContext) (*doctree.Document, *Report, error) {
	out := doc.Clone()
	report := &Report{}
	targetLevel := cfg.targetLevel(ctx.BuildTarget)

	out.Blocks = removeWrappers(out.Blocks, "blocks", func(w *doctree.Div, path string) bool {
		vis := w.Visibility()
		if cfg.VisibilityOrder[vis] >= targetLevel {
			return false
		}
		reason := ReasonVisExternalOnly
		message := fmt.Sprintf("wrapper %q removed: not visible in %s", w.Attr.Identifier, ctx.BuildTarget)
		if vis == TargetInternal {
			reason = ReasonVisInternalOnly
			message = fmt.Sprintf("wrapper %q removed: internal-only content", w.Attr.Identifier)
		}
		report.add(Entry{
			SemanticID: w.Attr.Identifier,
			Action:     ActionRemoved,
			ReasonCode: reason,
			Message:    message,
			Path:       path,
			Details: map[string]any{
				"visibility": vis,
				"target":     ctx.BuildTarget,
			},
		})
		return true
	})
	return out, report, nil
}

// removeWrappers filters a block list, dropping every semantic wrapper
// for which remove returns true and recursing into surviving Divs.
func removeWrappers(blocks []doctree.Block, basePath string, remove func(*doctree.Div, string) bool) []doctree.Block {
	out := blocks[:0]
	for i, b := range blocks {
		path := fmt.Sprintf("%s[%d]", basePath, i)
		if w, ok := doctree.AsWrapper(b); ok && remove(w, path) {
			continue
		}
		if d, ok := b.(*doctree.Div); ok {
			d.Blocks = removeWrappers(d.Blocks, path+".c[1]", remove)
		}
		out = append(out, b)
	}
	return out
}
