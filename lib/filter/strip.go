// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"
	"sort"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

// MetadataStrip removes provenance attributes from wrappers for
// external and dossier builds. Internal builds strip nothing; the
// protected keys survive every target.
func MetadataStrip(doc *doctree.Document, cfg Config, ctx BuildContext) (*doctree.Document, *Report, error) {
	out := doc.Clone()
	report := &Report{}
	strip := cfg.stripFor(ctx.BuildTarget)
	if strip == nil {
		return out, report, nil
	}

	visitWrappers(out.Blocks, "blocks", func(w *doctree.Div, path string) {
		var stripped []string
		keys := w.Attr.Keys()
		sort.Strings(keys)
		for _, key := range keys {
			if strip[key] && w.Attr.Delete(key) {
				stripped = append(stripped, key)
			}
		}
		if len(stripped) == 0 {
			return
		}
		report.add(Entry{
			SemanticID: w.Attr.Identifier,
			Action:     ActionStripped,
			ReasonCode: ReasonMetaStripAttrs,
			Message:    fmt.Sprintf("stripped %d attribute(s) from %q", len(stripped), w.Attr.Identifier),
			Path:       path,
			Details: map[string]any{
				"stripped_keys": stripped,
				"target":        ctx.BuildTarget,
			},
		})
	})
	return out, report, nil
}

// visitWrappers calls visit for every semantic wrapper, recursing into
// every Div in document order.
func visitWrappers(blocks []doctree.Block, basePath string, visit func(*doctree.Div, string)) {
	for i, b := range blocks {
		d, ok := b.(*doctree.Div)
		if !ok {
			continue
		}
		path := fmt.Sprintf("%s[%d]", basePath, i)
		if w, isWrapper := doctree.AsWrapper(d); isWrapper {
			visit(w, path)
		}
		visitWrappers(d.Blocks, path+".c[1]", visit)
	}
}
