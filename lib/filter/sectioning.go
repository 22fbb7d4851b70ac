// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"regexp"
	"strings"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

var (
	slugSpaces    = regexp.MustCompile(`\s+`)
	slugForbidden = regexp.MustCompile(`[^a-z0-9-]`)
	slugHyphens   = regexp.MustCompile(`-+`)
)

// Slugify lowercases text and reduces it to a safe anchor fragment:
// spaces become hyphens, everything outside [a-z0-9-] is dropped, runs
// of hyphens collapse.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugForbidden.ReplaceAllString(slug, "")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// anchorID derives the deterministic appendix anchor for a semantic
// id, e.g. "appendix-my-wrapper".
func anchorID(semanticID, prefix string) string {
	return prefix + "-" + Slugify(semanticID)
}

// stubPara builds a stub paragraph: text followed by a link.
func stubPara(text, linkText, linkTarget string) *doctree.Para {
	inlines := doctree.TextInlines(text)
	inlines = append(inlines, &doctree.Space{}, &doctree.Link{
		Inlines: []doctree.Inline{&doctree.Str{Text: linkText}},
		Target:  doctree.Target{URL: linkTarget},
	})
	return &doctree.Para{Inlines: inlines}
}

// findAppendix returns the index of an existing appendix header, or
// -1. The match is on flattened header text, case-insensitive.
func findAppendix(blocks []doctree.Block, title string) int {
	for i, b := range blocks {
		h, ok := b.(*doctree.Header)
		if !ok {
			continue
		}
		text := strings.TrimSpace(doctree.FlattenText(h.Inlines))
		if strings.EqualFold(text, title) {
			return i
		}
	}
	return -1
}

// ensureAppendix appends an appendix header unless one already exists,
// returning the header's anchor id.
func ensureAppendix(doc *doctree.Document, opts AppendixOptions) string {
	sectionAnchor := opts.AnchorPrefix + "-section"
	if idx := findAppendix(doc.Blocks, opts.Title); idx >= 0 {
		h := doc.Blocks[idx].(*doctree.Header)
		if h.Attr.Identifier != "" {
			return h.Attr.Identifier
		}
		return sectionAnchor
	}
	doc.Blocks = append(doc.Blocks, doctree.MakeHeader(1, sectionAnchor, opts.Title))
	return sectionAnchor
}

// appendToAppendix adds a level-2 subsection at the end of the
// document, which the appendix header anchors.
func appendToAppendix(doc *doctree.Document, title, anchor string, content []doctree.Block) {
	doc.Blocks = append(doc.Blocks, doctree.MakeHeader(2, anchor, title))
	doc.Blocks = append(doc.Blocks, content...)
}
