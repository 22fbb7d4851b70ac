// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"
	"strings"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

// Presentation shapes the tree for the render target. PDF builds
// externalize oversized code blocks into link stubs and relocate
// oversized "additional" wrappers to a lazily-created appendix; HTML
// builds fold oversized content in place. Text targets (md, rst) pass
// through untouched.
func Presentation(doc *doctree.Document, cfg Config, ctx BuildContext) (*doctree.Document, *Report, error) {
	out := doc.Clone()
	report := &Report{}

	switch ctx.RenderTarget {
	case RenderPDF:
		out.Blocks = externalizeCodeBlocks(out.Blocks, "blocks", cfg, ctx, report)
		moveAdditionalToAppendix(out, cfg, report)
	case RenderHTML:
		foldAdditional(out.Blocks, cfg, report)
		foldCodeBlocks(out.Blocks, "blocks", cfg, report)
	}
	return out, report, nil
}

// codeOverThreshold reports whether a code block exceeds the PDF
// externalization limits, returning its measurements.
func codeOverThreshold(cb *doctree.CodeBlock, t Thresholds) (lines, chars int, over bool) {
	lines = doctree.CodeBlockLines(cb)
	chars = len(cb.Text)
	return lines, chars, lines > t.PDFCodeMaxLines || chars > t.PDFCodeMaxChars
}

// externalizeCodeBlocks replaces oversized code blocks with a link
// stub plus a short preview, recursing into Divs.
func externalizeCodeBlocks(blocks []doctree.Block, basePath string, cfg Config, ctx BuildContext, report *Report) []doctree.Block {
	var out []doctree.Block
	for i, b := range blocks {
		path := fmt.Sprintf("%s[%d]", basePath, i)
		switch n := b.(type) {
		case *doctree.CodeBlock:
			lines, chars, over := codeOverThreshold(n, cfg.Thresholds)
			if !over {
				out = append(out, b)
				continue
			}
			snippetID := SnippetID(n.Text)
			out = append(out, codeStub(n, snippetID, cfg, ctx)...)
			report.add(Entry{
				SemanticID: snippetID,
				Action:     ActionExternalized,
				ReasonCode: ReasonPDFCodeExternalized,
				Message:    fmt.Sprintf("code block externalized (%d lines, %d chars)", lines, chars),
				Path:       path,
				Details:    map[string]any{"lines": lines, "chars": chars},
			})
		case *doctree.Div:
			n.Blocks = externalizeCodeBlocks(n.Blocks, path+".c[1]", cfg, ctx, report)
			out = append(out, n)
		default:
			out = append(out, b)
		}
	}
	return out
}

// codeStub builds the replacement for an externalized code block: a
// paragraph linking to the snippet file, then the first preview lines
// with the original attributes so syntax highlighting survives.
func codeStub(cb *doctree.CodeBlock, snippetID string, cfg Config, ctx BuildContext) []doctree.Block {
	target := "code_snippets/" + snippetID + ".txt"
	if ctx.ArtifactBaseURL != "" {
		target = ctx.ArtifactBaseURL + "/code_snippets/" + snippetID + ".txt"
	}
	stub := []doctree.Block{
		stubPara("Code snippet omitted from PDF. See:", target, target),
	}

	previewLines := cfg.Thresholds.PDFCodePreviewLines
	if previewLines <= 0 {
		return stub
	}
	lines := strings.Split(cb.Text, "\n")
	preview := strings.Join(lines[:min(previewLines, len(lines))], "\n")
	if len(lines) > previewLines {
		preview += "\n# ... (truncated)"
	}
	return append(stub, &doctree.CodeBlock{Attr: doctree.CloneAttr(cb.Attr), Text: preview})
}

// moveAdditionalToAppendix relocates oversized additional wrappers to
// the appendix, leaving a back-reference stub in place.
func moveAdditionalToAppendix(doc *doctree.Document, cfg Config, report *Report) {
	type mover struct {
		id      string
		content []doctree.Block
	}
	var movers []mover
	moveSet := make(map[string]bool)

	visitWrappers(doc.Blocks, "blocks", func(w *doctree.Div, path string) {
		if !w.IsAdditional() {
			return
		}
		blockCount := len(w.Blocks)
		charCount := doctree.EstimateBlocksChars(w.Blocks)
		if blockCount <= cfg.Thresholds.AppendixBlocks && charCount <= cfg.Thresholds.AppendixChars {
			return
		}
		id := w.Attr.Identifier
		movers = append(movers, mover{id: id, content: w.Blocks})
		moveSet[id] = true
		report.add(Entry{
			SemanticID: id,
			Action:     ActionMovedToAppendix,
			ReasonCode: ReasonPDFMovedToAppendix,
			Message:    fmt.Sprintf("additional content %q moved to %s", id, cfg.Appendix.Title),
			Path:       path,
			Details:    map[string]any{"anchor_id": anchorID(id, cfg.Appendix.AnchorPrefix)},
		})
	})
	if len(movers) == 0 {
		return
	}

	ensureAppendix(doc, cfg.Appendix)
	doc.Blocks = replaceWithStubs(doc.Blocks, moveSet, cfg.Appendix)
	for _, m := range movers {
		anchor := anchorID(m.id, cfg.Appendix.AnchorPrefix)
		appendToAppendix(doc, "Additional: "+m.id, anchor, m.content)
	}
}

// replaceWithStubs swaps each moved wrapper for a back-reference stub,
// recursing into surviving Divs.
func replaceWithStubs(blocks []doctree.Block, moveSet map[string]bool, opts AppendixOptions) []doctree.Block {
	out := make([]doctree.Block, 0, len(blocks))
	for _, b := range blocks {
		if w, ok := doctree.AsWrapper(b); ok && moveSet[w.Attr.Identifier] {
			anchor := anchorID(w.Attr.Identifier, opts.AnchorPrefix)
			out = append(out, stubPara("[Moved to "+opts.Title+"]", w.Attr.Identifier, "#"+anchor))
			continue
		}
		if d, ok := b.(*doctree.Div); ok {
			d.Blocks = replaceWithStubs(d.Blocks, moveSet, opts)
		}
		out = append(out, b)
	}
	return out
}

// foldAdditional marks oversized additional wrappers foldable for the
// HTML writer: the "foldable" class plus data attributes, content left
// in place.
func foldAdditional(blocks []doctree.Block, cfg Config, report *Report) {
	visitWrappers(blocks, "blocks", func(w *doctree.Div, path string) {
		if !w.IsAdditional() {
			return
		}
		blockCount := len(w.Blocks)
		charCount := doctree.EstimateBlocksChars(w.Blocks)
		if blockCount <= cfg.Thresholds.HTMLFoldBlocks && charCount <= cfg.Thresholds.HTMLFoldChars {
			return
		}
		id := w.Attr.Identifier
		if !w.Attr.HasClass("foldable") {
			w.Attr.Classes = append(w.Attr.Classes, "foldable")
		}
		w.Attr.Set("data-title", "Additional: "+id)
		w.Attr.Set("data-collapsed", "true")
		report.add(Entry{
			SemanticID: id,
			Action:     ActionFolded,
			ReasonCode: ReasonHTMLFolded,
			Message:    fmt.Sprintf("additional content %q folded", id),
			Path:       path,
			Details:    map[string]any{"blocks": blockCount, "chars": charCount},
		})
	})
}

// foldCodeBlocks records oversized code blocks for the HTML writer to
// fold. Report-only: the writer reads the report, the tree keeps the
// code verbatim.
func foldCodeBlocks(blocks []doctree.Block, basePath string, cfg Config, report *Report) {
	for i, b := range blocks {
		path := fmt.Sprintf("%s[%d]", basePath, i)
		switch n := b.(type) {
		case *doctree.CodeBlock:
			lines, chars, over := codeOverThreshold(n, cfg.Thresholds)
			if !over {
				continue
			}
			report.add(Entry{
				SemanticID: SnippetID(n.Text),
				Action:     ActionFolded,
				ReasonCode: ReasonHTMLCodeBlockFolded,
				Message:    fmt.Sprintf("code block folded (%d lines)", lines),
				Path:       path,
				Details:    map[string]any{"lines": lines, "chars": chars},
			})
		case *doctree.Div:
			foldCodeBlocks(n.Blocks, path+".c[1]", cfg, report)
		}
	}
}
