// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

func longCode(lines int) string {
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("print(\"line\")")
	}
	return sb.String()
}

func manyParas(n int) []doctree.Block {
	blocks := make([]doctree.Block, n)
	for i := range blocks {
		blocks[i] = doctree.TextPara("paragraph")
	}
	return blocks
}

var snippetIDPattern = regexp.MustCompile(`^snip-[0-9a-f]{12}$`)

func TestSnippetID(t *testing.T) {
	t.Parallel()

	id := SnippetID("package main")
	if !snippetIDPattern.MatchString(id) {
		t.Errorf("snippet id %q", id)
	}
	if SnippetID("package main") != id {
		t.Error("snippet id is not stable")
	}
	if SnippetID("package other") == id {
		t.Error("distinct snippets share an id")
	}
}

func TestPresentationPDFExternalizesLongCode(t *testing.T) {
	t.Parallel()

	code := longCode(60)
	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.CodeBlock{Attr: doctree.Attr{Classes: []string{"python"}}, Text: code},
	}}
	out, report, err := Presentation(doc, DefaultConfig(), mustContext(t, TargetInternal, RenderPDF))
	if err != nil {
		t.Fatalf("Presentation: %v", err)
	}

	if len(out.Blocks) != 2 {
		t.Fatalf("blocks = %d, want stub + preview", len(out.Blocks))
	}
	stub, ok := out.Blocks[0].(*doctree.Para)
	if !ok {
		t.Fatalf("first block is %T", out.Blocks[0])
	}
	link := stub.Inlines[len(stub.Inlines)-1].(*doctree.Link)
	if !strings.HasPrefix(link.Target.URL, "code_snippets/snip-") || !strings.HasSuffix(link.Target.URL, ".txt") {
		t.Errorf("link target = %q", link.Target.URL)
	}

	preview, ok := out.Blocks[1].(*doctree.CodeBlock)
	if !ok {
		t.Fatalf("second block is %T", out.Blocks[1])
	}
	if !preview.Attr.HasClass("python") {
		t.Error("preview lost the language class")
	}
	previewLines := strings.Split(preview.Text, "\n")
	if len(previewLines) != 6 || previewLines[5] != "# ... (truncated)" {
		t.Errorf("preview = %q", preview.Text)
	}

	e := report.Entries[0]
	if e.ReasonCode != ReasonPDFCodeExternalized || e.Action != ActionExternalized {
		t.Errorf("entry = %+v", e)
	}
	if !snippetIDPattern.MatchString(e.SemanticID) {
		t.Errorf("semantic id = %q", e.SemanticID)
	}
	if e.Details["lines"] != 60 {
		t.Errorf("details = %v", e.Details)
	}
}

func TestPresentationPDFBaseURL(t *testing.T) {
	t.Parallel()

	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.CodeBlock{Text: longCode(60)},
	}}
	ctx := mustContext(t, TargetInternal, RenderPDF)
	ctx.ArtifactBaseURL = "https://artifacts.example.com/run-7"
	out, _, err := Presentation(doc, DefaultConfig(), ctx)
	if err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	inlines := out.Blocks[0].(*doctree.Para).Inlines
	link := inlines[len(inlines)-1].(*doctree.Link)
	if !strings.HasPrefix(link.Target.URL, "https://artifacts.example.com/run-7/code_snippets/snip-") {
		t.Errorf("link target = %q", link.Target.URL)
	}
}

func TestPresentationPDFShortCodeUntouched(t *testing.T) {
	t.Parallel()

	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.CodeBlock{Text: "x = 1"},
	}}
	out, report, err := Presentation(doc, DefaultConfig(), mustContext(t, TargetInternal, RenderPDF))
	if err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	if len(out.Blocks) != 1 || report.Len() != 0 {
		t.Errorf("short code block transformed: %+v", report.Entries)
	}
}

func TestPresentationPDFExternalizesInsideWrappers(t *testing.T) {
	t.Parallel()

	w := wrapper("w1", map[string]string{"visibility": "internal"},
		&doctree.CodeBlock{Text: longCode(60)},
	)
	doc := &doctree.Document{Blocks: []doctree.Block{w}}
	out, report, err := Presentation(doc, DefaultConfig(), mustContext(t, TargetInternal, RenderPDF))
	if err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	inner := out.Blocks[0].(*doctree.Div).Blocks
	if len(inner) != 2 {
		t.Errorf("nested code block not externalized")
	}
	if report.Len() != 1 || !strings.Contains(report.Entries[0].Path, ".c[1][0]") {
		t.Errorf("report = %+v", report.Entries)
	}
}

func TestPresentationPDFAppendix(t *testing.T) {
	t.Parallel()

	big := wrapper("extra-analysis", map[string]string{"visibility": "internal"}, manyParas(6)...)
	big.Attr.Classes = append(big.Attr.Classes, "additional")
	doc := &doctree.Document{Blocks: []doctree.Block{
		doctree.TextPara("intro"),
		big,
	}}
	out, report, err := Presentation(doc, DefaultConfig(), mustContext(t, TargetInternal, RenderPDF))
	if err != nil {
		t.Fatalf("Presentation: %v", err)
	}

	// intro, stub, appendix header, subsection header, 6 paragraphs.
	if len(out.Blocks) != 10 {
		t.Fatalf("blocks = %d", len(out.Blocks))
	}
	stub, ok := out.Blocks[1].(*doctree.Para)
	if !ok {
		t.Fatalf("stub is %T", out.Blocks[1])
	}
	link := stub.Inlines[len(stub.Inlines)-1].(*doctree.Link)
	if link.Target.URL != "#appendix-extra-analysis" {
		t.Errorf("stub link = %q", link.Target.URL)
	}
	if doctree.FlattenText(link.Inlines) != "extra-analysis" {
		t.Errorf("stub link text = %q", doctree.FlattenText(link.Inlines))
	}

	appendixHeader := out.Blocks[2].(*doctree.Header)
	if appendixHeader.Level != 1 || appendixHeader.Attr.Identifier != "appendix-section" {
		t.Errorf("appendix header = %+v", appendixHeader)
	}
	if doctree.FlattenText(appendixHeader.Inlines) != "Appendix" {
		t.Errorf("appendix title = %q", doctree.FlattenText(appendixHeader.Inlines))
	}
	sub := out.Blocks[3].(*doctree.Header)
	if sub.Level != 2 || sub.Attr.Identifier != "appendix-extra-analysis" {
		t.Errorf("subsection header = %+v", sub)
	}
	if doctree.FlattenText(sub.Inlines) != "Additional: extra-analysis" {
		t.Errorf("subsection title = %q", doctree.FlattenText(sub.Inlines))
	}

	e := report.Entries[0]
	if e.ReasonCode != ReasonPDFMovedToAppendix || e.SemanticID != "extra-analysis" {
		t.Errorf("entry = %+v", e)
	}
	if e.Details["anchor_id"] != "appendix-extra-analysis" {
		t.Errorf("details = %v", e.Details)
	}
}

func TestPresentationPDFAppendixReused(t *testing.T) {
	t.Parallel()

	first := wrapper("a1", nil, manyParas(6)...)
	first.Attr.Classes = append(first.Attr.Classes, "additional")
	second := wrapper("a2", nil, manyParas(6)...)
	second.Attr.Classes = append(second.Attr.Classes, "additional")
	doc := &doctree.Document{Blocks: []doctree.Block{first, second}}

	out, report, err := Presentation(doc, DefaultConfig(), mustContext(t, TargetInternal, RenderPDF))
	if err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	var appendixHeaders int
	for _, b := range out.Blocks {
		if h, ok := b.(*doctree.Header); ok && h.Level == 1 {
			appendixHeaders++
		}
	}
	if appendixHeaders != 1 {
		t.Errorf("appendix headers = %d, want one shared section", appendixHeaders)
	}
	if report.Len() != 2 {
		t.Errorf("report entries = %d", report.Len())
	}
}

func TestPresentationPDFSmallAdditionalStays(t *testing.T) {
	t.Parallel()

	small := wrapper("a1", nil, doctree.TextPara("short"))
	small.Attr.Classes = append(small.Attr.Classes, "additional")
	doc := &doctree.Document{Blocks: []doctree.Block{small}}
	out, report, err := Presentation(doc, DefaultConfig(), mustContext(t, TargetInternal, RenderPDF))
	if err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	if len(out.Blocks) != 1 || report.Len() != 0 {
		t.Errorf("small additional wrapper relocated: %+v", report.Entries)
	}
}

func TestPresentationHTMLFoldsAdditional(t *testing.T) {
	t.Parallel()

	big := wrapper("notes", nil, manyParas(6)...)
	big.Attr.Classes = append(big.Attr.Classes, "additional")
	doc := &doctree.Document{Blocks: []doctree.Block{big}}

	out, report, err := Presentation(doc, DefaultConfig(), mustContext(t, TargetInternal, RenderHTML))
	if err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	w := out.Blocks[0].(*doctree.Div)
	if !w.Attr.HasClass("foldable") {
		t.Error("foldable class missing")
	}
	if v, _ := w.Attr.Get("data-title"); v != "Additional: notes" {
		t.Errorf("data-title = %q", v)
	}
	if v, _ := w.Attr.Get("data-collapsed"); v != "true" {
		t.Errorf("data-collapsed = %q", v)
	}
	// Content stays in place for HTML.
	if len(w.Blocks) != 6 {
		t.Errorf("folded wrapper blocks = %d", len(w.Blocks))
	}
	if report.Entries[0].ReasonCode != ReasonHTMLFolded {
		t.Errorf("entry = %+v", report.Entries[0])
	}
}

func TestPresentationHTMLCodeFoldIsReportOnly(t *testing.T) {
	t.Parallel()

	code := longCode(60)
	doc := &doctree.Document{Blocks: []doctree.Block{
		&doctree.CodeBlock{Text: code},
	}}
	out, report, err := Presentation(doc, DefaultConfig(), mustContext(t, TargetInternal, RenderHTML))
	if err != nil {
		t.Fatalf("Presentation: %v", err)
	}
	cb, ok := out.Blocks[0].(*doctree.CodeBlock)
	if !ok || cb.Text != code {
		t.Error("HTML code fold must leave the tree untouched")
	}
	if len(report.ByReason(ReasonHTMLCodeBlockFolded)) != 1 {
		t.Errorf("report = %+v", report.Entries)
	}
}

func TestPresentationTextTargetsPassThrough(t *testing.T) {
	t.Parallel()

	big := wrapper("notes", nil, manyParas(6)...)
	big.Attr.Classes = append(big.Attr.Classes, "additional")
	doc := &doctree.Document{Blocks: []doctree.Block{
		big,
		&doctree.CodeBlock{Text: longCode(60)},
	}}
	for _, target := range []string{RenderMD, RenderRST} {
		out, report, err := Presentation(doc, DefaultConfig(), mustContext(t, TargetInternal, target))
		if err != nil {
			t.Fatalf("Presentation(%s): %v", target, err)
		}
		if len(out.Blocks) != 2 || report.Len() != 0 {
			t.Errorf("%s target transformed the tree: %+v", target, report.Entries)
		}
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"My Extra Analysis", "my-extra-analysis"},
		{"  spaced   out  ", "spaced-out"},
		{"weird!@#chars", "weirdchars"},
		{"already-slugged", "already-slugged"},
		{"--edge--case--", "edge-case"},
	}
	for _, tc := range tests {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
