// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

// Stage is one filter stage: pure copy-in/copy-out over the document.
type Stage func(*doctree.Document, Config, BuildContext) (*doctree.Document, *Report, error)

// Stage names accepted by ApplyStage.
const (
	StageVisibility    = "visibility"
	StagePolicy        = "policy"
	StageMetadataStrip = "metadata_strip"
	StagePresentation  = "presentation"
)

// stages maps stage names to implementations.
var stages = map[string]Stage{
	StageVisibility:    Visibility,
	StagePolicy:        Policy,
	StageMetadataStrip: MetadataStrip,
	StagePresentation:  Presentation,
}

// Apply runs the full pipeline in fixed order: visibility, policy,
// metadata strip, presentation. The returned report is the
// concatenation of each stage's report in stage order.
func Apply(doc *doctree.Document, cfg Config, ctx BuildContext) (*doctree.Document, *Report, error) {
	combined := &Report{}
	for _, name := range []string{StageVisibility, StagePolicy, StageMetadataStrip, StagePresentation} {
		var (
			report *Report
			err    error
		)
		doc, report, err = stages[name](doc, cfg, ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("filter stage %s: %w", name, err)
		}
		combined.Merge(report)
	}
	return doc, combined, nil
}

// ApplyStage runs a single named stage.
func ApplyStage(doc *doctree.Document, name string, cfg Config, ctx BuildContext) (*doctree.Document, *Report, error) {
	stage, ok := stages[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown filter stage %q", name)
	}
	return stage(doc, cfg, ctx)
}
