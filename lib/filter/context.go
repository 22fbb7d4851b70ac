// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// Package filter reduces a resolved document tree to what a build
// target is permitted to contain. Four stages run in fixed order:
// visibility, policy, metadata strip, presentation. Each stage is a
// pure copy-in/copy-out function that appends to an order-preserving
// report; filters never fail for ordinary content decisions.
package filter

import "fmt"

// Build targets, the audience a document is filtered for.
const (
	TargetInternal = "internal"
	TargetExternal = "external"
	TargetDossier  = "dossier"
)

// Render targets, the output format the presentation stage shapes for.
const (
	RenderPDF  = "pdf"
	RenderHTML = "html"
	RenderMD   = "md"
	RenderRST  = "rst"
)

// BuildContext is the immutable per-build state shared by all stages.
// Construct it with NewBuildContext; external and dossier targets are
// always strict, enforced at construction rather than checked at each
// use site.
type BuildContext struct {
	BuildTarget  string
	RenderTarget string
	Strict       bool
	// ProjectRoot anchors relative link generation.
	ProjectRoot string
	// ArtifactBaseURL, when set, prefixes externalized snippet links.
	ArtifactBaseURL string
}

// NewBuildContext validates the targets and returns a context. A
// request for a non-strict external or dossier build is upgraded to
// strict, never honored.
func NewBuildContext(buildTarget, renderTarget string, strict bool) (BuildContext, error) {
	switch buildTarget {
	case TargetInternal, TargetExternal, TargetDossier:
	default:
		return BuildContext{}, fmt.Errorf("unknown build target %q", buildTarget)
	}
	switch renderTarget {
	case RenderPDF, RenderHTML, RenderMD, RenderRST:
	default:
		return BuildContext{}, fmt.Errorf("unknown render target %q", renderTarget)
	}
	if buildTarget != TargetInternal {
		strict = true
	}
	return BuildContext{
		BuildTarget:  buildTarget,
		RenderTarget: renderTarget,
		Strict:       strict,
		ProjectRoot:  ".",
	}, nil
}
