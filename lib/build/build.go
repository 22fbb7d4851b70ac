// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// Package build orchestrates the document pipeline: resolution,
// validation, filtering. Each build clones its input tree, so multiple
// targets can be built concurrently off one registry snapshot.
package build

import (
	"fmt"
	"log/slog"

	"github.com/litepub-foundation/litepub/lib/docvalid"
	"github.com/litepub-foundation/litepub/lib/doctree"
	"github.com/litepub-foundation/litepub/lib/filter"
	"github.com/litepub-foundation/litepub/lib/registry"
	"github.com/litepub-foundation/litepub/lib/resolve"
)

// Options selects what a build produces.
type Options struct {
	// Context carries the build and render targets. Construct with
	// filter.NewBuildContext.
	Context filter.BuildContext
	// Resolution configures the resolver. Target and Strict are
	// overwritten from Context so the two cannot disagree.
	Resolution resolve.Config
	// Filter configures the filter pipeline. Zero value uses defaults.
	Filter filter.Config
	// AllowRaw permits raw nodes through document validation.
	AllowRaw bool
	// Logger receives stage progress. Nil discards.
	Logger *slog.Logger
}

// Provenance ties a built document back to the run that produced its
// artifacts.
type Provenance struct {
	Run          registry.Run `json:"run"`
	BuildTarget  string       `json:"build_target"`
	RenderTarget string       `json:"render_target"`
	Strict       bool         `json:"strict"`
}

// Result is a completed build.
type Result struct {
	Doc        *doctree.Document
	Resolution *resolve.Report
	Validation *docvalid.Result
	Filter     *filter.Report
	Provenance Provenance
}

// Build runs resolve, validate, filter over doc for the configured
// target. The input document is never mutated. Validation runs
// fail-fast: the first violation aborts the build.
func Build(doc *doctree.Document, snap *registry.Snapshot, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ctx := opts.Context

	resolveCfg := opts.Resolution
	resolveCfg.Target = ctx.BuildTarget
	resolveCfg.Strict = ctx.Strict
	resolveCfg.Limits = resolveCfg.Limits.Normalize()

	log.Info("resolving document",
		"build_target", ctx.BuildTarget,
		"render_target", ctx.RenderTarget,
		"strict", ctx.Strict,
		"entries", len(snap.Entries))
	resolved, resolution, err := resolve.Resolve(doc, snap, resolveCfg)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	log.Info("resolution complete",
		"resolved", len(resolution.Resolved()),
		"entries", len(resolution.Entries))

	validation, err := docvalid.Validate(resolved, docvalid.Options{
		FailFast: true,
		AllowRaw: opts.AllowRaw,
	})
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	log.Info("document validated",
		"wrappers", validation.WrapperCount)

	filterCfg := opts.Filter
	if filterCfg.VisibilityOrder == nil {
		filterCfg = filter.DefaultConfig()
	}
	filtered, filterReport, err := filter.Apply(resolved, filterCfg, ctx)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	log.Info("filter pipeline complete", "actions", filterReport.Len())

	return &Result{
		Doc:        filtered,
		Resolution: resolution,
		Validation: validation,
		Filter:     filterReport,
		Provenance: Provenance{
			Run:          snap.Run,
			BuildTarget:  ctx.BuildTarget,
			RenderTarget: ctx.RenderTarget,
			Strict:       ctx.Strict,
		},
	}, nil
}
