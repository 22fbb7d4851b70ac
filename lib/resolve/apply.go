// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"fmt"

	"github.com/litepub-foundation/litepub/lib/doctree"
	"github.com/litepub-foundation/litepub/lib/payload"
	"github.com/litepub-foundation/litepub/lib/registry"
)

// Apply executes a plan against a fresh clone of the document. The
// input tree is never touched; on any error the partially-built clone
// is discarded and only the error escapes.
func Apply(doc *doctree.Document, snap *registry.Snapshot, cfg Config, plan *Plan) (*doctree.Document, *Report, error) {
	out := doc.Clone()
	report := &Report{}

	for _, id := range plan.Skipped {
		report.add(ReportEntry{
			SemanticID: id,
			Action:     ActionSkipped,
			Message:    "no registry entry; left unresolved by draft resolution",
		})
	}

	verify := cfg.effectiveStrict()
	for _, item := range plan.Items {
		wrapper, ok := doctree.AsWrapper(out.Blocks[item.BlockIndex])
		if !ok || wrapper.Attr.Identifier != item.SemanticID {
			return nil, nil, fmt.Errorf("plan out of sync with document at block %d (wrapper %q)",
				item.BlockIndex, item.SemanticID)
		}
		emitted, err := resolveItem(item, snap, cfg, verify)
		if err != nil {
			return nil, nil, err
		}
		wrapper.Blocks[item.PlaceholderIndex] = emitted
		report.add(ReportEntry{
			SemanticID: item.SemanticID,
			Spec:       item.Entry.Spec,
			Action:     ActionResolved,
			Verified:   verify,
		})
	}
	return out, report, nil
}

func resolveItem(item PlanItem, snap *registry.Snapshot, cfg Config, verify bool) (doctree.Block, error) {
	entry := item.Entry
	path := snap.PayloadPath(entry)

	switch entry.Spec {
	case payload.SpecMetric:
		metric, err := payload.LoadMetric(path, entry, verify, cfg.Limits)
		if err != nil {
			return nil, err
		}
		return EmitMetric(metric, item.SemanticID), nil

	case payload.SpecTableSimple:
		table, err := payload.LoadSimpleTable(path, entry, verify, cfg.Limits, cfg.StrictRowKeys)
		if err != nil {
			return nil, err
		}
		return EmitSimpleTable(table, item.SemanticID), nil

	case payload.SpecTablePandoc:
		table, err := payload.LoadNativeTable(path, entry, verify, payload.NativeTableOptions{
			AllowRaw: cfg.AllowRawPandoc,
			Limits:   cfg.Limits,
		})
		if err != nil {
			return nil, err
		}
		return EmitNativeTable(table, item.SemanticID), nil

	case payload.SpecFigureBinary:
		if _, err := payload.LoadFigure(path, entry, verify, cfg.Limits); err != nil {
			return nil, err
		}
		var meta *payload.FigureMeta
		if metaPath, ok := snap.MetaPath(entry); ok {
			var err error
			meta, err = payload.LoadFigureMeta(metaPath, entry, verify)
			if err != nil {
				return nil, err
			}
		}
		return EmitFigure(entry, meta, item.SemanticID), nil

	default:
		return nil, &payload.PayloadError{
			SemanticID: item.SemanticID,
			Spec:       entry.Spec,
			Message:    "no loader for payload spec",
		}
	}
}

// Resolve plans and applies in one step: the common entry point.
func Resolve(doc *doctree.Document, snap *registry.Snapshot, cfg Config) (*doctree.Document, *Report, error) {
	plan, err := BuildPlan(doc, snap, cfg)
	if err != nil {
		return nil, nil, err
	}
	return Apply(doc, snap, cfg, plan)
}
