// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// Package docvalid validates a resolved document tree before it enters
// the filter pipeline. It is the safety net between resolution and
// filtering: a violation here means either malformed input survived
// resolution or an upstream stage has a bug, so every check is spelled
// out with a stable code.
package docvalid

import (
	"fmt"
	"regexp"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

// Validation codes. Callers match on these, never on messages.
const (
	CodeNoBlocks              = "VAL_DOC_NO_BLOCKS"
	CodeUnresolvedPlaceholder = "VAL_DOC_UNRESOLVED_PLACEHOLDER"
	CodeDuplicateID           = "VAL_DOC_DUPLICATE_ID"
	CodeMissingKind           = "VAL_DOC_MISSING_KIND"
	CodeRawBlockForbidden     = "VAL_DOC_RAWBLOCK_FORBIDDEN"
	CodeRawInlineForbidden    = "VAL_DOC_RAWINLINE_FORBIDDEN"
	CodeVisibilityViolation   = "VAL_DOC_VISIBILITY_VIOLATION"
)

// placeholderToken matches an unresolved computed-content token
// anywhere in text content, not just in placeholder position.
var placeholderToken = regexp.MustCompile(`\[\[COMPUTED:(METRIC|TABLE|FIGURE)\]\]`)

// Options controls a validation run.
type Options struct {
	// FailFast stops at the first violation instead of collecting all
	// of them.
	FailFast bool
	// AllowRaw permits RawBlock and RawInline nodes. Off by default;
	// raw content is how markup gets smuggled past the filters.
	AllowRaw bool
	// Target is the build target the document was resolved for. When
	// set, every wrapper's visibility level must be at or above the
	// target's level; a violation means filtering upstream is broken.
	Target string
	// VisibilityOrder maps visibility names to levels. Nil uses
	// DefaultVisibilityOrder.
	VisibilityOrder map[string]int
}

// DefaultVisibilityOrder is the standard visibility ladder.
func DefaultVisibilityOrder() map[string]int {
	return map[string]int{
		"internal": 0,
		"external": 1,
		"dossier":  2,
	}
}

// Result is the outcome of a validation run.
type Result struct {
	Valid    bool
	Errors   []*doctree.ValidationError
	Warnings []*doctree.ValidationError
	// SemanticIDs lists every wrapper id in document order.
	SemanticIDs []string
	// WrapperCount is the number of semantic wrappers seen.
	WrapperCount int
}

// Validate runs every document check over the tree. Under FailFast the
// first violation is returned as the error; otherwise violations
// accumulate in the result and the error is nil unless the walk itself
// fails (depth cap).
func Validate(doc *doctree.Document, opts Options) (*Result, error) {
	res := &Result{Valid: true}
	order := opts.VisibilityOrder
	if order == nil {
		order = DefaultVisibilityOrder()
	}
	targetLevel, checkVisibility := order[opts.Target]
	checkVisibility = checkVisibility && opts.Target != ""

	record := func(err *doctree.ValidationError) error {
		if opts.FailFast {
			return err
		}
		res.Valid = false
		res.Errors = append(res.Errors, err)
		return nil
	}

	if len(doc.Blocks) == 0 {
		if err := record(&doctree.ValidationError{
			Code:    CodeNoBlocks,
			Message: "document has no blocks",
			Path:    "blocks",
		}); err != nil {
			return nil, err
		}
		return res, nil
	}

	firstSeen := make(map[string]string)
	walkErr := doctree.Walk(doc.Blocks, func(n doctree.Node, ctx doctree.VisitContext) error {
		switch node := n.(type) {
		case *doctree.Str:
			if m := placeholderToken.FindString(node.Text); m != "" {
				return record(&doctree.ValidationError{
					Code:    CodeUnresolvedPlaceholder,
					Message: fmt.Sprintf("unresolved placeholder token %s in text content", m),
					Path:    ctx.Path,
				})
			}

		case *doctree.RawBlock:
			if !opts.AllowRaw {
				return record(&doctree.ValidationError{
					Code:    CodeRawBlockForbidden,
					Message: fmt.Sprintf("raw block (format %q) is forbidden", node.Format),
					Path:    ctx.Path,
				})
			}

		case *doctree.RawInline:
			if !opts.AllowRaw {
				return record(&doctree.ValidationError{
					Code:    CodeRawInlineForbidden,
					Message: fmt.Sprintf("raw inline (format %q) is forbidden", node.Format),
					Path:    ctx.Path,
				})
			}

		case *doctree.Div:
			wrapper, ok := doctree.AsWrapper(node)
			if !ok {
				return nil
			}
			id := wrapper.Attr.Identifier
			res.WrapperCount++
			res.SemanticIDs = append(res.SemanticIDs, id)

			if first, dup := firstSeen[id]; dup {
				if err := record(&doctree.ValidationError{
					Code:       CodeDuplicateID,
					Message:    fmt.Sprintf("wrapper id %q is not unique", id),
					SemanticID: id,
					Path:       ctx.Path,
					Hint:       "first occurrence at " + first,
				}); err != nil {
					return err
				}
			} else {
				firstSeen[id] = ctx.Path
			}

			if wrapper.Role() == doctree.RoleComputed && wrapper.Kind() == "" {
				if err := record(&doctree.ValidationError{
					Code:       CodeMissingKind,
					Message:    "computed wrapper carries no kind",
					SemanticID: id,
					Path:       ctx.Path,
				}); err != nil {
					return err
				}
			}

			if checkVisibility {
				vis := wrapper.Visibility()
				level, known := order[vis]
				if !known || level < targetLevel {
					if err := record(&doctree.ValidationError{
						Code:       CodeVisibilityViolation,
						Message:    fmt.Sprintf("visibility %q is below build target %q", vis, opts.Target),
						SemanticID: id,
						Path:       ctx.Path,
						Hint:       "the visibility filter should have removed this wrapper",
					}); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return res, nil
}
