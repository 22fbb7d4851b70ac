// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package filter

// Actions recorded in the filter report.
const (
	ActionRemoved         = "removed"
	ActionStripped        = "stripped"
	ActionExternalized    = "externalized"
	ActionMovedToAppendix = "moved_to_appendix"
	ActionFolded          = "folded"
)

// Reason codes. Callers match on these, never on messages. Policy
// removals carry the lexicographically smallest matching tag as a
// suffix, e.g. "POL_REMOVED_TAG:draft".
const (
	ReasonVisInternalOnly     = "VIS_REMOVED_INTERNAL_ONLY"
	ReasonVisExternalOnly     = "VIS_REMOVED_EXTERNAL_ONLY"
	ReasonPolicyTagPrefix     = "POL_REMOVED_TAG:"
	ReasonMetaStripAttrs      = "META_STRIP_ATTRS"
	ReasonPDFCodeExternalized = "PRES_PDF_CODEBLOCK_EXTERNALIZED"
	ReasonPDFMovedToAppendix  = "PRES_PDF_MOVED_TO_APPENDIX"
	ReasonHTMLFolded          = "PRES_HTML_FOLDED"
	ReasonHTMLCodeBlockFolded = "PRES_HTML_CODEBLOCK_FOLDED"
)

// Entry records one filter action.
type Entry struct {
	SemanticID string         `json:"semantic_id" cbor:"semantic_id"`
	Action     string         `json:"action" cbor:"action"`
	ReasonCode string         `json:"reason_code" cbor:"reason_code"`
	Message    string         `json:"message,omitempty" cbor:"message,omitempty"`
	Path       string         `json:"path,omitempty" cbor:"path,omitempty"`
	Details    map[string]any `json:"details,omitempty" cbor:"details,omitempty"`
}

// Report is the append-only, order-preserving audit trail of a filter
// run. The pipeline report is the concatenation of each stage's report
// in stage order; it is the sole record of what a build removed or
// changed.
type Report struct {
	Entries []Entry `json:"entries" cbor:"entries"`
}

func (r *Report) add(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Merge appends other's entries, preserving order.
func (r *Report) Merge(other *Report) {
	r.Entries = append(r.Entries, other.Entries...)
}

// ByReason returns the entries whose reason code equals code.
func (r *Report) ByReason(code string) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.ReasonCode == code {
			out = append(out, e)
		}
	}
	return out
}

// ByAction returns the entries whose action equals action.
func (r *Report) ByAction(action string) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

// Len is the number of entries.
func (r *Report) Len() int {
	return len(r.Entries)
}
