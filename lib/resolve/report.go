// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

// Actions recorded in the resolution report.
const (
	ActionResolved = "resolved"
	ActionSkipped  = "skipped"
)

// ReportEntry records the outcome for one computed wrapper.
type ReportEntry struct {
	SemanticID string `json:"semantic_id"`
	Spec       string `json:"spec,omitempty"`
	Action     string `json:"action"`
	// Verified says whether the payload digest was checked.
	Verified bool   `json:"verified,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Report is the append-only audit trail of a resolution run, in plan
// order.
type Report struct {
	Entries []ReportEntry `json:"entries"`
}

func (r *Report) add(e ReportEntry) {
	r.Entries = append(r.Entries, e)
}

// Resolved returns the ids that were resolved, in order.
func (r *Report) Resolved() []string {
	var ids []string
	for _, e := range r.Entries {
		if e.Action == ActionResolved {
			ids = append(ids, e.SemanticID)
		}
	}
	return ids
}
