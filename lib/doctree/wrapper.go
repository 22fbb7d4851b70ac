// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package doctree

import "strings"

// Semantic wrappers are Div blocks with a non-empty identifier. Their
// attributes carry the pipeline metadata: role, kind, visibility, and
// policy tags.

// Well-known wrapper attribute keys.
const (
	AttrRole         = "role"
	AttrKind         = "kind"
	AttrVisibility   = "visibility"
	AttrPolicies     = "policies"
	AttrPresentation = "presentation"
)

// RoleComputed marks wrappers whose content is produced by the
// resolver from a registered artifact.
const RoleComputed = "computed"

// DefaultVisibility applies when a wrapper carries no visibility
// attribute.
const DefaultVisibility = "internal"

// AsWrapper reports whether b is a semantic wrapper and returns it as
// a Div if so.
func AsWrapper(b Block) (*Div, bool) {
	d, ok := b.(*Div)
	if !ok || d.Attr.Identifier == "" {
		return nil, false
	}
	return d, true
}

// Role returns the wrapper's role attribute, or "".
func (d *Div) Role() string {
	role, _ := d.Attr.Get(AttrRole)
	return role
}

// Kind returns the wrapper's kind attribute, or "".
func (d *Div) Kind() string {
	kind, _ := d.Attr.Get(AttrKind)
	return kind
}

// Visibility returns the wrapper's visibility, defaulting to
// DefaultVisibility when the attribute is absent or empty.
func (d *Div) Visibility() string {
	vis, ok := d.Attr.Get(AttrVisibility)
	if !ok || vis == "" {
		return DefaultVisibility
	}
	return vis
}

// Policies returns the wrapper's policy tags: the comma-separated
// "policies" attribute plus every class. Order follows the source;
// empty fragments are dropped.
func (d *Div) Policies() []string {
	var tags []string
	if raw, ok := d.Attr.Get(AttrPolicies); ok {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	tags = append(tags, d.Attr.Classes...)
	return tags
}

// IsAdditional reports whether the wrapper is marked as supplementary
// content: the "additional" class, the "additional" policy tag, or
// presentation="additional".
func (d *Div) IsAdditional() bool {
	if d.Attr.HasClass("additional") {
		return true
	}
	for _, tag := range d.Policies() {
		if tag == "additional" {
			return true
		}
	}
	pres, _ := d.Attr.Get(AttrPresentation)
	return pres == "additional"
}
