// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import "fmt"

// PlaceholderError reports a computed wrapper whose placeholder
// structure is wrong: no placeholder paragraph, or more than one.
type PlaceholderError struct {
	// SemanticID is the wrapper id.
	SemanticID string
	// Count is the number of placeholder paragraphs found.
	Count int
	// Message describes the problem.
	Message string
}

func (e *PlaceholderError) Error() string {
	return fmt.Sprintf("wrapper %q: %s", e.SemanticID, e.Message)
}

// KindMismatchError reports a wrapper whose declared kind disagrees
// with the registered artifact, or with its own placeholder token.
// Always fatal, even in draft resolution: a kind mismatch means the
// document and the registry disagree about what the content is.
type KindMismatchError struct {
	// SemanticID is the wrapper id.
	SemanticID string
	// WrapperKind is the kind declared on the wrapper.
	WrapperKind string
	// ArtifactKind is the kind implied by the registry entry or the
	// placeholder token.
	ArtifactKind string
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("wrapper %q declares kind %q but the artifact is %q",
		e.SemanticID, e.WrapperKind, e.ArtifactKind)
}
