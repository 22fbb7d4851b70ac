// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"fmt"
	"os"

	"github.com/litepub-foundation/litepub/lib/doctree"
)

// figureFormats is the allow-list for figure.binary@v1 payloads. The
// format is checked before any file I/O happens.
var figureFormats = map[string]bool{
	"image.png":  true,
	"image.jpg":  true,
	"image.jpeg": true,
	"image.webp": true,
	"image.svg":  true,
	"image.pdf":  true,
}

// FigureBinary is a verified figure payload. The bytes stay on disk;
// emitters only need the location.
type FigureBinary struct {
	Path string
	Size int64
}

// FigureMeta is a validated figure.meta.json@v1 sidecar.
type FigureMeta struct {
	Caption string
	Alt     string
	Notes   []string
	Meta    map[string]any
}

// CheckFigureFormat rejects formats outside the allow-list.
func CheckFigureFormat(format, semanticID string) error {
	if !figureFormats[format] {
		return &PayloadError{
			SemanticID: semanticID,
			Spec:       SpecFigureBinary,
			Message:    fmt.Sprintf("figure format %q is not supported", format),
		}
	}
	return nil
}

// LoadFigureBinary checks the format allow-list, the size limit, and
// optionally the digest of a figure payload.
func LoadFigureBinary(path, format, semanticID string, verify bool, digest string, limits Limits) (*FigureBinary, error) {
	limits = limits.Normalize()
	if err := CheckFigureFormat(format, semanticID); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, &PayloadError{
			SemanticID: semanticID,
			Spec:       SpecFigureBinary,
			Path:       path,
			Message:    "figure payload not readable",
			Err:        err,
		}
	}
	if info.Size() > limits.MaxImageBytes {
		return nil, &doctree.ValidationError{
			Code:       "VAL_FIGURE_IMAGE_TOO_LARGE",
			Message:    fmt.Sprintf("figure is %d bytes, limit is %d", info.Size(), limits.MaxImageBytes),
			SemanticID: semanticID,
			Spec:       SpecFigureBinary,
		}
	}
	if verify {
		if err := VerifyFile(path, digest, semanticID); err != nil {
			return nil, err
		}
	}
	return &FigureBinary{Path: path, Size: info.Size()}, nil
}

// ValidateFigureMeta checks a decoded figure sidecar. A nil raw map is
// valid: sidecars are optional.
func ValidateFigureMeta(raw map[string]any, semanticID string) (*FigureMeta, error) {
	if raw == nil {
		return nil, nil
	}
	fail := func(code, msg string) error {
		return &doctree.ValidationError{
			Code:       code,
			Message:    msg,
			SemanticID: semanticID,
			Spec:       SpecFigureMeta,
		}
	}

	var meta FigureMeta
	if captionRaw, ok := raw["caption"]; ok && captionRaw != nil {
		caption, ok := captionRaw.(string)
		if !ok {
			return nil, fail("VAL_FIGURE_CAPTION_TYPE", fmt.Sprintf("caption must be a string, got %T", captionRaw))
		}
		meta.Caption = caption
	}
	if altRaw, ok := raw["alt"]; ok && altRaw != nil {
		alt, ok := altRaw.(string)
		if !ok {
			return nil, fail("VAL_FIGURE_ALT_TYPE", fmt.Sprintf("alt must be a string, got %T", altRaw))
		}
		meta.Alt = alt
	}
	if notesRaw, ok := raw["notes"]; ok && notesRaw != nil {
		notes, ok := notesRaw.([]any)
		if !ok {
			return nil, fail("VAL_FIGURE_NOTES_TYPE", fmt.Sprintf("notes must be a list, got %T", notesRaw))
		}
		for i, item := range notes {
			note, ok := item.(string)
			if !ok {
				return nil, fail("VAL_FIGURE_NOTES_ITEM_TYPE", fmt.Sprintf("notes[%d] must be a string, got %T", i, item))
			}
			meta.Notes = append(meta.Notes, note)
		}
	}
	if metaRaw, ok := raw["meta"]; ok && metaRaw != nil {
		m, ok := metaRaw.(map[string]any)
		if !ok {
			return nil, fail("VAL_FIGURE_META_TYPE", fmt.Sprintf("meta must be an object, got %T", metaRaw))
		}
		meta.Meta = m
	}
	return &meta, nil
}
