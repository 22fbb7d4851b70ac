// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Litepub's standard CBOR encoding
// configuration.
//
// Litepub uses two serialization formats with a clear boundary:
//
//   - JSON for external interfaces: document trees on the wire,
//     registry files, payload formats, and CLI output.
//   - CBOR for internal artifacts: build bundles and any on-disk
//     state that is never hand-edited.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every Litepub package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC
// 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes, which is what makes build outputs byte-comparable across
// runs.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// Types that serialize as both JSON and CBOR carry only a `json`
// struct tag: fxamacker/cbor v2 reads `json` tags as fallback when
// `cbor` tags are absent, so one tag controls field naming and
// omitempty for both formats.
package codec
