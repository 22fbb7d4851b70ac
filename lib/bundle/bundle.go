// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle reads and writes build bundles: a built document
// tree, its reports, and run provenance in one zstd-compressed CBOR
// file. Bundles are the machine-readable record of a build, consumed
// by renderers and audit tooling.
package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/litepub-foundation/litepub/lib/build"
	"github.com/litepub-foundation/litepub/lib/codec"
	"github.com/litepub-foundation/litepub/lib/doctree"
	"github.com/litepub-foundation/litepub/lib/filter"
	"github.com/litepub-foundation/litepub/lib/resolve"
)

// File format constants. Changing the version byte breaks every
// existing bundle; readers reject versions they do not know.
var magic = [4]byte{'l', 'p', 'u', 'b'}

const version byte = 1

// Bundle is the serialized form of a completed build. The tree is
// carried as its canonical JSON encoding so bundle consumers do not
// need the full node-type vocabulary to pass it along.
type Bundle struct {
	Provenance build.Provenance      `json:"provenance"`
	Tree       []byte                `json:"tree"`
	Resolution []resolve.ReportEntry `json:"resolution"`
	Filter     []filter.Entry        `json:"filter"`
}

// FromResult assembles a bundle from a build result.
func FromResult(res *build.Result) (*Bundle, error) {
	tree, err := json.Marshal(res.Doc)
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return &Bundle{
		Provenance: res.Provenance,
		Tree:       tree,
		Resolution: res.Resolution.Entries,
		Filter:     res.Filter.Entries,
	}, nil
}

// Document decodes the bundled tree.
func (b *Bundle) Document() (*doctree.Document, error) {
	return doctree.Parse(b.Tree)
}

// Shared zstd encoder and decoder, created once. Both are safe for
// concurrent use via EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("bundle: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("bundle: zstd decoder initialization failed: " + err.Error())
	}
}

// Write serializes the bundle to w: magic, version byte, then
// zstd-compressed deterministic CBOR.
func Write(w io.Writer, b *Bundle) error {
	payload, err := codec.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	compressed := zstdEncoder.EncodeAll(payload, nil)

	if _, err := w.Write(magic[:]); err != nil {
		return fmt.Errorf("write bundle magic: %w", err)
	}
	if _, err := w.Write([]byte{version}); err != nil {
		return fmt.Errorf("write bundle version: %w", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return fmt.Errorf("write bundle payload: %w", err)
	}
	return nil
}

// Read deserializes a bundle from r.
func Read(r io.Reader) (*Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	if len(data) < len(magic)+1 || !bytes.Equal(data[:len(magic)], magic[:]) {
		return nil, fmt.Errorf("not a bundle file")
	}
	if v := data[len(magic)]; v != version {
		return nil, fmt.Errorf("unsupported bundle version %d, want %d", v, version)
	}
	payload, err := zstdDecoder.DecodeAll(data[len(magic)+1:], nil)
	if err != nil {
		return nil, fmt.Errorf("decompress bundle: %w", err)
	}
	var b Bundle
	if err := codec.Unmarshal(payload, &b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return &b, nil
}

// WriteFile writes the bundle to path.
func WriteFile(path string, b *Bundle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create bundle file: %w", err)
	}
	if err := Write(f, b); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a bundle from path.
func ReadFile(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bundle file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
