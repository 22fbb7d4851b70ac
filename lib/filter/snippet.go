// Copyright 2026 The Litepub Authors
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// snippetDomainKey is the BLAKE3 key for snippet addressing. Domain
// separation keeps snippet ids from colliding with any other hash of
// the same bytes; the key bytes are the ASCII domain name zero-padded
// to 32 bytes, so they stay readable in hex dumps. Changing the key
// invalidates every previously published snippet link.
var snippetDomainKey = [32]byte{
	'l', 'i', 't', 'e', 'p', 'u', 'b', '.', 'f', 'i', 'l', 't', 'e', 'r', '.',
	's', 'n', 'i', 'p', 'p', 'e', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// SnippetID returns the stable address of an externalized code
// snippet: "snip-" plus the first 12 hex digits of the keyed BLAKE3
// hash of the code text. The id is content-derived, so identical
// snippets share one file and links survive rebuilds.
func SnippetID(code string) string {
	hasher, err := blake3.NewKeyed(snippetDomainKey[:])
	if err != nil {
		panic("filter: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(code))
	sum := hasher.Sum(nil)
	return "snip-" + hex.EncodeToString(sum[:6])
}
