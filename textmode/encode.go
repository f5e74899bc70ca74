// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package textmode

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// FirstChar is the character drawn by glyph index 0.
	FirstChar = 0x20

	// LastChar is the last printable ASCII character in the default atlas.
	LastChar = 0x7E

	// Replacement is the glyph index used for characters outside the atlas.
	Replacement = byte('?' - FirstChar)
)

// Encode converts text to glyph indices for an atlas starting at FirstChar.
// Characters without a glyph become Replacement.
func Encode(s string) []byte {
	s = norm.NFKD.String(s)
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		out = append(out, EncodeRune(r))
	}
	return out
}

// EncodeRune converts one rune without normalization.
func EncodeRune(r rune) byte {
	if r < FirstChar || r > LastChar {
		return Replacement
	}
	return byte(r - FirstChar)
}

// DecodeByte returns the character drawn for glyph index b, or false when b
// addresses no printable character.
func DecodeByte(b byte) (rune, bool) {
	r := rune(b) + FirstChar
	if r > LastChar {
		return 0, false
	}
	return r, true
}
