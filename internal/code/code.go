// Package code implements the deterministic path-to-code hashing scheme and
// the formatter that canonicalizes free-form user input into a code prefix.
package code

import (
	"crypto/sha256"
	"strconv"
	"strings"
)

// Alphabet is the canonical 32-symbol set codes are drawn from: digits 0-9
// plus uppercase letters with O, I, L and U removed because they are too
// easy to misread or mistype.
const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// base32Digits is the rendering alphabet used by strconv for base-32
// output. Each digit maps positionally onto Alphabet.
const base32Digits = "0123456789abcdefghijklmnopqrstuv"

// Separator splits a code into two 2-symbol halves for readability.
const Separator = '-'

// Symbols is the number of alphabet symbols per code (excluding separator).
const Symbols = 4

// space is the size of the code space: 32^4.
const space = 32 * 32 * 32 * 32

// substitute maps a base-32 rendering digit to its canonical symbol.
var substitute = func() map[rune]rune {
	m := make(map[rune]rune, len(base32Digits))
	for i, d := range base32Digits {
		m[d] = rune(Alphabet[i])
	}
	return m
}()

// Hash maps a path deterministically to a 5-character code of the form
// XX-XX. Only the first three digest bytes are used: the code space is
// intentionally small and human-typeable, so collisions between distinct
// paths are an accepted property rather than an error.
func Hash(path string) string {
	sum := sha256.Sum256([]byte(path))
	v := uint64(sum[0])<<16 | uint64(sum[1])<<8 | uint64(sum[2])
	v %= space

	rendered := strconv.FormatUint(v, 32)
	for len(rendered) < Symbols {
		rendered = "0" + rendered
	}

	var b strings.Builder
	b.Grow(Symbols + 1)
	for i, d := range rendered {
		if i == Symbols/2 {
			b.WriteRune(Separator)
		}
		b.WriteRune(substitute[d])
	}
	return b.String()
}

// Format canonicalizes raw user input into a valid partial or full code.
// It uppercases, substitutes common look-alike mistakes (O→0, I→1, L→1,
// U→V), drops anything outside the canonical alphabet (including any
// separator the user typed), truncates to four symbols, and re-inserts the
// separator when more than two symbols remain.
//
// Format re-derives the canonical form from scratch on every call, so it is
// idempotent and safe to run on each keystroke.
func Format(input string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(input) {
		switch r {
		case 'O':
			r = '0'
		case 'I', 'L':
			r = '1'
		case 'U':
			r = 'V'
		}
		if strings.ContainsRune(Alphabet, r) {
			b.WriteRune(r)
		}
		if b.Len() == Symbols {
			break
		}
	}
	s := b.String()
	if len(s) > Symbols/2 {
		s = s[:Symbols/2] + string(Separator) + s[Symbols/2:]
	}
	return s
}

// IsComplete reports whether s is a fully formatted 5-character code.
func IsComplete(s string) bool {
	if len(s) != Symbols+1 {
		return false
	}
	for i, r := range s {
		if i == Symbols/2 {
			if r != Separator {
				return false
			}
			continue
		}
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}
