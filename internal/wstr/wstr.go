// Package wstr provides the wide-character string and path utilities of
// spec.md §4.1: case-insensitive comparison, length-bounded path copying,
// and backslash tokenization over 16-bit code units.
//
// Names inside the tree are kept as Go strings (UTF-8) at rest; WString
// exists only at the boundaries where code-unit length and case-folding
// must match the original 16-bit semantics exactly.
package wstr

import (
	"unicode/utf16"

	"golang.org/x/text/cases"
)

// foldCaser performs the same case-insensitive fold strcmpiW implements
// per-WCHAR, applied at the string level; grounded on the teacher's use
// of golang.org/x/text for locale-aware comparisons rather than a
// hand-rolled ASCII-only upper-caser.
var foldCaser = cases.Fold()

// WString is a sequence of UTF-16 code units, the in-memory shape of a
// wide-character string as the original source manipulates it.
type WString []uint16

// FromString encodes a Go (UTF-8) string into its UTF-16 code units.
func FromString(s string) WString {
	return WString(utf16.Encode([]rune(s)))
}

// String decodes the code units back into a Go string.
func (w WString) String() string {
	return string(utf16.Decode(w))
}

// Len returns the length in 16-bit code units (not runes), matching the
// source's strlenW semantics used for MAX_PATH and buffer bounds.
func (w WString) Len() int { return len(w) }

// CompareFoldW is strcmpiW: case-insensitive comparison of two wide
// strings, returning negative, zero, or positive exactly like strcmp.
func CompareFoldW(a, b WString) int {
	return CompareFold(a.String(), b.String())
}

// CompareFold is the string-level equivalent of CompareFoldW, used by the
// tree's sorted-insert logic where names are already held as Go strings.
func CompareFold(a, b string) int {
	fa, fb := foldCaser.String(a), foldCaser.String(b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}

// EqualFold reports whether a and b compare equal under CompareFold.
func EqualFold(a, b string) bool {
	return CompareFold(a, b) == 0
}
