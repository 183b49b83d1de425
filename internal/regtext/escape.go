// Package regtext implements the primary ("v2") text file codec: the
// "WINE REGISTRY Version 2" grammar, its \x/octal/C-escape rules for
// arbitrary 16-bit characters, and the save/load walks over a key tree.
// Grounded on dump_strW/parse_strW, save_subkeys and load_keys in
// server/registry.c.
package regtext

import (
	"strconv"
	"strings"

	"github.com/go-compat/regsrv/internal/wstr"
)

// cEscapes maps the named C escapes used for control characters below
//0x20 that have a mnemonic; anything else below 0x20 falls back to
// octal.
var cEscapes = map[uint16]byte{
	7: 'a', 8: 'b', 9: 't', 10: 'n', 11: 'v', 12: 'f', 13: 'r', 27: 'e',
}

var cUnescapes = map[byte]uint16{
	'a': 7, 'b': 8, 't': 9, 'n': 10, 'v': 11, 'f': 12, 'r': 13, 'e': 27,
}

func isHexByte(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctalByte(b byte) bool {
	return b >= '0' && b <= '7'
}

// DumpStrW renders s the way dump_strW renders a WCHAR string: backslash
// and the two active delimiter bytes are backslash-escaped, characters
// below 0x20 use a named C escape or octal, and characters at or above
// 0x80 use \x hex — %04x when the following character would itself read
// as a hex digit, else the shortest form. delims carries the two
// currently-active delimiter characters (e.g. {'"','"'} inside a quoted
// string, {'[',']'} inside a key path); pass the same byte twice if only
// one delimiter is active.
func DumpStrW(s string, delims [2]byte) string {
	units := wstr.FromString(s)
	var b strings.Builder
	for i, c := range units {
		var next uint16
		hasNext := i+1 < len(units)
		if hasNext {
			next = units[i+1]
		}
		switch {
		case c == '\\' || c == uint16(delims[0]) || c == uint16(delims[1]):
			b.WriteByte('\\')
			b.WriteByte(byte(c))
		case c >= 0x80:
			if hasNext && next < 0x80 && isHexByte(byte(next)) {
				b.WriteString("\\x")
				writeHex(&b, c, 4)
			} else {
				b.WriteString("\\x")
				writeHex(&b, c, 1)
			}
		case c < 0x20:
			if esc, ok := cEscapes[c]; ok {
				b.WriteByte('\\')
				b.WriteByte(esc)
			} else if hasNext && next < 0x80 && isOctalByte(byte(next)) {
				b.WriteByte('\\')
				writeOctal(&b, c, 3)
			} else {
				b.WriteByte('\\')
				writeOctal(&b, c, 1)
			}
		default:
			b.WriteByte(byte(c))
		}
	}
	return b.String()
}

func writeHex(b *strings.Builder, v uint16, minDigits int) {
	s := strconv.FormatUint(uint64(v), 16)
	for len(s) < minDigits {
		s = "0" + s
	}
	b.WriteString(s)
}

func writeOctal(b *strings.Builder, v uint16, minDigits int) {
	s := strconv.FormatUint(uint64(v), 8)
	for len(s) < minDigits {
		s = "0" + s
	}
	b.WriteString(s)
}

// ParseStrW reverses DumpStrW: a malformed escape (trailing backslash,
// empty hex/octal run, unknown escape letter) yields an error rather
// than a best-effort guess.
func ParseStrW(s string, delims [2]byte) (string, error) {
	b := []byte(s)
	var out []uint16
	i := 0
	for i < len(b) {
		c := b[i]
		if c != '\\' {
			out = append(out, uint16(c))
			i++
			continue
		}
		i++
		if i >= len(b) {
			return "", errMalformed("dangling backslash")
		}
		e := b[i]
		switch {
		case e == '\\' || e == delims[0] || e == delims[1]:
			out = append(out, uint16(e))
			i++
		case cUnescapes[e] != 0:
			out = append(out, cUnescapes[e])
			i++
		case e == 'x':
			i++
			j := i
			for j < len(b) && j-i < 4 && isHexByte(b[j]) {
				j++
			}
			if j == i {
				return "", errMalformed("empty \\x escape")
			}
			v, err := strconv.ParseUint(string(b[i:j]), 16, 16)
			if err != nil {
				return "", errMalformed("invalid \\x escape")
			}
			out = append(out, uint16(v))
			i = j
		case isOctalByte(e):
			j := i
			for j < len(b) && j-i < 3 && isOctalByte(b[j]) {
				j++
			}
			v, err := strconv.ParseUint(string(b[i:j]), 8, 16)
			if err != nil {
				return "", errMalformed("invalid octal escape")
			}
			out = append(out, uint16(v))
			i = j
		default:
			return "", errMalformed("unknown escape")
		}
	}
	return wstr.WString(out).String(), nil
}
