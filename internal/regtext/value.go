package regtext

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/pkg/types"
)

// dumpValue renders a single value line's right-hand side (typedval),
// dispatching on the value's stored type the way dump_value's type
// switch does.
func dumpValue(typ types.RegType, data []byte) string {
	switch typ {
	case types.REG_SZ:
		return `"` + DumpStrW(string(data), strDelims) + `"`
	case types.REG_EXPAND_SZ:
		return `str(2):"` + DumpStrW(string(data), strDelims) + `"`
	case types.REG_MULTI_SZ:
		return `str(7):"` + DumpStrW(string(data), strDelims) + `"`
	case types.REG_DWORD:
		var v uint32
		if len(data) >= 4 {
			v = binary.LittleEndian.Uint32(data)
		}
		return fmt.Sprintf("dword:%08x", v)
	case types.REG_BINARY:
		return "hex:" + dumpHexList(data)
	default:
		return fmt.Sprintf("hex(%x):%s", uint32(typ), dumpHexList(data))
	}
}

func dumpHexList(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = hex.EncodeToString([]byte{b})
	}
	return strings.Join(parts, ",")
}

// parseValueName parses the left-hand side of a valueline: either the
// literal "@" (the key's default value) or a quoted, escaped name.
func parseValueName(s string) (name string, rest string, err error) {
	s = strings.TrimLeft(s, " \t")
	if strings.HasPrefix(s, "@") {
		return "", strings.TrimPrefix(s, "@"), nil
	}
	if !strings.HasPrefix(s, `"`) {
		return "", "", errMalformed("value line missing name")
	}
	end := findUnescapedQuote(s[1:])
	if end < 0 {
		return "", "", errMalformed("unterminated value name")
	}
	raw := s[1 : 1+end]
	name, err = ParseStrW(raw, strDelims)
	if err != nil {
		return "", "", err
	}
	return name, s[1+end+1:], nil
}

// findUnescapedQuote returns the byte offset of the first unescaped `"`
// in s, or -1.
func findUnescapedQuote(s string) int {
	return findUnescapedByte(s, '"')
}

// findUnescapedByte returns the byte offset of the first occurrence of
// target in s that isn't preceded by an (unescaped) backslash, or -1.
func findUnescapedByte(s string, target byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == target {
			return i
		}
	}
	return -1
}

// parseTypedValue parses the right-hand side of a valueline (typedval)
// per the data-type tag table. cont is a callback to pull a continuation
// line when a hex list ends in a trailing backslash.
func parseTypedValue(s string, cont func() (string, bool)) (types.RegType, []byte, error) {
	s = strings.TrimLeft(s, " \t")
	switch {
	case strings.HasPrefix(s, `"`):
		str, err := parseQuotedBody(s[1:])
		if err != nil {
			return 0, nil, err
		}
		return types.REG_SZ, []byte(str), nil
	case strings.HasPrefix(s, `str(2):"`):
		str, err := parseQuotedBody(s[len(`str(2):"`):])
		if err != nil {
			return 0, nil, err
		}
		return types.REG_EXPAND_SZ, []byte(str), nil
	case strings.HasPrefix(s, `str(7):"`):
		str, err := parseQuotedBody(s[len(`str(7):"`):])
		if err != nil {
			return 0, nil, err
		}
		return types.REG_MULTI_SZ, []byte(str), nil
	case strings.HasPrefix(s, "dword:"):
		v, err := strconv.ParseUint(strings.TrimSpace(s[len("dword:"):]), 16, 32)
		if err != nil {
			return 0, nil, errMalformed("malformed dword value")
		}
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v))
		return types.REG_DWORD, buf, nil
	case strings.HasPrefix(s, "hex:"):
		data, err := parseHexList(s[len("hex:"):], cont)
		if err != nil {
			return 0, nil, err
		}
		return types.REG_BINARY, data, nil
	case strings.HasPrefix(s, "hex("):
		close := strings.IndexByte(s, ')')
		if close < 0 || !strings.HasPrefix(s[close:], "):") {
			return 0, nil, errMalformed("malformed hex(NN) tag")
		}
		nn, err := strconv.ParseUint(s[len("hex("):close], 16, 32)
		if err != nil {
			return 0, nil, errMalformed("malformed hex(NN) type tag")
		}
		data, err := parseHexList(s[close+2:], cont)
		if err != nil {
			return 0, nil, err
		}
		return types.RegType(nn), data, nil
	default:
		return 0, nil, errMalformed("unrecognized value type tag")
	}
}

func parseQuotedBody(s string) (string, error) {
	end := findUnescapedQuote(s)
	if end < 0 {
		return "", errMalformed("unterminated string value")
	}
	return ParseStrW(s[:end], strDelims)
}

// parseHexList parses a comma-separated hex byte list, pulling
// continuation lines (signalled by a trailing backslash) via cont. A
// continuation line that doesn't itself parse as hex is reported as a
// malformed value rather than aborting the whole load.
func parseHexList(s string, cont func() (string, bool)) ([]byte, error) {
	var out []byte
	for {
		s = strings.TrimSpace(s)
		trailing := strings.HasSuffix(s, `\`)
		if trailing {
			s = strings.TrimSuffix(s, `\`)
		}
		s = strings.TrimRight(s, " \t,")
		if s != "" {
			for _, field := range strings.Split(s, ",") {
				field = strings.TrimSpace(field)
				if field == "" {
					continue
				}
				b, err := hex.DecodeString(field)
				if err != nil || len(b) != 1 {
					return nil, errMalformed("malformed hex byte in value")
				}
				out = append(out, b[0])
			}
		}
		if !trailing {
			return out, nil
		}
		if cont == nil {
			return nil, errMalformed("hex continuation with no following line")
		}
		next, ok := cont()
		if !ok {
			return nil, errMalformed("hex continuation with no following line")
		}
		s = next
	}
}

// KeyValueLine renders a complete valueline for v (used by save.go).
func KeyValueLine(v regtree.KeyValue) string {
	lhs := "@"
	if v.Name != "" {
		lhs = `"` + DumpStrW(v.Name, strDelims) + `"`
	}
	return lhs + "=" + dumpValue(v.Type, v.Data)
}
