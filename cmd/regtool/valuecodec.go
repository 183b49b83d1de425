package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-compat/regsrv/pkg/types"
)

// parseValueArg turns a --type name and a CLI string argument into the
// (RegType, data) pair SetKeyValue stores, the CLI-input counterpart of
// regtext's typedval grammar.
func parseValueArg(typeName, value string) (types.RegType, []byte, error) {
	switch strings.ToLower(typeName) {
	case "sz", "":
		return types.REG_SZ, []byte(value), nil
	case "expand_sz":
		return types.REG_EXPAND_SZ, []byte(value), nil
	case "multi_sz":
		return types.REG_MULTI_SZ, []byte(strings.ReplaceAll(value, ",", "\x00")), nil
	case "binary":
		data, err := hex.DecodeString(strings.ReplaceAll(value, " ", ""))
		if err != nil {
			return 0, nil, fmt.Errorf("malformed hex in binary value: %w", err)
		}
		return types.REG_BINARY, data, nil
	case "dword":
		v, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return 0, nil, fmt.Errorf("malformed dword value: %w", err)
		}
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v))
		return types.REG_DWORD, buf, nil
	case "qword":
		v, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return 0, nil, fmt.Errorf("malformed qword value: %w", err)
		}
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, v)
		return types.REG_QWORD, buf, nil
	default:
		return 0, nil, fmt.Errorf("unknown value type %q", typeName)
	}
}

// renderValueData formats a value's stored bytes back for display,
// inverting parseValueArg.
func renderValueData(typ types.RegType, data []byte) string {
	switch typ {
	case types.REG_SZ, types.REG_EXPAND_SZ:
		return string(data)
	case types.REG_MULTI_SZ:
		return strings.ReplaceAll(string(data), "\x00", ",")
	case types.REG_DWORD:
		if len(data) < 4 {
			return "0"
		}
		return strconv.FormatUint(uint64(binary.LittleEndian.Uint32(data)), 10)
	case types.REG_QWORD:
		if len(data) < 8 {
			return "0"
		}
		return strconv.FormatUint(binary.LittleEndian.Uint64(data), 10)
	default:
		return hex.EncodeToString(data)
	}
}
