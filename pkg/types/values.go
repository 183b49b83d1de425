package types

import "fmt"

// RegType enumerates the registry value type tags of spec.md §3
// (the numbers align with the Windows definitions the original source
// used, e.g. REG_SZ == 1).
type RegType uint32

const (
	REG_NONE      RegType = 0
	REG_SZ        RegType = 1
	REG_EXPAND_SZ RegType = 2
	REG_BINARY    RegType = 3
	REG_DWORD     RegType = 4
	REG_DWORD_BE  RegType = 5
	REG_LINK      RegType = 6
	REG_MULTI_SZ  RegType = 7
	REG_QWORD     RegType = 11
)

func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BE:
		return "REG_DWORD_BE"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
	}
}

// Handle is an opaque per-process capability referring to a key, as
// dispensed by the dispatcher's alloc_handle/get_hkey_obj layer
// (spec.md §4.5, §4.8).
type Handle int32

// AccessMask is the requested access for a handle resolution; bits mirror
// the Windows registry access rights the original dispatch table checks.
type AccessMask uint32

const (
	KeyQueryValue       AccessMask = 0x0001
	KeySetValue         AccessMask = 0x0002
	KeyCreateSubKey     AccessMask = 0x0004
	KeyEnumerateSubKeys AccessMask = 0x0008
	KeyAllAccess        AccessMask = 0x000F
	MaximumAllowed      AccessMask = 0x02000000
)

// CreateOptions mirrors REG_OPTION_VOLATILE and friends from create_key's
// options argument (spec.md §4.3).
type CreateOptions uint32

const (
	OptionNonVolatile CreateOptions = 0
	OptionVolatile    CreateOptions = 0x0001
)
