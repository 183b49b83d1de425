package regtext

// Header is the exact first line every v2 file must carry. A load whose
// first line doesn't match this byte-for-byte fails with
// ErrNotRegistryFile.
const Header = "WINE REGISTRY Version 2"

// pathDelims and strDelims are the two "currently active delimiter"
// pairs DumpStrW/ParseStrW escape around: '[' and ']' while rendering a
// key path inside a keyblock header, '"' (doubled) inside a quoted
// string.
var (
	pathDelims = [2]byte{'[', ']'}
	strDelims  = [2]byte{'"', '"'}
)
