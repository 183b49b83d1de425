// Package types defines the shared value, access, and error vocabulary
// used across the registry tree, the text codecs, and the service
// dispatcher: registry value types (REG_SZ, REG_DWORD, ...), handle and
// access-mask values, key creation/disposition options, and the typed
// error categories callers switch on.
//
// This package has no dependencies beyond the standard library.
package types
