package regtext

import "github.com/go-compat/regsrv/pkg/types"

// errMalformed builds a format-kind error for a single bad line or
// escape sequence; callers of the load path treat these as non-fatal and
// continue with the next line, per the per-line error handling the
// original loader uses.
func errMalformed(msg string) error {
	return types.New(types.ErrKindFormat, msg)
}
