package wstr

import "strings"

// MaxPath bounds the scratch area copy_path and get_path_token fill in
// the original source (MAX_PATH+1 WCHARs). Paths longer than this are
// truncated the same way the fixed request buffer truncates them.
const MaxPath = 260

// CopyPath performs a length-bounded copy from a request path buffer,
// the Go analogue of copy_path: truncate to MaxPath code units and
// return an independent string (the C version returns a pointer into a
// single shared static buffer good for one call per request; here every
// caller gets its own copy, so the "single-use" caveat in spec.md §9
// does not apply).
func CopyPath(raw string) string {
	w := FromString(raw)
	if len(w) > MaxPath {
		w = w[:MaxPath]
	}
	return w.String()
}

// PathTokenizer walks a backslash-delimited path one token at a time.
// Unlike get_path_token in the source, which keeps its cursor in function
// statics (so only one tokenization can be in flight at once, see
// spec.md §9), the cursor here is a value every caller owns
// independently.
type PathTokenizer struct {
	path string
}

// NewPathTokenizer starts tokenizing path. Leading backslashes are
// skipped by Next, exactly as the source skips them before taking a
// token.
func NewPathTokenizer(path string) *PathTokenizer {
	return &PathTokenizer{path: path}
}

// Next returns the next path component and true, or ("", false) once the
// path is exhausted (equivalent to get_path_token returning an empty
// token).
func (t *PathTokenizer) Next() (string, bool) {
	t.path = strings.TrimLeft(t.path, "\\")
	if t.path == "" {
		return "", false
	}
	if idx := strings.IndexByte(t.path, '\\'); idx >= 0 {
		tok := t.path[:idx]
		t.path = t.path[idx:]
		return tok, true
	}
	tok := t.path
	t.path = ""
	return tok, true
}

// Remaining reports whether any non-backslash component is still left.
func (t *PathTokenizer) Remaining() bool {
	return strings.TrimLeft(t.path, "\\") != ""
}

// SplitPath tokenizes the whole path up front; most callers in this
// package want the full slice rather than incremental iteration.
func SplitPath(path string) []string {
	tok := NewPathTokenizer(path)
	var parts []string
	for {
		p, ok := tok.Next()
		if !ok {
			break
		}
		parts = append(parts, p)
	}
	return parts
}
