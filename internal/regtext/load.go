package regtext

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/pkg/types"
)

// LineError reports a non-fatal parse problem at a specific line, the Go
// shape of the original loader's "logged with its line number, parsing
// continues" behavior.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": " + e.Err.Error()
}

func (e *LineError) Unwrap() error { return e.Err }

// RootResolver recognizes a root's human-readable label (as DumpPath
// would have rendered it) and returns its backing key, lazily
// constructing it if necessary. A nil RootResolver means every keyblock
// path is treated as relative to target, including one whose first
// component happens to spell a root's name.
type RootResolver func(name string) (*regtree.Key, bool)

// Load parses a v2 text stream into target, creating keys rooted at
// target for each keyblock (load_keys/create_key) and attaching values
// to the most recently opened keyblock. When a keyblock's path begins
// with a name resolveRoot recognizes, the key is created under that root
// instead of under target — the inverse of DumpPath emitting the root's
// label as the topmost path component during save. The header line must
// match Header exactly or the whole load fails with ErrNotRegistryFile.
// Any other parse problem is per-line and non-fatal: it is appended to
// the returned slice and the next line is still processed.
func Load(r io.Reader, target *regtree.Key, currentLevel int, now time.Time, resolveRoot RootResolver) ([]*LineError, error) {
	scanner := bufio.NewScanner(r)
	// The original grows its line buffer by 1.5x on overflow rather
	// than failing outright; a growable Scanner buffer up to a
	// generous cap is the idiomatic equivalent.
	const initialBuf = 4096
	const maxBuf = 16 << 20
	scanner.Buffer(make([]byte, initialBuf), maxBuf)

	var lineNo int
	nextLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimRight(scanner.Text(), "\r"), true
	}

	header, ok := nextLine()
	if !ok {
		return nil, types.ErrNotRegistryFile
	}
	if header != Header {
		return nil, types.ErrNotRegistryFile
	}

	var errs []*LineError
	current := target
	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}

		switch trimmed[0] {
		case '[':
			k, err := openKeyblock(trimmed, target, currentLevel, now, resolveRoot)
			if err != nil {
				errs = append(errs, &LineError{Line: lineNo, Err: err})
				current = nil
				continue
			}
			current = k

		case '@', '"':
			if current == nil {
				errs = append(errs, &LineError{Line: lineNo, Err: errMalformed("value with no current key")})
				continue
			}
			if err := loadValueLine(trimmed, current, currentLevel, now, nextLine); err != nil {
				errs = append(errs, &LineError{Line: lineNo, Err: err})
			}

		default:
			errs = append(errs, &LineError{Line: lineNo, Err: errMalformed("unrecognized line")})
		}
	}
	if err := scanner.Err(); err != nil {
		return errs, err
	}
	return errs, nil
}

// openKeyblock parses a "[path] modif" header line and create_keys path
// beneath target. The bracketed text is decoded as a single escaped
// string first, then split on the decoded (single) backslash to get
// path components — the two raw backslashes DumpPath emits between
// components collapse to one through that escape pass, the same way
// load_key's parse_strW-then-split works. If the path's leading
// component matches a label resolveRoot recognizes, that root is used
// as the creation base instead of target and the label component is
// stripped — the inverse of DumpPath prepending a root's label when
// saving.
func openKeyblock(line string, target *regtree.Key, currentLevel int, now time.Time, resolveRoot RootResolver) (*regtree.Key, error) {
	end := findUnescapedByte(line[1:], ']')
	if end < 0 {
		return nil, errMalformed("unterminated key path")
	}
	rawPath := line[1 : 1+end]

	decoded, err := ParseStrW(rawPath, pathDelims)
	if err != nil {
		return nil, err
	}
	var parts []string
	if decoded != "" {
		parts = strings.Split(decoded, `\`)
	}

	base := target
	if resolveRoot != nil && len(parts) > 0 {
		if root, ok := resolveRoot(parts[0]); ok {
			base = root
			parts = parts[1:]
			defer base.Release()
		}
	}
	path := strings.Join(parts, `\`)
	if path == "" {
		return base.AddRef(), nil
	}

	k, _, err := regtree.CreateKey(base, path, nil, types.OptionNonVolatile, currentLevel, now)
	return k, err
}

// loadValueLine parses and applies a single "name"=typedval (or
// @=typedval) line against k.
func loadValueLine(line string, k *regtree.Key, currentLevel int, now time.Time, nextLine func() (string, bool)) error {
	name, rest, err := parseValueName(line)
	if err != nil {
		return err
	}
	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, "=") {
		return errMalformed("value line missing '='")
	}
	rest = rest[1:]

	typ, data, err := parseTypedValue(rest, func() (string, bool) {
		l, ok := nextLine()
		if !ok {
			return "", false
		}
		return strings.TrimSpace(l), true
	})
	if err != nil {
		return err
	}
	return regtree.SetValue(k, name, typ, data, currentLevel, now)
}
