package regtext

import (
	"strings"

	"github.com/go-compat/regsrv/internal/regtree"
)

// RootLabeler resolves a key to the human-readable root name it should
// render as when it is the topmost ancestor in a dumped path (e.g.
// "HKEY_LOCAL_MACHINE"). It reports false for a key that isn't a
// registered root.
type RootLabeler func(*regtree.Key) (string, bool)

// DumpPath renders k's ancestor chain the way dump_path does: components
// joined by a double backslash, most distant ancestor first. The
// topmost ancestor renders as its labeler-provided root name when one
// applies; failing that, as its own (escaped) name if it carries the
// ROOT flag, or as the literal "?????" orphan placeholder if it has
// neither — the case of a key whose parent edge was cleared by deletion
// but which a stale handle still reaches.
func DumpPath(k *regtree.Key, label RootLabeler) string {
	var parts []string
	cur := k
	for cur.Parent != nil {
		parts = append(parts, DumpStrW(cur.Name, pathDelims))
		cur = cur.Parent
	}

	head := "?????"
	if label != nil {
		if l, ok := label(cur); ok {
			head = l
		} else if cur.Flags.Has(regtree.Root) {
			head = DumpStrW(cur.Name, pathDelims)
		}
	} else if cur.Flags.Has(regtree.Root) {
		head = DumpStrW(cur.Name, pathDelims)
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(append([]string{head}, parts...), `\\`)
}
