// Package regtextv1 implements the write-only legacy text format: tab
// indentation for nesting instead of bracketed paths, \uXXXX-only
// escaping, and "name=type,0,payload" value lines. Grounded on
// save_string_v1/save_subkeys_v1/save_registry in server/registry.c,
// kept alongside the v2 codec (internal/regtext) as a distinct package
// since the two grammars share no parsing code — v1 is never loaded.
package regtextv1

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/pkg/types"
)

// Escape renders s using the legacy escaping: backslash escapes itself,
// and '\n', '=', and any character above 0x7F render as \uXXXX. Every
// other character is written literally — there is no octal or named C
// escape in this grammar, unlike the v2 codec's richer rule set.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n' || r == '=' || r > 0x7F:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// effectiveLevels computes, for every key in root's subtree, the
// maximum `level` found anywhere in that key's own subtree — the
// update_level pass, so that a key with only deeply-nested savable
// descendants still passes the v1 cutoff. It is computed into a side
// table rather than mutated onto Key.Level: the original's in-place
// update is a one-shot tool's bookkeeping, but this server keeps running
// after a save, and permanently raising a key's level as a side effect
// of exporting it would be a surprising, unspecified mutation (see
// DESIGN.md).
func effectiveLevels(k *regtree.Key, out map[*regtree.Key]int) int {
	max := k.Level
	for i := 0; i < k.SubkeyCount(); i++ {
		if l := effectiveLevels(k.SubkeyAt(i), out); l > max {
			max = l
		}
	}
	out[k] = max
	return max
}

// Save writes root's subtree in the v1 grammar to w. savingLevel gates
// output exactly as in the v2 codec, using the propagated effective
// level rather than each key's own.
func Save(w io.Writer, root *regtree.Key, savingLevel int) error {
	levels := make(map[*regtree.Key]int)
	effectiveLevels(root, levels)

	bw := bufio.NewWriter(w)
	if err := writeKey(bw, root, 0, savingLevel, levels); err != nil {
		return err
	}
	return bw.Flush()
}

func writeKey(w *bufio.Writer, k *regtree.Key, depth int, savingLevel int, levels map[*regtree.Key]int) error {
	if k.Flags.Has(regtree.Volatile) || levels[k] < savingLevel {
		return nil
	}

	childDepth := depth
	if k.Name != "" || k.Parent != nil {
		indent(w, depth)
		if _, err := w.WriteString(Escape(k.Name) + "\n"); err != nil {
			return err
		}
		childDepth = depth + 1
	}
	for i := 0; i < k.ValueCount(); i++ {
		if err := writeValue(w, k.ValueAt(i), childDepth); err != nil {
			return err
		}
	}

	for i := 0; i < k.SubkeyCount(); i++ {
		if err := writeKey(w, k.SubkeyAt(i), childDepth, savingLevel, levels); err != nil {
			return err
		}
	}
	return nil
}

func indent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteByte('\t')
	}
}

func writeValue(w *bufio.Writer, v regtree.KeyValue, depth int) error {
	indent(w, depth)
	name := Escape(v.Name)
	payload := valuePayload(v.Type, v.Data)
	_, err := fmt.Fprintf(w, "%s=%d,0,%s\n", name, uint32(v.Type), payload)
	return err
}

// valuePayload renders a value's data the way save_string_v1 does: the
// escaped string form for REG_SZ/REG_EXPAND_SZ only, else concatenated
// hex bytes with no separators — REG_MULTI_SZ falls through to the hex
// branch here exactly as it does in the original, which special-cases
// only REG_SZ and REG_EXPAND_SZ as strings (see DESIGN.md).
func valuePayload(typ types.RegType, data []byte) string {
	switch typ {
	case types.REG_SZ, types.REG_EXPAND_SZ:
		return Escape(string(data))
	default:
		return hex.EncodeToString(data)
	}
}
