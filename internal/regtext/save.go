package regtext

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-compat/regsrv/internal/regtree"
)

// Save writes root's subtree in the v2 grammar to w, following
// save_subkeys: a key block is only emitted for keys meeting the saving
// level whose level gates them, never for VOLATILE keys, and a key with
// no values but with subkeys is elided (its existence is implied by its
// children's paths).
func Save(w io.Writer, root *regtree.Key, savingLevel int, label RootLabeler) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	if err := saveSubkeys(bw, root, savingLevel, label); err != nil {
		return err
	}
	return bw.Flush()
}

func saveSubkeys(w *bufio.Writer, k *regtree.Key, savingLevel int, label RootLabeler) error {
	if k.Flags.Has(regtree.Volatile) {
		return nil
	}

	if k.Level >= savingLevel && (k.ValueCount() > 0 || k.SubkeyCount() == 0) {
		if _, err := fmt.Fprintf(w, "\n[%s] %d\n", DumpPath(k, label), k.Modif.Unix()); err != nil {
			return err
		}
		for i := 0; i < k.ValueCount(); i++ {
			if _, err := w.WriteString(KeyValueLine(k.ValueAt(i)) + "\n"); err != nil {
				return err
			}
		}
	}

	for i := 0; i < k.SubkeyCount(); i++ {
		if err := saveSubkeys(w, k.SubkeyAt(i), savingLevel, label); err != nil {
			return err
		}
	}
	return nil
}
