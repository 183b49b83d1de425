// Package regtree implements the in-memory key tree of spec.md §3/§4.2–4.4:
// the Key and KeyValue entities, their sorted-subkey and sorted-value
// invariants, the path-based open/create/delete/enumerate walks, and the
// per-key value operations. It is grounded on the key tree model of
// server/registry.c (struct key, struct key_value and their operations),
// generalized from C's manual arrays to Go's growSlice.
package regtree

import (
	"time"

	"github.com/go-compat/regsrv/internal/wstr"
	"github.com/go-compat/regsrv/pkg/types"
)

// Flags is the set of per-key flag bits of spec.md §3 (KEY_VOLATILE,
// KEY_DELETED, KEY_ROOT in the original source).
type Flags uint8

const (
	Volatile Flags = 1 << iota
	Deleted
	Root
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// KeyValue is a single named, typed value attached to a key (spec.md §3).
// The empty name denotes the key's default value.
type KeyValue struct {
	Name string
	Type types.RegType
	Data []byte
}

// Key is a node in the registry tree (spec.md §3). Parent is a
// non-owning back-reference per the design note in spec.md §9; the
// owning edge runs from parent to child through subkeys.
type Key struct {
	Name   string
	Class  *string
	Parent *Key

	subkeys growSlice[*Key]
	values  growSlice[KeyValue]

	Flags Flags
	Level int
	Modif time.Time

	refs int32
}

// Initial level assignment is owned by the caller
// (pkg/registry owns the process-wide current_level/saving_level
// globals of spec.md §4.9); newKey takes the level to stamp explicitly
// so this package carries no global state, keeping it safe to construct
// independent trees in tests.

// newKey allocates a bare key (alloc_key), owning no parent yet.
func newKey(name string, level int, modif time.Time) *Key {
	return &Key{
		Name:    name,
		subkeys: newGrowSlice[*Key](MinSubkeys),
		values:  newGrowSlice[KeyValue](MinValues),
		Level:   level,
		Modif:   modif,
		refs:    1,
	}
}

// NewRoot allocates an anonymous or named root key (create_root_key),
// flagged Root and parentless.
func NewRoot(name string, level int, modif time.Time) *Key {
	k := newKey(name, level, modif)
	k.Flags |= Root
	return k
}

// AddRef increments the handle refcount. Every acquisition of a *Key via
// Open/Create/a handle-manager lookup pairs with exactly one Release, per
// spec.md §5; Go's GC makes this bookkeeping advisory rather than
// load-bearing for memory safety, but it lets callers assert the
// acquire/release discipline spec.md requires of every dispatcher
// handler.
func (k *Key) AddRef() *Key {
	k.refs++
	return k
}

// Release decrements the handle refcount. When it would reach zero the
// key's value buffers are dropped eagerly (key_destroy); subkeys are left
// alone since Go's GC, not explicit refcounting, owns their lifetime once
// this key is unreachable.
func (k *Key) Release() {
	k.refs--
	if k.refs <= 0 {
		k.values = growSlice[KeyValue]{}
	}
}

// SubkeyCount, ValueCount expose array lengths (last_subkey+1 /
// last_value+1 in the source's "-1 when empty" convention, spec.md I7).
func (k *Key) SubkeyCount() int { return k.subkeys.len() }
func (k *Key) ValueCount() int  { return k.values.len() }

// SubkeyAt returns the i'th subkey in sorted order.
func (k *Key) SubkeyAt(i int) *Key { return k.subkeys.at(i) }

// ValueAt returns the i'th value in sorted order.
func (k *Key) ValueAt(i int) KeyValue { return k.values.at(i) }

// findSubkey is find_subkey: a binary search returning the matching
// subkey and its index, or (nil, insertionPoint) when absent.
func (k *Key) findSubkey(name string) (*Key, int) {
	items := k.subkeys.items()
	lo, hi := 0, len(items)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		res := wstr.CompareFold(items[mid].Name, name)
		switch {
		case res == 0:
			return items[mid], mid
		case res > 0:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return nil, lo
}

// FindSubkey is the exported read-only form of findSubkey.
func (k *Key) FindSubkey(name string) (*Key, bool) {
	sub, _ := k.findSubkey(name)
	return sub, sub != nil
}

// allocSubkey is alloc_subkey: grow if needed, insert at index, wire the
// parent back-reference.
func (k *Key) allocSubkey(name string, index int, level int, modif time.Time) *Key {
	child := newKey(name, level, modif)
	child.Parent = k
	k.subkeys.insertAt(index, child)
	return child
}

// freeSubkey is free_subkey: remove at index, flag DELETED, clear the
// parent edge, and let the backing array shrink per its policy.
func (k *Key) freeSubkey(index int) *Key {
	child := k.subkeys.removeAt(index)
	child.Flags |= Deleted
	child.Parent = nil
	child.Release()
	return child
}

// touch is touch_key: stamp modification time and raise level to at
// least currentLevel.
func (k *Key) touch(currentLevel int, now time.Time) {
	k.Modif = now
	if currentLevel > k.Level {
		k.Level = currentLevel
	}
}
