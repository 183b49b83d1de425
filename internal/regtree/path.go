package regtree

import (
	"time"

	"github.com/go-compat/regsrv/internal/wstr"
	"github.com/go-compat/regsrv/pkg/types"
)

// OpenKey walks path one token at a time from base, failing with
// ErrNotFound at the first missing component (open_key). An empty path
// returns base itself, both with a new reference (spec.md §4.3).
func OpenKey(base *Key, path string) (*Key, error) {
	key := base
	tok := wstr.NewPathTokenizer(path)
	for {
		name, ok := tok.Next()
		if !ok {
			break
		}
		sub, found := key.FindSubkey(name)
		if !found {
			return nil, types.ErrNotFound
		}
		key = sub
	}
	return key.AddRef(), nil
}

// allocFailure is a test-only fault injector for simulating the
// allocation failures the source's mem_alloc/realloc can hit
// (spec.md §8 scenario S3). Production code never sets it, so
// CreateKey never fails this way outside of tests.
var allocFailure func() bool

// CreateKey walks path from base, creating any missing components
// (create_key). It returns the terminal key, whether it was newly
// created, and an error. On partial failure the entire subtree rooted at
// the first newly allocated segment is rolled back, leaving the tree in
// its pre-call state (spec.md §7's partial-failure semantics).
func CreateKey(base *Key, path string, class *string, options types.CreateOptions, currentLevel int, now time.Time) (key *Key, created bool, err error) {
	if base.Flags.Has(Deleted) {
		return nil, false, types.ErrKeyDeleted
	}

	var flags Flags
	if options&types.OptionVolatile != 0 {
		flags |= Volatile
	} else if base.Flags.Has(Volatile) {
		return nil, false, types.ErrChildMustBeVolatile
	}

	cur := base
	tok := wstr.NewPathTokenizer(path)
	name, ok := tok.Next()
	for ok {
		sub, index := cur.findSubkey(name)
		if sub != nil {
			cur = sub
			name, ok = tok.Next()
			continue
		}

		// The remaining tokens must all be freshly allocated. If the very
		// first allocation fails, nothing has been created yet and we
		// simply report the error. If a later one fails, the subtree
		// rooted at this first segment (anchor/anchorIndex) is rolled
		// back, leaving the tree in its pre-call state.
		if allocFailure != nil && allocFailure() {
			return nil, false, types.ErrOutOfMemory
		}
		anchor, anchorIndex := cur, index
		child := cur.allocSubkey(name, index, currentLevel, now)
		child.Flags |= flags
		cur = child
		name, ok = tok.Next()

		for ok {
			if allocFailure != nil && allocFailure() {
				anchor.freeSubkey(anchorIndex)
				return nil, false, types.ErrOutOfMemory
			}
			// A freshly created key is always empty, so every
			// subsequent child lands at index 0.
			child = cur.allocSubkey(name, 0, currentLevel, now)
			child.Flags |= flags
			cur = child
			name, ok = tok.Next()
		}

		if class != nil {
			c := *class
			cur.Class = &c
		}
		return cur.AddRef(), true, nil
	}

	// The whole path already existed: tie-break per spec.md §4.3, the
	// terminal key's class is overwritten unconditionally.
	if class != nil {
		c := *class
		cur.Class = &c
	}
	return cur.AddRef(), false, nil
}

// DeleteKey deletes base itself (a path with no components, such as "")
// or the key named by path beneath it (delete_key). Fails with
// ErrAccessDenied if the target is a root or still has subkeys, or
// ErrKeyDeleted if it is already deleted.
func DeleteKey(base *Key, path string, now time.Time) error {
	var parent, target *Key
	var index int

	if !wstr.NewPathTokenizer(path).Remaining() {
		if base.Flags.Has(Root) {
			return types.ErrAccessDenied
		}
		if base.Parent == nil || base.Flags.Has(Deleted) {
			return types.ErrKeyDeleted
		}
		parent = base.Parent
		target = base
		_, index = parent.findSubkey(base.Name)
	} else {
		if base.Flags.Has(Deleted) {
			return types.ErrKeyDeleted
		}
		cur := base
		tok := wstr.NewPathTokenizer(path)
		name, ok := tok.Next()
		for ok {
			sub, idx := cur.findSubkey(name)
			if sub == nil {
				return types.ErrNotFound
			}
			if sub.Flags.Has(Deleted) {
				return types.ErrKeyDeleted
			}
			next, ok2 := tok.Next()
			if !ok2 {
				parent, target, index = cur, sub, idx
				break
			}
			cur = sub
			name, ok = next, ok2
		}
	}

	if target.Flags.Has(Root) || target.SubkeyCount() > 0 {
		return types.ErrAccessDenied
	}

	parent.freeSubkey(index)
	parent.touch(parent.Level, now)
	return nil
}

// EnumKey reports the name, class and modification time of the index'th
// subkey of parent, or ErrNoMoreItems once index is out of range
// (enum_key).
func EnumKey(parent *Key, index int) (name string, class string, modif time.Time, err error) {
	if index < 0 || index >= parent.SubkeyCount() {
		return "", "", time.Time{}, types.ErrNoMoreItems
	}
	k := parent.SubkeyAt(index)
	if k.Class != nil {
		class = *k.Class
	}
	return k.Name, class, k.Modif, nil
}

// KeyQueryInfo is the result of QueryKey: counts, maxima and metadata
// (query_key_info_request in the source).
type KeyQueryInfo struct {
	Subkeys   int
	MaxSubkey int
	MaxClass  int
	Values    int
	MaxValue  int
	MaxData   int
	Modif     time.Time
	Class     string
}

// QueryKey computes the counts and maxima of spec.md §4.3. The maxima
// loop intentionally omits the final subkey/value, `i < last_subkey` and
// `i < last_value` in the source: spec.md §9 flags this as ambiguous and
// asks implementations to pick a bound explicitly rather than guess, so
// this mirrors the original bound exactly.
func QueryKey(k *Key) KeyQueryInfo {
	info := KeyQueryInfo{
		Subkeys: k.SubkeyCount(),
		Values:  k.ValueCount(),
		Modif:   k.Modif,
	}
	if k.Class != nil {
		info.Class = *k.Class
	}
	for i := 0; i < k.SubkeyCount()-1; i++ {
		sub := k.SubkeyAt(i)
		if n := len(wstr.FromString(sub.Name)); n > info.MaxSubkey {
			info.MaxSubkey = n
		}
		if sub.Class == nil {
			continue
		}
		if n := len(wstr.FromString(*sub.Class)); n > info.MaxClass {
			info.MaxClass = n
		}
	}
	for i := 0; i < k.ValueCount()-1; i++ {
		v := k.ValueAt(i)
		if n := len(wstr.FromString(v.Name)); n > info.MaxValue {
			info.MaxValue = n
		}
		if len(v.Data) > info.MaxData {
			info.MaxData = len(v.Data)
		}
	}
	return info
}
