// Package roots implements the fixed root-key table: the well-known
// top-level pseudo-keys every handle resolution bottoms out at, lazily
// constructed on first demand and torn down wholesale at shutdown.
// Grounded on create_root_key/get_hkey_obj in server/registry.c.
package roots

import (
	"time"

	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/pkg/types"
)

// Well-known root handles, matching the original server's HKEY_* constant
// values so a handle manager and this table agree on which small integers
// never consume a real handle slot.
// The values are int32(0x80000000+n): Handle is a signed 32-bit type, so
// the high bit that marks a well-known root renders as a negative number
// rather than overflowing.
const (
	HKEYClassesRoot   types.Handle = -0x80000000
	HKEYCurrentUser   types.Handle = -0x80000000 + 1
	HKEYLocalMachine  types.Handle = -0x80000000 + 2
	HKEYUsers         types.Handle = -0x80000000 + 3
	HKEYPerformance   types.Handle = -0x80000000 + 4
	HKEYCurrentConfig types.Handle = -0x80000000 + 5
	HKEYDynData       types.Handle = -0x80000000 + 6

	HKEYRootFirst = HKEYClassesRoot
	HKEYRootLast  = HKEYDynData
)

// names labels each slot for codec path emission (dump_path's root-name
// table): the human label a key path renders when its topmost ancestor
// is one of these roots.
var names = map[types.Handle]string{
	HKEYClassesRoot:   "HKEY_CLASSES_ROOT",
	HKEYCurrentUser:   "HKEY_CURRENT_USER",
	HKEYLocalMachine:  "HKEY_LOCAL_MACHINE",
	HKEYUsers:         "HKEY_USERS",
	HKEYPerformance:   "HKEY_PERFORMANCE_DATA",
	HKEYCurrentConfig: "HKEY_CURRENT_CONFIG",
	HKEYDynData:       "HKEY_DYN_DATA",
}

// Label returns the root's human-readable name for path dumping, or
// ("", false) if hkey does not name a root.
func Label(hkey types.Handle) (string, bool) {
	n, ok := names[hkey]
	return n, ok
}

// handleByName is the reverse of names, used to recognize a root's
// label as the leading component of a loaded keyblock path.
var handleByName = map[string]types.Handle{
	"HKEY_CLASSES_ROOT":     HKEYClassesRoot,
	"HKEY_CURRENT_USER":     HKEYCurrentUser,
	"HKEY_LOCAL_MACHINE":    HKEYLocalMachine,
	"HKEY_USERS":            HKEYUsers,
	"HKEY_PERFORMANCE_DATA": HKEYPerformance,
	"HKEY_CURRENT_CONFIG":   HKEYCurrentConfig,
	"HKEY_DYN_DATA":         HKEYDynData,
}

// ByName looks up a root's well-known handle by its label, for callers
// (such as a CLI) that take a root's name as user input rather than a
// handle value.
func ByName(name string) (types.Handle, bool) {
	hkey, ok := handleByName[name]
	return hkey, ok
}

// ResolveLabel is the inverse of LabelOf: given a root's human-readable
// name, lazily construct (if needed) and return its backing key. Used by
// the v2 loader to recognize an absolute root-prefixed path and anchor
// the load there instead of at the literal load target.
func (t *Table) ResolveLabel(name string, now time.Time) (*regtree.Key, bool) {
	hkey, ok := handleByName[name]
	if !ok {
		return nil, false
	}
	k, err := t.Get(hkey, now)
	if err != nil {
		return nil, false
	}
	return k, true
}

// IsRoot reports whether hkey falls within the well-known root range.
func IsRoot(hkey types.Handle) bool {
	return hkey >= HKEYRootFirst && hkey <= HKEYRootLast
}

// Table is the lazily-populated root array. The zero value is ready to
// use.
type Table struct {
	slots map[types.Handle]*regtree.Key
}

// NewTable returns an empty root table.
func NewTable() *Table {
	return &Table{slots: make(map[types.Handle]*regtree.Key)}
}

// Get resolves a well-known root handle to its backing key, constructing
// it on first demand, and returns a new reference (get_hkey_obj's
// root-table branch). hkey outside the root range is a programming
// error in the caller, not a user-facing one.
func (t *Table) Get(hkey types.Handle, now time.Time) (*regtree.Key, error) {
	if k, ok := t.slots[hkey]; ok {
		return k.AddRef(), nil
	}

	k, err := t.construct(hkey, now)
	if err != nil {
		return nil, err
	}
	t.slots[hkey] = k
	return k.AddRef(), nil
}

// construct builds the backing key for a root slot the first time it is
// referenced.
func (t *Table) construct(hkey types.Handle, now time.Time) (*regtree.Key, error) {
	switch hkey {
	case HKEYClassesRoot:
		// HKEY_CLASSES_ROOT aliases SOFTWARE\Classes under
		// HKEY_LOCAL_MACHINE, created if absent.
		hklm, err := t.Get(HKEYLocalMachine, now)
		if err != nil {
			return nil, err
		}
		defer hklm.Release()
		classes, _, err := regtree.CreateKey(hklm, `SOFTWARE\Classes`, nil, types.OptionNonVolatile, 0, now)
		if err != nil {
			return nil, err
		}
		return classes, nil
	case HKEYCurrentUser:
		// Stubbed to a freestanding anonymous root rather than
		// resolving to HKEY_USERS\<SID>; the original flags this
		// with a FIXME (see DESIGN.md).
		return regtree.NewRoot("", 0, now), nil
	default:
		return regtree.NewRoot("", 0, now), nil
	}
}

// LabelOf reverse-looks-up k against the populated slots and returns
// its registered root label, for use as a regtext.RootLabeler. Only the
// handful of populated root slots are scanned, so a linear search is
// simpler than maintaining a reverse index.
func (t *Table) LabelOf(k *regtree.Key) (string, bool) {
	for hkey, slot := range t.slots {
		if slot == k {
			return names[hkey], true
		}
	}
	return "", false
}

// Close releases every populated slot's reference exactly once, the Go
// analogue of the server's shutdown teardown loop over the root table.
func (t *Table) Close() {
	for hkey, k := range t.slots {
		k.Release()
		delete(t.slots, hkey)
	}
}
