package regtree

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-compat/regsrv/pkg/types"
)

func newTestRoot() *Key {
	return NewRoot("", 0, time.Unix(0, 0))
}

// S1: enumerate two volatile subkeys created in order, in sorted order.
func TestCreateKeyAndEnumerate(t *testing.T) {
	hklm := newTestRoot()
	now := time.Unix(1000, 0)

	_, created, err := CreateKey(hklm, `A\B\C`, nil, types.OptionVolatile, 0, now)
	require.NoError(t, err)
	require.True(t, created)

	_, created, err = CreateKey(hklm, `A\B\D`, nil, types.OptionVolatile, 0, now)
	require.NoError(t, err)
	require.True(t, created)

	ab, err := OpenKey(hklm, `A\B`)
	require.NoError(t, err)

	name, _, _, err := EnumKey(ab, 0)
	require.NoError(t, err)
	require.Equal(t, "C", name)

	name, _, _, err = EnumKey(ab, 1)
	require.NoError(t, err)
	require.Equal(t, "D", name)

	_, _, _, err = EnumKey(ab, 2)
	require.ErrorIs(t, err, types.ErrNoMoreItems)
}

// S2: a non-volatile child under a volatile parent fails, and the parent
// gains no subkeys.
func TestChildMustBeVolatile(t *testing.T) {
	hklm := newTestRoot()
	now := time.Unix(0, 0)

	a, _, err := CreateKey(hklm, "A", nil, types.OptionVolatile, 0, now)
	require.NoError(t, err)

	_, _, err = CreateKey(a, "B", nil, types.OptionNonVolatile, 0, now)
	require.ErrorIs(t, err, types.ErrChildMustBeVolatile)
	require.Equal(t, 0, a.SubkeyCount())
}

// S3: an allocation failure partway through create_key rolls back the
// entire newly created subtree, leaving no trace.
func TestCreateKeyRollbackOnFailure(t *testing.T) {
	hklm := newTestRoot()
	now := time.Unix(0, 0)

	calls := 0
	allocFailure = func() bool {
		calls++
		return calls == 3 // fail on the third segment ("Z")
	}
	defer func() { allocFailure = nil }()

	_, _, err := CreateKey(hklm, `X\Y\Z`, nil, types.OptionNonVolatile, 0, now)
	require.ErrorIs(t, err, types.ErrOutOfMemory)

	_, found := hklm.FindSubkey("X")
	require.False(t, found, "no trace of X should remain after rollback")
	require.Equal(t, 0, hklm.SubkeyCount())
}

// S4: set/get/delete a DWORD value.
func TestValueLifecycle(t *testing.T) {
	hklm := newTestRoot()
	now := time.Unix(0, 0)
	k, _, err := CreateKey(hklm, "K", nil, types.OptionNonVolatile, 0, now)
	require.NoError(t, err)

	data := []byte{0xef, 0xbe, 0xad, 0xde}
	require.NoError(t, SetValue(k, "v", types.REG_DWORD, data, 0, now))

	typ, got, err := GetValue(k, "v")
	require.NoError(t, err)
	require.Equal(t, types.REG_DWORD, typ)
	require.Equal(t, data, got)

	require.NoError(t, DeleteValue(k, "v", 0, now))
	_, _, err = GetValue(k, "v")
	require.ErrorIs(t, err, types.ErrNotFound)
}

// P6: creating an existing path is idempotent.
func TestCreateKeyIdempotent(t *testing.T) {
	hklm := newTestRoot()
	now := time.Unix(0, 0)

	first, created, err := CreateKey(hklm, `A\B`, nil, types.OptionNonVolatile, 0, now)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := CreateKey(hklm, `A\B`, nil, types.OptionNonVolatile, 0, now)
	require.NoError(t, err)
	require.False(t, created)
	require.Same(t, first, second)
}

// P2: subkeys stay sorted when inserted in arbitrary order.
func TestSortedInvariant(t *testing.T) {
	hklm := newTestRoot()
	now := time.Unix(0, 0)
	names := []string{"delta", "Alpha", "charlie", "bravo", "echo"}
	for _, n := range names {
		_, _, err := CreateKey(hklm, n, nil, types.OptionNonVolatile, 0, now)
		require.NoError(t, err)
	}
	for i := 1; i < hklm.SubkeyCount(); i++ {
		require.Less(t, hklm.SubkeyAt(i-1).Name, hklm.SubkeyAt(i).Name, "case-insensitively sorted")
	}
}

// Deleting a key with subkeys, or a root key, is rejected.
func TestDeleteKeyAccessDenied(t *testing.T) {
	hklm := newTestRoot()
	now := time.Unix(0, 0)
	_, _, err := CreateKey(hklm, `P\C`, nil, types.OptionNonVolatile, 0, now)
	require.NoError(t, err)

	err = DeleteKey(hklm, "P", now)
	require.ErrorIs(t, err, types.ErrAccessDenied)

	err = DeleteKey(hklm, "", now)
	require.ErrorIs(t, err, types.ErrAccessDenied)
}

// After deletion, the key is flagged DELETED and unreachable via lookup,
// but a retained reference still observes the flag (P7).
func TestDeleteKeyObservesFlag(t *testing.T) {
	hklm := newTestRoot()
	now := time.Unix(0, 0)
	k, _, err := CreateKey(hklm, "Leaf", nil, types.OptionNonVolatile, 0, now)
	require.NoError(t, err)

	require.NoError(t, DeleteKey(hklm, "Leaf", now))
	require.True(t, k.Flags.Has(Deleted))
	require.Nil(t, k.Parent)

	_, found := hklm.FindSubkey("Leaf")
	require.False(t, found)
}

func TestArrayGrowthAndShrink(t *testing.T) {
	hklm := newTestRoot()
	now := time.Unix(0, 0)

	var names []string
	for i := 0; i < 40; i++ {
		names = append(names, fmt.Sprintf("K%02d", i))
	}
	for _, n := range names {
		_, _, err := CreateKey(hklm, n, nil, types.OptionNonVolatile, 0, now)
		require.NoError(t, err)
	}
	require.GreaterOrEqual(t, cap(hklm.subkeys.buf), 40)

	for _, n := range names {
		require.NoError(t, DeleteKey(hklm, n, now))
	}
	require.Equal(t, 0, hklm.SubkeyCount())
	require.LessOrEqual(t, cap(hklm.subkeys.buf), MinSubkeys*2)
}
