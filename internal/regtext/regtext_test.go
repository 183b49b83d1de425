package regtext

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/pkg/types"
)

// P5: escape round-trip for arbitrary strings, across every delimiter
// choice used by the grammar.
func TestEscapeRoundTrip(t *testing.T) {
	samples := []string{
		"",
		"plain ascii",
		"héllo\n",
		"tab\ttab",
		"quote\"quote",
		"back\\slash",
		"bracket[bracket]end",
		"\x01\x1f control",
		"ÿĀ￿",
		"ÿf",  // 0xFF directly followed by a literal hex digit
		"\x011",    // 0x01 directly followed by a literal octal digit
	}
	for _, delims := range [][2]byte{strDelims, pathDelims} {
		for _, s := range samples {
			dumped := DumpStrW(s, delims)
			got, err := ParseStrW(dumped, delims)
			require.NoError(t, err, "dumped=%q", dumped)
			require.Equal(t, s, got)
		}
	}
}

// S6: a v1 header is rejected as not a registry file.
func TestLoadRejectsWrongHeader(t *testing.T) {
	root := regtree.NewRoot("", 0, time.Unix(0, 0))
	r := bytes.NewBufferString("WINE REGISTRY Version 1\n")
	_, err := Load(r, root, 0, time.Unix(0, 0), nil)
	require.ErrorIs(t, err, types.ErrNotRegistryFile)
	require.Equal(t, 0, root.SubkeyCount())
}

// P4/S5: save then reload reproduces the tree's name/type/data shape.
func TestSaveLoadRoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	root := regtree.NewRoot("", 0, now)

	app, _, err := regtree.CreateKey(root, `Soft\App`, nil, types.OptionNonVolatile, 0, now)
	require.NoError(t, err)
	require.NoError(t, regtree.SetValue(app, "greet", types.REG_SZ, []byte("héllo\n"), 0, now))
	require.NoError(t, regtree.SetValue(app, "", types.REG_DWORD, []byte{0xef, 0xbe, 0xad, 0xde}, 0, now))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, root, 0, nil))

	reloaded := regtree.NewRoot("", 0, now)
	lineErrs, err := Load(&buf, reloaded, 0, now, nil)
	require.NoError(t, err)
	require.Empty(t, lineErrs)

	reApp, err := regtree.OpenKey(reloaded, `Soft\App`)
	require.NoError(t, err)

	typ, data, err := regtree.GetValue(reApp, "greet")
	require.NoError(t, err)
	require.Equal(t, types.REG_SZ, typ)
	require.Equal(t, "héllo\n", string(data))

	typ, data, err = regtree.GetValue(reApp, "")
	require.NoError(t, err)
	require.Equal(t, types.REG_DWORD, typ)
	require.Equal(t, []byte{0xef, 0xbe, 0xad, 0xde}, data)
}

// Volatile keys never appear in the saved output.
func TestSaveSkipsVolatile(t *testing.T) {
	now := time.Unix(0, 0)
	root := regtree.NewRoot("", 0, now)
	_, _, err := regtree.CreateKey(root, "Temp", nil, types.OptionVolatile, 0, now)
	require.NoError(t, err)
	_, _, err = regtree.CreateKey(root, "Perm", nil, types.OptionNonVolatile, 0, now)
	require.NoError(t, err)
	require.NoError(t, regtree.SetValue(mustOpen(t, root, "Perm"), "v", types.REG_SZ, []byte("x"), 0, now))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, root, 0, nil))
	require.NotContains(t, buf.String(), "Temp")
	require.Contains(t, buf.String(), "Perm")
}

func mustOpen(t *testing.T, base *regtree.Key, path string) *regtree.Key {
	t.Helper()
	k, err := regtree.OpenKey(base, path)
	require.NoError(t, err)
	return k
}

func TestDumpValueTypes(t *testing.T) {
	require.Equal(t, `"hi"`, dumpValue(types.REG_SZ, []byte("hi")))
	require.Equal(t, "dword:deadbeef", dumpValue(types.REG_DWORD, []byte{0xef, 0xbe, 0xad, 0xde}))
	require.Equal(t, "hex:01,02,ff", dumpValue(types.REG_BINARY, []byte{1, 2, 0xff}))
}
