package regtextv1

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-compat/regsrv/internal/regtree"
	"github.com/go-compat/regsrv/pkg/types"
)

func TestEscape(t *testing.T) {
	require.Equal(t, `a\\b`, Escape(`a\b`))
	require.Equal(t, "a\\u003db", Escape("a=b"))
	require.Equal(t, `a\u000ab`, Escape("a\nb"))
	require.Equal(t, "h\\u00e9llo", Escape("héllo"))
}

func TestSaveSkipsVolatileAndBelowLevel(t *testing.T) {
	now := time.Unix(0, 0)
	root := regtree.NewRoot("", 5, now)
	_, _, err := regtree.CreateKey(root, "Temp", nil, types.OptionVolatile, 5, now)
	require.NoError(t, err)
	low, _, err := regtree.CreateKey(root, "Low", nil, types.OptionNonVolatile, 0, now)
	require.NoError(t, err)
	require.NoError(t, regtree.SetValue(low, "x", types.REG_SZ, []byte("y"), 0, now))
	high, _, err := regtree.CreateKey(root, "High", nil, types.OptionNonVolatile, 5, now)
	require.NoError(t, err)
	require.NoError(t, regtree.SetValue(high, "x", types.REG_DWORD, []byte{1, 0, 0, 0}, 5, now))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, root, 5))
	out := buf.String()
	require.NotContains(t, out, "Temp")
	require.NotContains(t, out, "Low")
	require.Contains(t, out, "High")
}

func TestValueLineFormat(t *testing.T) {
	now := time.Unix(0, 0)
	root := regtree.NewRoot("", 0, now)
	k, _, err := regtree.CreateKey(root, "K", nil, types.OptionNonVolatile, 0, now)
	require.NoError(t, err)
	require.NoError(t, regtree.SetValue(k, "v", types.REG_DWORD, []byte{0xef, 0xbe, 0xad, 0xde}, 0, now))

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, root, 0))
	require.True(t, strings.Contains(buf.String(), "v=4,0,efbeadde"))
}
