package fdio

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdoptWriterThenReader(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "fdio")
	require.NoError(t, err)
	path := f.Name()

	w := AdoptWriter(int(f.Fd()))
	_, err = w.Write([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rf, err := os.Open(path)
	require.NoError(t, err)
	r := AdoptReader(int(rf.Fd()))
	defer r.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "hello world", string(got))
}
