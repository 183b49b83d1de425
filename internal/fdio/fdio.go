// Package fdio adopts the file descriptors the external handle manager
// hands back from get_read_fd/get_write_fd into buffered Go streams, and
// durably flushes a write descriptor before its Close returns. Grounded
// on hive/dirty's platform-specific flush wiring, retargeted from
// memory-mapped hive bins to a single adopted descriptor.
package fdio

import (
	"bufio"
	"io"
	"os"
)

// AdoptReader wraps an externally-owned read descriptor (get_read_fd) in
// a buffered io.ReadCloser. Closing it closes the underlying descriptor.
func AdoptReader(fd int) io.ReadCloser {
	f := os.NewFile(uintptr(fd), "registry-read-fd")
	return &readCloser{r: bufio.NewReader(f), f: f}
}

type readCloser struct {
	r *bufio.Reader
	f *os.File
}

func (rc *readCloser) Read(p []byte) (int, error) { return rc.r.Read(p) }
func (rc *readCloser) Close() error                { return rc.f.Close() }

// AdoptWriter wraps an externally-owned write descriptor (get_write_fd)
// in a buffered io.WriteCloser. Close flushes the buffer, fsyncs the
// descriptor via the platform-specific durableSync, and closes it —
// the save path never reports success while data still sits unflushed
// in a page cache.
func AdoptWriter(fd int) io.WriteCloser {
	f := os.NewFile(uintptr(fd), "registry-write-fd")
	return &writeCloser{w: bufio.NewWriter(f), f: f}
}

type writeCloser struct {
	w *bufio.Writer
	f *os.File
}

func (wc *writeCloser) Write(p []byte) (int, error) { return wc.w.Write(p) }

func (wc *writeCloser) Close() error {
	if err := wc.w.Flush(); err != nil {
		wc.f.Close()
		return err
	}
	if err := durableSync(int(wc.f.Fd())); err != nil {
		wc.f.Close()
		return err
	}
	return wc.f.Close()
}
