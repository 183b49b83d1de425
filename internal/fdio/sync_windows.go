//go:build windows

package fdio

import "golang.org/x/sys/windows"

// durableSync flushes the file's buffers to disk via FlushFileBuffers,
// matching hive/dirty/flush_windows.go's handle-based sync.
func durableSync(fd int) error {
	return windows.FlushFileBuffers(windows.Handle(fd))
}
