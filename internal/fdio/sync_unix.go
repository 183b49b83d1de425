//go:build linux || freebsd

package fdio

import "golang.org/x/sys/unix"

// durableSync fsyncs fd's data before Close returns, the same
// Fdatasync wiring hive/dirty/flush_unix.go uses for hive bin flushing.
func durableSync(fd int) error {
	return unix.Fdatasync(fd)
}
