//go:build darwin

package fdio

import "golang.org/x/sys/unix"

// durableSync uses F_FULLFSYNC for power-loss durability, matching
// hive/dirty/flush_darwin.go: plain fsync on macOS does not guarantee
// the data reached the physical disk rather than the drive cache.
func durableSync(fd int) error {
	_, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0)
	return err
}
