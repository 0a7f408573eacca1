//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package blockdev

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockExclusive takes a best-effort, advisory, non-blocking exclusive lock
// on f's file descriptor. Multi-process coordination is not required
// (concurrent access is an explicit non-goal), so a failure here is
// logged by the caller and never treated as fatal.
func lockExclusive(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
}

// fstatSize re-stats f via a raw Fstat syscall, cross-checking the size
// os.Stat already reported the way disk_unix.go cross-checks a device's
// mode with a second syscall rather than trusting a single stat result.
func fstatSize(f *os.File) (size int64, supported bool, err error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return 0, true, err
	}
	return st.Size, true, nil
}
