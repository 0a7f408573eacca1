//go:build !aix && !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !solaris
// +build !aix,!darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd,!solaris

package blockdev

import "os"

// lockExclusive is a no-op on platforms without flock support.
func lockExclusive(f *os.File) error {
	return nil
}

// fstatSize reports that the raw Fstat alignment cross-check is
// unsupported on platforms without golang.org/x/sys/unix's Stat_t.
func fstatSize(f *os.File) (size int64, supported bool, err error) {
	return 0, false, nil
}
