package blockdev

import (
	"io/fs"
	"os"

	"github.com/tinyfs/tinyfs/backend"
)

// osBackend adapts a *os.File to backend.Storage, the way backend/file does
// for the upstream disk package.
type osBackend struct {
	f *os.File
}

var _ backend.Storage = (*osBackend)(nil)

func (b *osBackend) Stat() (fs.FileInfo, error) { return b.f.Stat() }
func (b *osBackend) Read(p []byte) (int, error) { return b.f.Read(p) }
func (b *osBackend) Close() error               { return b.f.Close() }

func (b *osBackend) ReadAt(p []byte, off int64) (int, error) { return b.f.ReadAt(p, off) }
func (b *osBackend) WriteAt(p []byte, off int64) (int, error) { return b.f.WriteAt(p, off) }

func (b *osBackend) Seek(offset int64, whence int) (int64, error) {
	return b.f.Seek(offset, whence)
}

func (b *osBackend) Sys() (*os.File, error) { return b.f, nil }

func (b *osBackend) Writable() (backend.WritableFile, error) { return b, nil }
