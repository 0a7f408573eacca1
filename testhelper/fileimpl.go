// Package testhelper provides fakes for exercising the core packages
// without touching the filesystem, mirroring the upstream project's
// stub-out-the-file approach for unit tests.
package testhelper

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/tinyfs/tinyfs/backend"
)

// MemBackend is an in-memory backend.Storage backed by a plain byte slice,
// used to unit test blockdev.Registry and the volume manager without
// creating real files on disk.
type MemBackend struct {
	Bytes  []byte
	closed bool
}

var _ backend.Storage = (*MemBackend)(nil)

// NewMemBackend returns a zero-filled in-memory backend of the given size.
func NewMemBackend(size int64) *MemBackend {
	return &MemBackend{Bytes: make([]byte, size)}
}

func (m *MemBackend) Stat() (fs.FileInfo, error) {
	return memFileInfo{size: int64(len(m.Bytes))}, nil
}

func (m *MemBackend) Read(b []byte) (int, error) {
	return m.ReadAt(b, 0)
}

func (m *MemBackend) Close() error {
	m.closed = true
	return nil
}

func (m *MemBackend) ReadAt(b []byte, offset int64) (int, error) {
	if m.closed {
		return 0, fmt.Errorf("read on closed MemBackend")
	}
	if offset < 0 || offset > int64(len(m.Bytes)) {
		return 0, fmt.Errorf("offset %d out of range", offset)
	}
	n := copy(b, m.Bytes[offset:])
	return n, nil
}

func (m *MemBackend) WriteAt(b []byte, offset int64) (int, error) {
	if m.closed {
		return 0, fmt.Errorf("write on closed MemBackend")
	}
	if offset < 0 || offset+int64(len(b)) > int64(len(m.Bytes)) {
		return 0, fmt.Errorf("write at %d of %d bytes exceeds backend size %d", offset, len(b), len(m.Bytes))
	}
	n := copy(m.Bytes[offset:], b)
	return n, nil
}

func (m *MemBackend) Seek(offset int64, whence int) (int64, error) {
	return 0, fmt.Errorf("MemBackend does not implement Seek()")
}

func (m *MemBackend) Sys() (*os.File, error) {
	return nil, backend.ErrNotSuitable
}

func (m *MemBackend) Writable() (backend.WritableFile, error) {
	return m, nil
}

type memFileInfo struct {
	size int64
}

func (i memFileInfo) Name() string      { return "membackend" }
func (i memFileInfo) Size() int64       { return i.size }
func (i memFileInfo) Mode() fs.FileMode { return 0o600 }
func (i memFileInfo) ModTime() time.Time { return time.Time{} }
func (i memFileInfo) IsDir() bool       { return false }
func (i memFileInfo) Sys() interface{}  { return nil }
