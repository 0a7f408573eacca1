// Package blockdev implements the emulated block device layer: a registry
// that maps integer disk handles to backing host files and offers
// fixed-size block read/write with strict bounds checking. No block layout
// is interpreted here — that is the job of package ondisk and the volume
// manager above it.
package blockdev

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tinyfs/tinyfs/backend"
)

// BlockSize is the fixed size, in bytes, of every block on every volume.
const BlockSize = 256

// entry is one registry slot: a backing file plus its bookkeeping.
type entry struct {
	path      string
	size      int64
	numBlocks int64
	storage   backend.Storage
}

// Registry multiplexes several open disks by integer handle. Handles are
// positive, monotonically increasing, and never reused within the life of
// a Registry, mirroring the original C implementation's disk table.
type Registry struct {
	disks     map[int]*entry
	nextHandle int
	log        *logrus.Logger
}

// NewRegistry returns an empty registry. A nil logger falls back to
// logrus's standard logger, so callers never need to construct one just to
// silence logging.
func NewRegistry(log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		disks:      map[int]*entry{},
		nextHandle: 1,
		log:        log,
	}
}

// Open registers a backing file as a disk.
//
// If nBytes == 0, the file at path must already exist with a length that is
// a positive multiple of BlockSize; that length is adopted as-is.
//
// If nBytes > 0, path is truncate-created, nBytes is rounded down to a
// block multiple (failing if the rounded size is under one block), and the
// whole file is zero-filled.
func (r *Registry) Open(path string, nBytes int64) (int, error) {
	var (
		f    *os.File
		size int64
		err  error
	)

	if nBytes == 0 {
		f, size, err = openExisting(path)
	} else {
		f, size, err = createFresh(path, nBytes)
	}
	if err != nil {
		return -1, err
	}

	if fstatBytes, supported, ferr := fstatSize(f); ferr != nil {
		r.log.WithError(ferr).WithField("path", path).Debug("fstat alignment cross-check unavailable")
	} else if supported && (fstatBytes != size || fstatBytes%BlockSize != 0) {
		f.Close()
		return -1, &MisalignedSizeError{Path: path, Size: fstatBytes}
	}

	if err := lockExclusive(f); err != nil {
		r.log.WithError(err).WithField("path", path).Debug("advisory lock unavailable, continuing without it")
	}

	handle := r.nextHandle
	r.nextHandle++
	r.disks[handle] = &entry{
		path:      path,
		size:      size,
		numBlocks: size / BlockSize,
		storage:   &osBackend{f: f},
	}
	r.log.WithFields(logrus.Fields{"handle": handle, "path": path, "size": size}).Debug("opened disk")
	return handle, nil
}

func openExisting(path string) (*os.File, int64, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o600)
	if err != nil {
		return nil, 0, fmt.Errorf("opening backing file %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("statting backing file %s: %w", path, err)
	}
	size := info.Size()
	if size <= 0 || size%BlockSize != 0 {
		f.Close()
		return nil, 0, &MisalignedSizeError{Path: path, Size: size}
	}
	return f, size, nil
}

func createFresh(path string, nBytes int64) (*os.File, int64, error) {
	size := (nBytes / BlockSize) * BlockSize
	if size < BlockSize {
		return nil, 0, &TooSmallError{Requested: nBytes}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, 0, fmt.Errorf("creating backing file %s: %w", path, err)
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("truncating backing file %s to %d bytes: %w", path, size, err)
	}

	zero := make([]byte, BlockSize)
	for off := int64(0); off < size; off += BlockSize {
		if _, err := f.WriteAt(zero, off); err != nil {
			f.Close()
			return nil, 0, fmt.Errorf("zero-filling backing file %s at offset %d: %w", path, off, err)
		}
	}
	return f, size, nil
}

// RegisterBackend adopts an already-open backend.Storage as a disk, the way
// backend/file.New lets callers wrap an arbitrary fs.File. This is the seam
// tests use to exercise the registry and everything above it against an
// in-memory fake instead of a real file.
func (r *Registry) RegisterBackend(path string, storage backend.Storage, size int64) (int, error) {
	if size <= 0 || size%BlockSize != 0 {
		return -1, &MisalignedSizeError{Path: path, Size: size}
	}
	handle := r.nextHandle
	r.nextHandle++
	r.disks[handle] = &entry{
		path:      path,
		size:      size,
		numBlocks: size / BlockSize,
		storage:   storage,
	}
	return handle, nil
}

// Close closes the backing file for handle and removes it from the
// registry.
func (r *Registry) Close(handle int) error {
	e, ok := r.disks[handle]
	if !ok {
		return &UnknownDiskError{Handle: handle}
	}
	delete(r.disks, handle)
	if err := e.storage.Close(); err != nil {
		return fmt.Errorf("closing disk %d: %w", handle, err)
	}
	r.log.WithField("handle", handle).Debug("closed disk")
	return nil
}

// NumBlocks reports the addressable block count of handle.
func (r *Registry) NumBlocks(handle int) (int64, error) {
	e, ok := r.disks[handle]
	if !ok {
		return 0, &UnknownDiskError{Handle: handle}
	}
	return e.numBlocks, nil
}

// ReadBlock transfers exactly one block at blockIndex into out, which must
// be BlockSize bytes long.
func (r *Registry) ReadBlock(handle int, blockIndex int64, out []byte) error {
	e, err := r.boundsCheck(handle, blockIndex)
	if err != nil {
		return err
	}
	n, err := e.storage.ReadAt(out[:BlockSize], blockIndex*BlockSize)
	if err != nil {
		return fmt.Errorf("reading disk %d block %d: %w", handle, blockIndex, err)
	}
	if n != BlockSize {
		return &PartialTransferError{Handle: handle, BlockIndex: blockIndex, Got: n, Want: BlockSize}
	}
	return nil
}

// WriteBlock transfers exactly one block of in to blockIndex. in must be
// BlockSize bytes long.
func (r *Registry) WriteBlock(handle int, blockIndex int64, in []byte) error {
	e, err := r.boundsCheck(handle, blockIndex)
	if err != nil {
		return err
	}
	w, err := e.storage.Writable()
	if err != nil {
		return fmt.Errorf("writing disk %d block %d: %w", handle, blockIndex, err)
	}
	n, err := w.WriteAt(in[:BlockSize], blockIndex*BlockSize)
	if err != nil {
		return fmt.Errorf("writing disk %d block %d: %w", handle, blockIndex, err)
	}
	if n != BlockSize {
		return &PartialTransferError{Handle: handle, BlockIndex: blockIndex, Got: n, Want: BlockSize}
	}
	return nil
}

func (r *Registry) boundsCheck(handle int, blockIndex int64) (*entry, error) {
	e, ok := r.disks[handle]
	if !ok {
		return nil, &UnknownDiskError{Handle: handle}
	}
	if blockIndex < 0 || blockIndex >= e.numBlocks {
		return nil, &OutOfRangeError{Handle: handle, BlockIndex: blockIndex, NumBlocks: e.numBlocks}
	}
	return e, nil
}

// Path returns the backing file path registered for handle, used by
// external collaborators such as hosttime that need to stat the file
// directly.
func (r *Registry) Path(handle int) (string, error) {
	e, ok := r.disks[handle]
	if !ok {
		return "", &UnknownDiskError{Handle: handle}
	}
	return e.path, nil
}
