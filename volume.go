package tinyfs

import (
	"github.com/sirupsen/logrus"
	"github.com/tinyfs/tinyfs/blockdev"
	"github.com/tinyfs/tinyfs/ondisk"
)

// descriptor is one occupied slot in a Volume's file table: an inode block
// index plus a file pointer. A nil slot is empty.
type descriptor struct {
	inodeBlock uint32
	pointer    int64
}

// Volume is the encapsulated replacement for the original implementation's
// three process-wide globals (active disk, descriptor table, max files):
// every file operation takes a *Volume explicitly instead of reaching into
// shared state.
type Volume struct {
	registry  *blockdev.Registry
	disk      int
	maxFiles  uint32
	fds       []*descriptor
	log       *logrus.Logger
}

// Mkfs formats a fresh volume at path. nBytes is rounded down to a block
// multiple; the rounded size must fall in [3*BlockSize, MaxBytes] and leave
// room for at least one file.
func Mkfs(registry *blockdev.Registry, path string, nBytes int64) error {
	rounded := (nBytes / BlockSize) * BlockSize
	if rounded < minFormatBlocks*BlockSize || rounded > MaxBytes {
		return &FormatRangeError{Requested: nBytes}
	}

	handle, err := registry.Open(path, nBytes)
	if err != nil {
		return &NoBackingFileError{Path: path, Err: err}
	}
	defer registry.Close(handle)

	numBlocks, err := registry.NumBlocks(handle)
	if err != nil {
		return err
	}
	totalBlocks := numBlocks
	nonSuperBlocks := totalBlocks - 1
	maxFiles := nonSuperBlocks / 2
	if maxFiles < 1 {
		return &FormatRangeError{Requested: nBytes}
	}

	// Free-list head is seeded to block 2 even though the formatting loop
	// below tags block 1 as free too: block 1 is deliberately left
	// unreachable from the free list.
	super := ondisk.Superblock{FreeHead: 2, InodeHead: 0, MaxFiles: uint32(maxFiles)}
	if err := registry.WriteBlock(handle, 0, ondisk.EncodeSuperblock(super)); err != nil {
		return &FormatWriteError{Block: 0, Err: err}
	}

	for i := int64(1); i < totalBlocks; i++ {
		next := uint32(0)
		if i+1 < totalBlocks {
			next = uint32(i + 1)
		}
		if err := registry.WriteBlock(handle, i, ondisk.EncodeFreeBlock(ondisk.FreeBlock{Next: next})); err != nil {
			return &FormatWriteError{Block: uint32(i), Err: err}
		}
	}

	return nil
}

// Mount opens path as a block device and loads its superblock into an
// active Volume.
func Mount(registry *blockdev.Registry, path string, log *logrus.Logger) (*Volume, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	handle, err := registry.Open(path, 0)
	if err != nil {
		return nil, &NoBackingFileError{Path: path, Err: err}
	}

	buf := make([]byte, BlockSize)
	if err := registry.ReadBlock(handle, 0, buf); err != nil {
		registry.Close(handle)
		return nil, &BlockIOError{Block: 0, Err: err}
	}
	super, err := ondisk.DecodeSuperblock(buf)
	if err != nil {
		registry.Close(handle)
		return nil, &SuperblockCorruptError{Reason: err.Error()}
	}

	if err := validateBlocks(registry, handle); err != nil {
		registry.Close(handle)
		return nil, err
	}

	v := &Volume{
		registry: registry,
		disk:     handle,
		maxFiles: super.MaxFiles,
		fds:      make([]*descriptor, super.MaxFiles),
		log:      log,
	}
	v.log.WithFields(logrus.Fields{"path": path, "maxFiles": super.MaxFiles}).Debug("mounted volume")
	return v, nil
}

// validateBlocks walks every addressable block and checks its type tag and
// magic byte, stopping at the first unreadable block. It iterates while
// reads succeed, not while they fail.
func validateBlocks(registry *blockdev.Registry, handle int) error {
	numBlocks, err := registry.NumBlocks(handle)
	if err != nil {
		return err
	}
	buf := make([]byte, BlockSize)
	for i := int64(0); i < numBlocks; i++ {
		if err := registry.ReadBlock(handle, i, buf); err != nil {
			break
		}
		switch buf[0] {
		case ondisk.TypeSuper, ondisk.TypeInode, ondisk.TypeData, ondisk.TypeFree:
			if buf[1] != ondisk.Magic {
				return &SuperblockCorruptError{Reason: "block has invalid magic byte"}
			}
		default:
			return &SuperblockCorruptError{Reason: "block has unrecognized type tag"}
		}
	}
	return nil
}

// Unmount releases a Volume's descriptor table and closes its backing
// disk.
func (v *Volume) Unmount() error {
	if v.registry == nil {
		return &NotMountedError{}
	}
	for i := range v.fds {
		v.fds[i] = nil
	}
	err := v.registry.Close(v.disk)
	v.registry = nil
	return err
}

func (v *Volume) readSuperblock() (ondisk.Superblock, error) {
	buf := make([]byte, BlockSize)
	if err := v.registry.ReadBlock(v.disk, 0, buf); err != nil {
		return ondisk.Superblock{}, &BlockIOError{Block: 0, Err: err}
	}
	return ondisk.DecodeSuperblock(buf)
}

func (v *Volume) writeSuperblock(s ondisk.Superblock) error {
	if err := v.registry.WriteBlock(v.disk, 0, ondisk.EncodeSuperblock(s)); err != nil {
		return &BlockIOError{Block: 0, Err: err}
	}
	return nil
}

func (v *Volume) readInode(block uint32) (ondisk.Inode, error) {
	buf := make([]byte, BlockSize)
	if err := v.registry.ReadBlock(v.disk, int64(block), buf); err != nil {
		return ondisk.Inode{}, &BlockIOError{Block: block, Err: err}
	}
	n, err := ondisk.DecodeInode(buf)
	if err != nil {
		return ondisk.Inode{}, &InodeCorruptError{Block: block}
	}
	return n, nil
}

func (v *Volume) writeInode(block uint32, n ondisk.Inode) error {
	b, err := ondisk.EncodeInode(n)
	if err != nil {
		return err
	}
	if err := v.registry.WriteBlock(v.disk, int64(block), b); err != nil {
		return &BlockIOError{Block: block, Err: err}
	}
	return nil
}
