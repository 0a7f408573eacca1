package tinyfs

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tinyfs/tinyfs/ondisk"
)

// FileInfo is the human-readable shape of an inode: name, size, and the
// three timestamps, returned by Stat.
type FileInfo struct {
	Name     string
	Size     uint32
	Created  time.Time
	Modified time.Time
	Accessed time.Time
}

// Open finds or creates the named file and returns a new descriptor for
// it. Opening a file that is already open on another descriptor fails.
func (v *Volume) Open(name string) (int, error) {
	if v.registry == nil {
		return -1, &NotMountedError{}
	}
	if len(name) > MaxNameLen {
		return -1, &NameTooLongError{Name: name}
	}

	fd := v.lowestFreeFD()
	if fd < 0 {
		return -1, &NoDescriptorsError{}
	}

	block, err := v.findInode(name)
	if err != nil {
		return -1, err
	}

	now := ondisk.Now()
	if block != 0 {
		if v.isOpen(block) {
			return -1, &AlreadyOpenError{Name: name}
		}
		n, err := v.readInode(block)
		if err != nil {
			return -1, err
		}
		n.Accessed = now
		if err := v.writeInode(block, n); err != nil {
			return -1, err
		}
	} else {
		block, err = v.createInode(name, now)
		if err != nil {
			return -1, err
		}
	}

	v.fds[fd] = &descriptor{inodeBlock: block, pointer: 0}
	v.log.WithFields(logrus.Fields{"fd": fd, "name": name}).Debug("opened file")
	return fd, nil
}

// createInode pops a free block, reformats it as a fresh inode, and
// splices it onto the head of the inode list.
func (v *Volume) createInode(name string, now time.Time) (uint32, error) {
	block, err := v.allocate()
	if err != nil {
		return 0, err
	}

	// Re-read the superblock after allocate's own read-modify-write of
	// FreeHead, so this splice doesn't write back a stale FreeHead over
	// the one allocate just persisted.
	super, err := v.readSuperblock()
	if err != nil {
		return 0, err
	}

	n := ondisk.Inode{
		Next:     super.InodeHead,
		Size:     0,
		DataHead: 0,
		Name:     name,
		Created:  now,
		Modified: now,
		Accessed: now,
	}
	if err := v.writeInode(block, n); err != nil {
		return 0, err
	}

	super.InodeHead = block
	if err := v.writeSuperblock(super); err != nil {
		return 0, err
	}
	return block, nil
}

func (v *Volume) descriptorFor(fd int) (*descriptor, error) {
	if fd < 0 || fd >= len(v.fds) || v.fds[fd] == nil {
		return nil, &BadDescriptorError{FD: fd}
	}
	return v.fds[fd], nil
}

// Close releases a descriptor. There is no on-disk effect.
func (v *Volume) Close(fd int) error {
	if v.registry == nil {
		return &NotMountedError{}
	}
	if _, err := v.descriptorFor(fd); err != nil {
		return err
	}
	v.fds[fd] = nil
	return nil
}

// Write replaces a file's entire contents with data and resets the file
// pointer to 0.
//
// If the free list is exhausted partway through, the blocks successfully
// written so far are persisted and an error is returned: no partial
// operation is unwound.
func (v *Volume) Write(fd int, data []byte) error {
	if v.registry == nil {
		return &NotMountedError{}
	}
	d, err := v.descriptorFor(fd)
	if err != nil {
		return err
	}

	n, err := v.readInode(d.inodeBlock)
	if err != nil {
		return err
	}

	if err := v.deallocateChain(n.DataHead); err != nil {
		return err
	}
	n.DataHead = 0
	n.Size = 0

	// The file pointer resets to 0 unconditionally, even if the write
	// below fails partway through from an exhausted free list.
	d.pointer = 0

	blocksNeeded := 0
	if len(data) > 0 {
		blocksNeeded = (len(data) + DataPayloadSize - 1) / DataPayloadSize
	}

	written := 0
	var head, prev uint32
	for i := 0; i < blocksNeeded; i++ {
		block, allocErr := v.allocate()
		if allocErr != nil {
			// Partial progress: persist what we have and report the error.
			n.DataHead = head
			n.Size = uint32(written)
			n.Modified = ondisk.Now()
			_ = v.writeInode(d.inodeBlock, n)
			return allocErr
		}
		if i == 0 {
			head = block
		} else if err := v.linkDataBlock(prev, block); err != nil {
			return err
		}

		end := written + DataPayloadSize
		if end > len(data) {
			end = len(data)
		}
		if err := v.registry.WriteBlock(v.disk, int64(block), mustEncodeData(data[written:end], 0)); err != nil {
			return err
		}
		written = end
		prev = block
	}

	n.DataHead = head
	n.Size = uint32(written)
	n.Modified = ondisk.Now()
	return v.writeInode(d.inodeBlock, n)
}

// linkDataBlock rewrites block's Next pointer to point at next, preserving
// its existing payload.
func (v *Volume) linkDataBlock(block, next uint32) error {
	buf := make([]byte, BlockSize)
	if err := v.registry.ReadBlock(v.disk, int64(block), buf); err != nil {
		return err
	}
	data, err := ondisk.DecodeDataBlock(buf)
	if err != nil {
		return &InodeCorruptError{Block: block}
	}
	data.Next = next
	encoded, err := ondisk.EncodeDataBlock(data)
	if err != nil {
		return err
	}
	return v.registry.WriteBlock(v.disk, int64(block), encoded)
}

func mustEncodeData(payload []byte, next uint32) []byte {
	b, err := ondisk.EncodeDataBlock(ondisk.DataBlock{Next: next, Payload: payload})
	if err != nil {
		// payload is always <= DataPayloadSize here by construction.
		panic(err)
	}
	return b
}

// ReadByte reads exactly one byte from fd's current file pointer and
// advances the pointer by a relative Seek(fd, 1).
func (v *Volume) ReadByte(fd int) (byte, error) {
	if v.registry == nil {
		return 0, &NotMountedError{}
	}
	d, err := v.descriptorFor(fd)
	if err != nil {
		return 0, err
	}

	n, err := v.readInode(d.inodeBlock)
	if err != nil {
		return 0, err
	}
	if d.pointer < 0 || d.pointer >= int64(n.Size) {
		return 0, &EndOfFileError{FD: fd}
	}

	ordinal := int(d.pointer / DataPayloadSize)
	byteOffset := int(d.pointer % DataPayloadSize)

	block, err := v.dataBlockAt(n.DataHead, ordinal)
	if err != nil {
		return 0, err
	}
	if block == 0 {
		return 0, &InodeCorruptError{Block: d.inodeBlock}
	}

	buf := make([]byte, BlockSize)
	if err := v.registry.ReadBlock(v.disk, int64(block), buf); err != nil {
		return 0, err
	}
	data, err := ondisk.DecodeDataBlock(buf)
	if err != nil {
		return 0, &InodeCorruptError{Block: block}
	}

	result := data.Payload[byteOffset]

	n.Accessed = ondisk.Now()
	if err := v.writeInode(d.inodeBlock, n); err != nil {
		return 0, err
	}

	if _, err := v.Seek(fd, 1); err != nil {
		return 0, err
	}
	return result, nil
}

// Seek sets fd's file pointer to currentPointer + offset. This is
// relative, not absolute: there is no bounds check here against file
// size, since out-of-range pointers are simply refused later by
// ReadByte.
func (v *Volume) Seek(fd int, offset int64) (int64, error) {
	if v.registry == nil {
		return 0, &NotMountedError{}
	}
	d, err := v.descriptorFor(fd)
	if err != nil {
		return 0, err
	}
	d.pointer += offset
	return d.pointer, nil
}

// Delete removes fd's file: splices its inode out of the inode list,
// frees its data-extent chain and inode block, and closes the descriptor.
func (v *Volume) Delete(fd int) error {
	if v.registry == nil {
		return &NotMountedError{}
	}
	d, err := v.descriptorFor(fd)
	if err != nil {
		return err
	}

	if err := v.unlinkInode(d.inodeBlock); err != nil {
		return err
	}

	n, err := v.readInode(d.inodeBlock)
	if err != nil {
		return err
	}
	if err := v.deallocateChain(n.DataHead); err != nil {
		return err
	}
	if err := v.deallocate(d.inodeBlock); err != nil {
		return err
	}

	v.fds[fd] = nil
	return nil
}

// unlinkInode splices target out of the inode list, updating the
// superblock's inode head if target was the head, or the predecessor's
// Next otherwise.
func (v *Volume) unlinkInode(target uint32) error {
	super, err := v.readSuperblock()
	if err != nil {
		return err
	}

	if super.InodeHead == target {
		n, err := v.readInode(target)
		if err != nil {
			return err
		}
		super.InodeHead = n.Next
		return v.writeSuperblock(super)
	}

	prev := super.InodeHead
	for prev != 0 {
		n, err := v.readInode(prev)
		if err != nil {
			return err
		}
		if n.Next == target {
			targetInode, err := v.readInode(target)
			if err != nil {
				return err
			}
			n.Next = targetInode.Next
			return v.writeInode(prev, n)
		}
		prev = n.Next
	}
	return &InodeListInconsistentError{Reason: "target inode is not reachable from the inode list head"}
}

// Rename changes fd's file name. Fails when newName does not fit the
// usable name width.
func (v *Volume) Rename(fd int, newName string) error {
	if v.registry == nil {
		return &NotMountedError{}
	}
	d, err := v.descriptorFor(fd)
	if err != nil {
		return err
	}
	if len(newName) > MaxNameLen {
		return &NameTooLongError{Name: newName}
	}

	n, err := v.readInode(d.inodeBlock)
	if err != nil {
		return err
	}
	n.Name = newName
	n.Modified = ondisk.Now()
	return v.writeInode(d.inodeBlock, n)
}

// Readdir lists every file name in the volume, walking the inode list from
// the superblock's inode head.
func (v *Volume) Readdir() ([]string, error) {
	if v.registry == nil {
		return nil, &NotMountedError{}
	}
	super, err := v.readSuperblock()
	if err != nil {
		return nil, err
	}
	var names []string
	for block := super.InodeHead; block != 0; {
		n, err := v.readInode(block)
		if err != nil {
			return nil, err
		}
		names = append(names, n.Name)
		block = n.Next
	}
	return names, nil
}

// Stat returns fd's name, size, and timestamps, refreshing the accessed
// timestamp first.
func (v *Volume) Stat(fd int) (FileInfo, error) {
	if v.registry == nil {
		return FileInfo{}, &NotMountedError{}
	}
	d, err := v.descriptorFor(fd)
	if err != nil {
		return FileInfo{}, err
	}

	n, err := v.readInode(d.inodeBlock)
	if err != nil {
		return FileInfo{}, err
	}
	n.Accessed = ondisk.Now()
	if err := v.writeInode(d.inodeBlock, n); err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		Name:     n.Name,
		Size:     n.Size,
		Created:  n.Created,
		Modified: n.Modified,
		Accessed: n.Accessed,
	}, nil
}
