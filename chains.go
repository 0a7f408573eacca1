package tinyfs

import "github.com/tinyfs/tinyfs/ondisk"

// allocate pops one block off the free list (LIFO: most recently freed is
// allocated next) and returns its index. Callers are responsible for
// re-typing the block's contents before anyone else can observe it.
func (v *Volume) allocate() (uint32, error) {
	super, err := v.readSuperblock()
	if err != nil {
		return 0, err
	}
	if super.FreeHead == 0 {
		return 0, &NoSpaceError{}
	}

	buf := make([]byte, BlockSize)
	if err := v.registry.ReadBlock(v.disk, int64(super.FreeHead), buf); err != nil {
		return 0, err
	}
	free, err := ondisk.DecodeFreeBlock(buf)
	if err != nil {
		return 0, &SuperblockCorruptError{Reason: "free list entry is not a valid free block"}
	}

	popped := super.FreeHead
	super.FreeHead = free.Next
	if err := v.writeSuperblock(super); err != nil {
		return 0, err
	}
	return popped, nil
}

// deallocate pushes a single block onto the free list: it becomes the
// new super.FreeHead (superblock written before the block itself).
func (v *Volume) deallocate(block uint32) error {
	super, err := v.readSuperblock()
	if err != nil {
		return err
	}
	priorHead := super.FreeHead
	super.FreeHead = block
	if err := v.writeSuperblock(super); err != nil {
		return err
	}
	return v.registry.WriteBlock(v.disk, int64(block), ondisk.EncodeFreeBlock(ondisk.FreeBlock{Next: priorHead}))
}

// deallocateChain frees every block in the singly linked data chain
// starting at head. Each block is read before being freed so its Next
// pointer can be recovered before the field is overwritten.
func (v *Volume) deallocateChain(head uint32) error {
	for head != 0 {
		buf := make([]byte, BlockSize)
		if err := v.registry.ReadBlock(v.disk, int64(head), buf); err != nil {
			return err
		}
		data, err := ondisk.DecodeDataBlock(buf)
		if err != nil {
			return &InodeCorruptError{Block: head}
		}
		next := data.Next
		if err := v.deallocate(head); err != nil {
			return err
		}
		head = next
	}
	return nil
}

// findInode walks the inode list from the superblock's inode head looking
// for name, returning the matching inode's block index, or 0 with no error
// if not found.
func (v *Volume) findInode(name string) (uint32, error) {
	super, err := v.readSuperblock()
	if err != nil {
		return 0, err
	}
	for block := super.InodeHead; block != 0; {
		buf := make([]byte, BlockSize)
		if err := v.registry.ReadBlock(v.disk, int64(block), buf); err != nil {
			return 0, err
		}
		if ondisk.NameMatches(buf, name) {
			return block, nil
		}
		n, err := ondisk.DecodeInode(buf)
		if err != nil {
			return 0, &InodeCorruptError{Block: block}
		}
		block = n.Next
	}
	return 0, nil
}

// dataBlockAt walks ordinal hops down the data chain starting at head and
// returns the block index found there, or 0 if the chain is shorter.
func (v *Volume) dataBlockAt(head uint32, ordinal int) (uint32, error) {
	block := head
	for i := 0; i < ordinal && block != 0; i++ {
		buf := make([]byte, BlockSize)
		if err := v.registry.ReadBlock(v.disk, int64(block), buf); err != nil {
			return 0, err
		}
		data, err := ondisk.DecodeDataBlock(buf)
		if err != nil {
			return 0, &InodeCorruptError{Block: block}
		}
		block = data.Next
	}
	return block, nil
}

// isOpen reports whether inodeBlock has a live descriptor referencing it.
func (v *Volume) isOpen(inodeBlock uint32) bool {
	for _, d := range v.fds {
		if d != nil && d.inodeBlock == inodeBlock {
			return true
		}
	}
	return false
}

// lowestFreeFD returns the smallest empty slot in the descriptor table, or
// -1 if full.
func (v *Volume) lowestFreeFD() int {
	for i, d := range v.fds {
		if d == nil {
			return i
		}
	}
	return -1
}
