// Package tinyfs implements the volume manager: format, mount, unmount,
// and the per-descriptor file operations (open/close/read/write/seek/
// delete/rename/list) of the tiny block-structured filesystem. It encodes
// and decodes blocks through package ondisk, which does no I/O, and reads
// and writes them through package blockdev.
package tinyfs

import "github.com/tinyfs/tinyfs/ondisk"

// Configuration constants.
const (
	BlockSize       = ondisk.BlockSize
	DataPayloadSize = ondisk.DataPayloadSize
	Magic           = ondisk.Magic
	MaxNameLen      = ondisk.MaxNameLen

	// DefaultDiskSize is the conventional default volume size: 40 blocks.
	DefaultDiskSize = 40 * BlockSize

	// MaxBytes bounds how large a single volume this implementation will
	// format; it exists only to keep mkfs's size validation meaningful, not
	// because the format itself has a structural ceiling.
	MaxBytes = 1 << 30

	// minFormatBlocks is the fewest total blocks (including the
	// superblock) a volume may have. Since block 1 is never on the free
	// list, a volume of this size has one allocatable block: room for one
	// inode and no data.
	minFormatBlocks = 3
)
