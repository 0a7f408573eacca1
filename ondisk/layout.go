// Package ondisk implements the byte-exact on-disk format: pure
// encode/decode functions over 256-byte block buffers. It performs no I/O
// of its own; the volume manager is the only caller, and it is the only
// caller of package blockdev.
package ondisk

import "fmt"

// Layout constants, byte-exact per the on-disk format.
const (
	BlockSize = 256
	Magic     = 0x44

	TypeSuper = 1
	TypeInode = 2
	TypeData  = 3
	TypeFree  = 4

	// NameSlotSize is the fixed width, in bytes, of an inode's name field.
	NameSlotSize = 9
	// MaxNameLen is the longest usable file name: one byte of the slot is
	// reserved so a full-width name is never ambiguous with a terminator.
	MaxNameLen = NameSlotSize - 1

	// TimestampSlotSize is the fixed width, in bytes, of each textual
	// timestamp field.
	TimestampSlotSize = 25
	// TimeLayout is the textual timestamp format written to disk.
	TimeLayout = "2006-01-02 15:04:05"

	// DataPayloadSize is the usable payload per data block.
	DataPayloadSize = BlockSize - 6

	superFreeHeadOffset  = 2
	superInodeHeadOffset = 6
	superMaxFilesOffset  = 10

	inodeNextOffset    = 2
	inodeSizeOffset    = 6
	inodeDataHeadOffset = 10
	inodeNameOffset    = 14
	inodeCreatedOffset = 23
	inodeModifiedOffset = 48
	inodeAccessedOffset = 73

	dataNextOffset    = 2
	dataPayloadOffset = 6

	freeNextOffset = 2
)

// TypeError is returned when a block carries an unexpected type tag.
type TypeError struct {
	Offset   int64
	Got      byte
	Expected byte
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("block at offset %d has type tag %#x, expected %#x", e.Offset, e.Got, e.Expected)
}

// MagicError is returned when a block's magic byte does not match Magic.
type MagicError struct {
	Offset int64
	Got    byte
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("block at offset %d has magic byte %#x, expected %#x", e.Offset, e.Got, byte(Magic))
}

// NameTooLongError is returned when a name does not fit in NameSlotSize-1
// usable bytes.
type NameTooLongError struct {
	Name string
}

func (e *NameTooLongError) Error() string {
	return fmt.Sprintf("name %q is %d bytes, longer than the %d-byte usable limit", e.Name, len(e.Name), MaxNameLen)
}

// checkHeader validates that b carries wantType at offset 0 and Magic at
// offset 1. len(b) must already be BlockSize; callers own that check.
func checkHeader(b []byte, wantType byte) error {
	if b[0] != wantType {
		return &TypeError{Got: b[0], Expected: wantType}
	}
	if b[1] != Magic {
		return &MagicError{Got: b[1]}
	}
	return nil
}

func putName(b []byte, offset int, name string) error {
	if len(name) > MaxNameLen {
		return &NameTooLongError{Name: name}
	}
	for i := 0; i < NameSlotSize; i++ {
		b[offset+i] = 0
	}
	copy(b[offset:offset+NameSlotSize], name)
	return nil
}

func getName(b []byte, offset int) string {
	slot := b[offset : offset+NameSlotSize]
	n := 0
	for n < len(slot) && slot[n] != 0 {
		n++
	}
	return string(slot[:n])
}
