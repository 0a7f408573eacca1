package ondisk

import "encoding/binary"

// FreeBlock is one link in the volume's LIFO free-block list.
type FreeBlock struct {
	Next uint32 // next free block index; 0 = end
}

// EncodeFreeBlock renders f into a fresh, fully zeroed BlockSize-byte
// buffer: deallocation always clears a block's previous contents before
// re-typing it as free.
func EncodeFreeBlock(f FreeBlock) []byte {
	b := make([]byte, BlockSize)
	b[0] = TypeFree
	b[1] = Magic
	binary.LittleEndian.PutUint32(b[freeNextOffset:], f.Next)
	return b
}

// DecodeFreeBlock validates and parses a BlockSize-byte buffer as a
// FreeBlock.
func DecodeFreeBlock(b []byte) (FreeBlock, error) {
	if err := checkHeader(b, TypeFree); err != nil {
		return FreeBlock{}, err
	}
	return FreeBlock{Next: binary.LittleEndian.Uint32(b[freeNextOffset:])}, nil
}
