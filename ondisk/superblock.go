package ondisk

import "encoding/binary"

// Superblock is the volume-wide metadata block, always at block index 0.
type Superblock struct {
	FreeHead  uint32 // head of the free-block list; 0 = empty
	InodeHead uint32 // head of the inode list; 0 = empty
	MaxFiles  uint32 // maximum number of files this volume supports
}

// EncodeSuperblock renders s into a fresh BlockSize-byte buffer.
func EncodeSuperblock(s Superblock) []byte {
	b := make([]byte, BlockSize)
	b[0] = TypeSuper
	b[1] = Magic
	binary.LittleEndian.PutUint32(b[superFreeHeadOffset:], s.FreeHead)
	binary.LittleEndian.PutUint32(b[superInodeHeadOffset:], s.InodeHead)
	binary.LittleEndian.PutUint32(b[superMaxFilesOffset:], s.MaxFiles)
	return b
}

// DecodeSuperblock validates and parses a BlockSize-byte buffer as a
// Superblock.
func DecodeSuperblock(b []byte) (Superblock, error) {
	if err := checkHeader(b, TypeSuper); err != nil {
		return Superblock{}, err
	}
	return Superblock{
		FreeHead:  binary.LittleEndian.Uint32(b[superFreeHeadOffset:]),
		InodeHead: binary.LittleEndian.Uint32(b[superInodeHeadOffset:]),
		MaxFiles:  binary.LittleEndian.Uint32(b[superMaxFilesOffset:]),
	}, nil
}
