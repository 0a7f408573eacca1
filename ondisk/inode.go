package ondisk

import (
	"encoding/binary"
	"time"
)

// Inode is a per-file metadata block, chained into the volume's singly
// linked inode list.
type Inode struct {
	Next     uint32 // next inode block index; 0 = end of list
	Size     uint32 // file size in bytes
	DataHead uint32 // head of this file's data-extent chain; 0 = no data
	Name     string // at most MaxNameLen bytes
	Created  time.Time
	Modified time.Time
	Accessed time.Time
}

// EncodeInode renders n into a fresh BlockSize-byte buffer.
func EncodeInode(n Inode) ([]byte, error) {
	b := make([]byte, BlockSize)
	b[0] = TypeInode
	b[1] = Magic
	binary.LittleEndian.PutUint32(b[inodeNextOffset:], n.Next)
	binary.LittleEndian.PutUint32(b[inodeSizeOffset:], n.Size)
	binary.LittleEndian.PutUint32(b[inodeDataHeadOffset:], n.DataHead)
	if err := putName(b, inodeNameOffset, n.Name); err != nil {
		return nil, err
	}
	putTimestamp(b, inodeCreatedOffset, n.Created)
	putTimestamp(b, inodeModifiedOffset, n.Modified)
	putTimestamp(b, inodeAccessedOffset, n.Accessed)
	return b, nil
}

// DecodeInode validates and parses a BlockSize-byte buffer as an Inode.
func DecodeInode(b []byte) (Inode, error) {
	if err := checkHeader(b, TypeInode); err != nil {
		return Inode{}, err
	}
	created, err := getTimestamp(b, inodeCreatedOffset)
	if err != nil {
		return Inode{}, err
	}
	modified, err := getTimestamp(b, inodeModifiedOffset)
	if err != nil {
		return Inode{}, err
	}
	accessed, err := getTimestamp(b, inodeAccessedOffset)
	if err != nil {
		return Inode{}, err
	}
	return Inode{
		Next:     binary.LittleEndian.Uint32(b[inodeNextOffset:]),
		Size:     binary.LittleEndian.Uint32(b[inodeSizeOffset:]),
		DataHead: binary.LittleEndian.Uint32(b[inodeDataHeadOffset:]),
		Name:     getName(b, inodeNameOffset),
		Created:  created,
		Modified: modified,
		Accessed: accessed,
	}, nil
}

// NameMatches reports whether the name slot of b (a whole inode block
// buffer, read without a full decode) equals name.
// Used by the inode-list scan so it need not decode timestamps for every
// candidate.
func NameMatches(b []byte, name string) bool {
	return getName(b, inodeNameOffset) == name
}
