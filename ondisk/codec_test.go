package ondisk_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tinyfs/tinyfs/ondisk"
)

func TestSuperblockRoundTripAndOffsets(t *testing.T) {
	s := ondisk.Superblock{FreeHead: 2, InodeHead: 0, MaxFiles: 19}
	b := ondisk.EncodeSuperblock(s)
	require.Len(t, b, ondisk.BlockSize)
	require.Equal(t, byte(ondisk.TypeSuper), b[0])
	require.Equal(t, byte(ondisk.Magic), b[1])
	require.Equal(t, byte(2), b[2]) // little-endian, low byte first
	require.Equal(t, byte(19), b[10])

	got, err := ondisk.DecodeSuperblock(b)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestDecodeSuperblockRejectsBadMagic(t *testing.T) {
	b := ondisk.EncodeSuperblock(ondisk.Superblock{})
	b[1] = 0xFF
	_, err := ondisk.DecodeSuperblock(b)
	require.Error(t, err)
	var magicErr *ondisk.MagicError
	require.ErrorAs(t, err, &magicErr)
}

func TestInodeRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := ondisk.Inode{
		Next:     7,
		Size:     500,
		DataHead: 12,
		Name:     "file1",
		Created:  now,
		Modified: now,
		Accessed: now,
	}
	b, err := ondisk.EncodeInode(n)
	require.NoError(t, err)
	require.Equal(t, byte(ondisk.TypeInode), b[0])

	got, err := ondisk.DecodeInode(b)
	require.NoError(t, err)
	require.Equal(t, n.Name, got.Name)
	require.Equal(t, n.Size, got.Size)
	require.Equal(t, n.Next, got.Next)
	require.Equal(t, n.DataHead, got.DataHead)
	require.True(t, n.Created.Equal(got.Created))
}

func TestEncodeInodeRejectsNameTooLong(t *testing.T) {
	_, err := ondisk.EncodeInode(ondisk.Inode{Name: "123456789"}) // 9 bytes, no room for any terminator
	require.Error(t, err)
	var tooLong *ondisk.NameTooLongError
	require.ErrorAs(t, err, &tooLong)
}

func TestEncodeInodeAcceptsMaxLengthName(t *testing.T) {
	_, err := ondisk.EncodeInode(ondisk.Inode{Name: "12345678"}) // 8 bytes, the usable max
	require.NoError(t, err)
}

func TestDataBlockRoundTripAndShortTail(t *testing.T) {
	payload := []byte("hello world")
	b, err := ondisk.EncodeDataBlock(ondisk.DataBlock{Next: 9, Payload: payload})
	require.NoError(t, err)

	got, err := ondisk.DecodeDataBlock(b)
	require.NoError(t, err)
	require.EqualValues(t, 9, got.Next)
	require.Len(t, got.Payload, ondisk.DataPayloadSize)
	require.Equal(t, payload, got.Payload[:len(payload)])
	for _, x := range got.Payload[len(payload):] {
		require.Zero(t, x)
	}
}

func TestEncodeDataBlockRejectsOversizedPayload(t *testing.T) {
	_, err := ondisk.EncodeDataBlock(ondisk.DataBlock{Payload: make([]byte, ondisk.DataPayloadSize+1)})
	require.Error(t, err)
}

func TestFreeBlockRoundTrip(t *testing.T) {
	b := ondisk.EncodeFreeBlock(ondisk.FreeBlock{Next: 42})
	require.Equal(t, byte(ondisk.TypeFree), b[0])
	got, err := ondisk.DecodeFreeBlock(b)
	require.NoError(t, err)
	require.EqualValues(t, 42, got.Next)
}

func TestNameMatchesWithoutFullDecode(t *testing.T) {
	b, err := ondisk.EncodeInode(ondisk.Inode{Name: "main.c"})
	require.NoError(t, err)
	require.True(t, ondisk.NameMatches(b, "main.c"))
	require.False(t, ondisk.NameMatches(b, "main.cpp"))
}
