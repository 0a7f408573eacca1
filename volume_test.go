package tinyfs_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tinyfs/tinyfs"
	"github.com/tinyfs/tinyfs/blockdev"
)

func newVolume(t *testing.T, size int64) (*tinyfs.Volume, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "t.dsk")
	reg := blockdev.NewRegistry(nil)
	require.NoError(t, tinyfs.Mkfs(reg, path, size))
	v, err := tinyfs.Mount(reg, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = v.Unmount() })
	return v, path
}

// TestMkfsSuperblockLayout checks the on-disk byte layout of a freshly
// formatted superblock.
func TestMkfsSuperblockLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.dsk")
	reg := blockdev.NewRegistry(nil)
	require.NoError(t, tinyfs.Mkfs(reg, path, 10240))

	handle, err := reg.Open(path, 0)
	require.NoError(t, err)
	defer reg.Close(handle)

	buf := make([]byte, blockdev.BlockSize)
	require.NoError(t, reg.ReadBlock(handle, 0, buf))
	require.Equal(t, byte(1), buf[0])
	require.Equal(t, byte(0x44), buf[1])
	require.Equal(t, byte(2), buf[2]) // free head = 2
	require.Equal(t, byte(0), buf[6]) // inode head = 0
	require.Equal(t, byte(19), buf[10]) // maxFiles = 19
}

func TestMkfsRejectsOutOfRangeSizes(t *testing.T) {
	reg := blockdev.NewRegistry(nil)
	err := tinyfs.Mkfs(reg, filepath.Join(t.TempDir(), "t.dsk"), 100)
	require.Error(t, err)
	var rangeErr *tinyfs.FormatRangeError
	require.ErrorAs(t, err, &rangeErr)
}

// TestOpenEightFilesAssignsSequentialDescriptors checks that descriptors
// are handed out in ascending order as files are opened.
func TestOpenEightFilesAssignsSequentialDescriptors(t *testing.T) {
	v, _ := newVolume(t, 10240)

	names := []string{"file1", "file2", "file3", "file4", "file5", "file6", "file7", "file8"}
	for i, name := range names {
		fd, err := v.Open(name)
		require.NoError(t, err)
		require.Equal(t, i, fd)
	}

	dir, err := v.Readdir()
	require.NoError(t, err)
	require.Len(t, dir, 8)
}

// TestWriteSeekReadByteRoundTrip writes a short string, checks with a
// zero relative seek that Write left the pointer at its start, and reads
// it back one byte at a time.
func TestWriteSeekReadByteRoundTrip(t *testing.T) {
	v, _ := newVolume(t, 10240)
	fd, err := v.Open("file1")
	require.NoError(t, err)

	content := "Iam sentiend!"
	require.NoError(t, v.Write(fd, []byte(content)))

	pos, err := v.Seek(fd, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0, pos)

	got := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		b, err := v.ReadByte(fd)
		require.NoError(t, err)
		got = append(got, b)
	}
	require.Equal(t, content, string(got))

	_, err = v.ReadByte(fd)
	require.Error(t, err)
	var eof *tinyfs.EndOfFileError
	require.ErrorAs(t, err, &eof)
}

// TestRewriteShrinksFileSize checks that overwriting a file with shorter
// content shrinks it: a read past the new, shorter size reports end of
// file.
func TestRewriteShrinksFileSize(t *testing.T) {
	v, _ := newVolume(t, 10240)
	fd, err := v.Open("file4")
	require.NoError(t, err)

	big := make([]byte, 169)
	for i := range big {
		big[i] = byte('a' + i%26)
	}
	require.NoError(t, v.Write(fd, big))

	require.NoError(t, v.Write(fd, []byte("abc")))

	_, err = v.Seek(fd, 5)
	require.NoError(t, err)
	_, err = v.ReadByte(fd)
	require.Error(t, err)
	var eof *tinyfs.EndOfFileError
	require.ErrorAs(t, err, &eof)
}

// TestRenameRejectsFullWidthNameAndUpdatesListing checks that an
// over-length new name is rejected and a valid one updates the listing.
func TestRenameRejectsFullWidthNameAndUpdatesListing(t *testing.T) {
	v, _ := newVolume(t, 10240)
	_, err := v.Open("file1")
	require.NoError(t, err)
	fd2, err := v.Open("file2")
	require.NoError(t, err)

	err = v.Rename(fd2, "mainfile.txt") // 12 bytes, too long
	require.Error(t, err)
	var tooLong *tinyfs.NameTooLongError
	require.ErrorAs(t, err, &tooLong)

	require.NoError(t, v.Rename(fd2, "main.c"))

	dir, err := v.Readdir()
	require.NoError(t, err)
	require.Contains(t, dir, "main.c")
	require.NotContains(t, dir, "file2")
}

// TestDeleteThenReopenReusesLowestDescriptor checks that the descriptor
// freed by Delete is handed back out by the next Open.
func TestDeleteThenReopenReusesLowestDescriptor(t *testing.T) {
	v, _ := newVolume(t, 10240)
	fd1, err := v.Open("file1")
	require.NoError(t, err)
	_, err = v.Open("file2")
	require.NoError(t, err)

	require.NoError(t, v.Delete(fd1))

	fd, err := v.Open("file1")
	require.NoError(t, err)
	require.Equal(t, fd1, fd)
}

func TestOpenTwiceWithoutCloseFails(t *testing.T) {
	v, _ := newVolume(t, 10240)
	_, err := v.Open("file1")
	require.NoError(t, err)

	_, err = v.Open("file1")
	require.Error(t, err)
	var alreadyOpen *tinyfs.AlreadyOpenError
	require.ErrorAs(t, err, &alreadyOpen)
}

func TestPersistenceAcrossUnmountMount(t *testing.T) {
	v, path := newVolume(t, 10240)
	fd, err := v.Open("file1")
	require.NoError(t, err)
	require.NoError(t, v.Write(fd, []byte("persisted")))
	require.NoError(t, v.Close(fd))
	require.NoError(t, v.Unmount())

	reg := blockdev.NewRegistry(nil)
	v2, err := tinyfs.Mount(reg, path, nil)
	require.NoError(t, err)
	defer v2.Unmount()

	dir, err := v2.Readdir()
	require.NoError(t, err)
	require.Contains(t, dir, "file1")

	fd2, err := v2.Open("file1")
	require.NoError(t, err)
	info, err := v2.Stat(fd2)
	require.NoError(t, err)
	require.EqualValues(t, len("persisted"), info.Size)
}

func TestOpenRejectsNameTooLong(t *testing.T) {
	v, _ := newVolume(t, 10240)
	_, err := v.Open("123456789") // 9 bytes
	require.Error(t, err)
	var tooLong *tinyfs.NameTooLongError
	require.True(t, errors.As(err, &tooLong))
}

// TestWriteExhaustingFreeListStillResetsPointer checks that a Write which
// fails partway through because the free list runs out still resets the
// file pointer to 0, even though the write itself did not fully succeed.
func TestWriteExhaustingFreeListStillResetsPointer(t *testing.T) {
	// 5 blocks: block 0 superblock, blocks 2-4 free (block 1 is the
	// permanently unreachable one), leaving only 2 usable data blocks
	// once the inode itself consumes one.
	v, _ := newVolume(t, 5*tinyfs.BlockSize)

	fd, err := v.Open("file1")
	require.NoError(t, err)

	require.NoError(t, v.Write(fd, []byte("abc")))

	_, err = v.Seek(fd, 3)
	require.NoError(t, err)

	big := make([]byte, 2*tinyfs.DataPayloadSize+1)
	big[0] = 'Z'
	err = v.Write(fd, big)
	require.Error(t, err)
	var noSpace *tinyfs.NoSpaceError
	require.True(t, errors.As(err, &noSpace))

	// If the pointer had not been reset, this would read from offset 3
	// instead of the written data's first byte.
	b, err := v.ReadByte(fd)
	require.NoError(t, err)
	require.Equal(t, byte('Z'), b)
}
