package tinyfs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tinyfs/tinyfs"
	"github.com/tinyfs/tinyfs/blockdev"
)

// TestDemoWalkthrough runs an end-to-end sequence: format, mount, open
// several files, write and read one back byte by byte, rename, delete,
// and list.
func TestDemoWalkthrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.dsk")
	reg := blockdev.NewRegistry(nil)

	require.NoError(t, tinyfs.Mkfs(reg, path, tinyfs.DefaultDiskSize))

	v, err := tinyfs.Mount(reg, path, nil)
	require.NoError(t, err)
	defer v.Unmount()

	fds := make(map[string]int)
	for _, name := range []string{"readme", "notes", "todo"} {
		fd, err := v.Open(name)
		require.NoError(t, err)
		fds[name] = fd
	}

	require.NoError(t, v.Write(fds["notes"], []byte("remember the milk")))
	_, err = v.Seek(fds["notes"], 0)
	require.NoError(t, err)

	var readBack []byte
	for {
		b, err := v.ReadByte(fds["notes"])
		if err != nil {
			var eof *tinyfs.EndOfFileError
			require.ErrorAs(t, err, &eof)
			break
		}
		readBack = append(readBack, b)
	}
	require.Equal(t, "remember the milk", string(readBack))

	require.NoError(t, v.Rename(fds["todo"], "done"))

	require.NoError(t, v.Delete(fds["readme"]))

	listing, err := v.Readdir()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"notes", "done"}, listing)

	fd, err := v.Open("readme")
	require.NoError(t, err)
	require.Equal(t, fds["readme"], fd) // lowest free slot is reused
}

