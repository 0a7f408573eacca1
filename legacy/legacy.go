// Package legacy is a thin global-state shim over package tinyfs: one
// active disk, one descriptor table, integer return codes instead of Go
// errors. It exists so callers depending on the numeric-code contract
// stay working; new code should use package tinyfs directly.
package legacy

import (
	"fmt"

	"github.com/tinyfs/tinyfs"
	"github.com/tinyfs/tinyfs/blockdev"
)

var (
	registry = blockdev.NewRegistry(nil)
	active   *tinyfs.Volume
)

func codeOf(err error) int {
	if err == nil {
		return 1
	}
	if coder, ok := err.(interface{ Code() int }); ok {
		return coder.Code()
	}
	return -1
}

// Mkfs formats path as a fresh volume of nBytes. Returns 1 on success, a
// negative error code otherwise.
func Mkfs(path string, nBytes int) int {
	return codeOf(tinyfs.Mkfs(registry, path, int64(nBytes)))
}

// Mount mounts path as the single active disk. Returns 1 on success, a
// negative error code otherwise; the registry's disk handle is not
// returned.
func Mount(path string) int {
	if active != nil {
		return codeOf(&tinyfs.AlreadyMountedError{})
	}
	v, err := tinyfs.Mount(registry, path, nil)
	if err != nil {
		return codeOf(err)
	}
	active = v
	return 1
}

// Unmount releases the active disk. Returns 1 on success, negative
// otherwise.
func Unmount() int {
	if active == nil {
		return tinyfs.CodeNotMounted
	}
	err := active.Unmount()
	active = nil
	return codeOf(err)
}

// OpenFile opens or creates name on the active disk. Returns a descriptor
// >= 0 on success, negative otherwise.
func OpenFile(name string) int {
	if active == nil {
		return tinyfs.CodeNotMounted
	}
	fd, err := active.Open(name)
	if err != nil {
		return codeOf(err)
	}
	return fd
}

// CloseFile closes fd. Returns 1 / negative.
func CloseFile(fd int) int {
	if active == nil {
		return tinyfs.CodeNotMounted
	}
	return codeOf(active.Close(fd))
}

// WriteFile replaces fd's contents with buffer[:size]. Returns 1 / negative.
func WriteFile(fd int, buffer []byte, size int) int {
	if active == nil {
		return tinyfs.CodeNotMounted
	}
	if size > len(buffer) {
		size = len(buffer)
	}
	return codeOf(active.Write(fd, buffer[:size]))
}

// ReadByte reads one byte from fd into *outByte. Returns 1 / negative
// (end-of-file is negative).
func ReadByte(fd int, outByte *byte) int {
	if active == nil {
		return tinyfs.CodeNotMounted
	}
	b, err := active.ReadByte(fd)
	if err != nil {
		return codeOf(err)
	}
	*outByte = b
	return 1
}

// Seek advances fd's file pointer by offset (relative). Returns the new
// pointer / negative.
func Seek(fd int, offset int64) int64 {
	if active == nil {
		return int64(tinyfs.CodeNotMounted)
	}
	pos, err := active.Seek(fd, offset)
	if err != nil {
		return int64(codeOf(err))
	}
	return pos
}

// DeleteFile deletes fd's file. Returns 1 / negative.
func DeleteFile(fd int) int {
	if active == nil {
		return tinyfs.CodeNotMounted
	}
	return codeOf(active.Delete(fd))
}

// Rename renames fd's file. Returns 1 / negative.
func Rename(fd int, newName string) int {
	if active == nil {
		return tinyfs.CodeNotMounted
	}
	return codeOf(active.Rename(fd, newName))
}

// Readdir emits every file name on the active disk to stdout. Returns
// 1 / negative.
func Readdir() int {
	if active == nil {
		return tinyfs.CodeNotMounted
	}
	names, err := active.Readdir()
	if err != nil {
		return codeOf(err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return 1
}

// ReadFileInfo prints fd's name, size and timestamps to stdout. Returns
// 1 / negative.
func ReadFileInfo(fd int) int {
	if active == nil {
		return tinyfs.CodeNotMounted
	}
	info, err := active.Stat(fd)
	if err != nil {
		return codeOf(err)
	}
	fmt.Printf("%s\t%d\t%s\t%s\t%s\n", info.Name, info.Size, info.Created, info.Modified, info.Accessed)
	return 1
}
