// Package fileinfo formats a tinyfs.FileInfo as human-readable text,
// writing to an io.Writer rather than always to stdout.
package fileinfo

import (
	"fmt"
	"io"

	"github.com/tinyfs/tinyfs"
)

// Print writes a human-readable rendering of info to w.
func Print(w io.Writer, info tinyfs.FileInfo) error {
	_, err := fmt.Fprintf(w,
		"name:     %s\nsize:     %d bytes\ncreated:  %s\nmodified: %s\naccessed: %s\n",
		info.Name, info.Size,
		info.Created.Format("2006-01-02 15:04:05"),
		info.Modified.Format("2006-01-02 15:04:05"),
		info.Accessed.Format("2006-01-02 15:04:05"),
	)
	return err
}
