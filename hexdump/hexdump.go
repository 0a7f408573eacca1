// Package hexdump renders a classic hex+ASCII dump of a single block,
// colorized by the block's type tag so a reader can spot
// superblock/inode/data/free blocks at a glance.
package hexdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tinyfs/tinyfs/ondisk"
)

const bytesPerLine = 16

var typeColor = map[byte]*color.Color{
	ondisk.TypeSuper: color.New(color.FgCyan, color.Bold),
	ondisk.TypeInode: color.New(color.FgGreen, color.Bold),
	ondisk.TypeData:  color.New(color.FgYellow),
	ondisk.TypeFree:  color.New(color.FgHiBlack),
}

// Block writes a hex+ASCII dump of a single BlockSize-byte buffer to w,
// labeled with blockIndex and colorized by the buffer's type tag.
func Block(w io.Writer, blockIndex int64, b []byte) {
	c, ok := typeColor[b[0]]
	if !ok {
		c = color.New(color.FgRed)
	}
	c.Fprintf(w, "block %d (type %#02x)\n", blockIndex, b[0])

	for off := 0; off < len(b); off += bytesPerLine {
		end := off + bytesPerLine
		if end > len(b) {
			end = len(b)
		}
		line := b[off:end]

		hexParts := make([]string, bytesPerLine)
		for i := range hexParts {
			if i < len(line) {
				hexParts[i] = fmt.Sprintf("%02x", line[i])
			} else {
				hexParts[i] = "  "
			}
		}

		var ascii strings.Builder
		for _, by := range line {
			if by >= 0x20 && by < 0x7f {
				ascii.WriteByte(by)
			} else {
				ascii.WriteByte('.')
			}
		}

		fmt.Fprintf(w, "  %04x  %s  |%s|\n", off, strings.Join(hexParts, " "), ascii.String())
	}
}

// Volume writes a hex+ASCII dump of every block read via read, from block
// 0 to numBlocks-1.
func Volume(w io.Writer, numBlocks int64, read func(blockIndex int64) ([]byte, error)) error {
	for i := int64(0); i < numBlocks; i++ {
		b, err := read(i)
		if err != nil {
			return fmt.Errorf("reading block %d: %w", i, err)
		}
		Block(w, i, b)
	}
	return nil
}
