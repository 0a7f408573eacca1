package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tinyfs/tinyfs"
)

func catCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path> <name>",
		Short: "Print a file's contents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, v, err := mount(args[0])
			if err != nil {
				return err
			}
			defer v.Unmount()

			fd, err := v.Open(args[1])
			if err != nil {
				return err
			}
			defer v.Close(fd)

			for {
				b, err := v.ReadByte(fd)
				if err != nil {
					var eof *tinyfs.EndOfFileError
					if errors.As(err, &eof) {
						break
					}
					return err
				}
				fmt.Fprintf(os.Stdout, "%c", b)
			}
			fmt.Println()
			return nil
		},
	}
}
