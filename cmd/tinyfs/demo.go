package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tinyfs/tinyfs"
	"github.com/tinyfs/tinyfs/blockdev"
)

// demoCmd runs an end-to-end walkthrough: mount or format, open eight
// files, write and read back file1, then list.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo <path>",
		Short: "Run the end-to-end mkfs/mount/open/write/read walkthrough",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := blockdev.NewRegistry(log)
			v, err := tinyfs.Mount(reg, args[0], log)
			if err != nil {
				log.WithError(err).Info("mount failed, formatting a new disk")
				if err := tinyfs.Mkfs(reg, args[0], tinyfs.DefaultDiskSize); err != nil {
					return err
				}
				v, err = tinyfs.Mount(reg, args[0], log)
				if err != nil {
					return err
				}
			}
			defer v.Unmount()
			fmt.Println("Initial mounting phase completed")

			fds := make([]int, 8)
			for i := range fds {
				fd, err := v.Open(fmt.Sprintf("file%d", i+1))
				if err != nil {
					return err
				}
				fds[i] = fd
			}
			fmt.Println("File descriptors:")
			fmt.Println(fds)

			const content = "Iam sentiend!"
			if err := v.Write(fds[0], []byte(content)); err != nil {
				return err
			}
			fmt.Printf("Wrote %q to file1\n", content)

			if _, err := v.Seek(fds[0], 0); err != nil {
				return err
			}
			b, err := v.ReadByte(fds[0])
			if err != nil {
				return err
			}
			fmt.Printf("Read first byte of file1: %c\n", b)

			names, err := v.Readdir()
			if err != nil {
				return err
			}
			fmt.Println("Files on volume:", names)

			return nil
		},
	}
}
