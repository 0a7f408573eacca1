package main

import (
	"github.com/spf13/cobra"
	"github.com/tinyfs/tinyfs"
	"github.com/tinyfs/tinyfs/blockdev"
)

func mkfsCmd() *cobra.Command {
	var size int64

	cmd := &cobra.Command{
		Use:   "mkfs <path>",
		Short: "Format a fresh tinyfs volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := blockdev.NewRegistry(log)
			if err := tinyfs.Mkfs(reg, args[0], size); err != nil {
				return err
			}
			log.WithField("path", args[0]).Info("formatted volume")
			return nil
		},
	}
	cmd.Flags().Int64Var(&size, "size", tinyfs.DefaultDiskSize, "volume size in bytes, rounded down to a block multiple")
	return cmd
}

// mount opens and mounts path, returning the registry and volume so
// callers can defer the matching unmount/close.
func mount(path string) (*blockdev.Registry, *tinyfs.Volume, error) {
	reg := blockdev.NewRegistry(log)
	v, err := tinyfs.Mount(reg, path, log)
	if err != nil {
		return nil, nil, err
	}
	return reg, v, nil
}
