package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tinyfs/tinyfs/fileinfo"
	"github.com/tinyfs/tinyfs/hosttime"
)

func infoCmd() *cobra.Command {
	var hostTimes bool

	cmd := &cobra.Command{
		Use:   "info <path> <name>",
		Short: "Print a file's name, size and timestamps",
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

			info, err := v.Stat(fd)
			if err != nil {
				return err
			}
			if err := fileinfo.Print(os.Stdout, info); err != nil {
				return err
			}

			if hostTimes {
				ht, err := hosttime.Stat(args[0])
				if err != nil {
					return err
				}
				fields := map[string]interface{}{
					"host-modified": ht.Modified,
					"host-accessed": ht.Accessed,
				}
				if ht.HasCreated {
					fields["host-created"] = ht.Created
				}
				log.WithFields(fields).Info("backing file host timestamps")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&hostTimes, "host-times", false, "also report the backing file's host-OS timestamps")
	return cmd
}
