package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func writeCmd() *cobra.Command {
	var fromFile string

	cmd := &cobra.Command{
		Use:   "write <path> <name>",
		Short: "Replace a file's contents from a host file (or stdin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if fromFile == "" || fromFile == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(fromFile)
			}
			if err != nil {
				return err
			}

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

			return v.Write(fd, data)
		},
	}
	cmd.Flags().StringVar(&fromFile, "from", "-", "host file to read contents from, or - for stdin")
	return cmd
}
