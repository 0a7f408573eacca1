package main

import "github.com/spf13/cobra"

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path> <name>",
		Short: "Delete a file",
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
			return v.Delete(fd)
		},
	}
}

func mvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <path> <name> <new-name>",
		Short: "Rename a file",
		Args:  cobra.ExactArgs(3),
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

			return v.Rename(fd, args[2])
		},
	}
}
