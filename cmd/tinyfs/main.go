// Command tinyfs is the demo command-line driver for the tinyfs library:
// a thin, replaceable shell over the core mount/open/read/write API.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "tinyfs",
		Short: "Work with a tinyfs volume: a tiny block-structured filesystem over a host file",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		mkfsCmd(),
		infoCmd(),
		lsCmd(),
		catCmd(),
		writeCmd(),
		rmCmd(),
		mvCmd(),
		demoCmd(),
	)
	return cmd
}
