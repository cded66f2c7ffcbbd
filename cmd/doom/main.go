// Command doom runs the deadline risk wizard in a terminal.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	timezone string
	now      func() time.Time
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doom",
		Short: "Estimate how likely you are to miss your deadlines",
		Long: `doom scores a list of tasks against your work habits and tells you how
doomed you are. Use "doom interview" for the guided wizard or "doom score"
to pass everything as flags.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.timezone, "timezone", "UTC", `IANA timezone that decides what "today" is`)

	cmd.AddCommand(newScoreCmd(opts), newInterviewCmd(opts))
	return cmd
}

func main() {
	if err := newRootCmd(&rootOptions{now: time.Now}).Execute(); err != nil {
		os.Exit(1)
	}
}
