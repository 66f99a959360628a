package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	workerCount int
	askTimeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "actorctl",
	Short: "Demonstration CLI for the actorcore actor runtime",
	Long: `actorctl spawns example actors on a fresh ActorSystem and drives
them through tell, ask, identify, supervised restart and shutdown,
printing what happens along the way.`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(
		&workerCount, "workers", 4,
		"number of dispatcher worker goroutines to spawn",
	)
	rootCmd.PersistentFlags().DurationVar(
		&askTimeout, "ask-timeout", 5*time.Second,
		"timeout applied to ask operations run by this CLI",
	)

	rootCmd.AddCommand(printerCmd)
	rootCmd.AddCommand(echoCmd)
	rootCmd.AddCommand(fleetCmd)
	rootCmd.AddCommand(superviseCmd)
	rootCmd.AddCommand(identifyCmd)
}

// Execute runs the root command, exiting the process with a non-zero
// status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
