package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/roasbeef/actorcore/actor"
	"github.com/spf13/cobra"
)

var fleetSize int

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Spawn many sequential children of /user and shut them all down",
	RunE: func(cmd *cobra.Command, args []string) error {
		sys := actor.New("actorctl")
		sys.SpawnThreads(workerCount)

		for i := 0; i < fleetSize; i++ {
			name := fmt.Sprintf("worker-%d", i)
			if _, err := sys.ActorOf(printerFactory(), name); err != nil {
				return fmt.Errorf("spawning %s: %w", name, err)
			}
		}
		fmt.Printf("spawned %d actors under /user\n", fleetSize)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sys.Shutdown(ctx); err != nil {
			return err
		}
		fmt.Println("shutdown complete, no workers remain")
		return nil
	},
}

func init() {
	fleetCmd.Flags().IntVar(&fleetSize, "size", 1000, "number of actors to spawn")
}
