package commands

import (
	"context"
	"time"

	"github.com/roasbeef/actorcore/actor"
	"github.com/spf13/cobra"
)

var printerCmd = &cobra.Command{
	Use:   "printer [message]",
	Short: "Spawn a Printer actor and tell it a message",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg := "hello"
		if len(args) == 1 {
			msg = args[0]
		}

		sys := actor.New("actorctl")
		sys.SpawnThreads(workerCount)

		ref, err := sys.ActorOf(printerFactory(), "printer")
		if err != nil {
			return err
		}

		ref.Tell(context.Background(), msg, nil)

		// Give the dispatcher a moment to drain before shutting down;
		// a real embedder would instead Ask for an acknowledgement.
		time.Sleep(50 * time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return sys.Shutdown(ctx)
	},
}
