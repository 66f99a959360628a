package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/roasbeef/actorcore/actor"
	"github.com/spf13/cobra"
)

var echoCmd = &cobra.Command{
	Use:   "echo [value]",
	Short: "Ask an Echo actor for a value and print the round trip",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := interface{}("42")
		if len(args) == 1 {
			payload = args[0]
		}

		sys := actor.New("actorctl")
		sys.SpawnThreads(workerCount)

		ref, err := sys.ActorOf(echoFactory(), "echo")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()

		result := sys.Ask(ctx, ref, payload).Await(ctx)
		reply, err := result.Unpack()
		if err != nil {
			return fmt.Errorf("ask failed: %w", err)
		}
		fmt.Printf("echo replied: %v\n", reply)

		shutCtx, shutCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutCancel()
		return sys.Shutdown(shutCtx)
	},
}
