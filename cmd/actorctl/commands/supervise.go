package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/roasbeef/actorcore/actor"
	"github.com/spf13/cobra"
)

var superviseCmd = &cobra.Command{
	Use:   "supervise",
	Short: "Demonstrate panic isolation and restart of a child actor",
	RunE: func(cmd *cobra.Command, args []string) error {
		sys := actor.New("actorctl")
		sys.SpawnThreads(workerCount)

		supervisorFactory := func() actor.Factory {
			return func() actor.Behavior {
				return actor.BehaviorFunc(func(ctx actor.Context, payload interface{}) {
					switch payload.(type) {
					case string:
						child, ok := ctx.Children()["faulty"]
						if !ok {
							var err error
							child, err = ctx.ActorOf(faultyFactory(), "faulty")
							if err != nil {
								fmt.Println("spawn failed:", err)
								return
							}
						}
						ctx.Tell(child, payload)
					}
				})
			}
		}

		supervisor, err := sys.ActorOf(supervisorFactory(), "supervisor")
		if err != nil {
			return err
		}

		supervisor.Tell(context.Background(), "first message (will panic)", nil)
		time.Sleep(50 * time.Millisecond)
		supervisor.Tell(context.Background(), "second message (should succeed)", nil)
		time.Sleep(50 * time.Millisecond)

		fmt.Println("supervisor observed no failure; child was restarted transparently")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return sys.Shutdown(ctx)
	},
}
