package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/roasbeef/actorcore/actor"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [path]",
	Short: "Resolve a path under /user (default /user/bar), creating the actor if it doesn't exist",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/user/bar"
		if len(args) == 1 {
			path = args[0]
		}
		p := actor.ParsePath(path)
		if p.Parent().String() != "/"+actor.UserGuardianName {
			return fmt.Errorf("%s is not a direct child of /user", path)
		}

		sys := actor.New("actorctl")
		sys.SpawnThreads(workerCount)

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()

		before := sys.Identify(path).Await(ctx)
		opt, err := before.Unpack()
		if err != nil {
			return err
		}
		if opt.IsSome() {
			fmt.Printf("%s already exists\n", path)
		} else {
			fmt.Printf("%s: not found (as expected)\n", path)
			if _, err := sys.ActorOf(printerFactory(), p.Name()); err != nil {
				return err
			}
		}

		after := sys.Identify(path).Await(ctx)
		opt2, err := after.Unpack()
		if err != nil {
			return err
		}
		if ref := opt2.UnwrapOr(nil); ref != nil {
			fmt.Printf("%s resolved to %s\n", path, ref.Path())
		}

		shutCtx, shutCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutCancel()
		return sys.Shutdown(shutCtx)
	},
}
