package commands

import (
	"fmt"

	"github.com/roasbeef/actorcore/actor"
)

// printerFactory builds an actor whose Receive prints every string payload
// it gets, one per line -- the "Printer" scenario from the testable
// properties section.
func printerFactory() actor.Factory {
	return func() actor.Behavior {
		return actor.BehaviorFunc(func(ctx actor.Context, payload interface{}) {
			s, ok := payload.(string)
			if !ok {
				return
			}
			fmt.Println(s)
		})
	}
}

// echoFactory builds an actor that replies to its sender with whatever
// payload it was sent, unchanged -- the "Echo" ask scenario.
func echoFactory() actor.Factory {
	return func() actor.Behavior {
		return actor.BehaviorFunc(func(ctx actor.Context, payload interface{}) {
			ctx.Tell(ctx.Sender(), payload)
		})
	}
}

// faultyFactory builds an actor that panics on its first message and
// behaves normally afterward, for exercising the restart-on-failure
// supervision path.
func faultyFactory() actor.Factory {
	first := true
	return func() actor.Behavior {
		return actor.BehaviorFunc(func(ctx actor.Context, payload interface{}) {
			if first {
				first = false
				panic(fmt.Sprintf("faulty actor choking on %v", payload))
			}
			fmt.Printf("faulty actor processed %v without incident\n", payload)
		})
	}
}
