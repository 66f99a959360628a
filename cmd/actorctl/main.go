// Command actorctl is a small demonstration CLI for the actorcore runtime:
// it spawns a handful of example actors and exercises tell, ask, identify,
// supervised restart and shutdown from the outside, the way an application
// embedding this library would.
package main

import "github.com/roasbeef/actorcore/cmd/actorctl/commands"

func main() {
	commands.Execute()
}
