package main

import (
	"os"

	"github.com/luispdm/cc-redis/command"
	"github.com/luispdm/cc-redis/core"
)

func main() {
	s := core.NewServer(
		command.Repo, // standard command set
	)
	if s.Run() != nil {
		os.Exit(1)
	}
}
