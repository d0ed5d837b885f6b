package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&serveCmd{}, "")
	commander.Register(&plansCmd{out: os.Stdout}, "catalog")
	commander.Register(&servicesCmd{out: os.Stdout}, "catalog")
	commander.Register(&listCmd{out: os.Stdout}, "catalog")
	commander.Register(&intentCmd{out: os.Stdout}, "payment")
	commander.Register(&watchCmd{out: os.Stdout}, "events")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
