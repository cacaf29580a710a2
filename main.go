package main

import (
	"fmt"
	"os"

	"rutb/app"

	"github.com/gonuts/commander"
)

var cmd *commander.Command

func init() {
	cmd = &commander.Command{
		UsageLine:   os.Args[0],
		Short:       "treebank head percolation tools",
		Subcommands: app.AllCommands(),
	}
}

func main() {
	err := cmd.Dispatch(os.Args[1:])
	if err != nil {
		fmt.Printf("**err**: %v\n", err)
		os.Exit(1)
	}
}
