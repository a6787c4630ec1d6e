package main

import (
	"github.com/urfave/cli/v3"
)

func getCommands() []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSessionCommands()...)
	cmds = append(cmds, getSystemCommands()...)
	cmds = append(cmds, getPasswordCommands()...)
	cmds = append(cmds, getPasskeyCommands()...)
	return cmds
}

// strFlag returns a pointer to the flag value when it was set, nil
// otherwise. Used to assemble partial updates.
func strFlag(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	value := cmd.String(name)
	return &value
}
