package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/passkeeper/cmd/app/commands"
	"github.com/allisson/passkeeper/internal/app"
	"github.com/allisson/passkeeper/internal/config"
)

func getSessionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "auth",
			Usage: "Verify the operator secret and start a session",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "secret",
					Aliases: []string{"s"},
					Usage:   "Operator secret (omit for interactive prompt)",
				},
				&cli.IntFlag{
					Name:    "ttl",
					Aliases: []string{"t"},
					Usage:   "Session lifetime in minutes (defaults to SESSION_TTL_MINUTES)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Close() }()

				ttl := cfg.SessionTTL
				if cmd.IsSet("ttl") {
					ttl = time.Duration(cmd.Int("ttl")) * time.Minute
				}

				return commands.RunAuth(
					ctx,
					container.SessionUseCase(),
					container.Logger(),
					cmd.String("secret"),
					ttl,
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "logout",
			Usage: "Delete the current session",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Close() }()

				return commands.RunLogout(ctx, container.SessionUseCase(), commands.DefaultIO())
			},
		},
		{
			Name:  "status",
			Usage: "Report the current session state",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Close() }()

				return commands.RunStatus(ctx, container.SessionUseCase(), commands.DefaultIO())
			},
		},
	}
}
