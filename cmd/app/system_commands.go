package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/passkeeper/cmd/app/commands"
	"github.com/allisson/passkeeper/internal/app"
	"github.com/allisson/passkeeper/internal/config"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate",
			Usage: "Generate a random password",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Value:   16,
					Usage:   "Password length in characters",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Close() }()

				return commands.RunGenerate(container.Generator(), int(cmd.Int("length")), commands.DefaultIO())
			},
		},
		{
			Name:  "secret",
			Usage: "Operator secret utilities",
			Commands: []*cli.Command{
				{
					Name:  "hash",
					Usage: "Print the Argon2id digest of a secret for use as AUTH_SECRET",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:    "secret",
							Aliases: []string{"s"},
							Usage:   "Secret to hash (omit for interactive prompt)",
						},
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						cfg := config.Load()
						container := app.NewContainer(cfg)
						defer func() { _ = container.Close() }()

						return commands.RunHashSecret(container.SecretService(), cmd.String("secret"), commands.DefaultIO())
					},
				},
			},
		},
	}
}
