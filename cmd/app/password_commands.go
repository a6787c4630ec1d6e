package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/passkeeper/cmd/app/commands"
	"github.com/allisson/passkeeper/internal/app"
	"github.com/allisson/passkeeper/internal/config"
	vaultDomain "github.com/allisson/passkeeper/internal/vault/domain"
	vaultUseCase "github.com/allisson/passkeeper/internal/vault/usecase"
)

func getPasswordCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "password",
			Usage: "Manage password records",
			Commands: []*cli.Command{
				passwordAddCommand(),
				passwordGetCommand(),
				passwordSearchCommand(),
				passwordUpdateCommand(),
				passwordDeleteCommand(),
				passwordExportCommand(),
				passwordImportCommand(),
			},
		},
	}
}

func passwordAddCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Store a new password record",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Required: true, Usage: "Site or service URL"},
			&cli.StringFlag{Name: "username", Aliases: []string{"n"}, Required: true, Usage: "Login name"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (omit with --generate)"},
			&cli.BoolFlag{Name: "generate", Aliases: []string{"g"}, Usage: "Generate the password"},
			&cli.IntFlag{Name: "length", Aliases: []string{"l"}, Value: 16, Usage: "Generated password length"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Optional label"},
			&cli.StringFlag{Name: "note", Usage: "Optional note"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passwordUC, err := container.PasswordUseCase()
			if err != nil {
				return err
			}

			input := vaultUseCase.PasswordInput{
				URL:      cmd.String("url"),
				Username: cmd.String("username"),
				Password: cmd.String("password"),
				Title:    cmd.String("title"),
				Note:     cmd.String("note"),
			}

			generateLength := 0
			if cmd.Bool("generate") {
				generateLength = int(cmd.Int("length"))
			}

			return commands.RunPasswordAdd(
				ctx,
				container.SessionUseCase(),
				passwordUC,
				container.Generator(),
				input,
				generateLength,
				commands.DefaultIO(),
			)
		},
	}
}

func passwordGetCommand() *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "Print the credentials stored for a URL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Required: true, Usage: "Site or service URL"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passwordUC, err := container.PasswordUseCase()
			if err != nil {
				return err
			}

			return commands.RunPasswordGet(ctx, container.SessionUseCase(), passwordUC, cmd.String("url"), commands.DefaultIO())
		},
	}
}

func passwordSearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search records without revealing passwords",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "keyword", Aliases: []string{"k"}, Required: true, Usage: "Search keyword"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passwordUC, err := container.PasswordUseCase()
			if err != nil {
				return err
			}

			return commands.RunPasswordSearch(ctx, container.SessionUseCase(), passwordUC, cmd.String("keyword"), commands.DefaultIO())
		},
	}
}

func passwordUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Update fields of an existing record",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Required: true, Usage: "Record identifier"},
			&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Usage: "New URL"},
			&cli.StringFlag{Name: "username", Aliases: []string{"n"}, Usage: "New login name"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "New password (omit with --generate)"},
			&cli.BoolFlag{Name: "generate", Aliases: []string{"g"}, Usage: "Generate the new password"},
			&cli.IntFlag{Name: "length", Aliases: []string{"l"}, Value: 16, Usage: "Generated password length"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New label"},
			&cli.StringFlag{Name: "note", Usage: "New note"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passwordUC, err := container.PasswordUseCase()
			if err != nil {
				return err
			}

			update := vaultDomain.PasswordUpdate{
				URL:      strFlag(cmd, "url"),
				Username: strFlag(cmd, "username"),
				Password: strFlag(cmd, "password"),
				Title:    strFlag(cmd, "title"),
				Note:     strFlag(cmd, "note"),
			}

			generateLength := 0
			if cmd.Bool("generate") {
				generateLength = int(cmd.Int("length"))
			}

			return commands.RunPasswordUpdate(
				ctx,
				container.SessionUseCase(),
				passwordUC,
				container.Generator(),
				cmd.String("id"),
				update,
				generateLength,
				commands.DefaultIO(),
			)
		},
	}
}

func passwordDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a record",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Required: true, Usage: "Record identifier"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passwordUC, err := container.PasswordUseCase()
			if err != nil {
				return err
			}

			return commands.RunPasswordDelete(ctx, container.SessionUseCase(), passwordUC, cmd.String("id"), commands.DefaultIO())
		},
	}
}

func passwordExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all records as CSV (passwords decrypted)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "-", Usage: "Output file ('-' for stdout)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passwordUC, err := container.PasswordUseCase()
			if err != nil {
				return err
			}

			return commands.RunPasswordExport(
				ctx,
				container.SessionUseCase(),
				passwordUC,
				container.Logger(),
				cmd.String("output"),
				commands.DefaultIO(),
			)
		},
	}
}

func passwordImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import records from CSV in the export format",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: "-", Usage: "Input file ('-' for stdin)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passwordUC, err := container.PasswordUseCase()
			if err != nil {
				return err
			}

			return commands.RunPasswordImport(
				ctx,
				container.SessionUseCase(),
				passwordUC,
				container.Logger(),
				cmd.String("input"),
				commands.DefaultIO(),
			)
		},
	}
}
