package main

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/allisson/passkeeper/cmd/app/commands"
	"github.com/allisson/passkeeper/internal/app"
	"github.com/allisson/passkeeper/internal/config"
	vaultDomain "github.com/allisson/passkeeper/internal/vault/domain"
	vaultUseCase "github.com/allisson/passkeeper/internal/vault/usecase"
)

func getPasskeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "passkey",
			Usage: "Manage passkey records",
			Commands: []*cli.Command{
				passkeyAddCommand(),
				passkeyGetCommand(),
				passkeySearchCommand(),
				passkeyUpdateCommand(),
				passkeyDeleteCommand(),
				passkeyExportCommand(),
				passkeyImportCommand(),
			},
		},
	}
}

func passkeyAddCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Store a new passkey record",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rp-id", Aliases: []string{"r"}, Required: true, Usage: "Relying-party identifier"},
			&cli.StringFlag{Name: "credential-id", Aliases: []string{"c"}, Required: true, Usage: "Credential identifier"},
			&cli.StringFlag{Name: "user-handle", Aliases: []string{"u"}, Required: true, Usage: "User handle"},
			&cli.StringFlag{Name: "public-key", Aliases: []string{"p"}, Required: true, Usage: "Public key material"},
			&cli.UintFlag{Name: "sign-count", Usage: "Authenticator signature counter"},
			&cli.StringFlag{Name: "transports", Usage: "Comma-separated transports (usb,nfc,ble,hybrid,internal)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passkeyUC, err := container.PasskeyUseCase()
			if err != nil {
				return err
			}

			input := vaultUseCase.PasskeyInput{
				RpID:         cmd.String("rp-id"),
				CredentialID: cmd.String("credential-id"),
				UserHandle:   cmd.String("user-handle"),
				PublicKey:    cmd.String("public-key"),
				SignCount:    uint32(cmd.Uint("sign-count")),
				Transports:   parseTransports(cmd.String("transports")),
			}

			return commands.RunPasskeyAdd(ctx, container.SessionUseCase(), passkeyUC, input, commands.DefaultIO())
		},
	}
}

func passkeyGetCommand() *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "Print the passkeys stored for a relying party",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rp-id", Aliases: []string{"r"}, Required: true, Usage: "Relying-party identifier"},
			&cli.StringFlag{Name: "user-handle", Aliases: []string{"u"}, Usage: "Narrow the result to one user handle"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passkeyUC, err := container.PasskeyUseCase()
			if err != nil {
				return err
			}

			return commands.RunPasskeyGet(
				ctx,
				container.SessionUseCase(),
				passkeyUC,
				cmd.String("rp-id"),
				cmd.String("user-handle"),
				commands.DefaultIO(),
			)
		},
	}
}

func passkeySearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search records without revealing public keys",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "keyword", Aliases: []string{"k"}, Required: true, Usage: "Search keyword"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passkeyUC, err := container.PasskeyUseCase()
			if err != nil {
				return err
			}

			return commands.RunPasskeySearch(ctx, container.SessionUseCase(), passkeyUC, cmd.String("keyword"), commands.DefaultIO())
		},
	}
}

func passkeyUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Update fields of an existing record",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Aliases: []string{"i"}, Required: true, Usage: "Record identifier"},
			&cli.StringFlag{Name: "rp-id", Aliases: []string{"r"}, Usage: "New relying-party identifier"},
			&cli.StringFlag{Name: "credential-id", Aliases: []string{"c"}, Usage: "New credential identifier"},
			&cli.StringFlag{Name: "user-handle", Aliases: []string{"u"}, Usage: "New user handle"},
			&cli.StringFlag{Name: "public-key", Aliases: []string{"p"}, Usage: "New public key material"},
			&cli.UintFlag{Name: "sign-count", Usage: "New signature counter"},
			&cli.StringFlag{Name: "transports", Usage: "New comma-separated transports"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passkeyUC, err := container.PasskeyUseCase()
			if err != nil {
				return err
			}

			update := vaultDomain.PasskeyUpdate{
				RpID:         strFlag(cmd, "rp-id"),
				CredentialID: strFlag(cmd, "credential-id"),
				UserHandle:   strFlag(cmd, "user-handle"),
				PublicKey:    strFlag(cmd, "public-key"),
			}
			if cmd.IsSet("sign-count") {
				signCount := uint32(cmd.Uint("sign-count"))
				update.SignCount = &signCount
			}
			if cmd.IsSet("transports") {
				transports := parseTransports(cmd.String("transports"))
				update.Transports = &transports
			}

			return commands.RunPasskeyUpdate(ctx, container.SessionUseCase(), passkeyUC, cmd.String("id"), update, commands.DefaultIO())
		},
	}
}

func passkeyDeleteCommand() *cli.Command {
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

			passkeyUC, err := container.PasskeyUseCase()
			if err != nil {
				return err
			}

			return commands.RunPasskeyDelete(ctx, container.SessionUseCase(), passkeyUC, cmd.String("id"), commands.DefaultIO())
		},
	}
}

func passkeyExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all records as CSV (public keys decrypted)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "-", Usage: "Output file ('-' for stdout)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Close() }()

			passkeyUC, err := container.PasskeyUseCase()
			if err != nil {
				return err
			}

			return commands.RunPasskeyExport(
				ctx,
				container.SessionUseCase(),
				passkeyUC,
				container.Logger(),
				cmd.String("output"),
				commands.DefaultIO(),
			)
		},
	}
}

func passkeyImportCommand() *cli.Command {
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

			passkeyUC, err := container.PasskeyUseCase()
			if err != nil {
				return err
			}

			return commands.RunPasskeyImport(
				ctx,
				container.SessionUseCase(),
				passkeyUC,
				container.Logger(),
				cmd.String("input"),
				commands.DefaultIO(),
			)
		},
	}
}

func parseTransports(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
