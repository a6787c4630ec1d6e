package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	cryptoService "github.com/allisson/passkeeper/internal/crypto/service"
	sessionUseCase "github.com/allisson/passkeeper/internal/session/usecase"
	vaultDomain "github.com/allisson/passkeeper/internal/vault/domain"
	vaultUseCase "github.com/allisson/passkeeper/internal/vault/usecase"
)

// RunPasswordAdd stores a new password record. When input carries no
// password and generateLength is positive, a password is generated and
// echoed once so the operator can capture it.
func RunPasswordAdd(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passwordUC vaultUseCase.PasswordUseCase,
	generator cryptoService.Generator,
	input vaultUseCase.PasswordInput,
	generateLength int,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	generated := false
	if input.Password == "" && generateLength > 0 {
		password, err := generator.Generate(generateLength)
		if err != nil {
			return err
		}
		input.Password = password
		generated = true
	}

	record, err := passwordUC.Add(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(ioTuple.Writer, "added id=%s url=%q username=%q\n", record.ID, record.URL, record.Username)
	if generated {
		fmt.Fprintf(ioTuple.Writer, "password=%q\n", input.Password)
	}

	return nil
}

// RunPasswordGet prints the credentials stored for a url, newest first.
func RunPasswordGet(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passwordUC vaultUseCase.PasswordUseCase,
	url string,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	records, err := passwordUC.GetByURL(ctx, url)
	if err != nil {
		return err
	}

	for _, record := range records {
		fmt.Fprintf(ioTuple.Writer, "id=%s username=%q password=%q\n", record.ID, record.Username, record.Password)
	}

	return nil
}

// RunPasswordSearch prints the records matching keyword without revealing
// any password.
func RunPasswordSearch(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passwordUC vaultUseCase.PasswordUseCase,
	keyword string,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	records, err := passwordUC.Search(ctx, keyword)
	if err != nil {
		return err
	}

	for _, record := range records {
		fmt.Fprintf(ioTuple.Writer, "id=%s url=%q username=%q title=%q\n",
			record.ID, record.URL, record.Username, record.Title)
	}

	return nil
}

// RunPasswordUpdate applies a partial update to a record. When the update
// carries no password and generateLength is positive, a fresh password is
// generated, applied and echoed once.
func RunPasswordUpdate(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passwordUC vaultUseCase.PasswordUseCase,
	generator cryptoService.Generator,
	id string,
	update vaultDomain.PasswordUpdate,
	generateLength int,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	generated := ""
	if update.Password == nil && generateLength > 0 {
		password, err := generator.Generate(generateLength)
		if err != nil {
			return err
		}
		update.Password = &password
		generated = password
	}

	record, err := passwordUC.Update(ctx, id, update)
	if err != nil {
		return err
	}

	fmt.Fprintf(ioTuple.Writer, "updated id=%s url=%q username=%q\n", record.ID, record.URL, record.Username)
	if generated != "" {
		fmt.Fprintf(ioTuple.Writer, "password=%q\n", generated)
	}

	return nil
}

// RunPasswordDelete removes a record.
func RunPasswordDelete(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passwordUC vaultUseCase.PasswordUseCase,
	id string,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	if err := passwordUC.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(ioTuple.Writer, "deleted id=%s\n", id)
	return nil
}

// RunPasswordExport writes all password records as CSV to path. "-" writes
// the CSV to the configured writer instead of a file.
func RunPasswordExport(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passwordUC vaultUseCase.PasswordUseCase,
	logger *logrus.Logger,
	path string,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	w, closeOutput, err := openOutput(path, ioTuple)
	if err != nil {
		return err
	}

	count, err := passwordUC.ExportCSV(ctx, w)
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.WithField("count", count).Debug("password export finished")
	if path != "-" {
		fmt.Fprintf(ioTuple.Writer, "exported %d records to %s\n", count, path)
	}

	return nil
}

// RunPasswordImport reads password records as CSV from path. "-" reads the
// CSV from the configured reader instead of a file.
func RunPasswordImport(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passwordUC vaultUseCase.PasswordUseCase,
	logger *logrus.Logger,
	path string,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	r, closeInput, err := openInput(path, ioTuple)
	if err != nil {
		return err
	}

	count, err := passwordUC.ImportCSV(ctx, r)
	if cerr := closeInput(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.WithField("count", count).Debug("password import finished")
	fmt.Fprintf(ioTuple.Writer, "imported %d records\n", count)

	return nil
}
