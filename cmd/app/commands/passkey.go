package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	sessionUseCase "github.com/allisson/passkeeper/internal/session/usecase"
	vaultDomain "github.com/allisson/passkeeper/internal/vault/domain"
	vaultUseCase "github.com/allisson/passkeeper/internal/vault/usecase"
)

// RunPasskeyAdd stores a new passkey record.
func RunPasskeyAdd(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passkeyUC vaultUseCase.PasskeyUseCase,
	input vaultUseCase.PasskeyInput,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	record, err := passkeyUC.Add(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(ioTuple.Writer, "added id=%s rp_id=%q user_handle=%q\n",
		record.ID, record.RpID, record.UserHandle)

	return nil
}

// RunPasskeyGet prints the passkeys stored for a relying party, newest
// first. A non-empty userHandle narrows the result.
func RunPasskeyGet(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passkeyUC vaultUseCase.PasskeyUseCase,
	rpID, userHandle string,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	records, err := passkeyUC.Get(ctx, rpID, userHandle)
	if err != nil {
		return err
	}

	for _, record := range records {
		fmt.Fprintf(ioTuple.Writer,
			"id=%s credential_id=%q user_handle=%q sign_count=%d transports=%q public_key=%q\n",
			record.ID, record.CredentialID, record.UserHandle, record.SignCount,
			strings.Join(record.Transports, ","), record.PublicKey)
	}

	return nil
}

// RunPasskeySearch prints the passkeys matching keyword without revealing
// any public key.
func RunPasskeySearch(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passkeyUC vaultUseCase.PasskeyUseCase,
	keyword string,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	records, err := passkeyUC.Search(ctx, keyword)
	if err != nil {
		return err
	}

	for _, record := range records {
		fmt.Fprintf(ioTuple.Writer, "id=%s rp_id=%q credential_id=%q user_handle=%q\n",
			record.ID, record.RpID, record.CredentialID, record.UserHandle)
	}

	return nil
}

// RunPasskeyUpdate applies a partial update to a record.
func RunPasskeyUpdate(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passkeyUC vaultUseCase.PasskeyUseCase,
	id string,
	update vaultDomain.PasskeyUpdate,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	record, err := passkeyUC.Update(ctx, id, update)
	if err != nil {
		return err
	}

	fmt.Fprintf(ioTuple.Writer, "updated id=%s rp_id=%q sign_count=%d\n",
		record.ID, record.RpID, record.SignCount)

	return nil
}

// RunPasskeyDelete removes a record.
func RunPasskeyDelete(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passkeyUC vaultUseCase.PasskeyUseCase,
	id string,
	ioTuple IOTuple,
) error {
	if err := sessionUC.EnsureAuthenticated(ctx); err != nil {
		return err
	}

	if err := passkeyUC.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(ioTuple.Writer, "deleted id=%s\n", id)
	return nil
}

// RunPasskeyExport writes all passkey records as CSV to path. "-" writes the
// CSV to the configured writer instead of a file.
func RunPasskeyExport(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passkeyUC vaultUseCase.PasskeyUseCase,
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

	count, err := passkeyUC.ExportCSV(ctx, w)
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.WithField("count", count).Debug("passkey export finished")
	if path != "-" {
		fmt.Fprintf(ioTuple.Writer, "exported %d records to %s\n", count, path)
	}

	return nil
}

// RunPasskeyImport reads passkey records as CSV from path. "-" reads the CSV
// from the configured reader instead of a file.
func RunPasskeyImport(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	passkeyUC vaultUseCase.PasskeyUseCase,
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

	count, err := passkeyUC.ImportCSV(ctx, r)
	if cerr := closeInput(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.WithField("count", count).Debug("passkey import finished")
	fmt.Fprintf(ioTuple.Writer, "imported %d records\n", count)

	return nil
}
