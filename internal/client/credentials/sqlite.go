package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gymmi-app/gymmi/internal/client/repositories/metadata"
	"github.com/gymmi-app/gymmi/internal/common"
	"github.com/gymmi-app/gymmi/internal/cryptox"
	"github.com/gymmi-app/gymmi/internal/dbx"
)

// SQLiteStore keeps the token under common.TokenStorageKey in the metadata
// table. With a non-empty passphrase the token is sealed with AES-GCM and the
// argon2 salt is stored next to it under common.TokenSaltStorageKey.
type SQLiteStore struct {
	db         *sql.DB
	passphrase []byte
}

func NewSQLiteStore(db *sql.DB, passphrase string) *SQLiteStore {
	s := &SQLiteStore{db: db}
	if passphrase != "" {
		s.passphrase = []byte(passphrase)
	}
	return s
}

func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	value, err := repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}

	salt, err := repo.Get(ctx, common.TokenSaltStorageKey)
	if err != nil {
		return "", err
	}
	if salt == nil {
		return string(value), nil
	}
	if s.passphrase == nil {
		return "", ErrSealed
	}

	plain, err := cryptox.Open(cryptox.DeriveKey(s.passphrase, salt), value)
	if err != nil {
		return "", fmt.Errorf("open stored token: %w", err)
	}
	return string(plain), nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	value := []byte(token)
	var salt []byte

	if s.passphrase != nil {
		salt = common.GenerateRandByteArray(cryptox.SaltSize)
		sealed, err := cryptox.Seal(cryptox.DeriveKey(s.passphrase, salt), value)
		if err != nil {
			return fmt.Errorf("seal token: %w", err)
		}
		value = sealed
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenStorageKey, value); err != nil {
			return err
		}
		if salt == nil {
			return repo.Delete(ctx, common.TokenSaltStorageKey)
		}
		return repo.Set(ctx, common.TokenSaltStorageKey, salt)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, common.TokenStorageKey, common.TokenSaltStorageKey)
}
