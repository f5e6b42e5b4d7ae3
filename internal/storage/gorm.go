package storage

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// New returns the gorm-backed Store. The *gorm.DB must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Movies() MovieStore  { return &movieStore{db: s.db} }
func (s *gormStore) Users() UserStore    { return &userStore{db: s.db} }
func (s *gormStore) Rents() RentStore    { return &rentStore{db: s.db} }
func (s *gormStore) Ledger() LedgerStore { return &ledgerStore{db: s.db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// translate maps gorm errors onto the storage sentinels so callers never
// depend on gorm directly.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

var Module = fx.Options(
	fx.Provide(New),
)
