// Package storage defines the persistence contracts consumed by the
// services and their gorm/postgres implementation. Soft-deleted rows are
// invisible to every read path; the rows themselves stay in the tables.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/pkg/types"
)

var (
	// ErrNotFound means the row is absent or soft-deleted.
	ErrNotFound = errors.New("storage: record not found")
	// ErrDuplicate means a unique constraint was violated.
	ErrDuplicate = errors.New("storage: duplicate key")
)

// Store bundles the per-table stores and transactional execution. Inside
// Transaction the callback receives a Store bound to the open transaction;
// the callback returning an error rolls back every write it performed.
type Store interface {
	Movies() MovieStore
	Users() UserStore
	Rents() RentStore
	Ledger() LedgerStore

	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type MovieStore interface {
	Create(ctx context.Context, m *models.Movie) error
	Get(ctx context.Context, id string) (*models.Movie, error)
	List(ctx context.Context, pq types.PageQuery) ([]*models.Movie, int64, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	SoftDelete(ctx context.Context, id string) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, pq types.PageQuery) ([]*models.User, int64, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	SoftDelete(ctx context.Context, id string) error
}

type RentStore interface {
	Create(ctx context.Context, r *models.Rent) error
	Get(ctx context.Context, id string) (*models.Rent, error)
	List(ctx context.Context, pq types.PageQuery) ([]*models.Rent, int64, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	SoftDelete(ctx context.Context, id string) error

	// CountOverdue counts active rentals whose return_date has passed asOf.
	CountOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// HistoryEntry is one ledger row joined with the names needed by the
// reporting feed.
type HistoryEntry struct {
	MovieName string
	UserName  string
	Action    types.RentAction
	CreatedAt time.Time
}

// LedgerStore is the append-only rent_history table. The Count* methods
// back the business invariants: rows are counted through a join to rent so
// soft-deleted rentals never count, and "active" means returned = 0.
type LedgerStore interface {
	Append(ctx context.Context, h *models.RentHistory) error

	CountActiveByUser(ctx context.Context, userID string, action types.RentAction) (int64, error)
	CountActiveByMovie(ctx context.Context, movieID string, action types.RentAction) (int64, error)
	CountActiveByMovieAndUser(ctx context.Context, movieID, userID string, action types.RentAction) (int64, error)
	CountActiveByRent(ctx context.Context, rentID string, action types.RentAction) (int64, error)

	// List returns ledger entries newest-first, joined with movie and user
	// names. A nil movieID lists across all movies.
	List(ctx context.Context, movieID *string, pq types.PageQuery) ([]HistoryEntry, int64, error)
}
