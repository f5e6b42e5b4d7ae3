// Package rent implements the rental lifecycle engine: creating, renewing
// and returning rentals under the business caps, with every state change
// recorded in the append-only ledger.
//
// Per rental the states are NonExistent -> Active -> {Returned, Cancelled};
// renewing keeps the rental Active and only extends the return date. The
// check-then-write sequences run inside a single database transaction so
// two concurrent creates cannot both pass the stock or per-user check.
package rent

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/internal/storage"
	"github.com/reelhouse/rental/pkg/apperr"
	"github.com/reelhouse/rental/pkg/logctx"
	"github.com/reelhouse/rental/pkg/tool"
	"github.com/reelhouse/rental/pkg/types"
)

const (
	// maxActiveRentalsPerUser caps simultaneously active rentals per user.
	maxActiveRentalsPerUser = 5
	// maxRenewals caps renew actions per rental.
	maxRenewals = 2
)

type Service struct {
	store storage.Store
	log   *zap.SugaredLogger
	now   func() time.Time
}

func NewService(store storage.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

type CreateInput struct {
	MovieID    string
	UserID     string
	ReturnDate time.Time
}

// UpdateInput is a partial update; nil fields are left untouched. Setting
// Returned to 1 is how a rental is returned — deliberately no ledger entry
// is appended for returns.
type UpdateInput struct {
	ReturnDate *time.Time
	Returned   *int
}

type ListResult struct {
	Items   []*models.Rent `json:"items"`
	Total   int64          `json:"total"`
	PerPage int            `json:"perPage"`
}

// Create validates the business invariants and, atomically, inserts the
// rent row plus its "rent" ledger entry. Both writes commit together or
// not at all: the invariant counts are derived from the ledger, so an
// orphaned rent row would corrupt every later stock check.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Rent, error) {
	if !in.ReturnDate.After(s.now()) {
		return nil, ErrReturnDateNotFuture
	}

	var created *models.Rent
	err := s.store.Transaction(ctx, func(tx storage.Store) error {
		if _, err := tx.Users().Get(ctx, in.UserID); err != nil {
			return notFound(err)
		}
		movie, err := tx.Movies().Get(ctx, in.MovieID)
		if err != nil {
			return notFound(err)
		}

		dup, err := tx.Ledger().CountActiveByMovieAndUser(ctx, in.MovieID, in.UserID, types.RentActionRent)
		if err != nil {
			return err
		}
		if dup > 0 {
			return ErrAlreadyRented
		}

		byUser, err := tx.Ledger().CountActiveByUser(ctx, in.UserID, types.RentActionRent)
		if err != nil {
			return err
		}
		if byUser >= maxActiveRentalsPerUser {
			return ErrUserLimitReached
		}

		byMovie, err := tx.Ledger().CountActiveByMovie(ctx, in.MovieID, types.RentActionRent)
		if err != nil {
			return err
		}
		if byMovie >= int64(movie.Quantity) {
			return ErrOutOfStock
		}

		created = &models.Rent{
			ID:         tool.GenerateUUIDV7(),
			MovieID:    in.MovieID,
			UserID:     in.UserID,
			ReturnDate: in.ReturnDate,
		}
		if err := tx.Rents().Create(ctx, created); err != nil {
			return err
		}
		return tx.Ledger().Append(ctx, &models.RentHistory{
			ID:     tool.GenerateUUIDV7(),
			RentID: created.ID,
			Action: types.RentActionRent,
		})
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("rental created",
		"rent_id", created.ID, "movie_id", in.MovieID, "user_id", in.UserID)
	return created, nil
}

// Renew extends the return date by days and appends a "renew" ledger
// entry, atomically. A rental can be renewed at most twice.
func (s *Service) Renew(ctx context.Context, id string, days int) (*models.Rent, error) {
	if days < 1 {
		return nil, ErrInvalidRenewDays
	}

	var renewed *models.Rent
	err := s.store.Transaction(ctx, func(tx storage.Store) error {
		r, err := tx.Rents().Get(ctx, id)
		if err != nil {
			return notFound(err)
		}
		if r.Returned != 0 {
			return ErrAlreadyReturned
		}

		renews, err := tx.Ledger().CountActiveByRent(ctx, id, types.RentActionRenew)
		if err != nil {
			return err
		}
		if renews >= maxRenewals {
			return ErrRenewLimitReached
		}

		newDate := r.ReturnDate.AddDate(0, 0, days)
		if err := tx.Rents().Update(ctx, id, map[string]any{"return_date": newDate}); err != nil {
			return notFound(err)
		}
		if err := tx.Ledger().Append(ctx, &models.RentHistory{
			ID:     tool.GenerateUUIDV7(),
			RentID: id,
			Action: types.RentActionRenew,
		}); err != nil {
			return err
		}
		r.ReturnDate = newDate
		renewed = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("rental renewed", "rent_id", id, "days", days)
	return renewed, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Rent, error) {
	r, err := s.store.Rents().Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, pq types.PageQuery) (*ListResult, error) {
	items, total, err := s.store.Rents().List(ctx, pq)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, PerPage: pq.Limit}, nil
}

// Update applies the provided fields and re-fetches the row. Flipping
// Returned to 1 is the return operation.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*models.Rent, error) {
	if _, err := s.store.Rents().Get(ctx, id); err != nil {
		return nil, notFound(err)
	}

	fields := map[string]any{}
	if in.ReturnDate != nil {
		fields["return_date"] = *in.ReturnDate
	}
	if in.Returned != nil {
		fields["returned"] = *in.Returned
	}
	if len(fields) > 0 {
		if err := s.store.Rents().Update(ctx, id, fields); err != nil {
			return nil, notFound(err)
		}
	}
	r, err := s.store.Rents().Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

// Delete cancels a rental by soft-deleting it; the row stays in storage
// but disappears from every read path and invariant count.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Rents().SoftDelete(ctx, id); err != nil {
		return notFound(err)
	}
	logctx.FromCtx(ctx, s.log).Infow("rental cancelled", "rent_id", id)
	return nil
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.ErrResourceNotFound
	}
	return err
}
