package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/pkg/types"
)

type ledgerStore struct {
	db *gorm.DB
}

func (s *ledgerStore) Append(ctx context.Context, h *models.RentHistory) error {
	return translate(s.db.WithContext(ctx).Create(h).Error)
}

// activeJoin counts ledger rows through the rent table. Joins bypass gorm's
// soft-delete scope, so rent.deleted_at is filtered explicitly; active
// means returned = 0.
func (s *ledgerStore) activeJoin(ctx context.Context, action types.RentAction) *gorm.DB {
	return s.db.WithContext(ctx).
		Table(`rent_history AS rh`).
		Joins(`JOIN rent AS r ON r.id = rh.rent_id`).
		Where(`r.deleted_at IS NULL AND r.returned = 0`).
		Where(`rh.action = ?`, action)
}

func (s *ledgerStore) CountActiveByUser(ctx context.Context, userID string, action types.RentAction) (int64, error) {
	var n int64
	err := s.activeJoin(ctx, action).Where(`r.user_id = ?`, userID).Count(&n).Error
	return n, translate(err)
}

func (s *ledgerStore) CountActiveByMovie(ctx context.Context, movieID string, action types.RentAction) (int64, error) {
	var n int64
	err := s.activeJoin(ctx, action).Where(`r.movie_id = ?`, movieID).Count(&n).Error
	return n, translate(err)
}

func (s *ledgerStore) CountActiveByMovieAndUser(ctx context.Context, movieID, userID string, action types.RentAction) (int64, error) {
	var n int64
	err := s.activeJoin(ctx, action).
		Where(`r.movie_id = ? AND r.user_id = ?`, movieID, userID).
		Count(&n).Error
	return n, translate(err)
}

func (s *ledgerStore) CountActiveByRent(ctx context.Context, rentID string, action types.RentAction) (int64, error) {
	var n int64
	err := s.activeJoin(ctx, action).Where(`rh.rent_id = ?`, rentID).Count(&n).Error
	return n, translate(err)
}

func (s *ledgerStore) List(ctx context.Context, movieID *string, pq types.PageQuery) ([]HistoryEntry, int64, error) {
	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).
			Table(`rent_history AS rh`).
			Joins(`JOIN rent AS r ON r.id = rh.rent_id`).
			Joins(`JOIN "user" AS u ON u.id = r.user_id`).
			Joins(`JOIN movie AS m ON m.id = r.movie_id`).
			Where(`r.deleted_at IS NULL`)
		if movieID != nil {
			q = q.Where(`r.movie_id = ?`, *movieID)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var entries []HistoryEntry
	err := base().
		Select(`m.name AS movie_name, u.name AS user_name, rh.action, rh.created_at`).
		Order(`rh.created_at DESC`).
		Offset(pq.Offset()).
		Limit(pq.Limit).
		Scan(&entries).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return entries, total, nil
}
