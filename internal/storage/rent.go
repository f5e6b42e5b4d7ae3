package storage

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/pkg/types"
)

type rentStore struct {
	db *gorm.DB
}

func (s *rentStore) Create(ctx context.Context, r *models.Rent) error {
	return translate(s.db.WithContext(ctx).Create(r).Error)
}

func (s *rentStore) Get(ctx context.Context, id string) (*models.Rent, error) {
	var r models.Rent
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *rentStore) List(ctx context.Context, pq types.PageQuery) ([]*models.Rent, int64, error) {
	var (
		rents []*models.Rent
		total int64
	)
	if err := s.db.WithContext(ctx).Model(&models.Rent{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := s.db.WithContext(ctx).
		Offset(pq.Offset()).
		Limit(pq.Limit).
		Find(&rents).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return rents, total, nil
}

func (s *rentStore) Update(ctx context.Context, id string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.Rent{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *rentStore) CountOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Rent{}).
		Where("returned = 0 AND return_date < ?", asOf).
		Count(&n).Error
	return n, translate(err)
}

func (s *rentStore) SoftDelete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Rent{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
