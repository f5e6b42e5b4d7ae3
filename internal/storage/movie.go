package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/pkg/types"
)

type movieStore struct {
	db *gorm.DB
}

func (s *movieStore) Create(ctx context.Context, m *models.Movie) error {
	return translate(s.db.WithContext(ctx).Create(m).Error)
}

func (s *movieStore) Get(ctx context.Context, id string) (*models.Movie, error) {
	var m models.Movie
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *movieStore) List(ctx context.Context, pq types.PageQuery) ([]*models.Movie, int64, error) {
	var (
		movies []*models.Movie
		total  int64
	)
	if err := s.db.WithContext(ctx).Model(&models.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := s.db.WithContext(ctx).
		Offset(pq.Offset()).
		Limit(pq.Limit).
		Find(&movies).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return movies, total, nil
}

func (s *movieStore) Update(ctx context.Context, id string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *movieStore) SoftDelete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Movie{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
