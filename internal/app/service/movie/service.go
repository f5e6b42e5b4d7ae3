// Package movie is the catalog: plain soft-delete CRUD over movie rows.
// The lifecycle engine consults it for existence and stock ceilings.
package movie

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/internal/storage"
	"github.com/reelhouse/rental/pkg/apperr"
	"github.com/reelhouse/rental/pkg/logctx"
	"github.com/reelhouse/rental/pkg/tool"
	"github.com/reelhouse/rental/pkg/types"
)

// ErrDuplicateName means a movie with the same name already exists.
var ErrDuplicateName = apperr.New(apperr.Conflict, "Movie already exists.")

type Service struct {
	store storage.Store
	log   *zap.SugaredLogger
}

func NewService(store storage.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

type CreateInput struct {
	Name     string
	Genre    string
	Director string
	Quantity int
}

type UpdateInput struct {
	Name     *string
	Genre    *string
	Director *string
	Quantity *int
}

type ListResult struct {
	Items   []*models.Movie `json:"items"`
	Total   int64           `json:"total"`
	PerPage int             `json:"perPage"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Movie, error) {
	m := &models.Movie{
		ID:       tool.GenerateUUIDV7(),
		Name:     in.Name,
		Genre:    in.Genre,
		Director: in.Director,
		Quantity: in.Quantity,
	}
	if err := s.store.Movies().Create(ctx, m); err != nil {
		return nil, classify(err)
	}
	logctx.FromCtx(ctx, s.log).Infow("movie created", "movie_id", m.ID, "name", m.Name)
	return m, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Movie, error) {
	m, err := s.store.Movies().Get(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, pq types.PageQuery) (*ListResult, error) {
	items, total, err := s.store.Movies().List(ctx, pq)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, PerPage: pq.Limit}, nil
}

// Update merges only the provided fields, then re-fetches the row so the
// caller sees trigger-maintained columns like updated_at.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*models.Movie, error) {
	if _, err := s.store.Movies().Get(ctx, id); err != nil {
		return nil, classify(err)
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Genre != nil {
		fields["genre"] = *in.Genre
	}
	if in.Director != nil {
		fields["director"] = *in.Director
	}
	if in.Quantity != nil {
		fields["quantity"] = *in.Quantity
	}
	if len(fields) > 0 {
		if err := s.store.Movies().Update(ctx, id, fields); err != nil {
			return nil, classify(err)
		}
	}
	m, err := s.store.Movies().Get(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Movies().SoftDelete(ctx, id); err != nil {
		return classify(err)
	}
	logctx.FromCtx(ctx, s.log).Infow("movie deleted", "movie_id", id)
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperr.ErrResourceNotFound
	case errors.Is(err, storage.ErrDuplicate):
		return ErrDuplicateName
	default:
		return err
	}
}
