// Package user is the customer directory: soft-delete CRUD over user rows.
// Document checksum and age validation happen at the transport boundary;
// this service only enforces uniqueness, translating the storage-level
// constraint violation into a domain conflict instead of leaking it as an
// internal error.
package user

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

// ErrDuplicateUser means the email or document is already registered.
var ErrDuplicateUser = apperr.New(apperr.Conflict, "User already exists.")

type Service struct {
	store storage.Store
	log   *zap.SugaredLogger
}

func NewService(store storage.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

type CreateInput struct {
	Name     string
	Email    string
	Document string
	Gender   string
	Birthday time.Time
}

type UpdateInput struct {
	Name     *string
	Email    *string
	Document *string
	Gender   *string
	Birthday *time.Time
}

type ListResult struct {
	Items   []*models.User `json:"items"`
	Total   int64          `json:"total"`
	PerPage int            `json:"perPage"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.User, error) {
	u := &models.User{
		ID:       tool.GenerateUUIDV7(),
		Name:     in.Name,
		Email:    in.Email,
		Document: in.Document,
		Gender:   in.Gender,
		Birthday: in.Birthday,
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, classify(err)
	}
	logctx.FromCtx(ctx, s.log).Infow("user created", "user_id", u.ID)
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.store.Users().Get(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, pq types.PageQuery) (*ListResult, error) {
	items, total, err := s.store.Users().List(ctx, pq)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, PerPage: pq.Limit}, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*models.User, error) {
	if _, err := s.store.Users().Get(ctx, id); err != nil {
		return nil, classify(err)
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Document != nil {
		fields["document"] = *in.Document
	}
	if in.Gender != nil {
		fields["gender"] = *in.Gender
	}
	if in.Birthday != nil {
		fields["birthday"] = *in.Birthday
	}
	if len(fields) > 0 {
		if err := s.store.Users().Update(ctx, id, fields); err != nil {
			return nil, classify(err)
		}
	}
	u, err := s.store.Users().Get(ctx, id)
	if err != nil {
		return nil, classify(err)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Users().SoftDelete(ctx, id); err != nil {
		return classify(err)
	}
	logctx.FromCtx(ctx, s.log).Infow("user deleted", "user_id", id)
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperr.ErrResourceNotFound
	case errors.Is(err, storage.ErrDuplicate):
		return ErrDuplicateUser
	default:
		return err
	}
}
