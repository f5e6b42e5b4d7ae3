// Package history is the reporting side of the ledger: paginated,
// newest-first feeds of human-readable sentences describing rent and renew
// actions.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/reelhouse/rental/internal/storage"
	"github.com/reelhouse/rental/pkg/apperr"
	"github.com/reelhouse/rental/pkg/types"
)

// dateLayout renders ledger timestamps as MM/dd/yyyy in feed sentences.
const dateLayout = "01/02/2006"

type Service struct {
	store storage.Store
	log   *zap.SugaredLogger
}

func NewService(store storage.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

type ListResult struct {
	Histories []string `json:"histories"`
	Total     int64    `json:"total"`
	PerPage   int      `json:"perPage"`
}

// ListAll returns the feed across every movie.
func (s *Service) ListAll(ctx context.Context, pq types.PageQuery) (*ListResult, error) {
	return s.list(ctx, nil, pq)
}

// ListByMovie returns the feed for one movie. The movie must exist and not
// be soft-deleted.
func (s *Service) ListByMovie(ctx context.Context, movieID string, pq types.PageQuery) (*ListResult, error) {
	if _, err := s.store.Movies().Get(ctx, movieID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperr.ErrResourceNotFound
		}
		return nil, err
	}
	return s.list(ctx, &movieID, pq)
}

func (s *Service) list(ctx context.Context, movieID *string, pq types.PageQuery) (*ListResult, error) {
	entries, total, err := s.store.Ledger().List(ctx, movieID, pq)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Histories: lo.Map(entries, func(e storage.HistoryEntry, _ int) string {
			return Sentence(e)
		}),
		Total:   total,
		PerPage: pq.Limit,
	}, nil
}

// Sentence renders one ledger entry as its feed line.
func Sentence(e storage.HistoryEntry) string {
	return fmt.Sprintf("The movie %q was %s by %q on %s.",
		e.MovieName, e.Action.Verb(), e.UserName, e.CreatedAt.Format(dateLayout))
}
