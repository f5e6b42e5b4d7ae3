// Package storagetest provides an in-memory storage.Store for service
// tests. Transaction takes a snapshot of all tables and restores it when
// the callback fails, so rollback behaviour can be asserted without a
// database.
package storagetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/internal/storage"
	"github.com/reelhouse/rental/pkg/types"
)

type Store struct {
	mu sync.Mutex

	movies  []*models.Movie
	users   []*models.User
	rents   []*models.Rent
	history []*models.RentHistory

	clock time.Time

	// AppendErr, when set, makes the next Ledger().Append fail with it.
	AppendErr error
}

func New() *Store {
	return &Store{clock: time.Now()}
}

// tick returns a strictly increasing timestamp so ledger ordering is
// deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *Store) Movies() storage.MovieStore  { return (*movieStore)(s) }
func (s *Store) Users() storage.UserStore    { return (*userStore)(s) }
func (s *Store) Rents() storage.RentStore    { return (*rentStore)(s) }
func (s *Store) Ledger() storage.LedgerStore { return (*ledgerStore)(s) }

func (s *Store) Transaction(ctx context.Context, fn func(tx storage.Store) error) error {
	s.mu.Lock()
	movies := snapshotSlice(s.movies)
	users := snapshotSlice(s.users)
	rents := snapshotSlice(s.rents)
	history := snapshotSlice(s.history)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.movies, s.users, s.rents, s.history = movies, users, rents, history
		s.mu.Unlock()
		return err
	}
	return nil
}

func snapshotSlice[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		c := *v
		out[i] = &c
	}
	return out
}

// HistoryRows returns a copy of the ledger for assertions.
func (s *Store) HistoryRows() []*models.RentHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotSlice(s.history)
}

// RentRows returns a copy of the rent table, including soft-deleted rows.
func (s *Store) RentRows() []*models.Rent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotSlice(s.rents)
}

// --- movies ---

type movieStore Store

func (s *movieStore) Create(_ context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.movies {
		if !ex.DeletedAt.Valid && ex.Name == m.Name {
			return storage.ErrDuplicate
		}
	}
	m.CreatedAt = (*Store)(s).tick()
	c := *m
	s.movies = append(s.movies, &c)
	return nil
}

func (s *movieStore) Get(_ context.Context, id string) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movies {
		if m.ID == id && !m.DeletedAt.Valid {
			c := *m
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *movieStore) List(_ context.Context, pq types.PageQuery) ([]*models.Movie, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var live []*models.Movie
	for _, m := range s.movies {
		if !m.DeletedAt.Valid {
			c := *m
			live = append(live, &c)
		}
	}
	return pageOf(live, pq), int64(len(live)), nil
}

func (s *movieStore) Update(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movies {
		if m.ID == id && !m.DeletedAt.Valid {
			if v, ok := fields["name"]; ok {
				m.Name = v.(string)
			}
			if v, ok := fields["genre"]; ok {
				m.Genre = v.(string)
			}
			if v, ok := fields["director"]; ok {
				m.Director = v.(string)
			}
			if v, ok := fields["quantity"]; ok {
				m.Quantity = v.(int)
			}
			m.UpdatedAt = (*Store)(s).tick()
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *movieStore) SoftDelete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movies {
		if m.ID == id && !m.DeletedAt.Valid {
			m.DeletedAt = gorm.DeletedAt{Time: (*Store)(s).tick(), Valid: true}
			return nil
		}
	}
	return storage.ErrNotFound
}

// --- users ---

type userStore Store

func (s *userStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.users {
		if !ex.DeletedAt.Valid && (ex.Email == u.Email || ex.Document == u.Document) {
			return storage.ErrDuplicate
		}
	}
	u.CreatedAt = (*Store)(s).tick()
	c := *u
	s.users = append(s.users, &c)
	return nil
}

func (s *userStore) Get(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id && !u.DeletedAt.Valid {
			c := *u
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *userStore) List(_ context.Context, pq types.PageQuery) ([]*models.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var live []*models.User
	for _, u := range s.users {
		if !u.DeletedAt.Valid {
			c := *u
			live = append(live, &c)
		}
	}
	return pageOf(live, pq), int64(len(live)), nil
}

func (s *userStore) Update(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id && !u.DeletedAt.Valid {
			if v, ok := fields["name"]; ok {
				u.Name = v.(string)
			}
			if v, ok := fields["email"]; ok {
				u.Email = v.(string)
			}
			if v, ok := fields["document"]; ok {
				u.Document = v.(string)
			}
			if v, ok := fields["gender"]; ok {
				u.Gender = v.(string)
			}
			if v, ok := fields["birthday"]; ok {
				u.Birthday = v.(time.Time)
			}
			u.UpdatedAt = (*Store)(s).tick()
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *userStore) SoftDelete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id && !u.DeletedAt.Valid {
			u.DeletedAt = gorm.DeletedAt{Time: (*Store)(s).tick(), Valid: true}
			return nil
		}
	}
	return storage.ErrNotFound
}

// --- rents ---

type rentStore Store

func (s *rentStore) Create(_ context.Context, r *models.Rent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.CreatedAt = (*Store)(s).tick()
	c := *r
	s.rents = append(s.rents, &c)
	return nil
}

func (s *rentStore) Get(_ context.Context, id string) (*models.Rent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rents {
		if r.ID == id && !r.DeletedAt.Valid {
			c := *r
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *rentStore) List(_ context.Context, pq types.PageQuery) ([]*models.Rent, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var live []*models.Rent
	for _, r := range s.rents {
		if !r.DeletedAt.Valid {
			c := *r
			live = append(live, &c)
		}
	}
	return pageOf(live, pq), int64(len(live)), nil
}

func (s *rentStore) Update(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rents {
		if r.ID == id && !r.DeletedAt.Valid {
			if v, ok := fields["return_date"]; ok {
				r.ReturnDate = v.(time.Time)
			}
			if v, ok := fields["returned"]; ok {
				r.Returned = v.(int)
			}
			r.UpdatedAt = (*Store)(s).tick()
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *rentStore) CountOverdue(_ context.Context, asOf time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.rents {
		if !r.DeletedAt.Valid && r.Returned == 0 && r.ReturnDate.Before(asOf) {
			n++
		}
	}
	return n, nil
}

func (s *rentStore) SoftDelete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rents {
		if r.ID == id && !r.DeletedAt.Valid {
			r.DeletedAt = gorm.DeletedAt{Time: (*Store)(s).tick(), Valid: true}
			return nil
		}
	}
	return storage.ErrNotFound
}

// --- ledger ---

type ledgerStore Store

func (s *ledgerStore) Append(_ context.Context, h *models.RentHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AppendErr != nil {
		err := s.AppendErr
		s.AppendErr = nil
		return err
	}
	h.CreatedAt = (*Store)(s).tick()
	c := *h
	s.history = append(s.history, &c)
	return nil
}

func (s *ledgerStore) rentByID(id string) *models.Rent {
	for _, r := range s.rents {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *ledgerStore) countActive(action types.RentAction, match func(*models.Rent) bool) int64 {
	var n int64
	for _, h := range s.history {
		if h.Action != action {
			continue
		}
		r := s.rentByID(h.RentID)
		if r == nil || r.DeletedAt.Valid || r.Returned != 0 {
			continue
		}
		if match(r) {
			n++
		}
	}
	return n
}

func (s *ledgerStore) CountActiveByUser(_ context.Context, userID string, action types.RentAction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countActive(action, func(r *models.Rent) bool { return r.UserID == userID }), nil
}

func (s *ledgerStore) CountActiveByMovie(_ context.Context, movieID string, action types.RentAction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countActive(action, func(r *models.Rent) bool { return r.MovieID == movieID }), nil
}

func (s *ledgerStore) CountActiveByMovieAndUser(_ context.Context, movieID, userID string, action types.RentAction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countActive(action, func(r *models.Rent) bool {
		return r.MovieID == movieID && r.UserID == userID
	}), nil
}

func (s *ledgerStore) CountActiveByRent(_ context.Context, rentID string, action types.RentAction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countActive(action, func(r *models.Rent) bool { return r.ID == rentID }), nil
}

func (s *ledgerStore) List(_ context.Context, movieID *string, pq types.PageQuery) ([]storage.HistoryEntry, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []storage.HistoryEntry
	for _, h := range s.history {
		r := s.rentByID(h.RentID)
		if r == nil || r.DeletedAt.Valid {
			continue
		}
		if movieID != nil && r.MovieID != *movieID {
			continue
		}
		entry := storage.HistoryEntry{Action: h.Action, CreatedAt: h.CreatedAt}
		for _, m := range s.movies {
			if m.ID == r.MovieID {
				entry.MovieName = m.Name
			}
		}
		for _, u := range s.users {
			if u.ID == r.UserID {
				entry.UserName = u.Name
			}
		}
		all = append(all, entry)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	return pageOf(all, pq), total, nil
}

func pageOf[T any](in []T, pq types.PageQuery) []T {
	start := pq.Offset()
	if start >= len(in) {
		return nil
	}
	end := start + pq.Limit
	if end > len(in) {
		end = len(in)
	}
	return in[start:end]
}
