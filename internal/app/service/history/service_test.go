package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reelhouse/rental/internal/app/service/rent"
	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/internal/storage"
	"github.com/reelhouse/rental/internal/storage/storagetest"
	"github.com/reelhouse/rental/pkg/apperr"
	"github.com/reelhouse/rental/pkg/tool"
	"github.com/reelhouse/rental/pkg/types"
)

func newFixture(t *testing.T) (*Service, *rent.Service, *storagetest.Store) {
	t.Helper()
	store := storagetest.New()
	log := zap.NewNop().Sugar()
	return NewService(store, log), rent.NewService(store, log), store
}

func seedMovie(t *testing.T, store *storagetest.Store, name string) *models.Movie {
	t.Helper()
	m := &models.Movie{ID: tool.GenerateUUIDV7(), Name: name, Genre: "drama", Director: "someone", Quantity: 10}
	require.NoError(t, store.Movies().Create(context.Background(), m))
	return m
}

func seedUser(t *testing.T, store *storagetest.Store, name string) *models.User {
	t.Helper()
	u := &models.User{
		ID:       tool.GenerateUUIDV7(),
		Name:     name,
		Email:    name + "@example.com",
		Document: tool.GenerateUUIDV7()[25:],
		Gender:   "other",
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func TestSentence(t *testing.T) {
	ts := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

	got := Sentence(storage.HistoryEntry{
		MovieName: "The Godfather", UserName: "Alice", Action: types.RentActionRent, CreatedAt: ts,
	})
	assert.Equal(t, `The movie "The Godfather" was rented by "Alice" on 03/09/2024.`, got)

	got = Sentence(storage.HistoryEntry{
		MovieName: "The Godfather", UserName: "Alice", Action: types.RentActionRenew, CreatedAt: ts,
	})
	assert.Equal(t, `The movie "The Godfather" was renewed by "Alice" on 03/09/2024.`, got)
}

func TestListAllNewestFirst(t *testing.T) {
	svc, rents, store := newFixture(t)
	movie := seedMovie(t, store, "Heat")
	alice := seedUser(t, store, "Alice")
	bob := seedUser(t, store, "Bob")

	due := time.Now().AddDate(0, 0, 7)
	r, err := rents.Create(context.Background(), rent.CreateInput{MovieID: movie.ID, UserID: alice.ID, ReturnDate: due})
	require.NoError(t, err)
	_, err = rents.Create(context.Background(), rent.CreateInput{MovieID: movie.ID, UserID: bob.ID, ReturnDate: due})
	require.NoError(t, err)
	_, err = rents.Renew(context.Background(), r.ID, 2)
	require.NoError(t, err)

	res, err := svc.ListAll(context.Background(), types.NewPageQuery(0, 0))
	require.NoError(t, err)
	require.Len(t, res.Histories, 3)
	assert.EqualValues(t, 3, res.Total)

	assert.Contains(t, res.Histories[0], `was renewed by "Alice"`)
	assert.Contains(t, res.Histories[1], `was rented by "Bob"`)
	assert.Contains(t, res.Histories[2], `was rented by "Alice"`)
}

func TestListAllPagination(t *testing.T) {
	svc, rents, store := newFixture(t)
	movie := seedMovie(t, store, "Heat")
	due := time.Now().AddDate(0, 0, 7)

	for i := 0; i < 5; i++ {
		u := seedUser(t, store, fmt.Sprintf("user%d", i))
		_, err := rents.Create(context.Background(), rent.CreateInput{MovieID: movie.ID, UserID: u.ID, ReturnDate: due})
		require.NoError(t, err)
	}

	res, err := svc.ListAll(context.Background(), types.PageQuery{Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Len(t, res.Histories, 2)
	assert.EqualValues(t, 5, res.Total)
	assert.Equal(t, 2, res.PerPage)

	// Newest-first feed, page 2 skips the two latest entries.
	assert.Contains(t, res.Histories[0], `"user2"`)
	assert.Contains(t, res.Histories[1], `"user1"`)

	res, err = svc.ListAll(context.Background(), types.PageQuery{Limit: 2, Page: 3})
	require.NoError(t, err)
	assert.Len(t, res.Histories, 1)

	res, err = svc.ListAll(context.Background(), types.PageQuery{Limit: 2, Page: 4})
	require.NoError(t, err)
	assert.Empty(t, res.Histories)
	assert.EqualValues(t, 5, res.Total)
}

func TestListByMovieFilters(t *testing.T) {
	svc, rents, store := newFixture(t)
	heat := seedMovie(t, store, "Heat")
	alien := seedMovie(t, store, "Alien")
	alice := seedUser(t, store, "Alice")
	due := time.Now().AddDate(0, 0, 7)

	_, err := rents.Create(context.Background(), rent.CreateInput{MovieID: heat.ID, UserID: alice.ID, ReturnDate: due})
	require.NoError(t, err)
	_, err = rents.Create(context.Background(), rent.CreateInput{MovieID: alien.ID, UserID: alice.ID, ReturnDate: due})
	require.NoError(t, err)

	res, err := svc.ListByMovie(context.Background(), heat.ID, types.NewPageQuery(0, 0))
	require.NoError(t, err)
	require.Len(t, res.Histories, 1)
	assert.Contains(t, res.Histories[0], `The movie "Heat"`)
	assert.EqualValues(t, 1, res.Total)
}

func TestListByMovieUnknownMovie(t *testing.T) {
	svc, _, _ := newFixture(t)
	_, err := svc.ListByMovie(context.Background(), tool.GenerateUUIDV7(), types.NewPageQuery(0, 0))
	assert.ErrorIs(t, err, apperr.ErrResourceNotFound)
}

func TestFeedKeepsReturnedRentals(t *testing.T) {
	svc, rents, store := newFixture(t)
	movie := seedMovie(t, store, "Heat")
	alice := seedUser(t, store, "Alice")
	due := time.Now().AddDate(0, 0, 7)

	r, err := rents.Create(context.Background(), rent.CreateInput{MovieID: movie.ID, UserID: alice.ID, ReturnDate: due})
	require.NoError(t, err)

	returned := 1
	_, err = rents.Update(context.Background(), r.ID, rent.UpdateInput{Returned: &returned})
	require.NoError(t, err)

	// Returning does not append a ledger entry, and the original rent
	// entry stays visible in the feed.
	res, err := svc.ListAll(context.Background(), types.NewPageQuery(0, 0))
	require.NoError(t, err)
	require.Len(t, res.Histories, 1)
	assert.Contains(t, res.Histories[0], "was rented")
}
