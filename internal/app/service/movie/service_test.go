package movie

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reelhouse/rental/internal/storage/storagetest"
	"github.com/reelhouse/rental/pkg/apperr"
	"github.com/reelhouse/rental/pkg/tool"
	"github.com/reelhouse/rental/pkg/types"
)

func newTestService(t *testing.T) (*Service, *storagetest.Store) {
	t.Helper()
	store := storagetest.New()
	return NewService(store, zap.NewNop().Sugar()), store
}

func TestCreateMovie(t *testing.T) {
	svc, _ := newTestService(t)

	m, err := svc.Create(context.Background(), CreateInput{
		Name: "Heat", Genre: "crime", Director: "Michael Mann", Quantity: 3,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Heat", m.Name)
	assert.Equal(t, 3, m.Quantity)
}

func TestCreateMovieDuplicateName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Heat", Genre: "crime", Director: "Michael Mann"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateInput{Name: "Heat", Genre: "crime", Director: "Michael Mann"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestGetMovie(t *testing.T) {
	svc, _ := newTestService(t)

	m, err := svc.Create(context.Background(), CreateInput{Name: "Heat", Genre: "crime", Director: "Michael Mann"})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Name, got.Name)

	_, err = svc.Get(context.Background(), tool.GenerateUUIDV7())
	assert.ErrorIs(t, err, apperr.ErrResourceNotFound)
}

func TestListMovies(t *testing.T) {
	svc, _ := newTestService(t)
	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), CreateInput{
			Name: fmt.Sprintf("Movie %d", i), Genre: "drama", Director: "someone",
		})
		require.NoError(t, err)
	}

	res, err := svc.List(context.Background(), types.PageQuery{Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.EqualValues(t, 5, res.Total)
	assert.Equal(t, "Movie 2", res.Items[0].Name)
}

func TestUpdateMoviePartial(t *testing.T) {
	svc, _ := newTestService(t)

	m, err := svc.Create(context.Background(), CreateInput{Name: "Heat", Genre: "crime", Director: "Michael Mann", Quantity: 3})
	require.NoError(t, err)

	quantity := 7
	got, err := svc.Update(context.Background(), m.ID, UpdateInput{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
	assert.Equal(t, "Heat", got.Name, "untouched field must survive a partial update")

	_, err = svc.Update(context.Background(), tool.GenerateUUIDV7(), UpdateInput{Quantity: &quantity})
	assert.ErrorIs(t, err, apperr.ErrResourceNotFound)
}

func TestDeleteMovieHidesItEverywhere(t *testing.T) {
	svc, _ := newTestService(t)

	m, err := svc.Create(context.Background(), CreateInput{Name: "Heat", Genre: "crime", Director: "Michael Mann"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), m.ID))

	_, err = svc.Get(context.Background(), m.ID)
	assert.ErrorIs(t, err, apperr.ErrResourceNotFound)

	res, err := svc.List(context.Background(), types.NewPageQuery(0, 0))
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.Total)

	assert.ErrorIs(t, svc.Delete(context.Background(), m.ID), apperr.ErrResourceNotFound)
}
