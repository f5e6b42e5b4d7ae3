package user

import (
	"context"
	"testing"
	"time"

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

func validInput() CreateInput {
	return CreateInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Document: "52998224725",
		Gender:   "female",
		Birthday: time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateUser(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestCreateUserDuplicate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// Same email.
	in := validInput()
	in.Document = "09762154622"
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// Same document.
	in = validInput()
	in.Email = "alice2@example.com"
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestGetUser(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Document, got.Document)

	_, err = svc.Get(context.Background(), tool.GenerateUUIDV7())
	assert.ErrorIs(t, err, apperr.ErrResourceNotFound)
}

func TestUpdateUserPartial(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	email := "new@example.com"
	got, err := svc.Update(context.Background(), u.ID, UpdateInput{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "Alice", got.Name, "untouched field must survive a partial update")
}

func TestDeleteUserFreesUniqueValues(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), u.ID))

	_, err = svc.Get(context.Background(), u.ID)
	assert.ErrorIs(t, err, apperr.ErrResourceNotFound)

	// Uniqueness is scoped to live rows, so the same email and document
	// can be registered again after the delete.
	_, err = svc.Create(context.Background(), validInput())
	assert.NoError(t, err)
}

func TestListUsers(t *testing.T) {
	svc, _ := newTestService(t)

	in := validInput()
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	in.Email = "bob@example.com"
	in.Document = "09762154622"
	in.Name = "Bob"
	_, err = svc.Create(context.Background(), in)
	require.NoError(t, err)

	res, err := svc.List(context.Background(), types.NewPageQuery(0, 0))
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.EqualValues(t, 2, res.Total)
	assert.Equal(t, types.DefaultPageLimit, res.PerPage)
}
