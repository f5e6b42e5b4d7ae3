package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reelhouse/rental/internal/app/service/history"
	"github.com/reelhouse/rental/internal/app/service/movie"
	"github.com/reelhouse/rental/internal/app/service/rent"
	"github.com/reelhouse/rental/internal/app/service/user"
	"github.com/reelhouse/rental/internal/storage/storagetest"
	"github.com/reelhouse/rental/pkg/tool"
)

func newTestRouter(t *testing.T) (*gin.Engine, *storagetest.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := storagetest.New()
	log := zap.NewNop().Sugar()

	r := gin.New()
	RegisterMovieRoutes(r, movie.NewService(store, log), history.NewService(store, log))
	RegisterUserRoutes(r, user.NewService(store, log))
	RegisterRentRoutes(r, rent.NewService(store, log))
	RegisterHealthRoutes(r)
	return r, store
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func createMovieReq(t *testing.T, r *gin.Engine, name string, quantity int) string {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/movies", gin.H{
		"name": name, "genre": "drama", "director": "someone", "quantity": quantity,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var m struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m.ID
}

func createUserReq(t *testing.T, r *gin.Engine, name, email, doc string) string {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/users", gin.H{
		"name": name, "email": email, "document": doc,
		"gender": "other", "birthday": "1990-05-20",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var u struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &u))
	return u.ID
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMovieCRUD(t *testing.T) {
	r, _ := newTestRouter(t)
	id := createMovieReq(t, r, "Heat", 3)

	w, env := doJSON(t, r, http.MethodGet, "/movies/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, r, http.MethodPatch, "/movies/"+id, gin.H{"quantity": 9})
	assert.Equal(t, http.StatusOK, w.Code)
	var m struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, "Heat", m.Name)
	assert.Equal(t, 9, m.Quantity)

	w, _ = doJSON(t, r, http.MethodDelete, "/movies/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/movies/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resource not found.", env.Message)
}

func TestCreateMovieValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/movies", gin.H{"genre": "drama", "director": "someone"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body.", env.Message)

	createMovieReq(t, r, "Heat", 1)
	w, env = doJSON(t, r, http.MethodPost, "/movies", gin.H{
		"name": "Heat", "genre": "drama", "director": "someone",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Movie already exists.", env.Message)
}

func TestListMoviesPaginationParams(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		path string
		msg  string
	}{
		{"/movies?limit=abc", "Limit query param invalid. Must be a number greater than zero."},
		{"/movies?limit=0", "Limit query param invalid. Must be a number greater than zero."},
		{"/movies?page=-1", "Page query param invalid. Must be a number greater than zero."},
		{"/movies?size=5&order=asc", "Unrecognized query params: order, size"},
	}
	for _, tc := range cases {
		w, env := doJSON(t, r, http.MethodGet, tc.path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.Equal(t, tc.msg, env.Message, tc.path)
	}

	w, _ := doJSON(t, r, http.MethodGet, "/movies?limit=5&page=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateUserValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	base := func() gin.H {
		return gin.H{
			"name": "Alice", "email": "alice@example.com",
			"document": "52998224725", "gender": "female", "birthday": "1990-05-20",
		}
	}

	cases := []struct {
		name   string
		mutate func(gin.H)
		msg    string
	}{
		{"bad checksum", func(b gin.H) { b["document"] = "52998224726" }, "Document is not valid!"},
		{"repeated digits", func(b gin.H) { b["document"] = "11111111111" }, "Document is not valid!"},
		{"bad email", func(b gin.H) { b["email"] = "not-an-email" }, "Email is not valid."},
		{"bad birthday format", func(b gin.H) { b["birthday"] = "20/05/1990" }, "Birthday must be a date in YYYY-MM-DD format."},
		{"underage", func(b gin.H) { b["birthday"] = time.Now().AddDate(-17, 0, 0).Format("2006-01-02") }, "Only people over 18 are allowed."},
		{"missing name", func(b gin.H) { delete(b, "name") }, "Invalid request body."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := base()
			tc.mutate(body)
			w, env := doJSON(t, r, http.MethodPost, "/users", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.msg, env.Message)
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	r, _ := newTestRouter(t)
	createUserReq(t, r, "Alice", "alice@example.com", "52998224725")

	w, env := doJSON(t, r, http.MethodPost, "/users", gin.H{
		"name": "Alice Two", "email": "alice@example.com", "document": "09762154622",
		"gender": "female", "birthday": "1990-05-20",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists.", env.Message)
}

func TestRentLifecycleOverHTTP(t *testing.T) {
	r, store := newTestRouter(t)
	movieID := createMovieReq(t, r, "Heat", 1)
	aliceID := createUserReq(t, r, "Alice", "alice@example.com", "52998224725")
	bobID := createUserReq(t, r, "Bob", "bob@example.com", "09762154622")

	due := time.Now().AddDate(0, 0, 7).UTC().Format(time.RFC3339)

	w, env := doJSON(t, r, http.MethodPost, "/rents", gin.H{
		"movie_id": movieID, "user_id": aliceID, "return_date": due,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Single copy, so the second user is refused.
	w, env = doJSON(t, r, http.MethodPost, "/rents", gin.H{
		"movie_id": movieID, "user_id": bobID, "return_date": due,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Movie out of stock.", env.Message)

	w, env = doJSON(t, r, http.MethodPost, "/rents/"+created.ID+"/renew", gin.H{"days": 3})
	assert.Equal(t, http.StatusOK, w.Code)

	// Return it, then the refused user can rent.
	w, _ = doJSON(t, r, http.MethodPatch, "/rents/"+created.ID, gin.H{"returned": 1})
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, r, http.MethodPost, "/rents", gin.H{
		"movie_id": movieID, "user_id": bobID, "return_date": due,
	})
	assert.Equal(t, http.StatusCreated, w.Code, env.Message)

	assert.Len(t, store.HistoryRows(), 3) // rent + renew + rent, no entry for the return
}

func TestRentValidation(t *testing.T) {
	r, _ := newTestRouter(t)
	movieID := createMovieReq(t, r, "Heat", 1)
	aliceID := createUserReq(t, r, "Alice", "alice@example.com", "52998224725")
	due := time.Now().AddDate(0, 0, 7).UTC().Format(time.RFC3339)

	w, env := doJSON(t, r, http.MethodPost, "/rents", gin.H{
		"movie_id": "not-a-uuid", "user_id": aliceID, "return_date": due,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body.", env.Message)

	w, env = doJSON(t, r, http.MethodPost, "/rents", gin.H{
		"movie_id": tool.GenerateUUIDV7(), "user_id": aliceID, "return_date": due,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resource not found.", env.Message)

	past := time.Now().AddDate(0, 0, -1).UTC().Format(time.RFC3339)
	w, env = doJSON(t, r, http.MethodPost, "/rents", gin.H{
		"movie_id": movieID, "user_id": aliceID, "return_date": past,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Return date must be in the future.", env.Message)

	w, env = doJSON(t, r, http.MethodPost, "/rents/"+tool.GenerateUUIDV7()+"/renew", gin.H{"days": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body.", env.Message)
}

func TestHistoryFeedEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)
	movieID := createMovieReq(t, r, "The Godfather", 5)
	otherID := createMovieReq(t, r, "Alien", 5)
	aliceID := createUserReq(t, r, "Alice", "alice@example.com", "52998224725")

	due := time.Now().AddDate(0, 0, 7).UTC().Format(time.RFC3339)
	for _, id := range []string{movieID, otherID} {
		w, env := doJSON(t, r, http.MethodPost, "/rents", gin.H{
			"movie_id": id, "user_id": aliceID, "return_date": due,
		})
		require.Equal(t, http.StatusCreated, w.Code, env.Message)
	}

	today := time.Now().Format("01/02/2006")

	w, env := doJSON(t, r, http.MethodGet, "/movies/histories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var feed struct {
		Histories []string `json:"histories"`
		Total     int64    `json:"total"`
		PerPage   int      `json:"perPage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	require.Len(t, feed.Histories, 2)
	assert.EqualValues(t, 2, feed.Total)
	assert.Equal(t, 10, feed.PerPage)
	assert.Equal(t, fmt.Sprintf(`The movie "Alien" was rented by "Alice" on %s.`, today), feed.Histories[0])
	assert.Equal(t, fmt.Sprintf(`The movie "The Godfather" was rented by "Alice" on %s.`, today), feed.Histories[1])

	w, env = doJSON(t, r, http.MethodGet, "/movies/"+movieID+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	require.Len(t, feed.Histories, 1)
	assert.Contains(t, feed.Histories[0], `"The Godfather"`)

	w, env = doJSON(t, r, http.MethodGet, "/movies/"+tool.GenerateUUIDV7()+"/history", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resource not found.", env.Message)
}
