package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelhouse/rental/internal/app/service/history"
	"github.com/reelhouse/rental/internal/app/service/movie"
	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/pkg/response"
	"github.com/reelhouse/rental/pkg/types"
)

// MovieService is the catalog surface consumed by the movie endpoints.
type MovieService interface {
	Create(ctx context.Context, in movie.CreateInput) (*models.Movie, error)
	Get(ctx context.Context, id string) (*models.Movie, error)
	List(ctx context.Context, pq types.PageQuery) (*movie.ListResult, error)
	Update(ctx context.Context, id string, in movie.UpdateInput) (*models.Movie, error)
	Delete(ctx context.Context, id string) error
}

// HistoryService is the reporting surface for the rental feed.
type HistoryService interface {
	ListAll(ctx context.Context, pq types.PageQuery) (*history.ListResult, error)
	ListByMovie(ctx context.Context, movieID string, pq types.PageQuery) (*history.ListResult, error)
}

type createMovieRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Genre    string `json:"genre" binding:"required,max=100"`
	Director string `json:"director" binding:"required,max=100"`
	Quantity *int   `json:"quantity" binding:"omitempty,gte=0"`
}

type updateMovieRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Genre    *string `json:"genre" binding:"omitempty,max=100"`
	Director *string `json:"director" binding:"omitempty,max=100"`
	Quantity *int    `json:"quantity" binding:"omitempty,gte=0"`
}

// @Summary      Create a movie
// @Tags         Movies
// @Accept       json
// @Produce      json
// @Param        movie  body  createMovieRequest  true  "Movie"
// @Success      201  {object}  response.APIResponse[models.Movie]
// @Failure      400  {object}  response.APIResponse[any]
// @Router       /movies [post]
func createMovie(svc MovieService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createMovieRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, validationMessage(err))
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		m, err := svc.Create(c.Request.Context(), movie.CreateInput{
			Name:     req.Name,
			Genre:    req.Genre,
			Director: req.Director,
			Quantity: quantity,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusCreated, m)
	}
}

// @Summary      List movies
// @Tags         Movies
// @Produce      json
// @Param        limit  query  int  false  "Page size (default 10)"
// @Param        page   query  int  false  "Page number (default 1)"
// @Success      200  {object}  response.APIResponse[movie.ListResult]
// @Router       /movies [get]
func listMovies(svc MovieService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pq, ok := pageQuery(c)
		if !ok {
			return
		}
		res, err := svc.List(c.Request.Context(), pq)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, res)
	}
}

func getMovie(svc MovieService) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, m)
	}
}

func updateMovie(svc MovieService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateMovieRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, validationMessage(err))
			return
		}
		m, err := svc.Update(c.Request.Context(), c.Param("id"), movie.UpdateInput{
			Name:     req.Name,
			Genre:    req.Genre,
			Director: req.Director,
			Quantity: req.Quantity,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, m)
	}
}

func deleteMovie(svc MovieService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			response.Error(c, err)
			return
		}
		response.NoContent(c)
	}
}

// @Summary      Rental history feed across all movies
// @Tags         Movies
// @Produce      json
// @Param        limit  query  int  false  "Page size (default 10)"
// @Param        page   query  int  false  "Page number (default 1)"
// @Success      200  {object}  response.APIResponse[history.ListResult]
// @Router       /movies/histories [get]
func listAllHistories(svc HistoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pq, ok := pageQuery(c)
		if !ok {
			return
		}
		res, err := svc.ListAll(c.Request.Context(), pq)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, res)
	}
}

func movieHistory(svc HistoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pq, ok := pageQuery(c)
		if !ok {
			return
		}
		res, err := svc.ListByMovie(c.Request.Context(), c.Param("id"), pq)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, res)
	}
}

func RegisterMovieRoutes(r gin.IRouter, svc MovieService, hist HistoryService) {
	r.POST("/movies", createMovie(svc))
	r.GET("/movies", listMovies(svc))
	r.GET("/movies/histories", listAllHistories(hist))
	r.GET("/movies/:id", getMovie(svc))
	r.GET("/movies/:id/history", movieHistory(hist))
	r.PATCH("/movies/:id", updateMovie(svc))
	r.DELETE("/movies/:id", deleteMovie(svc))
}
