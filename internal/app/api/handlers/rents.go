package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelhouse/rental/internal/app/service/rent"
	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/pkg/response"
	"github.com/reelhouse/rental/pkg/types"
)

// RentService is the lifecycle engine surface consumed by the rent
// endpoints.
type RentService interface {
	Create(ctx context.Context, in rent.CreateInput) (*models.Rent, error)
	Renew(ctx context.Context, id string, days int) (*models.Rent, error)
	Get(ctx context.Context, id string) (*models.Rent, error)
	List(ctx context.Context, pq types.PageQuery) (*rent.ListResult, error)
	Update(ctx context.Context, id string, in rent.UpdateInput) (*models.Rent, error)
	Delete(ctx context.Context, id string) error
}

type createRentRequest struct {
	MovieID    string    `json:"movie_id" binding:"required,uuid"`
	UserID     string    `json:"user_id" binding:"required,uuid"`
	ReturnDate time.Time `json:"return_date" binding:"required"`
}

type updateRentRequest struct {
	ReturnDate *time.Time `json:"return_date"`
	Returned   *int       `json:"returned" binding:"omitempty,oneof=0 1"`
}

type renewRentRequest struct {
	Days int `json:"days" binding:"required,gte=1"`
}

// @Summary      Create a rental
// @Description  Rents a movie to a user; fails when the movie is out of
// @Description  stock, the user holds 5 active rentals, or the pair
// @Description  already has an active rental.
// @Tags         Rents
// @Accept       json
// @Produce      json
// @Param        rent  body  createRentRequest  true  "Rental"
// @Success      201  {object}  response.APIResponse[models.Rent]
// @Failure      400  {object}  response.APIResponse[any]
// @Failure      404  {object}  response.APIResponse[any]
// @Router       /rents [post]
func createRent(svc RentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, validationMessage(err))
			return
		}
		r, err := svc.Create(c.Request.Context(), rent.CreateInput{
			MovieID:    req.MovieID,
			UserID:     req.UserID,
			ReturnDate: req.ReturnDate,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusCreated, r)
	}
}

// @Summary      Renew a rental
// @Description  Extends the return date by the requested days. A rental
// @Description  can be renewed at most twice.
// @Tags         Rents
// @Accept       json
// @Produce      json
// @Param        id     path  string            true  "Rental ID"
// @Param        renew  body  renewRentRequest  true  "Days to extend"
// @Success      200  {object}  response.APIResponse[models.Rent]
// @Failure      400  {object}  response.APIResponse[any]
// @Failure      404  {object}  response.APIResponse[any]
// @Router       /rents/{id}/renew [post]
func renewRent(svc RentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req renewRentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, validationMessage(err))
			return
		}
		r, err := svc.Renew(c.Request.Context(), c.Param("id"), req.Days)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, r)
	}
}

func listRents(svc RentService) gin.HandlerFunc {
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

func getRent(svc RentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, r)
	}
}

func updateRent(svc RentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateRentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, validationMessage(err))
			return
		}
		r, err := svc.Update(c.Request.Context(), c.Param("id"), rent.UpdateInput{
			ReturnDate: req.ReturnDate,
			Returned:   req.Returned,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, r)
	}
}

func deleteRent(svc RentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			response.Error(c, err)
			return
		}
		response.NoContent(c)
	}
}

func RegisterRentRoutes(r gin.IRouter, svc RentService) {
	r.POST("/rents", createRent(svc))
	r.POST("/rents/:id/renew", renewRent(svc))
	r.GET("/rents", listRents(svc))
	r.GET("/rents/:id", getRent(svc))
	r.PATCH("/rents/:id", updateRent(svc))
	r.DELETE("/rents/:id", deleteRent(svc))
}
