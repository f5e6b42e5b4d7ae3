package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelhouse/rental/internal/app/service/user"
	"github.com/reelhouse/rental/internal/models"
	"github.com/reelhouse/rental/pkg/response"
	"github.com/reelhouse/rental/pkg/types"
)

// UserService is the directory surface consumed by the user endpoints.
type UserService interface {
	Create(ctx context.Context, in user.CreateInput) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, pq types.PageQuery) (*user.ListResult, error)
	Update(ctx context.Context, id string, in user.UpdateInput) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Document string `json:"document" binding:"required,document"`
	Gender   string `json:"gender" binding:"required,max=45"`
	Birthday string `json:"birthday" binding:"required,datetime=2006-01-02,adult"`
}

type updateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Email    *string `json:"email" binding:"omitempty,email,max=100"`
	Document *string `json:"document" binding:"omitempty,document"`
	Gender   *string `json:"gender" binding:"omitempty,max=45"`
	Birthday *string `json:"birthday" binding:"omitempty,datetime=2006-01-02,adult"`
}

// @Summary      Create a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        user  body  createUserRequest  true  "User"
// @Success      201  {object}  response.APIResponse[models.User]
// @Failure      400  {object}  response.APIResponse[any]
// @Router       /users [post]
func createUser(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, validationMessage(err))
			return
		}
		birthday, _ := time.Parse(birthdayLayout, req.Birthday)
		u, err := svc.Create(c.Request.Context(), user.CreateInput{
			Name:     req.Name,
			Email:    req.Email,
			Document: req.Document,
			Gender:   req.Gender,
			Birthday: birthday,
		})
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusCreated, u)
	}
}

func listUsers(svc UserService) gin.HandlerFunc {
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

func getUser(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, u)
	}
}

func updateUser(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, validationMessage(err))
			return
		}
		in := user.UpdateInput{
			Name:     req.Name,
			Email:    req.Email,
			Document: req.Document,
			Gender:   req.Gender,
		}
		if req.Birthday != nil {
			birthday, _ := time.Parse(birthdayLayout, *req.Birthday)
			in.Birthday = &birthday
		}
		u, err := svc.Update(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, http.StatusOK, u)
	}
}

func deleteUser(svc UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			response.Error(c, err)
			return
		}
		response.NoContent(c)
	}
}

func RegisterUserRoutes(r gin.IRouter, svc UserService) {
	r.POST("/users", createUser(svc))
	r.GET("/users", listUsers(svc))
	r.GET("/users/:id", getUser(svc))
	r.PATCH("/users/:id", updateUser(svc))
	r.DELETE("/users/:id", deleteUser(svc))
}
