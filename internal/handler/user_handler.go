package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/eaglebank/user-directory/internal/repository"
	"github.com/eaglebank/user-directory/shared/cqrs"
	"github.com/eaglebank/user-directory/shared/middleware"
	"github.com/eaglebank/user-directory/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const welcomeMessage = "Welcome to the User Directory REST API! Try accessing /users to see all users."

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	CreateUser(context.Context, cqrs.CreateUserCommand) (*models.User, error)
	UpdateUser(context.Context, cqrs.UpdateUserCommand) (*models.User, error)
	DeleteUser(context.Context, cqrs.DeleteUserCommand) error
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	GetUser(cqrs.GetUserQuery) (*models.User, error)
	ListUsers(cqrs.ListUsersQuery) ([]models.User, error)
}

// UserHandler routes requests to the command or query service as appropriate.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

type CreateUserRequest struct {
	Name *string `json:"name" validate:"required"`
	Age  *int    `json:"age"`
}

// UpdateUserRequest carries a partial update; absent fields stay nil.
type UpdateUserRequest struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

var errEmptyBody = errors.New("request body is empty")

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

// Routes registers the directory endpoints on r.
func (h *UserHandler) Routes(r gin.IRouter) {
	r.GET("/", h.Index)
	r.GET("/health", h.Health)

	users := r.Group("/users")
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)
	users.GET("/:userId", h.GetUser)
	users.PUT("/:userId", h.UpdateUser)
	users.DELETE("/:userId", h.DeleteUser)
}

func (h *UserHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, welcomeMessage)
}

func (h *UserHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.queries.ListUsers(cqrs.ListUsersQuery{})
	if err != nil {
		c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusNotFound)
		return
	}

	user, err := h.queries.GetUser(cqrs.GetUserQuery{UserID: userID})
	if err != nil {
		h.respondWithLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := bindObject(c, &req); err != nil {
		c.Error(err)
		middleware.RespondWithError(c, http.StatusBadRequest)
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	cmd := cqrs.CreateUserCommand{Name: *req.Name}
	if req.Age != nil {
		cmd.Age = *req.Age
	}
	user, err := h.commands.CreateUser(c.Request.Context(), cmd)
	if err != nil {
		c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser reports a missing user before looking at the body.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusNotFound)
		return
	}
	if _, err := h.queries.GetUser(cqrs.GetUserQuery{UserID: userID}); err != nil {
		h.respondWithLookupError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := bindObject(c, &req); err != nil {
		c.Error(err)
		middleware.RespondWithError(c, http.StatusBadRequest)
		return
	}

	user, err := h.commands.UpdateUser(c.Request.Context(), cqrs.UpdateUserCommand{
		UserID: userID,
		Name:   req.Name,
		Age:    req.Age,
	})
	if err != nil {
		h.respondWithLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser answers 204 whether or not the user existed.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusNotFound)
		return
	}

	if err := h.commands.DeleteUser(c.Request.Context(), cqrs.DeleteUserCommand{UserID: userID}); err != nil {
		c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) respondWithLookupError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrUserNotFound) {
		middleware.RespondWithError(c, http.StatusNotFound)
		return
	}
	c.Error(err)
	middleware.RespondWithError(c, http.StatusInternalServerError)
}

// parseUserID accepts only unsigned decimal ids; anything else is treated as
// an unmatched route.
func parseUserID(c *gin.Context) (int64, bool) {
	raw := c.Param("userId")
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// bindObject requires the body to be a non-empty JSON object before decoding
// it into obj.
func bindObject(c *gin.Context, obj any) error {
	if c.Request.Body == nil {
		return errEmptyBody
	}
	raw, err := c.GetRawData()
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("request body is not a JSON object: %w", err)
	}
	if len(fields) == 0 {
		return errEmptyBody
	}
	if err := binding.JSON.BindBody(raw, obj); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
