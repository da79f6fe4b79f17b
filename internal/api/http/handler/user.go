package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/userhub-io/userhub-server/internal/logger"
	"github.com/userhub-io/userhub-server/internal/model"
)

// UserService defines business operations for user management.
type UserService interface {
	Create(ctx context.Context, params model.CreateUserParams) (model.User, error)
	Get(ctx context.Context, uid string) (model.User, bool, error)
	Update(ctx context.Context, uid string, params model.UpdateUserParams) (model.User, bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

// AvatarService uploads avatar images and patches the user photoURL.
type AvatarService interface {
	SetAvatar(ctx context.Context, uid string, reader io.Reader, size int64, contentType string) (model.User, bool, error)
}

// User handles HTTP endpoints for the user resource.
type User struct {
	userService    UserService
	avatarService  AvatarService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, avatarService AvatarService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		avatarService:  avatarService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createUserRequest struct {
	Email       string         `json:"email"`
	DisplayName string         `json:"displayName"`
	PhotoURL    string         `json:"photoURL"`
	IsActive    *bool          `json:"isActive"`
	Metadata    map[string]any `json:"metadata"`
}

type updateUserRequest struct {
	Email       *string        `json:"email"`
	DisplayName *string        `json:"displayName"`
	PhotoURL    *string        `json:"photoURL"`
	IsActive    *bool          `json:"isActive"`
	Metadata    map[string]any `json:"metadata"`
}

// Create handles POST /api/users. The record's uid is the subject id of
// the authenticated caller; the email falls back to the identity email
// when the body carries none.
func (h *User) Create(c *gin.Context) {
	identity, ok := h.contextManager.GetIdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	email := req.Email
	if email == "" && identity.Email != nil {
		email = *identity.Email
	}

	user, err := h.userService.Create(c.Request.Context(), model.CreateUserParams{
		UID:         identity.UID,
		Email:       email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		IsActive:    req.IsActive,
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.logger.Error("User handler: create failed",
			"uid", identity.UID,
			"error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Get handles GET /api/users/:uid.
func (h *User) Get(c *gin.Context) {
	uid := c.Param("uid")

	user, found, err := h.userService.Get(c.Request.Context(), uid)
	if err != nil {
		h.logger.Error("User handler: get failed",
			"uid", uid,
			"error", err.Error())
		handleError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Update handles PATCH /api/users/:uid with partial-field merge
// semantics: only supplied fields change.
func (h *User) Update(c *gin.Context) {
	uid := c.Param("uid")

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, found, err := h.userService.Update(c.Request.Context(), uid, model.UpdateUserParams{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		IsActive:    req.IsActive,
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.logger.Error("User handler: update failed",
			"uid", uid,
			"error", err.Error())
		handleError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:uid. Deleting an absent user is a
// 404, not a failure.
func (h *User) Delete(c *gin.Context) {
	uid := c.Param("uid")

	deleted, err := h.userService.Delete(c.Request.Context(), uid)
	if err != nil {
		h.logger.Error("User handler: delete failed",
			"uid", uid,
			"error", err.Error())
		handleError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// SetAvatar handles PUT /api/users/:uid/avatar. The raw request body is
// stored in object storage and the user's photoURL is patched to point
// at it.
func (h *User) SetAvatar(c *gin.Context) {
	uid := c.Param("uid")

	contentType := c.ContentType()
	user, found, err := h.avatarService.SetAvatar(c.Request.Context(), uid, c.Request.Body, c.Request.ContentLength, contentType)
	if err != nil {
		h.logger.Error("User handler: avatar upload failed",
			"uid", uid,
			"error", err.Error())
		handleError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}
