package controllers

import (
	"errors"
	"net/http"

	"github.com/RushabhMehta2005/stores-api/middleware"
	"github.com/RushabhMehta2005/stores-api/services"
	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *Handler) countAuthFailure(reason string) {
	if h.Metrics != nil {
		h.Metrics.AuthFailures.WithLabelValues(reason).Inc()
	}
}

// Login exchanges a username and password for an access token.
func (h *Handler) Login(c *gin.Context) {
	var body credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		h.countAuthFailure("bad_request")
		h.jsonError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	token, err := h.Auth.Authenticate(c.Request.Context(), body.Username, body.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		h.countAuthFailure("invalid_credentials")
		h.jsonError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.internalError(c, err, "Could not generate token")
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}

func (h *Handler) Register(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required,max=80"`
		Password string `json:"password" binding:"required,min=4"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.jsonError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if _, err := h.Auth.Register(c.Request.Context(), body.Username, body.Password); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			h.jsonError(c, http.StatusBadRequest, "A user with that username already exists")
			return
		}
		h.internalError(c, err, "Failed to create user")
		return
	}

	h.message(c, http.StatusCreated, "User created successfully.")
}

// Refresh issues a new token with a full lifetime to an authenticated caller.
func (h *Handler) Refresh(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.jsonError(c, http.StatusUnauthorized, "Authorization token required")
		return
	}

	token, err := h.Auth.Refresh(user.ID)
	if err != nil {
		h.internalError(c, err, "Could not generate token")
		return
	}

	c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}

// DeleteAccount removes the authenticated caller. Tokens already issued to
// the account stop working immediately.
func (h *Handler) DeleteAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.jsonError(c, http.StatusUnauthorized, "Authorization token required")
		return
	}

	if err := h.Users.Delete(c.Request.Context(), &user); err != nil {
		h.internalError(c, err, "Failed to delete user")
		return
	}

	h.message(c, http.StatusOK, "User deleted")
}
