package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"dwa/backend/internal/auth"
	"dwa/backend/internal/repository"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	_, err := h.auth.Register(c.Request.Context(), req.FullName, req.Email, req.Password)
	var verr *auth.ValidationError
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Error()})
	case errors.Is(err, repository.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
	default:
		slog.Error("register failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
	case errors.Is(err, auth.ErrInvalidCredentials):
		slog.Info("login rejected", "email", auth.NormalizeEmail(req.Email))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	default:
		slog.Error("login failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

func (h *Handler) validateToken(c *gin.Context) {
	token := auth.BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "message": "No token provided"})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"valid": true, "user": user})
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "message": "User not found"})
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "message": "Invalid or expired token"})
	default:
		slog.Error("validate token failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "message": "Server error"})
	}
}

func (h *Handler) profile(c *gin.Context) {
	id, _ := auth.UserID(c)
	user, err := h.auth.User(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, user)
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		internalError(c, "profile", err, "Failed to fetch profile")
	}
}
