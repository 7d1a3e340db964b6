package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sai-laundry/laundry-backend/internal/auth"
	"github.com/sai-laundry/laundry-backend/internal/validation"
)

// RegisterAuthRoutes registers signup and login.
func RegisterAuthRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	r.POST("/auth/signup", func(c *gin.Context) {
		var req validation.SignupRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		u, err := cfg.Auth.Signup(c.Request.Context(), req.Name, req.Email, req.Mobile, req.Password)
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email_taken"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "signup_failed", "detail": err.Error()})
			return
		}

		// new accounts wait for admin verification before they can log in
		c.JSON(http.StatusCreated, gin.H{"uid": u.UID, "verified": u.Verified})
	})

	r.POST("/auth/login", func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		token, u, err := cfg.Auth.Login(c.Request.Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		case errors.Is(err, auth.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "awaiting_verification"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login_failed", "detail": err.Error()})
		default:
			c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
		}
	})
}
