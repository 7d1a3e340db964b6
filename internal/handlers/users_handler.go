package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sai-laundry/laundry-backend/internal/auth"
	"github.com/sai-laundry/laundry-backend/internal/users"
	"github.com/sai-laundry/laundry-backend/internal/validation"
)

// RegisterUsersRoutes registers profile routes for the session owner and the
// admin customer console.
func RegisterUsersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	authed := r.Group("/", auth.RequireAuth(cfg.Tokens))
	admin := r.Group("/", auth.RequireAuth(cfg.Tokens), auth.RequireAdmin())

	authed.GET("/me", func(c *gin.Context) {
		claims := auth.ClaimsFrom(c)
		u, err := cfg.Users.Get(c.Request.Context(), claims.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get_failed", "detail": err.Error()})
			return
		}
		if u == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile_not_found"})
			return
		}
		c.JSON(http.StatusOK, u)
	})

	authed.PUT("/me", func(c *gin.Context) {
		claims := auth.ClaimsFrom(c)
		var req struct {
			Name   string `json:"name" binding:"required"`
			Mobile string `json:"mobile" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
			return
		}
		if err := cfg.Users.UpdateProfile(c.Request.Context(), claims.UID, req.Name, req.Mobile); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": claims.UID})
	})

	authed.POST("/me/locations", func(c *gin.Context) {
		claims := auth.ClaimsFrom(c)
		var req validation.LocationRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		loc := users.Location{Label: req.Label, Address: req.Address}
		if err := cfg.Users.AddLocation(c.Request.Context(), claims.UID, loc); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "add_location_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"uid": claims.UID})
	})

	authed.DELETE("/me/locations/:index", func(c *gin.Context) {
		claims := auth.ClaimsFrom(c)
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_index"})
			return
		}
		err = cfg.Users.RemoveLocation(c.Request.Context(), claims.UID, index)
		if errors.Is(err, users.ErrLocationIndex) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location_not_found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "remove_location_failed", "detail": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})

	admin.GET("/customers", func(c *gin.Context) {
		all, err := cfg.Users.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed", "detail": err.Error()})
			return
		}
		customers := make([]users.User, 0, len(all))
		for _, u := range all {
			if u.Role != users.RoleAdmin {
				customers = append(customers, u)
			}
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
	})

	admin.POST("/customers/:uid/verify", func(c *gin.Context) {
		var req struct {
			Verified bool `json:"verified"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
			return
		}
		if err := cfg.Users.SetVerified(c.Request.Context(), c.Param("uid"), req.Verified); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verify_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": c.Param("uid"), "verified": req.Verified})
	})

	admin.DELETE("/customers/:uid", func(c *gin.Context) {
		// orders owned by the customer stay
		if err := cfg.Users.Delete(c.Request.Context(), c.Param("uid")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete_failed", "detail": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})
}
