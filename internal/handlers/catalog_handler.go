package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sai-laundry/laundry-backend/internal/auth"
	"github.com/sai-laundry/laundry-backend/internal/catalog"
	"github.com/sai-laundry/laundry-backend/internal/validation"
)

// RegisterCatalogRoutes registers the price-list endpoints. Reading the
// catalog needs no session so the order form always has prices to show.
func RegisterCatalogRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	r.GET("/catalog", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sections": cfg.Catalog.List(c.Request.Context())})
	})

	admin := r.Group("/", auth.RequireAuth(cfg.Tokens), auth.RequireAdmin())

	admin.PUT("/catalog/sections", func(c *gin.Context) {
		var req validation.SectionRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		sec := catalog.Section{ID: req.ID, Name: req.Name}
		for _, it := range req.Items {
			item := catalog.Item{Name: it.Name}
			for _, svc := range it.Services {
				item.Services = append(item.Services, catalog.Service{Type: svc.Type, Price: svc.Price})
			}
			sec.Items = append(sec.Items, item)
		}

		if err := cfg.Catalog.Put(c.Request.Context(), sec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": sec.ID})
	})

	admin.DELETE("/catalog/sections/:id", func(c *gin.Context) {
		if err := cfg.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete_failed", "detail": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})

	admin.POST("/catalog/seed", func(c *gin.Context) {
		if err := cfg.Catalog.Seed(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "seed_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"seeded": true})
	})
}
