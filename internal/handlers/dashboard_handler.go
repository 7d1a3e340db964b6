package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sai-laundry/laundry-backend/internal/auth"
	"github.com/sai-laundry/laundry-backend/internal/reports"
)

// RegisterDashboardRoutes registers the admin reporting endpoint.
//
// GET /admin/dashboard?period=today|day|this_month|month&date=2006-01-02&month=2006-01
func RegisterDashboardRoutes(r *gin.Engine, cfg HandlerConfig) {
	admin := r.Group("/", auth.RequireAuth(cfg.Tokens), auth.RequireAdmin())

	admin.GET("/admin/dashboard", func(c *gin.Context) {
		ctx := c.Request.Context()
		now := time.Now()

		all, err := cfg.Orders.ListAll(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed", "detail": err.Error()})
			return
		}

		var summary reports.Summary
		switch c.DefaultQuery("period", "today") {
		case "day":
			day, err := time.ParseInLocation("2006-01-02", c.Query("date"), now.Location())
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
				return
			}
			summary = reports.SummarizeDay(all, day, now)
		case "this_month":
			summary = reports.SummarizeMonth(all, now)
		case "month":
			month, err := time.ParseInLocation("2006-01", c.Query("month"), now.Location())
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_month"})
				return
			}
			summary = reports.SummarizeMonth(all, month)
		default:
			summary = reports.SummarizeDay(all, now, now)
		}

		c.JSON(http.StatusOK, gin.H{
			"summary":     summary,
			"last6Days":   reports.LastNDays(all, now, 6),
			"last6Months": reports.LastNMonths(all, now, 6),
		})
	})
}
