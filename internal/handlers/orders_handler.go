package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sai-laundry/laundry-backend/internal/auth"
	"github.com/sai-laundry/laundry-backend/internal/orders"
	"github.com/sai-laundry/laundry-backend/internal/reports"
	"github.com/sai-laundry/laundry-backend/internal/users"
	"github.com/sai-laundry/laundry-backend/internal/validation"
)

// RegisterOrdersRoutes registers routes for the order API.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	authed := r.Group("/", auth.RequireAuth(cfg.Tokens))
	admin := r.Group("/", auth.RequireAuth(cfg.Tokens), auth.RequireAdmin())

	authed.POST("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()
		claims := auth.ClaimsFrom(c)

		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		in := orders.CreateOrderInput{
			UID:          req.UID,
			UserName:     req.UserName,
			UserMobile:   req.UserMobile,
			Address:      req.Address,
			PickupDate:   req.PickupDate,
			PickupTime:   req.PickupTime,
			Instructions: req.Instructions,
			Status:       req.Status,
			Items:        toItems(req.Items),
		}
		if req.PickupLocation != nil {
			in.Location = &orders.Location{
				Label:   req.PickupLocation.Label,
				Address: req.PickupLocation.Address,
			}
		}
		// customers only place orders for themselves
		if claims.Role != users.RoleAdmin {
			in.UID = claims.UID
		}

		id, err := cfg.Orders.Create(ctx, in)
		if err != nil {
			if errors.Is(err, orders.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "msg": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create_failed", "detail": err.Error()})
			return
		}

		c.Header("Location", fmt.Sprintf("/orders/%s", id))
		c.JSON(http.StatusCreated, gin.H{"id": id})
	})

	authed.GET("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()
		claims := auth.ClaimsFrom(c)

		var (
			list []orders.Order
			err  error
		)
		if claims.Role == users.RoleAdmin {
			list, err = cfg.Orders.ListAll(ctx)
		} else {
			list, err = cfg.Orders.ListByUser(ctx, claims.UID)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	})

	authed.GET("/orders/grouped", func(c *gin.Context) {
		ctx := c.Request.Context()
		claims := auth.ClaimsFrom(c)

		var (
			list []orders.Order
			err  error
		)
		if claims.Role == users.RoleAdmin {
			list, err = cfg.Orders.ListAll(ctx)
		} else {
			list, err = cfg.Orders.ListByUser(ctx, claims.UID)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"groups": reports.GroupByDay(list, time.Now())})
	})

	authed.GET("/orders/watch", func(c *gin.Context) {
		claims := auth.ClaimsFrom(c)
		filter := orders.Filter{UID: claims.UID}
		if claims.Role == users.RoleAdmin {
			filter = orders.Filter{}
		}

		snapshots := make(chan []orders.Order, 1)
		cancel := cfg.Orders.Subscribe(c.Request.Context(), filter, func(snap []orders.Order) {
			// keep only the newest snapshot if the client is slow
			select {
			case snapshots <- snap:
			default:
				select {
				case <-snapshots:
				default:
				}
				snapshots <- snap
			}
		})
		defer cancel()

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case snap := <-snapshots:
				data, err := json.Marshal(snap)
				if err != nil {
					return false
				}
				fmt.Fprintf(w, "data: %s\n\n", data)
				return true
			}
		})
	})

	authed.GET("/orders/:id", func(c *gin.Context) {
		ctx := c.Request.Context()
		claims := auth.ClaimsFrom(c)

		o, err := cfg.Orders.Get(ctx, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "get_failed", "detail": err.Error()})
			return
		}
		if o == nil || (claims.Role != users.RoleAdmin && o.UID != claims.UID) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusOK, o)
	})

	admin.PATCH("/orders/:id/status", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.UpdateStatusRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		err := cfg.Orders.UpdateStatus(ctx, c.Param("id"), req.From, req.To)
		switch {
		case errors.Is(err, orders.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_transition", "msg": err.Error()})
		case errors.Is(err, orders.ErrStatusMismatch):
			c.JSON(http.StatusConflict, gin.H{"error": "status_changed", "msg": "order status changed underneath you, reload and retry"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed", "detail": err.Error()})
		default:
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.To})
		}
	})

	admin.PUT("/orders/:id", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.UpdateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		o := orders.Order{
			UserName:   req.UserName,
			UserMobile: req.UserMobile,
			PickupLocation: orders.Location{
				Label:   req.PickupLocation.Label,
				Address: req.PickupLocation.Address,
			},
			PickupDate:   req.PickupDate,
			PickupTime:   req.PickupTime,
			Instructions: req.Instructions,
			Status:       req.Status,
			Items:        toItems(req.Items),
		}
		if err := cfg.Orders.Update(ctx, c.Param("id"), o); err != nil {
			if errors.Is(err, orders.ErrValidation) || errors.Is(err, orders.ErrInvalidTransition) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "msg": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	admin.DELETE("/orders/:id", func(c *gin.Context) {
		if err := cfg.Orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete_failed", "detail": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func toItems(payload []validation.ItemPayload) []orders.Item {
	items := make([]orders.Item, 0, len(payload))
	for _, it := range payload {
		items = append(items, orders.Item{
			Section:  it.Section,
			Item:     it.Item,
			Service:  it.Service,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return items
}
