package handlers

import (
	"github.com/sai-laundry/laundry-backend/internal/auth"
	"github.com/sai-laundry/laundry-backend/internal/catalog"
	"github.com/sai-laundry/laundry-backend/internal/orders"
	"github.com/sai-laundry/laundry-backend/internal/users"
)

// HandlerConfig groups the services every route group draws on.
type HandlerConfig struct {
	Orders  *orders.Service
	Users   *users.Store
	Catalog *catalog.Store
	Auth    *auth.Service
	Tokens  *auth.Tokens
}
