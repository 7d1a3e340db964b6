package validation

// LocationPayload is a pickup address in request bodies.
type LocationPayload struct {
	Label   string `json:"label" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// ItemPayload is a single order line. Every selection level is required:
// partial rows (an item without its service, say) are rejected before any
// store write happens.
type ItemPayload struct {
	Section  string  `json:"section" validate:"required"`
	Item     string  `json:"item" validate:"required"`
	Service  string  `json:"service" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// CreateOrderRequest is the payload for POST /orders. TotalAmount, when the
// client sends one, must match the item sum; the server recomputes and stores
// its own figure either way.
type CreateOrderRequest struct {
	UID            string           `json:"uid,omitempty"`
	UserName       string           `json:"userName" validate:"required"`
	UserMobile     string           `json:"userMobile" validate:"required"`
	PickupLocation *LocationPayload `json:"pickupLocation,omitempty"`
	Address        string           `json:"address,omitempty"`
	PickupDate     string           `json:"pickupDate,omitempty"`
	PickupTime     string           `json:"pickupTime,omitempty"`
	Instructions   string           `json:"instructions,omitempty"`
	Status         string           `json:"status,omitempty"`
	Items          []ItemPayload    `json:"items" validate:"required,min=1,dive"`
	TotalAmount    *float64         `json:"totalAmount,omitempty"`
}

// UpdateOrderRequest is the payload for PUT /orders/:id. Order number and
// creation time are not part of the payload; they can never be edited.
type UpdateOrderRequest struct {
	UserName       string          `json:"userName" validate:"required"`
	UserMobile     string          `json:"userMobile" validate:"required"`
	PickupLocation LocationPayload `json:"pickupLocation" validate:"required"`
	PickupDate     string          `json:"pickupDate,omitempty"`
	PickupTime     string          `json:"pickupTime,omitempty"`
	Instructions   string          `json:"instructions,omitempty"`
	Status         string          `json:"status" validate:"required"`
	Items          []ItemPayload   `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusRequest is the payload for PATCH /orders/:id/status.
type UpdateStatusRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

// SignupRequest registers a customer account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest authenticates a session.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LocationRequest adds a saved address to a profile.
type LocationRequest struct {
	Label   string `json:"label" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// SectionRequest upserts a catalog section with its embedded tree.
type SectionRequest struct {
	ID    string        `json:"id" validate:"required"`
	Name  string        `json:"name" validate:"required"`
	Items []SectionItem `json:"items" validate:"dive"`
}

// SectionItem is an item row inside a SectionRequest.
type SectionItem struct {
	Name     string           `json:"name" validate:"required"`
	Services []SectionService `json:"services" validate:"required,min=1,dive"`
}

// SectionService is a service row inside a SectionItem.
type SectionService struct {
	Type  string  `json:"type" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}
