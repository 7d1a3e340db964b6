package orders

import "time"

// Order statuses. Stored as display strings because the existing data set
// uses them verbatim.
const (
	StatusPending       = "Pending"
	StatusPendingPickup = "Pending Pickup"
	StatusInProgress    = "In Progress"
	StatusCompleted     = "Completed"
)

// KnownStatus reports whether s is one of the recognized statuses. Reads
// tolerate unknown values (old or hand-edited documents); writes do not.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusPendingPickup, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a status change from -> to is allowed.
// Transitions are forward-only: either initial state may move to In Progress
// or directly to Completed, and nothing moves out of Completed.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case StatusPending, StatusPendingPickup:
		return to == StatusInProgress || to == StatusCompleted
	case StatusInProgress:
		return to == StatusCompleted
	default:
		return false
	}
}

// Location is a pickup address snapshot. Admin-entered orders without a saved
// address use the synthetic "Walk-in" label.
type Location struct {
	Label   string `dynamodbav:"label" json:"label"`
	Address string `dynamodbav:"address" json:"address"`
}

// Item is one order line: a catalog selection with the price snapshotted at
// selection time. Later catalog price changes never touch existing orders.
type Item struct {
	Section  string  `dynamodbav:"section" json:"section"`
	Item     string  `dynamodbav:"item" json:"item"`
	Service  string  `dynamodbav:"service" json:"service"`
	Quantity int     `dynamodbav:"quantity" json:"quantity"`
	Price    float64 `dynamodbav:"price" json:"price"`
}

// Order is the document stored in the orders table. Attribute names match the
// collection the existing front end reads, so both can share one data set.
// UserName and UserMobile are denormalized snapshots of the customer's
// contact info at order (or last edit) time.
type Order struct {
	ID             string    `dynamodbav:"id" json:"id"` // PK
	OrderNumber    int64     `dynamodbav:"orderNumber" json:"orderNumber"`
	UID            string    `dynamodbav:"uid" json:"uid"`
	UserName       string    `dynamodbav:"userName" json:"userName"`
	UserMobile     string    `dynamodbav:"userMobile" json:"userMobile"`
	PickupLocation Location  `dynamodbav:"pickupLocation" json:"pickupLocation"`
	PickupDate     string    `dynamodbav:"pickupDate" json:"pickupDate"`
	PickupTime     string    `dynamodbav:"pickupTime" json:"pickupTime"`
	Items          []Item    `dynamodbav:"items" json:"items"`
	TotalAmount    float64   `dynamodbav:"totalAmount" json:"totalAmount"`
	Status         string    `dynamodbav:"status" json:"status"`
	Instructions   string    `dynamodbav:"instructions,omitempty" json:"instructions,omitempty"`
	Notified       bool      `dynamodbav:"notified,omitempty" json:"notified,omitempty"`
	CreatedAt      time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// Total sums price*quantity over the given items. Every write path must store
// this value in TotalAmount; items and total must never diverge.
func Total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
