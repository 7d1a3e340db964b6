package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sai-laundry/laundry-backend/internal/aws"
	"github.com/sai-laundry/laundry-backend/internal/sequence"
	"github.com/sai-laundry/laundry-backend/internal/users"
)

// ErrValidation wraps rejections that happen before any store write.
var ErrValidation = errors.New("validation failed")

// CreateOrderInput is the resolved payload for placing an order. UID may be
// empty for admin-entered orders; the service then reuses an existing user by
// mobile match or mints a walk-in record.
type CreateOrderInput struct {
	UID          string
	UserName     string
	UserMobile   string
	Location     *Location // nil -> synthesized "Walk-in" location
	Address      string    // walk-in address text when Location is nil
	PickupDate   string
	PickupTime   string
	Instructions string
	Status       string // defaults to Pending
	Items        []Item
}

// Service owns order creation and mutation. Creation is all-or-nothing from
// the caller's view: validation happens before the sequencer runs, and the
// order write is conditional, so either a complete numbered order exists or
// nothing was created. A failed order write after numbering leaves a gap in
// the sequence, which is accepted (invoice-style numbering).
type Service struct {
	store     *Store
	users     *users.Store
	seq       *sequence.Store
	hub       *Hub
	publisher *aws.Publisher // nil disables event publishing
}

// NewService wires the order service.
func NewService(store *Store, userStore *users.Store, seq *sequence.Store, hub *Hub, publisher *aws.Publisher) *Service {
	return &Service{
		store:     store,
		users:     userStore,
		seq:       seq,
		hub:       hub,
		publisher: publisher,
	}
}

func validateInput(in CreateOrderInput) error {
	if strings.TrimSpace(in.UserName) == "" || strings.TrimSpace(in.UserMobile) == "" {
		return fmt.Errorf("%w: customer name and mobile are required", ErrValidation)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	for i, it := range in.Items {
		if it.Section == "" || it.Item == "" || it.Service == "" {
			return fmt.Errorf("%w: item %d is missing a section, item or service selection", ErrValidation, i+1)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item %d has quantity %d", ErrValidation, i+1, it.Quantity)
		}
	}
	if in.Status != "" && in.Status != StatusPending && in.Status != StatusPendingPickup {
		return fmt.Errorf("%w: %q is not a valid initial status", ErrValidation, in.Status)
	}
	return nil
}

// Create places an order: validate, resolve the owning user, number, persist,
// publish. Returns the new order's id.
func (s *Service) Create(ctx context.Context, in CreateOrderInput) (string, error) {
	if err := validateInput(in); err != nil {
		return "", err
	}

	uid := in.UID
	if uid == "" {
		existing, err := s.users.FindByMobile(ctx, in.UserMobile)
		if err != nil {
			return "", fmt.Errorf("resolve customer: %w", err)
		}
		if existing != nil {
			uid = existing.UID
		} else {
			uid, err = s.users.CreateWalkIn(ctx, strings.TrimSpace(in.UserName), strings.TrimSpace(in.UserMobile))
			if err != nil {
				return "", fmt.Errorf("create walk-in customer: %w", err)
			}
		}
	}

	loc := Location{Label: "Walk-in", Address: strings.TrimSpace(in.Address)}
	if in.Location != nil {
		loc = *in.Location
	}

	status := in.Status
	if status == "" {
		status = StatusPending
	}

	number, err := s.seq.Next(ctx, sequence.OrderNumberCounter)
	if err != nil {
		return "", fmt.Errorf("allocate order number: %w", err)
	}

	order := Order{
		ID:             uuid.NewString(),
		OrderNumber:    number,
		UID:            uid,
		UserName:       strings.TrimSpace(in.UserName),
		UserMobile:     strings.TrimSpace(in.UserMobile),
		PickupLocation: loc,
		PickupDate:     in.PickupDate,
		PickupTime:     in.PickupTime,
		Items:          in.Items,
		TotalAmount:    Total(in.Items),
		Status:         status,
		Instructions:   in.Instructions,
	}
	if err := s.store.Create(ctx, order); err != nil {
		return "", err
	}

	if s.publisher != nil {
		ev := aws.OrderEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UID:         order.UID,
			TotalAmount: order.TotalAmount,
		}
		attrs := map[string]string{"order_id": order.ID}
		if err := s.publisher.SendOrderEvent(ctx, ev, attrs); err != nil {
			// the order exists; notification is best effort
			log.Printf("[orders] publish order event for %s: %v", order.ID, err)
		}
	}

	s.hub.Notify(ctx)
	return order.ID, nil
}

// Get returns one order, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.store.Get(ctx, id)
}

// ListByUser returns the customer's orders.
func (s *Service) ListByUser(ctx context.Context, uid string) ([]Order, error) {
	return s.store.ListByUser(ctx, uid)
}

// ListAll returns every order.
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.store.ListAll(ctx)
}

// UpdateStatus transitions the order and refreshes subscribers.
func (s *Service) UpdateStatus(ctx context.Context, id, from, to string) error {
	if err := s.store.UpdateStatus(ctx, id, from, to); err != nil {
		return err
	}
	s.hub.Notify(ctx)
	return nil
}

// Update edits the order's schedule, items and customer snapshot, leaving
// orderNumber and createdAt untouched.
func (s *Service) Update(ctx context.Context, id string, o Order) error {
	if strings.TrimSpace(o.UserName) == "" || strings.TrimSpace(o.UserMobile) == "" {
		return fmt.Errorf("%w: customer name and mobile are required", ErrValidation)
	}
	for i, it := range o.Items {
		if it.Section == "" || it.Item == "" || it.Service == "" {
			return fmt.Errorf("%w: item %d is missing a section, item or service selection", ErrValidation, i+1)
		}
	}
	if err := s.store.Update(ctx, id, o); err != nil {
		return err
	}
	s.hub.Notify(ctx)
	return nil
}

// Delete removes the order and refreshes subscribers.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Notify(ctx)
	return nil
}

// Subscribe attaches a live feed for the given filter.
func (s *Service) Subscribe(ctx context.Context, f Filter, fn func([]Order)) func() {
	return s.hub.Subscribe(ctx, f, fn)
}
