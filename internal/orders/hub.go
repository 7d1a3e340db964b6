package orders

import (
	"context"
	"log"
	"sync"
)

// Filter selects which orders a subscriber sees. Zero value means all orders
// (admin feed); UID narrows to one customer's orders.
type Filter struct {
	UID string
}

func (f Filter) match(o Order) bool {
	return f.UID == "" || o.UID == f.UID
}

type subscriber struct {
	filter Filter
	fn     func([]Order)
}

// Hub fans out live order snapshots. Each callback receives the full current
// matching set, not a diff: consumers replace their state wholesale. Every
// Subscribe returns a cancel func the caller must invoke on teardown;
// otherwise the subscription keeps delivering to a defunct consumer.
type Hub struct {
	store *Store

	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
}

// NewHub returns a Hub publishing snapshots from store.
func NewHub(store *Store) *Hub {
	return &Hub{
		store: store,
		subs:  map[int]*subscriber{},
	}
}

// Subscribe registers fn and immediately delivers the current snapshot.
// The returned cancel func is idempotent.
func (h *Hub) Subscribe(ctx context.Context, filter Filter, fn func([]Order)) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = &subscriber{filter: filter, fn: fn}
	h.mu.Unlock()

	fn(h.snapshot(ctx, filter))

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Notify pushes a fresh snapshot to every subscriber. Called by the service
// after each mutation.
func (h *Hub) Notify(ctx context.Context) {
	h.mu.Lock()
	targets := make([]*subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	all, err := h.store.ListAll(ctx)
	if err != nil {
		// degrade to an empty set rather than crash consumers
		log.Printf("[orders] subscription refresh failed: %v", err)
		all = nil
	}
	for _, s := range targets {
		s.fn(filterOrders(all, s.filter))
	}
}

func (h *Hub) snapshot(ctx context.Context, filter Filter) []Order {
	var (
		all []Order
		err error
	)
	if filter.UID != "" {
		all, err = h.store.ListByUser(ctx, filter.UID)
	} else {
		all, err = h.store.ListAll(ctx)
	}
	if err != nil {
		log.Printf("[orders] subscription snapshot failed: %v", err)
		return nil
	}
	return all
}

func filterOrders(all []Order, f Filter) []Order {
	if f.UID == "" {
		return all
	}
	var out []Order
	for _, o := range all {
		if f.match(o) {
			out = append(out, o)
		}
	}
	return out
}
