package orders

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testOrder(id string, number int64) Order {
	return Order{
		ID:          id,
		OrderNumber: number,
		UID:         "uid-1",
		UserName:    "Asha",
		UserMobile:  "9876543210",
		PickupLocation: Location{
			Label:   "Home",
			Address: "12 MG Road",
		},
		PickupDate: "2026-09-01",
		PickupTime: "10:00",
		Items: []Item{
			{Section: "Men", Item: "Shirt", Service: "Wash & Iron", Quantity: 2, Price: 15},
			{Section: "Household", Item: "Bedsheet", Service: "Wash Only", Quantity: 1, Price: 30},
		},
		Status: StatusPending,
	}
}

func TestCreate_ComputesTotalAndStampsCreatedAt(t *testing.T) {
	m := newMockDynamo()
	s := NewStore(m, "orders")
	s.nowFunc = func() time.Time { return time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC) }

	o := testOrder("o1", 1)
	o.TotalAmount = 999 // wrong on purpose; the store recomputes

	if err := s.Create(context.Background(), o); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.Get(context.Background(), "o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("order not found after create")
	}
	if got.TotalAmount != 60 {
		t.Fatalf("totalAmount = %v, want 60", got.TotalAmount)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("createdAt not stamped")
	}
	if got.OrderNumber != 1 {
		t.Fatalf("orderNumber = %d, want 1", got.OrderNumber)
	}
}

func TestCreate_RejectsDuplicateID(t *testing.T) {
	m := newMockDynamo()
	s := NewStore(m, "orders")

	if err := s.Create(context.Background(), testOrder("o1", 1)); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := s.Create(context.Background(), testOrder("o1", 2)); err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}
}

func TestGet_NotFound(t *testing.T) {
	m := newMockDynamo()
	s := NewStore(m, "orders")

	got, err := s.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing order, got %+v", got)
	}
}

func TestListByUser_Filters(t *testing.T) {
	m := newMockDynamo()
	s := NewStore(m, "orders")

	a := testOrder("o1", 1)
	b := testOrder("o2", 2)
	b.UID = "uid-2"
	for _, o := range []Order{a, b} {
		if err := s.Create(context.Background(), o); err != nil {
			t.Fatalf("create %s: %v", o.ID, err)
		}
	}

	mine, err := s.ListByUser(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "o1" {
		t.Fatalf("expected only o1, got %+v", mine)
	}

	all, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}
}

func TestUpdateStatus_ForwardOnly(t *testing.T) {
	m := newMockDynamo()
	s := NewStore(m, "orders")
	ctx := context.Background()

	if err := s.Create(ctx, testOrder("o1", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.UpdateStatus(ctx, "o1", StatusPending, StatusInProgress); err != nil {
		t.Fatalf("pending -> in progress: %v", err)
	}
	if err := s.UpdateStatus(ctx, "o1", StatusInProgress, StatusCompleted); err != nil {
		t.Fatalf("in progress -> completed: %v", err)
	}

	// nothing moves out of Completed
	err := s.UpdateStatus(ctx, "o1", StatusCompleted, StatusPending)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("completed -> pending: got %v, want ErrInvalidTransition", err)
	}

	// unknown target statuses are rejected on write
	err = s.UpdateStatus(ctx, "o1", StatusPending, "Lost")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("unknown status: got %v, want ErrInvalidTransition", err)
	}
}

func TestUpdateStatus_ConcurrentMismatch(t *testing.T) {
	m := newMockDynamo()
	s := NewStore(m, "orders")
	ctx := context.Background()

	if err := s.Create(ctx, testOrder("o1", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.UpdateStatus(ctx, "o1", StatusPending, StatusInProgress); err != nil {
		t.Fatalf("first transition: %v", err)
	}

	// a second caller still believing the order is Pending loses
	err := s.UpdateStatus(ctx, "o1", StatusPending, StatusInProgress)
	if !errors.Is(err, ErrStatusMismatch) {
		t.Fatalf("got %v, want ErrStatusMismatch", err)
	}
}

func TestUpdate_PreservesNumberAndCreatedAt(t *testing.T) {
	m := newMockDynamo()
	s := NewStore(m, "orders")
	s.nowFunc = func() time.Time { return time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	if err := s.Create(ctx, testOrder("o1", 7)); err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _ := s.Get(ctx, "o1")

	edited := testOrder("o1", 7)
	edited.UserName = "Asha Rao"
	edited.Items = []Item{
		{Section: "Women", Item: "Saree", Service: "Dry Clean", Quantity: 1, Price: 40},
	}
	edited.Status = StatusPendingPickup
	if err := s.Update(ctx, "o1", edited); err != nil {
		t.Fatalf("update: %v", err)
	}

	after, err := s.Get(ctx, "o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if after.OrderNumber != 7 {
		t.Fatalf("orderNumber changed: %d", after.OrderNumber)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("createdAt changed: %v -> %v", before.CreatedAt, after.CreatedAt)
	}
	if after.UserName != "Asha Rao" {
		t.Fatalf("userName not updated: %s", after.UserName)
	}
	if after.TotalAmount != 40 {
		t.Fatalf("totalAmount not recomputed: %v", after.TotalAmount)
	}
}

func TestUpdate_MissingOrder(t *testing.T) {
	m := newMockDynamo()
	s := NewStore(m, "orders")

	if err := s.Update(context.Background(), "missing", testOrder("missing", 1)); err == nil {
		t.Fatal("expected update of missing order to fail")
	}
}

func TestDelete_RemovesOrder(t *testing.T) {
	m := newMockDynamo()
	s := NewStore(m, "orders")
	ctx := context.Background()

	if err := s.Create(ctx, testOrder("o1", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(ctx, "o1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := s.Get(ctx, "o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("order still present after delete")
	}
}

func TestTotal(t *testing.T) {
	items := []Item{
		{Quantity: 2, Price: 15},
		{Quantity: 3, Price: 10.5},
	}
	if got := Total(items); got != 61.5 {
		t.Fatalf("Total = %v, want 61.5", got)
	}
	if got := Total(nil); got != 0 {
		t.Fatalf("Total(nil) = %v, want 0", got)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCompleted, true},
		{StatusPendingPickup, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
