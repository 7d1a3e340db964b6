package validation

import (
	"strings"
	"testing"
)

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		UserName:   "Asha",
		UserMobile: "9876543210",
		Items: []ItemPayload{
			{Section: "Men", Item: "Shirt", Service: "Wash & Iron", Quantity: 2, Price: 15},
			{Section: "Women", Item: "Saree", Service: "Dry Clean", Quantity: 1, Price: 40},
		},
	}
}

func TestCreateOrderRequest_Valid(t *testing.T) {
	v := New()
	if err := v.Struct(validRequest()); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestCreateOrderRequest_ItemMissingService(t *testing.T) {
	v := New()
	req := validRequest()
	req.Items[1].Service = ""

	err := v.Struct(req)
	if err == nil {
		t.Fatal("expected validation error for missing service, got nil")
	}
	if !strings.Contains(err.Error(), "Service") {
		t.Fatalf("error does not name the missing field: %v", err)
	}
}

func TestCreateOrderRequest_MissingCustomerFields(t *testing.T) {
	v := New()
	req := validRequest()
	req.UserName = ""
	req.UserMobile = ""

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation errors for missing name/mobile, got nil")
	}
}

func TestCreateOrderRequest_NoItems(t *testing.T) {
	v := New()
	req := validRequest()
	req.Items = nil

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for empty items, got nil")
	}
}

func TestCreateOrderRequest_ZeroQuantity(t *testing.T) {
	v := New()
	req := validRequest()
	req.Items[0].Quantity = 0

	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for zero quantity, got nil")
	}
}

func TestCreateOrderRequest_ClaimedTotalMustMatchItems(t *testing.T) {
	v := New()

	req := validRequest()
	good := 70.0 // 2*15 + 1*40
	req.TotalAmount = &good
	if err := v.Struct(req); err != nil {
		t.Fatalf("matching total rejected: %v", err)
	}

	bad := 69.99
	req.TotalAmount = &bad
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for total mismatch, got nil")
	}
}

func TestCreateOrderRequest_NoClaimedTotalIsFine(t *testing.T) {
	v := New()
	req := validRequest()
	req.TotalAmount = nil
	if err := v.Struct(req); err != nil {
		t.Fatalf("request without claimed total rejected: %v", err)
	}
}

func TestUpdateStatusRequest(t *testing.T) {
	v := New()
	if err := v.Struct(UpdateStatusRequest{From: "Pending", To: "In Progress"}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := v.Struct(UpdateStatusRequest{From: "Pending"}); err == nil {
		t.Fatal("expected validation error for missing target status")
	}
}

func TestSignupRequest_WeakPassword(t *testing.T) {
	v := New()
	req := SignupRequest{Name: "Asha", Email: "asha@example.com", Mobile: "9876543210", Password: "short"}
	if err := v.Struct(req); err == nil {
		t.Fatal("expected validation error for short password")
	}
}
