package domain

import "testing"

func TestOrder_Total(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{Product: ProductSnapshot{Price: 2.5}, Quantity: 4},
		{Product: ProductSnapshot{Price: 10}, Quantity: 1},
	}}
	if got := o.Total(); got != 20 {
		t.Fatalf("Total() = %v, want 20", got)
	}
	if got := (&Order{}).Total(); got != 0 {
		t.Fatalf("empty Total() = %v, want 0", got)
	}
}

func TestOrder_OwnedBy(t *testing.T) {
	o := &Order{CustomerID: "c1"}
	if !o.OwnedBy("c1") {
		t.Error("expected owner match")
	}
	if o.OwnedBy("c2") {
		t.Error("foreign user must not own the order")
	}
	if (&Order{}).OwnedBy("") {
		t.Error("an order without customer has no owner")
	}
}

func TestProduct_Snapshot(t *testing.T) {
	p := &Product{ID: "p1", Name: "Mug", Price: 3, Image: "mug.png", Description: "Blue"}
	s := p.Snapshot()
	if s.ID != "p1" || s.Name != "Mug" || s.Price != 3 || s.Description != "Blue" {
		t.Fatalf("unexpected snapshot %+v", s)
	}
}

func TestValidRole(t *testing.T) {
	for role, want := range map[string]bool{
		RoleAdmin:    true,
		RoleCustomer: true,
		"":           false,
		"Admin":      false,
		"root":       false,
	} {
		if got := ValidRole(role); got != want {
			t.Errorf("ValidRole(%q) = %v, want %v", role, got, want)
		}
	}
}

func TestUser_IsAdmin(t *testing.T) {
	var nilUser *User
	if nilUser.IsAdmin() {
		t.Error("nil user is not an admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role not recognised")
	}
	if (&User{Role: RoleCustomer}).IsAdmin() {
		t.Error("customer reported as admin")
	}
}
