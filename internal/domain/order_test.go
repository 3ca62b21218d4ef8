package domain

import "testing"

func TestOrderStatusCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to shipped", OrderStatusPending, OrderStatusShipped, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to delivered", OrderStatusPending, OrderStatusDelivered, false},
		{"pending to returned", OrderStatusPending, OrderStatusReturned, false},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, false},
		{"shipped to pending", OrderStatusShipped, OrderStatusPending, false},
		{"delivered to returned", OrderStatusDelivered, OrderStatusReturned, true},
		{"delivered to shipped", OrderStatusDelivered, OrderStatusShipped, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
		{"returned is terminal", OrderStatusReturned, OrderStatusDelivered, false},
		{"same status is not a transition", OrderStatusPending, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusReturned,
	} {
		if !s.Valid() {
			t.Errorf("Valid(%s) = false, want true", s)
		}
	}

	if OrderStatus("refunded").Valid() {
		t.Error("Valid(refunded) = true, want false")
	}
}
