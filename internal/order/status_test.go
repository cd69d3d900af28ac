package order

import (
	"testing"
	"time"
)

func TestTransition(t *testing.T) {
	placed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		current Status
		next    Status
		actor   Actor
		now     time.Time
		wantErr bool
	}{
		{"admin moves pending to processing", StatusPending, StatusProcessing, ActorAdmin, placed, false},
		{"admin moves processing to shipped", StatusProcessing, StatusShipped, ActorAdmin, placed, false},
		{"admin moves shipped to delivered", StatusShipped, StatusDelivered, ActorAdmin, placed, false},
		{"admin may skip intermediate steps", StatusPending, StatusDelivered, ActorAdmin, placed, false},
		{"customer cannot advance status", StatusPending, StatusProcessing, ActorCustomer, placed, true},
		{"customer cancels pending", StatusPending, StatusCancelled, ActorCustomer, placed, false},
		{"customer cancels processing inside window", StatusProcessing, StatusCancelled, ActorCustomer, placed.Add(30 * time.Minute), false},
		{"customer cancels processing after window", StatusProcessing, StatusCancelled, ActorCustomer, placed.Add(90 * time.Minute), true},
		{"admin cancels processing after window", StatusProcessing, StatusCancelled, ActorAdmin, placed.Add(90 * time.Minute), false},
		{"shipped cannot be cancelled", StatusShipped, StatusCancelled, ActorAdmin, placed, true},
		{"delivered is terminal", StatusDelivered, StatusCancelled, ActorAdmin, placed, true},
		{"cancelled is terminal", StatusCancelled, StatusProcessing, ActorAdmin, placed, true},
		{"same status is rejected", StatusProcessing, StatusProcessing, ActorAdmin, placed, true},
		{"unknown status is rejected", StatusPending, Status("misplaced"), ActorAdmin, placed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Transition(tt.current, tt.next, tt.actor, placed, tt.now)
			if tt.wantErr && err == nil {
				t.Fatalf("Transition(%s -> %s, %s) = nil, want error", tt.current, tt.next, tt.actor)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Transition(%s -> %s, %s) = %v, want nil", tt.current, tt.next, tt.actor, err)
			}
		})
	}
}

func TestTransitionErrorMessageNamesWindow(t *testing.T) {
	placed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	err := Transition(StatusProcessing, StatusCancelled, ActorCustomer, placed, placed.Add(2*time.Hour))
	if err == nil {
		t.Fatal("expected error for expired cancellation window")
	}
	transitionErr, ok := err.(*InvalidTransitionError)
	if !ok {
		t.Fatalf("expected *InvalidTransitionError, got %T", err)
	}
	if transitionErr.Reason != "cancellation window has expired" {
		t.Fatalf("unexpected reason %q", transitionErr.Reason)
	}
}
