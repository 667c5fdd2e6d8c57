package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func bookingIn(status BookingStatus, serviceDone, paymentDone bool) *Booking {
	b := &Booking{ID: 7, CookID: 2, CustomerID: 1, Status: status}
	now := time.Now()
	if serviceDone {
		b.ServiceCompletedAt = NewTimestamp(now)
	}
	if paymentDone {
		b.PaymentCompletedAt = NewTimestamp(now)
	}

	return b
}

func TestAvailableActions(t *testing.T) {
	cook := Viewer{Actor: ActorCook, UserID: 2}
	customer := Viewer{Actor: ActorCustomer, UserID: 1}

	tests := []struct {
		name    string
		booking *Booking
		viewer  Viewer
		want    []Action
	}{
		{name: "cook pending", booking: bookingIn(StatusPending, false, false), viewer: cook, want: []Action{ActionAccept, ActionReject}},
		{name: "customer pending", booking: bookingIn(StatusPending, false, false), viewer: customer, want: []Action{ActionCancel}},
		{name: "cook accepted", booking: bookingIn(StatusAccepted, false, false), viewer: cook, want: []Action{ActionCompleteService}},
		{name: "customer accepted", booking: bookingIn(StatusAccepted, false, false), viewer: customer, want: []Action{ActionCancel}},
		{name: "cook service completed", booking: bookingIn(StatusServiceCompleted, true, false), viewer: cook, want: []Action{ActionReceivePayment}},
		{name: "cook accepted with service timestamp", booking: bookingIn(StatusAccepted, true, false), viewer: cook, want: []Action{ActionReceivePayment}},
		{name: "customer service completed", booking: bookingIn(StatusAccepted, true, false), viewer: customer, want: nil},
		{name: "cook completed", booking: bookingIn(StatusCompleted, true, true), viewer: cook, want: nil},
		{name: "customer completed", booking: bookingIn(StatusCompleted, true, true), viewer: customer, want: []Action{ActionRate}},
		{name: "customer rejected", booking: bookingIn(StatusRejected, false, false), viewer: customer, want: nil},
		{name: "cook rejected", booking: bookingIn(StatusRejected, false, false), viewer: cook, want: nil},
		{name: "other cook", booking: bookingIn(StatusPending, false, false), viewer: Viewer{Actor: ActorCook, UserID: 99}, want: nil},
		{name: "other customer", booking: bookingIn(StatusPending, false, false), viewer: Viewer{Actor: ActorCustomer, UserID: 99}, want: nil},
		{name: "no viewer", booking: bookingIn(StatusPending, false, false), viewer: Viewer{}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AvailableActions(tt.booking, tt.viewer))
		})
	}
}

func TestAvailableActions_RatedOnce(t *testing.T) {
	b := bookingIn(StatusCompleted, true, true)
	b.RatedByCurrentUser = true

	assert.Empty(t, AvailableActions(b, Viewer{Actor: ActorCustomer, UserID: 1}))
}

func TestAvailableActions_UsernameFallback(t *testing.T) {
	b := &Booking{ID: 3, CookUsername: "chef", Status: StatusPending}

	assert.True(t, CanPerform(b, Viewer{Actor: ActorCook, Username: "chef"}, ActionAccept))
	assert.False(t, CanPerform(b, Viewer{Actor: ActorCook, Username: "other"}, ActionAccept))
}

func TestAction_TargetStatus(t *testing.T) {
	to, ok := ActionAccept.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, StatusAccepted, to)

	_, ok = ActionRate.TargetStatus()
	assert.False(t, ok)

	assert.Equal(t, ActorCustomer, ActionCancel.Actor())
	assert.Equal(t, ActorCook, ActionReceivePayment.Actor())
	assert.False(t, Action("delete").IsValid())
}
