package entity

// Booking is a customer's request for a cook's service.
type Booking struct {
	ID                 int64         `json:"id"`
	CookID             int64         `json:"cookId,omitempty"`
	CookUsername       string        `json:"cookUsername,omitempty"`
	CustomerID         int64         `json:"customerId,omitempty"`
	CustomerUsername   string        `json:"customerUsername,omitempty"`
	CustomerName       string        `json:"customerName"`
	CustomerAddress    string        `json:"customerAddress"`
	MealPreference     string        `json:"mealPreference,omitempty"`
	RequestedDateTime  *Timestamp    `json:"requestedDateTime"` // nil means as soon as possible
	CreatedAt          *Timestamp    `json:"createdAt,omitempty"`
	Status             BookingStatus `json:"bookingStatus"`
	ServiceCompletedAt *Timestamp    `json:"serviceCompletedAt,omitempty"`
	PaymentCompletedAt *Timestamp    `json:"paymentCompletedAt,omitempty"`
	TotalCharges       *float64      `json:"totalCharges,omitempty"`
	RatedByCurrentUser bool          `json:"ratedByCurrentUser"`
}

// EffectiveStatus folds the completion timestamps into the reported status.
// The backend may keep ACCEPTED after service completion; the timestamps win.
func (b *Booking) EffectiveStatus() BookingStatus {
	switch b.Status {
	case StatusRejected, StatusCancelled:
		return b.Status
	}

	implied := b.Status
	switch {
	case b.ServiceCompletedAt.IsSet() && b.PaymentCompletedAt.IsSet():
		implied = StatusCompleted
	case b.ServiceCompletedAt.IsSet():
		implied = StatusServiceCompleted
	}

	if implied.rank() > b.Status.rank() {
		return implied
	}

	return b.Status
}

// IsASAP reports whether the customer asked for the earliest slot.
func (b *Booking) IsASAP() bool {
	return !b.RequestedDateTime.IsSet()
}

// Clone returns a deep copy so callers never alias board-owned state.
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}

	c := *b
	c.RequestedDateTime = cloneTimestamp(b.RequestedDateTime)
	c.CreatedAt = cloneTimestamp(b.CreatedAt)
	c.ServiceCompletedAt = cloneTimestamp(b.ServiceCompletedAt)
	c.PaymentCompletedAt = cloneTimestamp(b.PaymentCompletedAt)
	if b.TotalCharges != nil {
		v := *b.TotalCharges
		c.TotalCharges = &v
	}

	return &c
}

func cloneTimestamp(t *Timestamp) *Timestamp {
	if t == nil {
		return nil
	}
	c := *t

	return &c
}

// CreateBookingRequest is the payload for a new booking.
type CreateBookingRequest struct {
	CookID            int64      `json:"cookId" validate:"required,gt=0"`
	CustomerName      string     `json:"customerName" validate:"required,max=120"`
	CustomerAddress   string     `json:"customerAddress" validate:"required,max=500"`
	MealPreference    string     `json:"mealPreference,omitempty" validate:"max=500"`
	RequestedDateTime *Timestamp `json:"requestedDateTime"`
}

// RatingRequest is the payload for rating a completed booking.
type RatingRequest struct {
	BookingID   int64  `json:"bookingId" validate:"required,gt=0"`
	RatingValue int    `json:"ratingValue" validate:"required,min=1,max=5"`
	Comment     string `json:"comment,omitempty" validate:"max=1000"`
}
