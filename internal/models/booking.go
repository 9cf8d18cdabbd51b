package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ServiceID   string             `json:"serviceId" bson:"serviceId"`
	BookingDate string             `json:"bookingDate" bson:"bookingDate"`
	Price       float64            `json:"price" bson:"price"`
	UserEmail   string             `json:"userEmail" bson:"userEmail"`
	Status      string             `json:"status,omitempty" bson:"status,omitempty"` // pending, confirmed, cancelled, completed
	Note        string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	Extra       map[string]any     `json:"-" bson:",inline"`
}

func (b Booking) MarshalJSON() ([]byte, error) {
	type plain Booking
	return marshalWithExtra(plain(b), b.Extra)
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, p)
	if err != nil {
		return err
	}
	*b = Booking(p)
	b.Extra = extra
	return nil
}

// NewBookingRequest is the body of POST /bookings.
// serviceId and userEmail are stored as given; nothing checks they exist.
type NewBookingRequest struct {
	ServiceID   string `json:"serviceId" validate:"required"`
	BookingDate string `json:"bookingDate" validate:"required"`
	Price       Amount `json:"price" validate:"required"`
	UserEmail   string `json:"userEmail" validate:"required"`
	Status      string `json:"status,omitempty"`
	Note        string `json:"note,omitempty"`
}

// Booking builds the document to insert.
func (r NewBookingRequest) Booking(now time.Time) *Booking {
	status := r.Status
	if status == "" {
		status = StatusPending
	}
	return &Booking{
		ServiceID:   r.ServiceID,
		BookingDate: r.BookingDate,
		Price:       r.Price.Float64(),
		UserEmail:   r.UserEmail,
		Status:      status,
		Note:        r.Note,
		CreatedAt:   now,
	}
}

// BookingPatch is the body of PATCH /bookings/{id}.
type BookingPatch struct {
	ServiceID   *string `json:"serviceId,omitempty"`
	BookingDate *string `json:"bookingDate,omitempty"`
	Price       *Amount `json:"price,omitempty"`
	UserEmail   *string `json:"userEmail,omitempty"`
	Status      *string `json:"status,omitempty"`
	Note        *string `json:"note,omitempty"`

	Extra map[string]any `json:"-"`
}

func (p *BookingPatch) UnmarshalJSON(data []byte) error {
	type plain BookingPatch
	var pp plain
	if err := json.Unmarshal(data, &pp); err != nil {
		return err
	}
	extra, err := splitExtra(data, pp)
	if err != nil {
		return err
	}
	*p = BookingPatch(pp)
	p.Extra = extra
	return nil
}

func (p BookingPatch) Fields() map[string]any {
	set := map[string]any{}
	putString(set, "serviceId", p.ServiceID)
	putString(set, "bookingDate", p.BookingDate)
	if p.Price != nil {
		set["price"] = p.Price.Float64()
	}
	putString(set, "userEmail", p.UserEmail)
	putString(set, "status", p.Status)
	putString(set, "note", p.Note)
	mergeExtra(set, p.Extra)
	return set
}
