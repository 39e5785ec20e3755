package booking

import "time"

// Booking is a confirmed-at-request-time reservation for a service. The
// total is always recomputed server-side from current catalog prices.
type Booking struct {
	ID                    string    `json:"id"`
	BookingNumber         string    `json:"booking_number"`
	UserID                string    `json:"user_id"`
	ServiceID             string    `json:"service_id"`
	ServiceDate           time.Time `json:"service_date"`
	Participants          int       `json:"participants"`
	TotalAmount           int64     `json:"total_amount"`
	Status                string    `json:"status"` // REQUESTED, CONFIRMED, COMPLETED, CANCELLED
	PaymentStatus         string    `json:"payment_status"`
	DietaryRestrictions   string    `json:"dietary_restrictions,omitempty"`
	SpecialConsiderations string    `json:"special_considerations,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// CreateRequest is the checkout confirmation payload. Guest fields are used
// only when the request carries no authenticated user.
type CreateRequest struct {
	ServiceID             string   `json:"service_id"`
	ServiceDate           string   `json:"service_date"` // YYYY-MM-DD
	Participants          int      `json:"participants"`
	AddOnIDs              []string `json:"add_on_ids"`
	GuestEmail            string   `json:"guest_email,omitempty"`
	GuestName             string   `json:"guest_name,omitempty"`
	GuestPhone            string   `json:"guest_phone,omitempty"`
	DietaryRestrictions   string   `json:"dietary_restrictions,omitempty"`
	SpecialConsiderations string   `json:"special_considerations,omitempty"`
}
