package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

type Booking struct {
	ID        int64         `json:"id"`
	ListingID int64         `json:"listing_id"`
	TenantID  int64         `json:"tenant_id"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`

	// Owner of the booked listing, loaded alongside the booking so that
	// access decisions never need a second lookup.
	ListingOwnerID int64 `json:"-"`
}
