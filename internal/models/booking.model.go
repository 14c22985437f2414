package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending          BookingStatus = "pending"
	BookingStatusConfirmed        BookingStatus = "confirmed"
	BookingStatusAwaitingApproval BookingStatus = "awaiting_approval"
	BookingStatusApproved         BookingStatus = "approved"
	BookingStatusDeclined         BookingStatus = "declined"
	BookingStatusCancelled        BookingStatus = "cancelled"
	BookingStatusDisputed         BookingStatus = "disputed"

	// Accepted from cleaners as an alias, never stored.
	BookingStatusCompleted BookingStatus = "completed"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending: {
		BookingStatusConfirmed,
		BookingStatusDeclined,
		BookingStatusCancelled,
	},
	BookingStatusConfirmed: {
		BookingStatusAwaitingApproval,
		BookingStatusCancelled,
	},
	BookingStatusAwaitingApproval: {
		BookingStatusApproved,
		BookingStatusDisputed,
	},
}

// CleanerSettableStatuses are the targets a cleaner may request.
var CleanerSettableStatuses = []BookingStatus{
	BookingStatusConfirmed,
	BookingStatusDeclined,
	BookingStatusAwaitingApproval,
}

// Normalize maps the completed alias to awaiting_approval.
func (s BookingStatus) Normalize() BookingStatus {
	if s == BookingStatusCompleted {
		return BookingStatusAwaitingApproval
	}
	return s
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return slices.Contains(bookingTransitions[s], next)
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

func (s BookingStatus) IsCleanerSettable() bool {
	return slices.Contains(CleanerSettableStatuses, s)
}

type Booking struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"clientId"`
	CleanerID   string          `json:"cleanerId"`
	ServiceID   string          `json:"serviceId"`
	BookingDate string          `json:"bookingDate"`
	Status      BookingStatus   `json:"status"`
	Address     string          `json:"address"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	ReviewID    string          `json:"reviewId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (b Booking) GetID() string {
	return b.ID
}

func (b *Booking) HasReview() bool {
	return b.ReviewID != ""
}
