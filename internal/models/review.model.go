package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID              string    `json:"id"`
	BookingID       string    `json:"bookingId"`
	ClientID        string    `json:"clientId"`
	CleanerID       string    `json:"cleanerId"`
	AuthorName      string    `json:"authorName"`
	AuthorAvatarURL string    `json:"authorAvatarUrl,omitempty"`
	Rating          int       `json:"rating"`
	Comment         string    `json:"comment"`
	Date            time.Time `json:"date"`
}

func (r Review) GetID() string {
	return r.ID
}
