package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypePremium  PaymentType = "premium"
	PaymentTypeFeatured PaymentType = "featured"
)

const (
	PremiumSubscriptionPeriod = 30 * 24 * time.Hour
	FeaturedListingPeriod     = 7 * 24 * time.Hour
)

type Payment struct {
	ID          string          `json:"id"`
	CleanerID   string          `json:"cleanerId"`
	CleanerName string          `json:"cleanerName"`
	Type        PaymentType     `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Status      PaymentStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	ProcessedAt *time.Time      `json:"processedAt,omitempty"`
}

func (p Payment) GetID() string {
	return p.ID
}

func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// ApplyApproval grants the upgrade a payment paid for, starting at now.
func (p *Payment) ApplyApproval(profile *CleanerProfile, now time.Time) {
	switch p.Type {
	case PaymentTypePremium:
		expires := now.Add(PremiumSubscriptionPeriod)
		profile.IsPremium = true
		profile.SubscriptionExpiresAt = &expires
	case PaymentTypeFeatured:
		until := now.Add(FeaturedListingPeriod)
		profile.FeaturedUntil = &until
	}
	profile.SetPaymentStatus(p.Type, PaymentStatusApproved)
}
