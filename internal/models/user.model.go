package models

import (
	"slices"
	"strings"
	"time"
)

type Role string

const (
	RoleClient  Role = "client"
	RoleCleaner Role = "cleaner"
	RoleAdmin   Role = "admin"
)

type CleanerType string

const (
	CleanerTypeIndividual CleanerType = "individual"
	CleanerTypeCompany    CleanerType = "company"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDeclined PaymentStatus = "declined"
)

const (
	DefaultCleanerBio      = "I'm new here, ready to make your space shine!"
	DefaultCleanerLocation = "Nigeria"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	IDImageURL   string    `json:"idImageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`

	// Set only when Role is cleaner. Its fields are flattened into the user's JSON.
	*CleanerProfile
}

type CleanerProfile struct {
	Bio                    string         `json:"bio"`
	Location               string         `json:"location"`
	State                  string         `json:"state,omitempty"`
	City                   string         `json:"city,omitempty"`
	Rating                 float64        `json:"rating"`
	ReviewsCount           int            `json:"reviewsCount"`
	IsPremium              bool           `json:"isPremium"`
	WorkGallery            []string       `json:"workGallery"`
	CleanerType            CleanerType    `json:"cleanerType"`
	CompanyName            string         `json:"companyName,omitempty"`
	Specialties            []string       `json:"specialties"`
	CompanyRegistrationURL string         `json:"companyRegistrationUrl,omitempty"`
	FeaturedUntil          *time.Time     `json:"featuredUntil,omitempty"`
	SubscriptionExpiresAt  *time.Time     `json:"subscriptionExpiresAt,omitempty"`
	PremiumPaymentStatus   *PaymentStatus `json:"premiumPaymentStatus,omitempty"`
	FeaturedPaymentStatus  *PaymentStatus `json:"featuredPaymentStatus,omitempty"`
}

func (u User) GetID() string {
	return u.ID
}

func (u *User) IsCleaner() bool {
	return u.Role == RoleCleaner && u.CleanerProfile != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Sanitized returns a copy safe to send to callers.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// IsFeatured reports whether a featured upgrade is active at now.
func (p *CleanerProfile) IsFeatured(now time.Time) bool {
	return p != nil && p.FeaturedUntil != nil && p.FeaturedUntil.After(now)
}

// HasSpecialties reports whether every requested specialty is offered.
func (p *CleanerProfile) HasSpecialties(required []string) bool {
	if p == nil {
		return len(required) == 0
	}
	for _, specialty := range required {
		if !slices.Contains(p.Specialties, specialty) {
			return false
		}
	}
	return true
}

// RebuildLocation derives the display location from city and state.
func (p *CleanerProfile) RebuildLocation() {
	switch {
	case p.City != "" && p.State != "":
		p.Location = p.City + ", " + p.State
	case p.City != "":
		p.Location = p.City
	case p.State != "":
		p.Location = p.State
	}
}

func (p *CleanerProfile) SetPaymentStatus(paymentType PaymentType, status PaymentStatus) {
	switch paymentType {
	case PaymentTypePremium:
		p.PremiumPaymentStatus = &status
	case PaymentTypeFeatured:
		p.FeaturedPaymentStatus = &status
	}
}

func (p *CleanerProfile) PaymentStatusFor(paymentType PaymentType) *PaymentStatus {
	switch paymentType {
	case PaymentTypePremium:
		return p.PremiumPaymentStatus
	case PaymentTypeFeatured:
		return p.FeaturedPaymentStatus
	}
	return nil
}

// MatchesQuery is a case-insensitive substring match on name, city or state.
func (u *User) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(u.Name), q) {
		return true
	}
	if u.CleanerProfile == nil {
		return false
	}
	return strings.Contains(strings.ToLower(u.City), q) ||
		strings.Contains(strings.ToLower(u.State), q)
}
