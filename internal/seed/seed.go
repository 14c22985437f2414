// Package seed holds the demo records loaded into empty collections.
package seed

import (
	"sync"
	"time"

	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"

	"github.com/shopspring/decimal"
)

// DemoPassword signs in every seeded account.
const DemoPassword = "password123"

type PasswordHasher func(password string) (string, error)

// Data builds the seed functions. Timestamps are relative to now, and the demo
// password is hashed at most once.
func Data(hash PasswordHasher, now time.Time) repositories.SeedData {
	var (
		once     sync.Once
		demoHash string
		hashErr  error
	)
	demoPasswordHash := func() (string, error) {
		once.Do(func() { demoHash, hashErr = hash(DemoPassword) })
		return demoHash, hashErr
	}

	return repositories.SeedData{
		Users: func() ([]models.User, error) {
			passwordHash, err := demoPasswordHash()
			if err != nil {
				return nil, err
			}
			return Users(passwordHash, now), nil
		},
		Services: func() ([]models.Service, error) { return Services(), nil },
		Bookings: func() ([]models.Booking, error) { return Bookings(now), nil },
		Reviews:  func() ([]models.Review, error) { return Reviews(now), nil },
		Payments: func() ([]models.Payment, error) { return Payments(now), nil },
	}
}

func avatar(seed string) string {
	return "https://api.dicebear.com/8.x/initials/svg?seed=" + seed
}

func Users(passwordHash string, now time.Time) []models.User {
	days := func(n int) time.Time { return now.AddDate(0, 0, n) }
	featuredUntil := days(5)
	subscriptionExpiresAt := days(20)
	approved := models.PaymentStatusApproved
	pending := models.PaymentStatusPending

	return []models.User{
		{
			ID:           "client-1",
			Name:         "Chidi Okafor",
			Email:        "client@cleanconnect.ng",
			AvatarURL:    avatar("Chidi"),
			Role:         models.RoleClient,
			PasswordHash: passwordHash,
			CreatedAt:    days(-90),
		},
		{
			ID:           "cleaner-1",
			Name:         "Aisha Bello",
			Email:        "aisha@cleanconnect.ng",
			AvatarURL:    avatar("Aisha"),
			Role:         models.RoleCleaner,
			PasswordHash: passwordHash,
			CreatedAt:    days(-120),
			CleanerProfile: &models.CleanerProfile{
				Bio:                   "Detail-obsessed home cleaner serving Lekki and Victoria Island for six years.",
				Location:              "Lekki, Lagos",
				State:                 "Lagos",
				City:                  "Lekki",
				Rating:                5,
				ReviewsCount:          1,
				IsPremium:             true,
				WorkGallery:           []string{},
				CleanerType:           models.CleanerTypeIndividual,
				Specialties:           []string{"Deep Cleaning", "Move-out Cleaning", "Laundry"},
				FeaturedUntil:         &featuredUntil,
				SubscriptionExpiresAt: &subscriptionExpiresAt,
				PremiumPaymentStatus:  &approved,
				FeaturedPaymentStatus: &approved,
			},
		},
		{
			ID:           "cleaner-2",
			Name:         "Emeka Nwosu",
			Email:        "emeka@cleanconnect.ng",
			AvatarURL:    avatar("Emeka"),
			Role:         models.RoleCleaner,
			PasswordHash: passwordHash,
			CreatedAt:    days(-60),
			CleanerProfile: &models.CleanerProfile{
				Bio:                  "Office and apartment cleaning across Abuja. Eco-friendly products only.",
				Location:             "Abuja, FCT - Abuja",
				State:                "FCT - Abuja",
				City:                 "Abuja",
				WorkGallery:          []string{},
				CleanerType:          models.CleanerTypeIndividual,
				Specialties:          []string{"Office Cleaning", "Eco-friendly"},
				PremiumPaymentStatus: &pending,
			},
		},
		{
			ID:           "cleaner-3",
			Name:         "Sparkle Crew Ltd",
			Email:        "hello@sparklecrew.ng",
			AvatarURL:    avatar("Sparkle"),
			Role:         models.RoleCleaner,
			PasswordHash: passwordHash,
			CreatedAt:    days(-30),
			CleanerProfile: &models.CleanerProfile{
				Bio:         "A team of ten for post-construction and large commercial jobs.",
				Location:    "Port Harcourt, Rivers",
				State:       "Rivers",
				City:        "Port Harcourt",
				WorkGallery: []string{},
				CleanerType: models.CleanerTypeCompany,
				CompanyName: "Sparkle Crew Ltd",
				Specialties: []string{"Deep Cleaning", "Post-construction", "Office Cleaning"},
			},
		},
		{
			ID:           "admin-1",
			Name:         "CleanConnect Admin",
			Email:        "admin@cleanconnect.ng",
			AvatarURL:    avatar("Admin"),
			Role:         models.RoleAdmin,
			PasswordHash: passwordHash,
			CreatedAt:    days(-180),
		},
	}
}

func Services() []models.Service {
	return []models.Service{
		{
			ID:          "service-1",
			CleanerID:   "cleaner-1",
			Name:        "Standard Home Cleaning",
			Description: "Dusting, mopping, kitchen and bathroom wipe-down.",
			Price:       decimal.NewFromInt(15000),
			PriceUnit:   models.PriceUnitFlatRate,
		},
		{
			ID:          "service-2",
			CleanerID:   "cleaner-1",
			Name:        "Deep Clean",
			Description: "Top-to-bottom clean including appliances and cabinets.",
			Price:       decimal.NewFromInt(35000),
			PriceUnit:   models.PriceUnitFlatRate,
		},
		{
			ID:          "service-3",
			CleanerID:   "cleaner-2",
			Name:        "Office Cleaning",
			Description: "After-hours cleaning for small offices.",
			Price:       decimal.NewFromInt(4000),
			PriceUnit:   models.PriceUnitPerHour,
		},
		{
			ID:          "service-4",
			CleanerID:   "cleaner-3",
			Name:        "Post-construction Clean",
			Description: "Debris removal and fine dust cleaning after renovation work.",
			Price:       decimal.NewFromInt(120000),
			PriceUnit:   models.PriceUnitFlatRate,
		},
	}
}

func Bookings(now time.Time) []models.Booking {
	days := func(n int) time.Time { return now.AddDate(0, 0, n) }

	return []models.Booking{
		{
			ID:          "booking-1",
			ClientID:    "client-1",
			CleanerID:   "cleaner-1",
			ServiceID:   "service-2",
			BookingDate: days(-14).Format(time.DateOnly),
			Status:      models.BookingStatusApproved,
			Address:     "12 Admiralty Way, Lekki Phase 1, Lagos",
			TotalCost:   decimal.NewFromInt(35000),
			ReviewID:    "review-1",
			CreatedAt:   days(-20),
			UpdatedAt:   days(-13),
		},
		{
			ID:          "booking-2",
			ClientID:    "client-1",
			CleanerID:   "cleaner-1",
			ServiceID:   "service-1",
			BookingDate: days(3).Format(time.DateOnly),
			Status:      models.BookingStatusPending,
			Address:     "12 Admiralty Way, Lekki Phase 1, Lagos",
			TotalCost:   decimal.NewFromInt(15000),
			CreatedAt:   days(-1),
			UpdatedAt:   days(-1),
		},
		{
			ID:          "booking-3",
			ClientID:    "client-1",
			CleanerID:   "cleaner-2",
			ServiceID:   "service-3",
			BookingDate: days(7).Format(time.DateOnly),
			Status:      models.BookingStatusConfirmed,
			Address:     "Plot 5, Aminu Kano Crescent, Wuse 2, Abuja",
			TotalCost:   decimal.NewFromInt(16000),
			CreatedAt:   days(-2),
			UpdatedAt:   days(-2),
		},
	}
}

func Reviews(now time.Time) []models.Review {
	return []models.Review{
		{
			ID:              "review-1",
			BookingID:       "booking-1",
			ClientID:        "client-1",
			CleanerID:       "cleaner-1",
			AuthorName:      "Chidi Okafor",
			AuthorAvatarURL: avatar("Chidi"),
			Rating:          5,
			Comment:         "Aisha was on time and the flat has never looked better.",
			Date:            now.AddDate(0, 0, -13),
		},
	}
}

func Payments(now time.Time) []models.Payment {
	return []models.Payment{
		{
			ID:          "payment-1",
			CleanerID:   "cleaner-2",
			CleanerName: "Emeka Nwosu",
			Type:        models.PaymentTypePremium,
			Amount:      decimal.NewFromInt(10000),
			Status:      models.PaymentStatusPending,
			CreatedAt:   now.AddDate(0, 0, -1),
		},
	}
}
