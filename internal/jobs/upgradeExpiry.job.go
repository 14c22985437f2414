package jobs

import (
	"context"
	"time"

	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// UpgradeExpiryJob turns premium off for cleaners whose subscription has run out.
type UpgradeExpiryJob struct {
	userRepo repositories.UserRepository
	clock    func() time.Time
	log      logger.Logger
	schedule services.Schedule
}

func NewUpgradeExpiryJob(
	userRepo repositories.UserRepository,
	clock func() time.Time,
	schedule services.Schedule,
) *UpgradeExpiryJob {
	return &UpgradeExpiryJob{
		userRepo: userRepo,
		clock:    clock,
		log:      logger.New("upgradeExpiryJob"),
		schedule: schedule,
	}
}

func (j *UpgradeExpiryJob) Name() string {
	return "UpgradeExpiry"
}

func (j *UpgradeExpiryJob) Schedule() services.Schedule {
	return j.schedule
}

func (j *UpgradeExpiryJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	cleaners, err := j.userRepo.ListCleaners(ctx)
	if err != nil {
		return log.Err("failed to list cleaners", err)
	}

	now := j.clock()
	expired := 0
	for _, cleaner := range cleaners {
		if !premiumExpired(cleaner.CleanerProfile, now) {
			continue
		}

		_, err := j.userRepo.Mutate(ctx, cleaner.ID, func(user *models.User) error {
			// Re-checked under the row lock; a renewal may have landed since the scan.
			if user.IsCleaner() && premiumExpired(user.CleanerProfile, now) {
				user.IsPremium = false
			}
			return nil
		})
		if err != nil {
			return log.Err("failed to expire premium subscription", err, "cleanerID", cleaner.ID)
		}
		expired++
	}

	log.Info("Upgrade expiry completed", "checked", len(cleaners), "expired", expired)
	return nil
}

func premiumExpired(profile *models.CleanerProfile, now time.Time) bool {
	return profile != nil &&
		profile.IsPremium &&
		profile.SubscriptionExpiresAt != nil &&
		!profile.SubscriptionExpiresAt.After(now)
}
