package jobs

import (
	"cleanconnect/config"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	service services.Service,
	repos repositories.Repository,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	upgradeExpiryJob := NewUpgradeExpiryJob(repos.User, service.Clock, services.Hourly)
	if err := schedulerService.AddJob(upgradeExpiryJob); err != nil {
		return log.Err("failed to register upgrade expiry job", err)
	}
	log.Info("Registered upgrade expiry job", "schedule", services.Hourly.String())

	return nil
}
