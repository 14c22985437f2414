package services

import (
	"time"

	"cleanconnect/config"
	"cleanconnect/internal/database"
	"cleanconnect/internal/repositories"
)

type Service struct {
	Transaction *TransactionService
	Scheduler   *SchedulerService
	Auth        *AuthService
	Mail        *MailService
	Clock       func() time.Time
}

func New(db database.DB, config config.Config, repos repositories.Repository) Service {
	return Service{
		Transaction: NewTransactionService(db),
		Scheduler:   NewSchedulerService(),
		Auth:        NewAuthService(config, repos.User),
		Mail:        NewMailService(config),
		Clock:       time.Now,
	}
}
