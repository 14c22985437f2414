package paymentsController

import (
	"context"
	"errors"
	"time"

	"cleanconnect/internal/events"
	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/services"
	"cleanconnect/internal/types"
	"cleanconnect/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NotifyRequest struct {
	Type   models.PaymentType `json:"type"   validate:"omitempty,oneof=premium featured"`
	Amount *decimal.Decimal   `json:"amount"`
}

type DecisionRequest struct {
	Status models.PaymentStatus `json:"status"`
}

type PaymentsController struct {
	paymentRepo repositories.PaymentRepository
	userRepo    repositories.UserRepository
	transaction *services.TransactionService
	eventBus    *events.EventBus
	clock       func() time.Time
	validator   *utils.Validator
	log         logger.Logger
}

type PaymentsControllerInterface interface {
	Notify(ctx context.Context, cleaner *models.User, req NotifyRequest) (models.User, error)
	ListPending(ctx context.Context, admin *models.User) ([]models.Payment, error)
	Decide(ctx context.Context, admin *models.User, paymentID string, req DecisionRequest) (models.Payment, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
) PaymentsControllerInterface {
	return &PaymentsController{
		paymentRepo: repos.Payment,
		userRepo:    repos.User,
		transaction: services.Transaction,
		eventBus:    eventBus,
		clock:       services.Clock,
		validator:   utils.NewValidator(),
		log:         logger.New("paymentsController"),
	}
}

// Notify records a cleaner's claim to have paid for an upgrade and marks the
// matching upgrade as pending review.
func (pc *PaymentsController) Notify(
	ctx context.Context,
	cleaner *models.User,
	req NotifyRequest,
) (models.User, error) {
	log := pc.log.TraceFromContext(ctx).Function("Notify")

	if !cleaner.IsCleaner() {
		return models.User{}, log.ErrorWithType(types.ErrForbidden, "Permission denied.", "userID", cleaner.ID)
	}
	if req.Type == "" || req.Amount == nil || !req.Amount.IsPositive() {
		return models.User{}, log.ErrorWithType(types.ErrValidation, "Missing payment details.")
	}
	if err := pc.validator.Struct(req); err != nil {
		return models.User{}, log.ErrorWithType(types.ErrValidation, err.Error())
	}

	var updated models.User
	err := pc.transaction.Atomically(ctx, func(ctx context.Context) error {
		_, pending, err := pc.paymentRepo.FindPending(ctx, cleaner.ID, req.Type)
		if err != nil {
			return log.Err("failed to check pending payments", err, "cleanerID", cleaner.ID)
		}
		if pending {
			return log.ErrorWithType(
				types.ErrConflict,
				"A "+string(req.Type)+" payment is already awaiting review.",
				"cleanerID", cleaner.ID,
			)
		}

		payment := models.Payment{
			ID:          uuid.NewString(),
			CleanerID:   cleaner.ID,
			CleanerName: cleaner.Name,
			Type:        req.Type,
			Amount:      *req.Amount,
			Status:      models.PaymentStatusPending,
			CreatedAt:   pc.clock(),
		}
		if _, err := pc.paymentRepo.Create(ctx, payment); err != nil {
			return log.Err("failed to create payment", err, "cleanerID", cleaner.ID)
		}

		updated, err = pc.userRepo.Mutate(ctx, cleaner.ID, func(user *models.User) error {
			if user.IsCleaner() {
				user.SetPaymentStatus(req.Type, models.PaymentStatusPending)
			}
			return nil
		})
		if err != nil {
			return log.Err("failed to mark upgrade pending", err, "cleanerID", cleaner.ID)
		}

		log.Info("Payment notification recorded", "paymentID", payment.ID, "cleanerID", cleaner.ID, "type", req.Type)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	return updated.Sanitized(), nil
}

func (pc *PaymentsController) ListPending(ctx context.Context, admin *models.User) ([]models.Payment, error) {
	log := pc.log.TraceFromContext(ctx).Function("ListPending")

	if !admin.IsAdmin() {
		return nil, log.ErrorWithType(types.ErrForbidden, "Permission denied.", "userID", admin.ID)
	}

	payments, err := pc.paymentRepo.ListPending(ctx)
	if err != nil {
		return nil, log.Err("failed to list pending payments", err)
	}
	return payments, nil
}

// Decide settles a pending payment. An approval grants the upgrade from the
// moment of the decision.
func (pc *PaymentsController) Decide(
	ctx context.Context,
	admin *models.User,
	paymentID string,
	req DecisionRequest,
) (models.Payment, error) {
	log := pc.log.TraceFromContext(ctx).Function("Decide")

	if !admin.IsAdmin() {
		return models.Payment{}, log.ErrorWithType(types.ErrForbidden, "Permission denied.", "userID", admin.ID)
	}
	if req.Status == "" {
		return models.Payment{}, log.ErrorWithType(types.ErrValidation, "Status is required.")
	}
	if req.Status != models.PaymentStatusApproved && req.Status != models.PaymentStatusDeclined {
		return models.Payment{}, log.ErrorWithType(types.ErrValidation, "Invalid status provided.", "status", req.Status)
	}

	now := pc.clock()
	var decided models.Payment
	err := pc.transaction.Atomically(ctx, func(ctx context.Context) error {
		var err error
		decided, err = pc.paymentRepo.Mutate(ctx, paymentID, func(payment *models.Payment) error {
			if !payment.IsPending() {
				return log.ErrorWithType(types.ErrConflict, "Payment has already been processed.", "paymentID", paymentID)
			}
			payment.Status = req.Status
			payment.ProcessedAt = &now
			return nil
		})
		if errors.Is(err, types.ErrNotFound) {
			return log.ErrorWithType(types.ErrNotFound, "Payment not found.", "paymentID", paymentID)
		}
		if err != nil {
			return err
		}

		_, err = pc.userRepo.Mutate(ctx, decided.CleanerID, func(user *models.User) error {
			if !user.IsCleaner() {
				return nil
			}
			if req.Status == models.PaymentStatusApproved {
				decided.ApplyApproval(user.CleanerProfile, now)
			} else {
				user.SetPaymentStatus(decided.Type, models.PaymentStatusDeclined)
			}
			return nil
		})
		if errors.Is(err, types.ErrNotFound) {
			log.Warn("Payment cleaner no longer exists", "paymentID", paymentID, "cleanerID", decided.CleanerID)
			return nil
		}
		if err != nil {
			return log.Err("failed to apply payment decision", err, "paymentID", paymentID)
		}
		return nil
	})
	if err != nil {
		return models.Payment{}, err
	}

	log.Info("Payment decided", "paymentID", decided.ID, "status", decided.Status, "type", decided.Type)

	if err := pc.eventBus.PublishNotification(
		events.PAYMENT_DECISION,
		[]string{decided.CleanerID},
		map[string]any{
			"paymentId": decided.ID,
			"type":      string(decided.Type),
			"status":    string(decided.Status),
		},
	); err != nil {
		log.Warn("failed to publish payment notification", "paymentID", decided.ID, "error", err)
	}

	return decided, nil
}
