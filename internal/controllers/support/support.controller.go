package supportController

import (
	"context"

	"cleanconnect/internal/services"
	"cleanconnect/internal/types"
	"cleanconnect/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

const ReceivedMessage = "Your message has been received. We will get back to you shortly."

type SupportRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required,max=5000"`
}

type SupportReceipt struct {
	Message string `json:"message"`
}

type SupportController struct {
	mail      *services.MailService
	validator *utils.Validator
	log       logger.Logger
}

type SupportControllerInterface interface {
	Submit(ctx context.Context, req SupportRequest) (SupportReceipt, error)
}

func New(services services.Service) SupportControllerInterface {
	return &SupportController{
		mail:      services.Mail,
		validator: utils.NewValidator(),
		log:       logger.New("supportController"),
	}
}

func (sc *SupportController) Submit(ctx context.Context, req SupportRequest) (SupportReceipt, error) {
	log := sc.log.TraceFromContext(ctx).Function("Submit")

	req.Name = utils.CleanText(req.Name)
	req.Email = utils.CleanText(req.Email)
	req.Subject = utils.CleanText(req.Subject)
	req.Message = utils.CleanText(req.Message)

	if err := sc.validator.Struct(req); err != nil {
		return SupportReceipt{}, log.ErrorWithType(types.ErrValidation, err.Error())
	}

	if err := sc.mail.SendSupportRequest(ctx, services.SupportRequest{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		return SupportReceipt{}, err
	}

	return SupportReceipt{Message: ReceivedMessage}, nil
}
