package services

import (
	"context"
	"fmt"

	"cleanconnect/config"

	logger "github.com/Bparsons0904/goLogger"
	"gopkg.in/gomail.v2"
)

type SupportRequest struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type MailService struct {
	config config.Config
	log    logger.Logger
	send   func(messages ...*gomail.Message) error
}

// NewMailService sends through SMTP when SMTP_HOST is set. Otherwise messages
// are only logged.
func NewMailService(config config.Config) *MailService {
	service := &MailService{
		config: config,
		log:    logger.New("mailService"),
	}

	if config.SMTPHost != "" {
		dialer := gomail.NewDialer(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUser,
			config.SMTPPassword,
		)
		service.send = dialer.DialAndSend
	}

	return service
}

func (s *MailService) Enabled() bool {
	return s.send != nil
}

func (s *MailService) SendSupportRequest(ctx context.Context, request SupportRequest) error {
	log := s.log.TraceFromContext(ctx).Function("SendSupportRequest")

	if !s.Enabled() {
		log.Info(
			"Support request received",
			"name", request.Name,
			"email", request.Email,
			"subject", request.Subject,
		)
		return nil
	}

	from := s.config.SMTPFrom
	if from == "" {
		from = s.config.SMTPUser
	}

	message := gomail.NewMessage()
	message.SetHeader("From", from)
	message.SetHeader("To", s.config.SupportInbox)
	message.SetAddressHeader("Reply-To", request.Email, request.Name)
	message.SetHeader("Subject", "[Support] "+request.Subject)
	message.SetBody("text/plain", fmt.Sprintf(
		"From: %s <%s>\n\n%s",
		request.Name,
		request.Email,
		request.Message,
	))

	if err := s.send(message); err != nil {
		return log.Err("failed to send support email", err, "email", request.Email)
	}

	log.Info("Support request forwarded", "email", request.Email, "inbox", s.config.SupportInbox)
	return nil
}
