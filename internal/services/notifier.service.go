package services

import (
	"fmt"
	"server/config"
	"server/internal/logger"

	. "server/internal/models"

	"gopkg.in/gomail.v2"
)

// mailSender is satisfied by *gomail.Dialer and by in-memory fakes in tests.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// NotifierService sends a best-effort email when a lead is created. It is a
// no-op unless SMTP credentials and both addresses are configured. Failures
// are logged and swallowed: lead capture never depends on delivery.
type NotifierService struct {
	sender mailSender
	from   string
	to     string
	log    logger.Logger
}

func NewNotifier(config config.Config) *NotifierService {
	log := logger.New("NotifierService")

	service := &NotifierService{
		from: config.NotifyFrom,
		to:   config.NotifyTo,
		log:  log,
	}

	if config.SMTPHost == "" || config.SMTPUser == "" || config.SMTPPassword == "" {
		log.Info("SMTP not configured, lead notifications disabled")
		return service
	}

	if config.NotifyFrom == "" || config.NotifyTo == "" {
		log.Info("Notification addresses not configured, lead notifications disabled")
		return service
	}

	service.sender = gomail.NewDialer(
		config.SMTPHost,
		config.SMTPPort,
		config.SMTPUser,
		config.SMTPPassword,
	)

	return service
}

func (s *NotifierService) Enabled() bool {
	return s.sender != nil
}

// LeadCreated fires the notification without blocking the caller. The
// triggering request never waits on, or fails because of, the send.
func (s *NotifierService) LeadCreated(lead Lead) {
	if !s.Enabled() {
		return
	}

	go s.send(lead)
}

func (s *NotifierService) send(lead Lead) {
	log := s.log.Function("send")

	message := gomail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", s.to)
	message.SetHeader("Subject", fmt.Sprintf("New Lead: %s (%s)", lead.Name, lead.InsuranceType))
	message.SetBody("text/plain", leadBody(lead))

	if err := s.sender.DialAndSend(message); err != nil {
		log.Er("failed to send lead notification", err, "leadID", lead.ID)
		return
	}

	log.Info("Sent lead notification", "leadID", lead.ID, "to", s.to)
}

func leadBody(lead Lead) string {
	return fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nType: %s\nMessage: %s\nSource: %s\nTime: %s",
		lead.Name, lead.Email, lead.Phone, lead.InsuranceType, lead.Message, lead.Source, lead.CreatedAt,
	)
}
