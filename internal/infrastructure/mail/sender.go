package mail

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"bpr-presale.backend/internal/domain/entities"
	domainerrors "bpr-presale.backend/internal/domain/errors"
)

const (
	firstContactTemplate = "first-contact"
	reminderTemplate     = "reminder"

	firstContactSubject = "Welcome to BPR Token Pre-Sale!"
	reminderSubject     = "Don't Miss Out - BPR Token Pre-Sale Reminder"

	// Long human-readable date for the first-contact template.
	registrationDateLayout = "January 2, 2006"
)

// Seam for tests; production always dials the configured SMTP host.
var dialAndSend = func(d *gomail.Dialer, m ...*gomail.Message) error {
	return d.DialAndSend(m...)
}

// Sender sends notification emails over SMTP. It never touches the
// lead store; recording notification state is the caller's job.
type Sender struct {
	dialer      *gomail.Dialer
	renderer    *TemplateRenderer
	fromName    string
	fromAddress string
}

// NewSender creates a new SMTP sender
func NewSender(host string, port int, user, password string, renderer *TemplateRenderer, fromName, fromAddress string) *Sender {
	if fromAddress == "" {
		fromAddress = user
	}
	return &Sender{
		dialer:      gomail.NewDialer(host, port, user, password),
		renderer:    renderer,
		fromName:    fromName,
		fromAddress: fromAddress,
	}
}

// SendFirstContact sends the initial notification to a single lead
func (s *Sender) SendFirstContact(ctx context.Context, lead *entities.Registration) (*entities.SendResult, error) {
	fields := map[string]string{
		"fullName":         lead.FullName,
		"email":            lead.Email,
		"walletAddress":    lead.WalletAddress,
		"registrationDate": lead.RegisteredAt.Format(registrationDateLayout),
	}
	return s.send(ctx, lead.Email, firstContactTemplate, firstContactSubject, fields)
}

// SendReminder sends the follow-up notification to a single lead
func (s *Sender) SendReminder(ctx context.Context, lead *entities.Registration) (*entities.SendResult, error) {
	fields := map[string]string{
		"fullName":      lead.FullName,
		"email":         lead.Email,
		"walletAddress": lead.WalletAddress,
	}
	return s.send(ctx, lead.Email, reminderTemplate, reminderSubject, fields)
}

func (s *Sender) send(ctx context.Context, to, templateName, subject string, fields map[string]string) (*entities.SendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := s.renderer.Render(templateName, fields)
	if err != nil {
		return nil, err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), s.dialer.Host)

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromAddress, s.fromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", body)

	if err := dialAndSend(s.dialer, m); err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrDeliveryFailed, err)
	}

	return &entities.SendResult{
		Success:   true,
		MessageID: messageID,
		Recipient: to,
	}, nil
}
