package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// EmailType represents the kind of notification email sent to a lead
type EmailType string

const (
	EmailTypeNone         EmailType = "none"
	EmailTypeFirstContact EmailType = "first-contact"
	EmailTypeReminder     EmailType = "reminder"
)

// IsValid reports whether the email type is one an operator may send
func (t EmailType) IsValid() bool {
	return t == EmailTypeFirstContact || t == EmailTypeReminder
}

// NotificationState tracks which emails a lead has received
type NotificationState struct {
	FirstContactSent bool      `json:"firstContactSent"`
	FirstContactDate null.Time `json:"firstContactDate,omitempty"`
	ReminderSent     bool      `json:"reminderSent"`
	ReminderDate     null.Time `json:"reminderDate,omitempty"`
	LastEmailType    EmailType `json:"lastEmailType"`
}

// Registration represents a pre-sale lead entity
type Registration struct {
	ID               uuid.UUID         `json:"id"`
	FullName         string            `json:"fullName"`
	Email            string            `json:"email"`
	WalletAddress    string            `json:"walletAddress"`
	PhoneNumber      string            `json:"phoneNumber,omitempty"`
	Country          string            `json:"country,omitempty"`
	InvestmentAmount string            `json:"investmentAmount,omitempty"`
	ReferralCode     string            `json:"referralCode,omitempty"`
	AcceptedTerms    bool              `json:"acceptedTerms"`
	ReceiveUpdates   bool              `json:"receiveUpdates"`
	RegisteredAt     time.Time         `json:"registeredAt"`
	EmailStatus      NotificationState `json:"emailStatus"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// RegisterInput represents input for creating a registration
type RegisterInput struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	WalletAddress    string `json:"walletAddress"`
	PhoneNumber      string `json:"phoneNumber"`
	Country          string `json:"country"`
	InvestmentAmount string `json:"investmentAmount"`
	ReferralCode     string `json:"referralCode"`
	AcceptedTerms    bool   `json:"acceptedTerms"`
	ReceiveUpdates   bool   `json:"receiveUpdates"`
}

// RegisterResponse is the public summary returned after a successful registration
type RegisterResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// SendResult is the outcome of a single email dispatch
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Recipient string `json:"recipient"`
}

// BatchSendSuccess records one delivered email within a batch
type BatchSendSuccess struct {
	Email     string `json:"email"`
	MessageID string `json:"messageId"`
}

// BatchSendFailure records one failed email within a batch
type BatchSendFailure struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// BatchSendResult is the summary of a batch dispatch. Every lead is
// attempted; a failure for one recipient never aborts the rest.
type BatchSendResult struct {
	Successful []BatchSendSuccess `json:"successful"`
	Failed     []BatchSendFailure `json:"failed"`
}

// VerifyAdminInput represents input for admin secret verification
type VerifyAdminInput struct {
	PrivateKey string `json:"privateKey"`
}

// SendEmailInput represents input for a single operator-triggered send
type SendEmailInput struct {
	UserID    string    `json:"userId"`
	EmailType EmailType `json:"emailType"`
}

// SendBatchInput represents input for a batch operator-triggered send
type SendBatchInput struct {
	UserIDs   []string  `json:"userIds"`
	EmailType EmailType `json:"emailType"`
}
