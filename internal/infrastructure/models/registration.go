package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration is the persistence model for a pre-sale lead. The
// unique index on email is the duplicate guard; it must hold even
// when concurrent inserts race past the application-level pre-check.
type Registration struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName         string    `gorm:"type:varchar(200);not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	WalletAddress    string    `gorm:"type:varchar(42);not null"`
	PhoneNumber      string    `gorm:"type:varchar(50)"`
	Country          string    `gorm:"type:varchar(100)"`
	InvestmentAmount string    `gorm:"type:varchar(100)"`
	ReferralCode     string    `gorm:"type:varchar(100)"`
	AcceptedTerms    bool      `gorm:"not null;default:false"`
	ReceiveUpdates   bool      `gorm:"not null;default:false"`
	RegisteredAt     time.Time `gorm:"not null"`

	FirstContactSent bool   `gorm:"not null;default:false"`
	FirstContactDate *time.Time
	ReminderSent     bool `gorm:"not null;default:false"`
	ReminderDate     *time.Time
	LastEmailType    string `gorm:"type:varchar(20);not null;default:'none'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
