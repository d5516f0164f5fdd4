package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"bpr-presale.backend/internal/domain/entities"
	domainerrors "bpr-presale.backend/internal/domain/errors"
	"bpr-presale.backend/internal/infrastructure/models"
)

// RegistrationRepository implements lead record data operations
type RegistrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create persists a new registration. The unique index on email is
// the authoritative duplicate guard; a constraint violation maps to
// ErrEmailAlreadyRegistered regardless of any prior existence check.
func (r *RegistrationRepository) Create(ctx context.Context, reg *entities.Registration) error {
	m := toModel(reg)

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrEmailAlreadyRegistered
		}
		return err
	}
	return nil
}

// GetByID gets a registration by ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Registration, error) {
	var m models.Registration
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEntity(&m), nil
}

// GetByIDs gets the subset of registrations matching the given IDs.
// Unmatched IDs are silently omitted from the result.
func (r *RegistrationRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Registration, error) {
	var regModels []models.Registration
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&regModels).Error; err != nil {
		return nil, err
	}

	regs := make([]*entities.Registration, 0, len(regModels))
	for _, m := range regModels {
		model := m
		regs = append(regs, toEntity(&model))
	}
	return regs, nil
}

// GetByEmail gets a registration by email, case-insensitively.
// Emails are stored lowercased, so the lookup lowercases its argument.
func (r *RegistrationRepository) GetByEmail(ctx context.Context, email string) (*entities.Registration, error) {
	var m models.Registration
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("email = ?", normalized).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEntity(&m), nil
}

// Update persists notification-state fields for an existing registration
func (r *RegistrationRepository) Update(ctx context.Context, reg *entities.Registration) error {
	updates := map[string]interface{}{
		"first_contact_sent": reg.EmailStatus.FirstContactSent,
		"reminder_sent":      reg.EmailStatus.ReminderSent,
		"last_email_type":    string(reg.EmailStatus.LastEmailType),
		"updated_at":         time.Now(),
	}
	if reg.EmailStatus.FirstContactDate.Valid {
		updates["first_contact_date"] = reg.EmailStatus.FirstContactDate.Time
	}
	if reg.EmailStatus.ReminderDate.Valid {
		updates["reminder_date"] = reg.EmailStatus.ReminderDate.Time
	}

	result := r.db.WithContext(ctx).Model(&models.Registration{}).Where("id = ?", reg.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists all registrations, newest first
func (r *RegistrationRepository) List(ctx context.Context) ([]*entities.Registration, error) {
	var regModels []models.Registration
	if err := r.db.WithContext(ctx).Order("registered_at DESC").Find(&regModels).Error; err != nil {
		return nil, err
	}

	regs := make([]*entities.Registration, 0, len(regModels))
	for _, m := range regModels {
		model := m
		regs = append(regs, toEntity(&model))
	}
	return regs, nil
}

func toModel(reg *entities.Registration) *models.Registration {
	return &models.Registration{
		ID:               reg.ID,
		FullName:         reg.FullName,
		Email:            reg.Email,
		WalletAddress:    reg.WalletAddress,
		PhoneNumber:      reg.PhoneNumber,
		Country:          reg.Country,
		InvestmentAmount: reg.InvestmentAmount,
		ReferralCode:     reg.ReferralCode,
		AcceptedTerms:    reg.AcceptedTerms,
		ReceiveUpdates:   reg.ReceiveUpdates,
		RegisteredAt:     reg.RegisteredAt,
		FirstContactSent: reg.EmailStatus.FirstContactSent,
		FirstContactDate: reg.EmailStatus.FirstContactDate.Ptr(),
		ReminderSent:     reg.EmailStatus.ReminderSent,
		ReminderDate:     reg.EmailStatus.ReminderDate.Ptr(),
		LastEmailType:    string(reg.EmailStatus.LastEmailType),
		CreatedAt:        reg.CreatedAt,
		UpdatedAt:        reg.UpdatedAt,
	}
}

func toEntity(m *models.Registration) *entities.Registration {
	return &entities.Registration{
		ID:               m.ID,
		FullName:         m.FullName,
		Email:            m.Email,
		WalletAddress:    m.WalletAddress,
		PhoneNumber:      m.PhoneNumber,
		Country:          m.Country,
		InvestmentAmount: m.InvestmentAmount,
		ReferralCode:     m.ReferralCode,
		AcceptedTerms:    m.AcceptedTerms,
		ReceiveUpdates:   m.ReceiveUpdates,
		RegisteredAt:     m.RegisteredAt,
		EmailStatus: entities.NotificationState{
			FirstContactSent: m.FirstContactSent,
			FirstContactDate: null.TimeFromPtr(m.FirstContactDate),
			ReminderSent:     m.ReminderSent,
			ReminderDate:     null.TimeFromPtr(m.ReminderDate),
			LastEmailType:    entities.EmailType(m.LastEmailType),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
