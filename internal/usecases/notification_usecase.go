package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"bpr-presale.backend/internal/domain/entities"
	domainerrors "bpr-presale.backend/internal/domain/errors"
	"bpr-presale.backend/internal/domain/repositories"
	"bpr-presale.backend/pkg/logger"
)

// Mailer sends a single notification email to one lead. It receives a
// read-only copy of the lead and never mutates storage.
type Mailer interface {
	SendFirstContact(ctx context.Context, lead *entities.Registration) (*entities.SendResult, error)
	SendReminder(ctx context.Context, lead *entities.Registration) (*entities.SendResult, error)
}

// NotificationUsecase orchestrates operator-triggered email dispatch
// and records notification state for confirmed sends.
type NotificationUsecase struct {
	repo       repositories.RegistrationRepository
	mailer     Mailer
	batchDelay time.Duration
}

// NewNotificationUsecase creates a new notification usecase.
// batchDelay is the wait between successive sends in a batch, a
// throttle for third-party provider rate limits.
func NewNotificationUsecase(repo repositories.RegistrationRepository, mailer Mailer, batchDelay time.Duration) *NotificationUsecase {
	return &NotificationUsecase{
		repo:       repo,
		mailer:     mailer,
		batchDelay: batchDelay,
	}
}

// SendToLead sends one email of the given type to a single lead and,
// on confirmed delivery, persists the notification-state update.
func (u *NotificationUsecase) SendToLead(ctx context.Context, id uuid.UUID, emailType entities.EmailType) (*entities.SendResult, error) {
	if !emailType.IsValid() {
		return nil, domainerrors.BadRequest("Invalid emailType. Must be 'first-contact' or 'reminder'")
	}

	lead, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}

	result, err := u.send(ctx, lead, emailType)
	if err != nil {
		return nil, err
	}

	markSent(lead, emailType)
	if err := u.repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	return result, nil
}

// SendBatch sends one email type to every matched lead sequentially,
// waiting batchDelay between successive sends. A failed send is
// recorded and never aborts the rest of the batch; notification state
// is persisted only for confirmed successes.
func (u *NotificationUsecase) SendBatch(ctx context.Context, ids []uuid.UUID, emailType entities.EmailType) (*entities.BatchSendResult, error) {
	if !emailType.IsValid() {
		return nil, domainerrors.BadRequest("Invalid emailType. Must be 'first-contact' or 'reminder'")
	}

	leads, err := u.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(leads) == 0 {
		return nil, domainerrors.NotFound("No users found")
	}

	results := &entities.BatchSendResult{
		Successful: []entities.BatchSendSuccess{},
		Failed:     []entities.BatchSendFailure{},
	}

	for i, lead := range leads {
		if i > 0 {
			if err := u.waitDelay(ctx); err != nil {
				return nil, err
			}
		}

		result, err := u.send(ctx, lead, emailType)
		if err != nil {
			results.Failed = append(results.Failed, entities.BatchSendFailure{
				Email: lead.Email,
				Error: err.Error(),
			})
			continue
		}

		results.Successful = append(results.Successful, entities.BatchSendSuccess{
			Email:     lead.Email,
			MessageID: result.MessageID,
		})

		markSent(lead, emailType)
		if err := u.repo.Update(ctx, lead); err != nil {
			// The email went out; losing the state update is worth a
			// warning but not a failed batch entry.
			logger.Warn(ctx, "Failed to persist notification state",
				zap.String("email", lead.Email), zap.Error(err))
		}
	}

	return results, nil
}

func (u *NotificationUsecase) send(ctx context.Context, lead *entities.Registration, emailType entities.EmailType) (*entities.SendResult, error) {
	if emailType == entities.EmailTypeFirstContact {
		return u.mailer.SendFirstContact(ctx, lead)
	}
	return u.mailer.SendReminder(ctx, lead)
}

func (u *NotificationUsecase) waitDelay(ctx context.Context) error {
	if u.batchDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(u.batchDelay):
		return nil
	}
}

func markSent(lead *entities.Registration, emailType entities.EmailType) {
	now := null.TimeFrom(time.Now())
	if emailType == entities.EmailTypeFirstContact {
		lead.EmailStatus.FirstContactSent = true
		lead.EmailStatus.FirstContactDate = now
	} else {
		lead.EmailStatus.ReminderSent = true
		lead.EmailStatus.ReminderDate = now
	}
	lead.EmailStatus.LastEmailType = emailType
}
