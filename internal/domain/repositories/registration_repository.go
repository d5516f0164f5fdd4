package repositories

import (
	"context"

	"github.com/google/uuid"
	"bpr-presale.backend/internal/domain/entities"
)

// RegistrationRepository defines lead record data operations.
// Email uniqueness is enforced by the store itself, so a racing
// duplicate Create fails with ErrEmailAlreadyRegistered even when an
// application-level existence check passed moments earlier.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *entities.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Registration, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Registration, error)
	GetByEmail(ctx context.Context, email string) (*entities.Registration, error)
	Update(ctx context.Context, reg *entities.Registration) error
	List(ctx context.Context) ([]*entities.Registration, error)
}
