package usecases

import (
	"crypto/subtle"
	"net/http"

	domainerrors "bpr-presale.backend/internal/domain/errors"
)

// AuthUsecase verifies the operator shared secret
type AuthUsecase struct {
	privateKey string
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(privateKey string) *AuthUsecase {
	return &AuthUsecase{privateKey: privateKey}
}

// VerifyAdminKey compares a candidate against the configured secret.
// A missing server-side secret is a hard configuration error, never a
// silent authorization.
func (u *AuthUsecase) VerifyAdminKey(candidate string) error {
	if u.privateKey == "" {
		return domainerrors.NewAppError(http.StatusInternalServerError,
			"Private key not configured on server", domainerrors.ErrNotConfigured)
	}

	if subtle.ConstantTimeCompare([]byte(candidate), []byte(u.privateKey)) != 1 {
		return domainerrors.Unauthorized("Invalid private key")
	}
	return nil
}
