package usecases

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"bpr-presale.backend/internal/domain/entities"
	domainerrors "bpr-presale.backend/internal/domain/errors"
	"bpr-presale.backend/internal/domain/repositories"
)

// Basic local@domain.tld shape; full RFC parsing is not the goal here.
var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// RegistrationUsecase handles lead intake business logic
type RegistrationUsecase struct {
	repo repositories.RegistrationRepository
}

// NewRegistrationUsecase creates a new registration usecase
func NewRegistrationUsecase(repo repositories.RegistrationRepository) *RegistrationUsecase {
	return &RegistrationUsecase{repo: repo}
}

// Register validates and persists a new lead. Validation short-circuits
// on the first failure; no partial persistence happens on any failure.
// The application-level duplicate pre-check is a fast path only: the
// store's uniqueness constraint is what actually closes the race.
func (u *RegistrationUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.Registration, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)

	if _, err := u.repo.GetByEmail(ctx, email); err == nil {
		return nil, domainerrors.Conflict("This email is already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	reg := &entities.Registration{
		ID:               uuid.New(),
		FullName:         strings.TrimSpace(input.FullName),
		Email:            email,
		WalletAddress:    strings.TrimSpace(input.WalletAddress),
		PhoneNumber:      strings.TrimSpace(input.PhoneNumber),
		Country:          strings.TrimSpace(input.Country),
		InvestmentAmount: strings.TrimSpace(input.InvestmentAmount),
		ReferralCode:     strings.TrimSpace(input.ReferralCode),
		AcceptedTerms:    input.AcceptedTerms,
		ReceiveUpdates:   input.ReceiveUpdates,
		RegisteredAt:     now,
		EmailStatus: entities.NotificationState{
			LastEmailType: entities.EmailTypeNone,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.repo.Create(ctx, reg); err != nil {
		if errors.Is(err, domainerrors.ErrEmailAlreadyRegistered) {
			return nil, domainerrors.Conflict("This email is already registered")
		}
		return nil, err
	}

	return reg, nil
}

// CheckEmail reports whether a lead with the given email exists
func (u *RegistrationUsecase) CheckEmail(ctx context.Context, email string) (bool, error) {
	_, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns all registrations, newest first
func (u *RegistrationUsecase) List(ctx context.Context) ([]*entities.Registration, error) {
	return u.repo.List(ctx)
}

func validateRegisterInput(input *entities.RegisterInput) error {
	if strings.TrimSpace(input.FullName) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.WalletAddress) == "" {
		return domainerrors.BadRequest("Please provide all required fields: fullName, email, and walletAddress")
	}

	if !input.AcceptedTerms {
		return domainerrors.BadRequest("You must accept the terms and conditions")
	}

	if !emailPattern.MatchString(normalizeEmail(input.Email)) {
		return domainerrors.BadRequest("Please provide a valid email address")
	}

	if !isValidWalletAddress(strings.TrimSpace(input.WalletAddress)) {
		return domainerrors.BadRequest("Please provide a valid wallet address (0x followed by 40 hex characters)")
	}

	return nil
}

// isValidWalletAddress requires the 0x prefix followed by exactly 40
// hex characters. common.IsHexAddress also accepts unprefixed input,
// so the prefix is checked explicitly.
func isValidWalletAddress(addr string) bool {
	return strings.HasPrefix(addr, "0x") && len(addr) == 42 && common.IsHexAddress(addr)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
