package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"bpr-presale.backend/internal/domain/entities"
	domainerrors "bpr-presale.backend/internal/domain/errors"
)

type registrationRepoStub struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entities.Registration
}

func newRegistrationRepoStub() *registrationRepoStub {
	return &registrationRepoStub{items: map[uuid.UUID]*entities.Registration{}}
}

func (s *registrationRepoStub) Create(_ context.Context, reg *entities.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Email == reg.Email {
			return domainerrors.ErrEmailAlreadyRegistered
		}
	}
	clone := *reg
	s.items[reg.ID] = &clone
	return nil
}

func (s *registrationRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (s *registrationRepoStub) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entities.Registration, 0, len(ids))
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *registrationRepoStub) GetByEmail(_ context.Context, email string) (*entities.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, item := range s.items {
		if item.Email == email {
			clone := *item
			return &clone, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *registrationRepoStub) Update(_ context.Context, reg *entities.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[reg.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	clone := *reg
	s.items[reg.ID] = &clone
	return nil
}

func (s *registrationRepoStub) List(_ context.Context) ([]*entities.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entities.Registration, 0, len(s.items))
	for _, item := range s.items {
		clone := *item
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegisteredAt.After(out[j].RegisteredAt)
	})
	return out, nil
}

// mailerStub delivers instantly; emails listed in failFor report a
// delivery failure instead.
type mailerStub struct {
	failFor map[string]bool
	sent    []string
}

func (m *mailerStub) SendFirstContact(_ context.Context, lead *entities.Registration) (*entities.SendResult, error) {
	return m.deliver(lead)
}

func (m *mailerStub) SendReminder(_ context.Context, lead *entities.Registration) (*entities.SendResult, error) {
	return m.deliver(lead)
}

func (m *mailerStub) deliver(lead *entities.Registration) (*entities.SendResult, error) {
	if m.failFor[lead.Email] {
		return nil, fmt.Errorf("%w: connection refused", domainerrors.ErrDeliveryFailed)
	}
	m.sent = append(m.sent, lead.Email)
	return &entities.SendResult{
		Success:   true,
		MessageID: "<" + uuid.New().String() + "@smtp.test>",
		Recipient: lead.Email,
	}, nil
}
