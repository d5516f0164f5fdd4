package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bpr-presale.backend/internal/domain/entities"
	"bpr-presale.backend/internal/usecases"
)

func newEmailRouter(repo *registrationRepoStub, mailer *mailerStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEmailHandler(usecases.NewNotificationUsecase(repo, mailer, 0))

	r := gin.New()
	r.POST("/api/send-email", h.SendEmail)
	r.POST("/api/send-batch-emails", h.SendBatchEmails)
	return r
}

func seedLead(t *testing.T, repo *registrationRepoStub, email string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := repo.Create(context.Background(), &entities.Registration{
		ID:            id,
		FullName:      "Lead " + email,
		Email:         email,
		WalletAddress: "0x52908400098527886E0F7030069857D2E4169EE7",
		AcceptedTerms: true,
		RegisteredAt:  time.Now(),
		EmailStatus:   entities.NotificationState{LastEmailType: entities.EmailTypeNone},
	})
	if err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	return id
}

func TestEmailHandler_SendEmail(t *testing.T) {
	repo := newRegistrationRepoStub()
	mailer := &mailerStub{}
	r := newEmailRouter(repo, mailer)
	id := seedLead(t, repo, "ana@example.com")

	rec := postJSON(r, "/api/send-email", map[string]any{
		"userId":    id.String(),
		"emailType": "first-contact",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Success   bool   `json:"success"`
			MessageID string `json:"messageId"`
			Recipient string `json:"recipient"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !body.Success || body.Message != "Email sent successfully" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if body.Data.Recipient != "ana@example.com" || body.Data.MessageID == "" {
		t.Fatalf("unexpected send result: %s", rec.Body.String())
	}

	// Notification state was persisted for the confirmed send.
	lead, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get lead: %v", err)
	}
	if !lead.EmailStatus.FirstContactSent || lead.EmailStatus.LastEmailType != entities.EmailTypeFirstContact {
		t.Fatalf("notification state not updated: %+v", lead.EmailStatus)
	}
}

func TestEmailHandler_SendEmailValidation(t *testing.T) {
	repo := newRegistrationRepoStub()
	r := newEmailRouter(repo, &mailerStub{})
	id := seedLead(t, repo, "ana@example.com")

	cases := []struct {
		name    string
		payload map[string]any
		status  int
	}{
		{"bad uuid", map[string]any{"userId": "not-a-uuid", "emailType": "reminder"}, http.StatusBadRequest},
		{"bad email type", map[string]any{"userId": id.String(), "emailType": "newsletter"}, http.StatusBadRequest},
		{"unknown lead", map[string]any{"userId": uuid.New().String(), "emailType": "reminder"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(r, "/api/send-email", tc.payload)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestEmailHandler_SendEmailDeliveryFailure(t *testing.T) {
	repo := newRegistrationRepoStub()
	mailer := &mailerStub{failFor: map[string]bool{"ana@example.com": true}}
	r := newEmailRouter(repo, mailer)
	id := seedLead(t, repo, "ana@example.com")

	rec := postJSON(r, "/api/send-email", map[string]any{
		"userId":    id.String(),
		"emailType": "reminder",
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d body=%s", rec.Code, rec.Body.String())
	}

	// Failed sends never update notification state.
	lead, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get lead: %v", err)
	}
	if lead.EmailStatus.ReminderSent {
		t.Fatalf("reminder state updated on failed send: %+v", lead.EmailStatus)
	}
}

func TestEmailHandler_SendBatchEmails(t *testing.T) {
	repo := newRegistrationRepoStub()
	mailer := &mailerStub{failFor: map[string]bool{"bad@example.com": true}}
	r := newEmailRouter(repo, mailer)

	okID := seedLead(t, repo, "ok@example.com")
	badID := seedLead(t, repo, "bad@example.com")

	rec := postJSON(r, "/api/send-batch-emails", map[string]any{
		"userIds":   []string{okID.String(), badID.String()},
		"emailType": "first-contact",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Successful []struct {
				Email     string `json:"email"`
				MessageID string `json:"messageId"`
			} `json:"successful"`
			Failed []struct {
				Email string `json:"email"`
				Error string `json:"error"`
			} `json:"failed"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success=true: %s", rec.Body.String())
	}
	if len(body.Data.Successful) != 1 || body.Data.Successful[0].Email != "ok@example.com" {
		t.Fatalf("unexpected successful list: %s", rec.Body.String())
	}
	if len(body.Data.Failed) != 1 || body.Data.Failed[0].Email != "bad@example.com" || body.Data.Failed[0].Error == "" {
		t.Fatalf("unexpected failed list: %s", rec.Body.String())
	}
}

func TestEmailHandler_SendBatchEmailsValidation(t *testing.T) {
	repo := newRegistrationRepoStub()
	r := newEmailRouter(repo, &mailerStub{})
	id := seedLead(t, repo, "ana@example.com")

	cases := []struct {
		name    string
		payload map[string]any
		status  int
	}{
		{"empty ids", map[string]any{"userIds": []string{}, "emailType": "reminder"}, http.StatusBadRequest},
		{"bad uuid in list", map[string]any{"userIds": []string{id.String(), "nope"}, "emailType": "reminder"}, http.StatusBadRequest},
		{"bad email type", map[string]any{"userIds": []string{id.String()}, "emailType": "spam"}, http.StatusBadRequest},
		{"no matches", map[string]any{"userIds": []string{uuid.New().String()}, "emailType": "reminder"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(r, "/api/send-batch-emails", tc.payload)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d body=%s", tc.status, rec.Code, rec.Body.String())
			}
		})
	}
}
