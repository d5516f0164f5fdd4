package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bpr-presale.backend/internal/domain/entities"
	domainerrors "bpr-presale.backend/internal/domain/errors"
	"bpr-presale.backend/internal/interfaces/http/middleware"
	"bpr-presale.backend/internal/interfaces/http/response"
	"bpr-presale.backend/internal/usecases"
)

type EmailHandler struct {
	notifications *usecases.NotificationUsecase
}

func NewEmailHandler(notifications *usecases.NotificationUsecase) *EmailHandler {
	return &EmailHandler{notifications: notifications}
}

// SendEmail sends one notification email to a single lead.
// POST /api/send-email
func (h *EmailHandler) SendEmail(c *gin.Context) {
	var input entities.SendEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"), "")
		return
	}

	id, err := uuid.Parse(input.UserID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid userId"), "")
		return
	}

	result, err := h.notifications.SendToLead(c.Request.Context(), id, input.EmailType)
	if err != nil {
		middleware.RecordEmailSend(string(input.EmailType), "failure")
		response.Error(c, err, "Failed to send email")
		return
	}

	middleware.RecordEmailSend(string(input.EmailType), "success")
	response.Success(c, http.StatusOK, "Email sent successfully", result)
}

// SendBatchEmails sends one email type to a set of leads sequentially.
// POST /api/send-batch-emails
func (h *EmailHandler) SendBatchEmails(c *gin.Context) {
	var input entities.SendBatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"), "")
		return
	}

	if len(input.UserIDs) == 0 {
		response.Error(c, domainerrors.BadRequest("Please provide a non-empty userIds array"), "")
		return
	}

	ids := make([]uuid.UUID, 0, len(input.UserIDs))
	for _, raw := range input.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest(fmt.Sprintf("Invalid userId: %s", raw)), "")
			return
		}
		ids = append(ids, id)
	}

	result, err := h.notifications.SendBatch(c.Request.Context(), ids, input.EmailType)
	if err != nil {
		response.Error(c, err, "Failed to send batch emails")
		return
	}

	for range result.Successful {
		middleware.RecordEmailSend(string(input.EmailType), "success")
	}
	for range result.Failed {
		middleware.RecordEmailSend(string(input.EmailType), "failure")
	}

	response.Success(c, http.StatusOK,
		fmt.Sprintf("Batch complete: %d sent, %d failed", len(result.Successful), len(result.Failed)),
		result)
}
