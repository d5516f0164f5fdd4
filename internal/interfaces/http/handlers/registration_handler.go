package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bpr-presale.backend/internal/domain/entities"
	domainerrors "bpr-presale.backend/internal/domain/errors"
	"bpr-presale.backend/internal/interfaces/http/middleware"
	"bpr-presale.backend/internal/interfaces/http/response"
	"bpr-presale.backend/internal/usecases"
)

type RegistrationHandler struct {
	usecase *usecases.RegistrationUsecase
}

func NewRegistrationHandler(usecase *usecases.RegistrationUsecase) *RegistrationHandler {
	return &RegistrationHandler{usecase: usecase}
}

// Register creates a new pre-sale lead.
// POST /api/register
func (h *RegistrationHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RecordRegistration("invalid")
		response.Error(c, domainerrors.BadRequest("Invalid request body"), "")
		return
	}

	reg, err := h.usecase.Register(c.Request.Context(), &input)
	if err != nil {
		middleware.RecordRegistration(registrationOutcome(err))
		response.Error(c, err, "Registration failed. Please try again later.")
		return
	}

	middleware.RecordRegistration("success")
	response.Success(c, http.StatusCreated, "Registration successful! We will contact you soon.", entities.RegisterResponse{
		ID:           reg.ID,
		Email:        reg.Email,
		RegisteredAt: reg.RegisteredAt,
	})
}

// List returns all registrations, newest first.
// GET /api/registrations
func (h *RegistrationHandler) List(c *gin.Context) {
	regs, err := h.usecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err, "Failed to fetch registrations")
		return
	}
	response.SuccessList(c, len(regs), regs)
}

// CheckEmail reports whether an email is already registered.
// GET /api/check-email/:email
func (h *RegistrationHandler) CheckEmail(c *gin.Context) {
	exists, err := h.usecase.CheckEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err, "Failed to check email")
		return
	}
	response.Exists(c, exists)
}

func registrationOutcome(err error) string {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Status {
		case http.StatusConflict:
			return "duplicate"
		case http.StatusBadRequest:
			return "invalid"
		}
	}
	return "error"
}
