package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bpr-presale.backend/internal/domain/entities"
	domainerrors "bpr-presale.backend/internal/domain/errors"
	"bpr-presale.backend/internal/interfaces/http/response"
	"bpr-presale.backend/internal/usecases"
)

type AdminHandler struct {
	auth *usecases.AuthUsecase
}

func NewAdminHandler(auth *usecases.AuthUsecase) *AdminHandler {
	return &AdminHandler{auth: auth}
}

// Verify checks the operator shared secret.
// POST /api/admin/verify
func (h *AdminHandler) Verify(c *gin.Context) {
	var input entities.VerifyAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request body"), "")
		return
	}

	if err := h.auth.VerifyAdminKey(input.PrivateKey); err != nil {
		response.Error(c, err, "Verification failed")
		return
	}

	response.Success(c, http.StatusOK, "Access granted", nil)
}
