package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	corrapp "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
)

// VerifyHandler serves the public verification page data. It always answers
// 200; a missing or unknown number yields found=false.
type VerifyHandler struct {
	BaseHandler
	verificationService *corrapp.VerificationService
}

// NewVerifyHandler creates a new VerifyHandler
func NewVerifyHandler(verificationService *corrapp.VerificationService) *VerifyHandler {
	return &VerifyHandler{verificationService: verificationService}
}

// Verify handles GET /public/verify?number= and GET /public/verify/*number.
// Numbers contain slashes, so the path form takes the raw wildcard.
func (h *VerifyHandler) Verify(c *gin.Context) {
	number := c.Query("number")
	if number == "" {
		number = strings.TrimPrefix(c.Param("number"), "/")
	}
	h.Success(c, h.verificationService.Verify(c.Request.Context(), number))
}
