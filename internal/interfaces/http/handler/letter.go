package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	corrapp "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
)

// LetterHandler handles numbering and archive endpoints
type LetterHandler struct {
	BaseHandler
	numberingService *corrapp.NumberingService
	archiveService   *corrapp.ArchiveService
}

// NewLetterHandler creates a new LetterHandler
func NewLetterHandler(numberingService *corrapp.NumberingService, archiveService *corrapp.ArchiveService) *LetterHandler {
	return &LetterHandler{
		numberingService: numberingService,
		archiveService:   archiveService,
	}
}

// Issue allocates a number for a full letter and archives it.
// POST /letters
func (h *LetterHandler) Issue(c *gin.Context) {
	var req corrapp.IssueLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	letter, err := h.numberingService.IssueNumber(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, letter)
}

// Reserve allocates a number without a letter body.
// POST /letters/reserve
func (h *LetterHandler) Reserve(c *gin.Context) {
	var req corrapp.ReserveNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	letter, err := h.numberingService.ReserveNumber(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, letter)
}

// List searches the archive.
// GET /letters
func (h *LetterHandler) List(c *gin.Context) {
	var req corrapp.ListLettersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	letters, total, err := h.archiveService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, letters, total, req.Page, req.PageSize)
}

// Export returns the whole archive.
// GET /letters/export
func (h *LetterHandler) Export(c *gin.Context) {
	letters, err := h.archiveService.Export(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, letters)
}

// Stats returns dashboard statistics.
// GET /letters/stats
func (h *LetterHandler) Stats(c *gin.Context) {
	stats, err := h.archiveService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Lookup finds a letter by its document number.
// GET /letters/lookup?number=
func (h *LetterHandler) Lookup(c *gin.Context) {
	number := strings.TrimSpace(c.Query("number"))
	if number == "" {
		h.BadRequest(c, "number query parameter is required")
		return
	}

	letter, err := h.archiveService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, letter)
}

// GetByID retrieves a letter.
// GET /letters/:id
func (h *LetterHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	letter, err := h.archiveService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, letter)
}

// Update edits an archived letter in place. The number never changes.
// PUT /letters/:id
func (h *LetterHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req corrapp.UpdateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	letter, err := h.archiveService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, letter)
}
