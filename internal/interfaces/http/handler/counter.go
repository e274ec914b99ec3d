package handler

import (
	"github.com/gin-gonic/gin"
	corrapp "github.com/magangbpstarakan-sudo/AYS-Persuratan/internal/application/correspondence"
)

// CounterHandler exposes the numbering counters
type CounterHandler struct {
	BaseHandler
	numberingService *corrapp.NumberingService
}

// NewCounterHandler creates a new CounterHandler
func NewCounterHandler(numberingService *corrapp.NumberingService) *CounterHandler {
	return &CounterHandler{numberingService: numberingService}
}

// List returns every counter and the next serial.
// GET /counters
func (h *CounterHandler) List(c *gin.Context) {
	snapshot, err := h.numberingService.CounterSnapshot(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// Override sets one counter.
// PUT /counters/:key
func (h *CounterHandler) Override(c *gin.Context) {
	var req corrapp.OverrideCounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.numberingService.OverrideCounter(c.Request.Context(), c.Param("key"), *req.Value)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
