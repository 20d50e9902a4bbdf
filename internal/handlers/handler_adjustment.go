package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
)

type adjustmentHandler struct {
	adjustments portssvc.AdjustmentSvc
}

func registerAdjustmentRoutes(rg *gin.RouterGroup, adjustments portssvc.AdjustmentSvc) {
	h := &adjustmentHandler{adjustments: adjustments}
	rg.POST("/adjustments", h.createAdjustingEntry)
	rg.POST("/closings", h.createClosingEntries)
}

func (h *adjustmentHandler) createAdjustingEntry(c *gin.Context) {
	var req dto.CreateAdjustingEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.adjustments.CreateAdjustingEntry(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create adjusting entry")
		return
	}
	c.JSON(http.StatusCreated, dto.PostJournalResponse{
		JournalNumber: entry.JournalNumber,
		Journal:       dto.ToJournalResponse(entry),
	})
}

// createClosingEntries reports the entries posted before a failure alongside the error.
func (h *adjustmentHandler) createClosingEntries(c *gin.Context) {
	var req dto.CreateClosingEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	posted, err := h.adjustments.CreateClosingEntries(c.Request.Context(), req.Date.Time, req.RetainedEarningsAccount)
	if err != nil {
		if len(posted) > 0 {
			c.JSON(statusFor(err), gin.H{
				"error":    err.Error(),
				"journals": dto.ToJournalResponses(posted),
			})
			return
		}
		respondError(c, err, "Failed to create closing entries")
		return
	}
	c.JSON(http.StatusCreated, dto.ClosingEntriesResponse{Journals: dto.ToJournalResponses(posted)})
}
