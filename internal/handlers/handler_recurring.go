package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
	"github.com/SscSPs/general_ledger/internal/middleware"
)

type recurringHandler struct {
	recurring portssvc.RecurringSvc
}

func registerRecurringRoutes(rg *gin.RouterGroup, recurring portssvc.RecurringSvc) {
	h := &recurringHandler{recurring: recurring}

	group := rg.Group("/recurring")
	{
		group.POST("", h.createRecurringEntry)
		group.GET("", h.listRecurringTemplates)
		group.GET("/:templateID", h.getRecurringTemplate)
		group.POST("/process", h.processRecurringEntries)
	}
}

func (h *recurringHandler) createRecurringEntry(c *gin.Context) {
	var req dto.CreateRecurringEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.recurring.CreateRecurringEntry(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to create recurring entry")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateRecurringEntryResponse{TemplateID: id})
}

func (h *recurringHandler) listRecurringTemplates(c *gin.Context) {
	templates, err := h.recurring.ListRecurringTemplates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list recurring templates")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringTemplateResponses(templates))
}

func (h *recurringHandler) getRecurringTemplate(c *gin.Context) {
	tmpl, err := h.recurring.GetRecurringTemplate(c.Request.Context(), c.Param("templateID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve recurring template")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecurringTemplateResponse(*tmpl))
}

// processRecurringEntries returns the entries generated before a failure with the error.
func (h *recurringHandler) processRecurringEntries(c *gin.Context) {
	var req dto.ProcessRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	generated, err := h.recurring.ProcessRecurringEntries(c.Request.Context(), req.From.Time, req.To.Time)
	resp := dto.ProcessRecurringResponse{
		Generated: len(generated),
		Journals:  dto.ToJournalResponses(generated),
	}
	if err != nil {
		if len(generated) == 0 {
			respondError(c, err, "Failed to process recurring entries")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Recurring run stopped early",
			slog.Int("generated", len(generated)), slog.String("error", err.Error()))
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "result": resp})
		return
	}
	c.JSON(http.StatusOK, resp)
}
