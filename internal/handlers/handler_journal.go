package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
	"github.com/SscSPs/general_ledger/internal/middleware"
)

// journalHandler handles HTTP requests related to posted journal entries.
type journalHandler struct {
	ledger      portssvc.LedgerSvcFacade
	adjustments portssvc.AdjustmentSvc
}

func newJournalHandler(ledger portssvc.LedgerSvcFacade, adjustments portssvc.AdjustmentSvc) *journalHandler {
	return &journalHandler{ledger: ledger, adjustments: adjustments}
}

// registerJournalRoutes registers journal specific routes
func registerJournalRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, adjustments portssvc.AdjustmentSvc) {
	h := newJournalHandler(ledger, adjustments)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.postJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalNumber", h.getJournal)
		journals.POST("/:journalNumber/reverse", h.reverseJournal)
	}
}

func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	posted, err := h.ledger.PostEntry(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("journal_number", posted.JournalNumber))
	c.JSON(http.StatusCreated, dto.PostJournalResponse{
		JournalNumber: posted.JournalNumber,
		Journal:       dto.ToJournalResponse(posted),
	})
}

func (h *journalHandler) listJournals(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	entries, next, err := h.ledger.ListJournals(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ListJournalsResponse{
		Journals:  dto.ToJournalResponses(entries),
		NextToken: next,
	})
}

func (h *journalHandler) getJournal(c *gin.Context) {
	entry, err := h.ledger.GetJournal(c.Request.Context(), c.Param("journalNumber"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalNumber := c.Param("journalNumber")

	var req dto.ReverseJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	date := req.Date.Time
	if date.IsZero() {
		date = time.Now().UTC()
	}

	reversal, err := h.adjustments.ReverseJournal(c.Request.Context(), journalNumber, date, req.Reason)
	if err != nil {
		respondError(c, err, "Failed to reverse journal")
		return
	}

	logger.Info("Journal reversed",
		slog.String("journal_number", journalNumber),
		slog.String("reversal_number", reversal.JournalNumber))
	c.JSON(http.StatusCreated, dto.PostJournalResponse{
		JournalNumber: reversal.JournalNumber,
		Journal:       dto.ToJournalResponse(reversal),
	})
}
