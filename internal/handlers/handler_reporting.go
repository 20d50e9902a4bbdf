package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
)

// reportingHandler handles HTTP requests related to balances and reports
type reportingHandler struct {
	trialBalance portssvc.TrialBalanceSvc
	classifier   domain.AccountClassifier
}

// registerReportingRoutes registers routes related to balances and reports
func registerReportingRoutes(rg *gin.RouterGroup, trialBalance portssvc.TrialBalanceSvc, classifier domain.AccountClassifier) {
	h := &reportingHandler{trialBalance: trialBalance, classifier: classifier}

	rg.GET("/reports/trial-balance", h.getTrialBalance)
	rg.GET("/accounts/:accountCode/balance", h.getAccountBalance)
}

// dateQuery parses an optional YYYY-MM-DD query parameter, defaulting to def.
func dateQuery(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	d, err := dto.ParseDate(c.Query(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter: " + err.Error()})
		return time.Time{}, false
	}
	if d.IsZero() {
		return def, true
	}
	return d.Time, true
}

func today() time.Time {
	return dto.NewDate(time.Now().UTC()).Time
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	from, ok := dateQuery(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", today())
	if !ok {
		return
	}

	report, err := h.trialBalance.GenerateReport(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	accountCode := c.Param("accountCode")
	asOf, ok := dateQuery(c, "asOf", today())
	if !ok {
		return
	}

	balance, err := h.trialBalance.GetDisplayBalance(c.Request.Context(), accountCode, asOf)
	if err != nil {
		respondError(c, err, "Failed to compute account balance")
		return
	}
	var category domain.AccountCategory
	if h.classifier != nil {
		category, _ = h.classifier.Classify(accountCode)
	}
	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(accountCode, dto.NewDate(asOf), balance, category))
}
