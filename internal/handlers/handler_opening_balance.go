package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
)

type openingBalanceHandler struct {
	balances portssvc.OpeningBalanceSvc
}

func registerOpeningBalanceRoutes(rg *gin.RouterGroup, balances portssvc.OpeningBalanceSvc) {
	h := &openingBalanceHandler{balances: balances}

	group := rg.Group("/opening-balances")
	{
		group.GET("", h.listOpeningBalances)
		group.PUT("/:accountCode", h.setOpeningBalance)
	}
}

func (h *openingBalanceHandler) setOpeningBalance(c *gin.Context) {
	accountCode := strings.TrimSpace(c.Param("accountCode"))

	var req dto.SetOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.balances.SetOpeningBalance(c.Request.Context(), accountCode, req.Amount, req.AsOfDate.Time); err != nil {
		respondError(c, err, "Failed to set opening balance")
		return
	}
	c.JSON(http.StatusOK, dto.OpeningBalanceResponse{
		AccountCode: accountCode,
		Amount:      req.Amount,
		AsOfDate:    dto.NewDate(req.AsOfDate.Time),
	})
}

func (h *openingBalanceHandler) listOpeningBalances(c *gin.Context) {
	balances, err := h.balances.ListOpeningBalances(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list opening balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpeningBalanceResponses(balances))
}
