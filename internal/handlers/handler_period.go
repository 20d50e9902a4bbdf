package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/general_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/dto"
	"github.com/SscSPs/general_ledger/internal/middleware"
)

// periodHandler handles locking and inspecting accounting periods.
type periodHandler struct {
	periods portssvc.PeriodLockSvc
}

func registerPeriodRoutes(rg *gin.RouterGroup, periods portssvc.PeriodLockSvc) {
	h := &periodHandler{periods: periods}

	group := rg.Group("/periods/:year/:month")
	{
		group.GET("", h.getPeriodStatus)
		group.POST("/lock", h.lockPeriod)
		group.POST("/unlock", h.unlockPeriod)
	}
}

// periodFromPath validates the year and month path parameters.
func periodFromPath(c *gin.Context) (domain.PeriodKey, bool) {
	year, yerr := strconv.Atoi(c.Param("year"))
	month, merr := strconv.Atoi(c.Param("month"))
	if yerr != nil || merr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year and month must be integers"})
		return domain.PeriodKey{}, false
	}
	period, err := domain.NewPeriodKey(year, time.Month(month))
	if err != nil {
		respondError(c, err, "Invalid period")
		return domain.PeriodKey{}, false
	}
	return period, true
}

func (h *periodHandler) getPeriodStatus(c *gin.Context) {
	period, ok := periodFromPath(c)
	if !ok {
		return
	}
	status, err := h.periods.PeriodStatus(c.Request.Context(), period.Year, period.Month)
	if err != nil {
		respondError(c, err, "Failed to read period status")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodStatusResponse(status))
}

func (h *periodHandler) lockPeriod(c *gin.Context) {
	period, ok := periodFromPath(c)
	if !ok {
		return
	}
	// the body is optional
	var req dto.LockPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	if err := h.periods.LockPeriodBy(c.Request.Context(), period.Year, period.Month, req.Actor); err != nil {
		respondError(c, err, "Failed to lock period")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Period locked", slog.String("period", period.String()))
	h.getPeriodStatus(c)
}

func (h *periodHandler) unlockPeriod(c *gin.Context) {
	period, ok := periodFromPath(c)
	if !ok {
		return
	}
	var req dto.UnlockPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.periods.UnlockPeriod(c.Request.Context(), period.Year, period.Month, req.Actor, req.Reason); err != nil {
		respondError(c, err, "Failed to unlock period")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Period unlocked",
		slog.String("period", period.String()),
		slog.String("actor", req.Actor))
	h.getPeriodStatus(c)
}
