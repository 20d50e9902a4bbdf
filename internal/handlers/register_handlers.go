package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerJournalRoutes(v1, services.Ledger, services.Adjustment)
	registerAdjustmentRoutes(v1, services.Adjustment)
	registerPeriodRoutes(v1, services.Ledger)
	registerOpeningBalanceRoutes(v1, services.Ledger)
	registerReportingRoutes(v1, services.TrialBalance, services.Classifier)
	registerRecurringRoutes(v1, services.Recurring)
}
