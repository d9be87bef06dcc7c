package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"groupledger/internal/services"
)

// DashboardHandler serves the derived views of a group.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns the dashboard summary of a group
// @Summary     Get dashboard
// @Description Monthly balances, the month's overview and the caller's payment status. Parts whose read failed are listed in degraded and hold defaults.
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       id   path  string true  "Group ID"
// @Param       year query int    false "Year (default current)"
// @Success     200 {object} services.DashboardSummary "Dashboard"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /groups/{id}/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := pathParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetDashboard(c.Request.Context(), userID, groupID, year)
	if err != nil {
		// The client gave up on this request; nothing useful to write.
		if c.Request.Context().Err() != nil {
			c.Abort()
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetBalanceHistory returns a group's month-end balances for a year
// @Summary     Get balance history
// @Description Month-end running balances of a year, carried over from prior years. Months after the current one are omitted.
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       id   path  string true  "Group ID"
// @Param       year query int    false "Year (default current)"
// @Success     200 {object} reconcile.BalanceSeries "Balances"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /groups/{id}/balances [get]
func (h *DashboardHandler) GetBalanceHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := pathParam(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYear(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.dashboardService.GetBalanceHistory(c.Request.Context(), userID, groupID, year)
	if err != nil {
		if c.Request.Context().Err() != nil {
			c.Abort()
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}
