package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/merchlink/staffing-backend/internal/middleware"
	"github.com/merchlink/staffing-backend/internal/models"
	"github.com/merchlink/staffing-backend/internal/services"
)

// ReportHandler handles monthly report HTTP requests
type ReportHandler struct {
	reportSvc *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *services.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Monthly handles GET /api/v1/workers/:id/report?year=&month=
//
// Workers may only read their own report; admins may read anyone's.
func (h *ReportHandler) Monthly(c *gin.Context) {
	workerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userCtx := middleware.MustGetUserContext(c)
	if userCtx.Role != models.RoleAdmin && userCtx.UserID != workerID {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You may only read your own report",
		})
		return
	}

	now := time.Now().UTC()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		respondServiceError(c, models.ValidationErrors{"year": "must be a number"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		respondServiceError(c, models.ValidationErrors{"month": "must be a number"})
		return
	}

	report, err := h.reportSvc.MonthlyTotals(workerID, year, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
