package handlers

import (
	"net/http"
	"time"

	"mailsift/internal/analysis"
	"mailsift/internal/models"

	"github.com/labstack/echo/v4"
)

// ProcessEmailsHandler analyzes every unanalyzed email a user has. It
// returns once the whole batch has drained from the queue.
// @Summary Process pending emails
// @Description Selects the user's unanalyzed emails, analyzes each one and persists the results
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.ProcessEmailsRequest true "Batch parameters"
// @Success 200 {object} models.ProcessEmailsResponse
// @Failure 400 {object} models.ProcessEmailsResponse
// @Failure 500 {object} models.ProcessEmailsResponse
// @Router /api/emails/process [post]
func ProcessEmailsHandler(service *analysis.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ProcessEmailsRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ProcessEmailsResponse{
				Success: false,
				Error:   "Invalid request body",
			})
		}
		if req.UserID == "" {
			return c.JSON(http.StatusBadRequest, models.ProcessEmailsResponse{
				Success: false,
				Error:   "user_id is required",
			})
		}

		enqueued, err := service.ProcessEmails(c.Request().Context(), req.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ProcessEmailsResponse{
				Success: false,
				Error:   "Failed to process emails",
			})
		}

		return c.JSON(http.StatusOK, models.ProcessEmailsResponse{
			Success:  true,
			Message:  "All pending emails processed",
			Enqueued: enqueued,
		})
	}
}

// AnalyzeHandler runs an ad-hoc analysis of a single email payload without
// persisting anything.
// @Summary Analyze one email
// @Description Sends the given email content through the analyzer and returns the raw report
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body models.AnalyzeRequest true "Email content"
// @Success 200 {object} analyzer.Report
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/analysis [post]
func AnalyzeHandler(service *analysis.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.AnalyzeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Invalid request body",
			})
		}
		if req.Sender == "" || req.Body == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "sender and body are required",
			})
		}
		if req.ReceivedAt.IsZero() {
			req.ReceivedAt = time.Now().UTC()
		}

		report, err := service.AnalyzeNow(c.Request().Context(), models.Email{
			Sender:     req.Sender,
			Subject:    req.Subject,
			Body:       req.Body,
			ReceivedAt: req.ReceivedAt,
		})
		if err != nil {
			return c.JSON(http.StatusBadGateway, map[string]string{
				"error": "Analysis failed",
			})
		}

		return c.JSON(http.StatusOK, report)
	}
}
