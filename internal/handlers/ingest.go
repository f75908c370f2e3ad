package handlers

import (
	"context"
	"errors"
	"net/http"

	"mailsift/internal/analysis"
	"mailsift/internal/ingest"
	"mailsift/internal/models"
	"mailsift/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// UploadEmailsHandler ingests a CSV of emails for a user and kicks off
// analysis of the new rows in the background. The response reports what was
// stored and which rows were rejected; it does not wait for analysis.
// @Summary Upload emails
// @Description Parses an uploaded CSV, stores valid rows (skipping duplicates) and triggers background analysis
// @Tags emails
// @Accept mpfd
// @Produce json
// @Param user_id formData string true "Owner of the uploaded emails"
// @Param file formData file true "CSV file with sender, subject, body, sent_date columns"
// @Success 200 {object} models.IngestResponse
// @Failure 400 {object} models.IngestResponse
// @Failure 404 {object} models.IngestResponse
// @Failure 500 {object} models.IngestResponse
// @Router /api/emails/upload [post]
func UploadEmailsHandler(ingester *ingest.Service, analyzer *analysis.Service, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.FormValue("user_id")
		if userID == "" {
			return c.JSON(http.StatusBadRequest, models.IngestResponse{
				Success: false,
				Error:   "user_id is required",
			})
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.IngestResponse{
				Success: false,
				Error:   "file is required",
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.IngestResponse{
				Success: false,
				Error:   "Failed to open uploaded file",
			})
		}
		defer file.Close()

		result, err := ingester.Ingest(c.Request().Context(), userID, file)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.IngestResponse{
					Success: false,
					Error:   "User not found",
				})
			}
			if errors.Is(err, ingest.ErrInvalidUpload) {
				return c.JSON(http.StatusBadRequest, models.IngestResponse{
					Success: false,
					Error:   err.Error(),
				})
			}
			// Parsing succeeded; the bulk insert itself failed
			return c.JSON(http.StatusInternalServerError, models.IngestResponse{
				Success: false,
				Error:   "Failed to store emails",
			})
		}

		// Analysis runs detached from the request: the upload response must
		// not wait for the queue, and a failed run is only logged.
		go func() {
			if _, err := analyzer.ProcessEmails(context.Background(), userID); err != nil {
				logger.Error().Err(err).Str("user_id", userID).Msg("Background analysis after upload failed")
			}
		}()

		rowErrors := make([]models.RowErrorResponse, 0, len(result.RowErrors))
		for _, re := range result.RowErrors {
			rowErrors = append(rowErrors, models.RowErrorResponse{
				Row:     re.Row,
				Message: re.Message,
			})
		}

		return c.JSON(http.StatusOK, models.IngestResponse{
			Success:       true,
			InsertedCount: result.InsertedCount,
			RowErrors:     rowErrors,
		})
	}
}
