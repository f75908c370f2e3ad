package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mailsift/internal/email"
	"mailsift/internal/models"
	"mailsift/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ListDraftsHandler returns the generated reply history for an email,
// newest first.
// @Summary List drafts for an email
// @Description Returns every generated draft reply for the email, newest first
// @Tags drafts
// @Produce json
// @Param id path string true "Email ID"
// @Success 200 {object} models.DraftListResponse
// @Failure 500 {object} models.DraftListResponse
// @Router /api/emails/{id}/drafts [get]
func ListDraftsHandler(repo *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		drafts, err := repo.DraftsByEmail(c.Request().Context(), c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.DraftListResponse{
				Success: false,
				Error:   "Failed to list drafts",
			})
		}
		if drafts == nil {
			drafts = []models.DraftResponse{}
		}

		return c.JSON(http.StatusOK, models.DraftListResponse{
			Success: true,
			Drafts:  drafts,
		})
	}
}

// SendDraftHandler emails a ready draft back to the original sender
// @Summary Send a draft reply
// @Description Sends the draft to the email's original sender, provided the draft was marked ready
// @Tags drafts
// @Produce json
// @Param id path int true "Draft ID"
// @Success 200 {object} models.SendDraftResponse
// @Failure 400 {object} models.SendDraftResponse
// @Failure 404 {object} models.SendDraftResponse
// @Failure 409 {object} models.SendDraftResponse
// @Failure 502 {object} models.SendDraftResponse
// @Router /api/drafts/{id}/send [post]
func SendDraftHandler(repo *store.Store, sender *email.Sender, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		draftID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.SendDraftResponse{
				Success: false,
				Error:   "Invalid draft id",
			})
		}

		draft, err := repo.GetDraft(c.Request().Context(), draftID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.SendDraftResponse{
					Success: false,
					Error:   "Draft not found",
				})
			}
			return c.JSON(http.StatusInternalServerError, models.SendDraftResponse{
				Success: false,
				Error:   "Failed to load draft",
			})
		}

		if !draft.IsReady {
			return c.JSON(http.StatusConflict, models.SendDraftResponse{
				Success: false,
				Error:   "Draft is not marked ready to send",
			})
		}

		if err := sender.SendDraftReply(draft.Sender, draft.Subject, draft.Draft); err != nil {
			logger.Error().Err(err).Int("draft_id", draftID).Msg("Failed to send draft reply")
			return c.JSON(http.StatusBadGateway, models.SendDraftResponse{
				Success: false,
				Error:   "Failed to send draft",
			})
		}

		logger.Info().Int("draft_id", draftID).Str("email_id", draft.EmailID).Msg("Draft reply sent")
		return c.JSON(http.StatusOK, models.SendDraftResponse{
			Success: true,
			Message: "Draft sent",
		})
	}
}
