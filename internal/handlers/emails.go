package handlers

import (
	"net/http"
	"strconv"

	"mailsift/internal/models"
	"mailsift/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// emailFilterFromQuery maps listing query parameters onto a store filter,
// applying pagination defaults and bounds.
func emailFilterFromQuery(c echo.Context) store.EmailFilter {
	filter := store.EmailFilter{
		UserID:    c.QueryParam("user_id"),
		Sentiment: c.QueryParam("sentiment"),
		Priority:  c.QueryParam("priority"),
		Category:  c.QueryParam("category"),
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
		Page:      defaultPage,
		Limit:     defaultLimit,
	}

	if raw := c.QueryParam("processing_priority"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			filter.ProcessingPriority = &value
		}
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		if limit > maxLimit {
			limit = maxLimit
		}
		filter.Limit = limit
	}

	return filter
}

// ListEmailsHandler lists a user's analyzed emails with filtering, search,
// sorting and pagination.
// @Summary List analyzed emails
// @Description Returns analyzed emails for a user, filtered and paginated
// @Tags emails
// @Produce json
// @Param user_id query string true "Owner of the emails"
// @Param sentiment query string false "Exact sentiment filter"
// @Param priority query string false "Exact priority filter"
// @Param category query string false "Category substring filter"
// @Param processing_priority query int false "Exact processing priority filter"
// @Param search query string false "Free-text search over summaries and assessments"
// @Param sort_by query string false "Sort field" Enums(created_at, updated_at, sentiment, priority, category, processing_priority)
// @Param sort_order query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} models.EmailListResponse
// @Failure 400 {object} models.EmailListResponse
// @Failure 500 {object} models.EmailListResponse
// @Router /api/emails [get]
func ListEmailsHandler(repo *store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := emailFilterFromQuery(c)
		if filter.UserID == "" {
			return c.JSON(http.StatusBadRequest, models.EmailListResponse{
				Success: false,
				Error:   "user_id is required",
			})
		}

		emails, total, err := repo.AnalyzedEmails(c.Request().Context(), filter)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.EmailListResponse{
				Success: false,
				Error:   "Failed to list emails",
			})
		}

		totalPages := (total + filter.Limit - 1) / filter.Limit
		return c.JSON(http.StatusOK, models.EmailListResponse{
			Success:    true,
			Count:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages,
			Emails:     emails,
		})
	}
}
