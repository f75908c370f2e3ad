package handlers

import (
	"net/http"

	"mailsift/internal/cache"
	"mailsift/internal/models"
	"mailsift/internal/store"

	"github.com/labstack/echo/v4"
)

// DashboardHandler returns aggregate reporting for a user's analyzed
// emails. Results are cached per user for a short TTL since the underlying
// aggregates are several queries.
// @Summary Dashboard aggregates
// @Description Returns totals, sentiment/category/priority breakdowns and the average emotional score
// @Tags dashboard
// @Produce json
// @Param user_id query string true "User to report on"
// @Success 200 {object} models.DashboardResponse
// @Failure 400 {object} models.DashboardResponse
// @Failure 500 {object} models.DashboardResponse
// @Router /api/dashboard [get]
func DashboardHandler(repo *store.Store, dashCache *cache.DashboardCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.QueryParam("user_id")
		if userID == "" {
			return c.JSON(http.StatusBadRequest, models.DashboardResponse{
				Success: false,
				Error:   "user_id is required",
			})
		}

		if data, ok := dashCache.Get(userID); ok {
			return c.JSON(http.StatusOK, models.DashboardResponse{
				Success: true,
				Data:    data,
			})
		}

		data, err := repo.Dashboard(c.Request().Context(), userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.DashboardResponse{
				Success: false,
				Error:   "Failed to build dashboard",
			})
		}

		dashCache.Set(userID, data)
		return c.JSON(http.StatusOK, models.DashboardResponse{
			Success: true,
			Data:    data,
		})
	}
}
