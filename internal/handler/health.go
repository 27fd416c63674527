// Package handler holds handlers that do not belong to a resource group.
package handler

import (
	"net/http"

	"userhub/internal/api"
	"userhub/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// TestDatabaseHandler probes database connectivity with a trivial query.
// @Summary     Database connectivity probe
// @Description Runs SELECT 1 against the database and reports the result.
// @Tags        health
// @Produce     json
// @Success     200 {object} api.ProbeResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/test-db [get]
func TestDatabaseHandler(db database.DB, log zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var result int
		row := db.QueryRow(c.Request().Context(), `SELECT 1 AS test`)
		if err := row.Scan(&result); err != nil {
			log.Error().Err(err).Msg("database probe failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{
				Error:   "Database connection failed",
				Message: "Failed to reach the database",
			})
		}
		return c.JSON(http.StatusOK, api.ProbeResponse{
			Message: "Database connection successful",
			Result:  result,
		})
	}
}
