// Package handler holds the local surface's echo handlers.
package handler

import (
	"net/http"

	"cooked/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the agent is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
