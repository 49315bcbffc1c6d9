package handler

import (
	"net/http"

	"todoapp/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving requests.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}
