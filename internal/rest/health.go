package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func Liveness(c echo.Context) error {
	return c.String(http.StatusOK, "Roktosheba server is running")
}
