package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root handles GET /api/, the service banner.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "LaicaFM API - ¡Tu estación de radio online!"})
}
