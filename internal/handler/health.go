package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Root is the liveness endpoint at the service root.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"hello": "world"})
}

// Health is a plain-text health check for load balancers and monitors.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// SystemHandler holds the raw database handle for connectivity checks.
type SystemHandler struct {
	DB *sql.DB
}

func NewSystemHandler(db *sql.DB) *SystemHandler { return &SystemHandler{DB: db} }

// TestDB runs a trivial query to confirm database connectivity.
func (h *SystemHandler) TestDB(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var one int
	if err := h.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database connection failed: " + err.Error()})
	}
	if one != 1 {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unexpected result from database"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Successfully connected to the database!"})
}
