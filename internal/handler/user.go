package handler

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weather-mood/internal/model"
	"github.com/iliyamo/weather-mood/internal/repository"
)

// maxNearbyDelta bounds the per-axis coordinate difference, in degrees,
// for a user to count as nearby.
const maxNearbyDelta = 0.1

// UserHandler exposes the authenticated location, feeling and proximity
// endpoints.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler { return &UserHandler{Users: u} }

type locationReq struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type feelingReq struct {
	FeelingScore int64 `json:"feeling_score"`
}

type scoreEntry struct {
	FeelingScore int64   `json:"feeling_score"`
	Distance     float64 `json:"distance"`
}

// UpdateLocation overwrites the caller's coordinates and last-login time.
func (h *UserHandler) UpdateLocation(c echo.Context) error {
	u, ok := currentUser(c, h.Users)
	if !ok {
		return nil
	}
	var req locationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateLocation(ctx, u.ID, req.Latitude, req.Longitude); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Location updated successfully"})
}

// UpdateFeeling overwrites the caller's feeling score.
func (h *UserHandler) UpdateFeeling(c echo.Context) error {
	u, ok := currentUser(c, h.Users)
	if !ok {
		return nil
	}
	var req feelingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateFeeling(ctx, u.ID, req.FeelingScore); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Feeling score updated successfully"})
}

// NearbyScores lists feeling scores of other users whose last-known
// coordinates fall inside the bounding box around the caller.  Callers
// without a stored location get a 400.
func (h *UserHandler) NearbyScores(c echo.Context) error {
	u, ok := currentUser(c, h.Users)
	if !ok {
		return nil
	}
	if u.LastLoginLat == nil || u.LastLoginLon == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user location not available"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	others, err := h.Users.ListNearby(ctx, u, maxNearbyDelta)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, nearbyScores(u, others))
}

// nearbyScores annotates each neighbor with the Euclidean norm of the
// coordinate delta.  Distances are in degrees, not a geodesic measure.
// Result order follows the database scan; none is guaranteed.
func nearbyScores(me model.User, others []model.User) []scoreEntry {
	out := make([]scoreEntry, 0, len(others))
	for _, o := range others {
		if o.LastLoginLat == nil || o.LastLoginLon == nil || o.FeelingScore == nil {
			continue
		}
		d := math.Hypot(*o.LastLoginLat-*me.LastLoginLat, *o.LastLoginLon-*me.LastLoginLon)
		out = append(out, scoreEntry{FeelingScore: *o.FeelingScore, Distance: d})
	}
	return out
}
