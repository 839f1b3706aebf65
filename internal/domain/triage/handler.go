package triage

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mindcare/mindcare/internal/platform/geo"
	"github.com/mindcare/mindcare/internal/platform/session"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	emergency := api.Group("/emergency")
	emergency.GET("/centers", h.ListCenters)
	emergency.GET("/nearby", h.Nearby)
	emergency.GET("/search", h.Search)
	emergency.GET("/reverse", h.Reverse)

	admin := emergency.Group("", session.RequireRole(session.RoleAdmin))
	admin.POST("/centers", h.AddCenter)
	admin.DELETE("/centers/:id", h.RemoveCenter)
}

func (h *Handler) ListCenters(c echo.Context) error {
	centers, err := h.svc.ListCenters(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, centers)
}

// Nearby ranks centers around the caller's coordinate. Absent or malformed
// coordinates fall back to the configured default origin.
func (h *Handler) Nearby(c echo.Context) error {
	var origin *geo.Coordinate
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if latErr == nil && lonErr == nil {
		origin = &geo.Coordinate{Lat: lat, Lon: lon}
	}

	k, _ := strconv.Atoi(c.QueryParam("k"))

	ranked, err := h.svc.Nearest(c.Request().Context(), origin, k)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ranked)
}

func (h *Handler) Search(c echo.Context) error {
	address := c.QueryParam("address")
	if address == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "address query parameter is required")
	}

	result, err := h.svc.SearchByAddress(c.Request().Context(), address)
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Reverse(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if latErr != nil || lonErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat and lon query parameters are required")
	}

	name, err := h.svc.ReverseLookup(c.Request().Context(), geo.Coordinate{Lat: lat, Lon: lon})
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"display_name": name})
}

func (h *Handler) AddCenter(c echo.Context) error {
	var center CrisisCenter
	if err := c.Bind(&center); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddCenter(c.Request().Context(), &center); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, center)
}

func (h *Handler) RemoveCenter(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.RemoveCenter(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrCenterNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
