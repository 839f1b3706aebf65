package scheduling

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mindcare/mindcare/internal/platform/session"
	"github.com/mindcare/mindcare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/appointments", h.CreateAppointment)
	api.GET("/appointments", h.ListAppointments)
	api.GET("/appointments/:id", h.GetAppointment)
	api.PUT("/appointments/:id", h.RescheduleAppointment)
	api.DELETE("/appointments/:id", h.CancelAppointment)

	staff := api.Group("", session.RequireRole(session.RoleCounselor, session.RolePsychiatrist, session.RoleAdmin))
	staff.PATCH("/appointments/:id/status", h.UpdateStatus)
}

type createRequest struct {
	Role           string    `json:"role"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	UserPublicID   string    `json:"user_public_id"`
	Contact        *string   `json:"contact,omitempty"`
	Status         string    `json:"status,omitempty"`
}

// apptError maps service errors onto HTTP statuses. Slot conflicts get 409
// so callers can tell "choose another hour" apart from validation problems.
// Anything outside the sentinel set is an infrastructure failure the client
// cannot correct, so it gets a 500 with a generic body rather than leaking
// a driver message dressed up as a validation error.
func apptError(err error) error {
	switch {
	case errors.Is(err, ErrSlotTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrPastDate),
		errors.Is(err, ErrOutsideHours), errors.Is(err, ErrUnknownProfessional),
		errors.Is(err, ErrRoleMismatch):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "temporary failure, please retry")
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Date == "" || req.Time == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date and time are required")
	}
	dateTime, err := time.ParseInLocation(dateLayout+" "+timeLayout, req.Date+" "+req.Time, time.Local)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date or time format")
	}

	a := Appointment{
		UserPublicID: req.UserPublicID,
		DateTime:     dateTime,
		Contact:      req.Contact,
		Status:       req.Status,
	}
	a.SetProfessional(req.Role, req.ProfessionalID)

	actor, hasActor := session.FromContext(c.Request().Context())
	staffInitiated := hasActor && actor.IsStaff()
	if hasActor && !staffInitiated && a.UserPublicID == "" {
		a.UserPublicID = actor.PublicID
	}
	if staffInitiated {
		createdBy := actor.UserID
		a.CreatedBy = &createdBy
	} else {
		// Public bookings always open in progress
		a.Status = StatusInProgress
	}

	if err := h.svc.CreateAppointment(c.Request().Context(), &a, staffInitiated); err != nil {
		return apptError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return apptError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	ctx := c.Request().Context()

	if userID := c.QueryParam("user_public_id"); userID != "" {
		items, total, err := h.svc.ListByPatient(ctx, userID, pg.Limit, pg.Offset)
		if err != nil {
			return apptError(err)
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	if profID := c.QueryParam("professional_id"); profID != "" {
		pid, err := uuid.Parse(profID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid professional_id")
		}
		items, total, err := h.svc.ListByProfessional(ctx, pid, pg.Limit, pg.Offset)
		if err != nil {
			return apptError(err)
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}

	items, total, err := h.svc.List(ctx, pg.Limit, pg.Offset)
	if err != nil {
		return apptError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) RescheduleAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var change Change
	if err := c.Bind(&change); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, hasActor := session.FromContext(c.Request().Context())
	staffInitiated := hasActor && actor.IsStaff()

	a, err := h.svc.Reschedule(c.Request().Context(), id, change, staffInitiated)
	if err != nil {
		return apptError(err)
	}
	return c.JSON(http.StatusOK, a)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return apptError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		return apptError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
