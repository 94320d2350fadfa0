package patient

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/pkg/export"
	"github.com/clinicdesk/clinicdesk/pkg/pagination"
)

// exportColumns is the fixed CSV header order for patient exports.
var exportColumns = []string{
	"First Name", "Surname", "ID Number", "Date of Birth", "Sex",
	"Phone", "Payment Method", "Consultation Status", "Registered",
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleReceptionist, auth.RoleDoctor))

	g.GET("/patients", h.ListPatients)
	g.GET("/patients/export", h.ExportPatients)
	g.GET("/patients/:id", h.GetPatient)
	g.POST("/patients", h.RegisterPatient)
	g.PUT("/patients/:id", h.UpdatePatient)

	g.GET("/queue", h.GetQueue)
	g.POST("/patients/:id/check-in", h.CheckIn)
	g.POST("/patients/:id/follow-up", h.AddFollowUp)
	g.POST("/patients/:id/start-consultation", h.StartConsultation)
	g.POST("/patients/:id/complete", h.CompleteConsultation)

	// Hard deletion of a patient record is admin-only.
	api.DELETE("/patients/:id", h.DeletePatient, auth.RequireRole(auth.RoleAdmin))
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Register(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	params := pipelineParamsFrom(c)
	patients, err := h.svc.List(c.Request().Context(), params)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	pg := pagination.FromContext(c)
	total := len(patients)
	page := paginate(patients, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.Update(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// queueResponse is the queue payload plus the day-navigation dates. NextDate
// is omitted when stepping forward would leave the clinic's current day.
type queueResponse struct {
	Queue
	Date     string  `json:"date"`
	PrevDate string  `json:"prev_date"`
	NextDate *string `json:"next_date,omitempty"`
}

// GetQueue returns the day's waiting / in-consultation / served buckets.
// The date query parameter (YYYY-MM-DD, clinic calendar) defaults to today.
func (h *Handler) GetQueue(c echo.Context) error {
	loc := h.svc.Location()
	ref := time.Now().In(loc)
	if d := c.QueryParam("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, loc)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		ref = parsed
	}

	q, err := h.svc.Queue(c.Request().Context(), ref)
	if err != nil {
		if errors.Is(err, ErrUnscheduledQueue) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := queueResponse{
		Queue:    q,
		Date:     ref.In(loc).Format("2006-01-02"),
		PrevDate: PrevQueueDay(ref).In(loc).Format("2006-01-02"),
	}
	if next, ok := NextQueueDay(ref, time.Now(), loc); ok {
		nd := next.In(loc).Format("2006-01-02")
		resp.NextDate = &nd
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) CheckIn(c echo.Context) error {
	return h.transition(c, func(id uuid.UUID) error {
		return h.svc.CheckIn(c.Request().Context(), id)
	})
}

func (h *Handler) AddFollowUp(c echo.Context) error {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.transition(c, func(id uuid.UUID) error {
		return h.svc.AddFollowUp(c.Request().Context(), id, body.Reason)
	})
}

func (h *Handler) StartConsultation(c echo.Context) error {
	return h.transition(c, func(id uuid.UUID) error {
		return h.svc.StartConsultation(c.Request().Context(), id)
	})
}

func (h *Handler) CompleteConsultation(c echo.Context) error {
	return h.transition(c, func(id uuid.UUID) error {
		return h.svc.CompleteConsultation(c.Request().Context(), id)
	})
}

func (h *Handler) transition(c echo.Context, op func(id uuid.UUID) error) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := op(id); err != nil {
		return transitionError(err)
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func transitionError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyQueued),
		errors.Is(err, ErrRoomOccupied),
		errors.Is(err, ErrNotWaiting),
		errors.Is(err, ErrNotInConsult):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrFollowUpReason):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// ExportPatients streams the filtered patient list as CSV with a fixed
// column order.
func (h *Handler) ExportPatients(c echo.Context) error {
	params := pipelineParamsFrom(c)
	patients, err := h.svc.List(c.Request().Context(), params)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	table := export.NewTable(exportColumns...)
	for _, p := range patients {
		if err := table.Append(
			p.FirstName, p.Surname, p.IDNumber,
			p.DateOfBirth.Format("2006-01-02"), p.Sex,
			strOrEmpty(p.Phone), p.PaymentMethod, p.ConsultationStatus,
			p.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="patients.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return table.WriteCSV(c.Response())
}

func pipelineParamsFrom(c echo.Context) PipelineParams {
	sex := c.QueryParam("gender")
	if sex == "" {
		sex = c.QueryParam("sex")
	}
	return PipelineParams{
		Search:    c.QueryParam("search"),
		Sex:       sex,
		Payment:   c.QueryParam("payment"),
		Period:    c.QueryParam("period"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("order"),
	}
}

func paginate(patients []*Patient, pg pagination.Params) []*Patient {
	if pg.Offset >= len(patients) {
		return []*Patient{}
	}
	end := pg.Offset + pg.Limit
	if end > len(patients) {
		end = len(patients)
	}
	return patients[pg.Offset:end]
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
