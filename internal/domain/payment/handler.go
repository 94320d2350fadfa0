package payment

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/blobstore"
	"github.com/clinicdesk/clinicdesk/pkg/export"
)

var exportColumns = []string{"Payment ID", "Patient ID", "Amount", "Method", "Has Proof", "Date"}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleReceptionist))

	g.POST("/patients/:id/payments", h.RecordPayment)
	g.GET("/patients/:id/payments", h.ListByPatient)
	g.GET("/payments/export", h.ExportPayments)
	g.GET("/payments/:id/proof", h.DownloadProof)
}

// RecordPayment accepts a multipart form: amount_cents, method, optional note
// and an optional proof file part.
func (h *Handler) RecordPayment(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	amount, err := strconv.ParseInt(c.FormValue("amount_cents"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "amount_cents must be an integer")
	}

	p := &Payment{
		PatientID:   patientID,
		AmountCents: amount,
		Method:      c.FormValue("method"),
	}
	if note := c.FormValue("note"); note != "" {
		p.Note = &note
	}

	var proof *ProofUpload
	if file, err := c.FormFile("proof"); err == nil {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "open uploaded file")
		}
		defer src.Close()
		proof = &ProofUpload{
			FileName:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Content:     src,
			UploadedBy:  auth.UserIDFromContext(c.Request().Context()),
		}
	}

	if err := h.svc.Record(c.Request().Context(), p, proof); err != nil {
		return paymentError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	payments, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return paymentError(err)
	}
	if payments == nil {
		payments = []*Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *Handler) DownloadProof(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rc, meta, err := h.svc.Proof(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, blobstore.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "proof not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, meta.FileName))
	return c.Stream(http.StatusOK, meta.ContentType, rc)
}

func (h *Handler) ExportPayments(c echo.Context) error {
	payments, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	table := export.NewTable(exportColumns...)
	for _, p := range payments {
		hasProof := "no"
		if p.ProofBlobID != nil {
			hasProof = "yes"
		}
		if err := table.Append(
			p.ID.String(), p.PatientID.String(),
			fmt.Sprintf("%d.%02d", p.AmountCents/100, p.AmountCents%100),
			p.Method, hasProof, p.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="payments.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return table.WriteCSV(c.Response())
}

func paymentError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPatientUnknown):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBadAmount), errors.Is(err, ErrBadMethod),
		errors.Is(err, blobstore.ErrInvalidContentType),
		errors.Is(err, blobstore.ErrFileTooLarge),
		errors.Is(err, blobstore.ErrMissingFileName):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
