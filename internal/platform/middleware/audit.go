package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

// AuditEntry captures who accessed what, when, from where, and how.
type AuditEntry struct {
	UserID     string
	UserRoles  []string
	Resource   string
	RecordID   string
	Action     string // read, create, update, delete, search
	IPAddress  string
	UserAgent  string
	Path       string
	Method     string
	Timestamp  time.Time
	RequestID  string
	StatusCode int
}

// AuditRecorder is the interface the audit middleware uses to persist audit
// entries, decoupling it from any concrete sink so tests can provide a mock.
type AuditRecorder interface {
	RecordAccess(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(entry AuditEntry) error {
	return f(entry)
}

// Audit returns middleware that records access to patient-identifying routes
// under /api/v1. The authenticated user, the resource (first path segment
// after the prefix), the record id, and the action inferred from the HTTP
// method are captured for every request.
//
// If no AuditRecorder is provided, entries fall back to structured zerolog
// logging.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if !isAuditablePath(path) {
				return next(c)
			}

			// Execute the handler first so we capture the response status.
			err := next(c)

			resource, recordID := parseResourcePath(path)
			ctx := req.Context()

			entry := AuditEntry{
				UserID:     auth.UserIDFromContext(ctx),
				UserRoles:  auth.RolesFromContext(ctx),
				Resource:   resource,
				RecordID:   recordID,
				Action:     actionForMethod(req.Method, recordID),
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				Path:       path,
				Method:     req.Method,
				Timestamp:  time.Now().UTC(),
				StatusCode: c.Response().Status,
			}
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			if len(recorders) > 0 {
				for _, r := range recorders {
					if recErr := r.RecordAccess(entry); recErr != nil {
						logger.Error().Err(recErr).
							Str("request_id", entry.RequestID).
							Msg("audit recorder failed")
					}
				}
			} else {
				logger.Info().
					Str("request_id", entry.RequestID).
					Str("user_id", entry.UserID).
					Strs("roles", entry.UserRoles).
					Str("resource", entry.Resource).
					Str("record_id", entry.RecordID).
					Str("action", entry.Action).
					Str("remote_ip", entry.IPAddress).
					Int("status", entry.StatusCode).
					Msg("access")
			}

			return err
		}
	}
}

const auditPrefix = "/api/v1/"

func isAuditablePath(path string) bool {
	return strings.HasPrefix(path, auditPrefix)
}

// parseResourcePath extracts the resource name and, when present, the record
// identifier from an /api/v1 path: "/api/v1/patients/42/check-in" yields
// ("patients", "42").
func parseResourcePath(path string) (resource, recordID string) {
	rest := strings.TrimPrefix(path, auditPrefix)
	parts := strings.Split(rest, "/")
	if len(parts) > 0 {
		resource = parts[0]
	}
	if len(parts) > 1 {
		recordID = parts[1]
	}
	return resource, recordID
}

func actionForMethod(method, recordID string) string {
	switch method {
	case http.MethodGet:
		if recordID == "" {
			return "search"
		}
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return strings.ToLower(method)
	}
}
