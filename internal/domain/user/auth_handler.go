package user

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

const tokenTTL = 12 * time.Hour

// AuthHandler issues HMAC-signed tokens for single-clinic deployments that
// run without an external identity provider.
type AuthHandler struct {
	svc        *Service
	signingKey []byte
	issuer     string
	now        func() time.Time
}

func NewAuthHandler(svc *Service, signingKey []byte, issuer string) *AuthHandler {
	return &AuthHandler{svc: svc, signingKey: signingKey, issuer: issuer, now: time.Now}
}

// RegisterRoutes mounts the login route on the bare server: callers have no
// token yet, so it sits outside the authenticated API group.
func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/auth/login", h.Login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		// One answer for bad username and bad password.
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := h.now()
	expires := now.Add(tokenTTL)
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			Issuer:    h.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Roles:        []string{u.Role},
		PracticeCode: u.PracticeCode,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.signingKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not sign token")
	}
	return c.JSON(http.StatusOK, loginResponse{Token: signed, ExpiresAt: expires, User: u})
}
