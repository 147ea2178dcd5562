package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/campus_bites/pkg/logging"
	"github.com/Skotchmaster/campus_bites/pkg/tokens"
)

type StaffMiddleware struct {
	JWTSecret []byte
}

func NewStaffMiddleware(secret []byte) *StaffMiddleware {
	return &StaffMiddleware{JWTSecret: secret}
}

type validatorFunc func(claims *tokens.AccessClaims) error

// RequireAuth accepts any valid access token regardless of role.
func (m *StaffMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *StaffMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != tokens.RoleStaff {
			return echo.NewHTTPError(http.StatusForbidden, "staff access required")
		}
		return nil
	})
}

func (m *StaffMiddleware) requireAuthWithValidator(next echo.HandlerFunc, validator validatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "auth")

		raw := accessToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/", c.IsTLS()))
			if errors.Is(err, jwt.ErrTokenExpired) {
				l.Info("access_token_expired")
				return echo.NewHTTPError(http.StatusUnauthorized, "access token expired")
			}
			l.Warn("access_token_invalid", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				return err
			}
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.Role)
		return next(c)
	}
}

// accessToken reads the cookie first and falls back to a bearer header,
// which is what kitchen tablets without cookie storage send.
func accessToken(c echo.Context) string {
	if ck, err := c.Cookie(tokens.AccessCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if v, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
