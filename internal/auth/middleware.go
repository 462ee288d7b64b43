package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"roster-service/internal/domain"
)

const claimsContextKey = "auth.claims"

// RequireAuth проверяет bearer-токен и кладет claims в контекст запроса.
func RequireAuth(manager *JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return unauthorized(c)
			}

			claims, err := manager.ParseAndValidate(parts[1])
			if err != nil {
				return unauthorized(c)
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// RequireCapability пропускает только вызовы с нужной способностью.
// Применяется после RequireAuth.
func RequireCapability(capability string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return unauthorized(c)
			}
			if !claims.HasCapability(capability) {
				httpErr, _ := domain.ToHTTPError(domain.ErrCapabilityMissing)
				return c.JSON(http.StatusForbidden, domain.ErrorResponse{Error: httpErr})
			}
			return next(c)
		}
	}
}

// GetClaims возвращает claims текущего запроса либо nil.
func GetClaims(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}

// Subject возвращает идентификатор вызывающего либо пустую строку.
func Subject(c echo.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.Subject
	}
	return ""
}

func unauthorized(c echo.Context) error {
	httpErr, _ := domain.ToHTTPError(domain.ErrUnauthorized)
	return c.JSON(http.StatusUnauthorized, domain.ErrorResponse{Error: httpErr})
}
