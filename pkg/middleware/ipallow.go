package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// IPAllowList ограничивает доступ списком IP-адресов.
// Пустой список отключает проверку.
func IPAllowList(allowed []string, logger *zap.Logger) echo.MiddlewareFunc {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, ip := range allowed {
		allowedSet[ip] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowedSet) == 0 {
				return next(c)
			}
			ip := c.RealIP()
			if _, ok := allowedSet[ip]; !ok {
				logger.Warn("запрос с неразрешенного IP", zap.String("ip", ip), zap.String("uri", c.Request().RequestURI))
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
			}
			return next(c)
		}
	}
}
