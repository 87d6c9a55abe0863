package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maqomuz/maktab/services/audit"
)

// agentDenylist marks automated clients worth flagging in the security log.
// Matching requests are logged, not blocked.
var agentDenylist = []string{"bot", "crawler", "spider", "scraper", "curl", "wget"}

func suspiciousAgentMiddleware(log *audit.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			agent := strings.ToLower(ctx.Request().UserAgent())
			for _, marker := range agentDenylist {
				if strings.Contains(agent, marker) {
					log.Log(audit.EventSuspiciousAgent,
						map[string]string{"path": ctx.Request().URL.Path},
						ctx.RealIP(), ctx.Request().UserAgent())
					break
				}
			}
			return next(ctx)
		}
	}
}

// adminAuditMiddleware records admin-panel access and refreshes the activity
// clock backing the session-timeout check.
func adminAuditMiddleware(log *audit.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			log.Log(audit.EventAdminAccess,
				map[string]string{"path": ctx.Request().URL.Path, "method": ctx.Request().Method},
				ctx.RealIP(), ctx.Request().UserAgent())
			log.Touch()
			return next(ctx)
		}
	}
}
