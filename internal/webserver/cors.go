package webserver

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MsgOriginRejected is the body of requests from a foreign origin.
const MsgOriginRejected = "Not allowed by CORS"

// OriginGuard accepts requests without an Origin header and those whose
// origin matches the configured pattern.
type OriginGuard struct {
	pattern *regexp.Regexp
}

func NewOriginGuard(pattern string) (*OriginGuard, error) {
	if pattern == "" {
		pattern = `^http://localhost(:[0-9]+)?$`
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid allowed origin pattern %q", pattern)
	}
	return &OriginGuard{pattern: re}, nil
}

// Allowed reports whether a request with this Origin header may proceed.
func (g *OriginGuard) Allowed(origin string) bool {
	return origin == "" || g.pattern.MatchString(origin)
}

// AllowOrigin plugs the guard into echo's CORS middleware.
func (g *OriginGuard) AllowOrigin(origin string) (bool, error) {
	return g.Allowed(origin), nil
}

// Middleware rejects foreign origins with 403 before any handler runs.
func (g *OriginGuard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if origin := c.Request().Header.Get(echo.HeaderOrigin); !g.Allowed(origin) {
				return c.JSON(http.StatusForbidden, ErrorResponse{Error: MsgOriginRejected})
			}
			return next(c)
		}
	}
}
