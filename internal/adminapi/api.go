package adminapi

import (
	"github.com/labstack/echo/v4"
	"github.com/mobileriadardania/storefront/internal/app"
	"github.com/mobileriadardania/storefront/internal/webserver"
)

const appContextKey = "appCtx"

// Init attaches the application context to every request and registers
// all storefront routes on s.
func Init(s *webserver.Server, appCtx app.AppContext) {
	s.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appContextKey, appCtx)
			return next(c)
		}
	})
	registerProductRoutes(s)
	registerUploadRoutes(s)
	registerContactRoutes(s)
	registerSystemRoutes(s)
}

// GetAppContext returns the application context set by Init.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(appContextKey).(app.AppContext)
}
