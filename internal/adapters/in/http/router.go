// Package http is the REST and server-sent events surface of the service.
package http

import (
	"net/http"
	"sync"

	"dispatch/internal/generated/servers"
	"dispatch/internal/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// contractDoc serves the OpenAPI contract to the swagger UI.
type contractDoc struct {
	json string
}

func (d contractDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

func registerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, contractDoc{json: string(raw)})
	})
	return nil
}

// routeMiddleware attaches mw to each registered route only. Unknown paths
// keep echo's plain 404 instead of passing through the identity check.
type routeMiddleware struct {
	router servers.EchoRouter
	mw     []echo.MiddlewareFunc
}

func (r routeMiddleware) with(m []echo.MiddlewareFunc) []echo.MiddlewareFunc {
	return append(append([]echo.MiddlewareFunc{}, r.mw...), m...)
}

func (r routeMiddleware) CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.router.CONNECT(path, h, r.with(m)...)
}

func (r routeMiddleware) DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.router.DELETE(path, h, r.with(m)...)
}

func (r routeMiddleware) GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.router.GET(path, h, r.with(m)...)
}

func (r routeMiddleware) HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.router.HEAD(path, h, r.with(m)...)
}

func (r routeMiddleware) OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.router.OPTIONS(path, h, r.with(m)...)
}

func (r routeMiddleware) PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.router.PATCH(path, h, r.with(m)...)
}

func (r routeMiddleware) POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.router.POST(path, h, r.with(m)...)
}

func (r routeMiddleware) PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.router.PUT(path, h, r.with(m)...)
}

func (r routeMiddleware) TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route {
	return r.router.TRACE(path, h, r.with(m)...)
}

// NewRouter builds the echo instance with every route of the service:
// the contract routes under /api/v1, plus /health, /metrics and /swagger/*.
func NewRouter(
	server *Server,
	doc *openapi3.T,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) (*echo.Echo, error) {
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(MetricsMiddleware(m))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := routeMiddleware{router: e, mw: []echo.MiddlewareFunc{IdentityMiddleware(), validator}}
	servers.RegisterHandlers(api, server)

	return e, nil
}
