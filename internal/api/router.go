package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/storefront/docs"
	"github.com/99minutos/storefront/internal/api/handler"
	"github.com/99minutos/storefront/internal/api/middleware"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Orders   ports.OrderService

	// Readiness checks run by GET /health/ready, keyed by dependency name.
	Readiness map[string]handler.DependencyCheck

	// Registry receives the HTTP request metrics and backs GET /metrics.
	// Nil means the default Prometheus registry.
	Registry *prometheus.Registry

	Logger    zerolog.Logger
	PublicDir string
}

// endpoint is one row of the API route table.
type endpoint struct {
	method  string
	path    string
	handler echo.HandlerFunc
	auth    bool
	roles   []string // empty means any authenticated user
	noBody  bool     // POST without a request body
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "storefront",
		Subsystem:  "http",
		Registerer: registerer,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))

	users := handler.NewUserHandler(deps.Users)
	products := handler.NewProductHandler(deps.Products)
	orders := handler.NewOrderHandler(deps.Orders)
	tokens := handler.NewTokenHandler(deps.Auth)

	admin := []string{domain.RoleAdmin}
	customer := []string{domain.RoleCustomer}

	table := newRouteTable([]endpoint{
		{method: http.MethodPost, path: "/api/register", handler: users.Register},
		{method: http.MethodPost, path: "/api/token", handler: tokens.Issue, auth: true, noBody: true},

		{method: http.MethodGet, path: "/api/users", handler: users.List, auth: true, roles: admin},
		{method: http.MethodGet, path: "/api/users/:id", handler: users.Get, auth: true, roles: admin},
		{method: http.MethodPut, path: "/api/users/:id", handler: users.Update, auth: true, roles: admin},
		{method: http.MethodDelete, path: "/api/users/:id", handler: users.Delete, auth: true, roles: admin},

		{method: http.MethodGet, path: "/api/products", handler: products.List, auth: true},
		{method: http.MethodPost, path: "/api/products", handler: products.Create, auth: true, roles: admin},
		{method: http.MethodGet, path: "/api/products/:id", handler: products.Get, auth: true},
		{method: http.MethodPut, path: "/api/products/:id", handler: products.Update, auth: true, roles: admin},
		{method: http.MethodDelete, path: "/api/products/:id", handler: products.Delete, auth: true, roles: admin},
		{method: http.MethodGet, path: "/api/cart", handler: products.List, auth: true},

		{method: http.MethodGet, path: "/api/orders", handler: orders.List, auth: true},
		{method: http.MethodPost, path: "/api/orders", handler: orders.Create, auth: true, roles: customer},
		{method: http.MethodGet, path: "/api/orders/:id", handler: orders.Get, auth: true},
	})
	table.register(e, deps.Auth)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Readiness).Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Static client ---
	e.Static("/", deps.PublicDir)
	e.RouteNotFound("/*", func(c echo.Context) error { return echo.ErrNotFound })

	return e
}

// routeTable groups endpoints by path so that OPTIONS and 405 answers can
// list the allowed methods.
type routeTable struct {
	endpoints []endpoint
	allowed   map[string][]string // path -> methods
	paths     []string
}

func newRouteTable(endpoints []endpoint) *routeTable {
	t := &routeTable{endpoints: endpoints, allowed: make(map[string][]string)}
	for _, ep := range endpoints {
		if _, ok := t.allowed[ep.path]; !ok {
			t.paths = append(t.paths, ep.path)
		}
		t.allowed[ep.path] = append(t.allowed[ep.path], ep.method)
	}
	return t
}

func (t *routeTable) register(e *echo.Echo, auth ports.AuthService) {
	authenticate := middleware.Authenticate(auth)

	for _, ep := range t.endpoints {
		mws := []echo.MiddlewareFunc{middleware.AcceptsJSON()}
		if !ep.noBody {
			mws = append(mws, middleware.RequireJSONBody())
		}
		if ep.auth {
			mws = append(mws, authenticate)
		}
		if len(ep.roles) > 0 {
			mws = append(mws, middleware.RBAC(ep.roles...))
		}
		e.Add(ep.method, ep.path, ep.handler, mws...)
	}

	for _, path := range t.paths {
		e.OPTIONS(path, t.options(path))
	}

	// Echo answers any route miss below /api/ here, including a known path
	// requested with an unsupported method.
	e.RouteNotFound("/api/*", t.notFound)
}

func (t *routeTable) options(path string) echo.HandlerFunc {
	methods := strings.Join(t.allowed[path], ",")
	hasID := strings.Contains(path, ":id")
	return func(c echo.Context) error {
		if hasID && !handler.ValidID(c.Param("id")) {
			return echo.NewHTTPError(http.StatusNotFound, "Not Found")
		}
		h := c.Response().Header()
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Access-Control-Allow-Headers", "Content-Type,Accept")
		h.Set("Access-Control-Max-Age", "86400")
		h.Set("Access-Control-Expose-Headers", "Content-Type,Accept")
		return c.NoContent(http.StatusNoContent)
	}
}

func (t *routeTable) notFound(c echo.Context) error {
	if methods, ok := t.match(c.Request().URL.Path); ok {
		allow := append([]string{http.MethodOptions}, methods...)
		sort.Strings(allow)
		c.Response().Header().Set(echo.HeaderAllow, strings.Join(allow, ", "))
		return echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed")
	}
	return echo.NewHTTPError(http.StatusNotFound, "Not Found")
}

// match finds the registered pattern for a concrete request path. A ":id"
// segment matches any single non-empty segment. A trailing slash is a
// different path.
func (t *routeTable) match(path string) ([]string, bool) {
	got := strings.Split(path, "/")
	for _, pattern := range t.paths {
		want := strings.Split(pattern, "/")
		if len(want) != len(got) {
			continue
		}
		matched := true
		for i := range want {
			if strings.HasPrefix(want[i], ":") && got[i] != "" {
				continue
			}
			if want[i] != got[i] {
				matched = false
				break
			}
		}
		if matched {
			return t.allowed[pattern], true
		}
	}
	return nil, false
}
