// Package router assembles the gin engine of the posting API.
package router

import (
	"net/http"
	"time"

	"github.com/erp/posting/internal/domain/shared"
	"github.com/erp/posting/internal/infrastructure/logger"
	"github.com/erp/posting/internal/interfaces/http/handler"
	"github.com/erp/posting/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router registers domain groups under a versioned API prefix
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithMiddleware adds middleware that runs on every API route but not on
// the probes registered directly on the engine
func WithMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup creates a route group for a specific domain
type DomainGroup struct {
	name   string
	prefix string
	routes []routeDefinition
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: http.MethodGet, path: path, handlers: handlers})
	return dg
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: http.MethodPost, path: path, handlers: handlers})
	return dg
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Config holds the HTTP settings the engine is built with
type Config struct {
	ServiceName    string
	Version        string
	MaxBodyBytes   int64
	CORSOrigins    []string
	IdempotencyTTL time.Duration
}

// Dependencies are the services and stores behind the routes
type Dependencies struct {
	Vouchers    handler.VoucherService
	Ledgers     handler.LedgerService
	Tenants     handler.TenantService
	DB          handler.Pinger
	Idempotency shared.IdempotencyStore
	// Meter is nil when metrics are disabled
	Meter  metric.Meter
	Logger *zap.Logger
}

// New builds the engine: global middleware, the probes and the tenant
// scoped /api/v1 routes.
func New(cfg Config, deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		logger.Recovery(log),
		middleware.Tracing(cfg.ServiceName),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)),
		middleware.HTTPMetrics(deps.Meter, log),
	)
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}

	system := handler.NewSystemHandler(cfg.Version, deps.DB)
	engine.GET("/health", system.Health)
	engine.GET("/ready", system.Ready)

	r := NewRouter(engine, WithMiddleware(
		middleware.Tenant(middleware.DefaultTenantConfig()),
		middleware.TraceAttributes(),
		middleware.Idempotency(middleware.IdempotencyConfig{
			Store:  deps.Idempotency,
			TTL:    cfg.IdempotencyTTL,
			Logger: log,
		}),
	))

	vouchers := handler.NewVoucherHandler(deps.Vouchers)
	r.Register(NewDomainGroup("vouchers", "/vouchers").
		POST("", vouchers.Create).
		GET("/:id", vouchers.Get).
		POST("/:id/post", vouchers.Post).
		POST("/:id/reverse", vouchers.Reverse).
		POST("/:id/cancel", vouchers.Cancel))

	ledgers := handler.NewLedgerHandler(deps.Ledgers)
	r.Register(NewDomainGroup("ledgers", "/ledgers").
		POST("", ledgers.Create).
		GET("", ledgers.List).
		GET("/:id", ledgers.Get).
		POST("/:id/refresh", ledgers.Refresh))

	tenants := handler.NewTenantHandler(deps.Tenants)
	r.Register(NewDomainGroup("tenant", "/tenant").
		POST("/provision", tenants.Provision).
		GET("/profile", tenants.Profile))

	r.Setup()
	return engine
}
