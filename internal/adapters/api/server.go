// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP and WebSocket traffic and drive the widget controller
package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherwidget.app/internal/adapters/render"
	"weatherwidget.app/internal/core/widget"
	"weatherwidget.app/internal/ports"
	"weatherwidget.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port           int
	AllowedOrigins []string
	DefaultCity    string
}

// HTTPServerAdapter implements the HTTP surface using Gin framework
type HTTPServerAdapter struct {
	router         *gin.Engine
	handler        http.Handler
	config         ServerConfig
	weatherUseCase widget.WeatherLookup
	renderer       *render.Renderer
	healthChecker  ports.SystemHealthChecker
	sessionMetrics ports.SessionMetrics
	gatherer       prometheus.Gatherer
	logger         ports.Logger
	upgrader       websocket.Upgrader

	// sessions live past the request context, so they hang off a server-wide one
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	sessions map[string]*session
	wg       sync.WaitGroup
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config         ServerConfig
	WeatherUseCase widget.WeatherLookup
	Renderer       *render.Renderer
	HealthChecker  ports.SystemHealthChecker
	SessionMetrics ports.SessionMetrics
	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil
	Gatherer prometheus.Gatherer
	Logger   ports.Logger
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.Renderer == nil {
		return errors.NewValidationError("renderer is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.SessionMetrics == nil {
		return errors.NewValidationError("session metrics is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		router.Use(gin.Logger())
	}

	ctx, cancel := context.WithCancel(context.Background())

	server := &HTTPServerAdapter{
		router:         router,
		config:         opts.Config,
		weatherUseCase: opts.WeatherUseCase,
		renderer:       opts.Renderer,
		healthChecker:  opts.HealthChecker,
		sessionMetrics: opts.SessionMetrics,
		gatherer:       gatherer,
		logger:         opts.Logger,
		ctx:            ctx,
		cancel:         cancel,
		sessions:       make(map[string]*session),
	}
	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}

	server.setupRoutes()
	server.handler = cors.Handler(cors.Options{
		AllowedOrigins: opts.Config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(router)

	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	s.router.GET("/", s.getPage)
	s.router.GET("/ws", s.handleWebSocket)
	s.router.GET(render.AssetPathPrefix+":name", s.getAsset)

	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
	}

	s.router.GET("/health", s.getHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

// Handler returns the router wrapped with CORS handling
func (s *HTTPServerAdapter) Handler() http.Handler {
	return s.handler
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

// Shutdown closes every live widget session and waits for them to finish.
// http.Server.Shutdown does not track hijacked connections, so this must be
// called alongside it.
func (s *HTTPServerAdapter) Shutdown(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ActiveSessions returns the number of connected live widget sessions
func (s *HTTPServerAdapter) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *HTTPServerAdapter) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (s *HTTPServerAdapter) newController(query, sessionID string, mounted bool) (*widget.Controller, error) {
	return widget.NewController(widget.Options{
		Lookup:       s.weatherUseCase,
		Logger:       s.logger,
		Metrics:      s.sessionMetrics,
		DefaultQuery: query,
		SessionID:    sessionID,
		Mounted:      mounted,
	})
}

// initialQuery is the city query parameter when present, else the default city
func (s *HTTPServerAdapter) initialQuery(c *gin.Context) string {
	if city, ok := c.GetQuery("city"); ok {
		return city
	}
	return s.config.DefaultCity
}
