package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tommorgenstern/gradus/internal/store"
)

type Options struct {
	Addr    string
	DataDir string
	Debug   bool

	// Listener takes precedence over Addr when set. Worker processes
	// pass the socket they inherited from the supervisor here.
	Listener net.Listener
}

// HTTP server for the study dashboard.
type Server struct {
	opts   Options
	router *echo.Echo
}

func NewServer(opts Options) *Server {
	s := &Server{
		opts:   opts,
		router: echo.New(),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	e := s.router
	e.HideBanner = true
	e.HidePort = true
	e.Debug = s.opts.Debug

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Renderer = newRenderer()
	e.HTTPErrorHandler = errorHandler

	h := &handler{store: store.New(s.opts.DataDir)}

	e.GET("/", h.dashboard)
	e.GET("/healthz", h.healthz)
	e.GET("/seed", h.seed)

	e.POST("/modules", h.addModule)
	e.POST("/courses", h.addCourse)
	e.POST("/courses/edit", h.editCourse)
	e.POST("/courses/move", h.moveCourse)
	e.POST("/courses/delete", h.deleteCourse)
	e.POST("/grades", h.recordResult)
	e.POST("/grades/clear", h.clearResult)

	api := e.Group("/api")
	api.GET("/program", h.program)
	api.GET("/metrics", h.metrics)
	api.GET("/goals", h.goalResults)
	api.GET("/config", h.getConfig)
	api.PUT("/config", h.putConfig)
}

// Serves until the listener fails or Stop is called.
func (s *Server) Start() error {
	if s.opts.Listener != nil {
		s.router.Listener = s.opts.Listener
		return s.router.Start("")
	}
	return s.router.Start(s.opts.Addr)
}

// Shuts the server down, waiting for in-flight requests until ctx
// expires.
func (s *Server) Stop(ctx context.Context) error {
	return s.router.Shutdown(ctx)
}

// Dispatches a request through the router. Used by tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Renders HTTP errors as JSON and keeps the error detail out of 5xx
// responses unless debug mode is on.
func errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := http.StatusText(code)

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else if c.Echo().Debug {
		message = err.Error()
	}

	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	}
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}
	c.JSON(code, map[string]string{"error": message})
}
