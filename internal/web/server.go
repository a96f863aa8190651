package web

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/danupratama/shopping-note/internal/domain"
	"github.com/danupratama/shopping-note/internal/schema"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "shopping-note-api"

// itemRepository is the subset of store.ItemStore that Server requires.
type itemRepository interface {
	List(ctx context.Context) ([]*domain.Item, error)
	Create(ctx context.Context, payload *schema.CreateItem) (*domain.Item, error)
	Update(ctx context.Context, id int64, patch *schema.UpdateItem) (*domain.Item, error)
	Toggle(ctx context.Context, id int64) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
}

// Options controls cross-cutting server behavior.
type Options struct {
	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string
	// ExposeErrors includes error detail in 500 responses. Leave false in
	// production-style deployments.
	ExposeErrors bool
}

type Server struct {
	items        itemRepository
	engine       *gin.Engine
	logger       *slog.Logger
	exposeErrors bool
}

func NewServer(items itemRepository, logger *slog.Logger, opts Options) *Server {
	s := &Server{
		items:        items,
		engine:       gin.New(),
		logger:       logger,
		exposeErrors: opts.ExposeErrors,
	}

	s.engine.Use(s.requestLogger(), s.recovery())
	if len(opts.CORSOrigins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)

	items := api.Group("/items")
	items.GET("", s.handleListItems)
	items.POST("", s.handleCreateItem)
	items.PUT("/:id", s.handleUpdateItem)
	items.PATCH("/:id/toggle", s.handleToggleItem)
	items.DELETE("/:id", s.handleDeleteItem)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// recovery turns an unhandled panic into the generic 500 body. Detail is
// only attached when ExposeErrors is set.
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		s.logger.Error("panic in handler", "path", c.Request.URL.Path, "error", rec)
		body := gin.H{"message": "internal server error"}
		if s.exposeErrors {
			body["detail"] = fmt.Sprint(rec)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}

// internalError reports an unexpected storage failure. The caller gets the
// generic message; the real error only goes to the log (and to the body when
// ExposeErrors is set).
func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("internal error", "path", c.Request.URL.Path, "error", err)
	body := gin.H{"message": "internal server error"}
	if s.exposeErrors {
		body["detail"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
