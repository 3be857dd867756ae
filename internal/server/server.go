package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-gig-router/internal/classifier"
	"go-gig-router/internal/state"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Checker starts an out-of-schedule full check.
type Checker interface {
	TriggerCheck()
}

type Server struct {
	addr       string
	store      *state.Store
	classifier *classifier.Classifier
	checker    Checker
	logger     *zap.Logger
	engine     *gin.Engine
}

type classifyRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func New(addr string, store *state.Store, c *classifier.Classifier, checker Checker, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		addr:       addr,
		store:      store,
		classifier: c,
		checker:    checker,
		logger:     logger,
		engine:     gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.health)
	s.engine.GET("/status", s.status)
	s.engine.GET("/filtered", s.filtered)
	s.engine.POST("/classify", s.classify)
	s.engine.POST("/check", s.check)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("status server listening", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Gig router is running!",
		"status":  "healthy",
	})
}

func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) filtered(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"filtered": s.store.Filtered()})
}

func (s *Server) classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.classifier.Evaluate(req.Title, req.Description))
}

func (s *Server) check(c *gin.Context) {
	if s.checker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "poller not running"})
		return
	}
	s.checker.TriggerCheck()
	c.JSON(http.StatusAccepted, gin.H{"status": "check scheduled"})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}
