package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"unfair_dao/contract"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CallerHeader carries the base58 wallet that signs for a call. It is
// trusted as is.
const CallerHeader = "X-Caller"

type Options struct {
	Addr        string
	CORSOrigins []string
	Logger      *slog.Logger
}

type Server struct {
	dao    *contract.Contract
	logger *slog.Logger
	engine *gin.Engine
	srv    *http.Server
}

func New(dao *contract.Contract, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{dao: dao, logger: logger, engine: r}
	attachRoutes(r, s, opts.CORSOrigins)
	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func attachRoutes(r *gin.Engine, s *Server, origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", CallerHeader},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	v1 := r.Group("/v1")
	{
		v1.POST("/call/:action", s.call)
		v1.GET("/members", s.listMembers)
		v1.GET("/members/:wallet", s.getMember)
		v1.GET("/leaderboard", s.leaderboard)
		v1.GET("/proposals", s.listProposals)
		v1.GET("/proposals/:key", s.getProposal)
		v1.GET("/votes", s.listVotes)
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
