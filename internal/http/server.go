package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Server struct {
	Engine *gin.Engine
	log    *logger.Logger
}

func NewServer(log *logger.Logger, cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg), log: log}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.log.Info("HTTP server shutting down")
	return srv.Shutdown(shutdownCtx)
}
