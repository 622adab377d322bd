package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"
)

type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	httpServer *http.Server
}

func NewServer(port string, handler http.Handler, opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:           port,
			Handler:        handler,
			MaxHeaderBytes: 1 << 20,
			ReadTimeout:    opts.ReadTimeout,
			WriteTimeout:   opts.WriteTimeout,
		},
	}
}

// Run blocks until the server stops. A graceful Shutdown is not reported as an error.
func (s *Server) Run() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
