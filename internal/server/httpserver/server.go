// Package httpserver is the HTTP transport: GraphQL at /graphql plus /health
// and /metrics, served by gin.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gqlauth/internal/logging"
	"github.com/dmitrijs2005/gqlauth/internal/server/auth"
	"github.com/dmitrijs2005/gqlauth/internal/server/graph"
	"github.com/dmitrijs2005/gqlauth/internal/server/metrics"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Authenticator resolves the Authorization header of a request.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) auth.Identity
}

// Pinger reports database reachability. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options tune request handling.
//
//   - StrictAuth: a request whose bearer token fails verification is rejected
//     with 401 before any field runs. When false, only gated fields fail.
type Options struct {
	StrictAuth bool
}

type Server struct {
	address  string
	engine   *gin.Engine
	executor *graph.Executor
	authn    Authenticator
	db       Pinger
	metrics  *metrics.Metrics
	logger   logging.Logger
	opts     Options
}

func New(address string, exec *graph.Executor, authn Authenticator, db Pinger, m *metrics.Metrics, l logging.Logger, opts Options) *Server {
	s := &Server{
		address:  address,
		executor: exec,
		authn:    authn,
		db:       db,
		metrics:  m,
		logger:   l.With("module", "http_server"),
		opts:     opts,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.observe())

	r.POST("/graphql", s.handleGraphQL)
	r.GET("/graphql", s.handleGraphQL)
	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	return r
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
