// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package server hosts HTTP handlers under /ext and serves metrics at
// /metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	baseURL              = "/ext"
	metricsURL           = "/metrics"
	maxConcurrentStreams = 64
)

var (
	_ Server = (*server)(nil)

	errAlreadyReserved = errors.New("route is either already aliased or already maps to a handle")
)

// Server maintains the HTTP router
type Server interface {
	// AddRoute registers handler at /ext/<endpoint>.
	AddRoute(handler http.Handler, endpoint string) error
	// Dispatch starts the API server
	Dispatch() error
	// Shutdown this server
	Shutdown() error
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `json:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeHeaderTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"`
}

type server struct {
	// log this server writes to
	log log.Logger

	shutdownTimeout time.Duration

	metrics *serverMetrics

	lock   sync.Mutex
	router *mux.Router
	routes map[string]struct{}

	srv *http.Server

	// Listener used to serve traffic
	listener net.Listener
}

// New returns an instance of a Server. Request metrics are registered with
// registerer. Everything in gatherer is exposed at /metrics together with the
// Go runtime and process metrics.
func New(
	log log.Logger,
	listener net.Listener,
	allowedOrigins []string,
	shutdownTimeout time.Duration,
	registerer metric.Registerer,
	gatherer metric.Gatherer,
	httpConfig HTTPConfig,
) (Server, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}

	metricsGatherer, err := exposition(gatherer)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Handle(metricsURL, promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))

	handler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
	}).Handler(router)

	httpServer := &http.Server{
		Handler: h2c.NewHandler(
			handler,
			&http2.Server{
				MaxConcurrentStreams: maxConcurrentStreams,
			}),
		ReadTimeout:       httpConfig.ReadTimeout,
		ReadHeaderTimeout: httpConfig.ReadHeaderTimeout,
		WriteTimeout:      httpConfig.WriteTimeout,
		IdleTimeout:       httpConfig.IdleTimeout,
	}

	log.Info("API created with allowed origins: " + strings.Join(allowedOrigins, ","))

	return &server{
		log:             log,
		shutdownTimeout: shutdownTimeout,
		metrics:         m,
		router:          router,
		routes:          make(map[string]struct{}),
		srv:             httpServer,
		listener:        listener,
	}, nil
}

func (s *server) Dispatch() error {
	err := s.srv.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *server) AddRoute(handler http.Handler, endpoint string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	url := fmt.Sprintf("%s/%s", baseURL, endpoint)
	if _, exists := s.routes[url]; exists {
		return fmt.Errorf("%w: %s", errAlreadyReserved, url)
	}
	s.log.Info("adding route",
		log.String("url", url),
	)

	s.routes[url] = struct{}{}
	s.router.Handle(url, s.metrics.wrapHandler(endpoint, handler))
	return nil
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	err := s.srv.Shutdown(ctx)
	cancel()

	// If shutdown times out, make sure the server is still shutdown.
	_ = s.srv.Close()
	return err
}
