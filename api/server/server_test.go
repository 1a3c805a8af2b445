// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/vault/utils/metrictest"
)

const allowedOrigin = "https://example.com"

func newTestServer(t *testing.T) (*server, metric.Registry) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	t.Cleanup(func() {
		_ = listener.Close()
	})

	registry := metric.NewRegistry()
	s, err := New(
		log.NewNoOpLogger(),
		listener,
		[]string{allowedOrigin},
		time.Second,
		registry,
		registry,
		HTTPConfig{},
	)
	require.NoError(err)
	return s.(*server), registry
}

func serve(s *server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	return w
}

func TestAddRoute(t *testing.T) {
	require := require.New(t)

	s, registry := newTestServer(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	require.NoError(s.AddRoute(handler, "vault"))
	err := s.AddRoute(handler, "vault")
	require.ErrorIs(err, errAlreadyReserved)

	w := serve(s, httptest.NewRequest(http.MethodPost, "/ext/vault", nil))
	require.Equal(http.StatusTeapot, w.Code)

	w = serve(s, httptest.NewRequest(http.MethodPost, "/ext/other", nil))
	require.Equal(http.StatusNotFound, w.Code)

	requests, err := metrictest.Value(registry, "api_requests_total", metric.Labels{
		"method":   http.MethodPost,
		"endpoint": "vault",
	})
	require.NoError(err)
	require.InDelta(1, requests, 0)

	inflight, err := metrictest.Value(registry, "api_requests_inflight", nil)
	require.NoError(err)
	require.Zero(inflight)

	count, err := metrictest.Count(registry, "api_request_duration_seconds")
	require.NoError(err)
	require.Equal(1, count)
}

func TestMetricsEndpoint(t *testing.T) {
	require := require.New(t)

	s, _ := newTestServer(t)
	w := serve(s, httptest.NewRequest(http.MethodGet, metricsURL, nil))
	require.Equal(http.StatusOK, w.Code)
	require.Contains(w.Body.String(), "api_requests_inflight")
	require.Contains(w.Body.String(), "go_goroutines")
}

func TestCORS(t *testing.T) {
	require := require.New(t)

	s, _ := newTestServer(t)
	require.NoError(s.AddRoute(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}), "vault"))

	req := httptest.NewRequest(http.MethodPost, "/ext/vault", nil)
	req.Header.Set("Origin", allowedOrigin)
	w := serve(s, req)
	require.Equal(allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/ext/vault", nil)
	req.Header.Set("Origin", "https://elsewhere.com")
	w = serve(s, req)
	require.Empty(w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDispatchShutdown(t *testing.T) {
	require := require.New(t)

	s, _ := newTestServer(t)
	done := make(chan error, 1)
	go func() {
		done <- s.Dispatch()
	}()

	require.Eventually(func() bool {
		resp, err := http.Get("http://" + s.listener.Addr().String() + metricsURL)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(s.Shutdown())
	require.NoError(<-done)
}
