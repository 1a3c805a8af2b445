// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/vault/utils/metrictest"
)

func TestMetricsRegistrationFailure(t *testing.T) {
	require := require.New(t)

	registry := metric.NewRegistry()
	_, err := newMetrics(registry)
	require.NoError(err)

	_, err = newMetrics(registry)
	require.Error(err)
}

func TestWrapHandler(t *testing.T) {
	require := require.New(t)

	registry := metric.NewRegistry()
	m, err := newMetrics(registry)
	require.NoError(err)

	value := func(name string, labels metric.Labels) float64 {
		v, err := metrictest.Value(registry, name, labels)
		require.NoError(err)
		return v
	}

	var inflight float64
	handler := m.wrapHandler("vault", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		inflight = value("api_requests_inflight", nil)
	}))
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPost} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, "/", nil))
	}

	require.InDelta(1, inflight, 0)
	require.Zero(value("api_requests_inflight", nil))
	require.InDelta(1, value("api_requests_total", metric.Labels{"method": http.MethodGet, "endpoint": "vault"}), 0)
	require.InDelta(2, value("api_requests_total", metric.Labels{"method": http.MethodPost, "endpoint": "vault"}), 0)
}
