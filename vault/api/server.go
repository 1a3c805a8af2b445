// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api serves a vault over JSON-RPC.
package api

import (
	"errors"
	"fmt"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/vault/vault"

	avajson "github.com/luxfi/utils/json"
)

// Name is the RPC service name. Methods are called as "vault.<method>" with
// a lowercase first letter.
const Name = "vault"

var errNotRegistry = errors.New("registerer must implement metric.Registry")

// NewServer returns a JSON-RPC server for engine that records request
// metrics with registerer.
func NewServer(log log.Logger, engine *vault.Engine, registerer metric.Registerer) (*rpc.Server, error) {
	registry, ok := registerer.(metric.Registry)
	if !ok {
		return nil, errNotRegistry
	}
	interceptor, err := metric.NewAPIInterceptor(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register api metrics: %w", err)
	}

	server := rpc.NewServer()
	server.RegisterCodec(avajson.NewCodec(), "application/json")
	server.RegisterCodec(avajson.NewCodec(), "application/json;charset=UTF-8")
	server.RegisterInterceptFunc(interceptor.InterceptRequest)
	server.RegisterAfterFunc(interceptor.AfterRequest)
	if err := server.RegisterService(NewService(log, engine), Name); err != nil {
		return nil, err
	}
	return server, nil
}
