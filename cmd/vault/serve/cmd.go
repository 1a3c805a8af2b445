// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/spf13/cobra"

	"github.com/luxfi/vault/api/server"
	"github.com/luxfi/vault/cmd/vault/devnet"
	"github.com/luxfi/vault/utils/timer/mockable"
	"github.com/luxfi/vault/vault/api"

	avajson "github.com/luxfi/utils/json"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serves a vault on an in-memory devnet over JSON-RPC",
		RunE:  serveFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func serveFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.NewLogger("vault")
	registry := metric.NewRegistry()

	d, err := devnet.New(config.Devnet, memdb.New(), &mockable.Clock{}, logger, registry)
	if err != nil {
		return err
	}

	vaultServer, err := api.NewServer(logger, d.Engine, registry)
	if err != nil {
		return err
	}
	devnetServer := rpc.NewServer()
	devnetServer.RegisterCodec(avajson.NewCodec(), "application/json")
	devnetServer.RegisterCodec(avajson.NewCodec(), "application/json;charset=UTF-8")
	if err := devnetServer.RegisterService(devnet.NewService(logger, d), devnet.ServiceName); err != nil {
		return err
	}

	address := net.JoinHostPort(config.Host, strconv.FormatUint(uint64(config.Port), 10))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s, err := server.New(
		logger,
		listener,
		config.AllowedOrigins,
		config.ShutdownTimeout,
		registry,
		registry,
		config.HTTP,
	)
	if err != nil {
		_ = listener.Close()
		return err
	}
	if err := errors.Join(
		s.AddRoute(vaultServer, api.Name),
		s.AddRoute(devnetServer, devnet.ServiceName),
	); err != nil {
		_ = listener.Close()
		return err
	}

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(); err != nil {
			logger.Warn("failed to shut down HTTP server",
				log.Err(err),
			)
		}
	}()

	logger.Info("serving vault",
		log.String("address", listener.Addr().String()),
	)
	if err := s.Dispatch(); err != nil {
		return err
	}
	return d.CheckPool(context.WithoutCancel(ctx))
}
