// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serve

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/luxfi/vault/api/server"
	"github.com/luxfi/vault/cmd/vault/devnet"
)

const (
	HTTPHostKey              = "http-host"
	HTTPPortKey              = "http-port"
	HTTPAllowedOriginsKey    = "http-allowed-origins"
	HTTPShutdownTimeoutKey   = "http-shutdown-timeout"
	HTTPReadTimeoutKey       = "http-read-timeout"
	HTTPReadHeaderTimeoutKey = "http-read-header-timeout"
	HTTPWriteTimeoutKey      = "http-write-timeout"
	HTTPIdleTimeoutKey       = "http-idle-timeout"
)

func AddFlags(flags *pflag.FlagSet) {
	devnet.AddFlags(flags)
	flags.String(HTTPHostKey, "127.0.0.1", "Address of the HTTP server")
	flags.Uint16(HTTPPortKey, 9650, "Port of the HTTP server")
	flags.StringSlice(HTTPAllowedOriginsKey, []string{"*"}, "Origins to allow on the HTTP port")
	flags.Duration(HTTPShutdownTimeoutKey, 10*time.Second, "Maximum duration to wait for existing connections to complete during shutdown")
	flags.Duration(HTTPReadTimeoutKey, 30*time.Second, "Maximum duration for reading the entire request, including the body")
	flags.Duration(HTTPReadHeaderTimeoutKey, 30*time.Second, "Maximum duration to read request headers")
	flags.Duration(HTTPWriteTimeoutKey, 30*time.Second, "Maximum duration before timing out writes of the response")
	flags.Duration(HTTPIdleTimeoutKey, 120*time.Second, "Maximum duration to wait for the next request when keep-alives are enabled")
}

type Config struct {
	Devnet          devnet.Config
	Host            string
	Port            uint16
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	HTTP            server.HTTPConfig
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	devnetConfig, err := devnet.ParseFlags(flags)
	if err != nil {
		return nil, err
	}

	host, err := flags.GetString(HTTPHostKey)
	if err != nil {
		return nil, err
	}

	port, err := flags.GetUint16(HTTPPortKey)
	if err != nil {
		return nil, err
	}

	allowedOrigins, err := flags.GetStringSlice(HTTPAllowedOriginsKey)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := flags.GetDuration(HTTPShutdownTimeoutKey)
	if err != nil {
		return nil, err
	}

	readTimeout, err := flags.GetDuration(HTTPReadTimeoutKey)
	if err != nil {
		return nil, err
	}

	readHeaderTimeout, err := flags.GetDuration(HTTPReadHeaderTimeoutKey)
	if err != nil {
		return nil, err
	}

	writeTimeout, err := flags.GetDuration(HTTPWriteTimeoutKey)
	if err != nil {
		return nil, err
	}

	idleTimeout, err := flags.GetDuration(HTTPIdleTimeoutKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		Devnet:          devnetConfig,
		Host:            host,
		Port:            port,
		AllowedOrigins:  allowedOrigins,
		ShutdownTimeout: shutdownTimeout,
		HTTP: server.HTTPConfig{
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
	}, nil
}
