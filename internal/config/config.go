package config

import (
	"time"
)

// Version defines the ChirpStack Bridge version.
var Version string

// Config defines the configuration structure.
type Config struct {
	General struct {
		LogLevel int `mapstructure:"log_level"`
	} `mapstructure:"general"`

	Bridge struct {
		// Bind holds the ip:port on which the bridge HTTP api listens.
		Bind string `mapstructure:"bind"`
	} `mapstructure:"bridge"`

	ChirpStack struct {
		// URL holds the ChirpStack base url. It is used for the REST api
		// and, unless GRPCServer is set, to derive the gRPC host:port.
		URL string `mapstructure:"url"`

		// GRPCServer optionally overrides the gRPC host:port derived
		// from URL.
		GRPCServer string `mapstructure:"grpc_server"`

		// APIKey holds the ChirpStack api token (bearer).
		APIKey string `mapstructure:"api_key"`

		// TenantID holds the default tenant id used by tenant-scoped
		// list calls when the caller does not supply one.
		TenantID string `mapstructure:"tenant_id"`

		// RequestTimeout holds the timeout applied to REST calls.
		RequestTimeout time.Duration `mapstructure:"request_timeout"`
	} `mapstructure:"chirpstack"`

	Monitoring struct {
		Bind                string `mapstructure:"bind"`
		PrometheusEndpoint  bool   `mapstructure:"prometheus_endpoint"`
		HealthcheckEndpoint bool   `mapstructure:"healthcheck_endpoint"`
	} `mapstructure:"monitoring"`
}

// C holds the global configuration.
var C Config
