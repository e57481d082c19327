package cmd

import (
	"os"
	"text/template"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lorahub/chirpstack-bridge/internal/config"
)

const configTemplate = `[general]
# Log level
#
# debug=5, info=4, warning=3, error=2, fatal=1, panic=0
log_level={{ .General.LogLevel }}


# Bridge api settings.
[bridge]
# ip:port on which the bridge HTTP api listens.
bind="{{ .Bridge.Bind }}"


# ChirpStack upstream settings.
[chirpstack]
# ChirpStack base url.
#
# Used for the REST api. The gRPC host:port is derived from it unless
# grpc_server is set.
url="{{ .ChirpStack.URL }}"

# gRPC host:port override (optional).
grpc_server="{{ .ChirpStack.GRPCServer }}"

# ChirpStack api token.
api_key="{{ .ChirpStack.APIKey }}"

# Default tenant id.
#
# Tenant-scoped list calls use this tenant when the caller does not
# supply one.
tenant_id="{{ .ChirpStack.TenantID }}"

# REST request timeout.
request_timeout="{{ .ChirpStack.RequestTimeout }}"


# Monitoring settings.
[monitoring]
# ip:port on which the monitoring endpoint listens (optional).
bind="{{ .Monitoring.Bind }}"

# Prometheus metrics endpoint.
prometheus_endpoint={{ .Monitoring.PrometheusEndpoint }}

# Healthcheck endpoint.
healthcheck_endpoint={{ .Monitoring.HealthcheckEndpoint }}
`

var configCmd = &cobra.Command{
	Use:   "configfile",
	Short: "Print the ChirpStack Bridge configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := template.Must(template.New("config").Parse(configTemplate))
		err := t.Execute(os.Stdout, &config.C)
		if err != nil {
			return errors.Wrap(err, "execute config template error")
		}
		return nil
	},
}
