// Package grpcclient implements the gRPC api transport towards
// ChirpStack. Each invocation opens its own channel and closes it before
// returning, so no call observes connection state left by a prior call.
package grpcclient

import (
	"context"
	"crypto/tls"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/lorahub/chirpstack-bridge/internal/apierror"
	"github.com/lorahub/chirpstack-bridge/internal/normalize"
	"github.com/lorahub/chirpstack-bridge/internal/registry"
)

// Client defines the gRPC api client interface.
type Client interface {
	Invoke(ctx context.Context, ep registry.Endpoint, fields map[string]interface{}) (map[string]interface{}, error)
}

type client struct {
	server          string
	useTLS          bool
	apiKey          string
	defaultTenantID string

	// extra dial options, set by tests to observe the channel
	dialOpts []grpc.DialOption
}

// NewClient creates a new gRPC api client. The host:port and transport
// security are derived from the ChirpStack url; serverOverride, when
// set, takes precedence over the derived address.
func NewClient(chirpstackURL, serverOverride, apiKey, defaultTenantID string) Client {
	server, useTLS := ResolveAddress(chirpstackURL)
	if serverOverride != "" {
		server, useTLS = ResolveAddress(serverOverride)
	}

	log.WithFields(log.Fields{
		"server": server,
		"tls":    useTLS,
	}).Info("grpcclient: configuring chirpstack grpc client")

	return &client{
		server:          server,
		useTLS:          useTLS,
		apiKey:          apiKey,
		defaultTenantID: defaultTenantID,
	}
}

// Invoke builds the request message for the given endpoint from the
// supplied field map, issues the RPC with per-call bearer metadata and
// returns the normalized response map. The channel opened for the call
// is closed before Invoke returns, also when the RPC failed.
func (c *client) Invoke(ctx context.Context, ep registry.Endpoint, fields map[string]interface{}) (map[string]interface{}, error) {
	if ep.RPC == "" || ep.Request == nil || ep.Response == nil {
		return nil, errors.New("endpoint has no grpc upstream")
	}

	req := ep.Request()
	if err := setFields(req, fields); err != nil {
		return nil, err
	}

	if ep.TenantScoped {
		// fall back to the configured default tenant. When that is
		// empty too the request proceeds with an empty tenant id and
		// the upstream decides whether that is acceptable.
		m := req.ProtoReflect()
		if fd := m.Descriptor().Fields().ByName("tenant_id"); fd != nil {
			if m.Get(fd).String() == "" {
				m.Set(fd, protoreflect.ValueOfString(c.defaultTenantID))
			}
		}
	}

	conn, err := c.dial(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "dial chirpstack api error")
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.WithError(err).Error("grpcclient: close channel error")
		}
	}()

	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.apiKey)

	rpcCounter(ep.RPC).Inc()

	resp := ep.Response()
	if err := conn.Invoke(ctx, ep.RPC, req, resp); err != nil {
		st := status.Convert(err)
		rpcErrorCounter(st.Code().String()).Inc()

		log.WithFields(log.Fields{
			"rpc":  ep.RPC,
			"code": st.Code(),
		}).Error("grpcclient: rpc error")

		return nil, apierror.UpstreamRPCError{
			Code:    st.Code(),
			Message: st.Message(),
		}
	}

	return normalize.Message(resp)
}

func (c *client) dial(ctx context.Context) (*grpc.ClientConn, error) {
	opts := append([]grpc.DialOption{}, c.dialOpts...)

	if c.useTLS {
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{})))
	} else {
		opts = append(opts, grpc.WithInsecure())
	}

	return grpc.DialContext(ctx, c.server, opts...)
}
