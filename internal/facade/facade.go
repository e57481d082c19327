// Package facade exposes one logical operation per entity action. Each
// operation resolves its upstream endpoint through the registry,
// executes it on the transport the registry selected and returns the
// uniform map representation, regardless of which api served the call.
package facade

import (
	"context"
	"fmt"
	"net/url"

	"github.com/brocaar/lorawan"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/lorahub/chirpstack-bridge/internal/apierror"
	"github.com/lorahub/chirpstack-bridge/internal/client/grpcclient"
	"github.com/lorahub/chirpstack-bridge/internal/client/rest"
	"github.com/lorahub/chirpstack-bridge/internal/logging"
	"github.com/lorahub/chirpstack-bridge/internal/normalize"
	"github.com/lorahub/chirpstack-bridge/internal/registry"
)

// Facade wraps the two upstream transports behind the logical operation
// surface. It holds no state between calls.
type Facade struct {
	rest rest.Client
	grpc grpcclient.Client
}

// New creates a new Facade.
func New(restClient rest.Client, grpcClient grpcclient.Client) *Facade {
	return &Facade{
		rest: restClient,
		grpc: grpcClient,
	}
}

// begin resolves the operation against the registry and attaches a
// context id for log correlation.
func (f *Facade) begin(ctx context.Context, operation string) (context.Context, registry.Endpoint, error) {
	ep, ok := registry.Get(operation)
	if !ok {
		return ctx, ep, errors.Errorf("unknown operation: %s", operation)
	}

	ctx, err := logging.NewContextWithID(ctx)
	if err != nil {
		return ctx, ep, err
	}

	log.WithFields(logging.Fields(ctx)).WithFields(log.Fields{
		"operation": operation,
		"transport": ep.Transport,
	}).Debug("facade: executing operation")

	return ctx, ep, nil
}

// call executes an operation whose request needs no translation: the
// REST side takes path arguments, query parameters and a JSON body, the
// gRPC side takes a proto field map.
func (f *Facade) call(ctx context.Context, operation string, pathArgs []interface{}, query url.Values, body interface{}, fields map[string]interface{}) (map[string]interface{}, error) {
	ctx, ep, err := f.begin(ctx, operation)
	if err != nil {
		return nil, err
	}

	switch ep.Transport {
	case registry.TransportREST:
		out, err := f.rest.Do(ctx, ep.Method, fmt.Sprintf(ep.Path, pathArgs...), query, body)
		if err != nil {
			return nil, err
		}
		return normalize.Map(out), nil
	case registry.TransportGRPC:
		return f.grpc.Invoke(ctx, ep, fields)
	default:
		return nil, errors.Errorf("unknown transport: %s", ep.Transport)
	}
}

// parseEUI validates a 16 hex character EUI64 identifier (DevEUI,
// Gateway ID) before it is sent upstream.
func parseEUI(field, value string) (lorawan.EUI64, error) {
	var eui lorawan.EUI64
	if err := eui.UnmarshalText([]byte(value)); err != nil {
		return eui, apierror.RequestShapeError{
			Field:  field,
			Reason: err.Error(),
		}
	}
	return eui, nil
}

func pagination(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	return q
}
