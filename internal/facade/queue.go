package facade

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/lorahub/chirpstack-bridge/internal/normalize"
	"github.com/lorahub/chirpstack-bridge/internal/queueitem"
	"github.com/lorahub/chirpstack-bridge/internal/registry"
)

// EnqueueDownlink enqueues a downlink message on the device queue. The
// payload carries the caller shape {"queueItem": {confirmed, data,
// fPort}} and is validated before any upstream call: a missing data or
// fPort field fails here. The item is translated to the shape of the
// transport serving the operation: raw payload bytes on gRPC, the v4
// deviceQueueItem envelope on REST.
func (f *Facade) EnqueueDownlink(ctx context.Context, devEUI string, payload map[string]interface{}) (map[string]interface{}, error) {
	eui, err := parseEUI("devEui", devEUI)
	if err != nil {
		return nil, err
	}

	item, err := queueitem.FromPayload(payload)
	if err != nil {
		return nil, err
	}

	ctx, ep, err := f.begin(ctx, "queue.enqueue")
	if err != nil {
		return nil, err
	}

	switch ep.Transport {
	case registry.TransportREST:
		out, err := f.rest.Do(ctx, ep.Method, fmt.Sprintf(ep.Path, eui.String()), nil, queueitem.EnvelopeV4(eui, item))
		if err != nil {
			return nil, err
		}
		return normalize.Map(out), nil
	case registry.TransportGRPC:
		qi, err := queueitem.ToProto(eui, item)
		if err != nil {
			return nil, err
		}
		return f.grpc.Invoke(ctx, ep, map[string]interface{}{
			"queue_item": qi,
		})
	default:
		return nil, errors.Errorf("unknown transport: %s", ep.Transport)
	}
}

// ListDownlinkQueue returns the pending downlink queue of the device.
func (f *Facade) ListDownlinkQueue(ctx context.Context, devEUI string) (map[string]interface{}, error) {
	eui, err := parseEUI("devEui", devEUI)
	if err != nil {
		return nil, err
	}

	return f.call(ctx, "queue.list", []interface{}{eui.String()}, nil, nil, map[string]interface{}{
		"dev_eui": eui.String(),
	})
}

// FlushDownlinkQueue removes all pending downlink messages from the
// device queue.
func (f *Facade) FlushDownlinkQueue(ctx context.Context, devEUI string) (map[string]interface{}, error) {
	eui, err := parseEUI("devEui", devEUI)
	if err != nil {
		return nil, err
	}

	return f.call(ctx, "queue.flush", []interface{}{eui.String()}, nil, nil, map[string]interface{}{
		"dev_eui": eui.String(),
	})
}
