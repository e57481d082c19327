package facade

import (
	"context"
	"net/url"
)

// ListGateways lists the gateways of the given tenant. An empty tenantID
// falls back to the configured default tenant.
func (f *Facade) ListGateways(ctx context.Context, tenantID string, limit, offset int) (map[string]interface{}, error) {
	return f.call(ctx, "gateway.list", nil, nil, nil, map[string]interface{}{
		"tenant_id": tenantID,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetGateway returns the gateway with the given Gateway ID.
func (f *Facade) GetGateway(ctx context.Context, gatewayID string) (map[string]interface{}, error) {
	eui, err := parseEUI("gatewayId", gatewayID)
	if err != nil {
		return nil, err
	}

	return f.call(ctx, "gateway.get", nil, nil, nil, map[string]interface{}{
		"gateway_id": eui.String(),
	})
}

// CreateGateway creates a new gateway from the given payload.
func (f *Facade) CreateGateway(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error) {
	return f.call(ctx, "gateway.create", nil, nil, payload, nil)
}

// UpdateGateway updates the gateway with the given Gateway ID.
func (f *Facade) UpdateGateway(ctx context.Context, gatewayID string, payload map[string]interface{}) (map[string]interface{}, error) {
	eui, err := parseEUI("gatewayId", gatewayID)
	if err != nil {
		return nil, err
	}

	return f.call(ctx, "gateway.update", []interface{}{eui.String()}, nil, payload, nil)
}

// DeleteGateway deletes the gateway with the given Gateway ID.
func (f *Facade) DeleteGateway(ctx context.Context, gatewayID string) (map[string]interface{}, error) {
	eui, err := parseEUI("gatewayId", gatewayID)
	if err != nil {
		return nil, err
	}

	return f.call(ctx, "gateway.delete", []interface{}{eui.String()}, nil, nil, nil)
}

// GetGatewayStats returns the statistics of the given gateway over the
// given interval.
func (f *Facade) GetGatewayStats(ctx context.Context, gatewayID, start, end, aggregation string) (map[string]interface{}, error) {
	eui, err := parseEUI("gatewayId", gatewayID)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	q.Set("aggregation", aggregation)

	return f.call(ctx, "gateway.stats", []interface{}{eui.String()}, q, nil, nil)
}
