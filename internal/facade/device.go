package facade

import (
	"context"
	"net/url"
)

// ListDevices lists the devices of the given application.
func (f *Facade) ListDevices(ctx context.Context, applicationID string, limit, offset int) (map[string]interface{}, error) {
	return f.call(ctx, "device.list", nil, nil, nil, map[string]interface{}{
		"application_id": applicationID,
		"limit":          limit,
		"offset":         offset,
	})
}

// GetDevice returns the device with the given DevEUI.
func (f *Facade) GetDevice(ctx context.Context, devEUI string) (map[string]interface{}, error) {
	eui, err := parseEUI("devEui", devEUI)
	if err != nil {
		return nil, err
	}

	return f.call(ctx, "device.get", nil, nil, nil, map[string]interface{}{
		"dev_eui": eui.String(),
	})
}

// CreateDevice creates a new device from the given payload.
func (f *Facade) CreateDevice(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error) {
	return f.call(ctx, "device.create", nil, nil, payload, nil)
}

// UpdateDevice updates the device with the given DevEUI.
func (f *Facade) UpdateDevice(ctx context.Context, devEUI string, payload map[string]interface{}) (map[string]interface{}, error) {
	eui, err := parseEUI("devEui", devEUI)
	if err != nil {
		return nil, err
	}

	return f.call(ctx, "device.update", []interface{}{eui.String()}, nil, payload, nil)
}

// DeleteDevice deletes the device with the given DevEUI.
func (f *Facade) DeleteDevice(ctx context.Context, devEUI string) (map[string]interface{}, error) {
	eui, err := parseEUI("devEui", devEUI)
	if err != nil {
		return nil, err
	}

	return f.call(ctx, "device.delete", []interface{}{eui.String()}, nil, nil, nil)
}

// ActivateDevice activates the device with the given DevEUI (ABP).
func (f *Facade) ActivateDevice(ctx context.Context, devEUI string, payload map[string]interface{}) (map[string]interface{}, error) {
	eui, err := parseEUI("devEui", devEUI)
	if err != nil {
		return nil, err
	}

	return f.call(ctx, "device.activate", []interface{}{eui.String()}, nil, payload, nil)
}

// GetDeviceMetrics returns the metrics of the given device over the
// given interval.
func (f *Facade) GetDeviceMetrics(ctx context.Context, devEUI, start, end, aggregation string) (map[string]interface{}, error) {
	eui, err := parseEUI("devEui", devEUI)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	q.Set("aggregation", aggregation)

	return f.call(ctx, "device.metrics", []interface{}{eui.String()}, q, nil, nil)
}

// GetDeviceEvents returns the events of the given device.
func (f *Facade) GetDeviceEvents(ctx context.Context, devEUI string, limit, offset int) (map[string]interface{}, error) {
	eui, err := parseEUI("devEui", devEUI)
	if err != nil {
		return nil, err
	}

	return f.call(ctx, "device.events", []interface{}{eui.String()}, pagination(limit, offset), nil, nil)
}
