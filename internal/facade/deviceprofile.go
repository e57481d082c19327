package facade

import (
	"context"
)

// ListDeviceProfiles lists the device-profiles of the given tenant. An
// empty tenantID falls back to the configured default tenant.
func (f *Facade) ListDeviceProfiles(ctx context.Context, tenantID string, limit, offset int) (map[string]interface{}, error) {
	return f.call(ctx, "device_profile.list", nil, nil, nil, map[string]interface{}{
		"tenant_id": tenantID,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetDeviceProfile returns the device-profile with the given id.
func (f *Facade) GetDeviceProfile(ctx context.Context, id string) (map[string]interface{}, error) {
	return f.call(ctx, "device_profile.get", nil, nil, nil, map[string]interface{}{
		"id": id,
	})
}
