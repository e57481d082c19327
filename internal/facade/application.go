package facade

import (
	"context"
)

// ListApplications lists the applications of the given tenant. An empty
// tenantID falls back to the configured default tenant.
func (f *Facade) ListApplications(ctx context.Context, tenantID string, limit, offset int) (map[string]interface{}, error) {
	return f.call(ctx, "application.list", nil, nil, nil, map[string]interface{}{
		"tenant_id": tenantID,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetApplication returns the application with the given id.
func (f *Facade) GetApplication(ctx context.Context, id string) (map[string]interface{}, error) {
	return f.call(ctx, "application.get", nil, nil, nil, map[string]interface{}{
		"id": id,
	})
}

// CreateApplication creates a new application from the given payload.
func (f *Facade) CreateApplication(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error) {
	return f.call(ctx, "application.create", nil, nil, payload, nil)
}

// UpdateApplication updates the application with the given id.
func (f *Facade) UpdateApplication(ctx context.Context, id string, payload map[string]interface{}) (map[string]interface{}, error) {
	return f.call(ctx, "application.update", []interface{}{id}, nil, payload, nil)
}

// DeleteApplication deletes the application with the given id.
func (f *Facade) DeleteApplication(ctx context.Context, id string) (map[string]interface{}, error) {
	return f.call(ctx, "application.delete", []interface{}{id}, nil, nil, nil)
}
