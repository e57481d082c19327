// Package registry holds the static mapping from logical operation names
// to upstream endpoints. Per operation it declares which transport serves
// it and how the upstream identifies it (HTTP method + path template for
// REST, full method name + message prototypes for gRPC).
package registry

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
)

// Transport identifies the upstream transport serving an operation.
type Transport string

// Available transports.
const (
	TransportREST Transport = "rest"
	TransportGRPC Transport = "grpc"
)

// Endpoint describes how one logical operation maps onto the upstream.
// REST fields and gRPC fields are both populated when the upstream
// implements the operation on both apis; Transport selects the one used.
type Endpoint struct {
	Transport Transport

	// REST upstream, relative to the /api prefix. Path is a fmt
	// template taking the path identifiers in order.
	Method string
	Path   string

	// gRPC upstream. Request and Response return fresh message
	// prototypes for the RPC.
	RPC          string
	Request      func() proto.Message
	Response     func() proto.Message
	TenantScoped bool
}

var endpoints = map[string]Endpoint{
	"application.list": {
		Transport:    TransportGRPC,
		Method:       "GET",
		Path:         "applications",
		RPC:          "/api.ApplicationService/List",
		Request:      func() proto.Message { return &api.ListApplicationsRequest{} },
		Response:     func() proto.Message { return &api.ListApplicationsResponse{} },
		TenantScoped: true,
	},
	"application.get": {
		Transport: TransportGRPC,
		Method:    "GET",
		Path:      "applications/%s",
		RPC:       "/api.ApplicationService/Get",
		Request:   func() proto.Message { return &api.GetApplicationRequest{} },
		Response:  func() proto.Message { return &api.GetApplicationResponse{} },
	},
	"application.create": {
		Transport: TransportREST,
		Method:    "POST",
		Path:      "applications",
	},
	"application.update": {
		Transport: TransportREST,
		Method:    "PUT",
		Path:      "applications/%s",
	},
	"application.delete": {
		Transport: TransportREST,
		Method:    "DELETE",
		Path:      "applications/%s",
	},

	"device.list": {
		Transport: TransportGRPC,
		Method:    "GET",
		Path:      "devices",
		RPC:       "/api.DeviceService/List",
		Request:   func() proto.Message { return &api.ListDevicesRequest{} },
		Response:  func() proto.Message { return &api.ListDevicesResponse{} },
	},
	"device.get": {
		Transport: TransportGRPC,
		Method:    "GET",
		Path:      "devices/%s",
		RPC:       "/api.DeviceService/Get",
		Request:   func() proto.Message { return &api.GetDeviceRequest{} },
		Response:  func() proto.Message { return &api.GetDeviceResponse{} },
	},
	"device.create": {
		Transport: TransportREST,
		Method:    "POST",
		Path:      "devices",
	},
	"device.update": {
		Transport: TransportREST,
		Method:    "PUT",
		Path:      "devices/%s",
	},
	"device.delete": {
		Transport: TransportREST,
		Method:    "DELETE",
		Path:      "devices/%s",
	},
	"device.activate": {
		Transport: TransportREST,
		Method:    "POST",
		Path:      "devices/%s/activate",
	},
	"device.metrics": {
		Transport: TransportREST,
		Method:    "GET",
		Path:      "devices/%s/metrics",
	},
	"device.events": {
		Transport: TransportREST,
		Method:    "GET",
		Path:      "devices/%s/events",
	},

	"gateway.list": {
		Transport:    TransportGRPC,
		Method:       "GET",
		Path:         "gateways",
		RPC:          "/api.GatewayService/List",
		Request:      func() proto.Message { return &api.ListGatewaysRequest{} },
		Response:     func() proto.Message { return &api.ListGatewaysResponse{} },
		TenantScoped: true,
	},
	"gateway.get": {
		Transport: TransportGRPC,
		Method:    "GET",
		Path:      "gateways/%s",
		RPC:       "/api.GatewayService/Get",
		Request:   func() proto.Message { return &api.GetGatewayRequest{} },
		Response:  func() proto.Message { return &api.GetGatewayResponse{} },
	},
	"gateway.create": {
		Transport: TransportREST,
		Method:    "POST",
		Path:      "gateways",
	},
	"gateway.update": {
		Transport: TransportREST,
		Method:    "PUT",
		Path:      "gateways/%s",
	},
	"gateway.delete": {
		Transport: TransportREST,
		Method:    "DELETE",
		Path:      "gateways/%s",
	},
	"gateway.stats": {
		Transport: TransportREST,
		Method:    "GET",
		Path:      "gateways/%s/stats",
	},

	"device_profile.list": {
		Transport:    TransportGRPC,
		Method:       "GET",
		Path:         "device-profiles",
		RPC:          "/api.DeviceProfileService/List",
		Request:      func() proto.Message { return &api.ListDeviceProfilesRequest{} },
		Response:     func() proto.Message { return &api.ListDeviceProfilesResponse{} },
		TenantScoped: true,
	},
	"device_profile.get": {
		Transport: TransportGRPC,
		Method:    "GET",
		Path:      "device-profiles/%s",
		RPC:       "/api.DeviceProfileService/Get",
		Request:   func() proto.Message { return &api.GetDeviceProfileRequest{} },
		Response:  func() proto.Message { return &api.GetDeviceProfileResponse{} },
	},

	"queue.enqueue": {
		Transport: TransportGRPC,
		Method:    "POST",
		Path:      "devices/%s/queue",
		RPC:       "/api.DeviceService/Enqueue",
		Request:   func() proto.Message { return &api.EnqueueDeviceQueueItemRequest{} },
		Response:  func() proto.Message { return &api.EnqueueDeviceQueueItemResponse{} },
	},
	"queue.list": {
		Transport: TransportGRPC,
		Method:    "GET",
		Path:      "devices/%s/queue",
		RPC:       "/api.DeviceService/GetQueueItems",
		Request:   func() proto.Message { return &api.GetDeviceQueueItemsRequest{} },
		Response:  func() proto.Message { return &api.GetDeviceQueueItemsResponse{} },
	},
	"queue.flush": {
		Transport: TransportGRPC,
		Method:    "DELETE",
		Path:      "devices/%s/queue",
		RPC:       "/api.DeviceService/FlushQueue",
		Request:   func() proto.Message { return &api.FlushDeviceQueueRequest{} },
		Response:  func() proto.Message { return &emptypb.Empty{} },
	},
}

// Get returns the endpoint for the given logical operation name.
func Get(operation string) (Endpoint, bool) {
	ep, ok := endpoints[operation]
	return ep, ok
}

// Operations returns the names of all registered operations.
func Operations() []string {
	out := make([]string, 0, len(endpoints))
	for k := range endpoints {
		out = append(out, k)
	}
	return out
}
