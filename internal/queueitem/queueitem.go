// Package queueitem translates the downlink queue-item between its REST
// and gRPC representations. It is the only place where the two apis'
// field naming and payload encoding conventions meet: the REST side
// carries the payload as base64 text, the gRPC side as raw bytes.
package queueitem

import (
	"encoding/base64"

	"github.com/brocaar/lorawan"
	"github.com/pkg/errors"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
	"github.com/lorahub/chirpstack-bridge/internal/apierror"
)

// Item holds a downlink queue-item in the shape callers supply it:
// REST field names with the payload as base64 text.
type Item struct {
	Confirmed bool
	Data      string
	FPort     uint32
}

// FromPayload extracts the queue-item from a caller payload of the shape
// {"queueItem": {"confirmed": bool, "data": base64, "fPort": int}}.
// Data and fPort are required, confirmed defaults to false. Validation
// happens here, before any upstream call is made.
func FromPayload(payload map[string]interface{}) (Item, error) {
	var item Item

	raw, ok := payload["queueItem"]
	if !ok {
		return item, apierror.MissingFieldError{Field: "queueItem"}
	}
	fields, ok := raw.(map[string]interface{})
	if !ok {
		return item, apierror.RequestShapeError{Field: "queueItem", Reason: "expected an object"}
	}

	if raw, ok := fields["confirmed"]; ok {
		confirmed, ok := raw.(bool)
		if !ok {
			return item, apierror.RequestShapeError{Field: "confirmed", Reason: "expected a bool"}
		}
		item.Confirmed = confirmed
	}

	raw, ok = fields["data"]
	if !ok {
		return item, apierror.MissingFieldError{Field: "data"}
	}
	data, ok := raw.(string)
	if !ok {
		return item, apierror.RequestShapeError{Field: "data", Reason: "expected a base64 string"}
	}
	item.Data = data

	raw, ok = fields["fPort"]
	if !ok {
		return item, apierror.MissingFieldError{Field: "fPort"}
	}
	fPort, err := toUint32(raw)
	if err != nil {
		return item, apierror.RequestShapeError{Field: "fPort", Reason: err.Error()}
	}
	item.FPort = fPort

	return item, nil
}

// ToProto converts the item to its gRPC shape, decoding the base64
// payload to raw bytes.
func ToProto(devEUI lorawan.EUI64, item Item) (*api.DeviceQueueItem, error) {
	b, err := DecodeData(item.Data)
	if err != nil {
		return nil, err
	}

	return &api.DeviceQueueItem{
		DevEui:    devEUI.String(),
		Confirmed: item.Confirmed,
		FPort:     item.FPort,
		Data:      b,
	}, nil
}

// FromProto converts a gRPC queue-item back to the REST representation,
// re-encoding the payload as base64 text.
func FromProto(qi *api.DeviceQueueItem) map[string]interface{} {
	return map[string]interface{}{
		"id":        qi.GetId(),
		"devEui":    qi.GetDevEui(),
		"confirmed": qi.GetConfirmed(),
		"fPort":     qi.GetFPort(),
		"data":      EncodeData(qi.GetData()),
		"isPending": qi.GetIsPending(),
	}
}

// EnvelopeV4 rewrites the item into the envelope the ChirpStack v4 REST
// api expects for enqueue: wrapped under deviceQueueItem with the dev_eui
// flattened into the item.
func EnvelopeV4(devEUI lorawan.EUI64, item Item) map[string]interface{} {
	return map[string]interface{}{
		"deviceQueueItem": map[string]interface{}{
			"dev_eui":   devEUI.String(),
			"confirmed": item.Confirmed,
			"data":      item.Data,
			"fPort":     item.FPort,
		},
	}
}

// DecodeData decodes a base64 payload to raw bytes.
func DecodeData(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, apierror.TranslationError{Err: errors.Wrap(err, "decode base64 payload error")}
	}
	return b, nil
}

// EncodeData encodes raw payload bytes as base64 text.
func EncodeData(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func toUint32(v interface{}) (uint32, error) {
	switch vv := v.(type) {
	case uint32:
		return vv, nil
	case int:
		if vv < 0 {
			return 0, errors.New("expected a non-negative integer")
		}
		return uint32(vv), nil
	case int64:
		if vv < 0 {
			return 0, errors.New("expected a non-negative integer")
		}
		return uint32(vv), nil
	case float64:
		// json numbers decode as float64
		if vv < 0 || vv != float64(uint32(vv)) {
			return 0, errors.New("expected a non-negative integer")
		}
		return uint32(vv), nil
	default:
		return 0, errors.New("expected an integer")
	}
}
