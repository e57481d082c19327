// Package normalize converts transport-native responses into the uniform
// nested-map representation returned to callers.
package normalize

import (
	"encoding/json"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Message converts a response message into the map shape shared with the
// REST api: camelCased field names and bytes fields rendered as base64
// text. Unpopulated fields are emitted so that list responses always
// carry result and totalCount, also when empty.
func Message(msg proto.Message) (map[string]interface{}, error) {
	b, err := protojson.MarshalOptions{EmitUnpopulated: true}.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "marshal response message error")
	}

	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, errors.Wrap(err, "unmarshal response json error")
	}

	return out, nil
}

// Map passes a REST response mapping through unchanged. A nil map is
// normalized to an empty one so callers always receive a usable map.
func Map(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
