package grpcclient

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/lorahub/chirpstack-bridge/internal/apierror"
)

// setFields sets the given field map onto the request message. Field
// names are the proto field names (snake_case). A name the message does
// not declare, or a value that can not be coerced to the field's kind,
// is a RequestShapeError; nothing is silently dropped.
func setFields(msg proto.Message, fields map[string]interface{}) error {
	m := msg.ProtoReflect()
	desc := m.Descriptor()

	for name, value := range fields {
		fd := desc.Fields().ByName(protoreflect.Name(name))
		if fd == nil {
			return apierror.RequestShapeError{
				Field:  name,
				Reason: fmt.Sprintf("unknown field on %s", desc.FullName()),
			}
		}

		v, err := fieldValue(fd, value)
		if err != nil {
			return apierror.RequestShapeError{
				Field:  name,
				Reason: err.Error(),
			}
		}

		m.Set(fd, v)
	}

	return nil
}

func fieldValue(fd protoreflect.FieldDescriptor, value interface{}) (protoreflect.Value, error) {
	if fd.IsList() || fd.IsMap() {
		return protoreflect.Value{}, errors.New("repeated and map fields are not supported")
	}

	switch fd.Kind() {
	case protoreflect.BoolKind:
		b, ok := value.(bool)
		if !ok {
			return protoreflect.Value{}, errors.New("expected a bool")
		}
		return protoreflect.ValueOfBool(b), nil

	case protoreflect.StringKind:
		s, ok := value.(string)
		if !ok {
			return protoreflect.Value{}, errors.New("expected a string")
		}
		return protoreflect.ValueOfString(s), nil

	case protoreflect.BytesKind:
		b, ok := value.([]byte)
		if !ok {
			return protoreflect.Value{}, errors.New("expected bytes")
		}
		return protoreflect.ValueOfBytes(b), nil

	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		n, err := toInt64(value)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return protoreflect.Value{}, errors.New("integer out of range for a 32-bit field")
		}
		return protoreflect.ValueOfInt32(int32(n)), nil

	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		n, err := toInt64(value)
		if err != nil {
			return protoreflect.Value{}, err
		}
		return protoreflect.ValueOfInt64(n), nil

	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		n, err := toInt64(value)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if n < 0 {
			return protoreflect.Value{}, errors.New("expected a non-negative integer")
		}
		if n > math.MaxUint32 {
			return protoreflect.Value{}, errors.New("integer out of range for a 32-bit field")
		}
		return protoreflect.ValueOfUint32(uint32(n)), nil

	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		n, err := toInt64(value)
		if err != nil {
			return protoreflect.Value{}, err
		}
		if n < 0 {
			return protoreflect.Value{}, errors.New("expected a non-negative integer")
		}
		return protoreflect.ValueOfUint64(uint64(n)), nil

	case protoreflect.MessageKind:
		pm, ok := value.(proto.Message)
		if !ok {
			return protoreflect.Value{}, errors.New("expected a message")
		}
		if pm.ProtoReflect().Descriptor().FullName() != fd.Message().FullName() {
			return protoreflect.Value{}, fmt.Errorf("expected message of type %s", fd.Message().FullName())
		}
		return protoreflect.ValueOfMessage(pm.ProtoReflect()), nil

	default:
		return protoreflect.Value{}, fmt.Errorf("unsupported field kind %s", fd.Kind())
	}
}

func toInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint32:
		return int64(v), nil
	case float64:
		// json numbers decode as float64
		if v != float64(int64(v)) {
			return 0, errors.New("expected an integer")
		}
		return int64(v), nil
	default:
		return 0, errors.New("expected an integer")
	}
}
