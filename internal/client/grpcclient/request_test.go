package grpcclient

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
	"github.com/lorahub/chirpstack-bridge/internal/apierror"
)

func TestSetFields(t *testing.T) {
	t.Run("scalar fields", func(t *testing.T) {
		assert := require.New(t)

		req := &api.ListApplicationsRequest{}
		assert.NoError(setFields(req, map[string]interface{}{
			"tenant_id": "tenant-1",
			"limit":     10,
			"offset":    20,
		}))
		assert.Equal("tenant-1", req.TenantId)
		assert.EqualValues(10, req.Limit)
		assert.EqualValues(20, req.Offset)
	})

	t.Run("json decoded numbers", func(t *testing.T) {
		assert := require.New(t)

		req := &api.ListApplicationsRequest{}
		assert.NoError(setFields(req, map[string]interface{}{
			"limit": float64(25),
		}))
		assert.EqualValues(25, req.Limit)
	})

	t.Run("unknown field", func(t *testing.T) {
		assert := require.New(t)

		err := setFields(&api.GetDeviceRequest{}, map[string]interface{}{
			"device_eui": "0102030405060708",
		})

		var shapeErr apierror.RequestShapeError
		assert.ErrorAs(err, &shapeErr)
		assert.Equal("device_eui", shapeErr.Field)
	})

	t.Run("wrong type", func(t *testing.T) {
		assert := require.New(t)

		err := setFields(&api.GetDeviceRequest{}, map[string]interface{}{
			"dev_eui": 42,
		})

		var shapeErr apierror.RequestShapeError
		assert.ErrorAs(err, &shapeErr)
		assert.Equal("dev_eui", shapeErr.Field)
	})

	t.Run("negative value on unsigned field", func(t *testing.T) {
		assert := require.New(t)

		err := setFields(&api.ListApplicationsRequest{}, map[string]interface{}{
			"limit": -1,
		})

		var shapeErr apierror.RequestShapeError
		assert.ErrorAs(err, &shapeErr)
	})

	t.Run("out of range value on unsigned 32-bit field", func(t *testing.T) {
		assert := require.New(t)

		// 2^32 + 5; must not be truncated to 5
		err := setFields(&api.ListApplicationsRequest{}, map[string]interface{}{
			"limit": float64(4294967301),
		})

		var shapeErr apierror.RequestShapeError
		assert.ErrorAs(err, &shapeErr)
		assert.Equal("limit", shapeErr.Field)
	})

	t.Run("out of range value on signed 32-bit field", func(t *testing.T) {
		assert := require.New(t)

		for _, v := range []int64{math.MaxInt32 + 1, math.MinInt32 - 1} {
			err := setFields(&durationpb.Duration{}, map[string]interface{}{
				"nanos": v,
			})

			var shapeErr apierror.RequestShapeError
			assert.ErrorAs(err, &shapeErr)
			assert.Equal("nanos", shapeErr.Field)
		}
	})

	t.Run("message field", func(t *testing.T) {
		assert := require.New(t)

		req := &api.EnqueueDeviceQueueItemRequest{}
		assert.NoError(setFields(req, map[string]interface{}{
			"queue_item": &api.DeviceQueueItem{
				DevEui:    "0102030405060708",
				Confirmed: true,
				FPort:     10,
				Data:      []byte{0x01, 0x02},
			},
		}))
		assert.Equal("0102030405060708", req.QueueItem.DevEui)
		assert.True(req.QueueItem.Confirmed)
		assert.EqualValues(10, req.QueueItem.FPort)
		assert.Equal([]byte{0x01, 0x02}, req.QueueItem.Data)
	})

	t.Run("message type mismatch", func(t *testing.T) {
		assert := require.New(t)

		err := setFields(&api.EnqueueDeviceQueueItemRequest{}, map[string]interface{}{
			"queue_item": &api.Device{},
		})

		var shapeErr apierror.RequestShapeError
		assert.ErrorAs(err, &shapeErr)
	})
}
