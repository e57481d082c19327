package queueitem

import (
	"testing"

	"github.com/brocaar/lorawan"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/chirpstack/chirpstack/api/go/v4/api"
	"github.com/lorahub/chirpstack-bridge/internal/apierror"
)

func TestBase64RoundTrip(t *testing.T) {
	Convey("Given a set of payloads", t, func() {
		payloads := [][]byte{
			{},
			{0x01},
			{0x01, 0x02},
			{0x00, 0xff, 0x10, 0x80},
			[]byte("hello world"),
		}

		Convey("Then decode(encode(b)) == b for all payloads", func() {
			for _, b := range payloads {
				out, err := DecodeData(EncodeData(b))
				So(err, ShouldBeNil)
				So(out, ShouldResemble, b)
			}
		})

		Convey("Then encode(decode(s)) == s for all encoded payloads", func() {
			for _, b := range payloads {
				s := EncodeData(b)
				out, err := DecodeData(s)
				So(err, ShouldBeNil)
				So(EncodeData(out), ShouldEqual, s)
			}
		})
	})

	Convey("Given malformed base64 text", t, func() {
		_, err := DecodeData("not base64!!")

		Convey("Then decoding fails with a TranslationError", func() {
			So(err, ShouldHaveSameTypeAs, apierror.TranslationError{})
		})
	})
}

func TestFromPayload(t *testing.T) {
	Convey("Given a full queue-item payload", t, func() {
		payload := map[string]interface{}{
			"queueItem": map[string]interface{}{
				"confirmed": true,
				"data":      "AQI=",
				"fPort":     float64(10),
			},
		}

		Convey("Then the item is extracted", func() {
			item, err := FromPayload(payload)
			So(err, ShouldBeNil)
			So(item, ShouldResemble, Item{
				Confirmed: true,
				Data:      "AQI=",
				FPort:     10,
			})
		})
	})

	Convey("Given a payload without confirmed", t, func() {
		item, err := FromPayload(map[string]interface{}{
			"queueItem": map[string]interface{}{
				"data":  "AQI=",
				"fPort": 10,
			},
		})

		Convey("Then confirmed defaults to false", func() {
			So(err, ShouldBeNil)
			So(item.Confirmed, ShouldBeFalse)
		})
	})

	Convey("Given a payload without fPort", t, func() {
		_, err := FromPayload(map[string]interface{}{
			"queueItem": map[string]interface{}{
				"data": "AQI=",
			},
		})

		Convey("Then a MissingFieldError for fPort is returned", func() {
			So(err, ShouldResemble, apierror.MissingFieldError{Field: "fPort"})
		})
	})

	Convey("Given a payload without data", t, func() {
		_, err := FromPayload(map[string]interface{}{
			"queueItem": map[string]interface{}{
				"fPort": 10,
			},
		})

		Convey("Then a MissingFieldError for data is returned", func() {
			So(err, ShouldResemble, apierror.MissingFieldError{Field: "data"})
		})
	})

	Convey("Given a payload without queueItem wrapper", t, func() {
		_, err := FromPayload(map[string]interface{}{})

		Convey("Then a MissingFieldError for queueItem is returned", func() {
			So(err, ShouldResemble, apierror.MissingFieldError{Field: "queueItem"})
		})
	})

	Convey("Given a payload with a non-integer fPort", t, func() {
		_, err := FromPayload(map[string]interface{}{
			"queueItem": map[string]interface{}{
				"data":  "AQI=",
				"fPort": "ten",
			},
		})

		Convey("Then a RequestShapeError is returned", func() {
			So(err, ShouldHaveSameTypeAs, apierror.RequestShapeError{})
		})
	})
}

func TestToProto(t *testing.T) {
	Convey("Given a valid item", t, func() {
		devEUI := lorawan.EUI64{1, 2, 3, 4, 5, 6, 7, 8}
		item := Item{
			Confirmed: true,
			Data:      "AQI=",
			FPort:     10,
		}

		Convey("Then the gRPC item carries the decoded payload", func() {
			qi, err := ToProto(devEUI, item)
			So(err, ShouldBeNil)
			So(qi, ShouldResemble, &api.DeviceQueueItem{
				DevEui:    "0102030405060708",
				Confirmed: true,
				FPort:     10,
				Data:      []byte{0x01, 0x02},
			})
		})
	})

	Convey("Given an item with malformed base64 data", t, func() {
		_, err := ToProto(lorawan.EUI64{}, Item{Data: "not base64!!", FPort: 1})

		Convey("Then a TranslationError is returned", func() {
			So(err, ShouldHaveSameTypeAs, apierror.TranslationError{})
		})
	})
}

func TestFromProto(t *testing.T) {
	Convey("Given a gRPC queue-item", t, func() {
		qi := &api.DeviceQueueItem{
			Id:        "item-1",
			DevEui:    "0102030405060708",
			Confirmed: true,
			FPort:     10,
			Data:      []byte{0x01, 0x02},
			IsPending: true,
		}

		Convey("Then the REST shape carries the payload as base64", func() {
			So(FromProto(qi), ShouldResemble, map[string]interface{}{
				"id":        "item-1",
				"devEui":    "0102030405060708",
				"confirmed": true,
				"fPort":     uint32(10),
				"data":      "AQI=",
				"isPending": true,
			})
		})
	})
}

func TestEnvelopeV4(t *testing.T) {
	Convey("Given a valid item", t, func() {
		devEUI := lorawan.EUI64{1, 2, 3, 4, 5, 6, 7, 8}
		item := Item{
			Confirmed: true,
			Data:      "AQI=",
			FPort:     10,
		}

		Convey("Then the v4 envelope wraps under deviceQueueItem with dev_eui flattened in", func() {
			So(EnvelopeV4(devEUI, item), ShouldResemble, map[string]interface{}{
				"deviceQueueItem": map[string]interface{}{
					"dev_eui":   "0102030405060708",
					"confirmed": true,
					"data":      "AQI=",
					"fPort":     uint32(10),
				},
			})
		})
	})
}
