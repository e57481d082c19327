package rest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rc = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "client_rest_request_count",
		Help: "The number of requests issued against the ChirpStack REST api (per method).",
	}, []string{"method"})

	ec = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "client_rest_error_count",
		Help: "The number of failed ChirpStack REST api requests (per status).",
	}, []string{"status"})
)

func requestCounter(method string) prometheus.Counter {
	return rc.With(prometheus.Labels{"method": method})
}

func errorCounter(status string) prometheus.Counter {
	return ec.With(prometheus.Labels{"status": status})
}
