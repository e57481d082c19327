package grpcclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rc = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "client_grpc_rpc_count",
		Help: "The number of RPCs issued against the ChirpStack gRPC api (per rpc).",
	}, []string{"rpc"})

	ec = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "client_grpc_error_count",
		Help: "The number of failed ChirpStack gRPC api RPCs (per status code).",
	}, []string{"code"})
)

func rpcCounter(rpc string) prometheus.Counter {
	return rc.With(prometheus.Labels{"rpc": rpc})
}

func rpcErrorCounter(code string) prometheus.Counter {
	return ec.With(prometheus.Labels{"code": code})
}
