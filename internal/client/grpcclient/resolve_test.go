package grpcclient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveAddress(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		server string
		useTLS bool
	}{
		{
			name:   "https without port appends secure default port and selects tls",
			url:    "https://chirpstack.example.com",
			server: "chirpstack.example.com:443",
			useTLS: true,
		},
		{
			name:   "http without port appends default port",
			url:    "http://chirpstack.example.com",
			server: "chirpstack.example.com:8080",
			useTLS: false,
		},
		{
			name:   "http with explicit port",
			url:    "http://10.0.0.1:8080",
			server: "10.0.0.1:8080",
			useTLS: false,
		},
		{
			name:   "port 443 selects tls",
			url:    "http://chirpstack.example.com:443",
			server: "chirpstack.example.com:443",
			useTLS: true,
		},
		{
			name:   "trailing slash is stripped",
			url:    "http://chirpstack.example.com:8080/",
			server: "chirpstack.example.com:8080",
			useTLS: false,
		},
		{
			name:   "no scheme",
			url:    "chirpstack.example.com:1234",
			server: "chirpstack.example.com:1234",
			useTLS: false,
		},
		{
			// the substring heuristic: 443 anywhere in the address
			// selects tls, also when it is not the port
			name:   "host containing 443 selects tls",
			url:    "http://host443.example.com:8080",
			server: "host443.example.com:8080",
			useTLS: true,
		},
	}

	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			assert := require.New(t)

			server, useTLS := ResolveAddress(tst.url)
			assert.Equal(tst.server, server)
			assert.Equal(tst.useTLS, useTLS)
		})
	}
}
