// Package rest implements the JSON api transport towards ChirpStack.
// Every call owns its own connection scope: a fresh transport is created
// per request and its connections are closed when the call returns, on
// success and on error alike.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/lorahub/chirpstack-bridge/internal/apierror"
)

// Client defines the REST api client interface.
type Client interface {
	Do(ctx context.Context, method, path string, query url.Values, body interface{}) (map[string]interface{}, error)
}

type client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
}

// NewClient creates a new REST api client for the given ChirpStack base
// url. The timeout applies per call; a zero timeout disables it, in
// which case the caller controls the deadline through its context.
func NewClient(baseURL, apiKey string, timeout time.Duration) Client {
	log.WithFields(log.Fields{
		"url":     baseURL,
		"timeout": timeout,
	}).Info("rest: configuring chirpstack rest client")

	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
	}
}

// Do issues one request against the ChirpStack REST api. The path is
// relative to the /api prefix. A non-2xx response is returned as an
// UpstreamHTTPError carrying the status code and the unmodified body.
// A 2xx response with an empty body yields an empty map.
func (c *client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) (map[string]interface{}, error) {
	requestCounter(method).Inc()

	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "marshal request error")
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s/api/%s", c.baseURL, path), reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "new request error")
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Grpc-Metadata-Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	// one connection scope per call
	transport := &http.Transport{}
	defer transport.CloseIdleConnections()

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		errorCounter("transport").Inc()
		return nil, errors.Wrap(err, "http request error")
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		errorCounter("transport").Inc()
		return nil, errors.Wrap(err, "read response body error")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorCounter(fmt.Sprintf("%d", resp.StatusCode)).Inc()

		log.WithFields(log.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Error("rest: upstream returned error status")

		return nil, apierror.UpstreamHTTPError{
			Status: resp.StatusCode,
			Body:   b,
		}
	}

	if len(bytes.TrimSpace(b)) == 0 {
		return map[string]interface{}{}, nil
	}

	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, errors.Wrap(err, "unmarshal response error")
	}

	return out, nil
}
