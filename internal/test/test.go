package test

import (
	log "github.com/sirupsen/logrus"

	"github.com/lorahub/chirpstack-bridge/internal/config"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// GetConfig returns the test configuration.
func GetConfig() config.Config {
	var c config.Config

	c.ChirpStack.URL = "http://localhost:8080"
	c.ChirpStack.APIKey = "test-api-key"
	c.ChirpStack.TenantID = "52f14cd4-c6f1-4fbd-8f87-4025e1d49242"

	return c
}
