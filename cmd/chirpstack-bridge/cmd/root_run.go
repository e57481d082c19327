package cmd

import (
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lorahub/chirpstack-bridge/internal/api"
	"github.com/lorahub/chirpstack-bridge/internal/client/grpcclient"
	"github.com/lorahub/chirpstack-bridge/internal/client/rest"
	"github.com/lorahub/chirpstack-bridge/internal/config"
	"github.com/lorahub/chirpstack-bridge/internal/facade"
	"github.com/lorahub/chirpstack-bridge/internal/monitoring"
)

func run(cmd *cobra.Command, args []string) error {
	tasks := []func() error{
		setLogLevel,
		printStartMessage,
		setupMonitoring,
		startAPIServer,
	}

	for _, t := range tasks {
		if err := t(); err != nil {
			log.Fatal(err)
		}
	}

	sigChan := make(chan os.Signal, 1)
	exitChan := make(chan struct{})
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	log.WithField("signal", <-sigChan).Info("signal received")
	go func() {
		log.Warning("stopping chirpstack-bridge")
		exitChan <- struct{}{}
	}()
	select {
	case <-exitChan:
	case s := <-sigChan:
		log.WithField("signal", s).Info("signal received, stopping immediately")
	}

	return nil
}

func setLogLevel() error {
	log.SetLevel(log.Level(uint8(config.C.General.LogLevel)))
	return nil
}

func printStartMessage() error {
	log.WithFields(log.Fields{
		"version": version,
	}).Info("starting ChirpStack Bridge")
	return nil
}

func setupMonitoring() error {
	return monitoring.Setup(config.C)
}

func startAPIServer() error {
	c := config.C.ChirpStack

	restClient := rest.NewClient(c.URL, c.APIKey, c.RequestTimeout)
	grpcClient := grpcclient.NewClient(c.URL, c.GRPCServer, c.APIKey, c.TenantID)

	server := api.NewServer(facade.New(restClient, grpcClient), config.C.Bridge.Bind)
	return server.Start()
}
