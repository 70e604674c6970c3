package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// waitForShutdown blocks until the process receives an interrupt
func waitForShutdown(logger *logrus.Logger) {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	sig := <-sc
	logger.WithField("signal", sig.String()).Info("shutting down")
}
