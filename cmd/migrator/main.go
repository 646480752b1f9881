package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/bstree/internal/config"
	"github.com/vancomm/bstree/internal/database"
	"github.com/vancomm/bstree/internal/logging"
)

func main() {
	log := logrus.New()
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("unable to load env file: ", err)
	}
	if err := logging.Setup(logging.OptionsFromEnv(config.Development()), log); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, migrator, err := database.ConnectAndMigrate(ctx, database.Migrations)
	if err != nil {
		log.WithError(err).Error("failed to migrate db")
		os.Exit(1)
	}
	defer pool.Close()
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		log.WithError(err).Error("failed to check migration version")
		return
	}
	log.WithFields(logrus.Fields{
		"version": version, "dirty": dirty,
	}).Info("migration successful")
}
