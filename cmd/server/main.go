package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/bstree/bstree"
	"github.com/vancomm/bstree/internal/app"
	"github.com/vancomm/bstree/internal/config"
	"github.com/vancomm/bstree/internal/database"
	"github.com/vancomm/bstree/internal/logging"
)

var (
	log = logrus.New()

	envPath string
)

func init() {
	const (
		defaultEnvPath = ".env"
		usage          = "dotenv file path"
	)
	flag.StringVar(&envPath, "env", defaultEnvPath, usage)
	flag.StringVar(&envPath, "e", defaultEnvPath, usage+" (shorthand)")
}

func main() {
	flag.Parse()

	if err := config.LoadDotEnv(envPath); err != nil {
		log.Fatal("unable to load env file: ", err)
	}

	opts := logging.OptionsFromEnv(config.Development())
	if err := logging.Setup(opts, log, bstree.Log); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := app.New(log, database.Migrations)
	if err := a.Start(ctx); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server stopped")
}
