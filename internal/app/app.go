package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/bstree/internal/config"
	"github.com/vancomm/bstree/internal/database"
	"github.com/vancomm/bstree/internal/middleware"
	"github.com/vancomm/bstree/internal/repository"
	"github.com/vancomm/bstree/internal/store"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log        *logrus.Logger
	router     *http.ServeMux
	store      *store.Store
	db         *pgxpool.Pool
	repo       *repository.Queries
	jwt        *config.JWT
	ws         *config.WebSocket
	migrations fs.FS
}

func New(log *logrus.Logger, migrations fs.FS) *App {
	return &App{
		log:        log,
		router:     http.NewServeMux(),
		store:      store.New(),
		migrations: migrations,
	}
}

// connect opens the snapshot database. A missing database configuration
// is not an error: the server then keeps the tree in memory only.
func (a *App) connect(ctx context.Context) error {
	db, migrator, err := database.ConnectAndMigrate(ctx, a.migrations)
	if errors.Is(err, config.ErrNoDatabase) {
		a.log.Warn("no database configured, snapshots are disabled")
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	if version, dirty, err := migrator.Version(); err == nil {
		a.log.WithFields(logrus.Fields{
			"version": version, "dirty": dirty,
		}).Info("database migrated")
	}
	migrator.Close()

	a.db = db
	a.repo = repository.New(db)
	return nil
}

func (a *App) restore(ctx context.Context, name string) error {
	entries, err := a.repo.LoadSnapshot(ctx, name)
	if errors.Is(err, repository.ErrNoSnapshot) {
		a.log.WithField("name", name).Info("no snapshot to restore")
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to restore snapshot %q: %w", name, err)
	}
	a.store.Restore(entries)
	a.log.WithFields(logrus.Fields{
		"name": name, "entries": len(entries),
	}).Info("restored snapshot")
	return nil
}

func (a *App) Start(ctx context.Context) error {
	if err := a.connect(ctx); err != nil {
		return err
	}
	if a.db != nil {
		defer a.db.Close()
	}

	if a.repo != nil && config.RestoreOnStart() {
		if err := a.restore(ctx, config.TreeName()); err != nil {
			return err
		}
	}

	jwt, err := config.NewJWT()
	switch {
	case errors.Is(err, config.ErrAuthDisabled):
		a.log.Warn("no JWT public key configured, write requests are not authenticated")
	case err != nil:
		return fmt.Errorf("unable to read jwt config: %w", err)
	default:
		a.jwt = jwt
	}

	origins := config.AllowedOrigins()
	a.ws = config.NewWebSocket(origins)

	a.loadRoutes()

	addr := config.Addr()
	server := &http.Server{
		Addr: addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Auth(a.log, a.jwt),
			middleware.Cors(origins),
			middleware.Logging(a.log),
		),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithField("addr", addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
