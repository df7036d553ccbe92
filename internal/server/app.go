// Package server initializes and runs the BandRoom server: database and
// migrations, business services, and the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bandroomhq/bandroom/internal/logging"
	"github.com/bandroomhq/bandroom/internal/server/config"
	"github.com/bandroomhq/bandroom/internal/server/httpapi"
	"github.com/bandroomhq/bandroom/internal/server/repositories/repomanager"
	"github.com/bandroomhq/bandroom/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	members  *services.MemberService
	songs    *services.SongService
	charts   *services.ChartService
	practice *services.PracticeService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	members := services.NewMemberService(db, rm, c)
	songs := services.NewSongService(db, rm)
	practice := services.NewPracticeService(db, rm)

	guard := services.NewSessionGuard(httpapi.NewRequestSessionProvider(members), logger)
	tokens := services.NewTokenService(db, rm)
	store := services.NewS3ObjectStore(c)
	charts := services.NewChartService(db, rm, guard, tokens, store, c, logger)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		members:  members,
		songs:    songs,
		charts:   charts,
		practice: practice,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := httpapi.NewRouter([]byte(app.config.SecretKey), app.logger)
	router.Members = app.members
	router.Songs = app.songs
	router.Charts = app.charts
	router.Practice = app.practice

	s := httpapi.NewServer(app.config.EndpointAddr, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
