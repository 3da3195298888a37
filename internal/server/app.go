// Package server wires configuration, storage, services and the HTTP
// surface together and runs them until shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/stujob/stujob/internal/logging"
	"github.com/stujob/stujob/internal/server/accounts"
	"github.com/stujob/stujob/internal/server/config"
	"github.com/stujob/stujob/internal/server/db"
	"github.com/stujob/stujob/internal/server/httpapi"
	"github.com/stujob/stujob/internal/server/resumes"
	"github.com/stujob/stujob/internal/server/students"
	"github.com/stujob/stujob/internal/server/vacancies"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	repos     db.RepositoryManager
	accounts  *accounts.Service
	students  *students.Service
	vacancies *vacancies.Service
	resumes   *resumes.Service
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	rm, err := db.NewPostgresRepositoryManager(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:    cfg,
		logger:    logger,
		repos:     rm,
		accounts:  accounts.NewService(rm.Accounts(), cfg),
		students:  students.NewService(rm.Students()),
		vacancies: vacancies.NewService(rm.Vacancies()),
		resumes:   resumes.NewService(cfg),
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
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.accounts, app.students, app.vacancies, app.resumes)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
