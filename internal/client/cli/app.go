// Package cli is the interactive stujob client: a thin REPL over the
// session manager, standing in for the original web view layer. It performs
// no decisions of its own beyond input validation.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/stujob/stujob/internal/client/api"
	"github.com/stujob/stujob/internal/client/config"
	"github.com/stujob/stujob/internal/client/localstore"
	"github.com/stujob/stujob/internal/client/session"
	"github.com/stujob/stujob/internal/logging"
)

type App struct {
	config  *config.Config
	manager *session.Manager
	api     *api.Client
	store   *localstore.Storage
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	store, err := localstore.Open(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing local store: %s", err.Error())
		return nil, err
	}

	apiClient, err := api.NewClient(ctx, c.ServerBaseURL, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	manager := session.NewManager(apiClient, apiClient, store,
		logging.NewJSONLogger(os.Stderr),
		session.Options{AllowUnconfirmedEmailLogin: c.AllowUnconfirmedEmailLogin})

	return &App{
		config:  c,
		manager: manager,
		api:     apiClient,
		store:   store,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.Root(ctx)
}

func (a *App) isLinked() bool {
	_, authenticated := a.manager.CurrentUser()
	return authenticated
}
