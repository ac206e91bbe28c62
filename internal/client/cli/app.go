package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/pdstore/internal/client/client"
	"github.com/dmitrijs2005/pdstore/internal/client/config"
	"github.com/dmitrijs2005/pdstore/internal/client/services"
	"github.com/dmitrijs2005/pdstore/internal/filex"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config         *config.Config
	authService    services.AuthService
	profileService services.ProfileService
	reader         *bufio.Reader
	out            io.Writer

	mu    sync.Mutex
	email string
	mode  Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	path, err := filex.EnsureParentDir(c.SessionFile)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		log.Printf("error initializing session store: %s", err.Error())
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	as := services.NewAuthService(apiClient, db)
	ps := services.NewProfileService(apiClient)

	return &App{
		config:         c,
		authService:    as,
		profileService: ps,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	a.Root(ctx)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) setEmail(email string) {
	a.mu.Lock()
	a.email = email
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.email != ""
}

// checkOnline pings the server once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
