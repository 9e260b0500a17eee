package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/client/api"
	"github.com/dmitrijs2005/todokeeper/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// apiClient is the part of *api.Client the commands use.
type apiClient interface {
	LoggedIn() bool
	Logout()
	Ping(ctx context.Context) error
	Register(ctx context.Context, req api.RegisterRequest) error
	Login(ctx context.Context, login, password string) error
	Refresh(ctx context.Context) error
	CheckUser(ctx context.Context, login string) (bool, error)
	CreateTodo(ctx context.Context, title string, description *string) (*api.Todo, error)
	SetDone(ctx context.Context, id string, done bool) (*api.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	ListPage(ctx context.Context, page, limit int) (*api.OffsetPage, error)
	ListCursor(ctx context.Context, limit int, cursor string) (*api.CursorPage, error)
}

type App struct {
	config   *config.Config
	api      apiClient
	reader   *bufio.Reader
	out      io.Writer
	userName string
	Mode     Mode

	// nextCursor continues "list next"; empty means no more pages.
	nextCursor string
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerEndpointAddr, api.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout})),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

// Run starts the health watcher and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Println("Welcome to the todo CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// StartOnlineStatusWatcher probes the server every interval until ctx ends.
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

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}
