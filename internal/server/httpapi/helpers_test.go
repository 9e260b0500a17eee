package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/pagination"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	accessSecret  = []byte("access-secret")
	refreshSecret = []byte("refresh-secret")
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

// tickingClock advances one millisecond per call so records get distinct
// created_at values.
func tickingClock() func() time.Time {
	var (
		mu  sync.Mutex
		cur = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Millisecond)
		return cur
	}
}

type testEnv struct {
	srv *httptest.Server
}

type envOption func(*Deps)

func withHealth(p Pinger) envOption {
	return func(d *Deps) { d.Health = p }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	hasher, err := auth.NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)
	signer, err := auth.NewSigner(accessSecret, refreshSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	rm := repomanager.NewMemoryRepositoryManager(crud.WithClock(tickingClock()))
	log := discardLogger()

	d := Deps{
		Users:    services.NewUserService(rm, hasher, signer, log),
		Todos:    services.NewTodoService(rm, log),
		Verifier: signer,
		Pages:    pagination.Defaults{Size: 10, Page: 1},
		Health:   rm,
		Metrics:  NewMetrics(),
		Log:      log,
	}
	for _, o := range opts {
		o(&d)
	}

	srv := httptest.NewServer(NewRouter(d))
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv}
}

// do sends body as JSON (when non-nil) and decodes the response into out
// (when non-nil). It returns the status code.
func (e *testEnv) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			buf, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(buf)
		}
	}

	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *testEnv) register(t *testing.T, name string) services.TokenPair {
	t.Helper()
	var pair services.TokenPair
	code := e.do(t, http.MethodPost, "/api/v1/users/register", "", registerBody(name), &pair)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	return pair
}

func registerBody(name string) map[string]string {
	return map[string]string{
		"username":        name,
		"fullname":        "Test " + name,
		"email":           name + "@example.com",
		"password":        "secret123",
		"confirmPassword": "secret123",
	}
}
