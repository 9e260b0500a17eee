package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func newSigner(t *testing.T, opts ...auth.SignerOption) *auth.Signer {
	t.Helper()
	s, err := auth.NewSigner([]byte("access-secret"), []byte("refresh-secret"), 15*time.Minute, time.Hour, opts...)
	require.NoError(t, err)
	return s
}

func newUserService(t *testing.T) (*UserService, *repomanager.MemoryRepositoryManager) {
	t.Helper()
	hasher, err := auth.NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)

	rm := repomanager.NewMemoryRepositoryManager()
	return NewUserService(rm, hasher, newSigner(t), discardLogger()), rm
}

func strPtr(s string) *string { return &s }
