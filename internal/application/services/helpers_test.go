package services

import (
	"log/slog"
	"testing"

	messagesrepo "github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/messages"
	sessionrepo "github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/session"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/store"
	userrepo "github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/user"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/stretchr/testify/require"
)

// quietLogger builds a logger that stays silent during tests.
func quietLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.Level(12),
		ChannelLevels:   make(map[logging.Channel]slog.Level),
	})
	require.NoError(t, err)
	return logger
}

func testTracker() *performance.Tracker {
	return performance.NewTracker(nil)
}

func newSessionRepo() *sessionrepo.Repository {
	return sessionrepo.NewRepository(store.NewMemoryStore())
}

func newUserRepo() *userrepo.Repository {
	return userrepo.NewRepository(store.NewMemoryStore())
}

func newMessageRepo() *messagesrepo.Repository {
	return messagesrepo.NewRepository(store.NewMemoryStore())
}
