package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GhoshCoop/membergate-go/internal/application/services"
	"github.com/GhoshCoop/membergate-go/internal/domain/member"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	sessionrepo "github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/session"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/store"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/security"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		DefaultLevel:  slog.Level(12),
		ChannelLevels: make(map[logging.Channel]slog.Level),
	})
	require.NoError(t, err)
	return logger
}

func newSessions(t *testing.T) *services.SessionService {
	t.Helper()
	repo := sessionrepo.NewRepository(store.NewMemoryStore())
	return services.NewSessionService(repo, quietLogger(t), performance.NewTracker(nil))
}

func verifiedSessions(t *testing.T) *services.SessionService {
	t.Helper()
	sessions := newSessions(t)
	result := sessions.Create(
		&member.Credential{ID: "mem_001", FullName: "Anil Ghosh", Code: "GCB-7421"},
		security.ClientProfile{UserAgent: "Mozilla/5.0", ScreenResolution: "1920x1080"},
		"127.0.0.1",
	)
	require.True(t, result.Success)
	return sessions
}

func guardedRouter(sessions *services.SessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	pages := router.Group("/")
	pages.Use(PageGuard(sessions))
	pages.GET("/members", func(c *gin.Context) {
		current, ok := CurrentSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, current.MemberName)
	})

	api := router.Group("/api")
	api.Use(APIGuard(sessions))
	api.GET("/data", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func TestPageGuardRedirectsUnverifiedDevice(t *testing.T) {
	router := guardedRouter(newSessions(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, VerifyPath, w.Header().Get("Location"))
}

func TestPageGuardAdmitsVerifiedDevice(t *testing.T) {
	sessions := verifiedSessions(t)
	router := guardedRouter(sessions)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Anil Ghosh", w.Body.String())
}

func TestPageGuardTouchesSessionOnHit(t *testing.T) {
	sessions := verifiedSessions(t)
	before := sessions.Current()
	require.NotNil(t, before)

	router := guardedRouter(sessions)
	time.Sleep(5 * time.Millisecond)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members", nil))
	require.Equal(t, http.StatusOK, w.Code)

	after := sessions.Current()
	require.NotNil(t, after)
	assert.True(t, after.LastAccessTime.After(before.LastAccessTime))
}

func TestAPIGuardReturns401InsteadOfRedirect(t *testing.T) {
	router := guardedRouter(newSessions(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/data", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestGuardAfterLogout(t *testing.T) {
	sessions := verifiedSessions(t)
	router := guardedRouter(sessions)
	require.True(t, sessions.Logout())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members", nil))
	assert.Equal(t, http.StatusFound, w.Code)
}
