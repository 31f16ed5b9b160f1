package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GhoshCoop/membergate-go/internal/application/container"
	"github.com/GhoshCoop/membergate-go/internal/domain/member"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContainer(t *testing.T) *container.Container {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		DefaultLevel:  slog.Level(12),
		ChannelLevels: make(map[logging.Channel]slog.Level),
	})
	require.NoError(t, err)

	c, err := container.New(container.Options{
		Logger:      logger,
		PerfTracker: performance.NewTracker(nil),
		Store:       store.NewMemoryStore(),
		Directory: member.NewDirectory([]member.Credential{
			{ID: "mem_001", FullName: "Anil Ghosh", Code: "GCB-7421"},
		}),
	})
	require.NoError(t, err)
	return c
}

const verifyBody = `{
	"fullName": "anil ghosh",
	"code": "GCB-7421",
	"client": {
		"userAgent": "Mozilla/5.0",
		"vendor": "Google Inc.",
		"platform": "Linux x86_64",
		"screenResolution": "1920x1080",
		"timezoneOffset": -330,
		"language": "en-IN"
	}
}`

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestVerifyEndpointRejectsBadCredentials(t *testing.T) {
	router := SetupRoutes(testContainer(t))

	w := postJSON(router, "/api/v1/verify", `{"fullName":"Anil Ghosh","code":"GCB-0000","client":{}}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid name or code. Please try again.")
}

func TestVerifyEndpointCreatesSession(t *testing.T) {
	c := testContainer(t)
	router := SetupRoutes(c)

	w := postJSON(router, "/api/v1/verify", verifyBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Verification successful")

	// the guard now admits page requests
	pageReq := httptest.NewRequest(http.MethodGet, "/members", nil)
	pageW := httptest.NewRecorder()
	router.ServeHTTP(pageW, pageReq)
	assert.Equal(t, http.StatusOK, pageW.Code)
}

func TestUnverifiedPageRequestRedirects(t *testing.T) {
	router := SetupRoutes(testContainer(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/members", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/verify", w.Header().Get("Location"))

	// unknown routes bounce to /verify as well
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/verify", w.Header().Get("Location"))
}

func TestRegisterStartDoesNotLeakCaptchaAnswer(t *testing.T) {
	c := testContainer(t)
	router := SetupRoutes(c)
	require.Equal(t, http.StatusOK, postJSON(router, "/api/v1/verify", verifyBody).Code)

	w := postJSON(router, "/api/v1/register", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Draft struct {
			ID        string `json:"id"`
			Challenge struct {
				Question string `json:"question"`
				Answer   string `json:"answer"`
			} `json:"challenge"`
		} `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Draft.ID)
	assert.NotEmpty(t, resp.Draft.Challenge.Question)
	assert.Empty(t, resp.Draft.Challenge.Answer)
}

func TestRegisterEndpointsRequireVerifiedDevice(t *testing.T) {
	router := SetupRoutes(testContainer(t))

	w := postJSON(router, "/api/v1/register", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContactFormValidation(t *testing.T) {
	router := SetupRoutes(testContainer(t))

	w := postJSON(router, "/api/v1/messages", `{"email":"bad","phone":"123","message":"hi"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a valid email address")

	w = postJSON(router, "/api/v1/messages",
		`{"email":"a@b.com","phone":"9876543210","message":"Please call me back about loans."}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminMessagesRequireStaffToken(t *testing.T) {
	router := SetupRoutes(testContainer(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/messages", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := SetupRoutes(testContainer(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
