package handlers

import (
	"net/http"

	"github.com/GhoshCoop/membergate-go/internal/application/services"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// PageHandlers serves the site's page shells. The real pages are rendered by
// the frontend; these endpoints exist so the route guard has something to
// gate and redirect between.
type PageHandlers struct {
	sessions *services.SessionService
	logger   *logging.ChanneledLogger
}

// NewPageHandlers creates page handlers with injected dependencies
func NewPageHandlers(sessions *services.SessionService, logger *logging.ChanneledLogger) *PageHandlers {
	return &PageHandlers{sessions: sessions, logger: logger}
}

func pageShell(title string) string {
	return "<!DOCTYPE html><html><head><title>" + title +
		"</title></head><body data-page=\"" + title + "\"></body></html>"
}

// GetHome serves the guarded landing page.
func (h *PageHandlers) GetHome(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pageShell("Home")))
}

// GetMembers serves the guarded members page.
func (h *PageHandlers) GetMembers(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pageShell("Members")))
}

// GetLearnMore serves the guarded learn-more page.
func (h *PageHandlers) GetLearnMore(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pageShell("Learn More")))
}

// GetRegister serves the guarded registration wizard page.
func (h *PageHandlers) GetRegister(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pageShell("Register")))
}

// GetVerify serves the verification page. This is the one page reachable
// without a session; an already verified device is bounced to the home page.
func (h *PageHandlers) GetVerify(c *gin.Context) {
	if h.sessions.Current() != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pageShell("Verify")))
}

// NotFound handles unknown routes: unverified devices are redirected to the
// verification page, verified ones get a plain 404.
func (h *PageHandlers) NotFound(c *gin.Context) {
	if h.sessions.Current() == nil {
		c.Redirect(http.StatusFound, middleware.VerifyPath)
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(pageShell("Not Found")))
}
