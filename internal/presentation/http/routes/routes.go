// Package routes assembles the gin engine from handlers and middleware.
package routes

import (
	"net/http"

	"github.com/GhoshCoop/membergate-go/internal/application/container"
	"github.com/GhoshCoop/membergate-go/internal/presentation/http/handlers"
	"github.com/GhoshCoop/membergate-go/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes builds the full route tree: public verification and contact
// endpoints, guarded pages and session APIs, the sign-up wizard, and the
// staff-only message admin.
func SetupRoutes(c *container.Container) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	verifyHandlers := handlers.NewVerifyHandlers(c.Verification, c.Sessions, c.Logger, c.PerfTracker)
	sessionHandlers := handlers.NewSessionHandlers(c.Sessions, c.Logger, c.PerfTracker)
	registerHandlers := handlers.NewRegisterHandlers(c.Registration, c.Logger, c.PerfTracker)
	messageHandlers := handlers.NewMessageHandlers(c.Messages, c.Logger, c.PerfTracker)
	authHandlers := handlers.NewAuthHandlers(c.Auth, c.Logger)
	pageHandlers := handlers.NewPageHandlers(c.Sessions, c.Logger)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Pages. /verify is the only one outside the guard.
	router.GET(middleware.VerifyPath, pageHandlers.GetVerify)

	pages := router.Group("/")
	pages.Use(middleware.PageGuard(c.Sessions))
	{
		pages.GET("", pageHandlers.GetHome)
		pages.GET("/members", pageHandlers.GetMembers)
		pages.GET("/learn-more", pageHandlers.GetLearnMore)
		pages.GET("/register", pageHandlers.GetRegister)
	}

	router.NoRoute(pageHandlers.NotFound)

	api := router.Group("/api/v1")
	{
		// Public: verification, session introspection, contact form.
		api.POST("/verify", verifyHandlers.PostVerify)
		api.GET("/verify/names", verifyHandlers.GetMemberNames)
		api.GET("/session", sessionHandlers.GetSession)
		api.POST("/session/touch", sessionHandlers.PostTouch)
		api.POST("/logout", sessionHandlers.PostLogout)
		api.POST("/messages", messageHandlers.PostMessage)
		api.POST("/auth/login", authHandlers.PostLogin)
		api.POST("/auth/logout", authHandlers.PostLogoutStaff)

		// Sign-up wizard, reachable only from a verified device.
		register := api.Group("/register")
		register.Use(middleware.APIGuard(c.Sessions))
		{
			register.POST("", registerHandlers.PostStart)
			register.GET("/:id", registerHandlers.GetDraft)
			register.PUT("/:id/name", registerHandlers.PutName)
			register.PUT("/:id/birthday", registerHandlers.PutBirthday)
			register.PUT("/:id/password", registerHandlers.PutPassword)
			register.PUT("/:id/agreement", registerHandlers.PutAgreement)
			register.POST("/:id/captcha/verify", registerHandlers.PostCaptchaVerify)
			register.POST("/:id/captcha/refresh", registerHandlers.PostCaptchaRefresh)
			register.POST("/:id/next", registerHandlers.PostNext)
			register.POST("/:id/back", registerHandlers.PostBack)
			register.POST("/:id/complete", registerHandlers.PostComplete)
			register.DELETE("/:id", registerHandlers.DeleteDraft)
		}

		// Message admin, staff token required.
		admin := api.Group("/admin")
		admin.Use(middleware.StaffAuth(c.Auth))
		{
			admin.GET("/messages", messageHandlers.GetMessages)
			admin.GET("/messages/:id", messageHandlers.GetMessage)
			admin.PUT("/messages/:id/status", messageHandlers.PutMessageStatus)
		}
	}

	return router
}
