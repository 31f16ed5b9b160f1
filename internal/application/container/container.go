// Package container wires the application's dependencies together.
package container

import (
	"fmt"

	"github.com/GhoshCoop/membergate-go/internal/application/services"
	"github.com/GhoshCoop/membergate-go/internal/domain/member"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/email"
	messagesrepo "github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/messages"
	sessionrepo "github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/session"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/store"
	userrepo "github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/user"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/GhoshCoop/membergate-go/pkg/config"
)

// Container holds every shared dependency the HTTP layer needs.
type Container struct {
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
	Store       store.Store

	Verification *services.VerificationService
	Sessions     *services.SessionService
	Captcha      *services.CaptchaService
	Users        *services.UserService
	Registration *services.RegistrationService
	Messages     *services.MessageService
	Auth         *services.AuthService
}

// Options are the pieces main assembles before building the container.
type Options struct {
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
	Store       store.Store
	Directory   *member.Directory
	Notifier    email.Service
}

// New builds the full service graph from the given infrastructure.
func New(opts Options) (*Container, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("container requires a store")
	}
	if opts.Directory == nil {
		return nil, fmt.Errorf("container requires a member directory")
	}
	if opts.Notifier == nil {
		opts.Notifier = email.NoopService{}
	}

	sessions := sessionrepo.NewRepository(opts.Store)
	users := userrepo.NewRepository(opts.Store)
	msgs := messagesrepo.NewRepository(opts.Store)

	verification := services.NewVerificationService(opts.Directory, opts.Logger)
	sessionService := services.NewSessionService(sessions, opts.Logger, opts.PerfTracker)
	captcha := services.NewCaptchaService(nil)
	userService := services.NewUserService(users, opts.Logger, opts.PerfTracker)
	registration := services.NewRegistrationService(userService, captcha, opts.Logger, opts.PerfTracker)
	messageService := services.NewMessageService(msgs, opts.Notifier, opts.Logger, opts.PerfTracker)
	auth := services.NewAuthService(config.StaffPassword, config.JWTSecret, opts.Logger)

	return &Container{
		Logger:       opts.Logger,
		PerfTracker:  opts.PerfTracker,
		Store:        opts.Store,
		Verification: verification,
		Sessions:     sessionService,
		Captcha:      captcha,
		Users:        userService,
		Registration: registration,
		Messages:     messageService,
		Auth:         auth,
	}, nil
}
