package services

import (
	"time"

	"github.com/GhoshCoop/membergate-go/internal/domain/user"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/security"
)

// UserService handles user registration and lookups.
//
// Registering does NOT establish a session: the only path to a session is the
// out-of-band member code flow. Deliberate asymmetry.
type UserService struct {
	users       user.Repository
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewUserService creates a new user service
func NewUserService(users user.Repository, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *UserService {
	return &UserService{
		users:       users,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// RegistrationData is the payload collected by the registration wizard.
type RegistrationData struct {
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
	Password    string `json:"password"`
}

// RegisterResult holds the outcome of a registration attempt
type RegisterResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    *user.User `json:"user,omitempty"`
}

// Register creates a new user record after enforcing case-insensitive name
// uniqueness. The password is digested before anything is persisted.
func (s *UserService) Register(data RegistrationData) *RegisterResult {
	marker := s.perfTracker.StartOperation("user:register")
	defer marker.Complete()

	exists, err := s.users.ExistsByName(data.FullName)
	if err != nil {
		s.logger.Register().Error("Failed to check name uniqueness", "error", err.Error())
		marker.SetError(err)
		return &RegisterResult{Success: false, Message: "An error occurred during registration"}
	}
	if exists {
		marker.SetSuccess(false)
		return &RegisterResult{Success: false, Message: "A user with this name already exists"}
	}

	passwordHash, err := security.HashPassword(data.Password)
	if err != nil {
		s.logger.Register().Error("Failed to hash password", "error", err.Error())
		marker.SetError(err)
		return &RegisterResult{Success: false, Message: "An error occurred during registration"}
	}

	newUser := user.User{
		ID:           security.GenerateUserID(),
		FullName:     data.FullName,
		DateOfBirth:  data.DateOfBirth,
		PasswordHash: passwordHash,
		Role:         user.RoleMember,
		RegisteredAt: time.Now().UTC(),
	}

	if err := s.users.Store(newUser); err != nil {
		s.logger.Register().Error("Failed to save user", "error", err.Error())
		marker.SetError(err)
		return &RegisterResult{Success: false, Message: "Failed to save user data"}
	}

	s.logger.Register().Info("User registered", "userId", newUser.ID)
	return &RegisterResult{
		Success: true,
		Message: "User registered successfully",
		User:    &newUser,
	}
}

// GetByID returns the user with the given id, or nil.
func (s *UserService) GetByID(id string) (*user.User, error) {
	return s.users.FindByID(id)
}

// GetByName returns the user matching the name case-insensitively, or nil.
func (s *UserService) GetByName(fullName string) (*user.User, error) {
	return s.users.FindByName(fullName)
}

// All returns every registered user.
func (s *UserService) All() ([]user.User, error) {
	return s.users.All()
}

// UpdateLastLogin stamps the user's last login time.
func (s *UserService) UpdateLastLogin(id string) bool {
	updated, err := s.users.UpdateLastLogin(id, time.Now().UTC())
	if err != nil {
		s.logger.Register().Warn("Failed to update last login", "userId", id, "error", err.Error())
		return false
	}
	return updated
}
