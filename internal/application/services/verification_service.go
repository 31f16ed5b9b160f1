// Package services provides application-level orchestration services
package services

import (
	"strings"

	"github.com/GhoshCoop/membergate-go/internal/domain/member"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
)

// InvalidCredentialsMessage is deliberately generic: it never reveals whether
// the name or the code was wrong, to avoid member enumeration.
const InvalidCredentialsMessage = "Invalid name or code. Please try again."

// VerificationService checks submitted (name, code) pairs against the fixed
// credential directory. Pure lookup, no side effects.
type VerificationService struct {
	directory *member.Directory
	logger    *logging.ChanneledLogger
}

// NewVerificationService creates a new verification service
func NewVerificationService(directory *member.Directory, logger *logging.ChanneledLogger) *VerificationService {
	return &VerificationService{
		directory: directory,
		logger:    logger,
	}
}

// VerifyResult holds the outcome of a credential check
type VerifyResult struct {
	Success bool               `json:"success"`
	Member  *member.Credential `json:"member,omitempty"`
	Message string             `json:"message"`
}

// Verify normalizes the name (trimmed, lowercased) and code (trimmed,
// case-sensitive) and scans the directory for an exact match on both.
func (s *VerificationService) Verify(fullName, code string) *VerifyResult {
	normalizedName := strings.ToLower(strings.TrimSpace(fullName))
	normalizedCode := strings.TrimSpace(code)

	if matched := s.directory.Find(normalizedName, normalizedCode); matched != nil {
		s.logger.Auth().Info("Member verification succeeded", "memberId", matched.ID)
		return &VerifyResult{
			Success: true,
			Member:  matched,
			Message: "Verification successful",
		}
	}

	s.logger.Auth().Warn("Member verification failed")
	return &VerifyResult{
		Success: false,
		Message: InvalidCredentialsMessage,
	}
}

// MemberExists reports whether any credential carries the name. Used for
// verification page feedback only, never for error messages.
func (s *VerificationService) MemberExists(fullName string) bool {
	return s.directory.Exists(fullName)
}

// MemberNames returns every member name for autocomplete suggestions.
func (s *VerificationService) MemberNames() []string {
	return s.directory.Names()
}
