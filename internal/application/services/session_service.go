package services

import (
	"time"

	"github.com/GhoshCoop/membergate-go/internal/domain/member"
	"github.com/GhoshCoop/membergate-go/internal/domain/session"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/security"
)

// SessionService manages the machine session for the current device: one
// record per device fingerprint, replaced wholesale on re-verification,
// removed only by explicit logout. Sessions never expire on their own.
//
// Every storage failure degrades to "no session" or a failure indicator; the
// caller falls back to requiring re-verification.
type SessionService struct {
	sessions    session.Repository
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewSessionService creates a new session service
func NewSessionService(sessions session.Repository, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SessionService {
	return &SessionService{
		sessions:    sessions,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// SessionResult holds the result of session creation
type SessionResult struct {
	Success bool                    `json:"success"`
	Session *session.MachineSession `json:"session,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// Create computes the device fingerprint, replaces any prior record for it,
// persists the new session, and remembers the fingerprint as this device's
// active session key.
func (s *SessionService) Create(m *member.Credential, profile security.ClientProfile, networkLabel string) *SessionResult {
	marker := s.perfTracker.StartOperation("session:create")
	defer marker.Complete()

	machineID := security.Fingerprint(profile)
	now := time.Now().UTC()

	record := session.MachineSession{
		MachineID:      machineID,
		IPAddress:      networkLabel,
		MemberName:     m.FullName,
		MemberID:       m.ID,
		LoginTime:      now,
		LastAccessTime: now,
	}

	if err := s.sessions.Replace(record); err != nil {
		s.logger.Session().Error("Failed to persist session", "machineId", machineID, "error", err.Error())
		marker.SetError(err)
		return &SessionResult{Success: false, Error: "failed to save session"}
	}

	if err := s.sessions.RememberMachineID(machineID); err != nil {
		s.logger.Session().Error("Failed to remember machine id", "machineId", machineID, "error", err.Error())
		marker.SetError(err)
		return &SessionResult{Success: false, Error: "failed to save session"}
	}

	if err := s.sessions.StoreMemberName(m.FullName); err != nil {
		// Display-name cache only; the session itself is already live.
		s.logger.Session().Warn("Failed to cache member name", "error", err.Error())
	}

	s.logger.Session().Info("Session created", "machineId", machineID, "memberId", m.ID)
	return &SessionResult{Success: true, Session: &record}
}

// Current returns the session for this device's remembered fingerprint, or
// nil when no fingerprint is remembered, the record was externally removed,
// or storage failed.
func (s *SessionService) Current() *session.MachineSession {
	machineID, err := s.sessions.RememberedMachineID()
	if err != nil {
		s.logger.Session().Warn("Failed to read remembered machine id", "error", err.Error())
		return nil
	}
	if machineID == "" {
		return nil
	}

	record, err := s.sessions.FindByMachineID(machineID)
	if err != nil {
		s.logger.Session().Warn("Failed to look up session", "machineId", machineID, "error", err.Error())
		return nil
	}
	return record
}

// Touch updates the current session's last access time. Returns false when no
// session exists or storage failed.
func (s *SessionService) Touch() bool {
	machineID, err := s.sessions.RememberedMachineID()
	if err != nil || machineID == "" {
		return false
	}

	touched, err := s.sessions.Touch(machineID, time.Now().UTC())
	if err != nil {
		s.logger.Session().Warn("Failed to touch session", "machineId", machineID, "error", err.Error())
		return false
	}
	return touched
}

// Logout removes the current session record and clears the remembered
// fingerprint and cached display name. Returns false when nothing was logged
// in or storage failed.
func (s *SessionService) Logout() bool {
	machineID, err := s.sessions.RememberedMachineID()
	if err != nil || machineID == "" {
		return false
	}

	if err := s.sessions.Remove(machineID); err != nil {
		s.logger.Session().Error("Failed to remove session", "machineId", machineID, "error", err.Error())
		return false
	}

	if err := s.sessions.ForgetMachineID(); err != nil {
		s.logger.Session().Error("Failed to clear machine id", "error", err.Error())
		return false
	}
	if err := s.sessions.ForgetMemberName(); err != nil {
		s.logger.Session().Warn("Failed to clear member name", "error", err.Error())
	}

	s.logger.Session().Info("Session logged out", "machineId", machineID)
	return true
}

// StoredMemberName returns the cached display name, or "".
func (s *SessionService) StoredMemberName() string {
	name, err := s.sessions.StoredMemberName()
	if err != nil {
		return ""
	}
	return name
}
