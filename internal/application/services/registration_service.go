package services

import (
	"errors"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/security"
)

// RegistrationStep identifies one step of the sign-up wizard.
type RegistrationStep int

const (
	StepName RegistrationStep = iota + 1
	StepBirthday
	StepPassword
	StepAgreement
)

// MinimumAge is the youngest age, in whole years, a registrant may have.
const MinimumAge = 11

// ErrDraftNotFound is returned for operations on unknown or discarded drafts.
var ErrDraftNotFound = errors.New("registration draft not found")

// RegistrationDraft is the wizard's working state. It lives in memory only
// and is discarded on completion or explicit abandonment; nothing in it is
// ever persisted except through a successful registration.
type RegistrationDraft struct {
	ID                string
	CurrentStep       RegistrationStep
	FullName          string
	Birthday          string // YYYY-MM-DD
	Password          string
	ConfirmPassword   string
	AgreementAccepted bool
	Challenge         Challenge
	CaptchaVerified   bool
	CaptchaError      string
	CreatedAt         time.Time
}

// PasswordStrength is the scored result of the five character-class checks.
type PasswordStrength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// ScorePassword counts the satisfied checks among length>=8, uppercase,
// lowercase, digit, and symbol. Bands: <=2 weak, 3 fair, 4 good, 5 strong.
func ScorePassword(password string) PasswordStrength {
	if password == "" {
		return PasswordStrength{}
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	score := 0
	if len(password) >= 8 {
		score++
	}
	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSymbol} {
		if ok {
			score++
		}
	}

	var label string
	switch {
	case score <= 2:
		label = "weak"
	case score == 3:
		label = "fair"
	case score == 4:
		label = "good"
	default:
		label = "strong"
	}

	return PasswordStrength{Score: score, Label: label}
}

// AgeInYears computes whole years between birth and today, decrementing when
// this year's birthday has not yet occurred.
func AgeInYears(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// RegistrationService runs the linear 4-step sign-up wizard: forward
// advancement only when the current step's guard is satisfied, backward
// navigation always allowed without clearing entered data.
//
// Completing the wizard registers a user but does not create a session; the
// new member still verifies through the out-of-band code flow.
type RegistrationService struct {
	users       *UserService
	captcha     *CaptchaService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker

	mu     sync.Mutex
	drafts map[string]*RegistrationDraft
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(users *UserService, captcha *CaptchaService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *RegistrationService {
	return &RegistrationService{
		users:       users,
		captcha:     captcha,
		logger:      logger,
		perfTracker: perfTracker,
		drafts:      make(map[string]*RegistrationDraft),
	}
}

// Start opens a fresh draft on step 1 with an active captcha challenge.
func (s *RegistrationService) Start() *RegistrationDraft {
	draft := &RegistrationDraft{
		ID:          security.GenerateULID(),
		CurrentStep: StepName,
		Challenge:   s.captcha.Generate(),
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()

	s.logger.Register().Debug("Registration draft started", "draftId", draft.ID)
	return draft
}

// Get returns the draft, or ErrDraftNotFound.
func (s *RegistrationService) Get(draftID string) (*RegistrationDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked(draftID)
}

func (s *RegistrationService) locked(draftID string) (*RegistrationDraft, error) {
	draft, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

// SetName records the step 1 input.
func (s *RegistrationService) SetName(draftID, fullName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(draftID)
	if err != nil {
		return err
	}
	draft.FullName = fullName
	return nil
}

// SetBirthday records the step 2 input (YYYY-MM-DD).
func (s *RegistrationService) SetBirthday(draftID, birthday string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(draftID)
	if err != nil {
		return err
	}
	draft.Birthday = birthday
	return nil
}

// SetPassword records the step 3 inputs.
func (s *RegistrationService) SetPassword(draftID, password, confirm string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(draftID)
	if err != nil {
		return err
	}
	draft.Password = password
	draft.ConfirmPassword = confirm
	return nil
}

// SetAgreement records the step 4 consent checkbox.
func (s *RegistrationService) SetAgreement(draftID string, accepted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(draftID)
	if err != nil {
		return err
	}
	draft.AgreementAccepted = accepted
	return nil
}

// VerifyCaptcha checks an answer against the draft's active challenge and
// records the verified state. A wrong answer leaves an inline error on the
// draft; a later correct answer clears it.
func (s *RegistrationService) VerifyCaptcha(draftID, answer string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(draftID)
	if err != nil {
		return false, err
	}

	if strings.TrimSpace(answer) == "" {
		draft.CaptchaVerified = false
		draft.CaptchaError = "Please provide an answer."
		return false, nil
	}

	correct := s.captcha.VerifyAnswer(answer, draft.Challenge.Answer)
	draft.CaptchaVerified = correct
	if correct {
		draft.CaptchaError = ""
	} else {
		draft.CaptchaError = "Incorrect answer. Please try again."
	}
	return correct, nil
}

// RefreshCaptcha replaces the active challenge and always discards any
// previous verified state and error.
func (s *RegistrationService) RefreshCaptcha(draftID string) (Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(draftID)
	if err != nil {
		return Challenge{}, err
	}

	draft.Challenge = s.captcha.Generate()
	draft.CaptchaVerified = false
	draft.CaptchaError = ""
	return draft.Challenge, nil
}

// StepValid evaluates the guard for one step against the draft's data.
func (s *RegistrationService) StepValid(draft *RegistrationDraft, step RegistrationStep) bool {
	switch step {
	case StepName:
		return len(strings.TrimSpace(draft.FullName)) >= 3
	case StepBirthday:
		if draft.Birthday == "" {
			return false
		}
		birth, err := time.Parse("2006-01-02", draft.Birthday)
		if err != nil {
			return false
		}
		return AgeInYears(birth, time.Now()) >= MinimumAge
	case StepPassword:
		return len(draft.Password) >= 8 &&
			ScorePassword(draft.Password).Score >= 3 &&
			draft.ConfirmPassword != "" &&
			draft.ConfirmPassword == draft.Password
	case StepAgreement:
		return draft.AgreementAccepted && draft.CaptchaVerified
	}
	return false
}

// Advance moves the draft forward one step if the current step's guard is
// satisfied. Returns the step the draft is on afterwards and whether it moved.
func (s *RegistrationService) Advance(draftID string) (RegistrationStep, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(draftID)
	if err != nil {
		return 0, false, err
	}

	if draft.CurrentStep >= StepAgreement || !s.StepValid(draft, draft.CurrentStep) {
		return draft.CurrentStep, false, nil
	}

	draft.CurrentStep++
	return draft.CurrentStep, true, nil
}

// Back moves the draft one step backward. Always allowed; entered data is
// preserved.
func (s *RegistrationService) Back(draftID string) (RegistrationStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.locked(draftID)
	if err != nil {
		return 0, err
	}

	if draft.CurrentStep > StepName {
		draft.CurrentStep--
	}
	return draft.CurrentStep, nil
}

// Complete finishes the wizard: the draft must be on the final step with its
// guard satisfied. On success the draft is discarded; on failure it is kept
// intact, with all entered data, so the user can retry.
func (s *RegistrationService) Complete(draftID string) (*RegisterResult, error) {
	marker := s.perfTracker.StartOperation("register:complete")
	defer marker.Complete()

	s.mu.Lock()
	draft, err := s.locked(draftID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if draft.CurrentStep != StepAgreement || !s.StepValid(draft, StepAgreement) {
		s.mu.Unlock()
		marker.SetSuccess(false)
		return &RegisterResult{Success: false, Message: "Please complete all steps first"}, nil
	}

	data := RegistrationData{
		FullName:    draft.FullName,
		DateOfBirth: draft.Birthday,
		Password:    draft.Password,
	}
	s.mu.Unlock()

	result := s.users.Register(data)
	if result.Success {
		s.mu.Lock()
		delete(s.drafts, draftID)
		s.mu.Unlock()
		s.logger.Register().Info("Registration completed", "draftId", draftID)
	} else {
		s.logger.Register().Warn("Registration failed", "draftId", draftID, "message", result.Message)
	}

	marker.SetSuccess(result.Success)
	return result, nil
}

// Discard drops a draft, e.g. when the user navigates away.
func (s *RegistrationService) Discard(draftID string) {
	s.mu.Lock()
	delete(s.drafts, draftID)
	s.mu.Unlock()
}
