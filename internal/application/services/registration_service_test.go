package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorePassword(t *testing.T) {
	cases := []struct {
		password string
		score    int
		label    string
	}{
		{"", 0, ""},
		{"abc", 1, "weak"},
		{"abcdefgh", 2, "weak"},
		{"Abcdefgh", 3, "fair"},
		{"Abcdef12", 4, "good"},
		{"Abcdef1!", 5, "strong"},
		{"aA1!", 4, "good"}, // short but all four classes
	}

	for _, tc := range cases {
		got := ScorePassword(tc.password)
		assert.Equal(t, tc.score, got.Score, "password %q", tc.password)
		assert.Equal(t, tc.label, got.Label, "password %q", tc.password)
	}
}

func TestAgeInYears(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	birthdayPassed := time.Date(2015, 8, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 11, AgeInYears(birthdayPassed, today))

	birthdayTomorrow := time.Date(2015, 8, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, AgeInYears(birthdayTomorrow, today))

	birthdayNextMonth := time.Date(2015, 9, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, AgeInYears(birthdayNextMonth, today))
}

func newRegistration(t *testing.T) *RegistrationService {
	t.Helper()
	logger := quietLogger(t)
	tracker := testTracker()
	users := NewUserService(newUserRepo(), logger, tracker)
	captcha := NewCaptchaService(nil)
	return NewRegistrationService(users, captcha, logger, tracker)
}

func eligibleBirthday() string {
	return time.Now().UTC().AddDate(-20, 0, 0).Format("2006-01-02")
}

func underageBirthday() string {
	// turns 11 tomorrow
	return time.Now().UTC().AddDate(-11, 0, 1).Format("2006-01-02")
}

// fillDraft walks a draft through every step up to (not including) completion.
func fillDraft(t *testing.T, svc *RegistrationService, name string) string {
	t.Helper()

	draft := svc.Start()
	require.NoError(t, svc.SetName(draft.ID, name))
	advance(t, svc, draft.ID, StepBirthday)

	require.NoError(t, svc.SetBirthday(draft.ID, eligibleBirthday()))
	advance(t, svc, draft.ID, StepPassword)

	require.NoError(t, svc.SetPassword(draft.ID, "Abcdef1!", "Abcdef1!"))
	advance(t, svc, draft.ID, StepAgreement)

	require.NoError(t, svc.SetAgreement(draft.ID, true))
	solveCaptcha(t, svc, draft.ID)
	return draft.ID
}

func advance(t *testing.T, svc *RegistrationService, draftID string, want RegistrationStep) {
	t.Helper()
	step, moved, err := svc.Advance(draftID)
	require.NoError(t, err)
	require.True(t, moved)
	require.Equal(t, want, step)
}

func solveCaptcha(t *testing.T, svc *RegistrationService, draftID string) {
	t.Helper()
	draft, err := svc.Get(draftID)
	require.NoError(t, err)
	ok, err := svc.VerifyCaptcha(draftID, draft.Challenge.Answer)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStartOpensDraftOnStepOne(t *testing.T) {
	svc := newRegistration(t)
	draft := svc.Start()

	assert.Equal(t, StepName, draft.CurrentStep)
	assert.NotEmpty(t, draft.ID)
	assert.NotEmpty(t, draft.Challenge.Question)
	assert.False(t, draft.CaptchaVerified)
}

func TestAdvanceBlockedByStepGuards(t *testing.T) {
	svc := newRegistration(t)
	draft := svc.Start()

	// empty name
	step, moved, err := svc.Advance(draft.ID)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, StepName, step)

	// too short after trimming
	require.NoError(t, svc.SetName(draft.ID, "  ab  "))
	_, moved, err = svc.Advance(draft.ID)
	require.NoError(t, err)
	assert.False(t, moved)

	require.NoError(t, svc.SetName(draft.ID, "Rahul Sen"))
	advance(t, svc, draft.ID, StepBirthday)
}

func TestBirthdayGuardEnforcesMinimumAge(t *testing.T) {
	svc := newRegistration(t)
	draft := svc.Start()
	require.NoError(t, svc.SetName(draft.ID, "Rahul Sen"))
	advance(t, svc, draft.ID, StepBirthday)

	require.NoError(t, svc.SetBirthday(draft.ID, underageBirthday()))
	_, moved, err := svc.Advance(draft.ID)
	require.NoError(t, err)
	assert.False(t, moved)

	require.NoError(t, svc.SetBirthday(draft.ID, "not-a-date"))
	_, moved, err = svc.Advance(draft.ID)
	require.NoError(t, err)
	assert.False(t, moved)

	require.NoError(t, svc.SetBirthday(draft.ID, eligibleBirthday()))
	advance(t, svc, draft.ID, StepPassword)
}

func TestPasswordGuard(t *testing.T) {
	svc := newRegistration(t)
	draft := svc.Start()
	require.NoError(t, svc.SetName(draft.ID, "Rahul Sen"))
	advance(t, svc, draft.ID, StepBirthday)
	require.NoError(t, svc.SetBirthday(draft.ID, eligibleBirthday()))
	advance(t, svc, draft.ID, StepPassword)

	cases := []struct {
		password, confirm string
		valid             bool
	}{
		{"Abc1!", "Abc1!", false},        // under 8 chars despite strong mix
		{"abcdefgh", "abcdefgh", false},  // long but score 2
		{"Abcdefgh", "Abcdefgh", true},   // 8 chars, score 3
		{"Abcdef1!", "", false},          // confirm missing
		{"Abcdef1!", "Abcdef1?", false},  // mismatch
		{"Abcdef1!", "Abcdef1!", true},
	}

	for _, tc := range cases {
		require.NoError(t, svc.SetPassword(draft.ID, tc.password, tc.confirm))
		current, err := svc.Get(draft.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.valid, svc.StepValid(current, StepPassword),
			"password %q confirm %q", tc.password, tc.confirm)
	}
}

func TestBackPreservesEnteredData(t *testing.T) {
	svc := newRegistration(t)
	draft := svc.Start()
	require.NoError(t, svc.SetName(draft.ID, "Rahul Sen"))
	advance(t, svc, draft.ID, StepBirthday)
	require.NoError(t, svc.SetBirthday(draft.ID, eligibleBirthday()))

	step, err := svc.Back(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, StepName, step)

	// backing off step 1 stays on step 1
	step, err = svc.Back(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, StepName, step)

	current, err := svc.Get(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rahul Sen", current.FullName)
	assert.NotEmpty(t, current.Birthday)
}

func TestVerifyCaptcha(t *testing.T) {
	svc := newRegistration(t)
	draft := svc.Start()

	ok, err := svc.VerifyCaptcha(draft.ID, "   ")
	require.NoError(t, err)
	assert.False(t, ok)
	current, _ := svc.Get(draft.ID)
	assert.Equal(t, "Please provide an answer.", current.CaptchaError)

	ok, err = svc.VerifyCaptcha(draft.ID, "definitely wrong answer")
	require.NoError(t, err)
	assert.False(t, ok)
	current, _ = svc.Get(draft.ID)
	assert.Equal(t, "Incorrect answer. Please try again.", current.CaptchaError)

	solveCaptcha(t, svc, draft.ID)
	current, _ = svc.Get(draft.ID)
	assert.True(t, current.CaptchaVerified)
	assert.Empty(t, current.CaptchaError)
}

func TestRefreshCaptchaClearsVerifiedState(t *testing.T) {
	svc := newRegistration(t)
	draft := svc.Start()
	solveCaptcha(t, svc, draft.ID)

	_, err := svc.RefreshCaptcha(draft.ID)
	require.NoError(t, err)

	current, err := svc.Get(draft.ID)
	require.NoError(t, err)
	assert.False(t, current.CaptchaVerified)
	assert.Empty(t, current.CaptchaError)
}

func TestCompleteRegistersUserAndDiscardsDraft(t *testing.T) {
	svc := newRegistration(t)
	draftID := fillDraft(t, svc, "Rahul Sen")

	result, err := svc.Complete(draftID)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "User registered successfully", result.Message)
	require.NotNil(t, result.User)
	assert.NotEmpty(t, result.User.PasswordHash)
	assert.NotEqual(t, "Abcdef1!", result.User.PasswordHash)

	_, err = svc.Get(draftID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestCompleteBeforeFinalStep(t *testing.T) {
	svc := newRegistration(t)
	draft := svc.Start()
	require.NoError(t, svc.SetName(draft.ID, "Rahul Sen"))

	result, err := svc.Complete(draft.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Please complete all steps first", result.Message)

	// failure keeps the draft for retry
	_, err = svc.Get(draft.ID)
	assert.NoError(t, err)
}

func TestCompleteRejectsDuplicateNameAndKeepsDraft(t *testing.T) {
	svc := newRegistration(t)

	first := fillDraft(t, svc, "Rahul Sen")
	result, err := svc.Complete(first)
	require.NoError(t, err)
	require.True(t, result.Success)

	// duplicate differs only in case
	second := fillDraft(t, svc, "rahul sen")
	result, err = svc.Complete(second)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "A user with this name already exists", result.Message)

	current, err := svc.Get(second)
	require.NoError(t, err)
	assert.Equal(t, "rahul sen", current.FullName)
}

func TestOperationsOnUnknownDraft(t *testing.T) {
	svc := newRegistration(t)

	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.ErrorIs(t, svc.SetName("missing", "x"), ErrDraftNotFound)
	_, _, err = svc.Advance("missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = svc.Complete("missing")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDiscard(t *testing.T) {
	svc := newRegistration(t)
	draft := svc.Start()
	svc.Discard(draft.ID)

	_, err := svc.Get(draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestAdvanceCapsAtFinalStep(t *testing.T) {
	svc := newRegistration(t)
	draftID := fillDraft(t, svc, fmt.Sprintf("Member %d", time.Now().UnixNano()))

	step, moved, err := svc.Advance(draftID)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, StepAgreement, step)
}
