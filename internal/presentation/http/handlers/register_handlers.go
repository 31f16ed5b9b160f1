package handlers

import (
	"errors"
	"net/http"

	"github.com/GhoshCoop/membergate-go/internal/application/services"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/gin-gonic/gin"
)

// RegisterHandlers contains the sign-up wizard HTTP handlers
type RegisterHandlers struct {
	registration *services.RegistrationService
	logger       *logging.ChanneledLogger
	perfTracker  *performance.Tracker
}

// NewRegisterHandlers creates register handlers with injected dependencies
func NewRegisterHandlers(registration *services.RegistrationService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *RegisterHandlers {
	return &RegisterHandlers{
		registration: registration,
		logger:       logger,
		perfTracker:  perfTracker,
	}
}

// challengeView is the client-facing shape of a captcha challenge. The
// expected answer stays server-side.
type challengeView struct {
	Type        string `json:"type"`
	Question    string `json:"question"`
	Description string `json:"description,omitempty"`
}

// draftView is the client-facing shape of a registration draft. Password
// fields and the captcha answer are never echoed back.
type draftView struct {
	ID                string        `json:"id"`
	CurrentStep       int           `json:"currentStep"`
	FullName          string        `json:"fullName"`
	Birthday          string        `json:"birthday"`
	AgreementAccepted bool          `json:"agreementAccepted"`
	Challenge         challengeView `json:"challenge"`
	CaptchaVerified   bool          `json:"captchaVerified"`
	CaptchaError      string        `json:"captchaError,omitempty"`
}

func viewOf(draft *services.RegistrationDraft) draftView {
	return draftView{
		ID:                draft.ID,
		CurrentStep:       int(draft.CurrentStep),
		FullName:          draft.FullName,
		Birthday:          draft.Birthday,
		AgreementAccepted: draft.AgreementAccepted,
		Challenge: challengeView{
			Type:        string(draft.Challenge.Type),
			Question:    draft.Challenge.Question,
			Description: draft.Challenge.Description,
		},
		CaptchaVerified: draft.CaptchaVerified,
		CaptchaError:    draft.CaptchaError,
	}
}

func (h *RegisterHandlers) draftError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration draft not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// PostStart handles POST /api/v1/register - opens a fresh draft on step 1.
func (h *RegisterHandlers) PostStart(c *gin.Context) {
	draft := h.registration.Start()
	c.JSON(http.StatusCreated, gin.H{"draft": viewOf(draft)})
}

// GetDraft handles GET /api/v1/register/:id - current wizard state.
func (h *RegisterHandlers) GetDraft(c *gin.Context) {
	draft, err := h.registration.Get(c.Param("id"))
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": viewOf(draft)})
}

// PutName handles PUT /api/v1/register/:id/name - records the step 1 input
// and reports whether the step guard passes.
func (h *RegisterHandlers) PutName(c *gin.Context) {
	var req struct {
		FullName string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	draftID := c.Param("id")
	if err := h.registration.SetName(draftID, req.FullName); err != nil {
		h.draftError(c, err)
		return
	}

	draft, err := h.registration.Get(draftID)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid": h.registration.StepValid(draft, services.StepName),
		"draft": viewOf(draft),
	})
}

// PutBirthday handles PUT /api/v1/register/:id/birthday - records the step 2
// input (YYYY-MM-DD).
func (h *RegisterHandlers) PutBirthday(c *gin.Context) {
	var req struct {
		Birthday string `json:"birthday"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	draftID := c.Param("id")
	if err := h.registration.SetBirthday(draftID, req.Birthday); err != nil {
		h.draftError(c, err)
		return
	}

	draft, err := h.registration.Get(draftID)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid": h.registration.StepValid(draft, services.StepBirthday),
		"draft": viewOf(draft),
	})
}

// PutPassword handles PUT /api/v1/register/:id/password - records the step 3
// inputs and returns the live strength score for the meter.
func (h *RegisterHandlers) PutPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
		Confirm  string `json:"confirmPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	draftID := c.Param("id")
	if err := h.registration.SetPassword(draftID, req.Password, req.Confirm); err != nil {
		h.draftError(c, err)
		return
	}

	draft, err := h.registration.Get(draftID)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":    h.registration.StepValid(draft, services.StepPassword),
		"strength": services.ScorePassword(req.Password),
	})
}

// PutAgreement handles PUT /api/v1/register/:id/agreement - records the step 4
// consent checkbox.
func (h *RegisterHandlers) PutAgreement(c *gin.Context) {
	var req struct {
		Accepted bool `json:"accepted"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	draftID := c.Param("id")
	if err := h.registration.SetAgreement(draftID, req.Accepted); err != nil {
		h.draftError(c, err)
		return
	}

	draft, err := h.registration.Get(draftID)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid": h.registration.StepValid(draft, services.StepAgreement),
		"draft": viewOf(draft),
	})
}

// PostCaptchaVerify handles POST /api/v1/register/:id/captcha/verify.
func (h *RegisterHandlers) PostCaptchaVerify(c *gin.Context) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	draftID := c.Param("id")
	correct, err := h.registration.VerifyCaptcha(draftID, req.Answer)
	if err != nil {
		h.draftError(c, err)
		return
	}

	draft, getErr := h.registration.Get(draftID)
	if getErr != nil {
		h.draftError(c, getErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"verified": correct,
		"error":    draft.CaptchaError,
	})
}

// PostCaptchaRefresh handles POST /api/v1/register/:id/captcha/refresh -
// swaps in a fresh challenge and resets the verified state.
func (h *RegisterHandlers) PostCaptchaRefresh(c *gin.Context) {
	challenge, err := h.registration.RefreshCaptcha(c.Param("id"))
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenge": challengeView{
		Type:        string(challenge.Type),
		Question:    challenge.Question,
		Description: challenge.Description,
	}})
}

// PostNext handles POST /api/v1/register/:id/next - advances one step when
// the current step's guard is satisfied.
func (h *RegisterHandlers) PostNext(c *gin.Context) {
	step, moved, err := h.registration.Advance(c.Param("id"))
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currentStep": int(step), "moved": moved})
}

// PostBack handles POST /api/v1/register/:id/back - always allowed, data kept.
func (h *RegisterHandlers) PostBack(c *gin.Context) {
	step, err := h.registration.Back(c.Param("id"))
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currentStep": int(step)})
}

// PostComplete handles POST /api/v1/register/:id/complete - finishes the
// wizard and registers the user.
func (h *RegisterHandlers) PostComplete(c *gin.Context) {
	marker := h.perfTracker.StartOperation("register_complete_request")
	defer marker.Complete()

	result, err := h.registration.Complete(c.Param("id"))
	if err != nil {
		marker.SetError(err)
		h.draftError(c, err)
		return
	}

	marker.SetSuccess(result.Success)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": result.Message})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": result.Message, "user": result.User})
}

// DeleteDraft handles DELETE /api/v1/register/:id - abandons the wizard.
func (h *RegisterHandlers) DeleteDraft(c *gin.Context) {
	h.registration.Discard(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
