package v1

import (
	"net/http"
	"strconv"

	"employee-onboarding-backend/internal/delivery/http/response"
	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OnboardingHandler struct {
	onboardingUC domain.OnboardingUsecase
}

// JumpRequest selects a step for jumpTo
type JumpRequest struct {
	Step domain.StepID `json:"step" binding:"required,min=1,max=5"`
}

func NewOnboardingHandler(r *gin.RouterGroup, onboardingUC domain.OnboardingUsecase, submitLimit gin.HandlerFunc) {
	handler := &OnboardingHandler{onboardingUC: onboardingUC}

	sessions := r.Group("/sessions")
	{
		sessions.POST("", handler.StartSession)
		sessions.GET("/:id", handler.GetSession)
		sessions.PATCH("/:id/record", handler.UpdateRecord)
		sessions.POST("/:id/skills/:skill", handler.SelectSkill)
		sessions.DELETE("/:id/skills/:skill", handler.DeselectSkill)
		sessions.GET("/:id/steps/:step/validation", handler.ValidateStep)
		sessions.POST("/:id/advance", handler.Advance)
		sessions.POST("/:id/retreat", handler.Retreat)
		sessions.POST("/:id/jump", handler.JumpTo)
		sessions.GET("/:id/summary", handler.Summary)
		sessions.POST("/:id/submit", submitLimit, handler.Submit)
		sessions.POST("/:id/reset", handler.Reset)
	}
}

// StartSession godoc
// @Summary      Start onboarding
// @Description  Create a wizard session on step 1 with the default record
// @Tags         onboarding
// @Produce      json
// @Success      201  {object}  response.Response{data=domain.SessionView}
// @Failure      401  {object}  response.Response
// @Router       /onboarding/sessions [post]
// @Security     BearerAuth
func (h *OnboardingHandler) StartSession(c *gin.Context) {
	view, err := h.onboardingUC.StartSession(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Onboarding session started", view)
}

// GetSession godoc
// @Summary      Get wizard state
// @Description  Current step, completed steps, submission status and the record
// @Tags         onboarding
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response{data=domain.SessionView}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /onboarding/sessions/{id} [get]
// @Security     BearerAuth
func (h *OnboardingHandler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.onboardingUC.GetSession(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding session", view)
}

// UpdateRecord godoc
// @Summary      Write record fields
// @Description  Partial update. Changing the department clears the manager; skills and experience stay aligned.
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Session ID"
// @Param        request  body      domain.RecordPatch  true  "Fields to write"
// @Success      200  {object}  response.Response{data=domain.SessionView}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /onboarding/sessions/{id}/record [patch]
// @Security     BearerAuth
func (h *OnboardingHandler) UpdateRecord(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var patch domain.RecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	view, err := h.onboardingUC.UpdateRecord(c.Request.Context(), id, &patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Record updated", view)
}

// SelectSkill godoc
// @Summary      Select a skill
// @Description  Adds the skill with 0 years of experience
// @Tags         onboarding
// @Produce      json
// @Param        id     path      string  true  "Session ID"
// @Param        skill  path      string  true  "Skill name"
// @Success      200  {object}  response.Response{data=domain.SessionView}
// @Failure      422  {object}  response.Response
// @Router       /onboarding/sessions/{id}/skills/{skill} [post]
// @Security     BearerAuth
func (h *OnboardingHandler) SelectSkill(c *gin.Context) {
	h.toggleSkill(c, true)
}

// DeselectSkill godoc
// @Summary      Deselect a skill
// @Description  Removes the skill and its experience entry
// @Tags         onboarding
// @Produce      json
// @Param        id     path      string  true  "Session ID"
// @Param        skill  path      string  true  "Skill name"
// @Success      200  {object}  response.Response{data=domain.SessionView}
// @Router       /onboarding/sessions/{id}/skills/{skill} [delete]
// @Security     BearerAuth
func (h *OnboardingHandler) DeselectSkill(c *gin.Context) {
	h.toggleSkill(c, false)
}

func (h *OnboardingHandler) toggleSkill(c *gin.Context, selected bool) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.onboardingUC.ToggleSkill(c.Request.Context(), id, c.Param("skill"), selected)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills updated", view)
}

// ValidateStep godoc
// @Summary      Validate one step
// @Description  Runs the step's rules against the current record without moving
// @Tags         onboarding
// @Produce      json
// @Param        id    path      string  true  "Session ID"
// @Param        step  path      int     true  "Step number (1-5)"
// @Success      200  {object}  response.Response{data=domain.StepValidation}
// @Failure      400  {object}  response.Response
// @Router       /onboarding/sessions/{id}/steps/{step}/validation [get]
// @Security     BearerAuth
func (h *OnboardingHandler) ValidateStep(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid step"))
		return
	}
	res, err := h.onboardingUC.ValidateStep(c.Request.Context(), id, domain.StepID(step))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Step validated", res)
}

// Advance godoc
// @Summary      Next step
// @Description  Validates the current step and moves forward when it passes
// @Tags         onboarding
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response{data=domain.SessionView}
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /onboarding/sessions/{id}/advance [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Advance(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.onboardingUC.Advance(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Step completed", view)
}

// Retreat godoc
// @Summary      Previous step
// @Tags         onboarding
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response{data=domain.SessionView}
// @Failure      409  {object}  response.Response
// @Router       /onboarding/sessions/{id}/retreat [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Retreat(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.onboardingUC.Retreat(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Moved back", view)
}

// JumpTo godoc
// @Summary      Jump to a step
// @Description  Allowed for step 1 or any step whose predecessor is completed
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        id       path      string       true  "Session ID"
// @Param        request  body      JumpRequest  true  "Target step"
// @Success      200  {object}  response.Response{data=domain.SessionView}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /onboarding/sessions/{id}/jump [post]
// @Security     BearerAuth
func (h *OnboardingHandler) JumpTo(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Step must be between 1 and 5"))
		return
	}
	view, err := h.onboardingUC.JumpTo(c.Request.Context(), id, req.Step)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Moved to step", view)
}

// Summary godoc
// @Summary      Review summary
// @Description  Age, manager name, salary unit and whether guardian fields apply
// @Tags         onboarding
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response{data=domain.ReviewSummary}
// @Router       /onboarding/sessions/{id}/summary [get]
// @Security     BearerAuth
func (h *OnboardingHandler) Summary(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	summary, err := h.onboardingUC.Summary(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Review summary", summary)
}

// Submit godoc
// @Summary      Submit onboarding
// @Description  Re-validates every step and hands the record to the submission service
// @Tags         onboarding
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response{data=domain.SubmissionReceipt}
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /onboarding/sessions/{id}/submit [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Submit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	receipt, err := h.onboardingUC.Submit(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding submitted", receipt)
}

// Reset godoc
// @Summary      Start over
// @Description  Clears the record and returns to step 1
// @Tags         onboarding
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response{data=domain.SessionView}
// @Failure      409  {object}  response.Response
// @Router       /onboarding/sessions/{id}/reset [post]
// @Security     BearerAuth
func (h *OnboardingHandler) Reset(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.onboardingUC.Reset(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Onboarding reset", view)
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid session ID"))
		return uuid.Nil, false
	}
	return id, true
}
