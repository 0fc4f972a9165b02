package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/vitality-planner/internal/domain"
	"alcyxob/vitality-planner/internal/service"
)

// PlanHandler serves profile submission, the plan and the session state.
type PlanHandler struct {
	planner *service.Planner
}

func NewPlanHandler(planner *service.Planner) *PlanHandler {
	return &PlanHandler{planner: planner}
}

// --- DTOs for API ---

// SubmitProfileRequest is the profile form. Enumerated fields other than
// gender carry commas and parentheses, so they are checked by
// domain.Profile.Validate rather than a oneof tag.
type SubmitProfileRequest struct {
	Age               int     `json:"age" binding:"required,gt=0,lte=150"`
	Gender            string  `json:"gender" binding:"required,oneof=Male Female Other"`
	Weight            float64 `json:"weight" binding:"required,gt=0"` // kg
	Height            float64 `json:"height" binding:"required,gt=0"` // cm
	ActivityLevel     string  `json:"activityLevel" binding:"required"`
	Goal              string  `json:"goal" binding:"required"`
	DietaryPreference string  `json:"dietaryPreference" binding:"required"`
	Restrictions      string  `json:"restrictions" binding:"max=2000"`
}

func (r SubmitProfileRequest) toDomain() domain.Profile {
	return domain.Profile{
		Age:               r.Age,
		Gender:            domain.Gender(r.Gender),
		Weight:            r.Weight,
		Height:            r.Height,
		ActivityLevel:     domain.ActivityLevel(r.ActivityLevel),
		Goal:              domain.HealthGoal(r.Goal),
		DietaryPreference: domain.DietType(r.DietaryPreference),
		Restrictions:      r.Restrictions,
	}
}

// --- Handler Methods ---

// SubmitProfile godoc
// @Summary Generate a wellness plan
// @Description Stores the profile and generates a plan in a single attempt.
// @Tags Plan
// @Accept json
// @Produce json
// @Param profile body SubmitProfileRequest true "User profile"
// @Success 201 {object} domain.WellnessPlan
// @Failure 400 {object} gin.H "Invalid profile"
// @Failure 409 {object} gin.H "A plan is already being generated"
// @Failure 502 {object} gin.H "Generation failed"
// @Failure 503 {object} gin.H "Generation credential missing"
// @Router /plan [post]
func (h *PlanHandler) SubmitProfile(c *gin.Context) {
	var req SubmitProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// A client hanging up does not abandon the generation; the result is
	// still stored for the next poll.
	ctx := context.WithoutCancel(c.Request.Context())

	plan, err := h.planner.Submit(ctx, req.toDomain())
	if err != nil {
		var configErr *service.ConfigurationError
		switch {
		case errors.Is(err, domain.ErrInvalidProfile):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGenerationInProgress):
			abortWithError(c, http.StatusConflict, service.UserMessage(err))
		case errors.As(err, &configErr):
			abortWithError(c, http.StatusServiceUnavailable, service.UserMessage(err))
		default:
			abortWithError(c, http.StatusBadGateway, service.UserMessage(err))
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, ok := h.planner.Plan()
	if !ok {
		abortWithError(c, http.StatusNotFound, "No wellness plan yet")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) GetProfile(c *gin.Context) {
	profile, ok := h.planner.Profile()
	if !ok {
		abortWithError(c, http.StatusNotFound, "No profile submitted")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ResetSession clears the profile, the plan and the tracker.
func (h *PlanHandler) ResetSession(c *gin.Context) {
	h.planner.Reset(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *PlanHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.planner.State())
}

// DismissError is the retry affordance: the error goes away, the profile stays.
func (h *PlanHandler) DismissError(c *gin.Context) {
	h.planner.DismissError()
	c.JSON(http.StatusOK, h.planner.State())
}
