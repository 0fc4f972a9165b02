package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/vitality-planner/internal/domain"
	"alcyxob/vitality-planner/internal/service"
)

// TrackerHandler exposes the adherence tracker of the current plan.
type TrackerHandler struct {
	planner *service.Planner
}

func NewTrackerHandler(planner *service.Planner) *TrackerHandler {
	return &TrackerHandler{planner: planner}
}

// SelectDateRequest moves the selected date. Delta may be negative.
type SelectDateRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

type ToggleHabitRequest struct {
	Date  string `json:"date"` // YYYY-MM-DD, defaults to the selected date
	Title string `json:"title" binding:"required"`
}

type ToggleExerciseRequest struct {
	Date string `json:"date"`
	Day  string `json:"day" binding:"required"`
}

// DayResponse is what the dashboard needs to render one date.
type DayResponse struct {
	SelectedDate domain.Date          `json:"selectedDate"`
	Date         domain.Date          `json:"date"`
	Progress     domain.DailyProgress `json:"progress"`
	Completion   int                  `json:"completion"`
	TotalHabits  int                  `json:"totalHabits"`
}

func (h *TrackerHandler) dayResponse(date domain.Date) DayResponse {
	day := h.planner.Day(date)
	total := 0
	if plan, ok := h.planner.Plan(); ok {
		total = len(plan.Habits)
	}
	return DayResponse{
		SelectedDate: h.planner.Tracker().SelectedDate(),
		Date:         day.Date,
		Progress:     day.Progress,
		Completion:   day.Completion,
		TotalHabits:  total,
	}
}

// resolveDate parses raw or falls back to the selected date. It aborts the
// request on a malformed date.
func (h *TrackerHandler) resolveDate(c *gin.Context, raw string) (domain.Date, bool) {
	if raw == "" {
		return h.planner.Tracker().SelectedDate(), true
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return "", false
	}
	return date, true
}

func (h *TrackerHandler) requirePlan(c *gin.Context) bool {
	if _, ok := h.planner.Plan(); !ok {
		abortWithError(c, http.StatusNotFound, "No wellness plan yet")
		return false
	}
	return true
}

// GetDay godoc
// @Summary Progress for one date
// @Tags Tracker
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to the selected date"
// @Success 200 {object} DayResponse
// @Router /tracker [get]
func (h *TrackerHandler) GetDay(c *gin.Context) {
	date, ok := h.resolveDate(c, c.Query("date"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.dayResponse(date))
}

func (h *TrackerHandler) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	selected := h.planner.Tracker().SelectDate(*req.Delta)
	c.JSON(http.StatusOK, h.dayResponse(selected))
}

// ToggleHabit godoc
// @Summary Tick or untick a habit
// @Tags Tracker
// @Accept json
// @Produce json
// @Param request body ToggleHabitRequest true "Habit title and optional date"
// @Success 200 {object} DayResponse
// @Failure 400 {object} map[string]string "Validation error or unknown habit"
// @Failure 404 {object} map[string]string "No wellness plan yet"
// @Router /tracker/habits/toggle [post]
func (h *TrackerHandler) ToggleHabit(c *gin.Context) {
	var req ToggleHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if !h.requirePlan(c) {
		return
	}
	date, ok := h.resolveDate(c, req.Date)
	if !ok {
		return
	}
	if _, err := h.planner.ToggleHabit(c.Request.Context(), date, req.Title); err != nil {
		abortWithToggleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.dayResponse(date))
}

func (h *TrackerHandler) ToggleExercise(c *gin.Context) {
	var req ToggleExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	if !h.requirePlan(c) {
		return
	}
	date, ok := h.resolveDate(c, req.Date)
	if !ok {
		return
	}
	if _, err := h.planner.ToggleExercise(c.Request.Context(), date, req.Day); err != nil {
		abortWithToggleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.dayResponse(date))
}

func abortWithToggleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownHabit):
		abortWithError(c, http.StatusBadRequest, "Unknown habit: not in the current plan")
	case errors.Is(err, service.ErrUnknownExercise):
		abortWithError(c, http.StatusBadRequest, "Unknown exercise day: not in the current plan")
	case errors.Is(err, service.ErrNoPlan):
		abortWithError(c, http.StatusNotFound, "No wellness plan yet")
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to update tracker")
	}
}

// GetLedger returns every recorded date.
func (h *TrackerHandler) GetLedger(c *gin.Context) {
	c.JSON(http.StatusOK, h.planner.Tracker().Ledger())
}
