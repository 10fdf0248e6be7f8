package controller

import (
	"errors"
	"time"

	"pilates_diario_backend/internal/service"
	"pilates_diario_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WorkoutController struct {
	WorkoutService *service.WorkoutService
}

func NewWorkoutController(workoutService *service.WorkoutService) *WorkoutController {
	return &WorkoutController{WorkoutService: workoutService}
}

// Today godoc
// @Summary Today's exercise
// @Description Returns the exercise assigned to the current calendar day and whether the user already completed it. An empty catalog yields a null exercise, not an error.
// @Tags workout
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /api/workout/today [get]
func (c *WorkoutController) Today(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	exercise, completed, err := c.WorkoutService.TodayExercise(claims.UserID, time.Now())
	if err != nil {
		if errors.Is(err, util.ErrEmptyCatalog) {
			util.Success(ctx, gin.H{
				"exercise":       nil,
				"completedToday": completed,
			})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"exercise":       exercise,
		"completedToday": completed,
	})
}

// Start godoc
// @Summary Start the viewing session
// @Description Begins (or restarts) the countdown for today's exercise; restarting resets it
// @Tags workout
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.WorkoutStatus}
// @Failure 404 {object} util.Response "No exercise available"
// @Router /api/workout/start [post]
func (c *WorkoutController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.WorkoutService.Start(claims.UserID, time.Now())
	if err != nil {
		if errors.Is(err, util.ErrEmptyCatalog) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, status)
}

// Status godoc
// @Summary Session status
// @Description Reports the gate state and remaining countdown seconds
// @Tags workout
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.WorkoutStatus}
// @Router /api/workout/status [get]
func (c *WorkoutController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, c.WorkoutService.Status(claims.UserID))
}

// Abandon godoc
// @Summary Abandon the session
// @Description Drops the current viewing session without recording anything
// @Tags workout
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/workout/abandon [post]
func (c *WorkoutController) Abandon(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	c.WorkoutService.Abandon(claims.UserID)
	util.Success(ctx, nil)
}

// Complete godoc
// @Summary Confirm today's workout
// @Description Records the completion and credits the reward exactly once per day
// @Tags workout
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.CompletionResult}
// @Failure 409 {object} util.Response "Already completed today"
// @Failure 422 {object} util.Response "Countdown not finished"
// @Router /api/workout/complete [post]
func (c *WorkoutController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.WorkoutService.Complete(claims.UserID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAlreadyCompletedToday):
			util.Conflict(ctx, "already completed today")
		case errors.Is(err, util.ErrNotEligible):
			util.Error(ctx, 422, "countdown not finished")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
