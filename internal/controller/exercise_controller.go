package controller

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pilates_diario_backend/internal/service"
	"pilates_diario_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
}

func NewExerciseController(exerciseService *service.ExerciseService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService}
}

// ExerciseRequest is the admin payload for catalog entries.
type ExerciseRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Difficulty      string `json:"difficulty"`
	DayOrder        int    `json:"dayOrder" binding:"required,min=1"`
	DurationSeconds int    `json:"durationSeconds"`
}

func (r ExerciseRequest) toInput() service.ExerciseInput {
	return service.ExerciseInput{
		Title:           r.Title,
		Description:     r.Description,
		Difficulty:      r.Difficulty,
		DayOrder:        r.DayOrder,
		DurationSeconds: r.DurationSeconds,
	}
}

// List godoc
// @Summary List exercises (admin)
// @Tags exercises
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/exercises [get]
func (c *ExerciseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	exercises, total, err := c.ExerciseService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  exercises,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// CreateFromGUIDRequest registers an exercise whose video is already in the CDN library.
type CreateFromGUIDRequest struct {
	ExerciseRequest
	GUID string `json:"guid" binding:"required"`
}

// Create godoc
// @Summary Create an exercise from an uploaded video GUID (admin)
// @Description Registers a catalog entry pointing at a video already in the CDN library
// @Tags exercises
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateFromGUIDRequest true "Exercise"
// @Success 201 {object} util.Response{data=model.Exercise}
// @Router /api/admin/exercises [post]
func (c *ExerciseController) Create(ctx *gin.Context) {
	var req CreateFromGUIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.ExerciseService.CreateFromGUID(req.GUID, req.toInput())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, exercise)
}

// Upload godoc
// @Summary Upload a video and create its exercise (admin)
// @Description Accepts a multipart video, pushes it to the CDN library and registers the catalog entry
// @Tags exercises
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   video formData file true "Video file"
// @Param   title formData string true "Title"
// @Param   description formData string false "Description"
// @Param   difficulty formData string false "Difficulty"
// @Param   dayOrder formData int true "Position in the rotation"
// @Param   durationSeconds formData int false "Countdown override in seconds"
// @Success 201 {object} util.Response{data=model.Exercise}
// @Failure 400 {object} util.Response "Missing file or unsupported format"
// @Router /api/admin/exercises/upload [post]
func (c *ExerciseController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported video format")
		return
	}

	title := ctx.PostForm("title")
	dayOrder, _ := strconv.Atoi(ctx.PostForm("dayOrder"))
	if title == "" || dayOrder < 1 {
		util.BadRequest(ctx, "title and dayOrder are required")
		return
	}
	durationSeconds, _ := strconv.Atoi(ctx.PostForm("durationSeconds"))

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	exercise, err := c.ExerciseService.UploadAndCreate(ctx.Request.Context(), tmpPath, service.ExerciseInput{
		Title:           title,
		Description:     ctx.PostForm("description"),
		Difficulty:      ctx.PostForm("difficulty"),
		DayOrder:        dayOrder,
		DurationSeconds: durationSeconds,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, exercise)
}

// Update godoc
// @Summary Update an exercise (admin)
// @Tags exercises
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exercise ID"
// @Param   body body ExerciseRequest true "Exercise"
// @Success 200 {object} util.Response{data=model.Exercise}
// @Failure 404 {object} util.Response
// @Router /api/admin/exercises/{id} [put]
func (c *ExerciseController) Update(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req ExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.ExerciseService.Update(id, req.toInput())
	if err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, exercise)
}

// SetActiveRequest toggles an exercise in or out of the rotation.
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive godoc
// @Summary Activate or deactivate an exercise (admin)
// @Description Deactivated exercises leave the rotation but keep their completion history
// @Tags exercises
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exercise ID"
// @Param   body body SetActiveRequest true "Flag"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/exercises/{id}/active [patch]
func (c *ExerciseController) SetActive(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req SetActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ExerciseService.SetActive(id, *req.Active); err != nil {
		if errors.Is(err, util.ErrExerciseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
