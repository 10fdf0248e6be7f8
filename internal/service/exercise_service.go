package service

import (
	"context"
	"os"

	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/internal/repository"
	"pilates_diario_backend/internal/util"

	"pilates_diario_backend/pkg/logger"

	"go.uber.org/zap"
)

// ExerciseInput is the catalog entry metadata the admin supplies.
type ExerciseInput struct {
	Title           string
	Description     string
	Difficulty      string
	DayOrder        int
	DurationSeconds int
}

// ExerciseService manages the exercise catalog: the upload flow against the
// video CDN and the CRUD around the resulting records.
type ExerciseService struct {
	ExerciseRepo *repository.ExerciseRepository
	Video        *VideoService
}

func NewExerciseService(exerciseRepo *repository.ExerciseRepository, video *VideoService) *ExerciseService {
	return &ExerciseService{
		ExerciseRepo: exerciseRepo,
		Video:        video,
	}
}

// CreateFromGUID registers an exercise whose video was already transferred
// out of band; only the opaque embed locator is stored.
func (s *ExerciseService) CreateFromGUID(guid string, input ExerciseInput) (*model.Exercise, error) {
	exercise := &model.Exercise{
		Title:           input.Title,
		Description:     input.Description,
		VideoURL:        s.Video.EmbedURL(guid),
		DurationSeconds: input.DurationSeconds,
		Difficulty:      input.Difficulty,
		DayOrder:        input.DayOrder,
		Active:          true,
	}

	if err := s.ExerciseRepo.Create(exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// UploadAndCreate runs the full admin flow: create the video on the CDN,
// push the binary from the spooled temp file, then insert the catalog row.
// The exercise row is only written after the transfer succeeds. When no
// duration was declared, the local file is probed for one before upload.
func (s *ExerciseService) UploadAndCreate(ctx context.Context, localPath string, input ExerciseInput) (*model.Exercise, error) {
	if input.DurationSeconds <= 0 {
		if info, err := util.ProbeVideo(localPath); err == nil && info.Duration > 0 {
			input.DurationSeconds = int(info.Duration)
		} else if err != nil {
			// Not fatal: the gate falls back to the default countdown.
			logger.Log.Warn("could not probe video duration", zap.String("path", localPath), zap.Error(err))
		}
	}

	guid, err := s.Video.CreateVideo(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := s.Video.UploadVideo(ctx, guid, file); err != nil {
		return nil, err
	}

	return s.CreateFromGUID(guid, input)
}

func (s *ExerciseService) List(page, limit int) ([]model.Exercise, int64, error) {
	return s.ExerciseRepo.List(page, limit)
}

func (s *ExerciseService) Update(id uint, input ExerciseInput) (*model.Exercise, error) {
	exercise, err := s.ExerciseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	exercise.Title = input.Title
	exercise.Description = input.Description
	exercise.Difficulty = input.Difficulty
	exercise.DayOrder = input.DayOrder
	if input.DurationSeconds > 0 {
		exercise.DurationSeconds = input.DurationSeconds
	}

	if err := s.ExerciseRepo.Update(exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *ExerciseService) SetActive(id uint, active bool) error {
	return s.ExerciseRepo.SetActive(id, active)
}
