package repository

import (
	"errors"

	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/internal/util"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) Create(exercise *model.Exercise) error {
	return r.DB.Create(exercise).Error
}

func (r *ExerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.DB.First(&exercise, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExerciseNotFound
	}
	return &exercise, err
}

// FindActiveOrdered is the catalog snapshot the daily selector runs over:
// active exercises by day_order ascending, id as the stable tiebreak.
func (r *ExerciseRepository) FindActiveOrdered() ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.DB.Where("active = ?", true).
		Order("day_order ASC, id ASC").
		Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepository) List(page, limit int) ([]model.Exercise, int64, error) {
	var exercises []model.Exercise
	var total int64

	query := r.DB.Model(&model.Exercise{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("day_order ASC, id ASC").
		Offset(offset).Limit(limit).
		Find(&exercises).Error
	return exercises, total, err
}

func (r *ExerciseRepository) Update(exercise *model.Exercise) error {
	return r.DB.Save(exercise).Error
}

// SetActive soft-(de)activates an exercise; rows are never deleted so past
// completions keep their reference.
func (r *ExerciseRepository) SetActive(id uint, active bool) error {
	result := r.DB.Model(&model.Exercise{}).
		Where("id = ?", id).
		Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrExerciseNotFound
	}
	return nil
}
