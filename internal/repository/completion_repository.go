package repository

import (
	"errors"
	"strings"
	"time"

	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/internal/util"

	"gorm.io/gorm"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

// dateOnly truncates to the local calendar day the DATE column stores.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (r *CompletionRepository) FindByUserAndDate(userID uint, date time.Time) (*model.Completion, error) {
	var completion model.Completion
	err := r.DB.Where("user_id = ? AND date = ?", userID, dateOnly(date).Format(util.DateFormat)).
		First(&completion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

// Record writes the completion ledger entry and advances the profile
// counters as one transaction, ledger insert first. The unique index on
// (user_id, date) turns a duplicate confirm into ErrAlreadyCompletedToday
// with no mutation; a failed counter update rolls the insert back and is
// reported as ErrPartialWrite so the service can log it for reconciliation.
func (r *CompletionRepository) Record(userID, exerciseID uint, date time.Time, points int) (*model.User, error) {
	var user model.User

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		completion := &model.Completion{
			UserID:        userID,
			ExerciseID:    exerciseID,
			Date:          dateOnly(date),
			PointsAwarded: points,
		}
		if err := tx.Create(completion).Error; err != nil {
			if isDuplicateKey(err) {
				return util.ErrAlreadyCompletedToday
			}
			return err
		}

		result := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"points":          gorm.Expr("points + ?", points),
				"total_exercises": gorm.Expr("total_exercises + ?", 1),
			})
		if result.Error != nil {
			return util.ErrPartialWrite
		}
		if result.RowsAffected == 0 {
			return util.ErrUserNotFound
		}

		return tx.First(&user, userID).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *CompletionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Completion{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL error 1062 surfaces as a plain error on some driver versions.
	return strings.Contains(err.Error(), "Duplicate entry")
}
