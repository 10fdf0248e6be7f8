package model

import (
	"time"
)

// Completion is the immutable fact that a user finished the day's exercise.
// The unique index on (user_id, date) is the sole dedup mechanism: the date
// is the user's local calendar day, not the exercise id, and concurrent
// confirms race on the insert with exactly one winner.
// swagger:model Completion
type Completion struct {
	BaseModel
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_completion_date" json:"userId"`
	ExerciseID    uint      `gorm:"not null;index" json:"exerciseId"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_completion_date" json:"date"`
	PointsAwarded int       `gorm:"not null" json:"pointsAwarded"`
}

func (Completion) TableName() string {
	return "exercise_completions"
}
