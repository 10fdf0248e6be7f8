package model

import (
	"time"
)

type UserRole string

const (
	Member UserRole = "member"
	Admin  UserRole = "admin"
)

// User is an authenticated account plus its cumulative workout counters.
// Points and TotalExercises are mutated only by the completion transaction;
// under the fixed-reward policy points track total_exercises, but they are
// tracked independently so a future variable reward does not break history.
// swagger:model User
type User struct {
	BaseModel
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:100;unique;not null" json:"email"`
	Password       string    `gorm:"size:100;not null" json:"-"`
	Role           UserRole  `gorm:"type:enum('member','admin');default:'member'" json:"role"`
	Points         int       `gorm:"default:0" json:"points"`
	TotalExercises int       `gorm:"default:0" json:"totalExercises"`
	Avatar         string    `gorm:"size:255" json:"avatar"`
	Disabled       bool      `gorm:"default:false" json:"disabled"`
	LastLogin      time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen       time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
