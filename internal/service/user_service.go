package service

import (
	"time"

	"pilates_diario_backend/internal/model"
	"pilates_diario_backend/internal/repository"
)

// UserService handles profile reads and updates. The points and
// total_exercises counters are off limits here: only the completion
// transaction may move them.
type UserService struct {
	UserRepo       *repository.UserRepository
	CompletionRepo *repository.CompletionRepository
}

func NewUserService(userRepo *repository.UserRepository, completionRepo *repository.CompletionRepository) *UserService {
	return &UserService{
		UserRepo:       userRepo,
		CompletionRepo: completionRepo,
	}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *UserService) GetUserByEmail(email string) (*model.User, error) {
	return s.UserRepo.FindByEmail(email)
}

func (s *UserService) UpdateDisplayName(userID uint, name string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.UpdatedAt = time.Now()
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateAvatar(userID uint, avatarURL string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}

	user.Avatar = avatarURL
	user.UpdatedAt = time.Now()
	return s.UserRepo.Update(user)
}

// UserStats is the profile screen summary.
type UserStats struct {
	Points         int  `json:"points"`
	TotalExercises int  `json:"totalExercises"`
	CompletedToday bool `json:"completedToday"`
}

func (s *UserService) GetStats(userID uint, date time.Time) (*UserStats, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	completion, err := s.CompletionRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		Points:         user.Points,
		TotalExercises: user.TotalExercises,
		CompletedToday: completion != nil,
	}, nil
}
