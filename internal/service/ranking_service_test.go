package service

import (
	"context"
	"testing"

	"pilates_diario_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles struct {
	users []model.User
	err   error
}

func (f *fakeProfiles) FindRankable(limit int) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.users) {
		return f.users[:limit], nil
	}
	return f.users, nil
}

func rankedUser(id uint, name string, points int) model.User {
	user := model.User{Name: name, Points: points}
	user.ID = id
	return user
}

func TestComputeRankingSequentialPositions(t *testing.T) {
	// already sorted the way the store returns them: points desc,
	// then creation order
	profiles := []model.User{
		rankedUser(1, "Ana", 300),
		rankedUser(2, "Bia", 300),
		rankedUser(3, "Carla", 100),
	}

	entries := ComputeRanking(profiles)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "Ana", entries[0].Name)
	assert.Equal(t, 2, entries[1].Position, "tied points still get the next position")
	assert.Equal(t, "Bia", entries[1].Name)
	assert.Equal(t, 3, entries[2].Position)
}

func TestComputeRankingIsReproducible(t *testing.T) {
	profiles := []model.User{
		rankedUser(1, "Ana", 50),
		rankedUser(2, "Bia", 50),
		rankedUser(3, "Carla", 50),
	}

	first := ComputeRanking(profiles)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, ComputeRanking(profiles))
	}
}

func TestTopClampsToConfiguredLimit(t *testing.T) {
	users := make([]model.User, 10)
	for i := range users {
		users[i] = rankedUser(uint(i+1), "user", 100-i)
	}

	svc := NewRankingService(&fakeProfiles{users: users}, nil, 5)

	entries, err := svc.Top(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	// asking for more than the cap still gets the cap
	entries, err = svc.Top(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	entries, err = svc.Top(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestForUserOutsideTopN(t *testing.T) {
	users := make([]model.User, 10)
	for i := range users {
		users[i] = rankedUser(uint(i+1), "user", 100-i)
	}

	svc := NewRankingService(&fakeProfiles{users: users}, nil, 5)

	entry, err := svc.ForUser(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 9, entry.Position, "own position resolves beyond the visible window")
}

func TestForUserUnknown(t *testing.T) {
	svc := NewRankingService(&fakeProfiles{users: []model.User{rankedUser(1, "Ana", 10)}}, nil, 5)

	entry, err := svc.ForUser(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestTopEmptyRanking(t *testing.T) {
	svc := NewRankingService(&fakeProfiles{}, nil, 5)

	entries, err := svc.Top(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
