package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kwatts/networth/internal/models"
	"github.com/kwatts/networth/internal/repository"
	"github.com/kwatts/networth/internal/validate"
)

const goalsStateKey = "goals"

// GoalService manages the persisted goal set. The one-year short-term window
// is enforced at Set time only; a stored goal is served as-is afterwards.
type GoalService struct {
	stateRepo *repository.StateRepository
}

// NewGoalService creates a new GoalService
func NewGoalService(stateRepo *repository.StateRepository) *GoalService {
	return &GoalService{stateRepo: stateRepo}
}

// Get returns the stored goals, or an empty set when none were saved.
func (s *GoalService) Get(ctx context.Context) (models.Goals, error) {
	blob, ok, err := s.stateRepo.Load(ctx, goalsStateKey)
	if err != nil {
		return models.Goals{}, fmt.Errorf("failed to load goals: %w", err)
	}
	if !ok {
		return models.Goals{}, nil
	}
	var goals models.Goals
	if err := json.Unmarshal(blob, &goals); err != nil {
		return models.Goals{}, fmt.Errorf("failed to decode stored goals: %w", err)
	}
	return goals, nil
}

// Set validates and stores a goal set, replacing any previous one.
func (s *GoalService) Set(ctx context.Context, goals models.Goals) (models.Goals, error) {
	validated, err := validate.ValidateGoals(goals)
	if err != nil {
		return models.Goals{}, err
	}

	blob, err := json.Marshal(validated)
	if err != nil {
		return models.Goals{}, fmt.Errorf("failed to encode goals: %w", err)
	}
	if err := s.stateRepo.Save(ctx, goalsStateKey, blob); err != nil {
		return models.Goals{}, fmt.Errorf("failed to save goals: %w", err)
	}
	return validated, nil
}

// Clear removes the stored goals.
func (s *GoalService) Clear(ctx context.Context) error {
	if err := s.stateRepo.Delete(ctx, goalsStateKey); err != nil {
		return fmt.Errorf("failed to clear goals: %w", err)
	}
	return nil
}
