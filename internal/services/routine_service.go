package services

import (
	"fmt"
	"strings"
	"time"

	"gymtrack/internal/models"
	"gymtrack/internal/repositories"
)

// RoutineService handles business logic related to workout routines.
type RoutineService struct {
	repo repositories.RoutineRepository
}

// NewRoutineService creates a new RoutineService.
func NewRoutineService(repo repositories.RoutineRepository) *RoutineService {
	return &RoutineService{
		repo: repo,
	}
}

// RoutineUpdate carries a partial update. A nil field is left unchanged; a
// present field overwrites the stored value, even with an empty one.
type RoutineUpdate struct {
	Name        *string            `json:"name" validate:"omitnil,max=100"`
	Description *string            `json:"description" validate:"omitnil,max=500"`
	Category    *string            `json:"category" validate:"omitnil,oneof=strength cardio flexibility sports custom"`
	Difficulty  *string            `json:"difficulty" validate:"omitnil,oneof=beginner intermediate advanced"`
	Duration    *string            `json:"duration"`
	Exercises   *[]models.Exercise `json:"exercises" validate:"omitnil,dive"`
}

// GetPremadeRoutines retrieves all premade routines.
func (s *RoutineService) GetPremadeRoutines() ([]models.Routine, error) {
	return s.repo.GetPremade()
}

// GetUserRoutines retrieves the custom routines owned by the given user.
func (s *RoutineService) GetUserRoutines(userID string) ([]models.Routine, error) {
	return s.repo.GetByUser(userID)
}

// GetRoutineByID retrieves a single routine by its ID.
func (s *RoutineService) GetRoutineByID(id string) (*models.Routine, error) {
	return s.repo.GetByID(id)
}

// CreateRoutine creates a custom routine owned by userID, applying defaults
// for any optional field left empty.
func (s *RoutineService) CreateRoutine(userID string, routine *models.Routine) (*models.Routine, error) {
	routine.ID = "" // IDs are assigned by the repository, never by the caller
	routine.Name = strings.TrimSpace(routine.Name)
	if routine.Name == "" {
		return nil, fmt.Errorf("routine name cannot be empty: %w", ErrValidation)
	}
	routine.Description = strings.TrimSpace(routine.Description)
	routine.UserID = userID
	routine.IsPremade = false
	routine.CreatedAt = time.Now()

	applyRoutineDefaults(routine)

	if err := s.repo.Create(routine); err != nil {
		return nil, fmt.Errorf("failed to create routine: %w", err)
	}
	return routine, nil
}

// UpdateRoutine applies a partial update to a routine owned by callerID.
func (s *RoutineService) UpdateRoutine(id, callerID string, update RoutineUpdate) (*models.Routine, error) {
	routine, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := assertOwner(routine, callerID); err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			// The name is required; an update cannot clear it
			return nil, fmt.Errorf("routine name cannot be empty: %w", ErrValidation)
		}
		routine.Name = name
	}
	if update.Description != nil {
		routine.Description = strings.TrimSpace(*update.Description)
	}
	if update.Category != nil {
		routine.Category = *update.Category
	}
	if update.Difficulty != nil {
		routine.Difficulty = *update.Difficulty
	}
	if update.Duration != nil {
		routine.Duration = *update.Duration
	}
	if update.Exercises != nil {
		routine.Exercises = *update.Exercises
		applyExerciseDefaults(routine.Exercises)
	}

	if err := s.repo.Update(routine); err != nil {
		return nil, fmt.Errorf("failed to update routine %s: %w", id, err)
	}
	return routine, nil
}

// DeleteRoutine deletes a routine owned by callerID. Workouts referencing
// the routine are left in place; their routine reference dangles.
func (s *RoutineService) DeleteRoutine(id, callerID string) error {
	routine, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := assertOwner(routine, callerID); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete routine %s: %w", id, err)
	}
	return nil
}

func applyRoutineDefaults(routine *models.Routine) {
	if routine.Category == "" {
		routine.Category = models.CategoryCustom
	}
	if routine.Difficulty == "" {
		routine.Difficulty = models.DifficultyBeginner
	}
	if routine.Duration == "" {
		routine.Duration = "45 min"
	}
	applyExerciseDefaults(routine.Exercises)
}

func applyExerciseDefaults(exercises []models.Exercise) {
	for i := range exercises {
		if exercises[i].Rest == "" {
			exercises[i].Rest = "60s"
		}
	}
}
