package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gymtrack/internal/models"
	"gymtrack/internal/repositories"
	"gymtrack/pkg/rabbitmq"
)

// WorkoutService handles business logic related to logged workouts.
type WorkoutService struct {
	workoutRepo repositories.WorkoutRepository
	mqClient    *rabbitmq.Client
}

// NewWorkoutService creates a new WorkoutService. mqClient may be nil, in
// which case no events are published.
func NewWorkoutService(workoutRepo repositories.WorkoutRepository, mqClient *rabbitmq.Client) *WorkoutService {
	return &WorkoutService{
		workoutRepo: workoutRepo,
		mqClient:    mqClient,
	}
}

// GetUserWorkouts retrieves the given user's workouts, newest date first,
// each with its routine resolved.
func (s *WorkoutService) GetUserWorkouts(userID string) ([]models.Workout, error) {
	return s.workoutRepo.GetByUser(userID)
}

// LogWorkout records a performed routine for the given user. The date
// defaults to now and the workout is marked completed. The returned record
// has its routine resolved by a read-back; the routine reference itself is
// not validated, so logging against a deleted routine still succeeds.
func (s *WorkoutService) LogWorkout(userID, routineID string, duration int, notes string) (*models.Workout, error) {
	workout := &models.Workout{
		UserID:    userID,
		RoutineID: routineID,
		Date:      time.Now(),
		Duration:  duration,
		Notes:     notes,
		Completed: true,
		CreatedAt: time.Now(),
	}

	if err := s.workoutRepo.Create(workout); err != nil {
		return nil, fmt.Errorf("failed to log workout: %w", err)
	}

	logged, err := s.workoutRepo.GetByID(workout.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back workout %s: %w", workout.ID, err)
	}

	s.publishWorkoutLogged(logged)

	return logged, nil
}

// DeleteWorkout deletes a workout owned by callerID.
func (s *WorkoutService) DeleteWorkout(id, callerID string) error {
	workout, err := s.workoutRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := assertOwner(workout, callerID); err != nil {
		return err
	}
	if err := s.workoutRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete workout %s: %w", id, err)
	}
	return nil
}

// publishWorkoutLogged emits a workout.logged event. Publishing is best
// effort: failures are logged and never fail the request.
func (s *WorkoutService) publishWorkoutLogged(workout *models.Workout) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"workoutID": workout.ID,
		"userID":    workout.UserID,
		"routineID": workout.RoutineID,
		"duration":  workout.Duration,
		"date":      workout.Date,
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal workout event: %v", err)
		return
	}
	if err := s.mqClient.Publish("workout", "workout.logged", body); err != nil {
		log.Printf("Warning: Failed to publish workout logged event for workout %s: %v", workout.ID, err)
	}
}
