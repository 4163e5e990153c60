package repositories

import "gymtrack/internal/models"

// WorkoutRepository defines the interface for workout data access. Reads
// resolve the referenced routine alongside each workout.
type WorkoutRepository interface {
	GetByUser(userID string) ([]models.Workout, error)
	GetByID(id string) (*models.Workout, error)
	Create(workout *models.Workout) error
	Delete(id string) error
}
