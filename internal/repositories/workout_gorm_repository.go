package repositories

import (
	"errors"
	"fmt"

	"gymtrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMWorkoutRepository is a GORM implementation of WorkoutRepository.
type GORMWorkoutRepository struct {
	db *gorm.DB
}

// NewGORMWorkoutRepository creates a new instance of GORMWorkoutRepository.
func NewGORMWorkoutRepository(db *gorm.DB) *GORMWorkoutRepository {
	return &GORMWorkoutRepository{
		db: db,
	}
}

// GetByUser retrieves all workouts for the given user, newest date first,
// with each workout's routine resolved. A workout whose routine has been
// deleted is still returned, with a nil routine.
func (r *GORMWorkoutRepository) GetByUser(userID string) ([]models.Workout, error) {
	var workouts []models.Workout
	err := r.db.Preload("Routine").
		Order("date DESC").
		Find(&workouts, "user_id = ?", userID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get workouts for user %s: %w", userID, err)
	}
	return workouts, nil
}

// GetByID retrieves a single workout by its ID, with its routine resolved.
func (r *GORMWorkoutRepository) GetByID(id string) (*models.Workout, error) {
	var workout models.Workout
	if err := r.db.Preload("Routine").First(&workout, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("workout with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get workout by ID %s: %w", id, err)
	}
	return &workout, nil
}

// Create creates a new workout in the database.
func (r *GORMWorkoutRepository) Create(workout *models.Workout) error {
	if workout.ID == "" {
		workout.ID = uuid.New().String()
	}
	if err := r.db.Omit("Routine").Create(workout).Error; err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

// Delete deletes a workout by its ID from the database.
func (r *GORMWorkoutRepository) Delete(id string) error {
	res := r.db.Delete(&models.Workout{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete workout: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("workout with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
