package repositories

import (
	"errors"
	"fmt"

	"gymtrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRoutineRepository is a GORM implementation of RoutineRepository.
type GORMRoutineRepository struct {
	db *gorm.DB
}

// NewGORMRoutineRepository creates a new instance of GORMRoutineRepository.
func NewGORMRoutineRepository(db *gorm.DB) *GORMRoutineRepository {
	return &GORMRoutineRepository{
		db: db,
	}
}

// GetPremade retrieves all premade routines from the database.
func (r *GORMRoutineRepository) GetPremade() ([]models.Routine, error) {
	var routines []models.Routine
	if err := r.db.Find(&routines, "is_premade = ?", true).Error; err != nil {
		return nil, fmt.Errorf("failed to get premade routines: %w", err)
	}
	return routines, nil
}

// GetByUser retrieves all non-premade routines owned by the given user.
func (r *GORMRoutineRepository) GetByUser(userID string) ([]models.Routine, error) {
	var routines []models.Routine
	if err := r.db.Find(&routines, "user_id = ? AND is_premade = ?", userID, false).Error; err != nil {
		return nil, fmt.Errorf("failed to get routines for user %s: %w", userID, err)
	}
	return routines, nil
}

// GetByID retrieves a single routine by its ID from the database.
func (r *GORMRoutineRepository) GetByID(id string) (*models.Routine, error) {
	var routine models.Routine
	if err := r.db.First(&routine, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("routine with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get routine by ID %s: %w", id, err)
	}
	return &routine, nil
}

// Create creates a new routine in the database.
func (r *GORMRoutineRepository) Create(routine *models.Routine) error {
	if routine.ID == "" {
		routine.ID = uuid.New().String()
	}
	if err := r.db.Create(routine).Error; err != nil {
		return fmt.Errorf("failed to create routine: %w", err)
	}
	return nil
}

// Update updates an existing routine in the database.
func (r *GORMRoutineRepository) Update(routine *models.Routine) error {
	res := r.db.Save(routine) // Save writes all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update routine: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for a missing row,
		// so we check RowsAffected instead.
		return fmt.Errorf("routine with ID %s: %w", routine.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a routine by its ID from the database. Workouts that
// reference the routine are left untouched.
func (r *GORMRoutineRepository) Delete(id string) error {
	res := r.db.Delete(&models.Routine{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete routine: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("routine with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
