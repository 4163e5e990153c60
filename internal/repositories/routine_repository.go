package repositories

import "gymtrack/internal/models"

// RoutineRepository defines the interface for routine data access.
type RoutineRepository interface {
	GetPremade() ([]models.Routine, error)
	GetByUser(userID string) ([]models.Routine, error)
	GetByID(id string) (*models.Routine, error)
	Create(routine *models.Routine) error
	Update(routine *models.Routine) error
	Delete(id string) error
}
