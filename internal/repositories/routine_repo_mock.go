package repositories

import (
	"fmt"
	"sync"
	"time"

	"gymtrack/internal/models"

	"github.com/google/uuid"
)

// MockRoutineRepository is an in-memory implementation of RoutineRepository.
type MockRoutineRepository struct {
	routines map[string]models.Routine
	mu       sync.RWMutex
}

// NewMockRoutineRepository creates a new instance of MockRoutineRepository.
func NewMockRoutineRepository() *MockRoutineRepository {
	return &MockRoutineRepository{
		routines: make(map[string]models.Routine),
	}
}

// GetPremade returns all premade routines.
func (r *MockRoutineRepository) GetPremade() ([]models.Routine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routineList := make([]models.Routine, 0)
	for _, routine := range r.routines {
		if routine.IsPremade {
			routineList = append(routineList, routine)
		}
	}
	return routineList, nil
}

// GetByUser returns all non-premade routines owned by the given user.
func (r *MockRoutineRepository) GetByUser(userID string) ([]models.Routine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routineList := make([]models.Routine, 0)
	for _, routine := range r.routines {
		if !routine.IsPremade && routine.UserID == userID {
			routineList = append(routineList, routine)
		}
	}
	return routineList, nil
}

// GetByID returns a routine by its ID.
func (r *MockRoutineRepository) GetByID(id string) (*models.Routine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routine, ok := r.routines[id]
	if !ok {
		return nil, fmt.Errorf("routine with ID %s: %w", id, ErrNotFound)
	}
	return &routine, nil
}

// Create adds a new routine.
func (r *MockRoutineRepository) Create(routine *models.Routine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if routine.ID == "" {
		routine.ID = uuid.New().String()
	} else if _, exists := r.routines[routine.ID]; exists {
		return fmt.Errorf("routine with ID %s already exists", routine.ID)
	}
	if routine.CreatedAt.IsZero() {
		routine.CreatedAt = time.Now()
	}
	r.routines[routine.ID] = *routine
	return nil
}

// Update modifies an existing routine.
func (r *MockRoutineRepository) Update(routine *models.Routine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.routines[routine.ID]
	if !ok {
		return fmt.Errorf("routine with ID %s: %w", routine.ID, ErrNotFound)
	}
	r.routines[routine.ID] = *routine
	return nil
}

// Delete removes a routine by its ID.
func (r *MockRoutineRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.routines[id]
	if !ok {
		return fmt.Errorf("routine with ID %s: %w", id, ErrNotFound)
	}
	delete(r.routines, id)
	return nil
}
