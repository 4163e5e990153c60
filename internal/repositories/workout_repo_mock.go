package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"gymtrack/internal/models"

	"github.com/google/uuid"
)

// MockWorkoutRepository is an in-memory implementation of WorkoutRepository.
// It resolves routines through the given RoutineRepository, mirroring the
// read-time join the GORM implementation performs.
type MockWorkoutRepository struct {
	workouts map[string]models.Workout
	routines RoutineRepository
	mu       sync.RWMutex
}

// NewMockWorkoutRepository creates a new instance of MockWorkoutRepository.
func NewMockWorkoutRepository(routines RoutineRepository) *MockWorkoutRepository {
	return &MockWorkoutRepository{
		workouts: make(map[string]models.Workout),
		routines: routines,
	}
}

// GetByUser returns all workouts for the given user, newest date first.
func (r *MockWorkoutRepository) GetByUser(userID string) ([]models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workoutList := make([]models.Workout, 0)
	for _, workout := range r.workouts {
		if workout.UserID == userID {
			workout.Routine = r.resolveRoutine(workout.RoutineID)
			workoutList = append(workoutList, workout)
		}
	}
	sort.Slice(workoutList, func(i, j int) bool {
		return workoutList[i].Date.After(workoutList[j].Date)
	})
	return workoutList, nil
}

// GetByID returns a workout by its ID, with its routine resolved.
func (r *MockWorkoutRepository) GetByID(id string) (*models.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	workout, ok := r.workouts[id]
	if !ok {
		return nil, fmt.Errorf("workout with ID %s: %w", id, ErrNotFound)
	}
	workout.Routine = r.resolveRoutine(workout.RoutineID)
	return &workout, nil
}

// Create adds a new workout.
func (r *MockWorkoutRepository) Create(workout *models.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if workout.ID == "" {
		workout.ID = uuid.New().String()
	} else if _, exists := r.workouts[workout.ID]; exists {
		return fmt.Errorf("workout with ID %s already exists", workout.ID)
	}
	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = time.Now()
	}
	stored := *workout
	stored.Routine = nil // Routines are resolved on read, never stored
	r.workouts[workout.ID] = stored
	return nil
}

// Delete removes a workout by its ID.
func (r *MockWorkoutRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.workouts[id]
	if !ok {
		return fmt.Errorf("workout with ID %s: %w", id, ErrNotFound)
	}
	delete(r.workouts, id)
	return nil
}

// resolveRoutine looks up the referenced routine, returning nil when the
// routine no longer exists (a dangling reference is not an error).
func (r *MockWorkoutRepository) resolveRoutine(routineID string) *models.Routine {
	if r.routines == nil {
		return nil
	}
	routine, err := r.routines.GetByID(routineID)
	if err != nil {
		return nil
	}
	return routine
}
