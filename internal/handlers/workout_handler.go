package handlers

import (
	"errors"
	"log"

	"gymtrack/internal/middleware"
	"gymtrack/internal/repositories"
	"gymtrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WorkoutHandler handles HTTP requests for logged workouts.
type WorkoutHandler struct {
	service  *services.WorkoutService
	validate *validator.Validate
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(service *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the workout routes with the Fiber app. All
// workout routes are private.
func (h *WorkoutHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	workoutRoutes := router.Group("/workouts", auth)
	workoutRoutes.Get("/", h.HandleGetWorkouts)
	workoutRoutes.Post("/", h.HandleLogWorkout)
	workoutRoutes.Delete("/:id", h.HandleDeleteWorkout)
}

// HandleGetWorkouts retrieves the caller's workouts, newest first, each with
// its routine resolved.
func (h *WorkoutHandler) HandleGetWorkouts(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	workouts, err := h.service.GetUserWorkouts(callerID)
	if err != nil {
		log.Printf("Error getting workouts for user %s: %v", callerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve workouts",
		})
	}
	return c.JSON(workouts)
}

// LogWorkoutRequest represents the request body for logging a workout.
type LogWorkoutRequest struct {
	RoutineID string `json:"routineId" validate:"required"`
	Duration  int    `json:"duration" validate:"required,gt=0"`
	Notes     string `json:"notes"`
}

// HandleLogWorkout records a performed routine for the caller.
func (h *WorkoutHandler) HandleLogWorkout(c *fiber.Ctx) error {
	var req LogWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing workout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	workout, err := h.service.LogWorkout(middleware.CallerID(c), req.RoutineID, req.Duration, req.Notes)
	if err != nil {
		log.Printf("Error logging workout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not log workout",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(workout)
}

// HandleDeleteWorkout deletes a workout owned by the caller.
func (h *WorkoutHandler) HandleDeleteWorkout(c *fiber.Ctx) error {
	workoutID := c.Params("id")

	err := h.service.DeleteWorkout(workoutID, middleware.CallerID(c))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Workout not found",
			})
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Not authorized to delete this workout",
			})
		default:
			log.Printf("Error deleting workout %s: %v", workoutID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not delete workout",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Workout deleted successfully",
	})
}
