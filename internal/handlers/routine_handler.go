package handlers

import (
	"errors"
	"log"

	"gymtrack/internal/middleware"
	"gymtrack/internal/models"
	"gymtrack/internal/repositories"
	"gymtrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RoutineHandler handles HTTP requests for workout routines.
type RoutineHandler struct {
	service  *services.RoutineService
	validate *validator.Validate
}

// NewRoutineHandler creates a new RoutineHandler.
func NewRoutineHandler(service *services.RoutineService) *RoutineHandler {
	return &RoutineHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the routine routes with the Fiber app. auth is
// applied to the private routes only; premade listing and lookup by ID are
// public. The /premade and /my routes must be registered before /:id.
func (h *RoutineHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	routineRoutes := router.Group("/routines")
	routineRoutes.Get("/premade", h.HandleGetPremadeRoutines)
	routineRoutes.Get("/my", auth, h.HandleGetMyRoutines)
	routineRoutes.Get("/:id", h.HandleGetRoutineByID)
	routineRoutes.Post("/", auth, h.HandleCreateRoutine)
	routineRoutes.Put("/:id", auth, h.HandleUpdateRoutine)
	routineRoutes.Delete("/:id", auth, h.HandleDeleteRoutine)
}

// HandleGetPremadeRoutines retrieves all premade routines.
func (h *RoutineHandler) HandleGetPremadeRoutines(c *fiber.Ctx) error {
	routines, err := h.service.GetPremadeRoutines()
	if err != nil {
		log.Printf("Error getting premade routines: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve routines",
		})
	}
	return c.JSON(routines)
}

// HandleGetMyRoutines retrieves the caller's custom routines.
func (h *RoutineHandler) HandleGetMyRoutines(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	routines, err := h.service.GetUserRoutines(callerID)
	if err != nil {
		log.Printf("Error getting routines for user %s: %v", callerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve routines",
		})
	}
	return c.JSON(routines)
}

// HandleGetRoutineByID retrieves a single routine by its ID.
func (h *RoutineHandler) HandleGetRoutineByID(c *fiber.Ctx) error {
	routineID := c.Params("id")
	routine, err := h.service.GetRoutineByID(routineID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Routine not found",
			})
		}
		log.Printf("Error getting routine by ID %s: %v", routineID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve routine",
		})
	}
	return c.JSON(routine)
}

// HandleCreateRoutine creates a new custom routine owned by the caller.
func (h *RoutineHandler) HandleCreateRoutine(c *fiber.Ctx) error {
	var routine models.Routine
	if err := c.BodyParser(&routine); err != nil {
		log.Printf("Error parsing routine request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(routine); err != nil {
		return validationErrorResponse(c, err)
	}

	created, err := h.service.CreateRoutine(middleware.CallerID(c), &routine)
	if err != nil {
		return routineErrorResponse(c, routine.ID, "create", err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateRoutine applies a partial update to a routine owned by the
// caller. Fields absent from the payload are left unchanged.
func (h *RoutineHandler) HandleUpdateRoutine(c *fiber.Ctx) error {
	routineID := c.Params("id")

	var update services.RoutineUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing routine update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(update); err != nil {
		return validationErrorResponse(c, err)
	}

	routine, err := h.service.UpdateRoutine(routineID, middleware.CallerID(c), update)
	if err != nil {
		return routineErrorResponse(c, routineID, "update", err)
	}
	return c.JSON(routine)
}

// HandleDeleteRoutine deletes a routine owned by the caller.
func (h *RoutineHandler) HandleDeleteRoutine(c *fiber.Ctx) error {
	routineID := c.Params("id")

	if err := h.service.DeleteRoutine(routineID, middleware.CallerID(c)); err != nil {
		return routineErrorResponse(c, routineID, "delete", err)
	}
	return c.JSON(fiber.Map{
		"message": "Routine deleted successfully",
	})
}

// routineErrorResponse maps service errors from routine mutations to a
// status code.
func routineErrorResponse(c *fiber.Ctx, routineID, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Routine not found",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized to " + action + " this routine",
		})
	default:
		log.Printf("Error during routine %s for %s: %v", action, routineID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not " + action + " routine",
		})
	}
}
