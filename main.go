package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gymtrack/internal/handlers"
	"gymtrack/internal/middleware"
	"gymtrack/internal/models"
	"gymtrack/internal/repositories"
	"gymtrack/internal/services"
	"gymtrack/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "") // Empty DSN runs on in-memory repositories
	viper.SetDefault("JWT_SECRET", "change_me_in_production")
	viper.SetDefault("RABBITMQ_URL", "") // Empty URL disables event publishing
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	jwtSecret := viper.GetString("JWT_SECRET")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize RabbitMQ Client ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, workout events will not be published")
	}

	// --- Initialize Repositories ---
	var (
		userRepo    repositories.UserRepository
		routineRepo repositories.RoutineRepository
		workoutRepo repositories.WorkoutRepository
	)
	if databaseDSN != "" {
		db, err := gorm.Open(postgres.Open(databaseDSN), &gorm.Config{
			// Routine deletion must not cascade to workouts; dangling
			// references are part of the data model.
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}, &models.Routine{}, &models.Workout{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
		routineRepo = repositories.NewGORMRoutineRepository(db)
		workoutRepo = repositories.NewGORMWorkoutRepository(db)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory repositories")
		userRepo = repositories.NewMockUserRepository()
		mockRoutineRepo := repositories.NewMockRoutineRepository()
		routineRepo = mockRoutineRepo
		workoutRepo = repositories.NewMockWorkoutRepository(mockRoutineRepo)
	}

	// Seed the premade routine catalog
	seedPremadeRoutines(routineRepo)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret)
	routineService := services.NewRoutineService(routineRepo)
	workoutService := services.NewWorkoutService(workoutRepo, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	routineHandler := handlers.NewRoutineHandler(routineService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	authRequired := middleware.AuthRequired(authService)

	// --- API Routes ---
	api := app.Group("/api")

	authHandler.RegisterRoutes(api)
	routineHandler.RegisterRoutes(api, authRequired)
	workoutHandler.RegisterRoutes(api, authRequired)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedPremadeRoutines populates the premade routine catalog. Seeding is
// skipped when premade routines already exist.
func seedPremadeRoutines(repo repositories.RoutineRepository) {
	existing, err := repo.GetPremade()
	if err != nil {
		log.Printf("Error checking premade routines: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	routines := []models.Routine{
		{
			Name:        "Upper Body Strength",
			Description: "Push and pull work for chest, back, shoulders and arms",
			Category:    models.CategoryStrength,
			Difficulty:  models.DifficultyIntermediate,
			Duration:    "60 min",
			IsPremade:   true,
			Exercises: []models.Exercise{
				{Name: "Bench Press", Sets: 4, Reps: "8-10", Rest: "90s"},
				{Name: "Bent Over Row", Sets: 4, Reps: "8-10", Rest: "90s"},
				{Name: "Overhead Press", Sets: 3, Reps: "10-12", Rest: "60s"},
				{Name: "Bicep Curl", Sets: 3, Reps: "12", Rest: "60s"},
			},
		},
		{
			Name:        "Leg Day Basics",
			Description: "Fundamental lower body movements",
			Category:    models.CategoryStrength,
			Difficulty:  models.DifficultyBeginner,
			Duration:    "45 min",
			IsPremade:   true,
			Exercises: []models.Exercise{
				{Name: "Squat", Sets: 4, Reps: "8-12", Rest: "90s"},
				{Name: "Romanian Deadlift", Sets: 3, Reps: "10", Rest: "90s"},
				{Name: "Walking Lunge", Sets: 3, Reps: "20", Rest: "60s", Notes: "10 per leg"},
				{Name: "Calf Raise", Sets: 3, Reps: "15", Rest: "45s"},
			},
		},
		{
			Name:        "HIIT Cardio Blast",
			Description: "Short high-intensity intervals",
			Category:    models.CategoryCardio,
			Difficulty:  models.DifficultyAdvanced,
			Duration:    "30 min",
			IsPremade:   true,
			Exercises: []models.Exercise{
				{Name: "Burpees", Sets: 5, Reps: "15", Rest: "30s"},
				{Name: "Mountain Climbers", Sets: 5, Reps: "30", Rest: "30s"},
				{Name: "Jump Squats", Sets: 5, Reps: "20", Rest: "30s"},
			},
		},
		{
			Name:        "Full Body Stretch",
			Description: "Mobility and flexibility session",
			Category:    models.CategoryFlexibility,
			Difficulty:  models.DifficultyBeginner,
			Duration:    "20 min",
			IsPremade:   true,
			Exercises: []models.Exercise{
				{Name: "Hamstring Stretch", Sets: 2, Reps: "30s hold", Rest: "15s"},
				{Name: "Hip Flexor Stretch", Sets: 2, Reps: "30s hold", Rest: "15s"},
				{Name: "Shoulder Stretch", Sets: 2, Reps: "30s hold", Rest: "15s"},
			},
		},
	}

	for i := range routines {
		if err := repo.Create(&routines[i]); err != nil {
			log.Printf("Error seeding routine %s: %v", routines[i].Name, err)
		} else {
			log.Printf("Seeded premade routine: %s (ID: %s)", routines[i].Name, routines[i].ID)
		}
	}
}
