package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"gymtrack/internal/handlers"
	"gymtrack/internal/middleware"
	"gymtrack/internal/models"
	"gymtrack/internal/repositories"
	"gymtrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp sets up a Fiber app for testing with an in-memory SQLite database
// and all handlers/services wired the way main wires them. Each test gets
// its own named in-memory database.
func setupApp(t *testing.T) (*fiber.App, *services.AuthService, *gorm.DB) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Routine{}, &models.Workout{}); err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	routineRepo := repositories.NewGORMRoutineRepository(db)
	workoutRepo := repositories.NewGORMWorkoutRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	routineService := services.NewRoutineService(routineRepo)
	workoutService := services.NewWorkoutService(workoutRepo, nil) // nil for RabbitMQ client

	authHandler := handlers.NewAuthHandler(authService)
	routineHandler := handlers.NewRoutineHandler(routineService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)

	app := fiber.New()

	authRequired := middleware.AuthRequired(authService)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)
	routineHandler.RegisterRoutes(api, authRequired)
	workoutHandler.RegisterRoutes(api, authRequired)

	seedPremadeRoutinesForTest(t, routineRepo)

	return app, authService, db
}

// seedPremadeRoutinesForTest populates the premade catalog for tests.
func seedPremadeRoutinesForTest(t *testing.T, repo repositories.RoutineRepository) {
	t.Helper()

	routines := []models.Routine{
		{
			Name:       "Upper Body Strength",
			Category:   models.CategoryStrength,
			Difficulty: models.DifficultyIntermediate,
			Duration:   "60 min",
			IsPremade:  true,
			Exercises: []models.Exercise{
				{Name: "Bench Press", Sets: 4, Reps: "8-10", Rest: "90s"},
			},
		},
		{
			Name:       "HIIT Cardio Blast",
			Category:   models.CategoryCardio,
			Difficulty: models.DifficultyAdvanced,
			Duration:   "30 min",
			IsPremade:  true,
			Exercises: []models.Exercise{
				{Name: "Burpees", Sets: 5, Reps: "15", Rest: "30s"},
			},
		},
	}
	for i := range routines {
		if err := repo.Create(&routines[i]); err != nil {
			t.Fatalf("failed to seed routine %s: %v", routines[i].Name, err)
		}
	}
}

// doJSON sends a JSON request to the app, optionally with a bearer token,
// and decodes the response body into out when out is non-nil.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1) // -1 for no timeout
	assert.NoError(t, err)

	if out != nil {
		err = json.NewDecoder(resp.Body).Decode(out)
		assert.NoError(t, err)
	}
	resp.Body.Close()
	return resp
}

// registerUser registers a user and returns the issued token.
func registerUser(t *testing.T, app *fiber.App, username, email, password string) string {
	t.Helper()

	var resp map[string]interface{}
	r := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	assert.Equal(t, http.StatusCreated, r.StatusCode)
	token, _ := resp["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, authService, _ := setupApp(t)

	// Register
	var registerResp map[string]interface{}
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "secret1",
	}, &registerResp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", registerResp["message"])
	registerToken, _ := registerResp["token"].(string)
	assert.NotEmpty(t, registerToken)

	// Duplicate email
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice2",
		"email":    "alice@x.com",
		"password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Duplicate username with a different email
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@x.com",
		"password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Validation failures
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "al", // Too short
		"email":    "al@x.com",
		"password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "albert",
		"email":    "not-an-email",
		"password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "albert",
		"email":    "albert@x.com",
		"password": "short", // Under 6 characters
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "  ab  ", // Too short once trimmed
		"email":    "ab@x.com",
		"password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Login with the same credentials
	var loginResp map[string]string
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@x.com",
		"password": "secret1",
	}, &loginResp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, loginResp["token"])

	// Both tokens verify to the same user ID
	registeredID, err := authService.ValidateToken(registerToken)
	assert.NoError(t, err)
	loggedInID, err := authService.ValidateToken(loginResp["token"])
	assert.NoError(t, err)
	assert.Equal(t, registeredID, loggedInID)

	// Wrong password
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@x.com",
		"password": "wrongpass",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Unknown email gets the same status
	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPremadeRoutines(t *testing.T) {
	app, _, _ := setupApp(t)

	// The premade listing is public
	var routines []models.Routine
	resp := doJSON(t, app, http.MethodGet, "/api/routines/premade", "", nil, &routines)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, routines, 2)
	for _, r := range routines {
		assert.True(t, r.IsPremade)
	}

	// Premade routines are publicly readable by ID
	var routine models.Routine
	resp = doJSON(t, app, http.MethodGet, "/api/routines/"+routines[0].ID, "", nil, &routine)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, routines[0].ID, routine.ID)

	// The personal listing requires a token
	resp = doJSON(t, app, http.MethodGet, "/api/routines/my", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutineCRUDAndOwnership(t *testing.T) {
	app, _, _ := setupApp(t)

	aliceToken := registerUser(t, app, "alice", "alice@x.com", "secret1")
	bobToken := registerUser(t, app, "bob", "bob@x.com", "secret2")

	// Alice creates a custom routine; category defaults apply
	var created models.Routine
	resp := doJSON(t, app, http.MethodPost, "/api/routines", aliceToken, map[string]interface{}{
		"name": "Leg Day",
		"exercises": []map[string]interface{}{
			{"name": "Squat", "sets": 4, "reps": "8-12"},
		},
	}, &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.CategoryCustom, created.Category)
	assert.Equal(t, models.DifficultyBeginner, created.Difficulty)
	assert.False(t, created.IsPremade)
	assert.NotEmpty(t, created.UserID)

	// Creating a routine requires a token
	resp = doJSON(t, app, http.MethodPost, "/api/routines", "", map[string]interface{}{
		"name": "Anonymous",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// It shows up in Alice's listing, never in the premade catalog
	var mine []models.Routine
	resp = doJSON(t, app, http.MethodGet, "/api/routines/my", aliceToken, nil, &mine)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)

	var premade []models.Routine
	resp = doJSON(t, app, http.MethodGet, "/api/routines/premade", "", nil, &premade)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	for _, r := range premade {
		assert.NotEqual(t, created.ID, r.ID)
	}

	// Bob sees an empty listing
	var bobs []models.Routine
	resp = doJSON(t, app, http.MethodGet, "/api/routines/my", bobToken, nil, &bobs)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, bobs)

	// Bob cannot hijack Alice's routine by posting its ID: the create
	// assigns a fresh ID and Alice's record is untouched
	var hijack models.Routine
	resp = doJSON(t, app, http.MethodPost, "/api/routines", bobToken, map[string]interface{}{
		"id":   created.ID,
		"name": "Hijacked",
	}, &hijack)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEqual(t, created.ID, hijack.ID)

	var intact models.Routine
	resp = doJSON(t, app, http.MethodGet, "/api/routines/"+created.ID, "", nil, &intact)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Leg Day", intact.Name)
	assert.Equal(t, created.UserID, intact.UserID)

	resp = doJSON(t, app, http.MethodDelete, "/api/routines/"+hijack.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A blank name is rejected on create and on update
	resp = doJSON(t, app, http.MethodPost, "/api/routines", bobToken, map[string]interface{}{
		"name": "   ",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPut, "/api/routines/"+created.ID, aliceToken, map[string]interface{}{
		"name": "",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Bob may not update or delete Alice's routine
	resp = doJSON(t, app, http.MethodPut, "/api/routines/"+created.ID, bobToken, map[string]interface{}{
		"name": "Hijacked",
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, "/api/routines/"+created.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Alice applies a partial update; absent fields keep their values
	var updated models.Routine
	resp = doJSON(t, app, http.MethodPut, "/api/routines/"+created.ID, aliceToken, map[string]interface{}{
		"difficulty": "advanced",
	}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Leg Day", updated.Name)
	assert.Equal(t, models.DifficultyAdvanced, updated.Difficulty)
	assert.Len(t, updated.Exercises, 1)

	// Updating a missing routine is 404
	resp = doJSON(t, app, http.MethodPut, "/api/routines/no-such-id", aliceToken, map[string]interface{}{
		"name": "Ghost",
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Alice deletes her routine
	var deleteResp map[string]string
	resp = doJSON(t, app, http.MethodDelete, "/api/routines/"+created.ID, aliceToken, nil, &deleteResp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Routine deleted successfully", deleteResp["message"])

	resp = doJSON(t, app, http.MethodGet, "/api/routines/"+created.ID, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWorkoutFlow(t *testing.T) {
	app, _, db := setupApp(t)

	aliceToken := registerUser(t, app, "alice", "alice@x.com", "secret1")
	bobToken := registerUser(t, app, "bob", "bob@x.com", "secret2")

	// Workout routes require a token
	resp := doJSON(t, app, http.MethodGet, "/api/workouts", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Alice authors a routine and logs a workout against it
	var routine models.Routine
	resp = doJSON(t, app, http.MethodPost, "/api/routines", aliceToken, map[string]interface{}{
		"name": "Push Day",
	}, &routine)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var logged models.Workout
	resp = doJSON(t, app, http.MethodPost, "/api/workouts", aliceToken, map[string]interface{}{
		"routineId": routine.ID,
		"duration":  55,
		"notes":     "felt strong",
	}, &logged)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, logged.ID)
	assert.Equal(t, 55, logged.Duration)
	assert.True(t, logged.Completed)
	assert.False(t, logged.Date.IsZero())

	// The response resolves the full routine, not just its identifier
	assert.NotNil(t, logged.Routine)
	assert.Equal(t, routine.ID, logged.Routine.ID)
	assert.Equal(t, "Push Day", logged.Routine.Name)

	// Missing duration fails validation
	resp = doJSON(t, app, http.MethodPost, "/api/workouts", aliceToken, map[string]interface{}{
		"routineId": routine.ID,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Log an earlier-dated workout afterward, straight into the store:
	// listing must order by the stored date, not by insertion order.
	backdated := models.Workout{
		ID:        "backdated-workout",
		UserID:    logged.UserID,
		RoutineID: routine.ID,
		Date:      time.Now().Add(-72 * time.Hour),
		Duration:  40,
		Completed: true,
	}
	assert.NoError(t, db.Omit("Routine").Create(&backdated).Error)

	var workouts []models.Workout
	resp = doJSON(t, app, http.MethodGet, "/api/workouts", aliceToken, nil, &workouts)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, workouts, 2)
	assert.Equal(t, logged.ID, workouts[0].ID)
	assert.Equal(t, "backdated-workout", workouts[1].ID)

	// Bob sees none of Alice's workouts and may not delete them
	var bobWorkouts []models.Workout
	resp = doJSON(t, app, http.MethodGet, "/api/workouts", bobToken, nil, &bobWorkouts)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, bobWorkouts)

	resp = doJSON(t, app, http.MethodDelete, "/api/workouts/"+logged.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Alice deletes her workout
	var deleteResp map[string]string
	resp = doJSON(t, app, http.MethodDelete, "/api/workouts/"+logged.ID, aliceToken, nil, &deleteResp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Workout deleted successfully", deleteResp["message"])

	resp = doJSON(t, app, http.MethodDelete, "/api/workouts/"+logged.ID, aliceToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeletedRoutineLeavesWorkoutsIntact(t *testing.T) {
	app, _, _ := setupApp(t)

	aliceToken := registerUser(t, app, "alice", "alice@x.com", "secret1")

	var routine models.Routine
	resp := doJSON(t, app, http.MethodPost, "/api/routines", aliceToken, map[string]interface{}{
		"name": "Doomed Routine",
	}, &routine)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var logged models.Workout
	resp = doJSON(t, app, http.MethodPost, "/api/workouts", aliceToken, map[string]interface{}{
		"routineId": routine.ID,
		"duration":  30,
	}, &logged)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotNil(t, logged.Routine)

	// Deleting the routine succeeds despite the associated workout
	resp = doJSON(t, app, http.MethodDelete, "/api/routines/"+routine.ID, aliceToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The workout survives with a dangling routine reference
	var workouts []models.Workout
	resp = doJSON(t, app, http.MethodGet, "/api/workouts", aliceToken, nil, &workouts)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, workouts, 1)
	assert.Equal(t, logged.ID, workouts[0].ID)
	assert.Equal(t, routine.ID, workouts[0].RoutineID)
	assert.Nil(t, workouts[0].Routine)
}

func TestInvalidToken(t *testing.T) {
	app, _, _ := setupApp(t)

	// Garbage token
	resp := doJSON(t, app, http.MethodGet, "/api/workouts", "not.a.token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Wrong header shape
	req := httptest.NewRequest(http.MethodGet, "/api/workouts", nil)
	req.Header.Set("Authorization", "Token abcdef")
	r, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, r.StatusCode)
	r.Body.Close()

	// A token signed by another service is rejected
	otherService := services.NewAuthService(repositories.NewMockUserRepository(), "another_secret")
	foreignToken, err := otherService.IssueToken("user-123")
	assert.NoError(t, err)
	resp = doJSON(t, app, http.MethodGet, "/api/workouts", foreignToken, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
