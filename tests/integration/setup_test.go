package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"securecare/internal/handlers"
	"securecare/internal/logger"
	"securecare/internal/middleware"
	"securecare/internal/models"
	"securecare/internal/services"
	"securecare/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Advisor{},
		&models.Employee{},
		&models.AuditLogEntry{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	employeeService := services.NewEmployeeService(db)
	advisorService := services.NewAdvisorService(db)
	trainingService := services.NewTrainingService(db, employeeService)
	auditService := services.NewAuditService(db)
	statsTTL := time.Minute
	statsService := services.NewStatsService(db, cache.New(statsTTL, 2*statsTTL), statsTTL)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, auditService, statsService)
	advisorHandler := handlers.NewAdvisorHandler(advisorService, auditService)
	trainingHandler := handlers.NewTrainingHandler(trainingService, auditService, statsService)
	auditHandler := handlers.NewAuditHandler(auditService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	employees := protected.Group("/employees")
	employees.POST("", employeeHandler.CreateEmployee)
	employees.GET("", employeeHandler.GetEmployees)
	employees.GET("/:id", employeeHandler.GetEmployee)
	employees.PUT("/:id", employeeHandler.UpdateEmployee)
	employees.GET("/:id/progress", employeeHandler.GetProgress)

	training := employees.Group("/:id/training/:level")
	training.POST("/assign", trainingHandler.Assign)
	training.POST("/schedule", trainingHandler.Schedule)
	training.PUT("/reschedule", trainingHandler.Reschedule)
	training.POST("/complete", trainingHandler.Complete)
	training.POST("/conference/approve", trainingHandler.ApproveConference)
	training.POST("/conference/reject", trainingHandler.RejectConference)
	training.POST("/award", trainingHandler.Award)
	training.PUT("/notes", trainingHandler.UpdateNotes)
	training.PUT("/advisor", trainingHandler.SetAdvisor)

	advisors := protected.Group("/advisors")
	advisors.POST("", advisorHandler.CreateAdvisor)
	advisors.GET("", advisorHandler.GetAdvisors)
	advisors.GET("/:id", advisorHandler.GetAdvisor)

	protected.GET("/audit", auditHandler.GetAuditLog)
	protected.GET("/stats/levels", statsHandler.GetLevelStats)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new admin and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"Admin"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// createEmployee creates an employee and returns its external identifier.
func (app *testApp) createEmployee(t *testing.T, token, name string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/employees",
		fmt.Sprintf(`{"name":%q,"facility":"Main Campus"}`, name), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create employee failed: %d %s", rec.Code, rec.Body.String())
	}
	employee := parseJSON(t, rec)["employee"].(map[string]interface{})
	return employee["employee_id"].(string)
}

// assertErrorCode asserts the machine-readable code in an error envelope.
func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	result := parseJSON(t, rec)
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %v", code, errObj["code"])
	}
}

// levelReport extracts one level's report from a progress response.
func levelReport(t *testing.T, progress map[string]interface{}, level string) map[string]interface{} {
	t.Helper()
	for _, raw := range progress["levels"].([]interface{}) {
		report := raw.(map[string]interface{})
		if report["level"] == level {
			return report
		}
	}
	t.Fatalf("level %q missing from progress report", level)
	return nil
}

// requirementStatus extracts one requirement's display status from a level report.
func requirementStatus(t *testing.T, report map[string]interface{}, key string) string {
	t.Helper()
	for _, raw := range report["requirements"].([]interface{}) {
		req := raw.(map[string]interface{})
		if req["key"] == key {
			return req["status"].(string)
		}
	}
	t.Fatalf("requirement %q missing from level report", key)
	return ""
}
