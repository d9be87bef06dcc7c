package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"groupledger/internal/handlers"
	"groupledger/internal/logger"
	"groupledger/internal/middleware"
	"groupledger/internal/services"
	"groupledger/internal/testutil"
	"groupledger/internal/validator"
)

const testPipelineKey = "integration-pipeline-key"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	// Services
	userService := services.NewUserService(db)
	groupService := services.NewGroupService(db)
	transactionService := services.NewTransactionService(db)
	paymentService := services.NewPaymentService(db)
	dashboardService := services.NewDashboardService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	groupHandler := handlers.NewGroupHandler(groupService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reconcileHandler := handlers.NewReconcileHandler(paymentService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	internal := router.Group("/internal")
	internal.Use(middleware.JobAuthMiddleware(testPipelineKey))
	internal.POST("/groups/:id/reconcile", reconcileHandler.RepairGroup)

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/active-group", authHandler.SetActiveGroup)

	groups := protected.Group("/groups")
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("", groupHandler.ListGroups)
	groups.POST("/join", groupHandler.JoinGroup)
	groups.GET("/:id", groupHandler.GetGroup)
	groups.PUT("/:id/settings", groupHandler.UpdateSettings)
	groups.DELETE("/:id/membership", groupHandler.LeaveGroup)
	groups.DELETE("/:id/members/:memberId", groupHandler.RemoveMember)
	groups.PUT("/:id/members/:memberId/role", groupHandler.UpdateMemberRole)
	groups.PUT("/:id/members/:memberId/amount", groupHandler.SetMemberAmount)

	groups.POST("/:id/transactions", transactionHandler.CreateTransaction)
	groups.GET("/:id/transactions", transactionHandler.ListTransactions)
	groups.GET("/:id/transactions/:txId", transactionHandler.GetTransaction)
	groups.PUT("/:id/transactions/:txId", transactionHandler.UpdateTransaction)
	groups.DELETE("/:id/transactions/:txId", transactionHandler.DeleteTransaction)

	groups.GET("/:id/members/:memberId/payments", paymentHandler.ListMemberPayments)
	groups.GET("/:id/members/:memberId/status", paymentHandler.GetPaymentStatus)
	groups.GET("/:id/members/:memberId/stats", paymentHandler.GetMemberStats)
	groups.POST("/:id/payments", paymentHandler.CreatePayment)
	groups.GET("/:id/payments/flagged", paymentHandler.ListFlaggedPayments)
	groups.DELETE("/:id/payments/:paymentId", paymentHandler.DeletePayment)
	groups.DELETE("/:id/payments/:paymentId/flag", paymentHandler.ClearReviewFlag)

	groups.GET("/:id/dashboard", dashboardHandler.GetDashboard)
	groups.GET("/:id/balances", dashboardHandler.GetBalanceHistory)

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

// jobRequest calls a scheduled job endpoint with the pipeline key.
func (app *testApp) jobRequest(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(middleware.JobKeyHeader, testPipelineKey)
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

// errorCode extracts error.code from an error response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	code, _ := errObj["code"].(string)
	return code
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password, displayName string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"display_name":%q}`, email, password, displayName)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// createGroup creates a group owned by the token's user and returns its ID
// and invite code.
func (app *testApp) createGroup(t *testing.T, token, name string, monthlyAmount int64, allowPrepay bool) (groupID, inviteCode string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"monthly_amount":%d,"allow_prepay":%t}`, name, monthlyAmount, allowPrepay)
	rec := app.request("POST", "/api/v1/groups", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create group failed: %d %s", rec.Code, rec.Body.String())
	}
	group := parseJSON(t, rec)["group"].(map[string]interface{})
	return group["id"].(string), group["invite_code"].(string)
}

// joinGroup joins the group behind inviteCode.
func (app *testApp) joinGroup(t *testing.T, token, inviteCode string) {
	t.Helper()
	rec := app.request("POST", "/api/v1/groups/join", fmt.Sprintf(`{"invite_code":%q}`, inviteCode), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("join group failed: %d %s", rec.Code, rec.Body.String())
	}
}

// createTransaction records a transaction and returns the decoded result.
func (app *testApp) createTransaction(t *testing.T, token, groupID, body string) map[string]interface{} {
	t.Helper()
	rec := app.request("POST", "/api/v1/groups/"+groupID+"/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}
