package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain"
	"fintrack/internal/middleware"
	"fintrack/internal/repository"
	"fintrack/internal/service"
	"fintrack/internal/utils"
)

const testSecret = "test-secret"

type testServer struct {
	router     *gin.Engine
	users      *repository.MemoryUserRepository
	statements *repository.MemoryStatementRepository
	userSvc    *service.UserService
}

// newTestServer wires the full route table against in-memory repositories
// and no redis/kafka, mirroring cmd/server.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserRepository()
	statements := repository.NewMemoryStatementRepository()
	userSvc := service.NewUserService(users, testSecret)
	statementSvc := service.NewStatementService(users, statements, nil)

	r := gin.New()
	r.POST("/users", RegisterHandler(userSvc))
	r.POST("/sessions", LoginHandler(userSvc))

	authGroup := r.Group("")
	authGroup.Use(middleware.JWTAuthMiddleware(testSecret))
	authGroup.GET("/profile", ProfileHandler(userSvc))

	statementGroup := authGroup.Group("/statements")
	statementGroup.POST("/deposit", CreateStatementHandler(statementSvc, nil, domain.OperationDeposit))
	statementGroup.POST("/withdraw", CreateStatementHandler(statementSvc, nil, domain.OperationWithdraw))
	statementGroup.GET("/balance", GetBalanceHandler(statementSvc, nil))
	statementGroup.GET("/:statement_id", GetStatementOperationHandler(statementSvc))

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(testSecret), middleware.AdminOnlyMiddleware(users))
	adminGroup.GET("/users", ListUsersHandler(users, nil))
	adminGroup.GET("/statements", ListStatementsHandler(statements, nil))

	return &testServer{router: r, users: users, statements: statements, userSvc: userSvc}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user through the API and returns its id and token.
func (s *testServer) registerAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/users", "", gin.H{
		"name":     "User Test",
		"email":    email,
		"password": "password",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/sessions", "", gin.H{
		"email":    email,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User  domain.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

func TestRegisterHandler(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/users", "", gin.H{
		"name":     "User Test",
		"email":    "test@mail.com",
		"password": "password",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	// The password hash must never reach the wire.
	assert.NotContains(t, w.Body.String(), "password")

	// Second registration with the same email is rejected.
	w = s.do(t, http.MethodPost, "/users", "", gin.H{
		"name":     "Second User Test",
		"email":    "test@mail.com",
		"password": "password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin(t, "test@mail.com")

	w := s.do(t, http.MethodPost, "/sessions", "", gin.H{
		"email":    "test@mail.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileHandler(t *testing.T) {
	s := newTestServer(t)
	userID, token := s.registerAndLogin(t, "test@mail.com")

	w := s.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)

	// Missing token is rejected by the middleware.
	w = s.do(t, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDepositWithdrawBalance(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "test@mail.com")

	w := s.do(t, http.MethodPost, "/statements/deposit", token, gin.H{
		"amount":      "100",
		"description": "Deposit test",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/statements/withdraw", token, gin.H{
		"amount":      "50",
		"description": "Withdraw test",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/statements/balance", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Balance service.Balance `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Balance.Balance.Equal(decimal.RequireFromString("50")))
	assert.Len(t, resp.Balance.Statements, 2)
}

func TestWithdrawHandler_InsufficientFunds(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "test@mail.com")

	w := s.do(t, http.MethodPost, "/statements/deposit", token, gin.H{"amount": "50"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/statements/withdraw", token, gin.H{"amount": "100"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient funds")

	// The ledger still has exactly one entry.
	count, err := s.statements.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateStatementHandler_InvalidAmount(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "test@mail.com")

	for _, amount := range []string{"0", "-5"} {
		w := s.do(t, http.MethodPost, "/statements/deposit", token, gin.H{"amount": amount})
		assert.Equal(t, http.StatusBadRequest, w.Code, "amount %s must be rejected at the boundary", amount)
	}
}

func TestGetStatementOperationHandler(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "test@mail.com")

	w := s.do(t, http.MethodPost, "/statements/deposit", token, gin.H{"amount": "100"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Statement domain.Statement `json:"statement"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = s.do(t, http.MethodGet, "/statements/"+created.Statement.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Statement.ID)

	// Unknown id maps to 404.
	w = s.do(t, http.MethodGet, "/statements/"+uuid.New().String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Another user's statement id also maps to 404.
	_, otherToken := s.registerAndLogin(t, "other@mail.com")
	w = s.do(t, http.MethodGet, "/statements/"+created.Statement.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	s := newTestServer(t)
	_, userToken := s.registerAndLogin(t, "test@mail.com")

	// A plain user is forbidden.
	w := s.do(t, http.MethodGet, "/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Seed an admin directly and mint its token.
	admin := &domain.User{
		ID:        uuid.New().String(),
		Name:      "Admin",
		Email:     "admin@mail.com",
		Password:  "irrelevant",
		Role:      "admin",
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.users.Create(context.Background(), admin))
	adminToken, err := utils.GenerateJWT(admin.ID, testSecret)
	require.NoError(t, err)

	w = s.do(t, http.MethodGet, "/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test@mail.com")

	w = s.do(t, http.MethodGet, "/admin/statements", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
