package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/shoppyglobe/shoppyglobe-api/errors"
	"github.com/shoppyglobe/shoppyglobe-api/models"
)

// --- Mock Service ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func postJSON(router *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// --- Tests ---

func TestRegisterController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success - 201 Created", func(t *testing.T) {
		mockService := new(MockAuthService)
		controller := NewAuthController(mockService)

		newUser := &models.User{ID: primitive.NewObjectID(), Username: "alice"}
		mockService.On("Register", mock.Anything, "alice", "pw1").Return(newUser, nil).Once()

		router := gin.New()
		router.POST("/register", controller.Register)

		recorder := postJSON(router, "/register", `{"username": "alice", "password": "pw1"}`)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "User registered successfully")
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Username - 400 Bad Request", func(t *testing.T) {
		mockService := new(MockAuthService)
		controller := NewAuthController(mockService)
		mockService.On("Register", mock.Anything, "alice", "pw2").Return(nil, apperrors.ErrDuplicateUsername).Once()

		router := gin.New()
		router.POST("/register", controller.Register)

		recorder := postJSON(router, "/register", `{"username": "alice", "password": "pw2"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Username already exists")
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Fields - 400 Bad Request", func(t *testing.T) {
		mockService := new(MockAuthService)
		controller := NewAuthController(mockService)

		router := gin.New()
		router.POST("/register", controller.Register)

		recorder := postJSON(router, "/register", `{"username": "alice"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "Register")
	})
}

func TestLoginController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success - 200 OK with token", func(t *testing.T) {
		mockService := new(MockAuthService)
		controller := NewAuthController(mockService)
		mockService.On("Login", mock.Anything, "alice", "pw1").Return("signed-token", nil).Once()

		router := gin.New()
		router.POST("/login", controller.Login)

		recorder := postJSON(router, "/login", `{"username": "alice", "password": "pw1"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "signed-token")
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Credentials - 401 Unauthorized", func(t *testing.T) {
		mockService := new(MockAuthService)
		controller := NewAuthController(mockService)
		mockService.On("Login", mock.Anything, "alice", "wrong").Return("", apperrors.ErrInvalidCredentials).Once()

		router := gin.New()
		router.POST("/login", controller.Login)

		recorder := postJSON(router, "/login", `{"username": "alice", "password": "wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid credentials")
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Missing Fields - 400 Bad Request", func(t *testing.T) {
		mockService := new(MockAuthService)
		controller := NewAuthController(mockService)

		router := gin.New()
		router.POST("/login", controller.Login)

		recorder := postJSON(router, "/login", `{"password": "pw1"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockService.AssertNotCalled(t, "Login")
	})
}
