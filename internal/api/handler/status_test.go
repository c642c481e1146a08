package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chatwave/backend/internal/api/handler"
	"chatwave/backend/internal/auth"
	"chatwave/backend/internal/gateway"
	"chatwave/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateMessage(intent models.MessageIntent) (*models.MessageView, error) {
	args := m.Called(intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageView), args.Error(1)
}

func (m *MockStorage) SetUserStatus(userID, status string) error {
	args := m.Called(userID, status)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserStatus(userID string) (string, *time.Time, error) {
	args := m.Called(userID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*time.Time), args.Error(2)
}

func (m *MockStorage) GetDirectHistory(userID, otherID string) ([]models.Message, error) {
	args := m.Called(userID, otherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) GetRoomHistory(roomID string) ([]models.Message, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func newStatusRouter(t *testing.T, storageMock *MockStorage) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := auth.NewAuthenticator("test-secret")
	token, err := a.Sign("alice", time.Hour)
	require.NoError(t, err)

	h := handler.NewHandler(gateway.New(storageMock), a, storageMock)
	r := gin.New()
	r.GET("/status/:userId", h.GetUserStatus)
	return r, token
}

func TestGetUserStatus_ReturnsCachedPresence(t *testing.T) {
	storageMock := new(MockStorage)
	lastSeen := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	storageMock.On("GetUserStatus", "bob").Return("offline", &lastSeen, nil)

	r, token := newStatusRouter(t, storageMock)

	req := httptest.NewRequest(http.MethodGet, "/status/bob", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"offline"`)
	assert.Contains(t, w.Body.String(), `"user_id":"bob"`)
	storageMock.AssertCalled(t, "GetUserStatus", "bob")
}

func TestGetUserStatus_RequiresToken(t *testing.T) {
	storageMock := new(MockStorage)
	r, _ := newStatusRouter(t, storageMock)

	req := httptest.NewRequest(http.MethodGet, "/status/bob", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	storageMock.AssertNotCalled(t, "GetUserStatus", mock.Anything)
}

func TestGetUserStatus_UnknownUser(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserStatus", "ghost").Return("", nil, nil)

	r, token := newStatusRouter(t, storageMock)

	req := httptest.NewRequest(http.MethodGet, "/status/ghost", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
