package gateway_test

import (
	"time"

	"chatwave/backend/internal/models"

	"github.com/stretchr/testify/mock"
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

// newMockStorage returns a MockStorage with the lookups every
// connect/disconnect path touches already stubbed out.
func newMockStorage() *MockStorage {
	s := new(MockStorage)
	s.On("GetUserByID", mock.Anything).Return(nil, nil)
	s.On("SetUserStatus", mock.Anything, mock.Anything).Return(nil)
	return s
}

// MockClient is a test double for the gateway.Client interface.
// Events delivered to it land on RecvChannel.
type MockClient struct {
	userID      string
	connID      string
	closed      bool
	RecvChannel chan models.Event
}

func newMockClient(userID, connID string) *MockClient {
	return &MockClient{
		userID:      userID,
		connID:      connID,
		RecvChannel: make(chan models.Event, 16), // Buffered to prevent blocking in tests
	}
}

func (c *MockClient) GetUserID() string { return c.userID }
func (c *MockClient) GetConnID() string { return c.connID }

func (c *MockClient) TrySend(ev models.Event) bool {
	if c.closed {
		return false
	}
	select {
	case c.RecvChannel <- ev:
		return true
	default:
		return false
	}
}

func (c *MockClient) Run() {}

func (c *MockClient) Close() {
	c.closed = true
}

// DrainEvents returns everything delivered so far.
func (c *MockClient) DrainEvents() []models.Event {
	var events []models.Event
	for {
		select {
		case ev := <-c.RecvChannel:
			events = append(events, ev)
		default:
			return events
		}
	}
}

// eventsOfType filters a drained slice by event type.
func eventsOfType(events []models.Event, eventType string) []models.Event {
	var out []models.Event
	for _, ev := range events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}
