package testutil

import (
	"analyticsbridge/backend/internal/services/analytics"

	"github.com/stretchr/testify/mock"
)

// MockHandle is a mock analytics.Handle.
type MockHandle struct {
	mock.Mock
}

func (m *MockHandle) SetUserID(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockHandle) SetUserProperties(props *analytics.UserProperties) error {
	args := m.Called(props)
	return args.Error(0)
}

func (m *MockHandle) LogEvent(name string, params map[string]interface{}) error {
	args := m.Called(name, params)
	return args.Error(0)
}

func (m *MockHandle) SetAnalyticsCollectionEnabled(enabled bool) error {
	args := m.Called(enabled)
	return args.Error(0)
}

// MockServerHandle adds the optional instance and reset capabilities to MockHandle.
type MockServerHandle struct {
	MockHandle
}

func (m *MockServerHandle) InstanceID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockServerHandle) Reset() error {
	args := m.Called()
	return args.Error(0)
}

// MockClosableHandle is a MockHandle that also owns resources released by Close.
type MockClosableHandle struct {
	MockHandle
}

func (m *MockClosableHandle) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockApp is a mock analytics.App.
type MockApp struct {
	mock.Mock
}

func (m *MockApp) Analytics() (analytics.Handle, error) {
	args := m.Called()
	if h := args.Get(0); h != nil {
		return h.(analytics.Handle), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	_ analytics.Handle             = (*MockHandle)(nil)
	_ analytics.InstanceIdentifier = (*MockServerHandle)(nil)
	_ analytics.Resetter           = (*MockServerHandle)(nil)
	_ analytics.App                = (*MockApp)(nil)
)
