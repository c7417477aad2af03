package mocks

import (
	"context"

	"github.com/brettbedarf/filetree"
	"github.com/stretchr/testify/mock"
)

// MockContentAdapter implements filetree.ContentAdapter for testing across packages
type MockContentAdapter struct {
	mock.Mock
}

func (m *MockContentAdapter) Read(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)

	// Handle function return types (for complex tests)
	if fn, ok := args.Get(0).(func(context.Context) []byte); ok {
		return fn(ctx), args.Error(1)
	}

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockContentAdapter) Describe() string {
	args := m.Called()
	return args.String(0)
}

var _ filetree.ContentAdapter = (*MockContentAdapter)(nil)

// MockAdapterProvider implements filetree.AdapterProvider for testing across packages
type MockAdapterProvider struct {
	mock.Mock
}

func (m *MockAdapterProvider) Adapter() filetree.ContentAdapter {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(filetree.ContentAdapter)
}

var _ filetree.AdapterProvider = (*MockAdapterProvider)(nil)

// NewSource wires a mock adapter behind a mock provider at the given priority.
func NewSource(adapter *MockContentAdapter, priority int) filetree.FileSource {
	provider := &MockAdapterProvider{}
	provider.On("Adapter").Return(adapter)
	return filetree.FileSource{AdapterProvider: provider, Priority: priority}
}
