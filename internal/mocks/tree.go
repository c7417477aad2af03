package mocks

import (
	"github.com/brettbedarf/filetree"
	"github.com/brettbedarf/filetree/filesystem"
	"github.com/stretchr/testify/mock"
)

// MockTreeOperator implements filetree.TreeOperator for testing request runners
type MockTreeOperator struct {
	mock.Mock
}

func (m *MockTreeOperator) InsertDir(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockTreeOperator) InsertFile(path string, contents []byte) error {
	return m.Called(path, contents).Error(0)
}

func (m *MockTreeOperator) RemoveDir(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockTreeOperator) RemoveFile(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockTreeOperator) Stat(path string) (filesystem.StatInfo, error) {
	args := m.Called(path)
	return args.Get(0).(filesystem.StatInfo), args.Error(1)
}

func (m *MockTreeOperator) ReplaceContents(path string, contents []byte) ([]byte, bool) {
	args := m.Called(path, contents)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *MockTreeOperator) Count() int {
	return m.Called().Int(0)
}

func (m *MockTreeOperator) Check() error {
	return m.Called().Error(0)
}

func (m *MockTreeOperator) String() string {
	return m.Called().String(0)
}

var _ filetree.TreeOperator = (*MockTreeOperator)(nil)
