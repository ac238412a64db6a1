package operation

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"
)

// MockFileManager is a mock of status.FileManager with typed expectations
type MockFileManager struct {
	mock.Mock
}

type MockFileManager_Expecter struct {
	mock *mock.Mock
}

func (_m *MockFileManager) EXPECT() *MockFileManager_Expecter {
	return &MockFileManager_Expecter{mock: &_m.Mock}
}

// ReadText provides a mock function with given fields: ctx, path
func (_m *MockFileManager) ReadText(ctx context.Context, path string) (string, os.FileMode, error) {
	ret := _m.Called(ctx, path)

	if len(ret) == 0 {
		panic("no return value specified for ReadText")
	}

	return ret.String(0), ret.Get(1).(os.FileMode), ret.Error(2)
}

// MockFileManager_ReadText_Call is a *mock.Call that shadows Return with typed arguments
type MockFileManager_ReadText_Call struct {
	*mock.Call
}

// ReadText is a helper method to define mock.On call
//   - ctx context.Context
//   - path string
func (_e *MockFileManager_Expecter) ReadText(ctx interface{}, path interface{}) *MockFileManager_ReadText_Call {
	return &MockFileManager_ReadText_Call{Call: _e.mock.On("ReadText", ctx, path)}
}

func (_c *MockFileManager_ReadText_Call) Return(content string, mode os.FileMode, err error) *MockFileManager_ReadText_Call {
	_c.Call.Return(content, mode, err)
	return _c
}

// WriteFileAtomic provides a mock function with given fields: ctx, path, content, mode
func (_m *MockFileManager) WriteFileAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	ret := _m.Called(ctx, path, content, mode)

	if len(ret) == 0 {
		panic("no return value specified for WriteFileAtomic")
	}

	return ret.Error(0)
}

// MockFileManager_WriteFileAtomic_Call is a *mock.Call that shadows Return with typed arguments
type MockFileManager_WriteFileAtomic_Call struct {
	*mock.Call
}

// WriteFileAtomic is a helper method to define mock.On call
//   - ctx context.Context
//   - path string
//   - content []byte
//   - mode os.FileMode
func (_e *MockFileManager_Expecter) WriteFileAtomic(ctx interface{}, path interface{}, content interface{}, mode interface{}) *MockFileManager_WriteFileAtomic_Call {
	return &MockFileManager_WriteFileAtomic_Call{Call: _e.mock.On("WriteFileAtomic", ctx, path, content, mode)}
}

func (_c *MockFileManager_WriteFileAtomic_Call) Return(err error) *MockFileManager_WriteFileAtomic_Call {
	_c.Call.Return(err)
	return _c
}

// NewMockFileManager creates a new MockFileManager that asserts its expectations on cleanup
func NewMockFileManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFileManager {
	m := &MockFileManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
