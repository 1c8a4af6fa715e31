// Package mocks provides gomock test doubles for the interfaces in this module.
// The doubles follow the layout produced by mockgen, written out by hand since
// mockgen v1.6.0 cannot generate mocks for generic interfaces.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
	majority "github.com/relab/majority"
)

// MockStrategy is a mock of the proposer.Strategy interface.
type MockStrategy[T comparable] struct {
	ctrl     *gomock.Controller
	recorder *MockStrategyMockRecorder[T]
}

// MockStrategyMockRecorder is the mock recorder for MockStrategy.
type MockStrategyMockRecorder[T comparable] struct {
	mock *MockStrategy[T]
}

// NewMockStrategy creates a new mock instance.
func NewMockStrategy[T comparable](ctrl *gomock.Controller) *MockStrategy[T] {
	mock := &MockStrategy[T]{ctrl: ctrl}
	mock.recorder = &MockStrategyMockRecorder[T]{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStrategy[T]) EXPECT() *MockStrategyMockRecorder[T] {
	return m.recorder
}

// Select mocks base method.
func (m *MockStrategy[T]) Select(ctx context.Context, domain majority.Domain[T]) (T, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Select", ctx, domain)
	ret0, _ := ret[0].(T)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Select indicates an expected call of Select.
func (mr *MockStrategyMockRecorder[T]) Select(ctx, domain interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Select", reflect.TypeOf((*MockStrategy[T])(nil).Select), ctx, domain)
}
