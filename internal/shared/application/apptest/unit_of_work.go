// Package apptest holds test doubles for the application layer.
package apptest

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type txKey struct{}

// MockUnitOfWork is a mock implementation of application.UnitOfWork.
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ExpectCommit primes m for one successful unit of work and returns the
// transaction context the handler will see.
func (m *MockUnitOfWork) ExpectCommit(ctx context.Context) context.Context {
	txCtx := context.WithValue(ctx, txKey{}, "tx")
	m.On("Begin", ctx).Return(txCtx, nil).Once()
	m.On("Commit", txCtx).Return(nil).Once()
	return txCtx
}

// ExpectRollback primes m for one failed unit of work and returns the
// transaction context the handler will see.
func (m *MockUnitOfWork) ExpectRollback(ctx context.Context) context.Context {
	txCtx := context.WithValue(ctx, txKey{}, "tx")
	m.On("Begin", ctx).Return(txCtx, nil).Once()
	m.On("Rollback", txCtx).Return(nil).Once()
	return txCtx
}
