package userservice

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertUser(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *MockRepository) ListUsers(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]User)
	return users, args.Error(1)
}
