package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/adanyl0v/go-planner/internal/models"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Create(ctx context.Context, session models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionStore) GetByID(ctx context.Context, id string) (models.Session, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type mockTaskStore struct {
	mock.Mock
}

func (m *mockTaskStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (models.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *mockTaskStore) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *mockTaskStore) Update(ctx context.Context, task models.Task) (models.Task, error) {
	args := m.Called(ctx, task)
	if fn, ok := args.Get(0).(func(context.Context, models.Task) models.Task); ok {
		return fn(ctx, task), args.Error(1)
	}
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *mockTaskStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func ptr[T any](v T) *T {
	return &v
}
