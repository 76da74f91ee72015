package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/adanyl0v/go-planner/internal/models"
	"github.com/adanyl0v/go-planner/internal/services"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, params services.SignupParams) (*models.User, error) {
	args := m.Called(ctx, params)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, params services.LoginParams) (*services.LoginResult, error) {
	args := m.Called(ctx, params)
	result, _ := args.Get(0).(*services.LoginResult)
	return result, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token, fingerprint string) (*models.Session, error) {
	args := m.Called(ctx, token, fingerprint)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

type mockTaskService struct {
	mock.Mock
}

func (m *mockTaskService) ListTasks(ctx context.Context, params services.ListTasksParams) ([]*models.Task, error) {
	args := m.Called(ctx, params)
	tasks, _ := args.Get(0).([]*models.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskService) CreateTask(ctx context.Context, params services.CreateTaskParams) (*models.Task, error) {
	args := m.Called(ctx, params)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) GetTask(ctx context.Context, taskID int64) (*models.Task, error) {
	args := m.Called(ctx, taskID)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, params services.UpdateTaskParams) (*models.Task, error) {
	args := m.Called(ctx, params)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}
