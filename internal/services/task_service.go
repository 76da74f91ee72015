package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-planner/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	users  models.UserStore
	tasks  models.TaskStore
	now    func() time.Time
}

func NewTaskService(
	logger zerolog.Logger,
	users models.UserStore,
	tasks models.TaskStore,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		users:  users,
		tasks:  tasks,
		now:    time.Now,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, params ListTasksParams) ([]*models.Task, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	filter := models.TaskFilter{EndFrom: today}

	if params.Days != "" {
		endTo, err := listUpperBound(today, params.Days)
		if err != nil {
			s.logger.Debug().
				Err(err).
				Str("days", params.Days).
				Msg("invalid days")
			return nil, ErrInvalidDays
		}
		filter.EndTo = &endTo
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	s.logger.Debug().
		Time("end_from", filter.EndFrom).
		Int("count", len(tasks)).
		Msg("selected tasks")

	result := make([]*models.Task, len(tasks))
	for i := range tasks {
		result[i] = &tasks[i]
	}

	s.logger.Info().
		Int("count", len(result)).
		Msg("tasks found")
	return result, nil
}

// maxListDays guards AddDate against overflow. The bound itself must also
// stay within four-digit years.
const maxListDays = 999999999

func listUpperBound(today time.Time, raw string) (time.Time, error) {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	if days > maxListDays || days < -maxListDays {
		return time.Time{}, fmt.Errorf("days %d out of range", days)
	}

	endTo := today.AddDate(0, 0, days)
	if endTo.Year() < 1 || endTo.Year() > 9999 {
		return time.Time{}, fmt.Errorf("days %d out of range", days)
	}
	return endTo, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	_, err := s.users.GetByID(ctx, params.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Error().
				Int64("user_id", params.UserID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", params.UserID).
			Msg("failed to select user by id")
		return nil, err
	}

	task := models.Task{
		UserID:      params.UserID,
		Title:       params.Title,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		DueTime:     params.DueTime,
		IsCompleted: params.IsCompleted,
		Category:    params.Category,
	}
	if task.Category == nil {
		category := Categorize(task.Title)
		task.Category = &category
	}

	err = task.Validate()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("invalid task")
		return nil, fmt.Errorf("%w: %w", ErrInvalidTask, err)
	}

	task, err = s.tasks.Create(ctx, task)
	if err != nil {
		return nil, s.storeError(err, "failed to insert task")
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Str("category", *task.Category).
		Msg("inserted task")

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", task.UserID).
		Msg("created task")
	return &task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, taskID int64) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, s.taskLookupError(err, taskID)
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("task found")
	return &task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, params.ID)
	if err != nil {
		return nil, s.taskLookupError(err, params.ID)
	}

	if params.Title.Set {
		task.Title = ""
		if params.Title.Value != nil {
			task.Title = *params.Title.Value
		}
	}
	if params.StartDate.Set {
		task.StartDate = params.StartDate.Value
	}
	if params.EndDate.Set {
		task.EndDate = params.EndDate.Value
	}
	if params.DueTime.Set {
		task.DueTime = params.DueTime.Value
	}
	if params.IsCompleted.Set {
		task.IsCompleted = params.IsCompleted.Value != nil && *params.IsCompleted.Value
	}

	if params.Category.Set {
		task.Category = params.Category.Value
	} else {
		category := Categorize(task.Title)
		task.Category = &category
	}

	err = task.Validate()
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("invalid task")
		return nil, fmt.Errorf("%w: %w", ErrInvalidTask, err)
	}

	task, err = s.tasks.Update(ctx, task)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, s.taskLookupError(err, params.ID)
		}
		return nil, s.storeError(err, "failed to update task")
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("updated task")

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", task.UserID).
		Msg("updated task")
	return &task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, taskID int64) error {
	err := s.tasks.Delete(ctx, taskID)
	if err != nil {
		return s.taskLookupError(err, taskID)
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) taskLookupError(err error, taskID int64) error {
	if errors.Is(err, models.ErrNotFound) {
		s.logger.Error().
			Int64("task_id", taskID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Error().
		Err(err).
		Int64("task_id", taskID).
		Msg("failed to access task")
	return err
}

// storeError maps constraint failures reported by the store itself.
func (s *taskServiceImpl) storeError(err error, msg string) error {
	s.logger.Error().
		Err(err).
		Msg(msg)

	switch {
	case errors.Is(err, models.ErrConstraintViolation):
		return fmt.Errorf("%w: %w", ErrInvalidTask, err)
	case errors.Is(err, models.ErrNotFound):
		return ErrUserNotFound
	}
	return err
}
