package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/adanyl0v/go-planner/internal/models"
)

var _ models.TaskStore = (*TaskStore)(nil)

// TaskStore enforces the task field constraints itself because SQLite
// does not check column lengths.
type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

func (s *TaskStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	err := task.Validate()
	if err != nil {
		return models.Task{}, err
	}

	row := newTaskRow(task)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owners int64
		err := tx.Model(&userRow{}).Where("id = ?", task.UserID).Count(&owners).Error
		if err != nil {
			return mapError("count task owners", err)
		}
		if owners == 0 {
			return fmt.Errorf("%w: user %d", models.ErrNotFound, task.UserID)
		}

		err = tx.Create(&row).Error
		if err != nil {
			return mapError("insert task", err)
		}
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}

	return row.toModel()
}

func (s *TaskStore) GetByID(ctx context.Context, id int64) (models.Task, error) {
	var row taskRow
	err := s.db.WithContext(ctx).First(&row, id).Error
	if err != nil {
		return models.Task{}, mapError("select task by id", err)
	}
	return row.toModel()
}

func (s *TaskStore) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Where("end_date >= ?", filter.EndFrom.UTC())
	if filter.EndTo != nil {
		query = query.Where("end_date <= ?", filter.EndTo.UTC())
	}

	var rows []taskRow
	err := query.Order("end_date, id").Find(&rows).Error
	if err != nil {
		return nil, mapError("select tasks", err)
	}

	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		task, err := row.toModel()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *TaskStore) Update(ctx context.Context, task models.Task) (models.Task, error) {
	var existing taskRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&existing, task.ID).Error
		if err != nil {
			return mapError("select task by id", err)
		}

		task.UserID = existing.UserID
		err = task.Validate()
		if err != nil {
			return err
		}

		row := newTaskRow(task)
		err = tx.Model(&existing).Updates(map[string]any{
			"title":        row.Title,
			"start_date":   row.StartDate,
			"end_date":     row.EndDate,
			"due_time":     row.DueTime,
			"is_completed": row.IsCompleted,
			"category":     row.Category,
		}).Error
		if err != nil {
			return mapError("update task", err)
		}
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return s.GetByID(ctx, task.ID)
}

func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&taskRow{}, id)
	if res.Error != nil {
		return mapError("delete task", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
