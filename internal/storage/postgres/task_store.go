package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-planner/internal/models"
)

var _ models.TaskStore = (*TaskStore)(nil)

type TaskStore struct {
	pool *pgxpool.Pool
}

func NewTaskStore(pool *pgxpool.Pool) *TaskStore {
	return &TaskStore{pool: pool}
}

func (s *TaskStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   title,
                   start_date,
                   end_date,
                   due_time,
                   is_completed,
                   category)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`
	err := s.pool.QueryRow(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Title,
		utc(task.StartDate),
		utc(task.EndDate),
		encodeDueTime(task.DueTime),
		task.IsCompleted,
		task.Category,
	).Scan(&task.ID)
	if err != nil {
		return models.Task{}, mapError("insert task", err)
	}
	return task, nil
}

func (s *TaskStore) GetByID(ctx context.Context, id int64) (models.Task, error) {
	const selectTaskByIDQuery = `
SELECT id,
       user_id,
       title,
       start_date,
       end_date,
       due_time,
       is_completed,
       category
FROM tasks
WHERE id = $1
`
	task, err := scanTask(s.pool.QueryRow(ctx, selectTaskByIDQuery, id))
	if err != nil {
		return models.Task{}, mapError("select task by id", err)
	}
	return task, nil
}

func (s *TaskStore) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	const selectTasksQuery = `
SELECT id,
       user_id,
       title,
       start_date,
       end_date,
       due_time,
       is_completed,
       category
FROM tasks
WHERE end_date >= $1
  AND ($2::timestamptz IS NULL OR end_date <= $2)
ORDER BY end_date, id
`
	rows, err := s.pool.Query(
		ctx,
		selectTasksQuery,
		filter.EndFrom.UTC(),
		utc(filter.EndTo),
	)
	if err != nil {
		return nil, mapError("select tasks", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, mapError("scan task", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		return nil, mapError("iterate over tasks", err)
	}
	return tasks, nil
}

func (s *TaskStore) Update(ctx context.Context, task models.Task) (models.Task, error) {
	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    start_date = $2,
    end_date = $3,
    due_time = $4,
    is_completed = $5,
    category = $6
WHERE id = $7
RETURNING user_id
`
	err := s.pool.QueryRow(
		ctx,
		updateTaskQuery,
		task.Title,
		utc(task.StartDate),
		utc(task.EndDate),
		encodeDueTime(task.DueTime),
		task.IsCompleted,
		task.Category,
		task.ID,
	).Scan(&task.UserID)
	if err != nil {
		return models.Task{}, mapError("update task", err)
	}
	return task, nil
}

func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := s.pool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		return mapError("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (models.Task, error) {
	var (
		task    models.Task
		dueTime pgtype.Time
	)
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.StartDate,
		&task.EndDate,
		&dueTime,
		&task.IsCompleted,
		&task.Category,
	)
	if err != nil {
		return models.Task{}, err
	}
	task.StartDate = utc(task.StartDate)
	task.EndDate = utc(task.EndDate)

	if dueTime.Valid {
		tod := models.TimeOfDayFromMicroseconds(dueTime.Microseconds)
		task.DueTime = &tod
	}
	return task, nil
}

func encodeDueTime(tod *models.TimeOfDay) pgtype.Time {
	if tod == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: tod.Microseconds(), Valid: true}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
