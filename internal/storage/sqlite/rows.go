package sqlite

import (
	"time"

	"github.com/adanyl0v/go-planner/internal/models"
)

type userRow struct {
	ID        int64  `gorm:"primaryKey"`
	Username  string `gorm:"size:150;not null;uniqueIndex"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRow) TableName() string { return "users" }

type sessionRow struct {
	ID          string    `gorm:"primaryKey"`
	UserID      int64     `gorm:"not null;index"`
	Fingerprint string    `gorm:"not null"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
}

func (sessionRow) TableName() string { return "sessions" }

type taskRow struct {
	ID          int64  `gorm:"primaryKey"`
	UserID      int64  `gorm:"not null;index"`
	Title       string `gorm:"size:255;not null"`
	StartDate   *time.Time
	EndDate     *time.Time `gorm:"index"`
	DueTime     *string    `gorm:"size:8"`
	IsCompleted bool       `gorm:"not null"`
	Category    *string    `gorm:"size:100"`
}

func (taskRow) TableName() string { return "tasks" }

func newTaskRow(task models.Task) taskRow {
	row := taskRow{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		StartDate:   utc(task.StartDate),
		EndDate:     utc(task.EndDate),
		IsCompleted: task.IsCompleted,
		Category:    task.Category,
	}
	if task.DueTime != nil {
		s := task.DueTime.String()
		row.DueTime = &s
	}
	return row
}

func (r taskRow) toModel() (models.Task, error) {
	task := models.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		StartDate:   utc(r.StartDate),
		EndDate:     utc(r.EndDate),
		IsCompleted: r.IsCompleted,
		Category:    r.Category,
	}
	if r.DueTime != nil {
		tod, err := models.ParseTimeOfDay(*r.DueTime)
		if err != nil {
			return models.Task{}, err
		}
		task.DueTime = &tod
	}
	return task, nil
}
