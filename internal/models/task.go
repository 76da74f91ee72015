package models

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLength    = 255
	MaxCategoryLength = 100
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Task struct {
	ID          int64
	UserID      int64
	Title       string
	StartDate   *time.Time
	EndDate     *time.Time
	DueTime     *TimeOfDay
	IsCompleted bool
	Category    *string
}

// Validate checks the field constraints every stored task must satisfy.
// Violations wrap ErrConstraintViolation.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrConstraintViolation)
	}
	if n := utf8.RuneCountInString(t.Title); n > MaxTitleLength {
		return fmt.Errorf("%w: title has %d characters, at most %d allowed",
			ErrConstraintViolation, n, MaxTitleLength)
	}
	if t.Category != nil {
		if n := utf8.RuneCountInString(*t.Category); n > MaxCategoryLength {
			return fmt.Errorf("%w: category has %d characters, at most %d allowed",
				ErrConstraintViolation, n, MaxCategoryLength)
		}
	}
	if t.UserID == 0 {
		return fmt.Errorf("%w: task must have an owner", ErrConstraintViolation)
	}
	return nil
}

// Priority ranks the task by the whole days left until its end date.
// Overdue tasks are ranked high; tasks without an end date have no priority.
func (t Task) Priority(now time.Time) string {
	if t.EndDate == nil {
		return ""
	}

	if t.EndDate.Before(now) {
		return PriorityHigh
	}

	days := int(t.EndDate.Sub(now).Hours() / 24)
	switch {
	case days <= 1:
		return PriorityHigh
	case days <= 3:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// TaskFilter selects tasks by end date. Tasks without an end date never match.
type TaskFilter struct {
	EndFrom time.Time
	EndTo   *time.Time
}

type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id int64) (Task, error)
	// List returns matching tasks ordered by end date ascending.
	List(ctx context.Context, filter TaskFilter) ([]Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id int64) error
}
