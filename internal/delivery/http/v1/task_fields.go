package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adanyl0v/go-planner/internal/models"
	"github.com/adanyl0v/go-planner/internal/services"
)

// taskFields keeps the raw task body so that absent keys can be told
// apart from explicit nulls.
type taskFields map[string]json.RawMessage

// Naive layouts are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func decodeField[T any](fields taskFields, key string, parse func(json.RawMessage) (*T, error)) (services.Field[T], error) {
	raw, ok := fields[key]
	if !ok {
		return services.Field[T]{}, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return services.ClearField[T](), nil
	}

	v, err := parse(raw)
	if err != nil {
		return services.Field[T]{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	if v == nil {
		return services.ClearField[T](), nil
	}
	return services.SetField(*v), nil
}

func decodeJSON[T any](raw json.RawMessage) (*T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// decodeDate treats an empty string like null.
func decodeDate(raw json.RawMessage) (*time.Time, error) {
	var s string
	err := json.Unmarshal(raw, &s)
	if err != nil {
		return nil, err
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// decodeDueTime treats an empty string like null.
func decodeDueTime(raw json.RawMessage) (*models.TimeOfDay, error) {
	var s string
	err := json.Unmarshal(raw, &s)
	if err != nil {
		return nil, err
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	tod, err := models.ParseTimeOfDay(s)
	if err != nil {
		return nil, err
	}
	return &tod, nil
}

func decodeUpdateTask(fields taskFields) (services.UpdateTaskParams, error) {
	var params services.UpdateTaskParams
	var err error

	params.Title, err = decodeField(fields, "title", decodeJSON[string])
	if err != nil {
		return params, err
	}
	params.StartDate, err = decodeField(fields, "start_date", decodeDate)
	if err != nil {
		return params, err
	}
	params.EndDate, err = decodeField(fields, "end_date", decodeDate)
	if err != nil {
		return params, err
	}
	params.DueTime, err = decodeField(fields, "dueTime", decodeDueTime)
	if err != nil {
		return params, err
	}
	params.IsCompleted, err = decodeField(fields, "is_completed", decodeJSON[bool])
	if err != nil {
		return params, err
	}
	params.Category, err = decodeField(fields, "category", decodeJSON[string])
	if err != nil {
		return params, err
	}
	return params, nil
}

// decodeCreateTask leaves UserID zero when the body doesn't carry one.
func decodeCreateTask(fields taskFields) (services.CreateTaskParams, error) {
	var params services.CreateTaskParams

	patch, err := decodeUpdateTask(fields)
	if err != nil {
		return params, err
	}
	userID, err := decodeField(fields, "user_id", decodeJSON[int64])
	if err != nil {
		return params, err
	}

	if userID.Value != nil {
		params.UserID = *userID.Value
	}
	if patch.Title.Value != nil {
		params.Title = *patch.Title.Value
	}
	params.StartDate = patch.StartDate.Value
	params.EndDate = patch.EndDate.Value
	params.DueTime = patch.DueTime.Value
	if patch.IsCompleted.Value != nil {
		params.IsCompleted = *patch.IsCompleted.Value
	}
	params.Category = patch.Category.Value
	return params, nil
}
