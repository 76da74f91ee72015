package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-planner/internal/models"
	"github.com/adanyl0v/go-planner/internal/services"
)

type taskResponse struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Title       string            `json:"title"`
	StartDate   *time.Time        `json:"start_date"`
	EndDate     *time.Time        `json:"end_date"`
	DueTime     *models.TimeOfDay `json:"dueTime"`
	IsCompleted bool              `json:"is_completed"`
	Category    *string           `json:"category"`
	Priority    string            `json:"priority"`
}

func newTaskResponse(task *models.Task, now time.Time) taskResponse {
	return taskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		StartDate:   task.StartDate,
		EndDate:     task.EndDate,
		DueTime:     task.DueTime,
		IsCompleted: task.IsCompleted,
		Category:    task.Category,
		Priority:    task.Priority(now),
	}
}

type createTaskResponse struct {
	taskResponse
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c, services.ListTasksParams{
		Days: c.Query("days"),
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidDays) {
			abort(c, newBadRequestError(services.ErrInvalidDays.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	now := time.Now()
	response := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, newTaskResponse(task, now))
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var fields taskFields
	err := c.ShouldBindJSON(&fields)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params, err := decodeCreateTask(fields)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to decode task")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	if params.UserID == 0 {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			h.logger.Error().Msg("no user id in request or session")
			abort(c, newBadRequestError(errUserIDRequired.Error()))
			return
		}
		params.UserID = userID
	}

	task, err := h.tasks.CreateTask(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			abort(c, newNotFoundError(services.ErrUserNotFound.Error()))
		case errors.Is(err, services.ErrInvalidTask):
			abort(c, newBadRequestError(err.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, createTaskResponse{
		taskResponse: newTaskResponse(task, time.Now()),
		Message:      "Task Created",
	})
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		return
	}

	task, err := h.tasks.GetTask(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to get task")
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task, time.Now()))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		return
	}

	var fields taskFields
	err := c.ShouldBindJSON(&fields)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params, err := decodeUpdateTask(fields)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to decode task patch")
		abort(c, newBadRequestError(err.Error()))
		return
	}
	params.ID = taskID

	task, err := h.tasks.UpdateTask(c, params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to update task")
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task, time.Now()))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		return
	}

	err := h.tasks.DeleteTask(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}

func (h *handlerImpl) abortTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
	case errors.Is(err, services.ErrInvalidTask):
		abort(c, newBadRequestError(err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}

// parseTaskID only accepts positive integers, anything else can't name a task.
func parseTaskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
