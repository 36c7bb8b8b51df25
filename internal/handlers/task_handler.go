package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "sentinel/internal/errors"
	"sentinel/internal/models"
	"sentinel/internal/pagination"
	"sentinel/internal/services"
)

// TaskHandler handles task-related requests.
type TaskHandler struct {
	taskService services.TaskServicer
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService services.TaskServicer) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents the request payload for creating a task.
type CreateTaskRequest struct {
	Title            string  `json:"title" binding:"required,min=1,max=200"`
	Description      string  `json:"description" binding:"max=2000"`
	LinkedEntityType string  `json:"linked_entity_type" binding:"max=50"`
	LinkedEntityID   string  `json:"linked_entity_id" binding:"omitempty,uuid"`
	AssignedTo       *string `json:"assigned_to" binding:"omitempty,uuid"`
	DueDate          string  `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Priority         string  `json:"priority" binding:"omitempty,task_priority"`
}

// UpdateTaskRequest represents a partial task update.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,uuid"`
	DueDate     *string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Priority    *string `json:"priority" binding:"omitempty,task_priority"`
	Status      *string `json:"status" binding:"omitempty,task_status"`
}

// ListTasks returns a page of tasks
// @Summary     List tasks
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       status query string false "Filter by status"
// @Param       assigned_to query string false "Filter by assignee"
// @Param       entity_type query string false "Filter by linked entity type"
// @Param       entity_id query string false "Filter by linked entity id"
// @Success     200 {object} pagination.PageResponse[models.Task]
// @Router      /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.TaskFilter{
		AssignedTo: c.Query("assigned_to"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
	}
	if v := c.Query("status"); v != "" {
		status := models.TaskStatus(v)
		filter.Status = &status
	}

	result, err := h.taskService.GetTasks(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMyTasks returns the acting user's open tasks
// @Summary     My open tasks
// @Tags        tasks
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Task]
// @Router      /tasks/my [get]
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.taskService.GetMyTasks(actor, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateTask creates a task
// @Summary     Create a task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTaskRequest true "Task details"
// @Success     201 {object} models.Task
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	due, err := parseDate(req.DueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(actor, requestMeta(c), services.CreateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		LinkedEntityType: req.LinkedEntityType,
		LinkedEntityID:   req.LinkedEntityID,
		AssignedTo:       req.AssignedTo,
		DueDate:          due,
		Priority:         models.TaskPriority(req.Priority),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// UpdateTask applies a partial update
// @Summary     Update a task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Task ID"
// @Param       request body UpdateTaskRequest true "Fields to update"
// @Success     200 {object} models.Task
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.TaskUpdateFields{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	}
	if req.DueDate != nil {
		d, err := parseDate(*req.DueDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		fields.DueDate = d
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		fields.Priority = &priority
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		fields.Status = &status
	}

	task, err := h.taskService.UpdateTask(actor, requestMeta(c), c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}
