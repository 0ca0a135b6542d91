package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stashbox/core/internal/middleware"
	"github.com/stashbox/core/internal/pkg/pagination"
	"github.com/stashbox/core/internal/pkg/response"
	"github.com/stashbox/core/internal/pkg/taskqueue"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/ai", authMW)

	g.POST("/ask", h.ask)
	g.POST("/enrich", h.enrich)

	tasks := g.Group("/tasks")
	tasks.GET("", h.listTasks)
	tasks.GET("/:id", h.getTask)
	tasks.DELETE("/:id", h.deleteTask)
	tasks.POST("/:id/retry", h.retryTask)
}

// writeAIError maps the typed error taxonomy onto HTTP statuses.
func writeAIError(c *gin.Context, err error) {
	var quotaErr *QuotaError
	var cfgErr *ConfigError
	var parseErr *ParseError
	switch {
	case errors.As(err, &quotaErr):
		c.Header("Retry-After", strconv.Itoa(quotaErr.WaitSeconds()))
		response.TooManyRequests(c, fmt.Sprintf("AI rate limit reached, retry in %ds", quotaErr.WaitSeconds()))
	case errors.As(err, &cfgErr):
		response.ServiceUnavailable(c, cfgErr.Error())
	case errors.As(err, &parseErr):
		response.ServiceUnavailable(c, "AI returned an unusable response, try again")
	default:
		response.InternalError(c, err)
	}
}

// POST /ai/ask  [auth]
func (h *Handler) ask(c *gin.Context) {
	var dto askDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	answer, err := h.svc.AnswerQuestion(middleware.CurrentUserID(c), dto.Question)
	if err != nil {
		writeAIError(c, err)
		return
	}
	response.OK(c, answer)
}

// POST /ai/enrich  [auth]
func (h *Handler) enrich(c *gin.Context) {
	var dto enrichDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.svc.EnqueueEnrich(c.Request.Context(), dto.ItemID, middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errItemNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, task)
}

// GET /ai/tasks  [auth]
func (h *Handler) listTasks(c *gin.Context) {
	q := pagination.FromContext(c)
	taskType := c.Query("type")
	statusStr := c.Query("status")

	var taskTypePtr *string
	var statusPtr *taskqueue.TaskStatus
	if taskType != "" {
		taskTypePtr = &taskType
	}
	if statusStr != "" {
		s := taskqueue.TaskStatus(statusStr)
		statusPtr = &s
	}

	tasks, total, err := h.svc.taskSvc.List(c.Request.Context(), q.Page, q.Size, taskTypePtr, statusPtr)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	totalPages := int((total + int64(q.Size) - 1) / int64(q.Size))
	response.Paged(c, tasks, response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPages,
		Size:        q.Size,
		HasNextPage: q.Page < totalPages,
	})
}

// GET /ai/tasks/:id  [auth]
func (h *Handler) getTask(c *gin.Context) {
	task, err := h.svc.taskSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, task)
}

// DELETE /ai/tasks/:id  [auth]
func (h *Handler) deleteTask(c *gin.Context) {
	if err := h.svc.taskSvc.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.NoContent(c)
}

// POST /ai/tasks/:id/retry  [auth]
func (h *Handler) retryTask(c *gin.Context) {
	task, err := h.svc.taskSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || task == nil {
		response.NotFound(c)
		return
	}
	if task.Status != taskqueue.TaskFailed && task.Status != taskqueue.TaskCancelled {
		response.BadRequest(c, "task is not retryable")
		return
	}

	var payload EnrichPayload
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		response.BadRequest(c, "invalid task payload")
		return
	}

	newTask, err := h.svc.EnqueueEnrich(c.Request.Context(), payload.ItemID, payload.UserID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, newTask)
}
