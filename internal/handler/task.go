package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"recruit_messaging/internal/service"
	"recruit_messaging/pkg/logger"
)

type TaskHandler struct {
	taskService service.TaskService
	log         logger.Logger
}

func NewTaskHandler(taskService service.TaskService, log logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

func (h *TaskHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.GetTasks(c.Request.Context(), actor)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}
