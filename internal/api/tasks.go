package api

import (
	"net/http"

	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
)

// TasksHandler lists the caller's tasks.
type TasksHandler struct {
	Tasks *service.Tasks
}

type tasksResponse struct {
	Role     model.Role   `json:"role"`
	Relevant bool         `json:"relevant"`
	Tasks    []model.Task `json:"tasks"`
}

// List handles GET /api/tasks.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Tasks.ListTasks(r.Context(), actor(r.Context()))
	if err != nil {
		writeError(w, "list tasks", err)
		return
	}

	tasks := list.Tasks
	if tasks == nil {
		tasks = []model.Task{}
	}
	jsonResponse(w, http.StatusOK, tasksResponse{Role: list.Role, Relevant: list.Relevant, Tasks: tasks})
}
