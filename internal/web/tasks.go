package web

import (
	"net/http"

	"github.com/erazemk/welcomehome/internal/service"
)

type tasksPage struct {
	PageData
	List *service.TaskList
}

// UserTasks handles GET /user_tasks.
func (s *Server) UserTasks(w http.ResponseWriter, r *http.Request) {
	data := &tasksPage{PageData: PageData{Title: "My tasks"}}

	list, err := s.Services.Tasks.ListTasks(r.Context(), actor(r))
	switch {
	case err != nil:
		data.Flashes = append(data.Flashes, unexpected("list tasks", err))
	case !list.Relevant:
		data.Flashes = append(data.Flashes, info("No relevant tasks for your role."))
	default:
		data.List = list
	}

	s.render(w, r, "user_tasks.html", data)
}
