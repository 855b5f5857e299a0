package service

import (
	"context"

	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/store"
)

// Tasks projects orders relevant to a user's role.
type Tasks struct{ *base }

// TaskList is the result of ListTasks. Relevant is false for roles that
// have no tasks.
type TaskList struct {
	Role     model.Role
	Tasks    []model.Task
	Relevant bool
}

// ListTasks returns orders by role: clients see their orders, staff the
// orders they supervise, volunteers the orders they delivered.
func (s *Tasks) ListTasks(ctx context.Context, actor Actor) (*TaskList, error) {
	list := &TaskList{Role: actor.Role, Relevant: true}

	var err error
	switch actor.Role {
	case model.RoleClient:
		list.Tasks, err = store.ListClientTasks(ctx, s.db, actor.Username)
	case model.RoleStaff:
		list.Tasks, err = store.ListSupervisorTasks(ctx, s.db, actor.Username)
	case model.RoleVolunteer:
		list.Tasks, err = store.ListDeliveryTasks(ctx, s.db, actor.Username)
	default:
		list.Relevant = false
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}
