package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/pagination"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
)

type CreateTodoInput struct {
	Title       string
	Description *string
	Done        bool
}

// UpdateTodoInput carries the fields a client sent; nil fields are left
// untouched. ClearDescription sets the description to NULL.
type UpdateTodoInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Done             *bool
}

func (in UpdateTodoInput) patch() crud.Patch {
	p := crud.Patch{}
	if in.Title != nil {
		p[todos.ColumnTitle] = *in.Title
	}
	if in.Description != nil {
		p[todos.ColumnDescription] = in.Description
	} else if in.ClearDescription {
		p[todos.ColumnDescription] = nil
	}
	if in.Done != nil {
		p[todos.ColumnDone] = *in.Done
	}
	return p
}

// TodoService scopes every task operation to the calling owner.
type TodoService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewTodoService(m repomanager.RepositoryManager, log logging.Logger) *TodoService {
	return &TodoService{repomanager: m, log: log}
}

func (s *TodoService) repo() todos.Repository {
	return s.repomanager.Repositories().Todos
}

func (s *TodoService) Create(ctx context.Context, ownerID string, in CreateTodoInput) (*models.Todo, error) {
	todo, err := s.repo().Create(ctx, &models.Todo{
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Done:        in.Done,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "todo created", "user_id", ownerID, "todo_id", todo.ID)
	return todo, nil
}

// Get returns common.ErrorNotFound for a missing task and
// common.ErrorUnauthorized for a task of another owner.
func (s *TodoService) Get(ctx context.Context, ownerID, id string) (*models.Todo, error) {
	todo, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo.UserID != ownerID {
		return nil, common.ErrorUnauthorized
	}

	s.log.Info(ctx, "todo fetched", "user_id", ownerID)
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, ownerID, id string, in UpdateTodoInput) (*models.Todo, error) {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return nil, err
	}

	todo, err := s.repo().Update(ctx, id, in.patch())
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "todo updated", "user_id", ownerID, "todo_id", id)
	return todo, nil
}

// Delete removes an owned task. A task that does not exist is reported as
// common.ErrorUnauthorized, the same as a task of someone else.
func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return err
	}

	if err := s.repo().Delete(ctx, id); err != nil {
		return err
	}

	s.log.Warn(ctx, "todo deleted", "user_id", ownerID, "todo_id", id)
	return nil
}

func (s *TodoService) ListCursor(ctx context.Context, req pagination.Cursor) ([]*models.Todo, error) {
	list, err := s.repo().PaginateWithCursor(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "todos fetched with cursor pagination", "user_id", req.OwnerID)
	return list, nil
}

func (s *TodoService) ListOffset(ctx context.Context, req pagination.Offset) ([]*models.Todo, error) {
	list, err := s.repo().PaginateWithOffset(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "todos fetched with offset pagination", "user_id", req.OwnerID)
	return list, nil
}
