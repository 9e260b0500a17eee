package todos

import (
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

const TableName = "todo"

// Columns a client may change on an existing task.
const (
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnDone        = "done"
)

var table = crud.Table[models.Todo]{
	Name:    TableName,
	Columns: []string{"done", "title", "description", "user_id"},
	Mutable: []string{ColumnTitle, ColumnDescription, ColumnDone},
	Values: func(t *models.Todo) []any {
		return []any{t.Done, t.Title, t.Description, t.UserID}
	},
	Targets: func(t *models.Todo) []any {
		return []any{&t.Done, &t.Title, &t.Description, &t.UserID}
	},
	Record: func(t *models.Todo) *models.Record { return &t.Record },
	Set:    set,
}

func set(t *models.Todo, column string, value any) error {
	switch column {
	case ColumnTitle:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: title must be a string", common.ErrorValidation)
		}
		t.Title = s
	case ColumnDescription:
		switch v := value.(type) {
		case *string:
			t.Description = v
		case string:
			t.Description = &v
		case nil:
			t.Description = nil
		default:
			return fmt.Errorf("%w: description must be a string", common.ErrorValidation)
		}
	case ColumnDone:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: done must be a boolean", common.ErrorValidation)
		}
		t.Done = b
	}
	return nil
}
