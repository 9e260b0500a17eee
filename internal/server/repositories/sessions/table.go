package sessions

import (
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

const TableName = "user_token"

var table = crud.Table[models.Session]{
	Name:    TableName,
	Columns: []string{"token", "user_id"},
	Mutable: []string{"token"},
	Values:  func(s *models.Session) []any { return []any{s.Token, s.UserID} },
	Targets: func(s *models.Session) []any { return []any{&s.Token, &s.UserID} },
	Record:  func(s *models.Session) *models.Record { return &s.Record },
	Set: func(s *models.Session, column string, value any) error {
		token, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: token must be a string", common.ErrorValidation)
		}
		s.Token = token
		return nil
	},
	Unique: map[string]func(*models.Session) string{
		"user_token_user_id_unique": func(s *models.Session) string { return s.UserID },
	},
}
