package users

import (
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

const TableName = "users"

var table = crud.Table[models.User]{
	Name:    TableName,
	Columns: []string{"username", "fullname", "email", "password"},
	Mutable: []string{"fullname", "email", "password"},
	Values: func(u *models.User) []any {
		return []any{u.UserName, u.FullName, u.Email, u.PasswordHash}
	},
	Targets: func(u *models.User) []any {
		return []any{&u.UserName, &u.FullName, &u.Email, &u.PasswordHash}
	},
	Record: func(u *models.User) *models.Record { return &u.Record },
	Set: func(u *models.User, column string, value any) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s must be a string", common.ErrorValidation, column)
		}
		switch column {
		case "fullname":
			u.FullName = s
		case "email":
			u.Email = s
		case "password":
			u.PasswordHash = s
		}
		return nil
	},
	Unique: map[string]func(*models.User) string{
		"users_username_unique": func(u *models.User) string { return u.UserName },
		"users_email_unique":    func(u *models.User) string { return u.Email },
	},
}
