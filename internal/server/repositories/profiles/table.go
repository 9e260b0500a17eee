package profiles

import (
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/crud"
)

const TableName = "profile"

var table = crud.Table[models.Profile]{
	Name: TableName,
	Columns: []string{
		"user_id", "temporary_address", "permanent_address",
		"profile_picture", "country", "designation",
	},
	Mutable: []string{
		"temporary_address", "permanent_address",
		"profile_picture", "country", "designation",
	},
	Values: func(p *models.Profile) []any {
		return []any{p.UserID, p.TemporaryAddress, p.PermanentAddress, p.ProfilePicture, p.Country, p.Designation}
	},
	Targets: func(p *models.Profile) []any {
		return []any{&p.UserID, &p.TemporaryAddress, &p.PermanentAddress, &p.ProfilePicture, &p.Country, &p.Designation}
	},
	Record: func(p *models.Profile) *models.Record { return &p.Record },
	Set: func(p *models.Profile, column string, value any) error {
		var v *string
		switch s := value.(type) {
		case *string:
			v = s
		case string:
			v = &s
		case nil:
		default:
			return fmt.Errorf("%w: %s must be a string", common.ErrorValidation, column)
		}

		switch column {
		case "temporary_address":
			p.TemporaryAddress = v
		case "permanent_address":
			p.PermanentAddress = v
		case "profile_picture":
			p.ProfilePicture = v
		case "country":
			p.Country = v
		case "designation":
			p.Designation = v
		}
		return nil
	},
	Unique: map[string]func(*models.Profile) string{
		"profile_user_id_unique": func(p *models.Profile) string { return p.UserID },
	},
}
