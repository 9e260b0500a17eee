package crud

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

type widget struct {
	models.Record
	Name string
	Note *string
}

var widgets = Table[widget]{
	Name:    "widgets",
	Columns: []string{"name", "note"},
	Mutable: []string{"name", "note"},
	Values:  func(w *widget) []any { return []any{w.Name, w.Note} },
	Targets: func(w *widget) []any { return []any{&w.Name, &w.Note} },
	Record:  func(w *widget) *models.Record { return &w.Record },
	Set: func(w *widget, column string, value any) error {
		switch column {
		case "name":
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: name must be a string", common.ErrorValidation)
			}
			w.Name = s
		case "note":
			s, ok := value.(*string)
			if !ok {
				return fmt.Errorf("%w: note must be a string pointer", common.ErrorValidation)
			}
			w.Note = s
		}
		return nil
	},
	Unique: map[string]func(*widget) string{
		"widgets_name_unique": func(w *widget) string { return w.Name },
	},
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)

func fixedClock() time.Time { return fixedNow }
