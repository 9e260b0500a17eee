package httpapi

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/google/uuid"
)

// Column limits of the schema.
const (
	maxUserName    = 30
	maxFullName    = 50
	maxEmail       = 100
	maxTitle       = 100
	maxDescription = 500

	minPassword = 6
	// bcrypt ignores input past 72 bytes
	maxPasswordBytes = 72
)

type validator struct {
	problems []string
}

func (v *validator) required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.problems = append(v.problems, field+" is required")
		return false
	}
	return true
}

func (v *validator) maxLen(field, value string, n int) {
	if utf8.RuneCountInString(value) > n {
		v.problems = append(v.problems, fmt.Sprintf("%s must be at most %d characters", field, n))
	}
}

func (v *validator) check(ok bool, problem string) {
	if !ok {
		v.problems = append(v.problems, problem)
	}
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(v.problems, "; "))
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func parseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a valid id", common.ErrorValidation, raw)
	}
	return id.String(), nil
}
