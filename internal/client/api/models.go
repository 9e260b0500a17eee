package api

import "time"

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterRequest struct {
	UserName        string `json:"username"`
	FullName        string `json:"fullname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OffsetPage is one page of GET /todos/offset.
type OffsetPage struct {
	Data  []Todo `json:"data"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// CursorPage is one page of GET /todos/cursor. NextCursor is nil on the
// last page.
type CursorPage struct {
	Data       []Todo  `json:"data"`
	NextCursor *string `json:"nextCursor"`
}
