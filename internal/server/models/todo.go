package models

type Todo struct {
	Record
	UserID      string  `json:"user"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Done        bool    `json:"done"`
}
