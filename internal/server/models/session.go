package models

// Session is the single refresh token slot of a user.
type Session struct {
	Record
	UserID string `json:"userId"`
	Token  string `json:"-"`
}
