package models

type User struct {
	Record
	UserName     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"fullname"`
	PasswordHash string `json:"-"`
}
