package models

type Profile struct {
	Record
	UserID           string  `json:"userId"`
	TemporaryAddress *string `json:"temporaryAddress"`
	PermanentAddress *string `json:"permanentAddress"`
	ProfilePicture   *string `json:"profilePicture"`
	Country          *string `json:"country"`
	Designation      *string `json:"designation"`
}
