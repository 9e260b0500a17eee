// Package models holds the persistent entities of the todo server.
package models

import "time"

// Record is embedded by every stored entity.
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
