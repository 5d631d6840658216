package entity

import "time"

// SavedSchema is a named dealership profile kept in the saved list.
type SavedSchema struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Data      DealershipProfile `json:"data"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
