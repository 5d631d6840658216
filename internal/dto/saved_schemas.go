package dto

import "github.com/octobees/autoschema/internal/entity"

// SaveSchemaRequest is the payload for creating or updating a saved schema.
type SaveSchemaRequest struct {
	Name string                   `json:"name"`
	Data entity.DealershipProfile `json:"data"`
}

// SavedSchemaList wraps the saved schema listing.
type SavedSchemaList struct {
	Items []entity.SavedSchema `json:"items"`
	Total int                  `json:"total"`
}
