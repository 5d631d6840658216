// Package seed holds the example dealership shown in the empty form and the
// sample entries written to a fresh saved-schema store.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/octobees/autoschema/internal/entity"
)

var (
	//go:embed placeholder.json
	placeholderJSON []byte
	//go:embed samples.json
	samplesJSON []byte
)

// Placeholder returns the example profile used as form hints.
func Placeholder() (entity.DealershipProfile, error) {
	var p entity.DealershipProfile
	if err := json.Unmarshal(placeholderJSON, &p); err != nil {
		return entity.DealershipProfile{}, fmt.Errorf("decode placeholder profile: %w", err)
	}
	return p, nil
}

// SampleSchemas returns a fresh copy of the sample saved schemas, newest first
// by list position as shipped.
func SampleSchemas() ([]entity.SavedSchema, error) {
	var samples []entity.SavedSchema
	if err := json.Unmarshal(samplesJSON, &samples); err != nil {
		return nil, fmt.Errorf("decode sample schemas: %w", err)
	}
	return samples, nil
}
