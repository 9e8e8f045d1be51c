package handler

import (
	"vigil/internal/screening/models"
)

// ScreenRequest is the POST /v1/screening/screen payload.
type ScreenRequest struct {
	Name           string   `json:"name"`
	Aliases        []string `json:"aliases,omitempty"`
	DateOfBirth    string   `json:"date_of_birth,omitempty"`
	Nationality    string   `json:"nationality,omitempty"`
	PassportNumber string   `json:"passport_number,omitempty"`
	EntityType     string   `json:"entity_type,omitempty"`

	// Threshold, when set, overrides the configured fuzzy and semantic
	// acceptance thresholds for this call.
	Threshold *float64 `json:"threshold,omitempty"`
}

func (r ScreenRequest) Candidate() models.Candidate {
	entityType := models.EntityType(r.EntityType)
	if r.EntityType == "" {
		entityType = models.EntityIndividual
	}
	return models.Candidate{
		Name:           r.Name,
		Aliases:        r.Aliases,
		DateOfBirth:    r.DateOfBirth,
		Nationality:    r.Nationality,
		PassportNumber: r.PassportNumber,
		Type:           entityType,
	}
}
