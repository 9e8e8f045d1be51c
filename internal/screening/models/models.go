// Package models defines the screening domain types. Candidates and watchlist
// records are read-only inputs; findings and results are created once per
// screening call and never mutated afterwards.
package models

import (
	"strings"
	"time"

	dErrors "vigil/pkg/domain-errors"
)

// EntityType tags a candidate or watchlist record.
type EntityType string

const (
	EntityIndividual   EntityType = "individual"
	EntityOrganization EntityType = "organization"
)

// Strategy identifies which matcher produced a finding.
type Strategy string

const (
	StrategyExact    Strategy = "exact"
	StrategyFuzzy    Strategy = "fuzzy"
	StrategySemantic Strategy = "semantic"
)

// Decision is the screening outcome classification.
type Decision string

const (
	DecisionClear  Decision = "clear"
	DecisionReview Decision = "review"
	DecisionBlock  Decision = "block"
)

// MatchedField names an identity attribute that matched a watchlist record.
type MatchedField string

const (
	FieldName           MatchedField = "name"
	FieldDateOfBirth    MatchedField = "date_of_birth"
	FieldNationality    MatchedField = "nationality"
	FieldPassportNumber MatchedField = "passport_number"
)

const dobLayout = "2006-01-02"

// Candidate is the entity being screened. Immutable once constructed.
type Candidate struct {
	Name           string
	Aliases        []string
	DateOfBirth    string // ISO date, optional
	Nationality    string
	PassportNumber string
	Type           EntityType
}

// Validate rejects malformed candidates before any matching begins.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "candidate name is required")
	}
	if c.DateOfBirth != "" {
		if _, err := time.Parse(dobLayout, c.DateOfBirth); err != nil {
			return dErrors.Wrap(err, dErrors.CodeBadRequest, "candidate date_of_birth must be an ISO date")
		}
	}
	switch c.Type {
	case "", EntityIndividual, EntityOrganization:
	default:
		return dErrors.Newf(dErrors.CodeBadRequest, "unknown entity type %q", c.Type)
	}
	return nil
}

// WatchlistRecord is one sanctioned-entity entry. The watchlist store owns the
// record; the screening core only reads snapshots.
type WatchlistRecord struct {
	ID              int64
	ListName        string
	Source          string
	Country         string
	Name            string
	Aliases         []string
	DateOfBirth     string
	Nationality     string
	PassportNumber  string
	Type            EntityType
	DesignationDate string
	Reason          string
	Active          bool
}

// MatchFinding is evidence that a candidate matches one watchlist record under
// one strategy. Created once per (candidate, record) pair that clears the
// configured threshold.
type MatchFinding struct {
	RecordID      int64
	RecordName    string
	ListName      string
	Source        string
	MatchedFields []MatchedField
	Strategy      Strategy
	Confidence    float64 // raw match confidence in [0,1]
	RiskScore     float64 // derived risk contribution in [0,1]
	Details       MatchDetails
}

// MatchDetails carries audit context copied from the watchlist record.
type MatchDetails struct {
	DesignationDate string `json:"designation_date,omitempty"`
	Reason          string `json:"reason,omitempty"`
	Country         string `json:"country,omitempty"`
	EntityType      string `json:"entity_type,omitempty"`
}

// ScreeningResult summarizes all findings for one screening call.
// Findings are ordered descending by risk contribution.
type ScreeningResult struct {
	ID         string
	Candidate  Candidate
	Findings   []MatchFinding
	RiskScore  float64
	Decision   Decision
	Confidence float64
	Latency    time.Duration
	ScreenedAt time.Time
}
