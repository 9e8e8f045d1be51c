package handler

import (
	"time"

	"vigil/internal/screening/models"
)

// ScreenResponse is the JSON shape of one screening result.
type ScreenResponse struct {
	ID            string            `json:"id"`
	CandidateName string            `json:"candidate_name,omitempty"`
	Decision      string            `json:"decision"`
	RiskScore     float64           `json:"risk_score"`
	Confidence    float64           `json:"confidence"`
	Findings      []FindingResponse `json:"findings"`
	LatencyMS     int64             `json:"latency_ms"`
	ScreenedAt    time.Time         `json:"screened_at"`
}

type FindingResponse struct {
	RecordID      int64               `json:"record_id"`
	RecordName    string              `json:"record_name"`
	ListName      string              `json:"list_name"`
	Source        string              `json:"source"`
	MatchedFields []string            `json:"matched_fields,omitempty"`
	Strategy      string              `json:"strategy"`
	Confidence    float64             `json:"confidence"`
	RiskScore     float64             `json:"risk_score"`
	Details       models.MatchDetails `json:"details"`
}

func FromResult(result *models.ScreeningResult) ScreenResponse {
	findings := make([]FindingResponse, 0, len(result.Findings))
	for _, f := range result.Findings {
		fields := make([]string, len(f.MatchedFields))
		for i, mf := range f.MatchedFields {
			fields[i] = string(mf)
		}
		findings = append(findings, FindingResponse{
			RecordID:      f.RecordID,
			RecordName:    f.RecordName,
			ListName:      f.ListName,
			Source:        f.Source,
			MatchedFields: fields,
			Strategy:      string(f.Strategy),
			Confidence:    f.Confidence,
			RiskScore:     f.RiskScore,
			Details:       f.Details,
		})
	}
	return ScreenResponse{
		ID:            result.ID,
		CandidateName: result.Candidate.Name,
		Decision:      string(result.Decision),
		RiskScore:     result.RiskScore,
		Confidence:    result.Confidence,
		Findings:      findings,
		LatencyMS:     result.Latency.Milliseconds(),
		ScreenedAt:    result.ScreenedAt,
	}
}

// ListResponse is one watchlist inventory entry.
type ListResponse struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}
