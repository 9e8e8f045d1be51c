// Package models defines the payment screening pipeline types.
package models

import (
	"encoding/json"
	"strings"
	"time"

	screening "vigil/internal/screening/models"
	dErrors "vigil/pkg/domain-errors"
)

// Status tracks a payment through the screening pipeline.
type Status string

const (
	StatusReceived  Status = "received"
	StatusScreening Status = "screening"
	StatusCleared   Status = "cleared"
	StatusReview    Status = "review"
	StatusBlocked   Status = "blocked"
	StatusError     Status = "error"
)

// Party is one side of a payment.
type Party struct {
	Name    string `json:"name"`
	Account string `json:"account,omitempty"`
	Bank    string `json:"bank,omitempty"`
	Country string `json:"country,omitempty"`
}

// PaymentEvent is one payment instruction consumed from the inbound topic.
// Metadata is carried through to the result untouched.
type PaymentEvent struct {
	PaymentID     string          `json:"payment_id"`
	TransactionID string          `json:"transaction_id"`
	Sender        Party           `json:"sender"`
	Recipient     Party           `json:"recipient"`
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentType   string          `json:"payment_type,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
}

// Validate rejects events that cannot be screened at all. Anything that
// passes here is screened; anything that fails is logged and dropped.
func (e PaymentEvent) Validate() error {
	if strings.TrimSpace(e.PaymentID) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "payment_id is required")
	}
	if strings.TrimSpace(e.Sender.Name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "sender name is required")
	}
	if strings.TrimSpace(e.Recipient.Name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "recipient name is required")
	}
	return nil
}

// PartyResult is the screening outcome for one side of the payment.
type PartyResult struct {
	Name       string                   `json:"name"`
	RiskScore  float64                  `json:"risk_score"`
	Decision   screening.Decision       `json:"decision"`
	Confidence float64                  `json:"confidence"`
	Findings   []screening.MatchFinding `json:"findings,omitempty"`
}

// ScreeningOutcome is the published per-payment result. CombinedRisk is the
// worst of the two parties, never an average: one sanctioned party is enough
// to stop a payment.
type ScreeningOutcome struct {
	PaymentID     string             `json:"payment_id"`
	TransactionID string             `json:"transaction_id"`
	Status        Status             `json:"status"`
	Sender        PartyResult        `json:"sender"`
	Recipient     PartyResult        `json:"recipient"`
	CombinedRisk  float64            `json:"combined_risk"`
	Decision      screening.Decision `json:"decision"`
	Error         string             `json:"error,omitempty"`
	LatencyMS     int64              `json:"latency_ms"`
	ScreenedAt    time.Time          `json:"screened_at"`
	Metadata      json.RawMessage    `json:"metadata,omitempty"`
}
