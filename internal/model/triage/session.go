package triage

import "time"

// Session captures the mutable state of one ongoing triage conversation.
// RiskScore is nil until a verdict has been reached.
type Session struct {
	ID              string    `json:"id"`
	RiskScore       *int      `json:"riskScore,omitempty"`
	EmergencyActive bool      `json:"emergencyActive"`
	CreatedAt       time.Time `json:"createdAt"`
}
