package triage

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// OutcomeKind discriminates the three interpretations of a model reply.
type OutcomeKind string

const (
	// OutcomeFollowUp means the model needs more information first.
	OutcomeFollowUp OutcomeKind = "follow_up"
	// OutcomeVerdict means the model concluded with a severity verdict.
	OutcomeVerdict OutcomeKind = "verdict"
	// OutcomeUnstructured means the reply matched neither contract shape
	// and is passed through verbatim.
	OutcomeUnstructured OutcomeKind = "unstructured"
)

// Risk score bounds applied to every verdict before storage or display.
const (
	RiskScoreMin = 0
	RiskScoreMax = 100
)

// DefaultDisclaimer is substituted when a verdict omits its disclaimer.
const DefaultDisclaimer = "This is not a medical diagnosis."

// unstructuredFallback is shown when the backend returned no text at all.
const unstructuredFallback = "I could not generate guidance right now."

// Outcome is the interpreted form of one model reply. Exactly one kind is
// produced per reply; DisplayText is always set.
type Outcome struct {
	Kind        OutcomeKind
	DisplayText string

	// Follow-up fields.
	Questions []string

	// Verdict fields.
	Severity   string
	RiskScore  int
	Advice     string
	Disclaimer string
}

// replyPayload covers both documented contract shapes; pointers distinguish
// absent fields from zero values.
type replyPayload struct {
	FollowUpQuestions []string `json:"followUpQuestions"`
	Severity          *string  `json:"severity"`
	RiskScore         *float64 `json:"riskScore"`
	Advice            string   `json:"advice"`
	Disclaimer        *string  `json:"disclaimer"`
}

// Interpret parses a raw model reply against the dual-shape JSON contract.
// It is total: malformed input of any kind degrades to the unstructured
// outcome instead of an error.
func Interpret(raw string) Outcome {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Outcome{Kind: OutcomeUnstructured, DisplayText: unstructuredFallback}
	}

	var payload replyPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return Outcome{Kind: OutcomeUnstructured, DisplayText: raw}
	}

	if len(payload.FollowUpQuestions) > 0 {
		questions := append([]string(nil), payload.FollowUpQuestions...)
		return Outcome{
			Kind:        OutcomeFollowUp,
			Questions:   questions,
			DisplayText: strings.Join(questions, " "),
		}
	}

	if payload.Severity != nil && payload.RiskScore != nil {
		severity := strings.TrimSpace(*payload.Severity)
		score := clampRiskScore(*payload.RiskScore)

		disclaimer := DefaultDisclaimer
		if payload.Disclaimer != nil && strings.TrimSpace(*payload.Disclaimer) != "" {
			disclaimer = *payload.Disclaimer
		}

		return Outcome{
			Kind:       OutcomeVerdict,
			Severity:   severity,
			RiskScore:  score,
			Advice:     payload.Advice,
			Disclaimer: disclaimer,
			DisplayText: fmt.Sprintf("Severity: %s\nRiskScore: %d\nAdvice: %s\nDisclaimer: %s",
				severity, score, payload.Advice, disclaimer),
		}
	}

	return Outcome{Kind: OutcomeUnstructured, DisplayText: raw}
}

// clampRiskScore rounds half away from zero, then clamps to the score
// bounds.
func clampRiskScore(value float64) int {
	score := int(math.Round(value))
	if score < RiskScoreMin {
		return RiskScoreMin
	}
	if score > RiskScoreMax {
		return RiskScoreMax
	}
	return score
}
