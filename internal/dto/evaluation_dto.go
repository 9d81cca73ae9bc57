package dto

import (
	"time"

	"interview-assistant-be/pkg/codeeval"
)

type EvaluateRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Problem   string `json:"problem,omitempty"`
	Code      string `json:"code"`
	Language  string `json:"language,omitempty"`
}

type EvaluationResponse struct {
	SessionId               string           `json:"session_id"`
	Problem                 string           `json:"problem"`
	Language                string           `json:"language"`
	ApproachAutoExplanation string           `json:"approach_auto_explanation"`
	FeedbackSummary         string           `json:"feedback_summary"`
	Strengths               []string         `json:"strengths"`
	Weaknesses              []string         `json:"weaknesses"`
	Scores                  codeeval.Scores  `json:"scores"`
	StaticSignals           codeeval.Signals `json:"static_signals"`
	Recommendations         []string         `json:"recommendations"`
	CreatedAt               time.Time        `json:"created_at"`
}
