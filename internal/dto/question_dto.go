package dto

import (
	"time"

	"interview-assistant-be/pkg/answer"
)

type StyleRequest struct {
	Mode        string   `json:"mode,omitempty"`
	Tone        string   `json:"tone,omitempty"`
	Layout      string   `json:"layout,omitempty"`
	Variability *float64 `json:"variability,omitempty" validate:"omitempty,gte=0,lte=1"`
	Seed        *int64   `json:"seed,omitempty"`
}

type AskQuestionRequest struct {
	SessionId    string        `json:"session_id" validate:"required"`
	Question     string        `json:"question"`
	Style        *StyleRequest `json:"style,omitempty"`
	SystemPrompt string        `json:"system_prompt,omitempty"`
	Stream       bool          `json:"stream,omitempty"`
}

type AnswerResponse struct {
	Answer    string               `json:"answer"`
	Style     answer.ResolvedStyle `json:"style"`
	CreatedAt time.Time            `json:"created_at"`
}
