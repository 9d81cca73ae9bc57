package dto

import (
	"time"

	"interview-assistant-be/pkg/answer"
)

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type SessionSummaryResponse struct {
	SessionId  string    `json:"session_id"`
	LastUpdate time.Time `json:"last_update"`
	QnACount   int       `json:"qna_count"`
}

type ListSessionsResponse struct {
	Items []SessionSummaryResponse `json:"items"`
}

type DeleteSessionResponse struct {
	Status  string `json:"status"`
	Deleted bool   `json:"deleted"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type QnAResponse struct {
	Question  string               `json:"question"`
	Answer    string               `json:"answer"`
	CreatedAt time.Time            `json:"created_at"`
	Style     answer.ResolvedStyle `json:"style"`
}

type HistoryResponse struct {
	SessionId string        `json:"session_id"`
	QnA       []QnAResponse `json:"qna"`
}

type TranscriptResponse struct {
	SessionId         string `json:"session_id"`
	PartialTranscript string `json:"partial_transcript"`
}

type UploadProfileResponse struct {
	Status     string `json:"status"`
	Characters int    `json:"characters"`
}
