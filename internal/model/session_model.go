package model

import "time"

// Session is the on-disk JSON document, one file per session.
type Session struct {
	SessionId         string    `json:"session_id"`
	QnA               []QnA     `json:"qna"`
	ProfileText       string    `json:"profile_text"`
	PartialTranscript string    `json:"partial_transcript"`
	LastUpdate        time.Time `json:"last_update"`
}

type QnA struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	Style     Style     `json:"style"`
}

type Style struct {
	Mode        string  `json:"mode"`
	Tone        string  `json:"tone"`
	Layout      string  `json:"layout,omitempty"`
	Variability float64 `json:"variability"`
}
