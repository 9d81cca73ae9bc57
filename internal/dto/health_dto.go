package dto

type HealthResponse struct {
	Status  string    `json:"status"`
	Version string    `json:"version"`
	LLM     LLMHealth `json:"llm"`
	STT     STTHealth `json:"stt"`
	Sockets int       `json:"active_stt_sockets"`
}

type LLMHealth struct {
	Provider string `json:"provider"`
	Enabled  bool   `json:"enabled"`
}

type STTHealth struct {
	Provider string `json:"provider"`
}
