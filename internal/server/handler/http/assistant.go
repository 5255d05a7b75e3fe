package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lolocuentaps32/fanscopa/internal/middleware"
	"github.com/lolocuentaps32/fanscopa/internal/models"
)

// AssistantService defines the generative-AI operations required by the
// AssistantHandler.
type AssistantService interface {
	// Chat answers a prompt given the conversation history.
	Chat(ctx context.Context, prompt string, history []models.ChatMessage) (string, error)
	// Analyze produces the structured admin summary.
	Analyze(ctx context.Context) (*models.AnalysisReport, error)
	// Transcribe converts base64-encoded audio into text.
	Transcribe(ctx context.Context, base64Audio string) (string, error)
	// Speak converts text into base64-encoded audio.
	Speak(ctx context.Context, text string) (string, error)
}

// AssistantHandler handles HTTP requests for the chat/voice assistant.
type AssistantHandler struct {
	Assistant AssistantService
}

// ChatRequest represents the JSON payload for a chat turn.
type ChatRequest struct {
	Prompt  string               `json:"prompt"`
	History []models.ChatMessage `json:"history"`
}

// Chat handles POST /api/assistant/chat.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	text, err := h.Assistant.Chat(r.Context(), req.Prompt, req.History)
	if err != nil {
		http.Error(w, "assistant unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]string{"text": text})
}

// Analyze handles POST /api/assistant/analyze (admin only).
func (h *AssistantHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok || !sess.IsAdmin() {
		http.Error(w, "admin access required", http.StatusForbidden)
		return
	}
	report, err := h.Assistant.Analyze(r.Context())
	if err != nil {
		http.Error(w, "assistant unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, report)
}

// TranscribeRequest represents the JSON payload for audio transcription.
type TranscribeRequest struct {
	// Audio is the base64-encoded recording.
	Audio string `json:"audio"`
}

// Transcribe handles POST /api/assistant/transcribe.
func (h *AssistantHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var req TranscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Audio == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	text, err := h.Assistant.Transcribe(r.Context(), req.Audio)
	if err != nil {
		http.Error(w, "assistant unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]string{"text": text})
}

// SpeakRequest represents the JSON payload for speech synthesis.
type SpeakRequest struct {
	Text string `json:"text"`
}

// Speak handles POST /api/assistant/speech.
func (h *AssistantHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	audio, err := h.Assistant.Speak(r.Context(), req.Text)
	if err != nil {
		http.Error(w, "assistant unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]string{"audio": audio})
}
