package service

import (
	"context"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

// GenerativeClient defines the generative-AI operations needed by the
// assistant service.
type GenerativeClient interface {
	// Chat answers a prompt given the conversation history and the current
	// registration list as context.
	Chat(ctx context.Context, prompt string, history []models.ChatMessage, regs []models.Registration) (string, error)
	// Analyze produces a structured summary over the registration list.
	Analyze(ctx context.Context, regs []models.Registration) (*models.AnalysisReport, error)
	// Transcribe converts base64-encoded audio into text.
	Transcribe(ctx context.Context, base64Audio string) (string, error)
	// Speak converts text into base64-encoded audio.
	Speak(ctx context.Context, text string) (string, error)
}

// Lister is the storage operation the assistant needs to embed the current
// data set into its context.
type Lister interface {
	ListAll(ctx context.Context) ([]models.Registration, error)
}

// Assistant proxies chat, voice and analysis requests to the generative-AI
// provider with the registration data embedded as context. The data set is
// best-effort: if the storage facade is fully unavailable the assistant
// answers without it.
type Assistant struct {
	client  GenerativeClient
	storage Lister
}

// NewAssistant constructs an Assistant service.
func NewAssistant(client GenerativeClient, storage Lister) *Assistant {
	return &Assistant{client: client, storage: storage}
}

// Chat answers a user prompt, embedding the current registrations.
func (a *Assistant) Chat(ctx context.Context, prompt string, history []models.ChatMessage) (string, error) {
	regs, err := a.storage.ListAll(ctx)
	if err != nil {
		regs = nil
	}
	return a.client.Chat(ctx, prompt, history, regs)
}

// Analyze produces the structured admin summary over all registrations.
func (a *Assistant) Analyze(ctx context.Context) (*models.AnalysisReport, error) {
	regs, err := a.storage.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return a.client.Analyze(ctx, regs)
}

// Transcribe converts recorded audio into text.
func (a *Assistant) Transcribe(ctx context.Context, base64Audio string) (string, error) {
	return a.client.Transcribe(ctx, base64Audio)
}

// Speak converts assistant text into spoken audio.
func (a *Assistant) Speak(ctx context.Context, text string) (string, error) {
	return a.client.Speak(ctx, text)
}
