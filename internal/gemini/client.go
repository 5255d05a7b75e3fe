// Package gemini is a thin adapter over the Gemini generateContent REST API
// for the portal's chat, voice and analysis features.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	chatModel   = "gemini-3-pro-preview"
	flashModel  = "gemini-3-flash-preview"
	speechModel = "gemini-2.5-flash-preview-tts"

	// chatContextLimit caps how many registrations are embedded into the
	// chat system instruction.
	chatContextLimit = 10
)

// Config configures the Gemini endpoint and HTTP behavior.
type Config struct {
	// APIKey authenticates requests against the API.
	APIKey string
	// BaseURL overrides the API host, mainly for tests.
	BaseURL string
	// HTTPClient performs the requests; http.DefaultClient when nil.
	HTTPClient *http.Client
}

// Client calls the Gemini generateContent endpoint. Calls are single
// round-trips with no retry; errors propagate to the caller.
type Client struct {
	cfg Config
}

// NewClient builds a Gemini client, filling config defaults.
func NewClient(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{cfg: cfg}
}

// Wire types for the generateContent request/response.

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType   string          `json:"responseMimeType,omitempty"`
	ResponseSchema     json.RawMessage `json:"responseSchema,omitempty"`
	ResponseModalities []string        `json:"responseModalities,omitempty"`
	ThinkingConfig     *thinkingConfig `json:"thinkingConfig,omitempty"`
	SpeechConfig       *speechConfig   `json:"speechConfig,omitempty"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateRequest struct {
	SystemInstruction *content          `json:"system_instruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate posts one generateContent request to the given model and returns
// the first candidate's parts.
func (c *Client) generate(ctx context.Context, model string, req generateRequest) ([]part, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.cfg.BaseURL, model, c.cfg.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("gemini returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	return out.Candidates[0].Content.Parts, nil
}

// Chat answers a prompt with the conversation history and the current
// registration list embedded into the system instruction.
func (c *Client) Chat(ctx context.Context, prompt string, history []models.ChatMessage, regs []models.Registration) (string, error) {
	instruction := "Eres un asistente inteligente para FANS."
	if len(regs) > 0 {
		sample := regs
		if len(sample) > chatContextLimit {
			sample = sample[:chatContextLimit]
		}
		data, err := json.Marshal(sample)
		if err != nil {
			return "", fmt.Errorf("marshal context: %w", err)
		}
		instruction = fmt.Sprintf(
			"Actúa como un experto en soporte de FANS. Datos actuales del sistema: %s. Usa un tono amable y profesional.",
			data,
		)
	}

	contents := make([]content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, content{Role: msg.Role, Parts: []part{{Text: msg.Text}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: prompt}}})

	parts, err := c.generate(ctx, chatModel, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: instruction}}},
		Contents:          contents,
		GenerationConfig: &generationConfig{
			ThinkingConfig: &thinkingConfig{ThinkingBudget: 32768},
		},
	})
	if err != nil {
		return "", err
	}
	return parts[0].Text, nil
}

// analysisSchema constrains the Analyze response to the report shape.
const analysisSchema = `{
	"type": "OBJECT",
	"properties": {
		"summary": {"type": "STRING"},
		"metrics": {
			"type": "OBJECT",
			"properties": {
				"abonadosPerc": {"type": "NUMBER"},
				"topLocations": {"type": "ARRAY", "items": {"type": "STRING"}}
			}
		},
		"duplicates": {"type": "ARRAY", "items": {"type": "STRING"}}
	},
	"required": ["summary", "metrics"]
}`

// Analyze asks the model for a structured statistical summary of the full
// registration list.
func (c *Client) Analyze(ctx context.Context, regs []models.Registration) (*models.AnalysisReport, error) {
	data, err := json.Marshal(regs)
	if err != nil {
		return nil, fmt.Errorf("marshal registrations: %w", err)
	}
	prompt := fmt.Sprintf(
		"Analiza estadísticamente estas solicitudes de entradas y abonos: %s. "+
			"Dame un resumen de: "+
			"1. Porcentaje de abonados vs no abonados. "+
			"2. Localidades principales. "+
			"3. Recomendaciones para mejorar la gestión. "+
			"4. Identifica posibles duplicados por DNI.",
		data,
	)

	parts, err := c.generate(ctx, flashModel, generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   json.RawMessage(analysisSchema),
		},
	})
	if err != nil {
		return nil, err
	}

	var report models.AnalysisReport
	if err := json.Unmarshal([]byte(parts[0].Text), &report); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &report, nil
}

// Transcribe converts base64-encoded MP3 audio into text.
func (c *Client) Transcribe(ctx context.Context, base64Audio string) (string, error) {
	parts, err := c.generate(ctx, flashModel, generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{MimeType: "audio/mp3", Data: base64Audio}},
				{Text: "Transcribe este audio exactamente como se escucha."},
			},
		}},
	})
	if err != nil {
		return "", err
	}
	return parts[0].Text, nil
}

// Speak converts text into base64-encoded audio using the portal's voice.
func (c *Client) Speak(ctx context.Context, text string) (string, error) {
	parts, err := c.generate(ctx, speechModel, generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: "Kore"},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if parts[0].InlineData == nil {
		return "", fmt.Errorf("gemini returned no audio data")
	}
	return parts[0].InlineData.Data, nil
}
