package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lolocuentaps32/fanscopa/internal/models"
)

// newTestClient returns a client pointed at a server replying with the given
// handler, plus the request capture.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}), srv
}

func textResponse(text string) string {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestChat_SendsHistoryAndContext(t *testing.T) {
	var got generateRequest
	var path string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path + "?" + r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(textResponse("claro, te ayudo")))
	})

	history := []models.ChatMessage{{Role: "user", Text: "hola"}, {Role: "model", Text: "buenas"}}
	regs := []models.Registration{{DNI: "45738884A", Localidad: "Valdepeñas"}}

	text, err := client.Chat(context.Background(), "¿estado de mi solicitud?", history, regs)
	require.NoError(t, err)
	assert.Equal(t, "claro, te ayudo", text)

	assert.Contains(t, path, "models/gemini-3-pro-preview:generateContent")
	assert.Contains(t, path, "key=test-key")

	require.Len(t, got.Contents, 3, "history turns plus the prompt")
	assert.Equal(t, "¿estado de mi solicitud?", got.Contents[2].Parts[0].Text)
	require.NotNil(t, got.SystemInstruction)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "45738884A",
		"registration data must be embedded as context")
}

func TestChat_LimitsEmbeddedRegistrations(t *testing.T) {
	var got generateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(textResponse("ok")))
	})

	regs := make([]models.Registration, 25)
	for i := range regs {
		regs[i].OrdenRegistro = i + 1
	}
	_, err := client.Chat(context.Background(), "hola", nil, regs)
	require.NoError(t, err)

	instruction := got.SystemInstruction.Parts[0].Text
	assert.Contains(t, instruction, `"ORDEN_REGISTRO":10`)
	assert.NotContains(t, instruction, `"ORDEN_REGISTRO":11`)
}

func TestAnalyze_ParsesStructuredReport(t *testing.T) {
	report := `{"summary":"resumen","metrics":{"abonadosPerc":50,"topLocations":["Valdepeñas"]},"duplicates":["45738884A"]}`
	var got generateRequest
	var path string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(textResponse(report)))
	})

	out, err := client.Analyze(context.Background(), []models.Registration{{DNI: "45738884A"}})
	require.NoError(t, err)
	assert.Equal(t, "resumen", out.Summary)
	assert.Equal(t, float64(50), out.Metrics.AbonadosPerc)
	assert.Equal(t, []string{"Valdepeñas"}, out.Metrics.TopLocations)
	assert.Equal(t, []string{"45738884A"}, out.Duplicates)

	assert.Contains(t, path, "models/gemini-3-flash-preview:generateContent")
	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
	assert.NotEmpty(t, got.GenerationConfig.ResponseSchema)
}

func TestTranscribe_SendsInlineAudio(t *testing.T) {
	var got generateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(textResponse("hola mundo")))
	})

	text, err := client.Transcribe(context.Background(), "QUJD")
	require.NoError(t, err)
	assert.Equal(t, "hola mundo", text)

	require.Len(t, got.Contents, 1)
	require.NotNil(t, got.Contents[0].Parts[0].InlineData)
	assert.Equal(t, "audio/mp3", got.Contents[0].Parts[0].InlineData.MimeType)
	assert.Equal(t, "QUJD", got.Contents[0].Parts[0].InlineData.Data)
}

func TestSpeak_ReturnsAudioData(t *testing.T) {
	resp := map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{
				map[string]any{"inlineData": map[string]any{"mimeType": "audio/wav", "data": "UklGRg=="}},
			}}},
		},
	}
	data, _ := json.Marshal(resp)
	var got generateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write(data)
	})

	audio, err := client.Speak(context.Background(), "tu plaza está reservada")
	require.NoError(t, err)
	assert.Equal(t, "UklGRg==", audio)

	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, []string{"AUDIO"}, got.GenerationConfig.ResponseModalities)
	assert.Equal(t, "Kore", got.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)
}

func TestGenerate_ErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	})

	_, err := client.Chat(context.Background(), "hola", nil, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "429"), "status code should surface: %v", err)
}

func TestGenerate_NoCandidates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Chat(context.Background(), "hola", nil, nil)
	require.Error(t, err)
}
