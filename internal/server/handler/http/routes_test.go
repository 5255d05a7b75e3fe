package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/lolocuentaps32/fanscopa/internal/models"
	"github.com/lolocuentaps32/fanscopa/internal/session"
)

// newTestRouter wires the full router with fake services and a real session
// manager, returning the router and a logged-in admin token.
func newTestRouter(t *testing.T) (http.Handler, *session.Manager) {
	t.Helper()
	store := &fakeStorageService{
		listAllFn: func(ctx context.Context) ([]models.Registration, error) {
			return []models.Registration{{OrdenRegistro: 360, DNI: "45738884A"}}, nil
		},
		createFn: func(ctx context.Context, reg models.Registration) (*models.Registration, error) {
			return &reg, nil
		},
	}
	assistant := &fakeAssistantService{
		chatFn: func(ctx context.Context, prompt string, history []models.ChatMessage) (string, error) {
			return "ok", nil
		},
	}
	sessions := session.NewManager()
	authHandler := &AuthHandler{
		AuthService: &fakeAuthService{session: models.AdminSession("admin@copacrm.com")},
		Sessions:    sessions,
	}
	router := NewRouter(authHandler, &RegistrationHandler{Storage: store},
		&AssistantHandler{Assistant: assistant}, sessions, zap.NewNop())
	return router, sessions
}

func doJSON(router http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterPublicEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("login needs no token", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/login", `{"email":"admin@copacrm.com"}`, "")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("registration form needs no token", func(t *testing.T) {
		body := `{"DNI":"12345678Z","EMAIL":"nuevo@example.com","ACEPTACION_TERM":true}`
		rec := doJSON(router, http.MethodPost, "/api/registrations", body, "")
		if rec.Code != http.StatusCreated {
			t.Errorf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestRouterProtectedEndpoints(t *testing.T) {
	router, sessions := newTestRouter(t)
	token := sessions.Create(models.AdminSession("admin@copacrm.com"))

	protected := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/api/registrations", ""},
		{http.MethodGet, "/api/registrations/me", ""},
		{http.MethodPost, "/api/assistant/chat", `{"prompt":"hola"}`},
		{http.MethodPost, "/api/logout", ""},
	}
	for _, route := range protected {
		t.Run("no token "+route.method+" "+route.target, func(t *testing.T) {
			rec := doJSON(router, route.method, route.target, route.body, "")
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}

	t.Run("admin list with token", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/registrations", "", token)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("chat with token", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/assistant/chat", `{"prompt":"hola"}`, token)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/logout", "", token)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		rec = doJSON(router, http.MethodGet, "/api/registrations", "", token)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 after logout, got %d", rec.Code)
		}
	})
}

func TestRouterRejectsNonJSONBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString("email=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", rec.Code)
	}
}
