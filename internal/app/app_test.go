package app

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/garyellow/whatsapp-course-bot/internal/config"
	"github.com/garyellow/whatsapp-course-bot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphAPIStub stands in for the Cloud API send-message endpoint.
type graphAPIStub struct {
	mu       sync.Mutex
	paths    []string
	auths    []string
	payloads []map[string]any
}

func (g *graphAPIStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	g.mu.Lock()
	g.paths = append(g.paths, r.URL.Path)
	g.auths = append(g.auths, r.Header.Get("Authorization"))
	g.payloads = append(g.payloads, body)
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"messaging_product":"whatsapp","messages":[{"id":"wamid.OUT"}]}`)
}

func (g *graphAPIStub) snapshot() ([]string, []string, []map[string]any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.paths...),
		append([]string(nil), g.auths...),
		append([]map[string]any(nil), g.payloads...)
}

func testConfig(graphURL string) *config.Config {
	return &config.Config{
		WhatsApp: config.WhatsAppConfig{
			VerifyToken:     "verify-me",
			AccessToken:     "access-token",
			PhoneNumberID:   "106540352242922",
			GraphAPIBaseURL: graphURL,
			GraphAPIVersion: "v19.0",
			SendTimeout:     2 * time.Second,
		},
		MetricsUsername: "prometheus",
		Port:            "0",
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
	}
}

// setupTestApp wires a full Application against a stub Graph API.
func setupTestApp(t *testing.T, mutate func(*config.Config)) (*Application, *graphAPIStub) {
	t.Helper()

	stub := &graphAPIStub{}
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	if mutate != nil {
		mutate(cfg)
	}
	return newApplication(cfg, logger.NewWithWriter("error", io.Discard)), stub
}

func do(app *Application, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	return w
}

func TestLivenessCheck(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, nil)

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		w := do(app, method, "/livez", "")
		assert.Equal(t, http.StatusOK, w.Code, method)
	}

	w := do(app, http.MethodGet, "/livez", "")
	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "alive", response["status"])
}

func TestReadinessCheck(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, func(c *config.Config) { c.MetricsAuthEnabled = true })

	w := do(app, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not ready")

	app.ready.Store(true)
	w = do(app, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Status       string          `json:"status"`
		GraphVersion string          `json:"graph_version"`
		Features     map[string]bool `json:"features"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ready", response.Status)
	assert.Equal(t, "v19.0", response.GraphVersion)
	assert.True(t, response.Features["metrics_auth"])
	assert.False(t, response.Features["betterstack"])

	w = do(app, http.MethodHead, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRootRedirects(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, nil)

	w := do(app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, projectURL, w.Header().Get("Location"))
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, nil)

	w := do(app, http.MethodGet, "/livez", "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'none'", w.Header().Get("Content-Security-Policy"))
	assert.Len(t, w.Header().Get("X-Request-Id"), 36, "generated UUID")

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set("X-Correlation-Id", "upstream-123")
	w = httptest.NewRecorder()
	app.Handler().ServeHTTP(w, req)
	assert.Equal(t, "upstream-123", w.Header().Get("X-Request-Id"))
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("open", func(t *testing.T) {
		t.Parallel()
		app, _ := setupTestApp(t, nil)

		do(app, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=nope", "")
		w := do(app, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `wa_verification_total{result="failure"} 1`)
		assert.Contains(t, w.Body.String(), "go_goroutines")
	})

	t.Run("basic auth", func(t *testing.T) {
		t.Parallel()
		app, _ := setupTestApp(t, func(c *config.Config) {
			c.MetricsAuthEnabled = true
			c.MetricsPassword = "pw"
		})

		w := do(app, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.SetBasicAuth("prometheus", "pw")
		w = httptest.NewRecorder()
		app.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestWebhookVerification(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, nil)

	w := do(app, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=98765", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "98765", w.Body.String())

	w = do(app, http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=98765", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Verification failed", w.Body.String())
}

func TestWebhookEndToEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		check   func(t *testing.T, payload map[string]any)
	}{
		{
			name:    "Greeting sends program buttons",
			message: `{"from":"15551234567","id":"wamid.1","type":"text","text":{"body":"Hi"}}`,
			check: func(t *testing.T, payload map[string]any) {
				interactive := payload["interactive"].(map[string]any)
				assert.Equal(t, "button", interactive["type"])
				assert.Equal(t, "Choose your program:", interactive["body"].(map[string]any)["text"])
			},
		},
		{
			name:    "UG button sends UG list",
			message: `{"from":"15551234567","id":"wamid.2","type":"interactive","interactive":{"type":"button_reply","button_reply":{"id":"ug_button","title":"UG"}}}`,
			check: func(t *testing.T, payload map[string]any) {
				interactive := payload["interactive"].(map[string]any)
				assert.Equal(t, "list", interactive["type"])
				assert.Equal(t, "Select a UG course:", interactive["body"].(map[string]any)["text"])
			},
		},
		{
			name:    "Row sends course text",
			message: `{"from":"15551234567","id":"wamid.3","type":"interactive","interactive":{"type":"list_reply","list_reply":{"id":"ug_med","title":"Medical"}}}`,
			check: func(t *testing.T, payload map[string]any) {
				assert.Equal(t, "text", payload["type"])
				assert.Equal(t, "UG Medical: Options include MBBS, BDS, BPT.", payload["text"].(map[string]any)["body"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app, stub := setupTestApp(t, nil)

			body := `{"object":"whatsapp_business_account","entry":[{"id":"1","changes":[{"field":"messages","value":{"messages":[` +
				tt.message + `]}}]}]}`
			w := do(app, http.MethodPost, "/webhook", body)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "OK", w.Body.String())

			paths, auths, payloads := stub.snapshot()
			require.Len(t, payloads, 1)
			assert.Equal(t, "/v19.0/106540352242922/messages", paths[0])
			assert.Equal(t, "Bearer access-token", auths[0])
			assert.Equal(t, "whatsapp", payloads[0]["messaging_product"])
			assert.Equal(t, "15551234567", payloads[0]["to"])
			tt.check(t, payloads[0])
		})
	}
}

func TestWebhookMalformedBody(t *testing.T) {
	t.Parallel()
	app, stub := setupTestApp(t, nil)

	w := do(app, http.MethodPost, "/webhook", "{{{")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	_, _, payloads := stub.snapshot()
	assert.Empty(t, payloads)
}

func TestServeAndShutdown(t *testing.T) {
	t.Parallel()
	app, _ := setupTestApp(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/readyz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx // test probe
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}
	assert.False(t, app.ready.Load())
}
