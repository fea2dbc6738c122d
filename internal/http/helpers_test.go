package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"shelflife/internal/domain"
	"shelflife/internal/http/handlers"
	applog "shelflife/internal/log"
	"shelflife/internal/notify"
	"shelflife/internal/store"
	"shelflife/web"
)

// now is the fixed instant every handler test runs at.
var now = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

type testApp struct {
	app  *fiber.App
	deps *handlers.Deps
	mem  *store.MemoryBackend
}

func newTestApp(t *testing.T, sender notify.EmailSender) *testApp {
	t.Helper()
	return newTestAppWith(t, sender, handlers.Options{})
}

func newTestAppWith(t *testing.T, sender notify.EmailSender, opts handlers.Options) *testApp {
	t.Helper()
	if sender == nil {
		sender = notify.LogSender{}
	}
	mem := store.NewMemoryBackend()
	engine := web.NewEngine()
	deps := handlers.NewDeps(mem, sender, notify.NewAlertRenderer(engine), time.UTC)
	clock := func() time.Time { return now }
	deps.Catalog.Now = clock
	deps.Catalog.Prods.Now = clock

	opts.Views = engine
	return &testApp{app: handlers.NewApp(deps, opts), deps: deps, mem: mem}
}

func (ta *testApp) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (ta *testApp) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	return ta.do(t, httptest.NewRequest(http.MethodGet, path, nil))
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func (ta *testApp) sendJSON(t *testing.T, method, path string, v any) (*http.Response, string) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return ta.do(t, req)
}

// csrfToken loads a page to obtain the CSRF cookie.
func (ta *testApp) csrfToken(t *testing.T) string {
	t.Helper()
	resp, _ := ta.get(t, "/products/add")
	tok := extractCookie(resp, "csrf_")
	require.NotEmpty(t, tok, "csrf token missing")
	return tok
}

// postForm submits a form the way a browser would, token included.
func (ta *testApp) postForm(t *testing.T, path, tok string, form url.Values) (*http.Response, string) {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if tok != "" {
		form.Set("csrf", tok)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if tok != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	}
	return ta.do(t, req)
}

func (ta *testApp) seed(t *testing.T, name, barcode string, in time.Duration) domain.Product {
	t.Helper()
	p, err := ta.deps.Catalog.Create(context.Background(), domain.ProductInput{
		Barcode:    barcode,
		Name:       name,
		Price:      2.5,
		ExpiryDate: now.Add(in),
	})
	require.NoError(t, err)
	return p
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.buf.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	w := &lockedWriter{}
	restore := applog.SetOutput(w)
	defer restore()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
