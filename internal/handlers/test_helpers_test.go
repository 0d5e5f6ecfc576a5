package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/radshield/radshield-web/config"
	"github.com/radshield/radshield-web/internal/cache"
	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/middleware"
	"github.com/radshield/radshield-web/internal/models"
	"github.com/radshield/radshield-web/internal/quote"
	"github.com/radshield/radshield-web/internal/services"
	"github.com/radshield/radshield-web/internal/web"
	"github.com/radshield/radshield-web/pkg/logger"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)

	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// stubDeliverer records delivered requests and fails while err is set
type stubDeliverer struct {
	mu        sync.Mutex
	err       error
	delivered []string
}

func (d *stubDeliverer) Deliver(_ context.Context, reference string, _ *quote.Request) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.delivered = append(d.delivered, reference)
	return nil
}

func (d *stubDeliverer) fail(err error) {
	d.mu.Lock()
	d.err = err
	d.mu.Unlock()
}

// stubDatasheets resolves every key under a fixed host
type stubDatasheets struct {
	err error
}

func (s stubDatasheets) URL(_ context.Context, key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://sheets.example.test/" + key, nil
}

// stubContact answers every submission with resp
type stubContact struct {
	resp *models.ContactResponse
	err  error
	got  []*models.ContactRequest
}

func (s *stubContact) SubmitContactForm(_ context.Context, _, _ string, req *models.ContactRequest) (*models.ContactResponse, error) {
	s.got = append(s.got, req)
	return s.resp, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			BaseURL:       "https://radshield.test",
			DefaultLocale: i18n.FR,
		},
		Wizard: config.WizardConfig{
			JWTSecret:         "test-secret",
			JWTIssuer:         "radshield-test",
			SessionTTLMinutes: 60,
			MaxSessions:       100,
		},
	}
}

func newQuoteService(t *testing.T, deliverer services.QuoteDeliverer) (*services.QuoteService, *cache.WizardStore) {
	t.Helper()
	cfg := testConfig()
	store := cache.NewWizardStore(time.Hour, time.Minute, cfg.Wizard.MaxSessions)
	return services.NewQuoteService(store, catalog.MustDefault(), deliverer, cfg, nil), store
}

func testSite() *web.Site {
	return &web.Site{
		Msgs:    i18n.Default(),
		BaseURL: "https://radshield.test",
	}
}

func newHTMLRouter(t *testing.T) *gin.Engine {
	t.Helper()
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	router := gin.New()
	router.HTMLRender = renderer
	return router
}

// client replays the cookies set by earlier responses
type client struct {
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newClient(router http.Handler) *client {
	return &client{router: router, cookies: make(map[string]*http.Cookie)}
}

func (cl *client) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = http.NoBody
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c
	}
	return w
}

func (cl *client) json(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return cl.do(method, path, r, "application/json")
}

func (cl *client) form(path, body string) *httptest.ResponseRecorder {
	return cl.do(http.MethodPost, path, strings.NewReader(body), "application/x-www-form-urlencoded")
}

func (cl *client) hasSession() bool {
	_, ok := cl.cookies[middleware.WizardSessionCookieName]
	return ok
}

var errSMTPDown = errors.New("smtp: connection refused")

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, http.NoBody)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
