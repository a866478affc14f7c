package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/petition/internal/config"
	"github.com/JonMunkholm/petition/internal/core"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	rows      []core.Signature
	insertErr error
	listErr   error
}

func (f *fakeStore) Insert(_ context.Context, sig core.Signature) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return pgconn.CommandTag{}, f.insertErr
	}
	sig.ID = int64(len(f.rows) + 1)
	sig.Created = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	f.rows = append(f.rows, sig)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeStore) List(context.Context) ([]core.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]core.Signature(nil), f.rows...), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           3000,
			RequestTimeout: 5 * time.Second,
			FormMaxBytes:   1024,
		},
		Security: config.SecurityConfig{EnableCSP: true},
	}
}

func newTestServer(t *testing.T, store *fakeStore) *Server {
	t.Helper()
	s, err := NewServer(core.NewService(store), testConfig())
	require.NoError(t, err)
	return s
}

func postForm(s *Server, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSubmit_ValidRedirects(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(t, store)

	rec := postForm(s, url.Values{
		"name":       {"Jon Jonsson"},
		"nationalId": {"010101-1234"},
		"comment":    {"hi"},
		"aLista":     {""},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/thanks", rec.Header().Get("Location"))
	require.Len(t, store.rows, 1)
	assert.Equal(t, "Jon Jonsson", store.rows[0].Name)
	assert.Equal(t, "0101011234", store.rows[0].NationalID)
	assert.True(t, store.rows[0].AList)
}

func TestSubmit_InvalidRerendersForm(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(t, store)

	rec := postForm(s, url.Values{
		"name":       {""},
		"nationalId": {"010101-1234"},
		"comment":    {"my comment"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.rows)

	body := rec.Body.String()
	assert.Contains(t, body, "Problem with registration")
	assert.Contains(t, body, `value="010101-1234"`)
	assert.Contains(t, body, "my comment</textarea>")
	assert.Contains(t, body, `data-field="name"`)
	assert.NotContains(t, body, `data-field="nationalId"`)
}

func TestSubmit_SanitizesMarkup(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(t, store)

	rec := postForm(s, url.Values{
		"name":       {"Jon <b>Jonsson</b>"},
		"nationalId": {"0101011234"},
		"comment":    {"<script>alert(1)</script>hello"},
	})

	require.Equal(t, http.StatusFound, rec.Code)
	require.Len(t, store.rows, 1)
	assert.NotContains(t, store.rows[0].Comment, "<script>")
	assert.NotContains(t, store.rows[0].Name, "<b>")
}

func TestSubmit_StoreErrorIs500(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("dial tcp: connection refused")}
	s := newTestServer(t, store)

	rec := postForm(s, url.Values{"name": {"Jon"}, "nationalId": {"0101011234"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "DB001")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestSubmit_StoreErrorJSON(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("boom")}
	s := newTestServer(t, store)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Jon&nationalId=0101011234"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred","message":"An unexpected error occurred","action":"Please try again later","code":"ERR000"}`, rec.Body.String())
}

func TestSubmit_BodyTooLarge(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	rec := postForm(s, url.Values{"comment": {strings.Repeat("x", 4096)}})

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestForm_ListsSignatures(t *testing.T) {
	store := &fakeStore{rows: []core.Signature{
		{ID: 1, Name: "Visible", Comment: "one", AList: true},
		{ID: 2, Name: "Secret", Comment: "two", AList: false},
	}}
	s := newTestServer(t, store)

	rec := get(s, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Registration</title>")
	assert.Contains(t, body, "Visible")
	assert.Contains(t, body, "Anonymous")
	assert.NotContains(t, body, "Secret")
}

func TestForm_ListErrorIs500(t *testing.T) {
	s := newTestServer(t, &fakeStore{listErr: errors.New(`relation "signatures" does not exist`)})

	rec := get(s, "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "DB004")
}

func TestThanks(t *testing.T) {
	rec := get(newTestServer(t, &fakeStore{}), "/thanks")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you for signing")
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, &fakeStore{})

	rec := get(s, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatic(t *testing.T) {
	rec := get(newTestServer(t, &fakeStore{}), "/static/styles.css")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestSecurityHeaders(t *testing.T) {
	rec := get(newTestServer(t, &fakeStore{}), "/")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'self'")

	cfg := testConfig()
	cfg.Security.EnableCSP = false
	s, err := NewServer(core.NewService(&fakeStore{}), cfg)
	require.NoError(t, err)
	rec = get(s, "/")
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestWithRequestMetadata(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "192.0.2.1"
	req.Header.Set("User-Agent", "agent/1.0")

	ctx := WithRequestMetadata(context.Background(), req)

	assert.Equal(t, "192.0.2.1", core.IPAddressFromContext(ctx))
	assert.Equal(t, "agent/1.0", core.UserAgentFromContext(ctx))
}

func TestSubmit_ListShowsSpecialCharactersOnce(t *testing.T) {
	store := &fakeStore{}
	s := newTestServer(t, store)

	rec := postForm(s, url.Values{
		"name":       {"Jon & Gunna"},
		"nationalId": {"0101011234"},
		"comment":    {"a<b"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Len(t, store.rows, 1)
	assert.Equal(t, "a&lt;b", store.rows[0].Comment)

	body := get(s, "/").Body.String()
	assert.Contains(t, body, "<td>Jon &amp; Gunna</td>")
	assert.Contains(t, body, "<td>a&lt;b</td>")
	assert.NotContains(t, body, "&amp;amp;")
}
