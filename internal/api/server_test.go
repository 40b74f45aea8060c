package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/plainrfc/internal/config"
	"github.com/dgallion1/plainrfc/internal/frontmatter"
	"github.com/dgallion1/plainrfc/internal/stats"
)

const testKey = "test-key"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{
		APIKey:         testKey,
		MaxUploadBytes: 4096,
	}
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewServer(frontmatter.Default(), stats.NewLatency(time.Hour), log, cfg)
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+testKey)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, field string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(fw, content)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)
	for _, auth := range []string{"Basic x", "Bearer wrong"} {
		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		req.Header.Set("Authorization", auth)
		rec := do(t, s, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("auth %q: expected 401, got %d", auth, rec.Code)
		}
	}
}

func TestConvert_RawBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader("#1 Intro\nA & B\n"))
	req.Header.Set("Content-Type", "text/plain")
	rec := do(t, s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("unexpected content type %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<section title=\"Intro\">\n<t>A &amp; B</t>\n</section>\n") {
		t.Errorf("unexpected document:\n%s", body)
	}
	if !strings.HasPrefix(body, `<?xml version="1.0" encoding="US-ASCII"?>`) {
		t.Error("missing xml declaration")
	}
}

func TestConvert_FormatQuery(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/convert?format=md", strings.NewReader("# Title\n\ntext\n"))
	rec := do(t, s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `<section title="Title">`) {
		t.Errorf("markdown heading not converted:\n%s", rec.Body.String())
	}
}

func TestConvert_IllegalNesting(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader("#1 One\ntext\n#3 Three\n"))
	rec := do(t, s, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
		Line  int    `json:"line"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Line != 3 {
		t.Errorf("expected line 3, got %d", resp.Line)
	}
	if !strings.Contains(resp.Error, "illegal section nesting") {
		t.Errorf("unexpected error %q", resp.Error)
	}
}

func TestConvert_Multipart(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, "file", map[string]string{"page.html": "<h1>Hi</h1><p>there</p>"})
	req := httptest.NewRequest(http.MethodPost, "/api/convert", body)
	req.Header.Set("Content-Type", ct)
	rec := do(t, s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "<section title=\"Hi\">\n<t>there</t>\n</section>") {
		t.Errorf("unexpected document:\n%s", rec.Body.String())
	}
}

func TestConvert_UnsupportedType(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, "file", map[string]string{"doc.rtf": "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/convert", body)
	req.Header.Set("Content-Type", ct)
	rec := do(t, s, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConvert_TooLarge(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(strings.Repeat("x", 5000)))
	rec := do(t, s, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestBatchConvert(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, "files", map[string]string{
		"good.txt": "#1 A\ntext\n",
		"bad.txt":  "%\nnever closed\n",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/convert/batch", body)
	req.Header.Set("Content-Type", ct)
	rec := do(t, s, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Results []struct {
			Filename string `json:"filename"`
			XML      string `json:"xml"`
			SHA256   string `json:"sha256"`
			Error    string `json:"error"`
			Line     int    `json:"line"`
		} `json:"results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	for _, r := range resp.Results {
		switch r.Filename {
		case "good.txt":
			if r.Error != "" || !strings.Contains(r.XML, `<section title="A">`) || len(r.SHA256) != 64 {
				t.Errorf("unexpected good result: %+v", r)
			}
		case "bad.txt":
			if !strings.Contains(r.Error, "unterminated figure block") || r.Line != 1 {
				t.Errorf("unexpected bad result: %+v", r)
			}
		default:
			t.Errorf("unexpected filename %q", r.Filename)
		}
	}

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	var st struct {
		Conversions struct {
			Count int `json:"count"`
		} `json:"conversions"`
		Failures int `json:"failures"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.Conversions.Count != 1 || st.Failures != 1 {
		t.Errorf("expected 1 conversion and 1 failure, got %+v", st)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"../../etc/passwd": "passwd",
		"notes.md":         "notes.md",
		"":                 "unnamed",
		`C:\dir\file.txt`:  `C:_dir_file.txt`,
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
