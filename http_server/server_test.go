package http_server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agriassist/agriassist-llm-server/config"
	"github.com/agriassist/agriassist-llm-server/database"
	"github.com/agriassist/agriassist-llm-server/http_server/controllers"
	"github.com/agriassist/agriassist-llm-server/service"
)

func newUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestRouter(t *testing.T, upstreamURL string, flagging bool) http.Handler {
	t.Helper()
	c := &config.Config{
		APIURL:       upstreamURL,
		ModelID:      "google/gemma-3-27b-it-fast",
		ModelLabel:   "AgriAssist_LLM",
		Token:        "hf_test",
		MaxNewTokens: config.DefaultMaxNewTokens,
		FlaggingMode: config.FlaggingNever,
	}
	s := service.NewService(c, nil)
	if flagging {
		c.FlaggingMode = config.FlaggingManual
		db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "flags.db"))
		if err != nil {
			t.Fatalf("open db: %v", err)
		}
		s.DB = db
	}
	return NewRouter(s)
}

func postForm(h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestShowForm(t *testing.T) {
	h := newTestRouter(t, "http://unused.invalid", false)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"Chat with AgriAssist_LLM via Inference API",
		"This demo sends your text to a remote server for processing.",
		"Enter your prompt",
		"AgriAssist_LLM Says (via API):",
		"Explain the concept of cloud computing in simple terms.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("form should contain %q", want)
		}
	}
	if strings.Contains(body, `action="/flag"`) {
		t.Errorf("flag form should be hidden when flagging is never")
	}
}

func TestShowForm_Example(t *testing.T) {
	h := newTestRouter(t, "http://unused.invalid", false)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?example=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	want := ">What are the main benefits of using Generative AI?</textarea>"
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("prompt should be prefilled with example 2")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?example=9", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown example: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSubmitForm(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"choices":[{"message":{"content":"Cloud computing is..."}}]}`)
	h := newTestRouter(t, upstream.URL, false)

	rec := postForm(h, "/", url.Values{"prompt": {"Explain the concept of cloud computing in simple terms."}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "readonly>Cloud computing is...</textarea>") {
		t.Errorf("output box should hold the generated text, body: %s", rec.Body.String())
	}
}

func TestSubmitForm_UpstreamFailureStaysOnPage(t *testing.T) {
	upstream := newUpstream(t, http.StatusInternalServerError, "overloaded")
	h := newTestRouter(t, upstream.URL, false)

	rec := postForm(h, "/", url.Values{"prompt": {"hi"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Error calling Hugging Face API") {
		t.Errorf("output should carry the error text")
	}
}

func TestSubmitForm_MissingPrompt(t *testing.T) {
	h := newTestRouter(t, "http://unused.invalid", false)

	rec := postForm(h, "/", url.Values{"prompt": {""}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), `class="errors"`) {
		t.Errorf("errors should be rendered")
	}
}

func TestGenerateAPI(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"choices":[{"message":{"content":"Hallo"}}]}`)
	h := newTestRouter(t, upstream.URL, false)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt":"Say hi in German","max_new_tokens":16}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusOK)
	}
	var got controllers.GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Success || got.Output != "Hallo" || got.ErrorKind != "" {
		t.Errorf("unexpected response %+v", got)
	}
}

func TestGenerateAPI_ShapeFailure(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"detail":"nope"}`)
	h := newTestRouter(t, upstream.URL, false)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var got controllers.GenerateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Success || got.ErrorKind != "response_shape" {
		t.Errorf("unexpected response %+v", got)
	}
	if !strings.Contains(got.Output, `{"detail":"nope"}`) {
		t.Errorf("output should embed the raw response, got %q", got.Output)
	}
}

func TestGenerateAPI_MissingPrompt(t *testing.T) {
	h := newTestRouter(t, "http://unused.invalid", false)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"max_new_tokens":16}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "validationError") {
		t.Errorf("body should report validation errors, got %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, "http://unused.invalid", false)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var got map[string]string
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got["status"] != "ok" || got["model"] != "google/gemma-3-27b-it-fast" {
		t.Errorf("unexpected health body %v", got)
	}
}

func TestFlagRoutes_Disabled(t *testing.T) {
	h := newTestRouter(t, "http://unused.invalid", false)
	rec := postForm(h, "/flag", url.Values{"prompt": {"p"}, "output": {"o"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusNotFound)
	}
}

func TestFlagRoutes_Manual(t *testing.T) {
	h := newTestRouter(t, "http://unused.invalid", true)

	rec := postForm(h, "/flag", url.Values{
		"prompt": {"When should I irrigate wheat?"},
		"output": {"At crown root initiation."},
		"label":  {"helpful"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("flag status: got %d want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Flagged.") {
		t.Errorf("flag confirmation missing")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flags", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status: got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "When should I irrigate wheat?") || !strings.Contains(body, "helpful") {
		t.Errorf("flag list should show the saved exchange, body: %s", body)
	}

	rec = postForm(h, "/flag", url.Values{"prompt": {"only prompt"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing output: got %d want %d", rec.Code, http.StatusBadRequest)
	}
}
