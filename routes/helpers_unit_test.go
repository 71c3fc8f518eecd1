// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/clinitrend/db"
)

type testSession struct {
	id    string
	data  map[interface{}]interface{}
	flash interface{}
}

func newTestSession() *testSession {
	return &testSession{
		id:   "test-session",
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.flash = val
}

func (s *testSession) Delete(key interface{}) {
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

type testCSRF struct {
	token string
}

func (c testCSRF) Token() string {
	return c.token
}

func (c testCSRF) ValidToken(string) bool {
	return true
}

func (c testCSRF) Error(http.ResponseWriter) {}

func (c testCSRF) Validate(flamego.Context) {}

func TestSetFlashHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		set     func(session.Session, string)
		wantTyp FlashType
	}{
		{name: "error", set: SetErrorFlash, wantTyp: FlashError},
		{name: "success", set: SetSuccessFlash, wantTyp: FlashSuccess},
		{name: "warning", set: SetWarningFlash, wantTyp: FlashWarning},
		{name: "info", set: SetInfoFlash, wantTyp: FlashInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSession()
			tt.set(s, "hello")

			msg, ok := s.flash.(FlashMessage)
			if !ok {
				t.Fatalf("flash has unexpected type: %T", s.flash)
			}

			if msg.Type != tt.wantTyp || msg.Message != "hello" {
				t.Fatalf("unexpected flash message: %#v", msg)
			}
		})
	}
}

func TestCSRFInjector(t *testing.T) {
	t.Parallel()

	handler, ok := CSRFInjector().(func(csrf.CSRF, template.Data))
	if !ok {
		t.Fatalf("unexpected CSRFInjector handler type")
	}

	data := template.Data{}
	handler(testCSRF{token: "csrf-123"}, data)

	if got, ok := data["csrf_token"].(string); !ok || got != "csrf-123" {
		t.Fatalf("unexpected csrf_token value: %#v", data["csrf_token"])
	}
}

func TestFlashInjector(t *testing.T) {
	t.Parallel()

	handler, ok := FlashInjector().(func(session.Flash, template.Data))
	if !ok {
		t.Fatalf("unexpected FlashInjector handler type")
	}

	data := template.Data{}
	handler(FlashMessage{Type: FlashInfo, Message: "Form cleared"}, data)

	if got, ok := data["Flash"].(FlashMessage); !ok || got.Message != "Form cleared" {
		t.Fatalf("unexpected Flash value: %#v", data["Flash"])
	}

	empty := template.Data{}
	handler(nil, empty)

	if _, ok := empty["Flash"]; ok {
		t.Fatal("expected no Flash key without a pending message")
	}
}

func TestNoCacheHeaders(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	f.Use(NoCacheHeaders())
	f.Get("/", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})
	f.Post("/", func(c flamego.Context) {
		c.ResponseWriter().WriteHeader(http.StatusNoContent)
	})

	getReq := httptest.NewRequest(http.MethodGet, "/", nil)
	getRec := httptest.NewRecorder()
	f.ServeHTTP(getRec, getReq)

	if got := getRec.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected Cache-Control for GET: %q", got)
	}

	if got := getRec.Header().Get("Pragma"); got != "no-cache" {
		t.Fatalf("unexpected Pragma for GET: %q", got)
	}

	postReq := httptest.NewRequest(http.MethodPost, "/", nil)
	postRec := httptest.NewRecorder()
	f.ServeHTTP(postRec, postReq)

	if got := postRec.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("expected no Cache-Control for POST, got %q", got)
	}
}

func TestAllowCrossOrigin(t *testing.T) {
	t.Parallel()

	var posted atomic.Int32

	f := flamego.New()
	f.Group("", func() {
		f.Post("/x", func(c flamego.Context) {
			posted.Add(1)
			c.ResponseWriter().WriteHeader(http.StatusOK)
		})
		f.Options("/x", Preflight)
	}, AllowCrossOrigin())

	preflightReq := httptest.NewRequest(http.MethodOptions, "/x", nil)
	preflightReq.Header.Set("Origin", "https://clinic.example.org")
	preflightReq.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflightReq.Header.Set("Access-Control-Request-Headers", "Content-Type")

	preflight := httptest.NewRecorder()
	f.ServeHTTP(preflight, preflightReq)

	if preflight.Code != http.StatusOK && preflight.Code != http.StatusNoContent {
		t.Fatalf("expected a successful preflight, got %d", preflight.Code)
	}

	if got := preflight.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
	}

	if got := preflight.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Fatalf("expected POST in Access-Control-Allow-Methods, got %q", got)
	}

	postReq := httptest.NewRequest(http.MethodPost, "/x", nil)
	postReq.Header.Set("Origin", "https://clinic.example.org")

	post := httptest.NewRecorder()
	f.ServeHTTP(post, postReq)

	if post.Code != http.StatusOK || posted.Load() != 1 {
		t.Fatalf("expected POST to reach the handler, got %d", post.Code)
	}

	if got := post.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected Access-Control-Allow-Origin on POST: %q", got)
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		forwarded string
		want      string
	}{
		{name: "forwarded chain", forwarded: "203.0.113.5, 10.0.0.1", want: "203.0.113.5"},
		{name: "single forwarded", forwarded: " 198.51.100.7 ", want: "198.51.100.7"},
		{name: "remote addr", forwarded: "", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string

			f := flamego.New()
			f.Get("/", func(c flamego.Context) {
				got = clientIP(c)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"

			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			f.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseVisitID(t *testing.T) {
	t.Parallel()

	if id, err := parseVisitID("3"); err != nil || id != 3 {
		t.Fatalf("expected 3, got %d, %v", id, err)
	}

	for _, raw := range []string{"", "0", "-1", "abc"} {
		if _, err := parseVisitID(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestHistoryLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
	}{
		{raw: "", want: db.DefaultHistoryLimit},
		{raw: "abc", want: db.DefaultHistoryLimit},
		{raw: "0", want: db.DefaultHistoryLimit},
		{raw: "25", want: 25},
		{raw: "1000000", want: db.MaxHistoryLimit},
	}

	for _, tt := range tests {
		if got := historyLimit(tt.raw); got != tt.want {
			t.Fatalf("historyLimit(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
