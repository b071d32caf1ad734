// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/danielhkuo/campusboard/bus"
	"github.com/danielhkuo/campusboard/store"
)

// SetupTestStore creates a fresh sqlite-backed store in a per-test temp
// directory. The file is removed with the test's temp dir.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return st
}

// BusRecorder captures every publish on one topic so tests can assert
// publish counts and payloads.
type BusRecorder struct {
	mu       sync.Mutex
	payloads []any
}

// RecordTopic subscribes a recorder to topic on b.
func RecordTopic(b *bus.Bus, topic string) *BusRecorder {
	rec := &BusRecorder{}
	b.Subscribe(topic, func(payload any) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.payloads = append(rec.payloads, payload)
	})
	return rec
}

// Count returns how many emissions were observed.
func (r *BusRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

// Last returns the most recent payload, or nil when nothing was observed.
func (r *BusRecorder) Last() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.payloads) == 0 {
		return nil
	}
	return r.payloads[len(r.payloads)-1]
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
