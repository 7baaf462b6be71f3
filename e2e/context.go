package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext carries HTTP state across the steps of one scenario.
type TestContext struct {
	baseURL   string
	client    *http.Client
	status    int
	body      []byte
	sessionID string
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.status = 0
	tc.body = nil
	tc.sessionID = ""
}

func (tc *TestContext) GET(path string) error { return tc.Do(http.MethodGet, path, nil) }

func (tc *TestContext) POST(path string, body any) error { return tc.Do(http.MethodPost, path, body) }

func (tc *TestContext) PUT(path string, body any) error { return tc.Do(http.MethodPut, path, body) }

func (tc *TestContext) DELETE(path string) error { return tc.Do(http.MethodDelete, path, nil) }

// Do sends a request and records the response status and body.
func (tc *TestContext) Do(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, tc.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.body, err = io.ReadAll(resp.Body)
	return err
}

// GetResponseField resolves a dotted path ("view.match_count") in the last
// JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.body, &doc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	for _, part := range strings.Split(field, ".") {
		obj, ok := doc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		if doc, ok = obj[part]; !ok {
			return nil, fmt.Errorf("field %q not found in response", field)
		}
	}
	return doc, nil
}

func (tc *TestContext) GetLastResponseStatus() int { return tc.status }

func (tc *TestContext) GetLastResponseBody() []byte { return tc.body }

func (tc *TestContext) SessionID() string { return tc.sessionID }

func (tc *TestContext) SetSessionID(id string) { tc.sessionID = id }
