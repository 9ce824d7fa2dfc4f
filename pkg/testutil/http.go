// Package testutil holds helpers shared by handler, service and integration tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorEnvelope mirrors httputil.WriteError.
type errorEnvelope struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

// NewJSONRequest builds a request whose body is body marshaled to JSON.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err, "marshal request body")
	return NewRequestWithBody(t, method, path, string(payload))
}

// NewRequestWithBody builds a JSON request from a raw body, for malformed
// or hand-written payloads.
func NewRequestWithBody(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequest builds a request without a body.
func NewRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

// DoRequest serves req on handler and returns the recorded response.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// UnmarshalResponse decodes the response body into a T. The recorder body is
// left intact so several assertions can read it.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "decode response: %s", rr.Body.String())
	return &out
}

func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status, body: %s", rr.Body.String())
}

func AssertStatusOK(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
}

// AssertStatusAndError checks the status and the error code of the envelope.
func AssertStatusAndError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()
	AssertStatus(t, rr, expectedStatus)
	env := UnmarshalResponse[errorEnvelope](t, rr)
	assert.Equal(t, expectedCode, env.Code, "unexpected error code")
}

// AssertErrorDescription checks that the envelope's description mentions want.
func AssertErrorDescription(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	env := UnmarshalResponse[errorEnvelope](t, rr)
	assert.Contains(t, env.Description, want)
}

// AssertJSONContains checks one top-level field of a JSON object response.
func AssertJSONContains(t *testing.T, rr *httptest.ResponseRecorder, key string, expectedValue any) {
	t.Helper()
	body := *UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, expectedValue, body[key], "unexpected value for key %q", key)
}
