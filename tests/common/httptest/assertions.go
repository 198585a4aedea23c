//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// errorBody mirrors httperr.Response on the wire.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "error body is not JSON: %s", w.Body.String())
	return body
}

// AssertSuccessResponse checks the status and, for 2xx with a target, decodes the body into it.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if target == nil || expectedStatus < 200 || expectedStatus >= 300 {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "response is not JSON: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the message contains msg, when msg is set.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, msg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	body := decodeError(t, w)
	if msg != "" {
		assert.Contains(t, body.Error.Message, msg)
	}
}

// AssertErrorCode checks the machine readable code of an error body.
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	assert.Equal(t, expectedCode, decodeError(t, w).Error.Code)
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertNextCursor checks the pagination header. An empty want means the last page.
func AssertNextCursor(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	got, present := w.Header()["X-Next-Cursor"]
	if want == "" {
		assert.False(t, present, "unexpected X-Next-Cursor %v", got)
		return
	}
	assert.Equal(t, want, w.Header().Get("X-Next-Cursor"))
}
