package logging

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer

	New(&buf, Options{}).Debug("hidden")
	assert.Empty(t, buf.String())

	New(&buf, Options{Verbose: true}).Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	New(&buf, Options{Quiet: true}).Info("hidden")
	assert.Empty(t, buf.String())

	New(&buf, Options{JSON: true}).Info("json")
	assert.Contains(t, buf.String(), `"msg":"json"`)
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), 100))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(New(&buf, Options{}))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tea"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/stages", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "component=http")
	assert.Contains(t, out, "path=/v1/stages")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "bytes=3")
}
