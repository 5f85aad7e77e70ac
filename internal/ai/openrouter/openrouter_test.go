package openrouter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captured struct {
	path  string
	auth  string
	body  string
	calls int32
}

func fakeOpenRouter(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&got.calls, 1)
		raw, _ := io.ReadAll(r.Body)
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		got.body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestSendTextAndGetText(t *testing.T) {
	srv, got := fakeOpenRouter(t, http.StatusOK, `{"id":"gen-1","model":"google/gemini-pro-1.5","choices":[
		{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"import os"}}]}`)

	client := Open("or-key", srv.URL+"/api/v1", srv.Client())
	text, err := SendTextAndGetText(client, "", "Be brief.")(context.Background(), zap.NewNop(), "list files")
	require.NoError(t, err)
	assert.Equal(t, "import os", text)

	assert.True(t, strings.HasSuffix(got.path, "/chat/completions"), got.path)
	assert.Equal(t, "Bearer or-key", got.auth)
	assert.Contains(t, got.body, "Be brief.")
	assert.Contains(t, got.body, "list files")
	assert.Contains(t, got.body, DefaultModel)
}

func TestSendTextAndGetTextNoChoices(t *testing.T) {
	srv, _ := fakeOpenRouter(t, http.StatusOK,
		`{"id":"gen-2","model":"google/gemini-pro-1.5","choices":[]}`)

	client := Open("or-key", srv.URL+"/api/v1", srv.Client())
	text, err := SendTextAndGetText(client, "meta-llama/llama-3-8b", "Be brief.")(context.Background(), zap.NewNop(), "hi")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestSendTextAndGetTextVendorError(t *testing.T) {
	srv, got := fakeOpenRouter(t, http.StatusPaymentRequired,
		`{"error":{"code":402,"message":"Insufficient credits"}}`)

	client := Open("or-key", srv.URL+"/api/v1", srv.Client())
	_, err := SendTextAndGetText(client, "", "Be brief.")(context.Background(), zap.NewNop(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openrouter chat completion")
	assert.Contains(t, err.Error(), "Insufficient credits")
	assert.EqualValues(t, 1, atomic.LoadInt32(&got.calls))
}
