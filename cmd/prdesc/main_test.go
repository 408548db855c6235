package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clintrovert/prdesc/internal/prbody"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range []string{
		"OPENAI_API_KEY", "GITHUB_TOKEN", "PR_TITLE", "PR_NUMBER", "GITHUB_REPOSITORY",
		"GITHUB_API_URL", "OPENAI_MODEL", "OPENAI_BASE_URL", "OPENAI_MAX_TOKENS",
		"DIFF_CHAR_LIMIT", "REQUEST_TIMEOUT", "DRY_RUN", "LOG_LEVEL",
	} {
		t.Setenv(key, env[key])
	}
}

func TestRun_MissingCoordinatesIsNoOp(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	setEnv(t, map[string]string{
		"GITHUB_API_URL":  server.URL,
		"OPENAI_BASE_URL": server.URL + "/v1",
		"PR_TITLE":        "Title",
	})

	cmd := newRootCmd()
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Zero(t, calls.Load())
}

func TestRun_EndToEnd(t *testing.T) {
	var patched string

	github := http.NewServeMux()
	github.HandleFunc("/repos/octo/widgets/pulls/5", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "diff"):
			fmt.Fprint(w, "diff --git a/a.go b/a.go\n+package a\n")
		case r.Method == http.MethodGet:
			fmt.Fprint(w, `{"number":5,"body":"Written by the author."}`)
		case r.Method == http.MethodPatch:
			var payload struct {
				Body string `json:"body"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			patched = payload.Body
			fmt.Fprint(w, `{"number":5}`)
		}
	})
	githubServer := httptest.NewServer(github)
	defer githubServer.Close()

	openaiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"## Summary\nAdds package a."},"finish_reason":"stop"}]}`)
	}))
	defer openaiServer.Close()

	setEnv(t, map[string]string{
		"OPENAI_API_KEY":    "sk-test",
		"GITHUB_TOKEN":      "ghs-test",
		"PR_TITLE":          "Add package a",
		"PR_NUMBER":         "5",
		"GITHUB_REPOSITORY": "octo/widgets",
		"GITHUB_API_URL":    githubServer.URL,
		"OPENAI_BASE_URL":   openaiServer.URL + "/v1",
		"LOG_LEVEL":         "error",
	})

	cmd := newRootCmd()
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Written by the author.\n\n"+prbody.Block("## Summary\nAdds package a."), patched)
}

func TestRun_DryRunFlagSkipsWrite(t *testing.T) {
	var patches atomic.Int32

	github := http.NewServeMux()
	github.HandleFunc("/repos/octo/widgets/pulls/5", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPatch:
			patches.Add(1)
			fmt.Fprint(w, `{"number":5}`)
		case strings.Contains(r.Header.Get("Accept"), "diff"):
			fmt.Fprint(w, "+x\n")
		default:
			fmt.Fprint(w, `{"number":5,"body":""}`)
		}
	})
	githubServer := httptest.NewServer(github)
	defer githubServer.Close()

	openaiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
	}))
	defer openaiServer.Close()

	setEnv(t, map[string]string{
		"PR_NUMBER":         "5",
		"GITHUB_REPOSITORY": "octo/widgets",
		"GITHUB_API_URL":    githubServer.URL,
		"OPENAI_BASE_URL":   openaiServer.URL + "/v1",
		"LOG_LEVEL":         "error",
	})

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--dry-run"})

	require.NoError(t, cmd.Execute())
	assert.Zero(t, patches.Load())
}

func TestRun_InvalidConfigFailsBeforeAnyCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	setEnv(t, map[string]string{
		"PR_NUMBER":         "5",
		"GITHUB_REPOSITORY": "octo/widgets",
		"GITHUB_API_URL":    server.URL,
		"OPENAI_BASE_URL":   server.URL + "/v1",
		"REQUEST_TIMEOUT":   "5 minutes",
	})

	cmd := newRootCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid REQUEST_TIMEOUT")
	assert.Zero(t, calls.Load())
}
