package jenkins

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jenkins-distill/src/config"
)

func testSettings() config.Settings {
	return config.Settings{
		HTTPTimeout:        5 * time.Second,
		HTTPConnectTimeout: 2 * time.Second,
		HTTPReadTimeout:    10 * time.Second,
		VerifySSL:          true,
	}
}

func newTestClient(serverURL string) *Client {
	return NewClient(config.Instance{
		BaseURL:  serverURL,
		User:     "ci-bot",
		APIToken: "token123",
	}, testSettings())
}

func TestConsoleText(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		user, token, ok := r.BasicAuth()
		if !ok || user != "ci-bot" || token != "token123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte("Started by user admin\nFinished: SUCCESS\n"))
	}))
	defer server.Close()

	log, err := newTestClient(server.URL).ConsoleText(context.Background(), "Team/job/App", "123")
	if err != nil {
		t.Fatalf("ConsoleText() unexpected error: %v", err)
	}
	if gotPath != "/job/Team/job/App/123/consoleText" {
		t.Errorf("request path = %q, want /job/Team/job/App/123/consoleText", gotPath)
	}
	if log != "Started by user admin\nFinished: SUCCESS\n" {
		t.Errorf("log = %q, want server body", log)
	}
}

func TestBuildInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/job/App/lastBuild/api/json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"number": 42,
			"result": "FAILURE",
			"building": false,
			"duration": 93500,
			"timestamp": 1714557600000,
			"url": "https://ci.example.com/job/App/42/",
			"actions": [
				{},
				{"causes": [{"shortDescription": "Started by timer"}]}
			]
		}`))
	}))
	defer server.Close()

	build, err := newTestClient(server.URL).BuildInfo(context.Background(), "App", "lastBuild")
	if err != nil {
		t.Fatalf("BuildInfo() unexpected error: %v", err)
	}
	if build.Number != 42 {
		t.Errorf("Number = %d, want 42", build.Number)
	}
	if build.Result != "FAILURE" {
		t.Errorf("Result = %q, want FAILURE", build.Result)
	}
	if build.Duration != 93500 {
		t.Errorf("Duration = %d, want 93500", build.Duration)
	}

	triggers := build.TriggerDescriptions()
	if len(triggers) != 1 || triggers[0] != "Started by timer" {
		t.Errorf("TriggerDescriptions() = %v, want [Started by timer]", triggers)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "401 maps to ErrAuthFailed",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrAuthFailed) {
					t.Errorf("err = %v, want ErrAuthFailed", err)
				}
			},
		},
		{
			name:   "404 maps to ErrNotFound",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("err = %v, want ErrNotFound", err)
				}
			},
		},
		{
			name:   "500 maps to StatusError",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("err = %v, want *StatusError", err)
				}
				if statusErr.Code != http.StatusInternalServerError {
					t.Errorf("Code = %d, want 500", statusErr.Code)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).ConsoleText(context.Background(), "App", "1")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			tt.check(t, err)
		})
	}
}

func TestNetworkErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newTestClient(server.URL).ConsoleText(context.Background(), "App", "1")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("err = %v, want *NetworkError", err)
	}
}

func TestWrapError(t *testing.T) {
	t.Run("auth failure carries hint", func(t *testing.T) {
		wrapped := WrapError(ErrAuthFailed)
		var userErr *UserError
		if !errors.As(wrapped, &userErr) {
			t.Fatalf("WrapError(ErrAuthFailed) = %v, want *UserError", wrapped)
		}
		if userErr.Message != "Authentication failed" {
			t.Errorf("Message = %q", userErr.Message)
		}
		if !errors.Is(wrapped, ErrAuthFailed) {
			t.Error("wrapped error should unwrap to ErrAuthFailed")
		}
	})

	t.Run("nil passes through", func(t *testing.T) {
		if WrapError(nil) != nil {
			t.Error("WrapError(nil) should be nil")
		}
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		sentinel := errors.New("boom")
		if WrapError(sentinel) != sentinel {
			t.Error("unknown error should pass through unchanged")
		}
	})
}
