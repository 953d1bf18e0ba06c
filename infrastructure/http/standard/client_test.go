package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewStandardHTTPClient(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)

	if client.client.Timeout != 10*time.Second {
		t.Errorf("Client timeout = %v, want 10s", client.client.Timeout)
	}
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	var userAgentSeen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		userAgentSeen = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"objects":[]}`))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode())
	}
	if resp.Header("content-type") != "application/json" {
		t.Errorf("Header(content-type) = %q", resp.Header("content-type"))
	}
	body, _ := io.ReadAll(resp.Body())
	if string(body) != `{"objects":[]}` {
		t.Errorf("Body = %s", body)
	}
	if !strings.Contains(userAgentSeen, "ListFeeds") {
		t.Errorf("User-Agent = %s, should contain 'ListFeeds'", userAgentSeen)
	}
}

func TestStandardHTTPClient_Get_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, server.URL)
	if err == nil {
		t.Fatal("Get should return error for context timeout")
	}
	if !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("Error should mention context deadline, got: %v", err)
	}
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)

	if _, err := client.Get(context.Background(), "://missing-scheme"); err == nil {
		t.Error("Get should return error for invalid URL")
	}
}

func TestStandardHTTPClient_Get_Retry503(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if attempts != 3 {
		t.Errorf("Attempts = %d, want 3", attempts)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode())
	}
}

func TestStandardHTTPClient_Get_MaxRetriesKeepsLastBody(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream down"}`))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()

	if attempts != 3 {
		t.Errorf("Attempts = %d, want 3 (max retries)", attempts)
	}
	if resp.StatusCode() != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", resp.StatusCode())
	}
	body, err := io.ReadAll(resp.Body())
	if err != nil || string(body) != `{"error":"upstream down"}` {
		t.Errorf("Body = %q, %v; want the last error body", body, err)
	}
}

func TestStandardHTTPClient_Get_NoRetryOn4xx(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if attempts != 1 {
		t.Errorf("Attempts = %d, want 1 (no retry on 4xx)", attempts)
	}
}

func TestStandardHTTPClient_Get_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewStandardHTTPClient(time.Second)

	if _, err := client.Get(context.Background(), url); err == nil {
		t.Error("Get should fail when the server is gone")
	}
}

func TestStandardHTTPClient_Get_ConfiguredAttempts(t *testing.T) {
	tests := []struct {
		name     string
		attempts int
		want     int32
	}{
		{name: "single attempt", attempts: 1, want: 1},
		{name: "zero means one", attempts: 0, want: 1},
		{name: "two attempts", attempts: 2, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			client := NewStandardHTTPClientWithAttempts(5*time.Second, tt.attempts)

			resp, err := client.Get(context.Background(), server.URL)
			if err != nil {
				t.Fatalf("Get returned error: %v", err)
			}
			resp.Body().Close()

			if resp.StatusCode() != http.StatusBadGateway {
				t.Errorf("StatusCode = %d, want 502", resp.StatusCode())
			}
			if got := atomic.LoadInt32(&calls); got != tt.want {
				t.Errorf("server saw %d calls, want %d", got, tt.want)
			}
		})
	}
}
