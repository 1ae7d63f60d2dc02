package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config FetcherConfig
	}{
		{
			name: "Default Configuration",
			config: FetcherConfig{
				RequestsPerSecond: 1,
				Burst:             1,
				Timeout:           30 * time.Second,
			},
		},
		{
			name: "Custom Configuration",
			config: FetcherConfig{
				RequestsPerSecond: 5,
				Burst:             3,
				Timeout:           10 * time.Second,
				MaxRetries:        3,
				InitialBackoff:    2 * time.Second,
				MaxBackoff:        60 * time.Second,
				UserAgent:         "wordtally-test",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.config, zerolog.Nop())
			if f == nil {
				t.Fatal("New() returned nil")
			}
			if f.client == nil {
				t.Error("HTTP client is nil")
			}
			if f.limiter == nil {
				t.Error("Rate limiter is nil")
			}
			if len(f.userAgents) == 0 {
				t.Error("User agents list is empty")
			}
			if f.Config().MaxBackoff == 0 {
				t.Error("MaxBackoff default not applied")
			}
		})
	}
}

func TestRotateUserAgent(t *testing.T) {
	f := New(FetcherConfig{}, zerolog.Nop())
	_ = f.rotateUserAgent()

	seen := make(map[string]bool)
	for i := 0; i < len(defaultUserAgents)*2; i++ {
		ua := f.rotateUserAgent()
		if ua == "" {
			t.Error("Got empty user agent")
		}
		seen[ua] = true
	}

	if len(seen) != len(defaultUserAgents) {
		t.Errorf("Expected to see %d unique user agents, got %d", len(defaultUserAgents), len(seen))
	}
}

func TestRotateUserAgent_Configured(t *testing.T) {
	f := New(FetcherConfig{UserAgent: "wordtally/1.0"}, zerolog.Nop())
	for i := 0; i < 3; i++ {
		if ua := f.rotateUserAgent(); ua != "wordtally/1.0" {
			t.Errorf("Expected configured user agent, got %q", ua)
		}
	}
}

func TestCalculateBackoff(t *testing.T) {
	config := FetcherConfig{
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
	}
	f := New(config, zerolog.Nop())

	tests := []struct {
		name        string
		attempt     int
		minExpected time.Duration
		maxExpected time.Duration
	}{
		{
			name:        "First Attempt",
			attempt:     0,
			minExpected: 800 * time.Millisecond,
			maxExpected: 1200 * time.Millisecond,
		},
		{
			name:        "Second Attempt",
			attempt:     1,
			minExpected: 1600 * time.Millisecond,
			maxExpected: 2400 * time.Millisecond,
		},
		{
			name:        "Max Backoff",
			attempt:     10,
			minExpected: 24 * time.Second,
			maxExpected: 36 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Run multiple times to account for randomness
			for i := 0; i < 10; i++ {
				backoff := f.calculateBackoff(tt.attempt)
				if backoff < tt.minExpected || backoff > tt.maxExpected {
					t.Errorf("Expected backoff between %v and %v, got %v",
						tt.minExpected, tt.maxExpected, backoff)
				}
			}
		})
	}
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name          string
		statusCodes   []int
		responseBody  string
		expectedError bool
		config        FetcherConfig
	}{
		{
			name:          "Successful Request",
			statusCodes:   []int{http.StatusOK},
			responseBody:  "cat;dog",
			expectedError: false,
			config: FetcherConfig{
				MaxRetries:        1,
				RequestsPerSecond: 10,
				Burst:             5,
				InitialBackoff:    100 * time.Millisecond,
			},
		},
		{
			name:          "Rate Limited Then Success",
			statusCodes:   []int{http.StatusTooManyRequests, http.StatusOK},
			responseBody:  "Success;after;retry",
			expectedError: false,
			config: FetcherConfig{
				MaxRetries:        2,
				RequestsPerSecond: 10,
				Burst:             5,
				InitialBackoff:    100 * time.Millisecond,
			},
		},
		{
			name:          "All Requests Fail",
			statusCodes:   []int{http.StatusInternalServerError, http.StatusInternalServerError},
			responseBody:  "Error",
			expectedError: true,
			config: FetcherConfig{
				MaxRetries:        1,
				RequestsPerSecond: 10,
				Burst:             5,
				InitialBackoff:    100 * time.Millisecond,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			currentResponse := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ua := r.Header.Get("User-Agent"); ua == "" {
					t.Error("User-Agent header not set")
				}
				if accept := r.Header.Get("Accept"); accept == "" {
					t.Error("Accept header not set")
				}

				w.WriteHeader(tt.statusCodes[currentResponse])
				if tt.statusCodes[currentResponse] == http.StatusOK {
					io.WriteString(w, tt.responseBody)
				}
				if currentResponse < len(tt.statusCodes)-1 {
					currentResponse++
				}
			}))
			defer server.Close()

			f := New(tt.config, zerolog.Nop())
			body, err := f.Fetch(context.Background(), server.URL)

			if tt.expectedError {
				if err == nil {
					t.Error("Expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if string(body) != tt.responseBody {
					t.Errorf("Expected body %q, got %q", tt.responseBody, string(body))
				}
			}
		})
	}
}

func TestRandomDelay(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		f := New(FetcherConfig{}, zerolog.Nop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := f.randomDelay(ctx); err != nil {
			t.Errorf("Expected no delay without MaxJitter, got %v", err)
		}
	})

	t.Run("Delays", func(t *testing.T) {
		f := New(FetcherConfig{MaxJitter: 150 * time.Millisecond}, zerolog.Nop())
		f.randFloat = func() float64 { return 1 }

		start := time.Now()
		if err := f.randomDelay(context.Background()); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
			t.Errorf("Expected a delay of at least 150ms, got %v", elapsed)
		}
	})

	t.Run("Canceled", func(t *testing.T) {
		f := New(FetcherConfig{MaxJitter: time.Minute}, zerolog.Nop())
		f.randFloat = func() float64 { return 1 }
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		if err := f.randomDelay(ctx); err == nil {
			t.Error("Expected context error")
		}
	})
}

func TestFetch_Jitter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "cat")
	}))
	defer server.Close()

	f := New(FetcherConfig{MaxJitter: 100 * time.Millisecond}, zerolog.Nop())
	f.randFloat = func() float64 { return 1 }

	start := time.Now()
	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(body) != "cat" {
		t.Errorf("Expected body %q, got %q", "cat", string(body))
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("Expected Fetch to wait for jitter, took %v", elapsed)
	}
}

func TestFetchWithContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		io.WriteString(w, "Delayed response")
	}))
	defer server.Close()

	f := New(FetcherConfig{
		RequestsPerSecond: 10,
		Burst:             5,
		InitialBackoff:    100 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, server.URL)
	if err == nil || !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("Expected context deadline exceeded error, got: %v", err)
	}
}
