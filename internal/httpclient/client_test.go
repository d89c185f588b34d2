package httpclient_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/lexfrei/go-iosxe-wlc/internal/httpclient"
)

// taggingMiddleware appends its tag to a shared slice when the request
// passes through, recording middleware execution order.
func taggingMiddleware(tag string, order *[]string, mu *sync.Mutex) httpclient.Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			mu.Lock()
			*order = append(*order, tag)
			mu.Unlock()
			return next.RoundTrip(req)
		})
	}
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	client := httpclient.New()

	if client.HTTPClient().Timeout != httpclient.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient().Timeout, httpclient.DefaultTimeout)
	}
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	client := httpclient.New(httpclient.WithTimeout(42 * time.Second))

	if client.HTTPClient().Timeout != 42*time.Second {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient().Timeout, 42*time.Second)
	}
}

func TestMiddlewareOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var mu sync.Mutex
	var order []string

	client := httpclient.New(
		httpclient.WithMiddleware(
			taggingMiddleware("outer", &order, &mu),
			taggingMiddleware("middle", &order, &mu),
			taggingMiddleware("inner", &order, &mu),
		),
	)

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	mu.Lock()
	defer mu.Unlock()

	want := []string{"outer", "middle", "inner"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{Timeout: 7 * time.Second}

	client := httpclient.New(httpclient.WithHTTPClient(custom))

	if client.HTTPClient() != custom {
		t.Error("HTTPClient() did not return the injected client")
	}
}

func TestWithHTTPClientNilKeepsDefault(t *testing.T) {
	t.Parallel()

	client := httpclient.New(httpclient.WithHTTPClient(nil))

	if client.HTTPClient() == nil {
		t.Fatal("HTTPClient() = nil")
	}

	if client.HTTPClient().Timeout != httpclient.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient().Timeout, httpclient.DefaultTimeout)
	}
}

func TestMiddlewareWrapsCustomTransport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	var mu sync.Mutex
	var order []string

	client := httpclient.New(
		httpclient.WithTransport(http.DefaultTransport),
		httpclient.WithMiddleware(taggingMiddleware("only", &order, &mu)),
	)

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode, http.StatusTeapot)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 1 {
		t.Errorf("middleware ran %d times, want 1", len(order))
	}
}
