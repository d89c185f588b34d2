// Package testutil provides common testing utilities and helpers.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// YangDataJSON is the Accept media type every RESTCONF request must carry.
const YangDataJSON = "application/yang-data+json"

// NewRESTCONFServer creates a test HTTPS-less server that plays a RESTCONF
// endpoint. It validates the request path, basic auth credentials, and the
// yang-data Accept header, then returns the given body and status code.
func NewRESTCONFServer(t *testing.T, expectedPath, username, password, responseBody string, statusCode int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Validate request path
		assert.Equal(t, expectedPath, r.URL.Path, "Request path should match expected")

		// Validate basic auth if credentials were provided
		if username != "" {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok, "Request should carry basic auth")
			assert.Equal(t, username, user, "Basic auth username should match")
			assert.Equal(t, password, pass, "Basic auth password should match")
		}

		assert.Equal(t, YangDataJSON, r.Header.Get("Accept"), "Accept header should request yang-data+json")

		// Write response
		w.Header().Set("Content-Type", YangDataJSON)
		w.WriteHeader(statusCode)
		_, err := w.Write([]byte(responseBody))
		require.NoError(t, err, "Failed to write response body")
	}))
}

// NewRESTCONFServerMulti creates a test server with one handler per URL path.
// Paths not present in the map fail the test. Useful for the client listing
// flow, which fans out to the SISF resource for every returned client.
func NewRESTCONFServerMulti(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// RESTCONF list keys arrive as part of the path: resource=key
		handler, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("Unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
}

// Response is one canned answer for NewRESTCONFServerSequence.
type Response struct {
	Body       string
	StatusCode int
}

// NewRESTCONFServerSequence creates a test server that returns responses in
// order, one per request. Requests beyond the configured responses fail the
// test. This pins down retry behavior: a test can assert the client stops
// after exactly the expected number of attempts.
func NewRESTCONFServerSequence(t *testing.T, responses []Response) (*httptest.Server, *int) {
	t.Helper()

	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if callCount >= len(responses) {
			t.Errorf("More requests than configured responses (got %d requests, have %d responses)",
				callCount+1, len(responses))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		resp := responses[callCount]
		callCount++

		w.Header().Set("Content-Type", YangDataJSON)
		w.WriteHeader(resp.StatusCode)
		_, err := w.Write([]byte(resp.Body))
		require.NoError(t, err, "Failed to write response body")
	}))

	return server, &callCount
}
