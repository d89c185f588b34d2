package middleware

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
)

// TLSConfig returns a middleware that configures TLS for HTTPS connections.
// This is useful for:
// - Trusting a private CA that signed the controller certificate.
// - Custom certificate validation.
// - Minimum TLS version enforcement.
func TLSConfig(config *tls.Config) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		// Get underlying transport or create default
		transport, ok := next.(*http.Transport)
		if !ok {
			defaultTransport, ok := http.DefaultTransport.(*http.Transport)
			if !ok {
				// Should never happen, but handle gracefully
				return next
			}
			transport = defaultTransport.Clone()
			transport.ForceAttemptHTTP2 = true
		} else {
			transport = transport.Clone()
		}

		// Apply TLS config
		transport.TLSClientConfig = config

		return transport
	}
}

// CACertificate returns a TLS config that verifies the controller against the
// PEM bundle at the given path instead of the system trust store. Controllers
// in the field almost always carry certificates from a private enterprise CA.
func CACertificate(path string) (*tls.Config, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read CA certificate %s", path)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Newf("no certificates found in %s", path)
	}

	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
