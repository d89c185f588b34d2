package middleware_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lexfrei/go-iosxe-wlc/internal/middleware"
)

// writeTestCA writes a freshly generated self-signed certificate in PEM form
// and returns its path.
func writeTestCA(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	template := x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "test-ca"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "ca.pem")

	buf := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatalf("failed to write CA bundle: %v", err)
	}

	return path
}

func TestCACertificate(t *testing.T) {
	t.Parallel()

	path := writeTestCA(t)

	config, err := middleware.CACertificate(path)
	if err != nil {
		t.Fatalf("CACertificate() error = %v", err)
	}

	if config.RootCAs == nil {
		t.Error("RootCAs is nil")
	}

	if config.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %d, want %d", config.MinVersion, tls.VersionTLS12)
	}
}

func TestCACertificateMissingFile(t *testing.T) {
	t.Parallel()

	_, err := middleware.CACertificate(filepath.Join(t.TempDir(), "absent.pem"))
	if err == nil {
		t.Fatal("CACertificate() expected error for missing file")
	}
}

func TestCACertificateNotPEM(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "garbage.pem")
	if err := os.WriteFile(path, []byte("not a certificate"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := middleware.CACertificate(path)
	if err == nil {
		t.Fatal("CACertificate() expected error for non-PEM content")
	}
}

func TestTLSConfigAppliesToTransport(t *testing.T) {
	t.Parallel()

	config := &tls.Config{MinVersion: tls.VersionTLS13}

	wrapped := middleware.TLSConfig(config)(http.DefaultTransport)

	transport, ok := wrapped.(*http.Transport)
	if !ok {
		t.Fatalf("wrapped transport is %T, want *http.Transport", wrapped)
	}

	if transport.TLSClientConfig.MinVersion != tls.VersionTLS13 {
		t.Errorf("MinVersion = %d, want %d", transport.TLSClientConfig.MinVersion, tls.VersionTLS13)
	}

	// The default transport must not be mutated
	defaultTransport, _ := http.DefaultTransport.(*http.Transport)
	if defaultTransport.TLSClientConfig != nil && defaultTransport.TLSClientConfig.MinVersion == tls.VersionTLS13 {
		t.Error("http.DefaultTransport was mutated")
	}
}
