package payu

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pkcs12 "software.sslmate.com/src/go-pkcs12"
)

func TestHTTPTransport_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.JSONEq(t, `{"command":"PING"}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-Id", "req-1")
		_, _ = io.WriteString(w, `{"code":"SUCCESS"}`)
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(time.Second, "", "")
	require.NoError(t, err)

	resp, err := tr.Do(context.Background(), &Request{
		Method: http.MethodPost,
		URL:    srv.URL,
		Header: http.Header{"Accept": {"application/json"}},
		Body:   []byte(`{"command":"PING"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.Equal(t, "req-1", resp.Header.Get("X-Request-Id"))
	assert.JSONEq(t, `{"code":"SUCCESS"}`, string(resp.Body))
}

func TestHTTPTransport_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr, err := NewHTTPTransport(time.Second, "", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tr.Do(ctx, &Request{Method: http.MethodGet, URL: srv.URL})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPTransport_ClientCertificate(t *testing.T) {
	_, err := NewHTTPTransport(time.Second, filepath.Join(t.TempDir(), "missing.p12"), "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read client certificate")

	garbage := filepath.Join(t.TempDir(), "bad.p12")
	require.NoError(t, os.WriteFile(garbage, []byte("not a pkcs12 file"), 0o600))
	_, err = NewHTTPTransport(time.Second, garbage, "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode client certificate")

	cfg, err := clientTLSConfig("", "")
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

// issueCert creates a certificate for cn signed by parent, or self-signed
// when parent is nil.
func issueCert(t *testing.T, cn string, serial int64, parent *x509.Certificate, parentKey *ecdsa.PrivateKey) (*x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(serial),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		IsCA:                  parent == nil,
	}
	signer, signerKey := tmpl, key
	if parent != nil {
		signer, signerKey = parent, parentKey
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, signer, &key.PublicKey, signerKey)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return cert, key
}

func TestClientTLSConfig_Bundle(t *testing.T) {
	ca, caKey := issueCert(t, "payu test ca", 1, nil, nil)
	leaf, key := issueCert(t, "merchant 508029", 2, ca, caKey)

	pfx, err := pkcs12.Modern.Encode(key, leaf, []*x509.Certificate{ca}, "secret")
	require.NoError(t, err)
	bundle := filepath.Join(t.TempDir(), "client.p12")
	require.NoError(t, os.WriteFile(bundle, pfx, 0o600))

	cfg, err := clientTLSConfig(bundle, "secret")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	require.Len(t, cfg.Certificates, 1)

	cert := cfg.Certificates[0]
	require.NotNil(t, cert.Leaf)
	assert.Equal(t, "merchant 508029", cert.Leaf.Subject.CommonName)
	require.Len(t, cert.Certificate, 2)
	assert.Equal(t, leaf.Raw, cert.Certificate[0])
	assert.Equal(t, ca.Raw, cert.Certificate[1])
	assert.IsType(t, &ecdsa.PrivateKey{}, cert.PrivateKey)

	tr, err := NewHTTPTransport(time.Second, bundle, "secret")
	require.NoError(t, err)
	assert.NotNil(t, tr)

	_, err = clientTLSConfig(bundle, "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode client certificate")
}

func TestNewClient_BadCertificate(t *testing.T) {
	cfg := testConfig()
	cfg.P12Path = filepath.Join(t.TempDir(), "missing.p12")
	_, err := NewClient(cfg)
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "certs/client.p12"), expandHome("~/certs/client.p12"))
	assert.Equal(t, "/etc/client.p12", expandHome("/etc/client.p12"))
}
