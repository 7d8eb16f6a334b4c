package payu

import (
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pkcs12 "software.sslmate.com/src/go-pkcs12"
)

// clientTLSConfig returns a TLS configuration presenting the P12/PFX client
// certificate at p12Path. It returns nil when no path is configured.
func clientTLSConfig(p12Path, password string) (*tls.Config, error) {
	if p12Path == "" {
		return nil, nil
	}

	p12Path = expandHome(p12Path)
	data, err := os.ReadFile(p12Path)
	if err != nil {
		return nil, fmt.Errorf("read client certificate %s: %w", p12Path, err)
	}

	key, leaf, caCerts, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return nil, fmt.Errorf("decode client certificate: %w", err)
	}

	chain := [][]byte{leaf.Raw}
	for _, c := range caCerts {
		chain = append(chain, c.Raw)
	}

	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		Certificates: []tls.Certificate{{
			Certificate: chain,
			PrivateKey:  key,
			Leaf:        leaf,
		}},
	}, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
