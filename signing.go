package payu

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"
)

// Signer computes the order signature PayU checks on SUBMIT_TRANSACTION.
type Signer interface {
	Sign(apiKey, merchantID, referenceCode, txValue, currency string) string
}

// SignatureAlgorithm selects the digest behind DigestSigner.
type SignatureAlgorithm string

const (
	SignatureMD5    SignatureAlgorithm = "MD5"
	SignatureSHA1   SignatureAlgorithm = "SHA1"
	SignatureSHA256 SignatureAlgorithm = "SHA256"
)

// IsValid reports whether a is a supported algorithm.
func (a SignatureAlgorithm) IsValid() bool {
	switch a {
	case SignatureMD5, SignatureSHA1, SignatureSHA256:
		return true
	}
	return false
}

// DefaultSignatureSeparator joins the signed fields.
const DefaultSignatureSeparator = "~"

// DigestSigner hashes "apiKey~merchantId~referenceCode~txValue~currency"
// and returns the lowercase hex digest.
type DigestSigner struct {
	// Algorithm defaults to MD5.
	Algorithm SignatureAlgorithm

	// Separator defaults to DefaultSignatureSeparator.
	Separator string
}

// Sign implements Signer.
func (s DigestSigner) Sign(apiKey, merchantID, referenceCode, txValue, currency string) string {
	sep := s.Separator
	if sep == "" {
		sep = DefaultSignatureSeparator
	}
	plain := strings.Join([]string{apiKey, merchantID, referenceCode, txValue, currency}, sep)

	h := s.newHash()
	h.Write([]byte(plain))
	return hex.EncodeToString(h.Sum(nil))
}

func (s DigestSigner) newHash() hash.Hash {
	switch s.Algorithm {
	case SignatureSHA1:
		return sha1.New()
	case SignatureSHA256:
		return sha256.New()
	default:
		return md5.New()
	}
}
