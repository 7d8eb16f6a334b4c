package payu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestSigner(t *testing.T) {
	const (
		apiKey   = "4Vj8eK4rloUd272L48hsrarnUA"
		merchant = "508029"
		ref      = "TestPayU"
	)
	tests := []struct {
		name   string
		signer DigestSigner
		want   string
	}{
		{"default md5", DigestSigner{}, "ba9ffa71559580175585e45ce70b6c37"},
		{"sha1", DigestSigner{Algorithm: SignatureSHA1}, "9790fc9c38b7a9af7383e03ff410f308b6ef4c0f"},
		{"sha256", DigestSigner{Algorithm: SignatureSHA256}, "e43ad790765c4ef8d355dc40782241b76cbd57764b9ebb58d6241b88ff3f5164"},
		{"pipe separator", DigestSigner{Algorithm: SignatureMD5, Separator: "|"}, "5965ec24a7e23d9fb2fa306c463bc69a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.signer.Sign(apiKey, merchant, ref, "3", "USD"))
		})
	}
}

func TestSignatureAlgorithm_IsValid(t *testing.T) {
	assert.True(t, SignatureMD5.IsValid())
	assert.True(t, SignatureSHA256.IsValid())
	assert.False(t, SignatureAlgorithm("sha512").IsValid())
}
