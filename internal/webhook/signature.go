package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// SignatureHeader carries the HMAC of the raw request body.
const SignatureHeader = "X-Hub-Signature-256"

const signaturePrefix = "sha256="

var (
	// ErrUnauthorized is wrapped by every verification failure.
	ErrUnauthorized = errors.New("unauthorized webhook")

	ErrMissingSignature   = fmt.Errorf("%w: missing signature header", ErrUnauthorized)
	ErrMalformedSignature = fmt.Errorf("%w: malformed signature header", ErrUnauthorized)
	ErrSignatureMismatch  = fmt.Errorf("%w: signature mismatch", ErrUnauthorized)
)

// Verifier checks that a payload was signed with the shared webhook secret.
// A Verifier without a secret accepts every request.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (v *Verifier) Enabled() bool {
	return len(v.secret) > 0
}

// Verify validates header against the HMAC-SHA256 of body. body must be the
// bytes exactly as received on the wire.
func (v *Verifier) Verify(body []byte, header string) error {
	if !v.Enabled() {
		return nil
	}
	if header == "" {
		return ErrMissingSignature
	}

	hexSig, ok := strings.CutPrefix(header, signaturePrefix)
	if !ok {
		return ErrMalformedSignature
	}
	got, err := hex.DecodeString(hexSig)
	if err != nil {
		return ErrMalformedSignature
	}

	if !hmac.Equal(got, computeHMAC(body, v.secret)) {
		return ErrSignatureMismatch
	}
	return nil
}

// Sign returns the signature header value for body under secret.
func Sign(body []byte, secret string) string {
	return signaturePrefix + hex.EncodeToString(computeHMAC(body, []byte(secret)))
}

func computeHMAC(payload, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return mac.Sum(nil)
}
