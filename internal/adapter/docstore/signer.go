// Package docstore integrates with the external document file store. Files
// are uploaded to the store directly by the frontend; this service only holds
// their paths and produces signed, time-limited download URLs with the key it
// shares with the store.
package docstore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Signer produces signed download URLs for stored files.
type Signer struct {
	baseURL string
	key     []byte
	now     func() time.Time
}

// NewSigner creates a signer for the store at baseURL using the shared key.
func NewSigner(baseURL, signingKey string) *Signer {
	return &Signer{
		baseURL: baseURL,
		key:     []byte(signingKey),
		now:     time.Now,
	}
}

// SignedURL returns a download URL for filePath valid for expiresIn. The
// signature covers the path and the expiry timestamp, so neither can be
// altered without invalidating the URL.
func (s *Signer) SignedURL(filePath string, expiresIn time.Duration) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("docstore: empty file path")
	}

	expires := s.now().Add(expiresIn).Unix()
	sig := s.sign(filePath, expires)

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", sig)

	return fmt.Sprintf("%s/%s?%s", s.baseURL, url.PathEscape(filePath), q.Encode()), nil
}

// Verify checks a signature produced by SignedURL. Used by tests and by the
// store-side verification tooling.
func (s *Signer) Verify(filePath string, expires int64, signature string) bool {
	if s.now().Unix() > expires {
		return false
	}
	expected := s.sign(filePath, expires)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *Signer) sign(filePath string, expires int64) string {
	mac := hmac.New(sha256.New, s.key)
	fmt.Fprintf(mac, "%s\n%d", filePath, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
