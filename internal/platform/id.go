package platform

import (
	"crypto/rand"

	"github.com/google/uuid"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const siteTokenLength = 32

func NewID() string {
	return uuid.New().String()
}

// NewSiteToken generates the 32-character public lookup token assigned to
// a site at creation time. The token is immutable once set.
func NewSiteToken() string {
	b := make([]byte, siteTokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	for i := range b {
		b[i] = tokenAlphabet[b[i]%byte(len(tokenAlphabet))]
	}
	return string(b)
}
