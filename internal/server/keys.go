package server

import (
	"crypto/sha256"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

const sessionKeyInfo = "palette-studio session cookie"

// sessionKeys derives a 32-byte authentication key and a 32-byte AES key
// from secret. An empty secret gets a random one, which means cookies do not
// survive a restart.
func sessionKeys(secret string) (authKey, encKey []byte, generated bool, err error) {
	if secret == "" {
		secret = uuid.NewString()
		generated = true
	}

	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionKeyInfo))
	authKey = make([]byte, 32)
	encKey = make([]byte, 32)
	if _, err := io.ReadFull(r, authKey); err != nil {
		return nil, nil, generated, errors.Wrap(err, "derive auth key")
	}
	if _, err := io.ReadFull(r, encKey); err != nil {
		return nil, nil, generated, errors.Wrap(err, "derive encryption key")
	}
	return authKey, encKey, generated, nil
}
