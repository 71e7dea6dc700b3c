package qz

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha512"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("qz signing not configured")

// Signer signs print requests for QZ Tray with the site's private key.
type Signer struct {
	certificate string
	key         *rsa.PrivateKey
}

// NewSigner parses a PKCS#8 or PKCS#1 PEM key. Empty inputs give a signer
// that answers ErrNotConfigured.
func NewSigner(certificatePEM, privateKeyPEM string) (*Signer, error) {
	s := &Signer{certificate: certificatePEM}
	if privateKeyPEM == "" {
		return s, nil
	}

	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil {
		return nil, fmt.Errorf("qz private key: no PEM block")
	}
	if parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		key, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("qz private key: not an RSA key")
		}
		s.key = key
		return s, nil
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("qz private key: %w", err)
	}
	s.key = key
	return s, nil
}

func (s *Signer) Certificate() (string, error) {
	if s.certificate == "" {
		return "", ErrNotConfigured
	}
	return s.certificate, nil
}

// Sign returns the base64 RSA-SHA512 signature of payload.
func (s *Signer) Sign(payload string) (string, error) {
	if s.key == nil {
		return "", ErrNotConfigured
	}
	digest := sha512.Sum512([]byte(payload))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA512, digest[:])
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}
